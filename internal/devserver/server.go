// Package devserver is an in-memory implementation of the HAE backend for local
// use and tests. It serves the same routes the api client calls and applies the
// same request and closure rules as the form.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/hae/internal/logger"
	"github.com/julianstephens/hae/internal/validation"
)

const shutdownTimeout = 5 * time.Second

type Options struct {
	// Token, when set, is required as a bearer token on every HAE route.
	Token string
	// Now is the server clock. Defaults to time.Now.
	Now       func() time.Time
	Store     *Store
	Validator *validation.Validator
}

type Server struct {
	store     *Store
	validator *validation.Validator
	now       func() time.Time
	engine    *gin.Engine
}

func New(opts Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Store == nil {
		opts.Store = NewStore(opts.Now)
	}
	if opts.Validator == nil {
		opts.Validator = validation.New()
	}

	s := &Server{
		store:     opts.Store,
		validator: opts.Validator,
		now:       opts.Now,
	}
	s.engine = s.routes(opts.Token)
	return s
}

func (s *Server) routes(token string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(requestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := bearerAuth(token)

	hae := r.Group("/hae", auth)
	{
		hae.POST("/create", s.createHae)
		hae.PUT("/update/:id", s.updateHae)
		hae.GET("/getHaesByProfessor/:id", s.listHaes)
		hae.GET("/getHaeById/:id", s.getHae)
		hae.POST("/request-closure/:id", s.requestClosure)
		hae.PUT("/status/:id", s.setStatus)
	}

	r.GET("/employee/get-professor", auth, s.getProfessor)

	return r
}

func (s *Server) Store() *Store {
	return s.store
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Development server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve on %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	logger.Info("Development server stopped")
	return nil
}

// abort ends the request with the {"message": ...} body the api client decodes.
func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"message": msg})
}
