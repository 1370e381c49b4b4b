package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/hae/internal/config"
	"github.com/julianstephens/hae/internal/lockfile"
	"github.com/julianstephens/hae/internal/models"
	"github.com/julianstephens/hae/internal/scheduler"
	"github.com/julianstephens/hae/internal/stepper"
	"github.com/julianstephens/hae/internal/storage"
	"github.com/julianstephens/hae/internal/validation"
)

// ErrNoEmail is returned when a command needs the professor but none is configured.
var ErrNoEmail = errors.New("no professor email configured (set session.email or HAE_SESSION_EMAIL)")

// Backend is what the commands need from the HAE API.
type Backend interface {
	stepper.HaeService
	stepper.ClosureService
	GetProfessorByEmail(ctx context.Context, email string) (models.Employee, error)
}

type Context struct {
	Ctx       context.Context
	Config    *config.Config
	Backend   Backend
	Token     string
	Journal   storage.Journal
	Validator *validation.Validator
	Scheduler *scheduler.Scheduler
	// Now is the clock for date rules. Nil means time.Now.
	Now func() time.Time
	// Debug is set by the --debug flag.
	Debug bool

	session *models.Session
}

// Background is the command's context, cancelled on interrupt.
func (c *Context) Background() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

// Session resolves the signed-in professor from the configured email. The result
// is cached for the rest of the command.
func (c *Context) Session() (models.Session, error) {
	if c.session != nil {
		return *c.session, nil
	}
	if c.Config == nil || strings.TrimSpace(c.Config.Session.Email) == "" {
		return models.Session{}, ErrNoEmail
	}
	if c.Backend == nil {
		return models.Session{}, errors.New("no backend configured")
	}

	employee, err := c.Backend.GetProfessorByEmail(c.Background(), c.Config.Session.Email)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to resolve professor %s: %w", c.Config.Session.Email, err)
	}
	c.session = &models.Session{Employee: employee, Token: c.Token}
	return *c.session, nil
}

// StepperOptions builds the controller options shared by every form.
func (c *Context) StepperOptions() stepper.Options {
	opts := stepper.Options{
		Now:       c.Now,
		Journal:   c.Journal,
		Validator: c.Validator,
		Scheduler: c.Scheduler,
	}
	if c.Config != nil {
		opts.NavigateDelay = c.Config.Form.NavigateDelay
	}
	return opts
}

// Lock takes the single form-session lock. Release it when the form closes.
func (c *Context) Lock(target string) (*lockfile.Lock, error) {
	dir := config.DefaultDataDir()
	if c.Config != nil {
		dir = c.Config.DataDir
	}
	return lockfile.Acquire(dir, target)
}

// ReadPayload reads a request draft stored as its wire JSON.
func ReadPayload(path string) (models.HaePayload, error) {
	var p models.HaePayload
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("failed to read draft: %w", err)
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("failed to parse draft %s: %w", path, err)
	}
	return p, nil
}

// PrintErrors lists field errors one per line in field order.
func PrintErrors(errs validation.Errors) {
	for _, f := range errs.Fields() {
		fmt.Printf("  %s: %s\n", f, errs[f])
	}
}
