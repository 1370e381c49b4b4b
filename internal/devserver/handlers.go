package devserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/hae/internal/constants"
	"github.com/julianstephens/hae/internal/models"
	"github.com/julianstephens/hae/internal/stepper"
	"github.com/julianstephens/hae/internal/validation"
)

// createHae stores a new request as PENDENTE.
// POST /hae/create
func (s *Server) createHae(c *gin.Context) {
	var p models.HaePayload
	if err := c.ShouldBindJSON(&p); err != nil {
		_ = c.Error(err)
		abort(c, http.StatusBadRequest, constants.MsgInvalidBody)
		return
	}
	if msg := s.checkPayload(p, false); msg != "" {
		abort(c, http.StatusBadRequest, msg)
		return
	}

	c.JSON(http.StatusCreated, s.store.Create(p))
}

// updateHae replaces a request and sends it back to PENDENTE.
// PUT /hae/update/:id
func (s *Server) updateHae(c *gin.Context) {
	var p models.HaePayload
	if err := c.ShouldBindJSON(&p); err != nil {
		_ = c.Error(err)
		abort(c, http.StatusBadRequest, constants.MsgInvalidBody)
		return
	}
	if msg := s.checkPayload(p, true); msg != "" {
		abort(c, http.StatusBadRequest, msg)
		return
	}

	d, err := s.store.Update(c.Param("id"), p)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// GET /hae/getHaesByProfessor/:id
func (s *Server) listHaes(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.ListByEmployee(c.Param("id")))
}

// GET /hae/getHaeById/:id
func (s *Server) getHae(c *gin.Context) {
	d, err := s.store.Get(c.Param("id"))
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// requestClosure accepts a closure report for an approved request near its end.
// POST /hae/request-closure/:id
func (s *Server) requestClosure(c *gin.Context) {
	var closure models.ClosureDraft
	if err := c.ShouldBindJSON(&closure); err != nil {
		_ = c.Error(err)
		abort(c, http.StatusBadRequest, constants.MsgInvalidBody)
		return
	}

	id := c.Param("id")
	d, err := s.store.Get(id)
	if err != nil {
		s.storeError(c, err)
		return
	}
	if !stepper.CanRequestClosure(d.Status, d.EndDate, s.now()) {
		abort(c, http.StatusConflict, constants.MsgClosureNotAllowed)
		return
	}
	if errs := s.validator.ValidateClosure(d.ProjectType, closure); len(errs) > 0 {
		abort(c, http.StatusBadRequest, errs.First())
		return
	}

	d, err = s.store.RequestClosure(id, closure.ForProjectType(d.ProjectType))
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

type statusRequest struct {
	Status constants.Status `json:"status" binding:"required"`
}

// setStatus plays the coordinator, so approved requests can be tried locally.
// PUT /hae/status/:id
func (s *Server) setStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		abort(c, http.StatusBadRequest, constants.MsgInvalidBody)
		return
	}
	if !req.Status.Valid() {
		abort(c, http.StatusBadRequest, constants.MsgStatusInvalid)
		return
	}

	d, err := s.store.SetStatus(c.Param("id"), req.Status)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// GET /employee/get-professor?email=
func (s *Server) getProfessor(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		abort(c, http.StatusBadRequest, constants.MsgEmailRequired)
		return
	}

	e, err := s.store.ProfessorByEmail(email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			abort(c, http.StatusNotFound, constants.MsgProfessorNotFound)
			return
		}
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// checkPayload runs the form rules against p and returns the first problem, or "".
func (s *Server) checkPayload(p models.HaePayload, editMode bool) string {
	errs := s.validator.ValidateDraft(p.Draft(), validation.Context{
		EditMode: editMode,
		Scope:    validation.ScopeFull,
		Today:    s.now(),
	})
	return errs.First()
}

func (s *Server) storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		abort(c, http.StatusNotFound, constants.MsgHaeNotFound)
	case errors.Is(err, ErrCompleted):
		abort(c, http.StatusConflict, constants.MsgRecordCompleted)
	default:
		_ = c.Error(err)
		abort(c, http.StatusInternalServerError, constants.MsgInternalError)
	}
}
