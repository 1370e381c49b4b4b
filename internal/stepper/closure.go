package stepper

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/julianstephens/hae/internal/constants"
	apperrors "github.com/julianstephens/hae/internal/errors"
	"github.com/julianstephens/hae/internal/logger"
	"github.com/julianstephens/hae/internal/models"
	"github.com/julianstephens/hae/internal/validation"
)

// ClosureController drives the single-page closure report of an approved request.
// It sits in StateStep1 while editable. The project type comes from the record
// and cannot be changed.
type ClosureController struct {
	mu sync.Mutex

	svc      ClosureService
	session  models.Session
	opts     Options
	recordID string

	state        State
	projectType  constants.ProjectType
	projectTitle string
	closure      models.ClosureDraft
	errs         validation.Errors
	notice       Notice
}

func NewClosure(svc ClosureService, session models.Session, recordID string, opts Options) *ClosureController {
	c := &ClosureController{
		svc:      svc,
		session:  session,
		opts:     opts.withDefaults(),
		recordID: strings.TrimSpace(recordID),
		state:    StateLoadingExisting,
		errs:     validation.NewErrors(),
	}
	if c.recordID == "" {
		c.state = StateFailed
		c.notice = Notice{Severity: SeverityError, Message: constants.MsgMissingRecordID}
	}
	return c
}

// Load fetches the record and checks that a closure may be requested for it.
func (c *ClosureController) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.recordID == "" {
		c.mu.Unlock()
		return ErrMissingRecordID
	}
	if c.state != StateLoadingExisting {
		c.mu.Unlock()
		return ErrInvalidTransition
	}
	c.mu.Unlock()

	detail, err := c.svc.GetHaeByID(ctx, c.recordID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		logger.Error("Failed to load request for closure", "id", c.recordID, "error", err)
		c.state = StateFailed
		c.notice = Notice{Severity: SeverityError, Message: apperrors.UserMessage(err, constants.MsgLoadFailed)}
		return fmt.Errorf("failed to load request %s: %w", c.recordID, err)
	}
	if !CanRequestClosure(detail.Status, detail.EndDate, c.opts.Now()) {
		c.state = StateFailed
		c.notice = Notice{Severity: SeverityError, Message: constants.MsgClosureNotAllowed}
		return ErrClosureNotAllowed
	}

	c.projectType = detail.ProjectType
	c.projectTitle = detail.ProjectTitle
	c.closure = detail.ClosureDraft
	c.state = StateStep1
	return nil
}

func (c *ClosureController) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *ClosureController) ProjectType() constants.ProjectType {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectType
}

func (c *ClosureController) ProjectTitle() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectTitle
}

func (c *ClosureController) Closure() models.ClosureDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closure
}

func (c *ClosureController) Errors() validation.Errors {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := validation.NewErrors()
	out.Merge(c.errs)
	return out
}

func (c *ClosureController) Notice() Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notice
}

func (c *ClosureController) set(field string, fn func(*models.ClosureDraft)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateStep1:
	case StateSubmitting:
		return ErrBusy
	default:
		return ErrInvalidTransition
	}
	fn(&c.closure)
	c.errs.Clear(field)
	return nil
}

// SetTccRole also clears the project info error, which only applies to supervisors.
func (c *ClosureController) SetTccRole(v constants.TccRole) error {
	err := c.set("tccRole", func(d *models.ClosureDraft) { d.TccRole = v })
	if err == nil && v != constants.TccRoleOrientou {
		c.mu.Lock()
		c.errs.Clear("tccProjectInfo")
		c.mu.Unlock()
	}
	return err
}

func (c *ClosureController) SetTccStudentCount(v int) error {
	return c.set("tccStudentCount", func(d *models.ClosureDraft) { d.TccStudentCount = v })
}

func (c *ClosureController) SetTccStudentNames(v string) error {
	return c.set("tccStudentNames", func(d *models.ClosureDraft) { d.TccStudentNames = v })
}

func (c *ClosureController) SetTccApprovedStudents(v string) error {
	return c.set("tccApprovedStudents", func(d *models.ClosureDraft) { d.TccApprovedStudents = v })
}

func (c *ClosureController) SetTccProjectInfo(v string) error {
	return c.set("tccProjectInfo", func(d *models.ClosureDraft) { d.TccProjectInfo = v })
}

func (c *ClosureController) SetEstagioStudentInfo(v string) error {
	return c.set("estagioStudentInfo", func(d *models.ClosureDraft) { d.EstagioStudentInfo = v })
}

func (c *ClosureController) SetEstagioApprovedStudents(v string) error {
	return c.set("estagioApprovedStudents", func(d *models.ClosureDraft) { d.EstagioApprovedStudents = v })
}

func (c *ClosureController) SetApoioType(v constants.ApoioType) error {
	return c.set("apoioType", func(d *models.ClosureDraft) { d.ApoioType = v })
}

func (c *ClosureController) SetApoioGeralDescription(v string) error {
	return c.set("apoioGeralDescription", func(d *models.ClosureDraft) { d.ApoioGeralDescription = v })
}

func (c *ClosureController) SetApoioApprovedStudents(v string) error {
	return c.set("apoioApprovedStudents", func(d *models.ClosureDraft) { d.ApoioApprovedStudents = v })
}

func (c *ClosureController) SetApoioCertificateStudents(v string) error {
	return c.set("apoioCertificateStudents", func(d *models.ClosureDraft) { d.ApoioCertificateStudents = v })
}

// Replace swaps in a whole closure report, as read from a file.
func (c *ClosureController) Replace(d models.ClosureDraft) error {
	err := c.set("", func(cur *models.ClosureDraft) { *cur = d })
	if err == nil {
		c.mu.Lock()
		c.errs = validation.NewErrors()
		c.mu.Unlock()
	}
	return err
}

// Submit validates the report for the record's project type and sends only the
// fields of that type's variant.
func (c *ClosureController) Submit(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case StateStep1:
	case StateSubmitting:
		c.mu.Unlock()
		return ErrBusy
	default:
		c.mu.Unlock()
		return ErrInvalidTransition
	}

	if errs := c.opts.Validator.ValidateClosure(c.projectType, c.closure); len(errs) > 0 {
		c.errs = errs
		c.notice = Notice{Severity: SeverityError, Message: constants.MsgFixErrors}
		c.mu.Unlock()
		return errs
	}

	c.errs = validation.NewErrors()
	c.state = StateSubmitting
	c.notice = Notice{}
	body := c.closure.ForProjectType(c.projectType)
	c.mu.Unlock()

	err := c.svc.RequestClosure(ctx, c.recordID, body)

	c.mu.Lock()
	defer c.mu.Unlock()

	outcome := models.OutcomeSuccess
	if err == nil {
		c.state = StateDone
		c.notice = Notice{Severity: SeveritySuccess, Message: constants.MsgClosureSuccess, NavigateAfter: c.opts.NavigateDelay}
		logger.Info("Closure requested", "id", c.recordID, "project_type", c.projectType)
	} else {
		c.state = StateStep1
		c.notice = Notice{Severity: SeverityError, Message: apperrors.UserMessage(err, constants.MsgClosureFailed)}
		outcome = models.OutcomeFailed
		logger.Error("Closure request failed", "id", c.recordID, "error", err)
	}

	if c.opts.Journal != nil {
		jerr := c.opts.Journal.SaveSubmission(models.Submission{
			Kind:         models.SubmissionClosure,
			RecordID:     c.recordID,
			EmployeeID:   c.session.Employee.ID,
			ProjectTitle: c.projectTitle,
			Outcome:      outcome,
			Message:      c.notice.Message,
			CreatedAt:    c.opts.Now(),
		})
		if jerr != nil {
			logger.Warn("Failed to journal closure", "error", jerr)
		}
	}
	return err
}
