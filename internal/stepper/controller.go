package stepper

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/julianstephens/hae/internal/constants"
	apperrors "github.com/julianstephens/hae/internal/errors"
	"github.com/julianstephens/hae/internal/logger"
	"github.com/julianstephens/hae/internal/models"
	"github.com/julianstephens/hae/internal/validation"
)

// Controller drives the three-step request form. It owns the draft for the
// lifetime of the form and is safe for use from multiple goroutines; service
// calls run without the lock held, and the Submitting state keeps a second
// submission from reaching the service.
type Controller struct {
	mu sync.Mutex

	svc     HaeService
	session models.Session
	opts    Options

	state          State
	editMode       bool
	recordID       string
	originalStatus constants.Status

	draft  models.HaeDraft
	times  models.DailyTimes
	errs   validation.Errors
	notice Notice
}

func newController(svc HaeService, session models.Session, opts Options) *Controller {
	c := &Controller{
		svc:     svc,
		session: session,
		opts:    opts.withDefaults(),
		times:   models.DailyTimes{},
		errs:    validation.NewErrors(),
	}
	c.draft.WeeklySchedule = models.WeeklySchedule{}
	c.applyIdentity()
	return c
}

// New opens an empty form for a new request.
func New(svc HaeService, session models.Session, opts Options) *Controller {
	c := newController(svc, session, opts)
	c.state = StateStep1
	return c
}

// NewForEdit opens the form for an existing record. Call Load before anything else.
// An empty recordID leaves the controller in StateFailed.
func NewForEdit(svc HaeService, session models.Session, recordID string, opts Options) *Controller {
	c := newController(svc, session, opts)
	c.editMode = true
	c.recordID = strings.TrimSpace(recordID)
	c.state = StateLoadingExisting
	if c.recordID == "" {
		c.state = StateFailed
		c.notice = Notice{Severity: SeverityError, Message: constants.MsgMissingRecordID}
	}
	return c
}

// applyIdentity copies the submitter from the session. Callers hold the lock or
// own the controller exclusively.
func (c *Controller) applyIdentity() {
	e := c.session.Employee
	c.draft.EmployeeID = e.ID
	c.draft.InstitutionID = e.Institution.ID
	c.draft.InstitutionCode = e.Institution.InstitutionCode
}

// Load hydrates the draft from the record being edited.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.recordID == "" {
		c.mu.Unlock()
		return ErrMissingRecordID
	}
	if c.state != StateLoadingExisting {
		c.mu.Unlock()
		return ErrInvalidTransition
	}
	id := c.recordID
	c.mu.Unlock()

	detail, err := c.svc.GetHaeByID(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		logger.Error("Failed to load request", "id", id, "error", err)
		c.state = StateFailed
		c.notice = Notice{Severity: SeverityError, Message: apperrors.UserMessage(err, constants.MsgLoadFailed)}
		return fmt.Errorf("failed to load request %s: %w", id, err)
	}

	c.draft = detail.Draft()
	c.applyIdentity()
	c.originalStatus = detail.Status
	c.times = c.opts.Scheduler.Sync(c.draft.DayOfWeek, c.draft.WeeklySchedule.Times())
	c.opts.Scheduler.Apply(&c.draft, c.times)
	c.state = StateStep1

	if c.readOnly() {
		c.notice = Notice{Severity: SeverityWarning, Message: constants.MsgRecordCompleted}
	}
	logger.Debug("Loaded request for editing", "id", id, "status", detail.Status)
	return nil
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) EditMode() bool {
	return c.editMode
}

func (c *Controller) RecordID() string {
	return c.recordID
}

// ReadOnly reports whether the record being edited is COMPLETO.
func (c *Controller) ReadOnly() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readOnly()
}

func (c *Controller) readOnly() bool {
	return c.editMode && c.originalStatus == constants.StatusCompleto
}

// Draft returns a copy of the current draft.
func (c *Controller) Draft() models.HaeDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneDraft(c.draft)
}

// Times returns a copy of the per-day times typed so far.
func (c *Controller) Times() models.DailyTimes {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(models.DailyTimes, len(c.times))
	for day, t := range c.times {
		out[day] = t
	}
	return out
}

// Errors returns a copy of the current field errors.
func (c *Controller) Errors() validation.Errors {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := validation.NewErrors()
	out.Merge(c.errs)
	return out
}

func (c *Controller) Notice() Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notice
}

// DismissNotice clears the current notice.
func (c *Controller) DismissNotice() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notice = Notice{}
}

func (c *Controller) editable() error {
	switch c.state {
	case StateStep1, StateStep2, StateStep3:
		if c.readOnly() {
			return ErrRecordCompleted
		}
		return nil
	case StateSubmitting, StateConfirmPending:
		return ErrBusy
	default:
		return ErrInvalidTransition
	}
}

// mutate applies fn under the lock when the form is editable and clears the
// errors of the touched fields.
func (c *Controller) mutate(fn func() []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.editable(); err != nil {
		return err
	}
	for _, f := range fn() {
		c.errs.Clear(f)
	}
	return nil
}

func (c *Controller) SetProjectTitle(v string) error {
	return c.mutate(func() []string {
		c.draft.ProjectTitle = v
		return []string{"projectTitle"}
	})
}

// SetProjectType also drops the student roster for types that do not take one.
func (c *Controller) SetProjectType(v constants.ProjectType) error {
	return c.mutate(func() []string {
		c.draft.ProjectType = v
		if !v.RequiresRoster() {
			c.draft.StudentRAs = nil
			return []string{"projectType", "studentRAs"}
		}
		return []string{"projectType"}
	})
}

func (c *Controller) SetCourse(v string) error {
	return c.mutate(func() []string {
		c.draft.Course = v
		return []string{"course"}
	})
}

func (c *Controller) SetProjectDescription(v string) error {
	return c.mutate(func() []string {
		c.draft.ProjectDescription = v
		return []string{"projectDescription"}
	})
}

func (c *Controller) SetModality(v constants.Modality) error {
	return c.mutate(func() []string {
		c.draft.Modality = v
		return []string{"modality"}
	})
}

func (c *Controller) SetDimensao(v constants.Dimensao) error {
	return c.mutate(func() []string {
		c.draft.Dimensao = v
		return []string{"dimensao"}
	})
}

func (c *Controller) SetStudentRAs(ras []string) error {
	return c.mutate(func() []string {
		c.draft.StudentRAs = append([]string(nil), ras...)
		return []string{"studentRAs"}
	})
}

// SetDays replaces the weekday selection and re-derives the schedule. Times typed
// for days that stay selected are kept.
func (c *Controller) SetDays(days []constants.Weekday) error {
	return c.mutate(func() []string {
		cleared := []string{"dayOfWeek", "weeklySchedule", "weeklyHours"}
		sorted := models.SortWeekdays(days)
		for _, old := range c.draft.DayOfWeek {
			if !containsDay(sorted, old) {
				cleared = append(cleared, string(old))
			}
		}
		c.draft.DayOfWeek = sorted
		c.times = c.opts.Scheduler.Sync(sorted, c.times)
		c.opts.Scheduler.Apply(&c.draft, c.times)
		return cleared
	})
}

// SetDayTimes records the start and end typed for a selected day.
func (c *Controller) SetDayTimes(day constants.Weekday, start, end string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.editable(); err != nil {
		return err
	}
	if !c.draft.HasDay(day) {
		return fmt.Errorf("%w: %s", ErrDayNotSelected, day)
	}

	c.times[day] = models.DayTimes{Start: strings.TrimSpace(start), End: strings.TrimSpace(end)}
	c.opts.Scheduler.Apply(&c.draft, c.times)
	for _, f := range []string{string(day), "weeklySchedule", "weeklyHours"} {
		c.errs.Clear(f)
	}
	return nil
}

// SetStartDate and SetEndDate clear both date errors, since each bound is checked
// against the other.
func (c *Controller) SetStartDate(v string) error {
	return c.mutate(func() []string {
		c.draft.StartDate = strings.TrimSpace(v)
		return []string{"startDate", "endDate"}
	})
}

func (c *Controller) SetEndDate(v string) error {
	return c.mutate(func() []string {
		c.draft.EndDate = strings.TrimSpace(v)
		return []string{"startDate", "endDate"}
	})
}

func (c *Controller) SetObservations(v string) error {
	return c.mutate(func() []string {
		c.draft.Observations = v
		return nil
	})
}

// Replace loads a whole draft, as read from a file, keeping the session identity.
// Times are recovered from the draft's weekly schedule.
func (c *Controller) Replace(d models.HaeDraft) error {
	return c.mutate(func() []string {
		c.draft = cloneDraft(d)
		c.applyIdentity()
		if !c.draft.ProjectType.RequiresRoster() {
			c.draft.StudentRAs = nil
		}
		c.draft.DayOfWeek = models.SortWeekdays(c.draft.DayOfWeek)
		c.times = c.opts.Scheduler.Sync(c.draft.DayOfWeek, c.draft.WeeklySchedule.Times())
		c.opts.Scheduler.Apply(&c.draft, c.times)
		c.errs = validation.NewErrors()
		return nil
	})
}

// Next validates the current step and advances. On failure the field errors are
// kept on the controller and also returned.
func (c *Controller) Next() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var (
		scope validation.Scope
		next  State
	)
	switch c.state {
	case StateStep1:
		scope, next = validation.ScopeStepOne, StateStep2
	case StateStep2:
		scope, next = validation.ScopeSchedule, StateStep3
	case StateSubmitting, StateConfirmPending:
		return ErrBusy
	default:
		return ErrInvalidTransition
	}

	if errs := c.validate(scope); len(errs) > 0 {
		c.errs = errs
		c.notice = Notice{Severity: SeverityWarning, Message: constants.MsgFixErrors}
		return errs
	}

	c.errs = validation.NewErrors()
	c.notice = c.stickyNotice()
	c.state = next
	return nil
}

// Back moves one step back without validating.
func (c *Controller) Back() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateStep2:
		c.state = StateStep1
	case StateStep3:
		c.state = StateStep2
	case StateSubmitting, StateConfirmPending:
		return ErrBusy
	default:
		return ErrInvalidTransition
	}
	c.notice = c.stickyNotice()
	return nil
}

// stickyNotice is the notice that survives step navigation.
func (c *Controller) stickyNotice() Notice {
	if c.readOnly() {
		return Notice{Severity: SeverityWarning, Message: constants.MsgRecordCompleted}
	}
	return Notice{}
}

// Submit runs the final validation from Step3. A new request is checked against
// earlier semesters and then created; an edit moves to StateConfirmPending and
// waits for Confirm.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case StateStep3:
	case StateSubmitting, StateConfirmPending:
		c.mu.Unlock()
		return ErrBusy
	default:
		c.mu.Unlock()
		return ErrInvalidTransition
	}
	if c.readOnly() {
		c.mu.Unlock()
		return ErrRecordCompleted
	}

	if errs := c.validate(validation.ScopeFull); len(errs) > 0 {
		c.errs = errs
		c.notice = Notice{Severity: SeverityError, Message: constants.MsgFixErrors}
		c.mu.Unlock()
		return errs
	}
	c.errs = validation.NewErrors()

	if c.editMode {
		c.state = StateConfirmPending
		c.notice = Notice{Severity: SeverityWarning, Message: constants.MsgConfirmUpdate}
		c.mu.Unlock()
		return nil
	}

	c.state = StateSubmitting
	c.notice = Notice{}
	payload := c.draft.Payload()
	c.mu.Unlock()

	err := c.checkPriorSemester(ctx, payload.StartDate)
	if err == nil {
		err = c.svc.CreateHae(ctx, payload)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settle(models.SubmissionCreate, err, constants.MsgCreateSuccess, constants.MsgCreateFailed)
}

// Confirm acknowledges the status reset and sends the update. Only the first
// call from StateConfirmPending reaches the service.
func (c *Controller) Confirm(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case StateConfirmPending:
	case StateSubmitting:
		c.mu.Unlock()
		return ErrBusy
	default:
		c.mu.Unlock()
		return ErrInvalidTransition
	}
	c.state = StateSubmitting
	c.notice = Notice{}
	payload := c.draft.Payload()
	id := c.recordID
	c.mu.Unlock()

	err := c.svc.UpdateHae(ctx, id, payload)

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settle(models.SubmissionUpdate, err, constants.MsgUpdateSuccess, constants.MsgUpdateFailed)
}

// Cancel leaves the confirmation and returns to Step3 with the draft untouched.
func (c *Controller) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateConfirmPending:
		c.state = StateStep3
		c.notice = Notice{}
		return nil
	case StateSubmitting:
		return ErrBusy
	default:
		return ErrInvalidTransition
	}
}

func (c *Controller) checkPriorSemester(ctx context.Context, startDate string) error {
	records, err := c.svc.GetHaesByProfessorID(ctx, c.session.Employee.ID)
	if err != nil {
		return fmt.Errorf("failed to list existing requests: %w", err)
	}
	if r, found := FindIncompletePrior(records, startDate); found {
		logger.Info("Creation blocked by earlier request", "blocking_id", r.ID, "status", r.Status, "start_date", r.StartDate)
		return ErrPriorSemesterIncomplete
	}
	return nil
}

// settle moves out of StateSubmitting. Callers hold the lock.
func (c *Controller) settle(kind models.SubmissionKind, err error, okMsg, failMsg string) error {
	if err == nil {
		c.state = StateDone
		c.notice = Notice{Severity: SeveritySuccess, Message: okMsg, NavigateAfter: c.opts.NavigateDelay}
		c.record(kind, models.OutcomeSuccess, okMsg)
		logger.Info("Request submitted", "kind", kind, "id", c.recordID)
		return nil
	}

	c.state = StateStep3
	if errors.Is(err, ErrPriorSemesterIncomplete) {
		c.notice = Notice{Severity: SeverityError, Message: constants.MsgPriorSemesterIncomplete}
		c.record(kind, models.OutcomeRejected, c.notice.Message)
		return err
	}

	c.notice = Notice{Severity: SeverityError, Message: apperrors.UserMessage(err, failMsg)}
	c.record(kind, models.OutcomeFailed, c.notice.Message)
	logger.Error("Request submission failed", "kind", kind, "id", c.recordID, "error", err)
	return err
}

func (c *Controller) record(kind models.SubmissionKind, outcome models.SubmissionOutcome, msg string) {
	if c.opts.Journal == nil {
		return
	}
	err := c.opts.Journal.SaveSubmission(models.Submission{
		Kind:         kind,
		RecordID:     c.recordID,
		EmployeeID:   c.session.Employee.ID,
		ProjectTitle: c.draft.ProjectTitle,
		Outcome:      outcome,
		Message:      msg,
		CreatedAt:    c.opts.Now(),
	})
	if err != nil {
		logger.Warn("Failed to journal submission", "kind", kind, "error", err)
	}
}

func (c *Controller) validate(scope validation.Scope) validation.Errors {
	return c.opts.Validator.ValidateDraft(c.draft, validation.Context{
		EditMode: c.editMode,
		Scope:    scope,
		Today:    c.opts.Now(),
	})
}

func containsDay(days []constants.Weekday, day constants.Weekday) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}

func cloneDraft(d models.HaeDraft) models.HaeDraft {
	out := d
	out.DayOfWeek = append([]constants.Weekday(nil), d.DayOfWeek...)
	out.StudentRAs = append([]string(nil), d.StudentRAs...)
	out.WeeklySchedule = make(models.WeeklySchedule, len(d.WeeklySchedule))
	for day, entry := range d.WeeklySchedule {
		out.WeeklySchedule[day] = entry
	}
	return out
}
