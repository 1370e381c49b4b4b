package validation

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/hae/internal/constants"
	"github.com/julianstephens/hae/internal/models"
	"github.com/julianstephens/hae/internal/utils"
)

// Scope selects which rule groups a draft is checked against.
type Scope int

const (
	// ScopeFull runs every draft rule. Used as the final gate before submitting.
	ScopeFull Scope = iota
	// ScopeStepOne covers project metadata and the student roster.
	ScopeStepOne
	// ScopeSchedule covers days, per-day times, dates and total hours.
	ScopeSchedule
)

func (s Scope) String() string {
	switch s {
	case ScopeStepOne:
		return "step-one"
	case ScopeSchedule:
		return "schedule"
	default:
		return "full"
	}
}

// Context carries what a draft check needs besides the draft itself.
type Context struct {
	// EditMode skips the lower bounds on startDate and endDate.
	EditMode bool
	Scope    Scope
	// Today anchors the past-date checks. The zero value means time.Now().
	Today time.Time
}

var requiredMessages = map[string]string{
	"projectTitle":       constants.MsgProjectTitleRequired,
	"projectType":        constants.MsgProjectTypeRequired,
	"course":             constants.MsgCourseRequired,
	"projectDescription": constants.MsgProjectDescriptionRequired,
	"modality":           constants.MsgModalityRequired,
	"dimensao":           constants.MsgDimensaoRequired,
}

// Validator checks form drafts and closure reports. It is safe for concurrent use.
type Validator struct {
	structural *validator.Validate
}

// New creates a new Validator
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	enums := map[string]func(string) bool{
		"project_type": func(s string) bool { return constants.ProjectType(s).Valid() },
		"modality":     func(s string) bool { return constants.Modality(s).Valid() },
		"dimensao":     func(s string) bool { return constants.Dimensao(s).Valid() },
	}
	for tag, ok := range enums {
		// Registration only fails on an empty tag or nil func.
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return ok(fl.Field().String())
		})
	}

	return &Validator{structural: v}
}

// ValidateDraft checks the draft against every rule in scope and returns all violations.
// An empty result means the draft is valid for that scope.
func (v *Validator) ValidateDraft(d models.HaeDraft, ctx Context) Errors {
	errs := NewErrors()

	if ctx.Scope == ScopeFull || ctx.Scope == ScopeStepOne {
		v.checkRequiredScalars(d, errs)
		checkRoster(d, errs)
	}
	if ctx.Scope == ScopeFull || ctx.Scope == ScopeSchedule {
		checkDays(d, errs)
		checkSchedule(d, errs)
		checkDates(d, ctx, errs)
		checkWeeklyHours(d, errs)
	}

	return errs
}

func (v *Validator) checkRequiredScalars(d models.HaeDraft, errs Errors) {
	err := v.structural.Struct(d)
	if err == nil {
		return
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return
	}
	for _, fe := range fieldErrs {
		field := fe.Field()
		if fe.Tag() == "required" {
			errs.Add(field, requiredMessages[field])
			continue
		}
		errs.Add(field, constants.MsgInvalidOption)
	}
}

func checkRoster(d models.HaeDraft, errs Errors) {
	if !d.ProjectType.RequiresRoster() {
		return
	}

	blank := true
	for _, ra := range d.StudentRAs {
		if !utils.IsBlank(ra) {
			blank = false
			break
		}
	}
	if blank {
		errs.Add("studentRAs", constants.MsgStudentRAsRequired)
		return
	}
	// Once anything is filled in, every row counts, blank ones included.
	for _, ra := range d.StudentRAs {
		if len(utils.DigitsOnly(ra)) != constants.RALength {
			errs.Add("studentRAs", constants.MsgStudentRAInvalid)
			return
		}
	}
}

func checkDays(d models.HaeDraft, errs Errors) {
	if len(d.DayOfWeek) == 0 {
		errs.Add("dayOfWeek", constants.MsgDayOfWeekRequired)
		return
	}
	for _, day := range d.DayOfWeek {
		if !day.Valid() {
			errs.Add("dayOfWeek", constants.MsgInvalidOption)
			return
		}
	}
}

func checkSchedule(d models.HaeDraft, errs Errors) {
	for _, day := range models.SortWeekdays(d.DayOfWeek) {
		if !day.Valid() {
			continue
		}
		if msg := checkDay(d.WeeklySchedule[day]); msg != "" {
			errs.Add(string(day), msg)
		}
	}

	for day := range d.WeeklySchedule {
		if !d.HasDay(day) {
			errs.Add("weeklySchedule", constants.MsgScheduleUnknownDay)
			break
		}
	}
}

// checkDay returns the problem with a single day's entry, or "" when it is fine.
func checkDay(entry models.ScheduleEntry) string {
	start, end, ok := utils.SplitTimeRange(entry.TimeRange)
	if !ok {
		return constants.MsgDayTimesRequired
	}
	startMin, err := utils.ParseTimeToMinutes(start)
	if err != nil {
		return constants.MsgDayTimesRequired
	}
	endMin, err := utils.ParseTimeToMinutes(end)
	if err != nil {
		return constants.MsgDayTimesRequired
	}
	if endMin <= startMin {
		return constants.MsgDayEndBeforeStart
	}
	duration := endMin - startMin
	if duration < constants.MinDailyHours*60 || duration > constants.MaxDailyHours*60 {
		return constants.MsgDayDurationOutOfRange
	}
	return ""
}

func checkDates(d models.HaeDraft, ctx Context, errs Errors) {
	start, startOK := parseRequiredDate(d.StartDate, "startDate", constants.MsgStartDateRequired, errs)
	end, endOK := parseRequiredDate(d.EndDate, "endDate", constants.MsgEndDateRequired, errs)

	if startOK && endOK && !end.After(start) {
		errs.Add("endDate", constants.MsgEndDateNotAfter)
	}

	if ctx.EditMode {
		return
	}

	now := ctx.Today
	if now.IsZero() {
		now = time.Now()
	}
	today := utils.CivilDate(now)

	if startOK && start.Before(today) {
		errs.Add("startDate", constants.MsgStartDateInPast)
	}
	if endOK && end.Before(today.AddDate(0, 0, 1)) {
		errs.Add("endDate", constants.MsgEndDateNotFuture)
	}
}

func parseRequiredDate(value, field, requiredMsg string, errs Errors) (time.Time, bool) {
	if utils.IsBlank(value) {
		errs.Add(field, requiredMsg)
		return time.Time{}, false
	}
	t, err := utils.ParseDate(value)
	if err != nil {
		errs.Add(field, constants.MsgDateInvalid)
		return time.Time{}, false
	}
	return t, true
}

func checkWeeklyHours(d models.HaeDraft, errs Errors) {
	if d.WeeklyHours < constants.MinWeeklyHours {
		errs.Add("weeklyHours", constants.MsgWeeklyHoursMinimum)
	}
}
