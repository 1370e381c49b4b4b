package validation

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/hae/internal/constants"
	"github.com/julianstephens/hae/internal/models"
)

var today = time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

func validDraft() models.HaeDraft {
	return models.HaeDraft{
		EmployeeID:         "emp-1",
		InstitutionCode:    101,
		ProjectTitle:       "Orientação de TCC",
		ProjectType:        constants.ProjectTypeTCC,
		Course:             "Análise e Desenvolvimento de Sistemas",
		ProjectDescription: "Acompanhamento semanal",
		Modality:           constants.ModalityPresencial,
		Dimensao:           constants.Dimensao1DidaticoPedagogico,
		DayOfWeek:          []constants.Weekday{constants.Monday},
		WeeklySchedule: models.WeeklySchedule{
			constants.Monday: {TimeRange: "08:00 - 12:00"},
		},
		WeeklyHours: 4,
		TimeRange:   "08:00 - 12:00",
		StartDate:   "2025-03-10",
		EndDate:     "2025-06-30",
		StudentRAs:  []string{"1234567890123"},
	}
}

func full(edit bool) Context {
	return Context{EditMode: edit, Scope: ScopeFull, Today: today}
}

func TestValidateDraft_ValidDraftPasses(t *testing.T) {
	v := New()
	for _, scope := range []Scope{ScopeFull, ScopeStepOne, ScopeSchedule} {
		if errs := v.ValidateDraft(validDraft(), Context{Scope: scope, Today: today}); len(errs) != 0 {
			t.Errorf("scope %s: expected no errors, got %v", scope, errs)
		}
	}
}

// Each case breaks exactly one rule and expects exactly one error key.
func TestValidateDraft_SingleRuleViolations(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*models.HaeDraft)
		wantField string
		wantMsg   string
	}{
		{"missing title", func(d *models.HaeDraft) { d.ProjectTitle = "" }, "projectTitle", constants.MsgProjectTitleRequired},
		{"missing course", func(d *models.HaeDraft) { d.Course = "" }, "course", constants.MsgCourseRequired},
		{"missing description", func(d *models.HaeDraft) { d.ProjectDescription = "" }, "projectDescription", constants.MsgProjectDescriptionRequired},
		{"missing modality", func(d *models.HaeDraft) { d.Modality = "" }, "modality", constants.MsgModalityRequired},
		{"missing dimensao", func(d *models.HaeDraft) { d.Dimensao = "" }, "dimensao", constants.MsgDimensaoRequired},
		{"unknown dimensao", func(d *models.HaeDraft) { d.Dimensao = "DIMENSAO_10" }, "dimensao", constants.MsgInvalidOption},
		{"unknown modality", func(d *models.HaeDraft) { d.Modality = "REMOTO" }, "modality", constants.MsgInvalidOption},
		{"empty roster for TCC", func(d *models.HaeDraft) { d.StudentRAs = nil }, "studentRAs", constants.MsgStudentRAsRequired},
		{"blank-only roster", func(d *models.HaeDraft) { d.StudentRAs = []string{"  "} }, "studentRAs", constants.MsgStudentRAsRequired},
		{"short RA", func(d *models.HaeDraft) { d.StudentRAs = []string{"1234567890123", "123"} }, "studentRAs", constants.MsgStudentRAInvalid},
		{"blank RA next to a valid one", func(d *models.HaeDraft) { d.StudentRAs = []string{"1234567890123", ""} }, "studentRAs", constants.MsgStudentRAInvalid},
		{"whitespace RA next to a valid one", func(d *models.HaeDraft) { d.StudentRAs = []string{"1234567890123", "   "} }, "studentRAs", constants.MsgStudentRAInvalid},
		{"no days", func(d *models.HaeDraft) {
			d.DayOfWeek = nil
			d.WeeklySchedule = models.WeeklySchedule{}
		}, "dayOfWeek", constants.MsgDayOfWeekRequired},
		{"unknown day", func(d *models.HaeDraft) {
			d.DayOfWeek = []constants.Weekday{constants.Monday, "Domingo"}
		}, "dayOfWeek", constants.MsgInvalidOption},
		{"day without times", func(d *models.HaeDraft) {
			d.DayOfWeek = append(d.DayOfWeek, constants.Tuesday)
		}, "Terça Feira", constants.MsgDayTimesRequired},
		{"day end before start", func(d *models.HaeDraft) {
			d.WeeklySchedule[constants.Monday] = models.ScheduleEntry{TimeRange: "12:00 - 08:00"}
		}, "Segunda Feira", constants.MsgDayEndBeforeStart},
		{"day too long", func(d *models.HaeDraft) {
			d.WeeklySchedule[constants.Monday] = models.ScheduleEntry{TimeRange: "08:00 - 16:01"}
		}, "Segunda Feira", constants.MsgDayDurationOutOfRange},
		{"day too short", func(d *models.HaeDraft) {
			d.WeeklySchedule[constants.Monday] = models.ScheduleEntry{TimeRange: "08:00 - 08:59"}
		}, "Segunda Feira", constants.MsgDayDurationOutOfRange},
		{"malformed day time", func(d *models.HaeDraft) {
			d.WeeklySchedule[constants.Monday] = models.ScheduleEntry{TimeRange: "8h - 12h"}
		}, "Segunda Feira", constants.MsgDayTimesRequired},
		{"schedule for unselected day", func(d *models.HaeDraft) {
			d.WeeklySchedule[constants.Saturday] = models.ScheduleEntry{TimeRange: "08:00 - 12:00"}
		}, "weeklySchedule", constants.MsgScheduleUnknownDay},
		{"missing start date", func(d *models.HaeDraft) { d.StartDate = "" }, "startDate", constants.MsgStartDateRequired},
		{"missing end date", func(d *models.HaeDraft) { d.EndDate = "" }, "endDate", constants.MsgEndDateRequired},
		{"malformed start date", func(d *models.HaeDraft) { d.StartDate = "10/03/2025" }, "startDate", constants.MsgDateInvalid},
		{"end equals start", func(d *models.HaeDraft) { d.StartDate = "2025-04-01"; d.EndDate = "2025-04-01" }, "endDate", constants.MsgEndDateNotAfter},
		{"start in the past", func(d *models.HaeDraft) { d.StartDate = "2025-03-09" }, "startDate", constants.MsgStartDateInPast},
		{"weekly hours below one", func(d *models.HaeDraft) { d.WeeklyHours = 0.5 }, "weeklyHours", constants.MsgWeeklyHoursMinimum},
	}

	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)

			errs := v.ValidateDraft(d, full(false))

			if len(errs) != 1 {
				t.Fatalf("expected exactly one error, got %v", errs)
			}
			if got := errs[tt.wantField]; got != tt.wantMsg {
				t.Errorf("errs[%q] = %q, want %q", tt.wantField, got, tt.wantMsg)
			}
		})
	}
}

func TestValidateDraft_DurationBoundaries(t *testing.T) {
	tests := []struct {
		timeRange string
		wantErr   bool
	}{
		{"08:00 - 09:00", false},
		{"08:00 - 16:00", false},
		{"08:00 - 08:59", true},
		{"08:00 - 16:01", true},
	}

	v := New()
	for _, tt := range tests {
		d := validDraft()
		d.WeeklySchedule[constants.Monday] = models.ScheduleEntry{TimeRange: tt.timeRange}
		errs := v.ValidateDraft(d, Context{Scope: ScopeSchedule, Today: today})
		if errs.Has(string(constants.Monday)) != tt.wantErr {
			t.Errorf("%s: error present = %v, want %v (%v)", tt.timeRange, errs.Has(string(constants.Monday)), tt.wantErr, errs)
		}
	}
}

func TestValidateDraft_PastStartDependsOnMode(t *testing.T) {
	v := New()
	d := validDraft()
	d.StartDate = "2025-03-09"

	createErrs := v.ValidateDraft(d, full(false))
	if createErrs["startDate"] != constants.MsgStartDateInPast {
		t.Errorf("create mode: expected past start error, got %v", createErrs)
	}

	editErrs := v.ValidateDraft(d, full(true))
	if editErrs.Has("startDate") {
		t.Errorf("edit mode: past start should be allowed, got %v", editErrs)
	}
}

func TestValidateDraft_EndDateMustBeAfterToday(t *testing.T) {
	v := New()

	d := validDraft()
	d.StartDate = "2025-03-10"
	d.EndDate = "2025-03-11"
	if errs := v.ValidateDraft(d, full(false)); len(errs) != 0 {
		t.Errorf("tomorrow end should pass in create mode, got %v", errs)
	}

	d.StartDate = "2025-03-01"
	d.EndDate = "2025-03-10"
	errs := v.ValidateDraft(d, full(false))
	if errs["endDate"] != constants.MsgEndDateNotFuture {
		t.Errorf("end today should fail in create mode, got %v", errs)
	}
	if errs := v.ValidateDraft(d, full(true)); errs.Has("endDate") {
		t.Errorf("edit mode skips the end lower bound, got %v", errs)
	}
}

func TestValidateDraft_TodayIgnoresTimeOfDay(t *testing.T) {
	v := New()
	d := validDraft()
	lateEvening := time.Date(2025, 3, 10, 23, 59, 0, 0, time.FixedZone("BRT", -3*60*60))

	errs := v.ValidateDraft(d, Context{Scope: ScopeFull, Today: lateEvening})
	if errs.Has("startDate") {
		t.Errorf("start today must pass regardless of clock time, got %v", errs)
	}
}

func TestValidateDraft_RosterOnlyForTccAndEstagio(t *testing.T) {
	v := New()
	for _, pt := range []constants.ProjectType{constants.ProjectTypeTCC, constants.ProjectTypeEstagio} {
		d := validDraft()
		d.ProjectType = pt
		d.StudentRAs = nil
		if errs := v.ValidateDraft(d, full(false)); !errs.Has("studentRAs") {
			t.Errorf("%s should require a roster", pt)
		}
	}

	d := validDraft()
	d.ProjectType = constants.ProjectTypeApoioDirecao
	d.StudentRAs = []string{"bogus"}
	if errs := v.ValidateDraft(d, full(false)); errs.Has("studentRAs") {
		t.Errorf("ApoioDirecao should not check the roster, got %v", errs)
	}
}

func TestValidateDraft_RAAcceptsFormattedDigits(t *testing.T) {
	v := New()
	d := validDraft()
	d.StudentRAs = []string{"123.456.789.012-3", "1234567890123  "}
	if errs := v.ValidateDraft(d, Context{Scope: ScopeStepOne, Today: today}); len(errs) != 0 {
		t.Errorf("expected formatted RAs to pass, got %v", errs)
	}
}

func TestValidateDraft_CollectsAllErrors(t *testing.T) {
	v := New()
	errs := v.ValidateDraft(models.HaeDraft{ProjectType: constants.ProjectTypeEstagio}, full(false))

	want := []string{
		"projectTitle",
		"course",
		"projectDescription",
		"modality",
		"dimensao",
		"studentRAs",
		"dayOfWeek",
		"startDate",
		"endDate",
		"weeklyHours",
	}
	if got := errs.Fields(); !reflect.DeepEqual(got, want) {
		t.Errorf("Fields() = %v, want %v", got, want)
	}
}

func TestValidateDraft_Scopes(t *testing.T) {
	v := New()
	d := validDraft()
	d.ProjectTitle = ""
	d.DayOfWeek = nil
	d.WeeklySchedule = nil

	stepOne := v.ValidateDraft(d, Context{Scope: ScopeStepOne, Today: today})
	if !stepOne.Has("projectTitle") || stepOne.Has("dayOfWeek") {
		t.Errorf("step one scope = %v", stepOne)
	}

	schedule := v.ValidateDraft(d, Context{Scope: ScopeSchedule, Today: today})
	if schedule.Has("projectTitle") || !schedule.Has("dayOfWeek") {
		t.Errorf("schedule scope = %v", schedule)
	}
}

func TestValidateDraft_PerDayErrorsKeyedByWeekday(t *testing.T) {
	v := New()
	d := validDraft()
	d.DayOfWeek = []constants.Weekday{constants.Monday, constants.Wednesday, constants.Friday}
	d.WeeklySchedule = models.WeeklySchedule{
		constants.Monday:    {TimeRange: "08:00 - 12:00"},
		constants.Wednesday: {TimeRange: "10:00 - 09:00"},
		constants.Friday:    {TimeRange: "07:00 - 18:00"},
	}

	errs := v.ValidateDraft(d, Context{Scope: ScopeSchedule, Today: today})
	if errs["Quarta Feira"] != constants.MsgDayEndBeforeStart {
		t.Errorf("Wednesday = %q", errs["Quarta Feira"])
	}
	if errs["Sexta Feira"] != constants.MsgDayDurationOutOfRange {
		t.Errorf("Friday = %q", errs["Sexta Feira"])
	}
	if errs.Has("Segunda Feira") {
		t.Error("Monday is valid and must have no error")
	}
}

func TestErrors(t *testing.T) {
	errs := NewErrors()
	if errs.Err() != nil {
		t.Error("empty Errors should yield nil error")
	}

	errs.Add("endDate", "first")
	errs.Add("endDate", "second")
	errs.Add("Sexta Feira", "day")
	errs.Add("projectTitle", "title")
	errs.Add("zzz", "unknown")

	if errs["endDate"] != "first" {
		t.Errorf("Add should keep the first message, got %q", errs["endDate"])
	}
	wantOrder := []string{"projectTitle", "Sexta Feira", "endDate", "zzz"}
	if got := errs.Fields(); !reflect.DeepEqual(got, wantOrder) {
		t.Errorf("Fields() = %v, want %v", got, wantOrder)
	}
	if errs.First() != "title" {
		t.Errorf("First() = %q", errs.First())
	}
	if !strings.HasPrefix(errs.Error(), "projectTitle: title; ") {
		t.Errorf("Error() = %q", errs.Error())
	}

	errs.Clear("projectTitle")
	if errs.Has("projectTitle") {
		t.Error("Clear did not remove the field")
	}

	other := Errors{"endDate": "other", "course": "c"}
	errs.Merge(other)
	if errs["endDate"] != "first" || errs["course"] != "c" {
		t.Errorf("Merge = %v", errs)
	}
}
