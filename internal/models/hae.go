package models

import (
	"github.com/julianstephens/hae/internal/constants"
	"github.com/julianstephens/hae/internal/utils"
)

// ScheduleEntry is the in-memory value of a weekly schedule slot.
type ScheduleEntry struct {
	TimeRange string `json:"timeRange"` // "HH:MM - HH:MM"
}

// WeeklySchedule maps each selected weekday to its time range.
type WeeklySchedule map[constants.Weekday]ScheduleEntry

// DayTimes holds the raw start and end inputs of one weekday.
type DayTimes struct {
	Start string `json:"start"` // HH:MM format
	End   string `json:"end"`   // HH:MM format
}

// Complete reports whether both times were entered.
func (d DayTimes) Complete() bool {
	return d.Start != "" && d.End != ""
}

// DailyTimes maps weekday to the times typed for it.
type DailyTimes map[constants.Weekday]DayTimes

// ToWire flattens the schedule to the {day: "HH:MM - HH:MM"} shape the API expects.
func (ws WeeklySchedule) ToWire() map[string]string {
	if ws == nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(ws))
	for day, entry := range ws {
		out[string(day)] = entry.TimeRange
	}
	return out
}

// WeeklyScheduleFromWire wraps a flat API schedule into entries.
func WeeklyScheduleFromWire(wire map[string]string) WeeklySchedule {
	ws := make(WeeklySchedule, len(wire))
	for day, r := range wire {
		ws[constants.Weekday(day)] = ScheduleEntry{TimeRange: r}
	}
	return ws
}

// Times splits every entry back into start/end inputs. Malformed ranges become empty times.
func (ws WeeklySchedule) Times() DailyTimes {
	times := make(DailyTimes, len(ws))
	for day, entry := range ws {
		start, end, _ := utils.SplitTimeRange(entry.TimeRange)
		times[day] = DayTimes{Start: start, End: end}
	}
	return times
}

// HaeDraft is the request being edited in the form.
type HaeDraft struct {
	EmployeeID         string                `json:"employeeId"`
	InstitutionID      string                `json:"institutionId"`
	InstitutionCode    int                   `json:"institutionCode"`
	ProjectTitle       string                `json:"projectTitle" validate:"required"`
	ProjectType        constants.ProjectType `json:"projectType" validate:"required,project_type"`
	Course             string                `json:"course" validate:"required"`
	ProjectDescription string                `json:"projectDescription" validate:"required"`
	Modality           constants.Modality    `json:"modality" validate:"required,modality"`
	Dimensao           constants.Dimensao    `json:"dimensao" validate:"required,dimensao"`
	DayOfWeek          []constants.Weekday   `json:"dayOfWeek"`
	WeeklySchedule     WeeklySchedule        `json:"weeklySchedule"`
	WeeklyHours        float64               `json:"weeklyHours"`
	TimeRange          string                `json:"timeRange"`
	StartDate          string                `json:"startDate"` // YYYY-MM-DD format
	EndDate            string                `json:"endDate"`   // YYYY-MM-DD format
	StudentRAs         []string              `json:"studentRAs"`
	Observations       string                `json:"observations"`
}

// HasDay reports whether day is selected.
func (d *HaeDraft) HasDay(day constants.Weekday) bool {
	for _, w := range d.DayOfWeek {
		if w == day {
			return true
		}
	}
	return false
}

// HaePayload is the body of create and update calls.
type HaePayload struct {
	EmployeeID         string                `json:"employeeId"`
	InstitutionID      string                `json:"institutionId,omitempty"`
	InstitutionCode    int                   `json:"institutionCode"`
	ProjectTitle       string                `json:"projectTitle"`
	ProjectType        constants.ProjectType `json:"projectType"`
	Course             string                `json:"course"`
	ProjectDescription string                `json:"projectDescription"`
	Modality           constants.Modality    `json:"modality"`
	Dimensao           constants.Dimensao    `json:"dimensao"`
	DayOfWeek          []constants.Weekday   `json:"dayOfWeek"`
	WeeklySchedule     map[string]string     `json:"weeklySchedule"`
	WeeklyHours        float64               `json:"weeklyHours"`
	TimeRange          string                `json:"timeRange"`
	StartDate          string                `json:"startDate"`
	EndDate            string                `json:"endDate"`
	StudentRAs         []string              `json:"studentRAs"`
	Observations       string                `json:"observations"`
}

// Payload converts the draft to its wire form. Days are sorted, RAs reduced to digits
// and the schedule flattened.
func (d HaeDraft) Payload() HaePayload {
	days := SortWeekdays(d.DayOfWeek)

	ras := make([]string, 0, len(d.StudentRAs))
	for _, ra := range d.StudentRAs {
		if digits := utils.DigitsOnly(ra); digits != "" {
			ras = append(ras, digits)
		}
	}

	return HaePayload{
		EmployeeID:         d.EmployeeID,
		InstitutionID:      d.InstitutionID,
		InstitutionCode:    d.InstitutionCode,
		ProjectTitle:       d.ProjectTitle,
		ProjectType:        d.ProjectType,
		Course:             d.Course,
		ProjectDescription: d.ProjectDescription,
		Modality:           d.Modality,
		Dimensao:           d.Dimensao,
		DayOfWeek:          days,
		WeeklySchedule:     d.WeeklySchedule.ToWire(),
		WeeklyHours:        d.WeeklyHours,
		TimeRange:          d.TimeRange,
		StartDate:          d.StartDate,
		EndDate:            d.EndDate,
		StudentRAs:         ras,
		Observations:       d.Observations,
	}
}

// Draft turns a wire payload back into a draft. Used for drafts read from files.
func (p HaePayload) Draft() HaeDraft {
	return HaeDraft{
		EmployeeID:         p.EmployeeID,
		InstitutionID:      p.InstitutionID,
		InstitutionCode:    p.InstitutionCode,
		ProjectTitle:       p.ProjectTitle,
		ProjectType:        p.ProjectType,
		Course:             p.Course,
		ProjectDescription: p.ProjectDescription,
		Modality:           p.Modality,
		Dimensao:           p.Dimensao,
		DayOfWeek:          SortWeekdays(p.DayOfWeek),
		WeeklySchedule:     WeeklyScheduleFromWire(p.WeeklySchedule),
		WeeklyHours:        p.WeeklyHours,
		TimeRange:          p.TimeRange,
		StartDate:          utils.NormalizeDate(p.StartDate),
		EndDate:            utils.NormalizeDate(p.EndDate),
		StudentRAs:         append([]string(nil), p.StudentRAs...),
		Observations:       p.Observations,
	}
}

// HaeRecord is a row of the professor's request list.
type HaeRecord struct {
	ID           string                `json:"id"`
	ProjectTitle string                `json:"projectTitle"`
	Course       string                `json:"course"`
	ProjectType  constants.ProjectType `json:"projectType"`
	Status       constants.Status      `json:"status"`
	WeeklyHours  float64               `json:"weeklyHours"`
	StartDate    string                `json:"startDate"`
	EndDate      string                `json:"endDate"`
}

// HaeDetail is a single request as returned by getHaeById.
type HaeDetail struct {
	ID                 string                `json:"id"`
	ProjectTitle       string                `json:"projectTitle"`
	ProfessorName      string                `json:"professorName"`
	EmployeeID         string                `json:"employeeId,omitempty"`
	Status             constants.Status      `json:"status"`
	Course             string                `json:"course"`
	ProjectType        constants.ProjectType `json:"projectType"`
	Modality           constants.Modality    `json:"modality"`
	Dimensao           constants.Dimensao    `json:"dimensao"`
	WeeklyHours        float64               `json:"weeklyHours"`
	StartDate          string                `json:"startDate"`
	EndDate            string                `json:"endDate"`
	DayOfWeek          []constants.Weekday   `json:"dayOfWeek"`
	WeeklySchedule     map[string]string     `json:"weeklySchedule"`
	ProjectDescription string                `json:"projectDescription"`
	Observations       string                `json:"observations"`
	Students           []string              `json:"students"`
	CoordenatorName    string                `json:"coordenatorName,omitempty"`
	UpdatedAt          string                `json:"updatedAt,omitempty"`
	ClosureDraft
}

// Draft hydrates a form draft from the record. Identity is left to the caller.
func (d HaeDetail) Draft() HaeDraft {
	return HaeDraft{
		ProjectTitle:       d.ProjectTitle,
		ProjectType:        d.ProjectType,
		Course:             d.Course,
		ProjectDescription: d.ProjectDescription,
		Modality:           d.Modality,
		Dimensao:           d.Dimensao,
		DayOfWeek:          SortWeekdays(d.DayOfWeek),
		WeeklySchedule:     WeeklyScheduleFromWire(d.WeeklySchedule),
		WeeklyHours:        d.WeeklyHours,
		StartDate:          utils.NormalizeDate(d.StartDate),
		EndDate:            utils.NormalizeDate(d.EndDate),
		StudentRAs:         append([]string(nil), d.Students...),
		Observations:       d.Observations,
	}
}

// Record summarises the detail as a list row.
func (d HaeDetail) Record() HaeRecord {
	return HaeRecord{
		ID:           d.ID,
		ProjectTitle: d.ProjectTitle,
		Course:       d.Course,
		ProjectType:  d.ProjectType,
		Status:       d.Status,
		WeeklyHours:  d.WeeklyHours,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
	}
}

// SortWeekdays returns days in display order with unknown values last, dropping duplicates.
func SortWeekdays(days []constants.Weekday) []constants.Weekday {
	seen := make(map[constants.Weekday]bool, len(days))
	out := make([]constants.Weekday, 0, len(days))
	for _, w := range constants.Weekdays {
		for _, d := range days {
			if d == w && !seen[d] {
				seen[d] = true
				out = append(out, d)
			}
		}
	}
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	return out
}
