package scheduler

import (
	"github.com/julianstephens/hae/internal/constants"
	"github.com/julianstephens/hae/internal/models"
	"github.com/julianstephens/hae/internal/utils"
)

// Derived holds the fields computed from the day selection and typed times.
type Derived struct {
	WeeklySchedule models.WeeklySchedule
	WeeklyHours    float64
	TimeRange      string
}

// Scheduler turns a weekday selection plus per-day times into a weekly schedule.
// It keeps no state; every call recomputes from its inputs.
type Scheduler struct{}

func New() *Scheduler {
	return &Scheduler{}
}

// Derive builds the schedule for the selected days.
//
// Only days with both times filled get an entry. Hours are summed over days whose
// end is after their start and rounded to two decimals. TimeRange is the first such
// day's range in display order.
func (s *Scheduler) Derive(days []constants.Weekday, times models.DailyTimes) Derived {
	d := Derived{WeeklySchedule: models.WeeklySchedule{}}

	totalMinutes := 0
	for _, day := range models.SortWeekdays(days) {
		t, ok := times[day]
		if !ok || !t.Complete() {
			continue
		}

		r := utils.JoinTimeRange(t.Start, t.End)
		d.WeeklySchedule[day] = models.ScheduleEntry{TimeRange: r}

		minutes, valid := DayMinutes(t)
		if !valid {
			continue
		}
		totalMinutes += minutes
		if d.TimeRange == "" {
			d.TimeRange = r
		}
	}

	d.WeeklyHours = utils.Round2(float64(totalMinutes) / 60)
	return d
}

// Sync reshapes times to match days: deselected days are dropped, new days get
// blank entries, and days that stay selected keep what was typed.
func (s *Scheduler) Sync(days []constants.Weekday, times models.DailyTimes) models.DailyTimes {
	out := make(models.DailyTimes, len(days))
	for _, day := range days {
		out[day] = times[day]
	}
	return out
}

// Apply writes the derived fields onto the draft.
func (s *Scheduler) Apply(draft *models.HaeDraft, times models.DailyTimes) {
	d := s.Derive(draft.DayOfWeek, times)
	draft.WeeklySchedule = d.WeeklySchedule
	draft.WeeklyHours = d.WeeklyHours
	draft.TimeRange = d.TimeRange
}

// DayMinutes returns the length of a day in minutes and whether end is after start.
// Malformed or missing times count as midnight.
func DayMinutes(t models.DayTimes) (int, bool) {
	start := utils.MinutesOrZero(t.Start)
	end := utils.MinutesOrZero(t.End)
	if end <= start {
		return 0, false
	}
	return end - start, true
}
