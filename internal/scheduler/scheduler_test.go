package scheduler

import (
	"reflect"
	"testing"

	"github.com/julianstephens/hae/internal/constants"
	"github.com/julianstephens/hae/internal/models"
)

func TestDerive_SingleDay(t *testing.T) {
	s := New()

	d := s.Derive(
		[]constants.Weekday{constants.Monday},
		models.DailyTimes{constants.Monday: {Start: "08:00", End: "12:00"}},
	)

	if d.WeeklyHours != 4 {
		t.Errorf("WeeklyHours = %v, want 4", d.WeeklyHours)
	}
	want := models.WeeklySchedule{constants.Monday: {TimeRange: "08:00 - 12:00"}}
	if !reflect.DeepEqual(d.WeeklySchedule, want) {
		t.Errorf("WeeklySchedule = %v, want %v", d.WeeklySchedule, want)
	}
	if d.TimeRange != "08:00 - 12:00" {
		t.Errorf("TimeRange = %q", d.TimeRange)
	}
}

func TestDerive(t *testing.T) {
	tests := []struct {
		name          string
		days          []constants.Weekday
		times         models.DailyTimes
		wantHours     float64
		wantEntries   []constants.Weekday
		wantTimeRange string
	}{
		{
			name: "sums every valid day",
			days: []constants.Weekday{constants.Monday, constants.Wednesday},
			times: models.DailyTimes{
				constants.Monday:    {Start: "08:00", End: "12:00"},
				constants.Wednesday: {Start: "13:30", End: "15:00"},
			},
			wantHours:     5.5,
			wantEntries:   []constants.Weekday{constants.Monday, constants.Wednesday},
			wantTimeRange: "08:00 - 12:00",
		},
		{
			name: "rounds to two decimals",
			days: []constants.Weekday{constants.Tuesday},
			times: models.DailyTimes{
				constants.Tuesday: {Start: "08:00", End: "09:20"},
			},
			wantHours:     1.33,
			wantEntries:   []constants.Weekday{constants.Tuesday},
			wantTimeRange: "08:00 - 09:20",
		},
		{
			name: "incomplete day has no entry and no hours",
			days: []constants.Weekday{constants.Monday, constants.Tuesday},
			times: models.DailyTimes{
				constants.Monday:  {Start: "08:00", End: ""},
				constants.Tuesday: {Start: "10:00", End: "12:00"},
			},
			wantHours:     2,
			wantEntries:   []constants.Weekday{constants.Tuesday},
			wantTimeRange: "10:00 - 12:00",
		},
		{
			name: "inverted day keeps entry but adds nothing",
			days: []constants.Weekday{constants.Monday, constants.Friday},
			times: models.DailyTimes{
				constants.Monday: {Start: "12:00", End: "08:00"},
				constants.Friday: {Start: "14:00", End: "16:00"},
			},
			wantHours:     2,
			wantEntries:   []constants.Weekday{constants.Monday, constants.Friday},
			wantTimeRange: "14:00 - 16:00",
		},
		{
			name: "malformed times parse as midnight",
			days: []constants.Weekday{constants.Saturday},
			times: models.DailyTimes{
				constants.Saturday: {Start: "xx", End: "02:00"},
			},
			wantHours:     2,
			wantEntries:   []constants.Weekday{constants.Saturday},
			wantTimeRange: "xx - 02:00",
		},
		{
			name: "deselected day is ignored even with cached times",
			days: []constants.Weekday{constants.Tuesday},
			times: models.DailyTimes{
				constants.Monday:  {Start: "08:00", End: "16:00"},
				constants.Tuesday: {Start: "08:00", End: "09:00"},
			},
			wantHours:     1,
			wantEntries:   []constants.Weekday{constants.Tuesday},
			wantTimeRange: "08:00 - 09:00",
		},
		{
			name:          "nothing selected",
			days:          nil,
			times:         models.DailyTimes{},
			wantHours:     0,
			wantEntries:   nil,
			wantTimeRange: "",
		},
		{
			name: "time range follows display order not selection order",
			days: []constants.Weekday{constants.Friday, constants.Tuesday},
			times: models.DailyTimes{
				constants.Friday:  {Start: "07:00", End: "09:00"},
				constants.Tuesday: {Start: "18:00", End: "20:00"},
			},
			wantHours:     4,
			wantEntries:   []constants.Weekday{constants.Tuesday, constants.Friday},
			wantTimeRange: "18:00 - 20:00",
		},
	}

	s := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := s.Derive(tt.days, tt.times)
			if d.WeeklyHours != tt.wantHours {
				t.Errorf("WeeklyHours = %v, want %v", d.WeeklyHours, tt.wantHours)
			}
			if len(d.WeeklySchedule) != len(tt.wantEntries) {
				t.Errorf("got %d schedule entries, want %d (%v)", len(d.WeeklySchedule), len(tt.wantEntries), d.WeeklySchedule)
			}
			for _, day := range tt.wantEntries {
				if _, ok := d.WeeklySchedule[day]; !ok {
					t.Errorf("missing schedule entry for %s", day)
				}
			}
			if d.TimeRange != tt.wantTimeRange {
				t.Errorf("TimeRange = %q, want %q", d.TimeRange, tt.wantTimeRange)
			}
		})
	}
}

func TestDerive_Idempotent(t *testing.T) {
	s := New()
	days := []constants.Weekday{constants.Monday, constants.Thursday}
	times := models.DailyTimes{
		constants.Monday:   {Start: "08:00", End: "10:45"},
		constants.Thursday: {Start: "19:00", End: "22:00"},
	}

	first := s.Derive(days, times)
	second := s.Derive(days, times)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated derive differs: %+v vs %+v", first, second)
	}
	if first.WeeklyHours != 5.75 {
		t.Errorf("WeeklyHours = %v, want 5.75", first.WeeklyHours)
	}
}

func TestSync(t *testing.T) {
	s := New()
	times := models.DailyTimes{
		constants.Monday:  {Start: "08:00", End: "12:00"},
		constants.Tuesday: {Start: "09:00", End: "11:00"},
	}

	got := s.Sync([]constants.Weekday{constants.Monday, constants.Friday}, times)

	want := models.DailyTimes{
		constants.Monday: {Start: "08:00", End: "12:00"},
		constants.Friday: {},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sync = %v, want %v", got, want)
	}
	if _, ok := times[constants.Friday]; ok {
		t.Error("Sync must not mutate its input")
	}
}

func TestApply(t *testing.T) {
	s := New()
	draft := models.HaeDraft{
		DayOfWeek:   []constants.Weekday{constants.Wednesday},
		WeeklyHours: 99,
		TimeRange:   "stale",
	}

	s.Apply(&draft, models.DailyTimes{constants.Wednesday: {Start: "08:00", End: "16:00"}})

	if draft.WeeklyHours != 8 {
		t.Errorf("WeeklyHours = %v, want 8", draft.WeeklyHours)
	}
	if draft.TimeRange != "08:00 - 16:00" {
		t.Errorf("TimeRange = %q", draft.TimeRange)
	}
	if draft.WeeklySchedule[constants.Wednesday].TimeRange != "08:00 - 16:00" {
		t.Errorf("WeeklySchedule = %v", draft.WeeklySchedule)
	}
}

func TestDayMinutes(t *testing.T) {
	tests := []struct {
		times     models.DayTimes
		want      int
		wantValid bool
	}{
		{models.DayTimes{Start: "08:00", End: "09:00"}, 60, true},
		{models.DayTimes{Start: "09:00", End: "09:00"}, 0, false},
		{models.DayTimes{Start: "10:00", End: "09:00"}, 0, false},
		{models.DayTimes{Start: "", End: ""}, 0, false},
	}
	for _, tt := range tests {
		got, valid := DayMinutes(tt.times)
		if got != tt.want || valid != tt.wantValid {
			t.Errorf("DayMinutes(%+v) = (%d, %v), want (%d, %v)", tt.times, got, valid, tt.want, tt.wantValid)
		}
	}
}
