package utils

import (
	"testing"
	"time"
)

func TestParseTimeToMinutes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "midnight", input: "00:00", want: 0},
		{name: "morning", input: "08:30", want: 510},
		{name: "last minute", input: "23:59", want: 1439},
		{name: "empty", input: "", wantErr: true},
		{name: "single digit hour", input: "8:00", wantErr: true},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "10:60", wantErr: true},
		{name: "garbage", input: "ab:cd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeToMinutes(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTimeToMinutes(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseTimeToMinutes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestMinutesOrZero(t *testing.T) {
	if got := MinutesOrZero("garbage"); got != 0 {
		t.Errorf("MinutesOrZero(garbage) = %d, want 0", got)
	}
	if got := MinutesOrZero("12:15"); got != 735 {
		t.Errorf("MinutesOrZero(12:15) = %d, want 735", got)
	}
}

func TestSplitTimeRange(t *testing.T) {
	tests := []struct {
		input     string
		start     string
		end       string
		wantValid bool
	}{
		{"08:00 - 12:00", "08:00", "12:00", true},
		{"08:00-12:00", "08:00", "12:00", true},
		{"  13:30 -  17:45 ", "13:30", "17:45", true},
		{"08:00", "", "", false},
		{"08:00 - ", "", "", false},
		{"", "", "", false},
	}

	for _, tt := range tests {
		start, end, ok := SplitTimeRange(tt.input)
		if ok != tt.wantValid || start != tt.start || end != tt.end {
			t.Errorf("SplitTimeRange(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.input, start, end, ok, tt.start, tt.end, tt.wantValid)
		}
	}

	if got := JoinTimeRange("08:00", "12:00"); got != "08:00 - 12:00" {
		t.Errorf("JoinTimeRange = %q", got)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "2025-03-10", want: "2025-03-10"},
		{input: "2025-03-10T00:00:00", want: "2025-03-10"},
		{input: "2025-03-10T21:15:00Z", want: "2025-03-10"},
		{input: "2025-03-10T21:15:00.123", want: "2025-03-10"},
		{input: "10/03/2025", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseDate(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			continue
		}
		if got.Format("2006-01-02") != tt.want || got.Location() != time.UTC || got.Hour() != 0 {
			t.Errorf("ParseDate(%q) = %v, want %s at midnight UTC", tt.input, got, tt.want)
		}
	}

	if got := NormalizeDate("2025-03-10T00:00:00"); got != "2025-03-10" {
		t.Errorf("NormalizeDate = %q", got)
	}
	if got := NormalizeDate("not a date"); got != "not a date" {
		t.Errorf("NormalizeDate should leave bad input alone, got %q", got)
	}
}

func TestCivilDate(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	late := time.Date(2025, 3, 10, 23, 30, 0, 0, loc)
	got := CivilDate(late)
	want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("CivilDate = %v, want %v", got, want)
	}
}

func TestSemester(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2025-01-01", "2025/1"},
		{"2025-06-30", "2025/1"},
		{"2025-07-01", "2025/2"},
		{"2024-12-31", "2024/2"},
	}

	for _, tt := range tests {
		got, err := SemesterOf(tt.date)
		if err != nil {
			t.Fatalf("SemesterOf(%q) unexpected error: %v", tt.date, err)
		}
		if got != tt.want {
			t.Errorf("SemesterOf(%q) = %q, want %q", tt.date, got, tt.want)
		}
	}

	if _, err := SemesterOf("bad"); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{4, 4},
		{1.0 / 3.0, 0.33},
		{2.0 / 3.0, 0.67},
		{0.125, 0.13},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
