package utils

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/julianstephens/hae/internal/constants"
)

// dateLayouts are tried in order when reading dates that came back from the API.
var dateLayouts = []string{
	constants.DateFormat,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	if len(timeStr) != len(constants.TimeFormat) {
		return time.Time{}, fmt.Errorf("invalid time %q (expected HH:MM)", timeStr)
	}
	return time.Parse(constants.TimeFormat, timeStr)
}

// ParseTimeToMinutes parses a time string (HH:MM) and returns the number of minutes from midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	t, err := ParseTime(timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// MinutesOrZero is ParseTimeToMinutes for callers that treat malformed input as midnight.
func MinutesOrZero(timeStr string) int {
	m, err := ParseTimeToMinutes(timeStr)
	if err != nil {
		return 0
	}
	return m
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}

// JoinTimeRange renders a start/end pair as "HH:MM - HH:MM".
func JoinTimeRange(start, end string) string {
	return start + constants.TimeRangeSeparator + end
}

// SplitTimeRange is the inverse of JoinTimeRange. Whitespace around the dash is optional.
func SplitTimeRange(r string) (start, end string, ok bool) {
	parts := strings.SplitN(r, "-", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	start = strings.TrimSpace(parts[0])
	end = strings.TrimSpace(parts[1])
	if start == "" || end == "" {
		return "", "", false
	}
	return start, end, true
}

// ParseDate parses a calendar date. Timestamps are accepted and truncated to their date.
// The result is midnight UTC of that civil date.
func ParseDate(dateStr string) (time.Time, error) {
	s := strings.TrimSpace(dateStr)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", dateStr)
}

// NormalizeDate rewrites any accepted date form as YYYY-MM-DD. Unparseable input is returned as-is.
func NormalizeDate(dateStr string) string {
	t, err := ParseDate(dateStr)
	if err != nil {
		return dateStr
	}
	return t.Format(constants.DateFormat)
}

// CivilDate returns the calendar date of t, as seen in t's location, at midnight UTC.
func CivilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Semester buckets a date into "YYYY/1" (January to June) or "YYYY/2".
func Semester(date time.Time) string {
	half := 2
	if date.Month() <= time.June {
		half = 1
	}
	return fmt.Sprintf("%d/%d", date.Year(), half)
}

// SemesterOf parses dateStr and returns its semester.
func SemesterOf(dateStr string) (string, error) {
	t, err := ParseDate(dateStr)
	if err != nil {
		return "", err
	}
	return Semester(t), nil
}

// Round2 rounds to two decimal places.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}
