package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ClockLayout = "15:04"
	DateLayout  = "2006-01-02"
)

// ParseClock converts an "HH:MM" string into minutes from midnight.
func ParseClock(value string) (int, error) {
	parsed, err := time.Parse(ClockLayout, value)
	if err != nil {
		return 0, err
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

func FormatClock(minutes int) string {
	return time.Date(0, 1, 1, minutes/60, minutes%60, 0, 0, time.UTC).Format(ClockLayout)
}

func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// Overlaps reports whether the half-open intervals [aStart,aEnd) and
// [bStart,bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// DurationHours converts a minute interval to decimal hours rounded half-up
// to two places. Cross-midnight intervals are the caller's problem; the
// engine rejects them before getting here.
func DurationHours(startMinutes, endMinutes int) decimal.Decimal {
	seconds := decimal.NewFromInt(int64(endMinutes-startMinutes) * 60)
	return seconds.Div(decimal.NewFromInt(3600)).Round(2)
}

// SameDate compares the calendar day of two timestamps ignoring clock time.
func SameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// TruncateToDate drops the clock portion of a timestamp, keeping UTC.
func TruncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
