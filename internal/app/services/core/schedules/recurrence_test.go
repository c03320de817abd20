package schedules

import (
	"testing"
	"time"

	"carelink-service/internal/pkg/dto/requests"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(value string) time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func formatDates(dates []time.Time) []string {
	result := make([]string, 0, len(dates))
	for _, date := range dates {
		result = append(result, date.Format("2006-01-02"))
	}
	return result
}

func TestExpandRecurrenceDaily(t *testing.T) {
	t.Run("Occurrences", func(t *testing.T) {
		dates, err := expandRecurrence(day("2026-01-05"), &requests.Recurrence{
			Frequency:   "daily",
			EndType:     "occurrences",
			Occurrences: 3,
		}, 366)
		require.NoError(t, err)
		assert.Equal(t, []string{"2026-01-05", "2026-01-06", "2026-01-07"}, formatDates(dates))
	})

	t.Run("End Date Inclusive", func(t *testing.T) {
		dates, err := expandRecurrence(day("2026-01-05"), &requests.Recurrence{
			Frequency: "daily",
			EndType:   "date",
			EndDate:   "2026-01-07",
		}, 366)
		require.NoError(t, err)
		assert.Equal(t, []string{"2026-01-05", "2026-01-06", "2026-01-07"}, formatDates(dates))
	})

	t.Run("Interval", func(t *testing.T) {
		dates, err := expandRecurrence(day("2026-01-05"), &requests.Recurrence{
			Frequency:   "daily",
			Interval:    3,
			EndType:     "occurrences",
			Occurrences: 3,
		}, 366)
		require.NoError(t, err)
		assert.Equal(t, []string{"2026-01-05", "2026-01-08", "2026-01-11"}, formatDates(dates))
	})
}

func TestExpandRecurrenceWeekly(t *testing.T) {
	t.Run("Selected Weekdays", func(t *testing.T) {
		// 2026-01-05 is a Monday.
		dates, err := expandRecurrence(day("2026-01-05"), &requests.Recurrence{
			Frequency:   "weekly",
			Weekdays:    []int{1, 3},
			EndType:     "occurrences",
			Occurrences: 4,
		}, 366)
		require.NoError(t, err)
		assert.Equal(t, []string{"2026-01-05", "2026-01-07", "2026-01-12", "2026-01-14"}, formatDates(dates))
	})

	t.Run("Defaults To Base Weekday", func(t *testing.T) {
		dates, err := expandRecurrence(day("2026-01-07"), &requests.Recurrence{
			Frequency:   "weekly",
			EndType:     "occurrences",
			Occurrences: 3,
		}, 366)
		require.NoError(t, err)
		assert.Equal(t, []string{"2026-01-07", "2026-01-14", "2026-01-21"}, formatDates(dates))
	})

	t.Run("Biweekly Doubles The Interval", func(t *testing.T) {
		dates, err := expandRecurrence(day("2026-01-05"), &requests.Recurrence{
			Frequency:   "biweekly",
			Weekdays:    []int{1},
			EndType:     "occurrences",
			Occurrences: 3,
		}, 366)
		require.NoError(t, err)
		assert.Equal(t, []string{"2026-01-05", "2026-01-19", "2026-02-02"}, formatDates(dates))
	})

	t.Run("Sunday Is ISO Day Seven", func(t *testing.T) {
		// 2026-01-11 is a Sunday.
		dates, err := expandRecurrence(day("2026-01-05"), &requests.Recurrence{
			Frequency:   "weekly",
			Weekdays:    []int{7},
			EndType:     "occurrences",
			Occurrences: 2,
		}, 366)
		require.NoError(t, err)
		assert.Equal(t, []string{"2026-01-11", "2026-01-18"}, formatDates(dates))
	})
}

func TestExpandRecurrenceMonthly(t *testing.T) {
	dates, err := expandRecurrence(day("2026-01-15"), &requests.Recurrence{
		Frequency:   "monthly",
		EndType:     "occurrences",
		Occurrences: 3,
	}, 366)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-01-15", "2026-02-15", "2026-03-15"}, formatDates(dates))
}

func TestExpandRecurrenceLimits(t *testing.T) {
	t.Run("Capped At Max Dates", func(t *testing.T) {
		dates, err := expandRecurrence(day("2026-01-05"), &requests.Recurrence{
			Frequency:   "daily",
			EndType:     "occurrences",
			Occurrences: 366,
		}, 10)
		require.NoError(t, err)
		assert.Len(t, dates, 10)
	})

	t.Run("End Date Before Base", func(t *testing.T) {
		_, err := expandRecurrence(day("2026-01-05"), &requests.Recurrence{
			Frequency: "daily",
			EndType:   "date",
			EndDate:   "2026-01-04",
		}, 366)
		assert.Error(t, err)
	})

	t.Run("Unknown Frequency", func(t *testing.T) {
		_, err := expandRecurrence(day("2026-01-05"), &requests.Recurrence{
			Frequency:   "yearly",
			EndType:     "occurrences",
			Occurrences: 2,
		}, 366)
		assert.Error(t, err)
	})

	t.Run("Missing End Date", func(t *testing.T) {
		_, err := expandRecurrence(day("2026-01-05"), &requests.Recurrence{
			Frequency: "daily",
			EndType:   "date",
		}, 366)
		assert.Error(t, err)
	})
}
