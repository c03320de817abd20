package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	t.Run("Valid Clock Values", func(t *testing.T) {
		minutes, err := ParseClock("00:00")
		require.NoError(t, err)
		assert.Equal(t, 0, minutes)

		minutes, err = ParseClock("09:30")
		require.NoError(t, err)
		assert.Equal(t, 570, minutes)

		minutes, err = ParseClock("23:59")
		require.NoError(t, err)
		assert.Equal(t, 1439, minutes)
	})

	t.Run("Invalid Clock Values", func(t *testing.T) {
		_, err := ParseClock("24:00")
		assert.Error(t, err)

		_, err = ParseClock("9:30am")
		assert.Error(t, err)

		_, err = ParseClock("")
		assert.Error(t, err)
	})
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "09:30", FormatClock(570))
	assert.Equal(t, "23:59", FormatClock(1439))
}

func TestOverlaps(t *testing.T) {
	t.Run("Intersecting Intervals", func(t *testing.T) {
		assert.True(t, Overlaps(540, 600, 570, 630), "partial overlap should conflict")
		assert.True(t, Overlaps(540, 600, 540, 600), "identical intervals should conflict")
		assert.True(t, Overlaps(540, 600, 550, 560), "contained interval should conflict")
	})

	t.Run("Touching Intervals Are Free", func(t *testing.T) {
		assert.False(t, Overlaps(540, 600, 600, 660), "back-to-back slots should not conflict")
		assert.False(t, Overlaps(600, 660, 540, 600), "back-to-back slots should not conflict either way")
	})

	t.Run("Disjoint Intervals", func(t *testing.T) {
		assert.False(t, Overlaps(540, 600, 720, 780))
	})
}

func TestDurationHours(t *testing.T) {
	assert.Equal(t, "1.5", DurationHours(540, 630).String())
	assert.Equal(t, "2", DurationHours(540, 660).String())
	assert.Equal(t, "0.83", DurationHours(0, 50).String(), "50 minutes rounds to 0.83 hours")
	assert.Equal(t, "1.67", DurationHours(0, 100).String(), "100 minutes rounds to 1.67 hours")
}

func TestSameDate(t *testing.T) {
	morning := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 14, 22, 30, 0, 0, time.UTC)
	nextDay := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDate(morning, evening))
	assert.False(t, SameDate(evening, nextDay))
}

func TestTruncateToDate(t *testing.T) {
	stamp := time.Date(2026, 3, 14, 17, 45, 12, 999, time.UTC)
	truncated := TruncateToDate(stamp)

	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), truncated)
	assert.Equal(t, time.UTC, truncated.Location())
}
