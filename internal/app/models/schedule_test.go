package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeslotStatusTransitions(t *testing.T) {
	t.Run("Forward Path", func(t *testing.T) {
		assert.True(t, TimeslotScheduled.CanTransitionTo(TimeslotConfirmed))
		assert.True(t, TimeslotConfirmed.CanTransitionTo(TimeslotInProgress))
		assert.True(t, TimeslotInProgress.CanTransitionTo(TimeslotCompleted))
	})

	t.Run("Cancellation", func(t *testing.T) {
		assert.True(t, TimeslotScheduled.CanTransitionTo(TimeslotCancelled))
		assert.True(t, TimeslotConfirmed.CanTransitionTo(TimeslotCancelled))
		assert.True(t, TimeslotInProgress.CanTransitionTo(TimeslotCancelled))
	})

	t.Run("No Show Only Before Start", func(t *testing.T) {
		assert.True(t, TimeslotScheduled.CanTransitionTo(TimeslotNoShow))
		assert.True(t, TimeslotConfirmed.CanTransitionTo(TimeslotNoShow))
		assert.False(t, TimeslotInProgress.CanTransitionTo(TimeslotNoShow))
	})

	t.Run("No Skipping States", func(t *testing.T) {
		assert.False(t, TimeslotScheduled.CanTransitionTo(TimeslotInProgress))
		assert.False(t, TimeslotScheduled.CanTransitionTo(TimeslotCompleted))
		assert.False(t, TimeslotConfirmed.CanTransitionTo(TimeslotCompleted))
	})

	t.Run("Terminal States Are Frozen", func(t *testing.T) {
		for _, terminal := range []TimeslotStatus{TimeslotCompleted, TimeslotCancelled, TimeslotNoShow} {
			assert.True(t, terminal.IsTerminal())
			for _, next := range []TimeslotStatus{TimeslotScheduled, TimeslotConfirmed, TimeslotInProgress, TimeslotCompleted, TimeslotCancelled, TimeslotNoShow} {
				assert.False(t, terminal.CanTransitionTo(next), "%s -> %s must be rejected", terminal, next)
			}
		}
	})

	t.Run("Validity", func(t *testing.T) {
		assert.True(t, TimeslotScheduled.Valid())
		assert.False(t, TimeslotStatus("done").Valid())
	})
}

func TestTimeslotStatusBillable(t *testing.T) {
	assert.True(t, TimeslotCompleted.Billable())
	assert.True(t, TimeslotConfirmed.Billable())
	assert.False(t, TimeslotScheduled.Billable())
	assert.False(t, TimeslotInProgress.Billable())
	assert.False(t, TimeslotCancelled.Billable())
	assert.False(t, TimeslotNoShow.Billable())
}

func TestScheduleIsBlockedTime(t *testing.T) {
	patientID := uint(12)
	assert.False(t, (&Schedule{PatientID: &patientID}).IsBlockedTime())
	assert.True(t, (&Schedule{}).IsBlockedTime())
}

func TestTimeslotPricingFields(t *testing.T) {
	t.Run("Empty Input", func(t *testing.T) {
		fields, err := (&Timeslot{}).PricingFields()
		require.NoError(t, err)
		assert.Nil(t, fields.HourlyRate)
		assert.Nil(t, fields.Price)
	})

	t.Run("Hourly Rate Keeps Exact Decimal", func(t *testing.T) {
		slot := &Timeslot{PricingInput: `{"hourly_rate": 42.10}`}
		fields, err := slot.PricingFields()
		require.NoError(t, err)
		require.NotNil(t, fields.HourlyRate)
		assert.Equal(t, "42.1", fields.HourlyRate.String())
	})

	t.Run("Price Field", func(t *testing.T) {
		slot := &Timeslot{PricingInput: `{"price": 55.55, "note": "ignored"}`}
		fields, err := slot.PricingFields()
		require.NoError(t, err)
		assert.Nil(t, fields.HourlyRate)
		require.NotNil(t, fields.Price)
		assert.Equal(t, "55.55", fields.Price.String())
	})

	t.Run("Malformed Input", func(t *testing.T) {
		slot := &Timeslot{PricingInput: `{"hourly_rate": `}
		_, err := slot.PricingFields()
		assert.Error(t, err)
	})
}
