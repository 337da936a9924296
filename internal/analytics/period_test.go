package analytics

import (
	"testing"
	"time"

	"bookclub_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodBoundariesDay(t *testing.T) {
	ref := time.Date(2026, 3, 14, 17, 42, 9, 0, time.UTC)

	bounds, err := PeriodBoundaries(model.CadenceDay, ref)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), bounds.Start)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), bounds.End)
}

func TestPeriodBoundariesWeek(t *testing.T) {
	// 2026-03-14 is a Saturday, its ISO week starts Monday 2026-03-09.
	ref := time.Date(2026, 3, 14, 17, 42, 9, 0, time.UTC)

	bounds, err := PeriodBoundaries(model.CadenceWeek, ref)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), bounds.Start)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), bounds.End)
}

func TestPeriodBoundariesWeekFromSunday(t *testing.T) {
	// Sunday belongs to the week that started the previous Monday.
	ref := time.Date(2026, 3, 15, 3, 0, 0, 0, time.UTC)

	bounds, err := PeriodBoundaries(model.CadenceWeek, ref)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), bounds.Start)
}

func TestPeriodBoundariesWeekAlwaysMonday(t *testing.T) {
	ref := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 500; i++ {
		bounds, err := PeriodBoundaries(model.CadenceWeek, ref.AddDate(0, 0, i))
		require.NoError(t, err)
		assert.Equal(t, time.Monday, bounds.Start.Weekday())
		assert.Equal(t, 0, bounds.Start.Hour())
		assert.Equal(t, bounds.Start.AddDate(0, 0, 7), bounds.End)
	}
}

func TestPeriodBoundariesMonth(t *testing.T) {
	ref := time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC)

	bounds, err := PeriodBoundaries(model.CadenceMonth, ref)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), bounds.Start)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), bounds.End)
}

func TestPeriodBoundariesQuarter(t *testing.T) {
	cases := []struct {
		ref        time.Time
		wantStart  time.Time
		wantEnd    time.Time
	}{
		{
			time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, c := range cases {
		bounds, err := PeriodBoundaries(model.CadenceQuarter, c.ref)
		require.NoError(t, err)
		assert.Equal(t, c.wantStart, bounds.Start)
		assert.Equal(t, c.wantEnd, bounds.End)
	}
}

func TestPeriodBoundariesInvalidCadence(t *testing.T) {
	_, err := PeriodBoundaries("fortnight", time.Now())
	assert.ErrorIs(t, err, ErrInvalidCadence)

	_, err = PreviousPeriodBoundaries("", time.Now())
	assert.ErrorIs(t, err, ErrInvalidCadence)
}

func TestPeriodRoundTrip(t *testing.T) {
	// Stepping backward then forward must return to the origin period.
	cadences := []model.GoalCadence{
		model.CadenceDay, model.CadenceWeek, model.CadenceMonth, model.CadenceQuarter,
	}
	refs := []time.Time{
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 28, 23, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC), // leap day
		time.Date(2026, 8, 31, 6, 30, 0, 0, time.UTC),
		time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC),
	}

	for _, cadence := range cadences {
		for _, ref := range refs {
			current, err := PeriodBoundaries(cadence, ref)
			require.NoError(t, err)

			prev, err := PreviousPeriodBoundaries(cadence, current.Start)
			require.NoError(t, err)

			forward, err := PeriodBoundaries(cadence, prev.End)
			require.NoError(t, err)
			assert.Equal(t, current.Start, forward.Start, "cadence=%s ref=%s", cadence, ref)
			assert.Equal(t, prev.End, current.Start, "periods must tile, cadence=%s", cadence)
		}
	}
}
