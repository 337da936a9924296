package analytics

import (
	"testing"
	"time"

	"bookclub_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEntries serves entries from memory, filtered to [start, end).
type fakeEntries struct {
	entries []model.GoalEntry
}

func (f *fakeEntries) EntriesInRange(userID, goalID uint, start, end time.Time) ([]model.GoalEntry, error) {
	var out []model.GoalEntry
	for _, e := range f.entries {
		if e.GoalID == goalID && !e.OccurredAt.Before(start) && e.OccurredAt.Before(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

func frozenScorer(now time.Time, entries []model.GoalEntry) *Scorer {
	return &Scorer{
		Entries: &fakeEntries{entries: entries},
		Now:     func() time.Time { return now },
	}
}

func dailyHabit(id uint) *model.Goal {
	g := &model.Goal{
		Type:        model.GoalHabit,
		Measure:     model.MeasureCount,
		Cadence:     model.CadenceDay,
		TargetCount: 1,
	}
	g.ID = id
	return g
}

func dayEntry(goalID uint, day time.Time) model.GoalEntry {
	return model.GoalEntry{GoalID: goalID, OccurredAt: day.Add(9 * time.Hour)}
}

func TestHabitConsistencyNonHabitIsNil(t *testing.T) {
	s := frozenScorer(time.Now(), nil)

	res, err := s.HabitConsistency(1, &model.Goal{Type: model.GoalMetric, Cadence: model.CadenceDay}, nil, nil, false)
	require.NoError(t, err)
	assert.Nil(t, res)

	res, err = s.HabitConsistency(1, &model.Goal{Type: model.GoalHabit}, nil, nil, false)
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestHabitConsistencyExcludesInProgressPeriod(t *testing.T) {
	// Mid-day with no entry yet today: today must not appear as a miss.
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	goal := dailyHabit(7)
	from := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	entries := []model.GoalEntry{
		dayEntry(7, time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)),
		dayEntry(7, time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)),
		dayEntry(7, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)),
	}

	res, err := frozenScorer(now, entries).HabitConsistency(1, goal, &from, nil, true)
	require.NoError(t, err)
	require.NotNil(t, res)

	require.Len(t, res.Periods, 3)
	for _, p := range res.Periods {
		assert.True(t, p.End.Before(now) || p.End.Equal(now), "only fully elapsed periods qualify")
	}
	assert.Equal(t, time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC), res.Periods[0].Start, "most recent first")
	assert.Equal(t, 100.0, res.Rate)
	assert.Equal(t, 3, res.Streak)
}

func TestHabitConsistencyRateAndStreak(t *testing.T) {
	now := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	goal := dailyHabit(3)
	from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	// Done on 14th and 13th, missed the 12th, done on 11th and 10th.
	entries := []model.GoalEntry{
		dayEntry(3, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)),
		dayEntry(3, time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)),
		dayEntry(3, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)),
		dayEntry(3, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)),
	}

	res, err := frozenScorer(now, entries).HabitConsistency(1, goal, &from, nil, true)
	require.NoError(t, err)
	require.NotNil(t, res)

	require.Len(t, res.Periods, 5)
	assert.Equal(t, 80.0, res.Rate)
	assert.Equal(t, 2, res.Streak, "streak stops at the first miss")
}

func TestHabitConsistencyStreakZeroOnRecentMiss(t *testing.T) {
	now := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	goal := dailyHabit(3)
	from := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

	// Older wins don't matter if the most recent elapsed period is a miss.
	entries := []model.GoalEntry{
		dayEntry(3, time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)),
		dayEntry(3, time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)),
	}

	res, err := frozenScorer(now, entries).HabitConsistency(1, goal, &from, nil, true)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Streak)
	assert.InDelta(t, 100.0*2/3, res.Rate, 1e-9)
}

func TestHabitConsistencyRangeEndExcludesTouchingPeriod(t *testing.T) {
	// A period starting exactly at rangeEnd shares only a single instant
	// with the range and must not be scored.
	now := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	goal := dailyHabit(6)
	from := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	entries := []model.GoalEntry{
		dayEntry(6, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)),
		dayEntry(6, time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)),
	}

	res, err := frozenScorer(now, entries).HabitConsistency(1, goal, &from, &to, false)
	require.NoError(t, err)
	require.NotNil(t, res)

	require.Len(t, res.Periods, 3)
	assert.Equal(t, time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC), res.Periods[0].Start,
		"the period starting at rangeEnd is outside the range")
}

func TestHabitConsistencyMonthlyCadence(t *testing.T) {
	// Calendar months have uneven lengths; the walk must follow the real
	// month boundaries, not a fixed stride.
	now := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	goal := dailyHabit(4)
	goal.Cadence = model.CadenceMonth
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	// One entry in February, none in January. March is in progress.
	entries := []model.GoalEntry{
		dayEntry(4, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)),
		dayEntry(4, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)),
	}

	res, err := frozenScorer(now, entries).HabitConsistency(1, goal, &from, nil, true)
	require.NoError(t, err)
	require.NotNil(t, res)

	require.Len(t, res.Periods, 2)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), res.Periods[0].Start)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), res.Periods[0].End)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), res.Periods[1].Start)
	assert.Equal(t, 50.0, res.Rate)
	assert.Equal(t, 1, res.Streak)
}

func TestHabitConsistencyQuarterlyCadence(t *testing.T) {
	now := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	goal := dailyHabit(5)
	goal.Cadence = model.CadenceQuarter
	from := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	entries := []model.GoalEntry{
		dayEntry(5, time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)),
		dayEntry(5, time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)),
	}

	res, err := frozenScorer(now, entries).HabitConsistency(1, goal, &from, nil, true)
	require.NoError(t, err)
	require.NotNil(t, res)

	// Q3 and Q4 of 2025 are elapsed; Q1 2026 is in progress.
	require.Len(t, res.Periods, 2)
	assert.Equal(t, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), res.Periods[0].Start)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), res.Periods[0].End)
	assert.Equal(t, 100.0, res.Rate)
	assert.Equal(t, 2, res.Streak)
}

func TestHabitConsistencyNoPeriods(t *testing.T) {
	// Range starts in the future relative to every elapsed period.
	now := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	from := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	res, err := frozenScorer(now, nil).HabitConsistency(1, dailyHabit(1), &from, nil, true)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Empty(t, res.Periods)
	assert.Equal(t, 0.0, res.Rate)
	assert.Equal(t, 0, res.Streak)
}

func TestHabitConsistencyLookbackCap(t *testing.T) {
	// An open range walks back at most 100 periods; the in-progress one
	// never qualifies, so at most 99 elapsed daily periods can appear.
	now := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)

	res, err := frozenScorer(now, nil).HabitConsistency(1, dailyHabit(1), nil, nil, false)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, maxLookback-1, len(res.Periods))
	assert.Equal(t, 0.0, res.Rate)
}

func TestHabitConsistencyRateBounds(t *testing.T) {
	now := time.Date(2026, 3, 20, 8, 0, 0, 0, time.UTC)
	goal := dailyHabit(9)
	from := now.AddDate(0, 0, -30)

	var entries []model.GoalEntry
	for i := 1; i <= 30; i += 2 {
		entries = append(entries, dayEntry(9, now.AddDate(0, 0, -i).Truncate(24*time.Hour)))
	}

	res, err := frozenScorer(now, entries).HabitConsistency(1, goal, &from, nil, false)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Rate, 0.0)
	assert.LessOrEqual(t, res.Rate, 100.0)
}

func TestHabitConsistencyDeterministic(t *testing.T) {
	now := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	goal := dailyHabit(3)
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	entries := []model.GoalEntry{
		dayEntry(3, time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)),
		dayEntry(3, time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)),
	}

	s := frozenScorer(now, entries)
	first, err := s.HabitConsistency(1, goal, &from, nil, true)
	require.NoError(t, err)
	second, err := s.HabitConsistency(1, goal, &from, nil, true)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
