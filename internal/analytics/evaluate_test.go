package analytics

import (
	"testing"
	"time"

	"bookclub_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func qty(v float64) *float64 { return &v }

func entriesAt(times ...time.Time) []model.GoalEntry {
	entries := make([]model.GoalEntry, len(times))
	for i, ts := range times {
		entries[i] = model.GoalEntry{OccurredAt: ts}
	}
	return entries
}

func TestGoalSatisfiedCount(t *testing.T) {
	goal := &model.Goal{Type: model.GoalHabit, Measure: model.MeasureCount, TargetCount: 3}
	now := time.Now()

	ok, err := GoalSatisfied(goal, entriesAt(now, now, now))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = GoalSatisfied(goal, entriesAt(now, now))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGoalSatisfiedSumMissingQuantityIsZero(t *testing.T) {
	goal := &model.Goal{Type: model.GoalMetric, Measure: model.MeasureSum, TargetQuantity: 5}
	entries := []model.GoalEntry{
		{Quantity: qty(3)},
		{Quantity: nil}, // counts as zero
		{Quantity: qty(2)},
	}

	ok, err := GoalSatisfied(goal, entries)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGoalSatisfiedInvalidMeasure(t *testing.T) {
	goal := &model.Goal{Type: model.GoalHabit, Measure: "median"}
	_, err := GoalSatisfied(goal, nil)
	assert.ErrorIs(t, err, ErrInvalidMeasure)
}

func TestEvaluateMetricGoal(t *testing.T) {
	goal := &model.Goal{
		Type:           model.GoalMetric,
		Measure:        model.MeasureSum,
		TargetQuantity: 10,
		Unit:           "miles",
	}
	entries := []model.GoalEntry{
		{Quantity: qty(5)},
		{Quantity: qty(7.5)},
	}

	eval, err := EvaluateGoal(goal, entries)
	require.NoError(t, err)
	assert.True(t, eval.Completed)
	assert.Equal(t, 12.5, eval.Actual)
	assert.Equal(t, 10.0, eval.Target)
	assert.Equal(t, "miles", eval.Unit)
}

func TestEvaluateMilestoneGoal(t *testing.T) {
	goal := &model.Goal{
		Type: model.GoalMilestone,
		Milestones: []model.Milestone{
			{Title: "read part one", Done: true},
			{Title: "read part two", Done: true},
			{Title: "write review", Done: false},
		},
	}

	eval, err := EvaluateGoal(goal, nil)
	require.NoError(t, err)
	assert.False(t, eval.Completed)
	assert.Equal(t, 2.0, eval.Actual)
	assert.Equal(t, 3.0, eval.Target)
}

func TestEvaluateMilestoneGoalEmptyChecklist(t *testing.T) {
	goal := &model.Goal{Type: model.GoalMilestone}

	eval, err := EvaluateGoal(goal, nil)
	require.NoError(t, err)
	assert.False(t, eval.Completed, "an empty checklist is never satisfied")
	assert.Equal(t, 0.0, eval.Target)
}

func TestEvaluateOneTimeGoal(t *testing.T) {
	eval, err := EvaluateGoal(&model.Goal{Type: model.GoalOneTime, Completed: true}, nil)
	require.NoError(t, err)
	assert.True(t, eval.Completed)
	assert.Equal(t, 1.0, eval.Actual)
	assert.Equal(t, 1.0, eval.Target)

	eval, err = EvaluateGoal(&model.Goal{Type: model.GoalOneTime}, nil)
	require.NoError(t, err)
	assert.False(t, eval.Completed)
	assert.Equal(t, 0.0, eval.Actual)
}

func TestResolveWindowCurrent(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	goal := &model.Goal{Type: model.GoalHabit, Measure: model.MeasureCount, Cadence: model.CadenceDay}

	window, err := ResolveWindow(goal, "current", time.Time{}, time.Time{}, now)
	require.NoError(t, err)
	require.NotNil(t, window)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), window.Start)
}

func TestResolveWindowCurrentMissingCadence(t *testing.T) {
	goal := &model.Goal{Type: model.GoalHabit, Measure: model.MeasureCount}
	_, err := ResolveWindow(goal, "current", time.Time{}, time.Time{}, time.Now())
	assert.ErrorIs(t, err, ErrMissingCadence)
}

func TestResolveWindowAll(t *testing.T) {
	goal := &model.Goal{Type: model.GoalHabit, Cadence: model.CadenceDay}
	window, err := ResolveWindow(goal, "all", time.Time{}, time.Time{}, time.Now())
	require.NoError(t, err)
	assert.Nil(t, window)
}

func TestResolveWindowRangeEndsAtEndOfDay(t *testing.T) {
	goal := &model.Goal{Type: model.GoalMetric, Measure: model.MeasureSum, Cadence: model.CadenceWeek}
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	window, err := ResolveWindow(goal, "range", start, end, time.Now())
	require.NoError(t, err)
	require.NotNil(t, window)
	assert.Equal(t, start, window.Start)
	assert.Equal(t, 23, window.End.Hour())
	assert.Equal(t, 10, window.End.Day())
}

func TestResolveWindowUnknownToken(t *testing.T) {
	goal := &model.Goal{Type: model.GoalHabit, Cadence: model.CadenceDay}
	_, err := ResolveWindow(goal, "fortnight", time.Time{}, time.Time{}, time.Now())
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}
