package analytics

import (
	"testing"
	"time"

	"bookclub_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func habitCreatedAt(id uint, created time.Time) *model.Goal {
	g := &model.Goal{Type: model.GoalHabit, Title: "habit"}
	g.ID = id
	g.CreatedAt = created
	return g
}

func TestPositionWeight(t *testing.T) {
	assert.Equal(t, 1.0, PositionWeight(1))

	// Strictly decreasing, approaching zero.
	prev := PositionWeight(1)
	for p := 2; p <= 50; p++ {
		w := PositionWeight(p)
		assert.Less(t, w, prev)
		assert.Greater(t, w, 0.0)
		prev = w
	}
	assert.Less(t, PositionWeight(1000), 0.11)
}

func TestRankAndWeightTwoHabits(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	habits := []HabitRate{
		{Goal: habitCreatedAt(1, created), Rate: 80},
		{Goal: habitCreatedAt(2, created.AddDate(0, 0, 1)), Rate: 60},
	}

	avg, details := RankAndWeight(habits)
	require.Len(t, details, 2)

	assert.Equal(t, 1, details[0].Position)
	assert.Equal(t, 1.0, details[0].Weight)
	assert.Equal(t, 80.0, details[0].Rate)

	assert.Equal(t, 2, details[1].Position)
	assert.InDelta(t, 0.6309, details[1].Weight, 1e-4) // 1/log2(3)
	assert.Equal(t, 60.0, details[1].Rate)

	// (80*1 + 60*0.6309) / (1 + 0.6309)
	assert.InDelta(t, 72.263, avg, 1e-3)
}

func TestRankAndWeightTieBreakByCreation(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	habits := []HabitRate{
		{Goal: habitCreatedAt(2, created.AddDate(0, 1, 0)), Rate: 50},
		{Goal: habitCreatedAt(1, created), Rate: 50},
	}

	_, details := RankAndWeight(habits)
	require.Len(t, details, 2)
	assert.Equal(t, uint(1), details[0].GoalID, "oldest goal wins the tie")
	assert.Equal(t, uint(2), details[1].GoalID)
}

func TestRankAndWeightEmpty(t *testing.T) {
	avg, details := RankAndWeight(nil)
	assert.Equal(t, 0.0, avg)
	assert.Empty(t, details)
}

func TestRankAndWeightDoesNotMutateInput(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	habits := []HabitRate{
		{Goal: habitCreatedAt(1, created), Rate: 10},
		{Goal: habitCreatedAt(2, created), Rate: 90},
	}

	RankAndWeight(habits)
	assert.Equal(t, uint(1), habits[0].Goal.ID)
	assert.Equal(t, 10.0, habits[0].Rate)
}
