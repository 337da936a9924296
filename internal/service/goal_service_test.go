package service

import (
	"testing"

	"bookclub_backend/internal/model"
	"bookclub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateShapeHabit(t *testing.T) {
	goal := &model.Goal{Type: model.GoalHabit, Cadence: model.CadenceDay, TargetCount: 3}
	require.NoError(t, validateShape(goal))
	assert.Equal(t, model.MeasureCount, goal.Measure, "habits always count occurrences")

	assert.ErrorIs(t, validateShape(&model.Goal{Type: model.GoalHabit, TargetCount: 3}), util.ErrInvalidGoal, "cadence required")
	assert.ErrorIs(t, validateShape(&model.Goal{Type: model.GoalHabit, Cadence: model.CadenceDay}), util.ErrInvalidGoal, "target required")
}

func TestValidateShapeMetric(t *testing.T) {
	goal := &model.Goal{Type: model.GoalMetric, Cadence: model.CadenceWeek, TargetQuantity: 50, Unit: "pages"}
	require.NoError(t, validateShape(goal))
	assert.Equal(t, model.MeasureSum, goal.Measure)

	assert.ErrorIs(t, validateShape(&model.Goal{Type: model.GoalMetric, Cadence: model.CadenceWeek, TargetQuantity: 50}), util.ErrInvalidGoal, "unit required")
	assert.ErrorIs(t, validateShape(&model.Goal{Type: model.GoalMetric, Cadence: model.CadenceWeek, Unit: "pages"}), util.ErrInvalidGoal, "positive target required")
}

func TestValidateShapeClearsFieldsForChecklistTypes(t *testing.T) {
	goal := &model.Goal{Type: model.GoalMilestone, Cadence: model.CadenceDay, Measure: model.MeasureCount}
	require.NoError(t, validateShape(goal))
	assert.Empty(t, goal.Cadence, "milestone goals carry no cadence")
	assert.Empty(t, goal.Measure)

	oneTime := &model.Goal{Type: model.GoalOneTime, Cadence: model.CadenceWeek}
	require.NoError(t, validateShape(oneTime))
	assert.Empty(t, oneTime.Cadence)
}

func TestValidateShapeUnknownType(t *testing.T) {
	assert.ErrorIs(t, validateShape(&model.Goal{Type: "bucket_list"}), util.ErrInvalidGoal)
}
