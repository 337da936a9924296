package analytics

import (
	"time"

	"bookclub_backend/internal/model"
)

// GoalSatisfied reports whether the entries meet a habit/metric goal's target.
// Entries must already be restricted to the interval under judgment.
func GoalSatisfied(goal *model.Goal, entries []model.GoalEntry) (bool, error) {
	switch goal.Measure {
	case model.MeasureCount:
		return len(entries) >= goal.TargetCount, nil
	case model.MeasureSum:
		var total float64
		for _, e := range entries {
			if e.Quantity != nil {
				total += *e.Quantity
			}
		}
		return total >= goal.TargetQuantity, nil
	default:
		return false, ErrInvalidMeasure
	}
}

// EvaluateGoal produces the full verdict for one goal over one entry window.
// Milestone and one_time goals ignore entries entirely.
func EvaluateGoal(goal *model.Goal, entries []model.GoalEntry) (model.Evaluation, error) {
	switch goal.Type {
	case model.GoalMilestone:
		done := 0
		for _, m := range goal.Milestones {
			if m.Done {
				done++
			}
		}
		total := len(goal.Milestones)
		return model.Evaluation{
			Completed: total > 0 && done == total,
			Actual:    float64(done),
			Target:    float64(total),
		}, nil

	case model.GoalOneTime:
		actual := 0.0
		if goal.Completed {
			actual = 1
		}
		return model.Evaluation{
			Completed: goal.Completed,
			Actual:    actual,
			Target:    1,
		}, nil
	}

	switch goal.Measure {
	case model.MeasureCount:
		return model.Evaluation{
			Completed: len(entries) >= goal.TargetCount,
			Actual:    float64(len(entries)),
			Target:    float64(goal.TargetCount),
		}, nil
	case model.MeasureSum:
		var total float64
		for _, e := range entries {
			if e.Quantity != nil {
				total += *e.Quantity
			}
		}
		return model.Evaluation{
			Completed: total >= goal.TargetQuantity,
			Actual:    total,
			Target:    goal.TargetQuantity,
			Unit:      goal.Unit,
		}, nil
	default:
		return model.Evaluation{}, ErrInvalidMeasure
	}
}

// ResolveWindow maps a period token to the entry window EvaluateGoal should be
// fed from. "current" needs the goal's cadence; "all" means unrestricted
// (nil); "range" takes explicit bounds with the end pushed to end-of-day.
func ResolveWindow(goal *model.Goal, period string, start, end time.Time, now time.Time) (*PeriodBounds, error) {
	switch period {
	case "", "current":
		// Milestone and one_time goals have no cadence and no window.
		if goal.Type == model.GoalMilestone || goal.Type == model.GoalOneTime {
			return nil, nil
		}
		if goal.Cadence == "" {
			return nil, ErrMissingCadence
		}
		bounds, err := PeriodBoundaries(goal.Cadence, now)
		if err != nil {
			return nil, err
		}
		return &bounds, nil

	case "all":
		return nil, nil

	case "range":
		if start.IsZero() || end.IsZero() {
			return nil, ErrInvalidPeriod
		}
		endOfDay := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
		return &PeriodBounds{Start: start.UTC(), End: endOfDay}, nil

	default:
		return nil, ErrInvalidPeriod
	}
}
