package analytics

import (
	"time"

	"bookclub_backend/internal/model"
)

// PeriodBounds is a half-open UTC interval [Start, End) of one cadence unit.
//
// All period math is UTC regardless of the user's timezone; the reminder
// scheduler is the only timezone-aware part of the system.
type PeriodBounds struct {
	Start time.Time
	End   time.Time
}

// PeriodBoundaries returns the interval of the given cadence containing ref.
//
// day: midnight UTC to next midnight. week: ISO week, Monday 00:00 UTC.
// month: first of the calendar month. quarter: first of the 3-month block.
func PeriodBoundaries(cadence model.GoalCadence, ref time.Time) (PeriodBounds, error) {
	t := ref.UTC()

	switch cadence {
	case model.CadenceDay:
		start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return PeriodBounds{Start: start, End: start.AddDate(0, 0, 1)}, nil

	case model.CadenceWeek:
		// Sunday is 6 days past Monday, any other day is weekday-1.
		daysPastMonday := int(t.Weekday()) - 1
		if t.Weekday() == time.Sunday {
			daysPastMonday = 6
		}
		monday := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).
			AddDate(0, 0, -daysPastMonday)
		return PeriodBounds{Start: monday, End: monday.AddDate(0, 0, 7)}, nil

	case model.CadenceMonth:
		start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		return PeriodBounds{Start: start, End: start.AddDate(0, 1, 0)}, nil

	case model.CadenceQuarter:
		quarterMonth := time.Month((int(t.Month())-1)/3*3 + 1)
		start := time.Date(t.Year(), quarterMonth, 1, 0, 0, 0, 0, time.UTC)
		return PeriodBounds{Start: start, End: start.AddDate(0, 3, 0)}, nil

	default:
		return PeriodBounds{}, ErrInvalidCadence
	}
}

// PreviousPeriodBoundaries steps exactly one cadence unit back from
// currentStart and re-derives the end the same way PeriodBoundaries would.
func PreviousPeriodBoundaries(cadence model.GoalCadence, currentStart time.Time) (PeriodBounds, error) {
	start := currentStart.UTC()

	switch cadence {
	case model.CadenceDay:
		prev := start.AddDate(0, 0, -1)
		return PeriodBounds{Start: prev, End: prev.AddDate(0, 0, 1)}, nil
	case model.CadenceWeek:
		prev := start.AddDate(0, 0, -7)
		return PeriodBounds{Start: prev, End: prev.AddDate(0, 0, 7)}, nil
	case model.CadenceMonth:
		prev := start.AddDate(0, -1, 0)
		return PeriodBounds{Start: prev, End: prev.AddDate(0, 1, 0)}, nil
	case model.CadenceQuarter:
		prev := start.AddDate(0, -3, 0)
		return PeriodBounds{Start: prev, End: prev.AddDate(0, 3, 0)}, nil
	default:
		return PeriodBounds{}, ErrInvalidCadence
	}
}
