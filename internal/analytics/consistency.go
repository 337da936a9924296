package analytics

import (
	"time"

	"bookclub_backend/internal/model"
)

// maxLookback caps the backward period walk so adversarial ranges always
// terminate. For cadence=day this silently truncates ranges beyond ~100 days.
const maxLookback = 100

// EntryFetcher supplies the entries for one goal restricted to an interval.
// The gorm repository satisfies this in production; tests use an in-memory map.
type EntryFetcher interface {
	EntriesInRange(userID, goalID uint, start, end time.Time) ([]model.GoalEntry, error)
}

// Scorer walks a habit goal backward period by period and derives its
// consistency rate and current streak. Now is injected so reports are
// reproducible under a frozen clock.
type Scorer struct {
	Entries EntryFetcher
	Now     func() time.Time
}

func NewScorer(entries EntryFetcher) *Scorer {
	return &Scorer{Entries: entries, Now: time.Now}
}

func (s *Scorer) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// HabitConsistency scores one habit goal over [rangeStart, rangeEnd].
// A nil rangeStart means the epoch; a nil rangeEnd means now. Returns nil
// for goals that are not habits or lack a cadence.
//
// A period counts only when it overlaps the range for a positive duration.
// Periods are half-open, so a period starting exactly at rangeEnd shares a
// single instant with the range and is excluded.
//
// The in-progress period is always excluded: a habit due today must not be
// counted as a miss before the day ends, nor as a win before it has fully
// elapsed.
func (s *Scorer) HabitConsistency(userID uint, goal *model.Goal, rangeStart, rangeEnd *time.Time, includeStreak bool) (*model.ConsistencyResult, error) {
	if goal.Type != model.GoalHabit || goal.Cadence == "" {
		return nil, nil
	}

	now := s.now()

	from := time.Time{}
	if rangeStart != nil {
		from = rangeStart.UTC()
	}
	to := now
	if rangeEnd != nil && rangeEnd.UTC().Before(now) {
		to = rangeEnd.UTC()
	}

	bounds, err := PeriodBoundaries(goal.Cadence, now)
	if err != nil {
		return nil, err
	}

	periods := make([]model.PeriodOutcome, 0, 16)
	completed := 0

	for i := 0; i < maxLookback && !bounds.Start.Before(from); i++ {
		overlaps := bounds.Start.Before(to) && bounds.End.After(from)
		elapsed := !bounds.End.After(now)

		if overlaps && elapsed {
			entries, err := s.Entries.EntriesInRange(userID, goal.ID, bounds.Start, bounds.End)
			if err != nil {
				return nil, err
			}
			ok, err := GoalSatisfied(goal, entries)
			if err != nil {
				return nil, err
			}
			if ok {
				completed++
			}
			periods = append(periods, model.PeriodOutcome{
				Start:     bounds.Start,
				End:       bounds.End,
				Completed: ok,
			})
		}

		bounds, err = PreviousPeriodBoundaries(goal.Cadence, bounds.Start)
		if err != nil {
			return nil, err
		}
	}

	result := &model.ConsistencyResult{Periods: periods}
	if len(periods) > 0 {
		result.Rate = 100 * float64(completed) / float64(len(periods))
	}

	if includeStreak {
		// Current streak only: consecutive wins from the most recent
		// elapsed period, broken by the first miss.
		for _, p := range periods {
			if !p.Completed {
				break
			}
			result.Streak++
		}
	}

	return result, nil
}
