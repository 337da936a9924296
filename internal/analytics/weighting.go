package analytics

import (
	"math"
	"sort"

	"bookclub_backend/internal/model"
)

// HabitRate pairs a habit goal with its scored consistency rate.
type HabitRate struct {
	Goal   *model.Goal
	Rate   float64
	Streak int
}

// PositionWeight decays harmonically with rank: position 1 weighs 1.0 and
// later habits contribute diminishing influence without ever reaching zero.
func PositionWeight(position int) float64 {
	return 1 / math.Log2(float64(position)+1)
}

// RankAndWeight sorts a user's habits by consistency rate (descending, ties
// broken by oldest goal first so repeated calls are reproducible), assigns
// 1-based positions and returns the weighted average with per-habit detail.
func RankAndWeight(habits []HabitRate) (float64, []model.HabitDetail) {
	ranked := make([]HabitRate, len(habits))
	copy(ranked, habits)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Rate != ranked[j].Rate {
			return ranked[i].Rate > ranked[j].Rate
		}
		return ranked[i].Goal.CreatedAt.Before(ranked[j].Goal.CreatedAt)
	})

	details := make([]model.HabitDetail, 0, len(ranked))
	var weightedSum, totalWeight float64

	for i, h := range ranked {
		position := i + 1
		weight := PositionWeight(position)
		weightedSum += h.Rate * weight
		totalWeight += weight

		details = append(details, model.HabitDetail{
			GoalID:   h.Goal.ID,
			Title:    h.Goal.Title,
			Position: position,
			Weight:   weight,
			Rate:     h.Rate,
			Streak:   h.Streak,
		})
	}

	if totalWeight == 0 {
		return 0, details
	}
	return weightedSum / totalWeight, details
}
