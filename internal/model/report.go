package model

import "time"

// Derived report shapes. None of these are persisted; every report is
// recomputed from goal and entry records on each request.

// PeriodOutcome is one fully elapsed cadence interval with its completion
// verdict. Intervals are half-open: [Start, End).
type PeriodOutcome struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Completed bool      `json:"completed"`
}

// ConsistencyResult is the per-habit output of the consistency scorer.
// Periods are ordered most-recent first.
type ConsistencyResult struct {
	Rate    float64         `json:"consistencyRate"` // 0..100
	Streak  int             `json:"streak"`
	Periods []PeriodOutcome `json:"periods"`
}

// Evaluation is the verdict for one goal over one entry window.
type Evaluation struct {
	Completed bool    `json:"completed"`
	Actual    float64 `json:"actual"`
	Target    float64 `json:"target"`
	Unit      string  `json:"unit,omitempty"`
}

// HabitDetail is one ranked habit inside a consistency report.
type HabitDetail struct {
	GoalID   uint    `json:"goalId"`
	Title    string  `json:"title"`
	Position int     `json:"position"` // 1-based rank among the user's habits
	Weight   float64 `json:"weight"`
	Rate     float64 `json:"consistencyRate"`
	Streak   int     `json:"streak,omitempty"`
}

// HabitConsistencyReport is the personal weighted-consistency report.
type HabitConsistencyReport struct {
	UserID          uint          `json:"userId"`
	WeightedAverage float64       `json:"weightedAverage"`
	Habits          []HabitDetail `json:"habits"`
}

// GoalStreak is one habit's current streak inside a streak report.
type GoalStreak struct {
	GoalID uint    `json:"goalId"`
	Title  string  `json:"title"`
	Streak int     `json:"streak"`
	Rate   float64 `json:"consistencyRate"`
}

// HabitStreakReport carries the best current streak across a user's habits.
type HabitStreakReport struct {
	UserID     uint         `json:"userId"`
	BestStreak int          `json:"bestStreak"`
	Goals      []GoalStreak `json:"goals"`
}

// WeeklyTrendPoint is one fully elapsed Monday..Sunday week in a trend series.
type WeeklyTrendPoint struct {
	WeekStart      time.Time `json:"weekStart"`
	WeekEnd        time.Time `json:"weekEnd"`
	GoalsTotal     int       `json:"goalsTotal"`
	GoalsCompleted int       `json:"goalsCompleted"`
	CompletionRate float64   `json:"completionRate"` // 0..100
}

// WeeklyTrendReport is empty when fewer than two qualifying weeks exist,
// to avoid showing a misleadingly short trend.
type WeeklyTrendReport struct {
	Weeks []WeeklyTrendPoint `json:"weeks"`
}

// WeeklyGoalOutcome is goal-level detail inside a weekly breakdown.
type WeeklyGoalOutcome struct {
	GoalID     uint    `json:"goalId"`
	Title      string  `json:"title"`
	Type       string  `json:"type"`
	Completed  bool    `json:"completed"`
	Actual     float64 `json:"actual"`
	Target     float64 `json:"target"`
	Unit       string  `json:"unit,omitempty"`
	EntryCount int     `json:"entryCount"`
}

// WeeklyBreakdownWeek is one elapsed week with per-goal outcomes.
type WeeklyBreakdownWeek struct {
	WeekStart time.Time           `json:"weekStart"`
	WeekEnd   time.Time           `json:"weekEnd"`
	Goals     []WeeklyGoalOutcome `json:"goals"`
}

// WeeklyGoalsBreakdown is the goal-by-goal variant of the weekly trend.
type WeeklyGoalsBreakdown struct {
	Weeks []WeeklyBreakdownWeek `json:"weeks"`
}

// LeaderboardEntry is one member's row on the club leaderboard.
type LeaderboardEntry struct {
	UserID           uint        `json:"userId"`
	User             UserSummary `json:"user"`
	ConsistencyScore float64     `json:"consistencyScore"`
	Streak           int         `json:"streak"`
	Rank             int         `json:"rank"`
}

// Champion is a single best-in-club callout.
type Champion struct {
	UserID uint        `json:"userId"`
	User   UserSummary `json:"user"`
	Value  float64     `json:"value"`
	Label  string      `json:"label"`
}

// ClubLeaderboard ranks members by weighted consistency and, separately,
// by current streak.
type ClubLeaderboard struct {
	ClubID             uint               `json:"clubId"`
	ByConsistency      []LeaderboardEntry `json:"byConsistency"`
	ByStreak           []LeaderboardEntry `json:"byStreak"`
	ConsistencyChamp   *Champion          `json:"consistencyChampion,omitempty"`
	MetricChamp        *Champion          `json:"metricChampion,omitempty"`
	MilestoneChamp     *Champion          `json:"milestoneChampion,omitempty"`
	StreakChamp        *Champion          `json:"streakChampion,omitempty"`
	MembersContributed int                `json:"membersContributed"`
}

// GoalTypeDistribution tallies active (non-archived, non-completed) goals
// by type, scoped to one user or a whole club.
type GoalTypeDistribution struct {
	Habit     int `json:"habit"`
	Metric    int `json:"metric"`
	Milestone int `json:"milestone"`
	OneTime   int `json:"oneTime"`
	Total     int `json:"total"`
}
