package service

import (
	"sort"
	"sync"
	"time"

	"bookclub_backend/internal/analytics"
	"bookclub_backend/internal/model"
	"bookclub_backend/internal/repository"
	"bookclub_backend/pkg/logger"
	"bookclub_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// GoalSource and MemberSource are the slices of the repositories the report
// assemblers need; tests satisfy them in memory.
type GoalSource interface {
	Find(filter repository.GoalFilter) ([]model.Goal, error)
}

type MemberSource interface {
	Members(clubID uint) ([]model.ClubMember, error)
}

// ReportService assembles every analytics report from goal and entry
// records. It holds no state across requests; identical inputs under a
// frozen clock yield identical reports.
type ReportService struct {
	Goals   GoalSource
	Members MemberSource
	Scorer  *analytics.Scorer
	Now     func() time.Time
}

func NewReportService(goalRepo *repository.GoalRepository, clubRepo *repository.ClubRepository, entryRepo *repository.GoalEntryRepository) *ReportService {
	return &ReportService{
		Goals:   goalRepo,
		Members: clubRepo,
		Scorer:  analytics.NewScorer(entryRepo),
		Now:     time.Now,
	}
}

func (s *ReportService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// scoreHabits runs the consistency scorer over every habit goal of one user,
// concurrently. A failing goal is logged and contributes nothing rather than
// sinking the whole report.
func (s *ReportService) scoreHabits(userID, clubID uint, rangeStart, rangeEnd *time.Time) ([]analytics.HabitRate, error) {
	goals, err := s.Goals.Find(repository.GoalFilter{
		UserID: userID,
		ClubID: clubID,
		Type:   model.GoalHabit,
	})
	if err != nil {
		return nil, err
	}

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		rates []analytics.HabitRate
	)

	for i := range goals {
		goal := goals[i]
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := s.Scorer.HabitConsistency(userID, &goal, rangeStart, rangeEnd, true)
			if err != nil {
				logger.Log.Warn("habit scoring failed, goal skipped",
					zap.Uint("goal_id", goal.ID), zap.Error(err))
				return
			}
			if res == nil {
				return
			}
			mu.Lock()
			rates = append(rates, analytics.HabitRate{Goal: &goal, Rate: res.Rate, Streak: res.Streak})
			mu.Unlock()
		}()
	}
	wg.Wait()

	// Concurrent completion order is arbitrary; restore creation order so
	// the rank tie-break stays deterministic.
	sort.Slice(rates, func(i, j int) bool {
		return rates[i].Goal.CreatedAt.Before(rates[j].Goal.CreatedAt)
	})
	return rates, nil
}

// HabitConsistencyReport is the personal weighted-consistency report.
func (s *ReportService) HabitConsistencyReport(userID, clubID uint, rangeStart, rangeEnd *time.Time) (*model.HabitConsistencyReport, error) {
	defer monitoring.ObserveReport("habit_consistency", time.Now())

	rates, err := s.scoreHabits(userID, clubID, rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}

	avg, details := analytics.RankAndWeight(rates)
	return &model.HabitConsistencyReport{
		UserID:          userID,
		WeightedAverage: avg,
		Habits:          details,
	}, nil
}

// HabitStreakReport returns the user's best current streak and per-goal
// streaks.
func (s *ReportService) HabitStreakReport(userID, clubID uint, rangeStart, rangeEnd *time.Time) (*model.HabitStreakReport, error) {
	defer monitoring.ObserveReport("habit_streak", time.Now())

	rates, err := s.scoreHabits(userID, clubID, rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}

	report := &model.HabitStreakReport{UserID: userID}
	for _, r := range rates {
		report.Goals = append(report.Goals, model.GoalStreak{
			GoalID: r.Goal.ID,
			Title:  r.Goal.Title,
			Streak: r.Streak,
			Rate:   r.Rate,
		})
		if r.Streak > report.BestStreak {
			report.BestStreak = r.Streak
		}
	}
	return report, nil
}

// defaultTrendLookback bounds the weekly walk when no range start is given.
const defaultTrendLookback = 12 * 7 * 24 * time.Hour

// elapsedWeeks lists every fully elapsed Monday..Sunday week intersecting
// [rangeStart, now), oldest first.
func (s *ReportService) elapsedWeeks(rangeStart, rangeEnd *time.Time) ([]analytics.PeriodBounds, error) {
	now := s.now()
	from := now.Add(-defaultTrendLookback)
	if rangeStart != nil {
		from = rangeStart.UTC()
	}
	to := now
	if rangeEnd != nil && rangeEnd.UTC().Before(now) {
		to = rangeEnd.UTC()
	}

	bounds, err := analytics.PeriodBoundaries(model.CadenceWeek, now)
	if err != nil {
		return nil, err
	}

	var weeks []analytics.PeriodBounds
	for i := 0; i < 100 && !bounds.Start.Before(from); i++ {
		if !bounds.End.After(now) && bounds.Start.Before(to) {
			weeks = append(weeks, bounds)
		}
		bounds, err = analytics.PreviousPeriodBoundaries(model.CadenceWeek, bounds.Start)
		if err != nil {
			return nil, err
		}
	}

	// Reverse into chronological order for trend display.
	for i, j := 0, len(weeks)-1; i < j; i, j = i+1, j-1 {
		weeks[i], weeks[j] = weeks[j], weeks[i]
	}
	return weeks, nil
}

// weeklyGoals returns the weekly-cadence goals in scope. userID of zero
// means the whole club.
func (s *ReportService) weeklyGoals(userID, clubID uint) ([]model.Goal, error) {
	return s.Goals.Find(repository.GoalFilter{
		UserID:  userID,
		ClubID:  clubID,
		Cadence: model.CadenceWeek,
	})
}

// WeeklyTrendReport computes the fraction of weekly goals satisfied for
// each fully elapsed week. Fewer than two qualifying weeks yields an empty
// series rather than a misleadingly short trend.
func (s *ReportService) WeeklyTrendReport(userID, clubID uint, rangeStart, rangeEnd *time.Time) (*model.WeeklyTrendReport, error) {
	defer monitoring.ObserveReport("weekly_trend", time.Now())

	weeks, err := s.elapsedWeeks(rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}
	report := &model.WeeklyTrendReport{Weeks: []model.WeeklyTrendPoint{}}
	if len(weeks) < 2 {
		return report, nil
	}

	goals, err := s.weeklyGoals(userID, clubID)
	if err != nil {
		return nil, err
	}
	if len(goals) == 0 {
		return report, nil
	}

	for _, week := range weeks {
		point := model.WeeklyTrendPoint{WeekStart: week.Start, WeekEnd: week.End}
		for i := range goals {
			goal := &goals[i]
			entries, err := s.Scorer.Entries.EntriesInRange(goal.UserID, goal.ID, week.Start, week.End)
			if err != nil {
				logger.Log.Warn("entry fetch failed, goal skipped for week",
					zap.Uint("goal_id", goal.ID), zap.Error(err))
				continue
			}
			eval, err := analytics.EvaluateGoal(goal, entries)
			if err != nil {
				logger.Log.Warn("goal evaluation failed, skipped",
					zap.Uint("goal_id", goal.ID), zap.Error(err))
				continue
			}
			point.GoalsTotal++
			if eval.Completed {
				point.GoalsCompleted++
			}
		}
		if point.GoalsTotal > 0 {
			point.CompletionRate = 100 * float64(point.GoalsCompleted) / float64(point.GoalsTotal)
		}
		report.Weeks = append(report.Weeks, point)
	}
	return report, nil
}

// WeeklyGoalsBreakdown is the goal-by-goal variant of the weekly trend.
func (s *ReportService) WeeklyGoalsBreakdown(userID, clubID uint, rangeStart, rangeEnd *time.Time) (*model.WeeklyGoalsBreakdown, error) {
	defer monitoring.ObserveReport("weekly_breakdown", time.Now())

	weeks, err := s.elapsedWeeks(rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}
	breakdown := &model.WeeklyGoalsBreakdown{Weeks: []model.WeeklyBreakdownWeek{}}
	if len(weeks) < 2 {
		return breakdown, nil
	}

	goals, err := s.weeklyGoals(userID, clubID)
	if err != nil {
		return nil, err
	}

	for _, week := range weeks {
		row := model.WeeklyBreakdownWeek{WeekStart: week.Start, WeekEnd: week.End}
		for i := range goals {
			goal := &goals[i]
			entries, err := s.Scorer.Entries.EntriesInRange(goal.UserID, goal.ID, week.Start, week.End)
			if err != nil {
				logger.Log.Warn("entry fetch failed, goal skipped for week",
					zap.Uint("goal_id", goal.ID), zap.Error(err))
				continue
			}
			eval, err := analytics.EvaluateGoal(goal, entries)
			if err != nil {
				logger.Log.Warn("goal evaluation failed, skipped",
					zap.Uint("goal_id", goal.ID), zap.Error(err))
				continue
			}
			row.Goals = append(row.Goals, model.WeeklyGoalOutcome{
				GoalID:     goal.ID,
				Title:      goal.Title,
				Type:       string(goal.Type),
				Completed:  eval.Completed,
				Actual:     eval.Actual,
				Target:     eval.Target,
				Unit:       eval.Unit,
				EntryCount: len(entries),
			})
		}
		breakdown.Weeks = append(breakdown.Weeks, row)
	}
	return breakdown, nil
}

// memberScore is one member's aggregate used while assembling a leaderboard.
type memberScore struct {
	member      model.ClubMember
	weightedAvg float64
	bestStreak  int
	metricBest  float64
	milestones  int
	hasHabits   bool
}

// ClubLeaderboard ranks every member by weighted habit consistency and,
// separately, by best current streak, and surfaces per-category champions.
func (s *ReportService) ClubLeaderboard(clubID uint, rangeStart, rangeEnd *time.Time) (*model.ClubLeaderboard, error) {
	defer monitoring.ObserveReport("club_leaderboard", time.Now())

	members, err := s.Members.Members(clubID)
	if err != nil {
		return nil, err
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		scores []memberScore
	)

	for _, m := range members {
		member := m
		wg.Add(1)
		go func() {
			defer wg.Done()
			score, err := s.scoreMember(member, clubID, rangeStart, rangeEnd)
			if err != nil {
				// One member's bad data must not blank the whole board.
				logger.Log.Warn("member scoring failed, excluded from leaderboard",
					zap.Uint("user_id", member.UserID), zap.Error(err))
				return
			}
			mu.Lock()
			scores = append(scores, score)
			mu.Unlock()
		}()
	}
	wg.Wait()

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].member.UserID < scores[j].member.UserID
	})

	board := &model.ClubLeaderboard{ClubID: clubID, MembersContributed: len(scores)}

	byConsistency := make([]model.LeaderboardEntry, 0, len(scores))
	for _, sc := range scores {
		byConsistency = append(byConsistency, model.LeaderboardEntry{
			UserID:           sc.member.UserID,
			User:             sc.member.User.Summary(),
			ConsistencyScore: sc.weightedAvg,
			Streak:           sc.bestStreak,
		})
	}
	sort.SliceStable(byConsistency, func(i, j int) bool {
		return byConsistency[i].ConsistencyScore > byConsistency[j].ConsistencyScore
	})
	for i := range byConsistency {
		byConsistency[i].Rank = i + 1
	}
	board.ByConsistency = byConsistency

	byStreak := make([]model.LeaderboardEntry, len(byConsistency))
	copy(byStreak, byConsistency)
	sort.SliceStable(byStreak, func(i, j int) bool {
		return byStreak[i].Streak > byStreak[j].Streak
	})
	for i := range byStreak {
		byStreak[i].Rank = i + 1
	}
	board.ByStreak = byStreak

	for _, sc := range scores {
		summary := sc.member.User.Summary()
		if sc.hasHabits {
			board.ConsistencyChamp = maxChampion(board.ConsistencyChamp, sc.member.UserID, summary, sc.weightedAvg, "weighted consistency")
			board.StreakChamp = maxChampion(board.StreakChamp, sc.member.UserID, summary, float64(sc.bestStreak), "current streak")
		}
		if sc.metricBest > 0 {
			board.MetricChamp = maxChampion(board.MetricChamp, sc.member.UserID, summary, sc.metricBest, "metric progress")
		}
		if sc.milestones > 0 {
			board.MilestoneChamp = maxChampion(board.MilestoneChamp, sc.member.UserID, summary, float64(sc.milestones), "milestones done")
		}
	}

	return board, nil
}

func maxChampion(current *model.Champion, userID uint, user model.UserSummary, value float64, label string) *model.Champion {
	if current != nil && current.Value >= value {
		return current
	}
	return &model.Champion{UserID: userID, User: user, Value: value, Label: label}
}

func (s *ReportService) scoreMember(member model.ClubMember, clubID uint, rangeStart, rangeEnd *time.Time) (memberScore, error) {
	score := memberScore{member: member}

	rates, err := s.scoreHabits(member.UserID, clubID, rangeStart, rangeEnd)
	if err != nil {
		return score, err
	}
	score.hasHabits = len(rates) > 0
	score.weightedAvg, _ = analytics.RankAndWeight(rates)
	for _, r := range rates {
		if r.Streak > score.bestStreak {
			score.bestStreak = r.Streak
		}
	}

	// Metric progress: the member's best fraction of any metric target,
	// capped at 100.
	metricGoals, err := s.Goals.Find(repository.GoalFilter{
		UserID: member.UserID,
		ClubID: clubID,
		Type:   model.GoalMetric,
	})
	if err != nil {
		return score, err
	}
	now := s.now()
	for i := range metricGoals {
		goal := &metricGoals[i]
		start := time.Time{}
		if rangeStart != nil {
			start = rangeStart.UTC()
		}
		end := now
		if rangeEnd != nil && rangeEnd.UTC().Before(now) {
			end = rangeEnd.UTC()
		}
		entries, err := s.Scorer.Entries.EntriesInRange(member.UserID, goal.ID, start, end)
		if err != nil {
			logger.Log.Warn("entry fetch failed for metric goal",
				zap.Uint("goal_id", goal.ID), zap.Error(err))
			continue
		}
		eval, err := analytics.EvaluateGoal(goal, entries)
		if err != nil || eval.Target == 0 {
			continue
		}
		progress := 100 * eval.Actual / eval.Target
		if progress > 100 {
			progress = 100
		}
		if progress > score.metricBest {
			score.metricBest = progress
		}
	}

	// Milestone completions: checklist items ticked across milestone goals.
	milestoneGoals, err := s.Goals.Find(repository.GoalFilter{
		UserID: member.UserID,
		ClubID: clubID,
		Type:   model.GoalMilestone,
	})
	if err != nil {
		return score, err
	}
	for _, g := range milestoneGoals {
		for _, m := range g.Milestones {
			if m.Done {
				score.milestones++
			}
		}
	}

	return score, nil
}

// GoalTypeDistribution tallies active goals by type for one user or a
// whole club.
func (s *ReportService) GoalTypeDistribution(userID, clubID uint) (*model.GoalTypeDistribution, error) {
	defer monitoring.ObserveReport("goal_distribution", time.Now())

	goals, err := s.Goals.Find(repository.GoalFilter{UserID: userID, ClubID: clubID})
	if err != nil {
		return nil, err
	}

	dist := &model.GoalTypeDistribution{}
	for _, g := range goals {
		if g.Completed {
			continue
		}
		switch g.Type {
		case model.GoalHabit:
			dist.Habit++
		case model.GoalMetric:
			dist.Metric++
		case model.GoalMilestone:
			dist.Milestone++
		case model.GoalOneTime:
			dist.OneTime++
		default:
			continue
		}
		dist.Total++
	}
	return dist, nil
}
