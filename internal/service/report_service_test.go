package service

import (
	"os"
	"testing"
	"time"

	"bookclub_backend/internal/analytics"
	"bookclub_backend/internal/model"
	"bookclub_backend/internal/repository"
	"bookclub_backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

// fakeGoalSource applies the same filter semantics as the gorm repository,
// in memory.
type fakeGoalSource struct {
	goals []model.Goal
}

func (f *fakeGoalSource) Find(filter repository.GoalFilter) ([]model.Goal, error) {
	var out []model.Goal
	for _, g := range f.goals {
		if filter.UserID > 0 && g.UserID != filter.UserID {
			continue
		}
		if filter.ClubID > 0 && g.ClubID != filter.ClubID {
			continue
		}
		if filter.Type != "" && g.Type != filter.Type {
			continue
		}
		if filter.Cadence != "" && g.Cadence != filter.Cadence {
			continue
		}
		if g.Archived && !filter.IncludeArchived {
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

type fakeMemberSource struct {
	members []model.ClubMember
}

func (f *fakeMemberSource) Members(clubID uint) ([]model.ClubMember, error) {
	var out []model.ClubMember
	for _, m := range f.members {
		if m.ClubID == clubID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeEntrySource struct {
	entries []model.GoalEntry
}

func (f *fakeEntrySource) EntriesInRange(userID, goalID uint, start, end time.Time) ([]model.GoalEntry, error) {
	var out []model.GoalEntry
	for _, e := range f.entries {
		if e.GoalID == goalID && !e.OccurredAt.Before(start) && e.OccurredAt.Before(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Wednesday midday, so the current day and week are both in progress.
var frozenNow = time.Date(2026, 1, 21, 12, 0, 0, 0, time.UTC)

func frozenReports(goals []model.Goal, members []model.ClubMember, entries []model.GoalEntry) *ReportService {
	now := func() time.Time { return frozenNow }
	return &ReportService{
		Goals:   &fakeGoalSource{goals: goals},
		Members: &fakeMemberSource{members: members},
		Scorer:  &analytics.Scorer{Entries: &fakeEntrySource{entries: entries}, Now: now},
		Now:     now,
	}
}

func testHabit(id, userID, clubID uint, cadence model.GoalCadence, target int, createdAt time.Time) model.Goal {
	g := model.Goal{
		UserID:      userID,
		ClubID:      clubID,
		Title:       "habit",
		Type:        model.GoalHabit,
		Measure:     model.MeasureCount,
		Cadence:     cadence,
		TargetCount: target,
	}
	g.ID = id
	g.CreatedAt = createdAt
	return g
}

func onDay(goalID uint, day time.Time) model.GoalEntry {
	return model.GoalEntry{GoalID: goalID, OccurredAt: day.Add(9 * time.Hour)}
}

func TestHabitConsistencyReportWeighting(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC) }
	from := day(16)

	goals := []model.Goal{
		testHabit(1, 1, 5, model.CadenceDay, 1, day(1)),
		testHabit(2, 1, 5, model.CadenceDay, 1, day(2)),
	}
	// Goal 1: 4 of 5 elapsed days (miss on the 18th). Goal 2: 3 of 5.
	entries := []model.GoalEntry{
		onDay(1, day(16)), onDay(1, day(17)), onDay(1, day(19)), onDay(1, day(20)),
		onDay(2, day(16)), onDay(2, day(17)), onDay(2, day(18)),
	}

	svc := frozenReports(goals, nil, entries)
	report, err := svc.HabitConsistencyReport(1, 5, &from, nil)
	require.NoError(t, err)

	require.Len(t, report.Habits, 2)
	assert.Equal(t, uint(1), report.Habits[0].GoalID, "higher rate ranks first")
	assert.Equal(t, 1, report.Habits[0].Position)
	assert.Equal(t, 80.0, report.Habits[0].Rate)
	assert.Equal(t, 60.0, report.Habits[1].Rate)
	assert.InDelta(t, 0.6309, report.Habits[1].Weight, 1e-4)
	assert.InDelta(t, 72.263, report.WeightedAverage, 1e-3)

	// Re-running under the same frozen clock yields the identical report.
	again, err := svc.HabitConsistencyReport(1, 5, &from, nil)
	require.NoError(t, err)
	assert.Equal(t, report, again)
}

func TestHabitConsistencyReportSkipsCorruptGoal(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC) }
	from := day(19)

	good := testHabit(1, 1, 5, model.CadenceDay, 1, day(1))
	bad := testHabit(2, 1, 5, model.CadenceDay, 1, day(2))
	bad.Measure = "median"

	entries := []model.GoalEntry{onDay(1, day(19)), onDay(1, day(20))}

	report, err := frozenReports([]model.Goal{good, bad}, nil, entries).
		HabitConsistencyReport(1, 5, &from, nil)
	require.NoError(t, err)

	require.Len(t, report.Habits, 1, "the corrupt goal is dropped, not fatal")
	assert.Equal(t, uint(1), report.Habits[0].GoalID)
	assert.Equal(t, 100.0, report.WeightedAverage)
}

func TestHabitStreakReportBestStreak(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC) }
	from := day(16)

	goals := []model.Goal{
		testHabit(1, 1, 5, model.CadenceDay, 1, day(1)),
		testHabit(2, 1, 5, model.CadenceDay, 1, day(2)),
	}
	// Goal 1 ends on a two-day run; goal 2 missed the most recent day.
	entries := []model.GoalEntry{
		onDay(1, day(19)), onDay(1, day(20)),
		onDay(2, day(16)), onDay(2, day(17)), onDay(2, day(18)),
	}

	report, err := frozenReports(goals, nil, entries).HabitStreakReport(1, 5, &from, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, report.BestStreak)
	require.Len(t, report.Goals, 2)
	for _, g := range report.Goals {
		if g.GoalID == 2 {
			assert.Equal(t, 0, g.Streak, "a recent miss zeroes the streak")
		}
	}
}

func TestWeeklyTrendRequiresTwoElapsedWeeks(t *testing.T) {
	// Only the week of Jan 12 has fully elapsed inside this range.
	from := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)

	goal := testHabit(1, 1, 5, model.CadenceWeek, 1, from)
	entries := []model.GoalEntry{onDay(1, from)}

	report, err := frozenReports([]model.Goal{goal}, nil, entries).
		WeeklyTrendReport(1, 5, &from, nil)
	require.NoError(t, err)
	assert.Empty(t, report.Weeks)
}

func TestWeeklyTrendSeries(t *testing.T) {
	week1 := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)  // Monday
	week2 := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC) // Monday

	goal := testHabit(1, 1, 5, model.CadenceWeek, 2, week1)
	entries := []model.GoalEntry{
		onDay(1, week1), onDay(1, week1.AddDate(0, 0, 2)),
		onDay(1, week2),
	}

	report, err := frozenReports([]model.Goal{goal}, nil, entries).
		WeeklyTrendReport(1, 5, &week1, nil)
	require.NoError(t, err)

	require.Len(t, report.Weeks, 2)
	assert.Equal(t, week1, report.Weeks[0].WeekStart, "chronological order")
	assert.Equal(t, 100.0, report.Weeks[0].CompletionRate)
	assert.Equal(t, 0.0, report.Weeks[1].CompletionRate, "one entry misses a target of two")
	assert.Equal(t, 1, report.Weeks[1].GoalsTotal)
}

func TestWeeklyGoalsBreakdownDetail(t *testing.T) {
	week1 := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	goal := testHabit(1, 1, 5, model.CadenceWeek, 2, week1)
	goal.Title = "read two chapters"
	entries := []model.GoalEntry{
		onDay(1, week1), onDay(1, week1.AddDate(0, 0, 3)),
	}

	report, err := frozenReports([]model.Goal{goal}, nil, entries).
		WeeklyGoalsBreakdown(1, 5, &week1, nil)
	require.NoError(t, err)

	require.Len(t, report.Weeks, 2)
	first := report.Weeks[0]
	require.Len(t, first.Goals, 1)
	assert.Equal(t, "read two chapters", first.Goals[0].Title)
	assert.True(t, first.Goals[0].Completed)
	assert.Equal(t, 2, first.Goals[0].EntryCount)
	assert.False(t, report.Weeks[1].Goals[0].Completed)
	assert.Equal(t, 0, report.Weeks[1].Goals[0].EntryCount)
}

func TestClubLeaderboard(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC) }
	from := day(16)

	alice := model.User{Name: "Alice"}
	alice.ID = 1
	bob := model.User{Name: "Bob"}
	bob.ID = 2
	members := []model.ClubMember{
		{ClubID: 5, UserID: 1, User: alice},
		{ClubID: 5, UserID: 2, User: bob},
	}

	quantity := func(v float64) *float64 { return &v }
	metric := model.Goal{
		UserID: 2, ClubID: 5, Title: "miles", Type: model.GoalMetric,
		Measure: model.MeasureSum, Cadence: model.CadenceWeek,
		TargetQuantity: 10, Unit: "miles",
	}
	metric.ID = 3
	milestone := model.Goal{
		UserID: 1, ClubID: 5, Title: "finish the trilogy", Type: model.GoalMilestone,
		Milestones: []model.Milestone{
			{GoalID: 4, Title: "book one", Done: true},
			{GoalID: 4, Title: "book two", Done: true},
			{GoalID: 4, Title: "book three"},
		},
	}
	milestone.ID = 4

	goals := []model.Goal{
		testHabit(1, 1, 5, model.CadenceDay, 1, day(1)),
		testHabit(2, 2, 5, model.CadenceDay, 1, day(2)),
		metric,
		milestone,
	}
	entries := []model.GoalEntry{
		// Alice: all five elapsed days.
		onDay(1, day(16)), onDay(1, day(17)), onDay(1, day(18)), onDay(1, day(19)), onDay(1, day(20)),
		// Bob: three of five, most recent day missed.
		onDay(2, day(16)), onDay(2, day(17)), onDay(2, day(18)),
		// Bob's metric progress: 5 of 10 miles.
		{GoalID: 3, OccurredAt: day(19).Add(time.Hour), Quantity: quantity(5)},
	}

	board, err := frozenReports(goals, members, entries).ClubLeaderboard(5, &from, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, board.MembersContributed)

	require.Len(t, board.ByConsistency, 2)
	assert.Equal(t, uint(1), board.ByConsistency[0].UserID)
	assert.Equal(t, 1, board.ByConsistency[0].Rank)
	assert.Equal(t, 100.0, board.ByConsistency[0].ConsistencyScore)
	assert.Equal(t, 60.0, board.ByConsistency[1].ConsistencyScore)
	assert.Equal(t, 2, board.ByConsistency[1].Rank)

	require.Len(t, board.ByStreak, 2)
	assert.Equal(t, uint(1), board.ByStreak[0].UserID)
	assert.Equal(t, 5, board.ByStreak[0].Streak)
	assert.Equal(t, 0, board.ByStreak[1].Streak)

	require.NotNil(t, board.ConsistencyChamp)
	assert.Equal(t, "Alice", board.ConsistencyChamp.User.Name)
	require.NotNil(t, board.StreakChamp)
	assert.Equal(t, uint(1), board.StreakChamp.UserID)
	require.NotNil(t, board.MetricChamp)
	assert.Equal(t, uint(2), board.MetricChamp.UserID)
	assert.Equal(t, 50.0, board.MetricChamp.Value)
	require.NotNil(t, board.MilestoneChamp)
	assert.Equal(t, uint(1), board.MilestoneChamp.UserID)
	assert.Equal(t, 2.0, board.MilestoneChamp.Value)
}

func TestGoalTypeDistribution(t *testing.T) {
	day := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	done := testHabit(2, 1, 5, model.CadenceDay, 1, day)
	done.Completed = true
	archived := testHabit(6, 1, 5, model.CadenceDay, 1, day)
	archived.Archived = true
	metric := model.Goal{UserID: 1, ClubID: 5, Type: model.GoalMetric, Measure: model.MeasureSum, Cadence: model.CadenceWeek, TargetQuantity: 3}
	metric.ID = 3
	milestone := model.Goal{UserID: 1, ClubID: 5, Type: model.GoalMilestone}
	milestone.ID = 4
	oneTime := model.Goal{UserID: 1, ClubID: 5, Type: model.GoalOneTime}
	oneTime.ID = 5

	goals := []model.Goal{
		testHabit(1, 1, 5, model.CadenceDay, 1, day),
		done, archived, metric, milestone, oneTime,
	}

	dist, err := frozenReports(goals, nil, nil).GoalTypeDistribution(1, 5)
	require.NoError(t, err)

	assert.Equal(t, 1, dist.Habit, "completed and archived goals are excluded")
	assert.Equal(t, 1, dist.Metric)
	assert.Equal(t, 1, dist.Milestone)
	assert.Equal(t, 1, dist.OneTime)
	assert.Equal(t, 4, dist.Total)
}
