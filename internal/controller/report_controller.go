package controller

import (
	"time"

	"bookclub_backend/internal/service"
	"bookclub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportService *service.ReportService
	ClubService   *service.ClubService
}

func NewReportController(reportService *service.ReportService, clubService *service.ClubService) *ReportController {
	return &ReportController{ReportService: reportService, ClubService: clubService}
}

func reportWindow(ctx *gin.Context) (*time.Time, *time.Time, bool) {
	start, err := util.ParseDate(ctx.Query("start"))
	if err != nil {
		util.BadRequest(ctx, "start must be YYYY-MM-DD")
		return nil, nil, false
	}
	end, err := util.ParseDate(ctx.Query("end"))
	if err != nil {
		util.BadRequest(ctx, "end must be YYYY-MM-DD")
		return nil, nil, false
	}
	if start != nil && end != nil && end.Before(*start) {
		util.BadRequest(ctx, "end before start")
		return nil, nil, false
	}
	return start, end, true
}

// HabitConsistency godoc
// @Summary Weighted habit-consistency report for the current user
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Param clubId query int false "restrict to one club"
// @Param start query string false "YYYY-MM-DD"
// @Param end query string false "YYYY-MM-DD"
// @Success 200 {object} util.Response{data=model.HabitConsistencyReport}
// @Router /api/reports/habits/consistency [get]
func (c *ReportController) HabitConsistency(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	start, end, ok := reportWindow(ctx)
	if !ok {
		return
	}

	report, err := c.ReportService.HabitConsistencyReport(claims.UserID, util.MustParseUint(ctx.Query("clubId")), start, end)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// HabitStreaks godoc
// @Summary Current streaks across the user's habits
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Param clubId query int false "restrict to one club"
// @Param start query string false "YYYY-MM-DD"
// @Param end query string false "YYYY-MM-DD"
// @Success 200 {object} util.Response{data=model.HabitStreakReport}
// @Router /api/reports/habits/streaks [get]
func (c *ReportController) HabitStreaks(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	start, end, ok := reportWindow(ctx)
	if !ok {
		return
	}

	report, err := c.ReportService.HabitStreakReport(claims.UserID, util.MustParseUint(ctx.Query("clubId")), start, end)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// WeeklyTrend godoc
// @Summary Week-over-week completion rate of the user's weekly goals
// @Description Returns an empty series when fewer than two Monday to Sunday weeks have fully elapsed.
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Param clubId query int false "restrict to one club"
// @Param start query string false "YYYY-MM-DD"
// @Param end query string false "YYYY-MM-DD"
// @Success 200 {object} util.Response{data=model.WeeklyTrendReport}
// @Router /api/reports/weekly-trend [get]
func (c *ReportController) WeeklyTrend(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	start, end, ok := reportWindow(ctx)
	if !ok {
		return
	}

	report, err := c.ReportService.WeeklyTrendReport(claims.UserID, util.MustParseUint(ctx.Query("clubId")), start, end)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// WeeklyBreakdown godoc
// @Summary Goal-by-goal outcomes for each elapsed week
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Param clubId query int false "restrict to one club"
// @Param start query string false "YYYY-MM-DD"
// @Param end query string false "YYYY-MM-DD"
// @Success 200 {object} util.Response{data=model.WeeklyGoalsBreakdown}
// @Router /api/reports/weekly-breakdown [get]
func (c *ReportController) WeeklyBreakdown(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	start, end, ok := reportWindow(ctx)
	if !ok {
		return
	}

	report, err := c.ReportService.WeeklyGoalsBreakdown(claims.UserID, util.MustParseUint(ctx.Query("clubId")), start, end)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// GoalDistribution godoc
// @Summary Active goal counts by type
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Param clubId query int false "restrict to one club"
// @Success 200 {object} util.Response{data=model.GoalTypeDistribution}
// @Router /api/reports/goal-distribution [get]
func (c *ReportController) GoalDistribution(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	dist, err := c.ReportService.GoalTypeDistribution(claims.UserID, util.MustParseUint(ctx.Query("clubId")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, dist)
}

// requireClubMember resolves the club id path parameter and checks the
// caller is a member.
func (c *ReportController) requireClubMember(ctx *gin.Context) (uint, bool) {
	claims := util.GetUserFromContext(ctx)
	clubID := util.MustParseUint(ctx.Param("id"))
	if _, err := c.ClubService.RequireMember(clubID, claims.UserID); err != nil {
		util.Forbidden(ctx)
		return 0, false
	}
	return clubID, true
}

// ClubLeaderboard godoc
// @Summary Consistency and streak rankings for a club
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "club id"
// @Param start query string false "YYYY-MM-DD"
// @Param end query string false "YYYY-MM-DD"
// @Success 200 {object} util.Response{data=model.ClubLeaderboard}
// @Failure 403 {object} util.Response
// @Router /api/clubs/{id}/leaderboard [get]
func (c *ReportController) ClubLeaderboard(ctx *gin.Context) {
	clubID, ok := c.requireClubMember(ctx)
	if !ok {
		return
	}
	start, end, ok := reportWindow(ctx)
	if !ok {
		return
	}

	board, err := c.ReportService.ClubLeaderboard(clubID, start, end)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, board)
}

// ClubWeeklyTrend godoc
// @Summary Club-wide weekly completion trend
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "club id"
// @Param start query string false "YYYY-MM-DD"
// @Param end query string false "YYYY-MM-DD"
// @Success 200 {object} util.Response{data=model.WeeklyTrendReport}
// @Router /api/clubs/{id}/trend [get]
func (c *ReportController) ClubWeeklyTrend(ctx *gin.Context) {
	clubID, ok := c.requireClubMember(ctx)
	if !ok {
		return
	}
	start, end, ok := reportWindow(ctx)
	if !ok {
		return
	}

	// Zero user id widens the scope to every member's weekly goals.
	report, err := c.ReportService.WeeklyTrendReport(0, clubID, start, end)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// ClubGoalDistribution godoc
// @Summary Active goal counts by type across a club
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "club id"
// @Success 200 {object} util.Response{data=model.GoalTypeDistribution}
// @Router /api/clubs/{id}/goal-distribution [get]
func (c *ReportController) ClubGoalDistribution(ctx *gin.Context) {
	clubID, ok := c.requireClubMember(ctx)
	if !ok {
		return
	}

	dist, err := c.ReportService.GoalTypeDistribution(0, clubID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, dist)
}
