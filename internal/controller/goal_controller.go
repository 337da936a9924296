package controller

import (
	"errors"

	"bookclub_backend/internal/analytics"
	"bookclub_backend/internal/service"
	"bookclub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GoalController struct {
	GoalService *service.GoalService
}

func NewGoalController(goalService *service.GoalService) *GoalController {
	return &GoalController{GoalService: goalService}
}

func (c *GoalController) writeGoalError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrGoalNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrInvalidGoal),
		errors.Is(err, analytics.ErrInvalidPeriod),
		errors.Is(err, analytics.ErrMissingCadence),
		errors.Is(err, analytics.ErrInvalidCadence),
		errors.Is(err, analytics.ErrInvalidMeasure):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrNotClubMember), errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

// CreateGoal godoc
// @Summary Create a goal in one of the user's clubs
// @Tags goals
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateGoalRequest true "goal definition"
// @Success 201 {object} util.Response{data=model.Goal}
// @Failure 400 {object} util.Response "shape invalid for the goal type"
// @Router /api/goals [post]
func (c *GoalController) CreateGoal(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	goal, err := c.GoalService.CreateGoal(claims.UserID, req)
	if err != nil {
		c.writeGoalError(ctx, err)
		return
	}
	util.Created(ctx, goal)
}

// ListGoals godoc
// @Summary Goals of the current user
// @Tags goals
// @Produce json
// @Security ApiKeyAuth
// @Param clubId query int false "restrict to one club"
// @Param type query string false "habit, metric, milestone or one_time"
// @Success 200 {object} util.Response{data=[]model.Goal}
// @Router /api/goals [get]
func (c *GoalController) ListGoals(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	goals, err := c.GoalService.ListGoals(claims.UserID, util.MustParseUint(ctx.Query("clubId")), ctx.Query("type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, goals)
}

// GetGoal godoc
// @Summary One goal with milestones
// @Tags goals
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "goal id"
// @Success 200 {object} util.Response{data=model.Goal}
// @Failure 404 {object} util.Response
// @Router /api/goals/{id} [get]
func (c *GoalController) GetGoal(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	goal, err := c.GoalService.GetGoal(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		c.writeGoalError(ctx, err)
		return
	}
	util.Success(ctx, goal)
}

// UpdateGoal godoc
// @Summary Update a goal
// @Tags goals
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "goal id"
// @Param body body service.UpdateGoalRequest true "fields to change"
// @Success 200 {object} util.Response{data=model.Goal}
// @Failure 400 {object} util.Response
// @Router /api/goals/{id} [put]
func (c *GoalController) UpdateGoal(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.UpdateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	goal, err := c.GoalService.UpdateGoal(claims.UserID, util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		c.writeGoalError(ctx, err)
		return
	}
	util.Success(ctx, goal)
}

// DeleteGoal godoc
// @Summary Delete a goal and its entries
// @Tags goals
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "goal id"
// @Success 200 {object} util.Response
// @Router /api/goals/{id} [delete]
func (c *GoalController) DeleteGoal(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.GoalService.DeleteGoal(claims.UserID, util.MustParseUint(ctx.Param("id"))); err != nil {
		c.writeGoalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// GoalProgress godoc
// @Summary Completion verdict for one goal over a window
// @Description period is one of current, all or range; range requires start and end (YYYY-MM-DD).
// @Tags goals
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "goal id"
// @Param period query string false "current (default), all or range"
// @Param start query string false "range start, YYYY-MM-DD"
// @Param end query string false "range end, YYYY-MM-DD (inclusive)"
// @Success 200 {object} util.Response{data=model.Evaluation}
// @Failure 400 {object} util.Response
// @Router /api/goals/{id}/progress [get]
func (c *GoalController) GoalProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	start, err := util.ParseDate(ctx.Query("start"))
	if err != nil {
		util.BadRequest(ctx, "start must be YYYY-MM-DD")
		return
	}
	end, err := util.ParseDate(ctx.Query("end"))
	if err != nil {
		util.BadRequest(ctx, "end must be YYYY-MM-DD")
		return
	}

	eval, err := c.GoalService.GoalProgress(claims.UserID, util.MustParseUint(ctx.Param("id")), ctx.Query("period"), start, end)
	if err != nil {
		c.writeGoalError(ctx, err)
		return
	}
	util.Success(ctx, eval)
}

// AddEntry godoc
// @Summary Log an occurrence or measurement
// @Tags entries
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "goal id"
// @Param body body service.AddEntryRequest true "entry"
// @Success 201 {object} util.Response{data=model.GoalEntry}
// @Failure 400 {object} util.Response "goal type does not take entries"
// @Router /api/goals/{id}/entries [post]
func (c *GoalController) AddEntry(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.AddEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	entry, err := c.GoalService.AddEntry(claims.UserID, util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		c.writeGoalError(ctx, err)
		return
	}
	util.Created(ctx, entry)
}

// ListEntries godoc
// @Summary Entries of one goal, newest first
// @Tags entries
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "goal id"
// @Param start query string false "YYYY-MM-DD"
// @Param end query string false "YYYY-MM-DD"
// @Success 200 {object} util.Response{data=[]model.GoalEntry}
// @Router /api/goals/{id}/entries [get]
func (c *GoalController) ListEntries(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	start, err := util.ParseDate(ctx.Query("start"))
	if err != nil {
		util.BadRequest(ctx, "start must be YYYY-MM-DD")
		return
	}
	end, err := util.ParseDate(ctx.Query("end"))
	if err != nil {
		util.BadRequest(ctx, "end must be YYYY-MM-DD")
		return
	}

	entries, err := c.GoalService.ListEntries(claims.UserID, util.MustParseUint(ctx.Param("id")), start, end)
	if err != nil {
		c.writeGoalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}

// UpdateEntry godoc
// @Summary Amend one entry
// @Tags entries
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param entryId path int true "entry id"
// @Param body body service.UpdateEntryRequest true "fields to change"
// @Success 200 {object} util.Response{data=model.GoalEntry}
// @Router /api/entries/{entryId} [put]
func (c *GoalController) UpdateEntry(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.UpdateEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	entry, err := c.GoalService.UpdateEntry(claims.UserID, util.MustParseUint(ctx.Param("entryId")), req)
	if err != nil {
		c.writeGoalError(ctx, err)
		return
	}
	util.Success(ctx, entry)
}

// DeleteEntry godoc
// @Summary Remove one entry
// @Tags entries
// @Produce json
// @Security ApiKeyAuth
// @Param entryId path int true "entry id"
// @Success 200 {object} util.Response
// @Router /api/entries/{entryId} [delete]
func (c *GoalController) DeleteEntry(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.GoalService.DeleteEntry(claims.UserID, util.MustParseUint(ctx.Param("entryId"))); err != nil {
		c.writeGoalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// AddMilestone godoc
// @Summary Append a checklist item to a milestone goal
// @Tags milestones
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "goal id"
// @Param body body service.MilestoneRequest true "milestone"
// @Success 201 {object} util.Response{data=model.Milestone}
// @Router /api/goals/{id}/milestones [post]
func (c *GoalController) AddMilestone(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.MilestoneRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	m, err := c.GoalService.AddMilestone(claims.UserID, util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		c.writeGoalError(ctx, err)
		return
	}
	util.Created(ctx, m)
}

// ToggleMilestone godoc
// @Summary Flip one checklist item between done and not done
// @Tags milestones
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "goal id"
// @Param milestoneId path int true "milestone id"
// @Success 200 {object} util.Response{data=model.Milestone}
// @Router /api/goals/{id}/milestones/{milestoneId}/toggle [post]
func (c *GoalController) ToggleMilestone(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	m, err := c.GoalService.ToggleMilestone(claims.UserID,
		util.MustParseUint(ctx.Param("id")), util.MustParseUint(ctx.Param("milestoneId")))
	if err != nil {
		c.writeGoalError(ctx, err)
		return
	}
	util.Success(ctx, m)
}

type ReorderMilestonesRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

// ReorderMilestones godoc
// @Summary Rewrite the checklist order from a full id sequence
// @Tags milestones
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "goal id"
// @Param body body ReorderMilestonesRequest true "milestone ids in new order"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "id does not belong to the goal"
// @Router /api/goals/{id}/milestones/reorder [put]
func (c *GoalController) ReorderMilestones(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req ReorderMilestonesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.GoalService.ReorderMilestones(claims.UserID,
		util.MustParseUint(ctx.Param("id")), req.IDs); err != nil {
		c.writeGoalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// DeleteMilestone godoc
// @Summary Remove one checklist item
// @Tags milestones
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "goal id"
// @Param milestoneId path int true "milestone id"
// @Success 200 {object} util.Response
// @Router /api/goals/{id}/milestones/{milestoneId} [delete]
func (c *GoalController) DeleteMilestone(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.GoalService.DeleteMilestone(claims.UserID,
		util.MustParseUint(ctx.Param("id")), util.MustParseUint(ctx.Param("milestoneId"))); err != nil {
		c.writeGoalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
