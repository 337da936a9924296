package controller

import (
	"errors"

	"bookclub_backend/internal/model"
	"bookclub_backend/internal/service"
	"bookclub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MeetingController struct {
	MeetingService *service.MeetingService
}

func NewMeetingController(meetingService *service.MeetingService) *MeetingController {
	return &MeetingController{MeetingService: meetingService}
}

// Schedule godoc
// @Summary Schedule a club meeting (moderators and owners)
// @Tags meetings
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "club id"
// @Param body body service.CreateMeetingRequest true "meeting details"
// @Success 201 {object} util.Response{data=model.Meeting}
// @Failure 403 {object} util.Response
// @Router /api/clubs/{id}/meetings [post]
func (c *MeetingController) Schedule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.CreateMeetingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	meeting, err := c.MeetingService.Schedule(claims.UserID, util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		if errors.Is(err, util.ErrNotClubMember) || errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, meeting)
}

// Upcoming godoc
// @Summary Upcoming meetings of a club
// @Tags meetings
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "club id"
// @Success 200 {object} util.Response{data=[]model.Meeting}
// @Router /api/clubs/{id}/meetings [get]
func (c *MeetingController) Upcoming(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	meetings, err := c.MeetingService.Upcoming(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrNotClubMember) {
			util.Forbidden(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, meetings)
}

// swagger:model RSVPRequest
type RSVPRequest struct {
	Status string `json:"status" binding:"required,oneof=going maybe declined"`
}

// RSVP godoc
// @Summary RSVP to a meeting
// @Tags meetings
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param meetingId path int true "meeting id"
// @Param body body RSVPRequest true "going, maybe or declined"
// @Success 200 {object} util.Response
// @Router /api/meetings/{meetingId}/rsvp [post]
func (c *MeetingController) RSVP(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req RSVPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.MeetingService.RSVP(claims.UserID, util.MustParseUint(ctx.Param("meetingId")), model.RSVPStatus(req.Status)); err != nil {
		if errors.Is(err, util.ErrNotClubMember) {
			util.Forbidden(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// Reschedule godoc
// @Summary Update meeting details (creator or club moderator)
// @Tags meetings
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param meetingId path int true "meeting id"
// @Param body body service.UpdateMeetingRequest true "fields to change"
// @Success 200 {object} util.Response{data=model.Meeting}
// @Failure 403 {object} util.Response
// @Router /api/meetings/{meetingId} [put]
func (c *MeetingController) Reschedule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.UpdateMeetingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	meeting, err := c.MeetingService.Reschedule(claims.UserID, util.MustParseUint(ctx.Param("meetingId")), req)
	if err != nil {
		if errors.Is(err, util.ErrPermissionDenied) || errors.Is(err, util.ErrNotClubMember) {
			util.Forbidden(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, meeting)
}

// Cancel godoc
// @Summary Cancel a meeting (creator or club moderator)
// @Tags meetings
// @Produce json
// @Security ApiKeyAuth
// @Param meetingId path int true "meeting id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/meetings/{meetingId} [delete]
func (c *MeetingController) Cancel(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.MeetingService.Cancel(claims.UserID, util.MustParseUint(ctx.Param("meetingId"))); err != nil {
		if errors.Is(err, util.ErrPermissionDenied) || errors.Is(err, util.ErrNotClubMember) {
			util.Forbidden(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
