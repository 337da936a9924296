package controller

import (
	"bookclub_backend/internal/service"
	"bookclub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type WSController struct {
	Hub         *service.ClubHub
	ClubService *service.ClubService
}

func NewWSController(hub *service.ClubHub, clubService *service.ClubService) *WSController {
	return &WSController{Hub: hub, ClubService: clubService}
}

// Connect godoc
// @Summary Open the live event stream
// @Description Upgrades to a WebSocket subscribed to every club the user belongs to. The token is passed as a query parameter.
// @Tags ws
// @Security ApiKeyAuth
// @Success 101 "switching protocols"
// @Router /api/ws [get]
func (c *WSController) Connect(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	clubs, err := c.ClubService.ListClubs(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	clubIDs := make([]uint, 0, len(clubs))
	for _, club := range clubs {
		clubIDs = append(clubIDs, club.ID)
	}

	c.Hub.ServeWS(ctx.Writer, ctx.Request, claims.UserID, clubIDs)
}
