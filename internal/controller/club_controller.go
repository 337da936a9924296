package controller

import (
	"errors"
	"strconv"

	"bookclub_backend/internal/service"
	"bookclub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ClubController struct {
	ClubService *service.ClubService
}

func NewClubController(clubService *service.ClubService) *ClubController {
	return &ClubController{ClubService: clubService}
}

func pageParams(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// CreateClub godoc
// @Summary Create a book club
// @Tags clubs
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateClubRequest true "club details"
// @Success 201 {object} util.Response{data=model.Club}
// @Failure 400 {object} util.Response
// @Router /api/clubs [post]
func (c *ClubController) CreateClub(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.CreateClubRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	club, err := c.ClubService.CreateClub(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, club)
}

// GetClub godoc
// @Summary One club by id
// @Tags clubs
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "club id"
// @Success 200 {object} util.Response{data=model.Club}
// @Failure 404 {object} util.Response
// @Router /api/clubs/{id} [get]
func (c *ClubController) GetClub(ctx *gin.Context) {
	club, err := c.ClubService.GetClub(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrClubNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, club)
}

// UpdateClub godoc
// @Summary Update club details (owner only)
// @Tags clubs
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "club id"
// @Param body body service.UpdateClubRequest true "fields to change"
// @Success 200 {object} util.Response{data=model.Club}
// @Failure 403 {object} util.Response
// @Router /api/clubs/{id} [put]
func (c *ClubController) UpdateClub(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.UpdateClubRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	club, err := c.ClubService.UpdateClub(claims.UserID, util.MustParseUint(ctx.Param("id")), req)
	switch {
	case err == nil:
		util.Success(ctx, club)
	case errors.Is(err, util.ErrClubNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

// DeleteClub godoc
// @Summary Delete a club and its memberships (owner only)
// @Tags clubs
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "club id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/clubs/{id} [delete]
func (c *ClubController) DeleteClub(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	err := c.ClubService.DeleteClub(claims.UserID, util.MustParseUint(ctx.Param("id")))
	switch {
	case err == nil:
		util.Success(ctx, nil)
	case errors.Is(err, util.ErrClubNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

// MyClubs godoc
// @Summary Clubs the current user belongs to
// @Tags clubs
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Club}
// @Router /api/clubs [get]
func (c *ClubController) MyClubs(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	clubs, err := c.ClubService.ListClubs(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, clubs)
}

// Discover godoc
// @Summary Browse public clubs
// @Tags clubs
// @Produce json
// @Param page query int false "page number"
// @Param limit query int false "page size"
// @Param search query string false "name filter"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/clubs/discover [get]
func (c *ClubController) Discover(ctx *gin.Context) {
	page, limit := pageParams(ctx)
	clubs, total, err := c.ClubService.Discover(page, limit, ctx.Query("search"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: clubs, Total: total, Page: page, Limit: limit})
}

// Members godoc
// @Summary Member roster of a club
// @Tags clubs
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "club id"
// @Success 200 {object} util.Response{data=[]model.ClubMember}
// @Router /api/clubs/{id}/members [get]
func (c *ClubController) Members(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	clubID := util.MustParseUint(ctx.Param("id"))

	if _, err := c.ClubService.RequireMember(clubID, claims.UserID); err != nil {
		util.Forbidden(ctx)
		return
	}

	members, err := c.ClubService.Members(clubID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, members)
}

// Join godoc
// @Summary Join a public club
// @Tags clubs
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "club id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "club is invite only"
// @Failure 409 {object} util.Response "already a member"
// @Router /api/clubs/{id}/join [post]
func (c *ClubController) Join(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	err := c.ClubService.Join(util.MustParseUint(ctx.Param("id")), claims.UserID)
	switch {
	case err == nil:
		util.Success(ctx, nil)
	case errors.Is(err, util.ErrClubNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPrivateClub):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrAlreadyMember):
		util.Error(ctx, 409, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// Leave godoc
// @Summary Leave a club
// @Tags clubs
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "club id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "owners cannot leave their own club"
// @Router /api/clubs/{id}/leave [post]
func (c *ClubController) Leave(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	err := c.ClubService.Leave(util.MustParseUint(ctx.Param("id")), claims.UserID)
	switch {
	case err == nil:
		util.Success(ctx, nil)
	case errors.Is(err, util.ErrNotClubMember):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
