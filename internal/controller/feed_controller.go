package controller

import (
	"errors"

	"bookclub_backend/internal/service"
	"bookclub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type FeedController struct {
	FeedService *service.FeedService
}

func NewFeedController(feedService *service.FeedService) *FeedController {
	return &FeedController{FeedService: feedService}
}

func writeFeedError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrNotClubMember), errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

// CreatePost godoc
// @Summary Post to a club feed
// @Tags feed
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "club id"
// @Param body body service.CreatePostRequest true "post body"
// @Success 201 {object} util.Response{data=model.Post}
// @Router /api/clubs/{id}/posts [post]
func (c *FeedController) CreatePost(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.CreatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	post, err := c.FeedService.CreatePost(claims.UserID, util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		writeFeedError(ctx, err)
		return
	}
	util.Created(ctx, post)
}

// Feed godoc
// @Summary Club feed, newest first
// @Tags feed
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "club id"
// @Param page query int false "page number"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/clubs/{id}/posts [get]
func (c *FeedController) Feed(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	page, limit := pageParams(ctx)

	posts, total, err := c.FeedService.Feed(claims.UserID, util.MustParseUint(ctx.Param("id")), page, limit)
	if err != nil {
		writeFeedError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: posts, Total: total, Page: page, Limit: limit})
}

// DeletePost godoc
// @Summary Delete a post (author or club moderator)
// @Tags feed
// @Produce json
// @Security ApiKeyAuth
// @Param postId path int true "post id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/posts/{postId} [delete]
func (c *FeedController) DeletePost(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.FeedService.DeletePost(claims.UserID, util.MustParseUint(ctx.Param("postId"))); err != nil {
		writeFeedError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// AddComment godoc
// @Summary Comment on a post
// @Tags feed
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param postId path int true "post id"
// @Param body body service.CommentRequest true "comment body"
// @Success 201 {object} util.Response{data=model.Comment}
// @Router /api/posts/{postId}/comments [post]
func (c *FeedController) AddComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	comment, err := c.FeedService.AddComment(claims.UserID, util.MustParseUint(ctx.Param("postId")), req)
	if err != nil {
		writeFeedError(ctx, err)
		return
	}
	util.Created(ctx, comment)
}

// Comments godoc
// @Summary Comments of one post, oldest first
// @Tags feed
// @Produce json
// @Security ApiKeyAuth
// @Param postId path int true "post id"
// @Success 200 {object} util.Response{data=[]model.Comment}
// @Router /api/posts/{postId}/comments [get]
func (c *FeedController) Comments(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	comments, err := c.FeedService.Comments(claims.UserID, util.MustParseUint(ctx.Param("postId")))
	if err != nil {
		writeFeedError(ctx, err)
		return
	}
	util.Success(ctx, comments)
}

// ToggleLike godoc
// @Summary Like or unlike a post
// @Tags feed
// @Produce json
// @Security ApiKeyAuth
// @Param postId path int true "post id"
// @Success 200 {object} util.Response{data=object}
// @Router /api/posts/{postId}/like [post]
func (c *FeedController) ToggleLike(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	liked, err := c.FeedService.ToggleLike(claims.UserID, util.MustParseUint(ctx.Param("postId")))
	if err != nil {
		writeFeedError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"liked": liked})
}
