package service

import (
	"errors"

	"bookclub_backend/internal/model"
	"bookclub_backend/internal/repository"
	"bookclub_backend/internal/util"

	"gorm.io/gorm"
)

type FeedService struct {
	PostRepo *repository.PostRepository
	ClubSvc  *ClubService
	Notifier *NotificationService
	Hub      *ClubHub
}

func NewFeedService(postRepo *repository.PostRepository, clubSvc *ClubService, notifier *NotificationService, hub *ClubHub) *FeedService {
	return &FeedService{
		PostRepo: postRepo,
		ClubSvc:  clubSvc,
		Notifier: notifier,
		Hub:      hub,
	}
}

type CreatePostRequest struct {
	Body string `json:"body" binding:"required,max=4000"`
}

func (s *FeedService) CreatePost(userID, clubID uint, req CreatePostRequest) (*model.Post, error) {
	if _, err := s.ClubSvc.RequireMember(clubID, userID); err != nil {
		return nil, err
	}

	post := &model.Post{
		ClubID: clubID,
		UserID: userID,
		Body:   req.Body,
	}
	if err := s.PostRepo.Create(post); err != nil {
		return nil, err
	}

	if s.Hub != nil {
		s.Hub.BroadcastToClub(clubID, ClubEvent{Type: "new_post", Data: post})
	}
	return post, nil
}

func (s *FeedService) Feed(userID, clubID uint, page, limit int) ([]model.Post, int64, error) {
	if _, err := s.ClubSvc.RequireMember(clubID, userID); err != nil {
		return nil, 0, err
	}
	return s.PostRepo.FindByClub(clubID, (page-1)*limit, limit)
}

func (s *FeedService) DeletePost(userID, postID uint) error {
	post, err := s.PostRepo.FindByID(postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrPermissionDenied
	}
	if err != nil {
		return err
	}

	if post.UserID != userID {
		// Moderators and the owner may remove any post.
		member, err := s.ClubSvc.RequireMember(post.ClubID, userID)
		if err != nil {
			return err
		}
		if member.Role == model.ClubMemberR {
			return util.ErrPermissionDenied
		}
	}
	return s.PostRepo.Delete(postID)
}

type CommentRequest struct {
	Body string `json:"body" binding:"required,max=2000"`
}

func (s *FeedService) AddComment(userID, postID uint, req CommentRequest) (*model.Comment, error) {
	post, err := s.PostRepo.FindByID(postID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ClubSvc.RequireMember(post.ClubID, userID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		PostID: postID,
		UserID: userID,
		Body:   req.Body,
	}
	if err := s.PostRepo.CreateComment(comment); err != nil {
		return nil, err
	}

	if post.UserID != userID {
		s.Notifier.Notify(post.UserID, model.NotifyNewComment,
			"New comment", "Someone commented on your post")
	}
	return comment, nil
}

func (s *FeedService) Comments(userID, postID uint) ([]model.Comment, error) {
	post, err := s.PostRepo.FindByID(postID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ClubSvc.RequireMember(post.ClubID, userID); err != nil {
		return nil, err
	}
	return s.PostRepo.Comments(postID)
}

func (s *FeedService) ToggleLike(userID, postID uint) (bool, error) {
	post, err := s.PostRepo.FindByID(postID)
	if err != nil {
		return false, err
	}
	if _, err := s.ClubSvc.RequireMember(post.ClubID, userID); err != nil {
		return false, err
	}
	return s.PostRepo.ToggleLike(postID, userID)
}
