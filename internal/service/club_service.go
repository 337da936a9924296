package service

import (
	"errors"
	"time"

	"bookclub_backend/internal/model"
	"bookclub_backend/internal/repository"
	"bookclub_backend/internal/util"

	"gorm.io/gorm"
)

type ClubService struct {
	ClubRepo *repository.ClubRepository
	UserRepo *repository.UserRepository
	Notifier *NotificationService
}

func NewClubService(clubRepo *repository.ClubRepository, userRepo *repository.UserRepository, notifier *NotificationService) *ClubService {
	return &ClubService{
		ClubRepo: clubRepo,
		UserRepo: userRepo,
		Notifier: notifier,
	}
}

type CreateClubRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=2000"`
	CoverColor  string `json:"coverColor" binding:"max=16"`
	IsPrivate   bool   `json:"isPrivate"`
}

func (s *ClubService) CreateClub(ownerID uint, req CreateClubRequest) (*model.Club, error) {
	club := &model.Club{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     ownerID,
		IsPrivate:   req.IsPrivate,
	}
	if req.CoverColor != "" {
		club.CoverColor = req.CoverColor
	}
	return club, s.ClubRepo.Create(club)
}

type UpdateClubRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	CoverColor  *string `json:"coverColor" binding:"omitempty,max=16"`
	IsPrivate   *bool   `json:"isPrivate"`
}

// UpdateClub applies the non-nil fields. Owner only.
func (s *ClubService) UpdateClub(userID, clubID uint, req UpdateClubRequest) (*model.Club, error) {
	club, err := s.GetClub(clubID)
	if err != nil {
		return nil, err
	}
	if club.OwnerID != userID {
		return nil, util.ErrPermissionDenied
	}

	if req.Name != nil {
		club.Name = *req.Name
	}
	if req.Description != nil {
		club.Description = *req.Description
	}
	if req.CoverColor != nil {
		club.CoverColor = *req.CoverColor
	}
	if req.IsPrivate != nil {
		club.IsPrivate = *req.IsPrivate
	}
	return club, s.ClubRepo.Update(club)
}

// DeleteClub removes the club and its memberships. Owner only.
func (s *ClubService) DeleteClub(userID, clubID uint) error {
	club, err := s.GetClub(clubID)
	if err != nil {
		return err
	}
	if club.OwnerID != userID {
		return util.ErrPermissionDenied
	}
	return s.ClubRepo.Delete(clubID)
}

func (s *ClubService) GetClub(clubID uint) (*model.Club, error) {
	club, err := s.ClubRepo.FindByID(clubID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrClubNotFound
	}
	return club, err
}

func (s *ClubService) ListClubs(userID uint) ([]model.Club, error) {
	return s.ClubRepo.FindByUserID(userID)
}

func (s *ClubService) Discover(page, limit int, search string) ([]model.Club, int64, error) {
	return s.ClubRepo.FindPublic((page-1)*limit, limit, search)
}

func (s *ClubService) Members(clubID uint) ([]model.ClubMember, error) {
	return s.ClubRepo.Members(clubID)
}

// RequireMember returns the membership record or ErrNotClubMember.
func (s *ClubService) RequireMember(clubID, userID uint) (*model.ClubMember, error) {
	member, err := s.ClubRepo.FindMember(clubID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotClubMember
	}
	return member, err
}

func (s *ClubService) Join(clubID, userID uint) error {
	club, err := s.GetClub(clubID)
	if err != nil {
		return err
	}
	if club.IsPrivate {
		return util.ErrPrivateClub
	}

	if _, err := s.ClubRepo.FindMember(clubID, userID); err == nil {
		return util.ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	member := &model.ClubMember{
		ClubID:   clubID,
		UserID:   userID,
		Role:     model.ClubMemberR,
		JoinedAt: time.Now(),
	}
	if err := s.ClubRepo.AddMember(member); err != nil {
		return err
	}

	if user, err := s.UserRepo.FindByID(userID); err == nil {
		s.Notifier.NotifyClub(clubID, userID, model.NotifyClubJoined,
			"New member", user.Name+" joined "+club.Name)
	}
	return nil
}

func (s *ClubService) Leave(clubID, userID uint) error {
	member, err := s.RequireMember(clubID, userID)
	if err != nil {
		return err
	}
	if member.Role == model.ClubOwner {
		return util.ErrPermissionDenied
	}
	return s.ClubRepo.RemoveMember(clubID, userID)
}
