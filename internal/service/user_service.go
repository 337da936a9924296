package service

import (
	"time"

	"bookclub_backend/internal/model"
	"bookclub_backend/internal/repository"
	"bookclub_backend/internal/util"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	return s.UserRepo.FindByID(userID)
}

// ListUsers is admin only.
func (s *UserService) ListUsers() ([]model.User, error) {
	return s.UserRepo.AllActive()
}

type UpdateProfileRequest struct {
	Name     string `json:"name" binding:"max=100"`
	Avatar   string `json:"avatar" binding:"max=255"`
	Bio      string `json:"bio" binding:"max=500"`
	Timezone string `json:"timezone" binding:"max=64"`
}

func (s *UserService) UpdateProfile(userID uint, req UpdateProfileRequest) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.Timezone != "" {
		// Reject zone names the runtime cannot resolve.
		if _, err := time.LoadLocation(req.Timezone); err != nil {
			return nil, util.ErrInvalidTimezone
		}
		user.Timezone = req.Timezone
	}

	return user, s.UserRepo.Update(user)
}
