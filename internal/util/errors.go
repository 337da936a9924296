package util

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailRegistered  = errors.New("email already registered")
	ErrInvalidLogin     = errors.New("invalid credentials")
	ErrPermissionDenied = errors.New("permission denied")
	ErrGoalNotFound     = errors.New("goal not found")
	ErrClubNotFound     = errors.New("club not found")
	ErrNotClubMember    = errors.New("not a member of this club")
	ErrAlreadyMember    = errors.New("already a member of this club")
	ErrPrivateClub      = errors.New("club is invite only")
	ErrInvalidGoal      = errors.New("goal definition is invalid for its type")
	ErrInvalidTimezone  = errors.New("unknown timezone name")
)
