package service

import (
	"fmt"
	"time"

	"bookclub_backend/internal/model"
	"bookclub_backend/internal/repository"
	"bookclub_backend/pkg/logger"

	"go.uber.org/zap"
)

// ReminderService nudges users about daily habits they have not logged yet.
// It fires once per user per day around a configured local-evening hour,
// resolved through each user's stored timezone.
type ReminderService struct {
	UserRepo  *repository.UserRepository
	GoalRepo  *repository.GoalRepository
	EntryRepo *repository.GoalEntryRepository
	Notifier  *NotificationService

	// LocalHour is the target hour (0..23) in each user's local time.
	LocalHour int

	// remindedOn tracks the last local date a user was nudged, so a tick
	// landing twice in the same hour sends nothing.
	remindedOn map[uint]string
	now        func() time.Time
}

func NewReminderService(
	userRepo *repository.UserRepository,
	goalRepo *repository.GoalRepository,
	entryRepo *repository.GoalEntryRepository,
	notifier *NotificationService,
	localHour int,
) *ReminderService {
	return &ReminderService{
		UserRepo:   userRepo,
		GoalRepo:   goalRepo,
		EntryRepo:  entryRepo,
		Notifier:   notifier,
		LocalHour:  localHour,
		remindedOn: make(map[uint]string),
		now:        time.Now,
	}
}

// Tick is called from the background scheduler. It is not safe for
// concurrent use; the scheduler runs it from a single goroutine.
func (s *ReminderService) Tick() error {
	users, err := s.UserRepo.AllActive()
	if err != nil {
		return err
	}

	now := s.now()
	for i := range users {
		if err := s.remindUser(&users[i], now); err != nil {
			logger.Log.Warn("habit reminder failed",
				zap.Uint("user_id", users[i].ID), zap.Error(err))
		}
	}
	return nil
}

func (s *ReminderService) remindUser(user *model.User, now time.Time) error {
	loc, err := time.LoadLocation(user.Timezone)
	if err != nil {
		loc = time.UTC
	}
	local := now.In(loc)
	if local.Hour() != s.LocalHour {
		return nil
	}

	today := local.Format("2006-01-02")
	if s.remindedOn[user.ID] == today {
		return nil
	}

	goals, err := s.GoalRepo.Find(repository.GoalFilter{
		UserID:  user.ID,
		Type:    model.GoalHabit,
		Cadence: model.CadenceDay,
	})
	if err != nil {
		return err
	}

	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc).UTC()
	dayEnd := dayStart.Add(24 * time.Hour)

	pending := 0
	for _, goal := range goals {
		if goal.Completed {
			continue
		}
		count, err := s.EntryRepo.CountInWindow(user.ID, goal.ID, dayStart, dayEnd)
		if err != nil {
			return err
		}
		if count == 0 {
			pending++
		}
	}

	// Mark the day even when nothing is pending, to skip repeat scans
	// within the same hour.
	s.remindedOn[user.ID] = today
	if pending == 0 {
		return nil
	}

	s.Notifier.Notify(user.ID, model.NotifyGoalReminder,
		"Keep your streak going",
		fmt.Sprintf("%d daily habit(s) still unlogged today", pending))
	return nil
}
