package service

import (
	"encoding/json"

	"bookclub_backend/internal/model"
	"bookclub_backend/internal/repository"
	"bookclub_backend/pkg/logger"
	"bookclub_backend/pkg/queue"

	"go.uber.org/zap"
)

// NotificationService persists inbox items, hands push payloads to the
// delivery queue and fans events out to connected clients via the hub.
// Delivery failures are logged, never surfaced to the triggering request.
type NotificationService struct {
	NotificationRepo *repository.NotificationRepository
	ClubRepo         *repository.ClubRepository
	Producer         queue.Producer
	Hub              *ClubHub
}

func NewNotificationService(
	notificationRepo *repository.NotificationRepository,
	clubRepo *repository.ClubRepository,
	producer queue.Producer,
	hub *ClubHub,
) *NotificationService {
	return &NotificationService{
		NotificationRepo: notificationRepo,
		ClubRepo:         clubRepo,
		Producer:         producer,
		Hub:              hub,
	}
}

// Notify stores one notification and pushes it out.
func (s *NotificationService) Notify(userID uint, kind model.NotificationKind, title, body string) {
	n := &model.Notification{
		UserID: userID,
		Kind:   kind,
		Title:  title,
		Body:   body,
	}
	if err := s.NotificationRepo.Create(n); err != nil {
		logger.Log.Error("failed to store notification",
			zap.Uint("user_id", userID), zap.Error(err))
		return
	}

	payload, err := json.Marshal(n)
	if err != nil {
		logger.Log.Error("failed to encode push payload", zap.Error(err))
		return
	}
	if err := s.Producer.Publish(payload); err != nil {
		logger.Log.Error("failed to enqueue push notification",
			zap.String("notification_id", n.ID), zap.Error(err))
	}
}

// NotifyClub notifies every member of a club except the actor.
func (s *NotificationService) NotifyClub(clubID, actorID uint, kind model.NotificationKind, title, body string) {
	members, err := s.ClubRepo.Members(clubID)
	if err != nil {
		logger.Log.Error("failed to load club members for notification",
			zap.Uint("club_id", clubID), zap.Error(err))
		return
	}

	for _, m := range members {
		if m.UserID == actorID {
			continue
		}
		s.Notify(m.UserID, kind, title, body)
	}

	if s.Hub != nil {
		s.Hub.BroadcastToClub(clubID, ClubEvent{
			Type: string(kind),
			Data: map[string]interface{}{"title": title, "body": body},
		})
	}
}

func (s *NotificationService) Inbox(userID uint, page, limit int) ([]model.Notification, int64, error) {
	return s.NotificationRepo.FindByUser(userID, (page-1)*limit, limit)
}

func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	return s.NotificationRepo.UnreadCount(userID)
}

func (s *NotificationService) MarkRead(id string, userID uint) error {
	return s.NotificationRepo.MarkRead(id, userID)
}

func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.NotificationRepo.MarkAllRead(userID)
}
