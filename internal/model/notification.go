package model

import "time"

type NotificationKind string

const (
	NotifyGoalReminder    NotificationKind = "goal_reminder"
	NotifyMeetingReminder NotificationKind = "meeting_reminder"
	NotifyNewPost         NotificationKind = "new_post"
	NotifyNewComment      NotificationKind = "new_comment"
	NotifyClubJoined      NotificationKind = "club_joined"
)

// Notification is one inbox item for a user. The same record doubles as the
// push payload handed to the delivery queue.
// swagger:model Notification
type Notification struct {
	UUIDBase
	UserID  uint             `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Kind    NotificationKind `gorm:"size:32;not null" json:"kind"`
	Title   string           `gorm:"size:255;not null" json:"title"`
	Body    string           `gorm:"size:500" json:"body"`
	Payload string           `gorm:"type:text" json:"payload,omitempty"`
	ReadAt  *time.Time       `json:"readAt,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
