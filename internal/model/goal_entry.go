package model

import "time"

// GoalEntry is one timestamped occurrence or measurement against a habit or
// metric goal. Quantity is only meaningful when the goal's measure is sum.
// swagger:model GoalEntry
type GoalEntry struct {
	BaseModel
	GoalID     uint      `gorm:"index;type:bigint unsigned;not null" json:"goalId"`
	UserID     uint      `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	OccurredAt time.Time `gorm:"not null;index" json:"occurredAt"`
	Quantity   *float64  `json:"quantity,omitempty"`
	Note       string    `gorm:"size:500" json:"note,omitempty"`
}

func (GoalEntry) TableName() string {
	return "goal_entries"
}
