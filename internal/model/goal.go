package model

import "time"

type GoalType string

const (
	GoalHabit     GoalType = "habit"
	GoalMetric    GoalType = "metric"
	GoalMilestone GoalType = "milestone"
	GoalOneTime   GoalType = "one_time"
)

type GoalMeasure string

const (
	MeasureCount GoalMeasure = "count"
	MeasureSum   GoalMeasure = "sum"
)

type GoalCadence string

const (
	CadenceDay     GoalCadence = "day"
	CadenceWeek    GoalCadence = "week"
	CadenceMonth   GoalCadence = "month"
	CadenceQuarter GoalCadence = "quarter"
)

// Goal is one tracked objective belonging to one user within one club.
//
// Field usage depends on Type: habit goals carry Measure=count, a Cadence and
// TargetCount; metric goals carry Measure=sum, a Cadence, TargetQuantity and
// Unit; milestone goals carry an ordered Milestones checklist; one_time goals
// only use Completed.
// swagger:model Goal
type Goal struct {
	BaseModel
	UserID         uint        `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	ClubID         uint        `gorm:"index;type:bigint unsigned;not null" json:"clubId"`
	Title          string      `gorm:"size:255;not null" json:"title"`
	Description    string      `gorm:"type:text" json:"description"`
	Type           GoalType    `gorm:"type:enum('habit','metric','milestone','one_time');not null" json:"type"`
	Measure        GoalMeasure `gorm:"type:enum('count','sum')" json:"measure,omitempty"`
	Cadence        GoalCadence `gorm:"type:enum('day','week','month','quarter')" json:"cadence,omitempty"`
	TargetCount    int         `gorm:"default:0" json:"targetCount,omitempty"`
	TargetQuantity float64     `gorm:"default:0" json:"targetQuantity,omitempty"`
	Unit           string      `gorm:"size:32" json:"unit,omitempty"`
	Archived       bool        `gorm:"default:false;index" json:"archived"`
	Completed      bool        `gorm:"default:false" json:"completed"`

	Milestones []Milestone `gorm:"foreignKey:GoalID" json:"milestones,omitempty"`
	Entries    []GoalEntry `gorm:"foreignKey:GoalID" json:"entries,omitempty"`
}

func (Goal) TableName() string {
	return "goals"
}

// Milestone is one checklist item of a milestone-type goal.
// Invariant: Done=false implies DoneAt=nil.
type Milestone struct {
	BaseModel
	GoalID uint       `gorm:"index;type:bigint unsigned;not null" json:"goalId"`
	Title  string     `gorm:"size:255;not null" json:"title"`
	Done   bool       `gorm:"default:false" json:"done"`
	DoneAt *time.Time `json:"doneAt,omitempty"`
	Order  int        `gorm:"column:sort_order;default:0" json:"order"`
}

func (Milestone) TableName() string {
	return "milestones"
}
