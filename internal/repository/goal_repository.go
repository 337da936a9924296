package repository

import (
	"bookclub_backend/internal/model"

	"gorm.io/gorm"
)

// GoalFilter narrows goal queries. Zero values mean "any".
type GoalFilter struct {
	UserID          uint
	ClubID          uint
	Type            model.GoalType
	Cadence         model.GoalCadence
	IncludeArchived bool
}

type GoalRepository struct {
	DB *gorm.DB
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{DB: db}
}

func (r *GoalRepository) Create(goal *model.Goal) error {
	return r.DB.Create(goal).Error
}

func (r *GoalRepository) Update(goal *model.Goal) error {
	return r.DB.Save(goal).Error
}

// Delete removes the goal and cascades its entries and milestones.
func (r *GoalRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("goal_id = ?", id).Delete(&model.GoalEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("goal_id = ?", id).Delete(&model.Milestone{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Goal{}, id).Error
	})
}

func (r *GoalRepository) FindByID(id uint) (*model.Goal, error) {
	var goal model.Goal
	err := r.DB.Preload("Milestones", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order")
	}).First(&goal, id).Error
	return &goal, err
}

func (r *GoalRepository) FindByIDAndUserID(id, userID uint) (*model.Goal, error) {
	var goal model.Goal
	err := r.DB.Preload("Milestones", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order")
	}).Where("id = ? AND user_id = ?", id, userID).First(&goal).Error
	return &goal, err
}

// Find returns goals matching the filter, milestones preloaded, oldest first.
func (r *GoalRepository) Find(filter GoalFilter) ([]model.Goal, error) {
	query := r.DB.Preload("Milestones", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order")
	})

	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.ClubID > 0 {
		query = query.Where("club_id = ?", filter.ClubID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Cadence != "" {
		query = query.Where("cadence = ?", filter.Cadence)
	}
	if !filter.IncludeArchived {
		query = query.Where("archived = ?", false)
	}

	var goals []model.Goal
	err := query.Order("created_at").Find(&goals).Error
	return goals, err
}

// Milestone access lives here too; milestones never outlive their goal.

func (r *GoalRepository) CreateMilestone(m *model.Milestone) error {
	return r.DB.Create(m).Error
}

func (r *GoalRepository) UpdateMilestone(m *model.Milestone) error {
	return r.DB.Save(m).Error
}

func (r *GoalRepository) DeleteMilestone(id uint) error {
	return r.DB.Delete(&model.Milestone{}, id).Error
}

// ReorderMilestones rewrites sort_order to match the given id sequence.
func (r *GoalRepository) ReorderMilestones(goalID uint, ids []uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			res := tx.Model(&model.Milestone{}).
				Where("id = ? AND goal_id = ?", id, goalID).
				Update("sort_order", i)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}

func (r *GoalRepository) FindMilestone(id, goalID uint) (*model.Milestone, error) {
	var m model.Milestone
	err := r.DB.Where("id = ? AND goal_id = ?", id, goalID).First(&m).Error
	return &m, err
}
