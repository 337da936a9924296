package repository

import (
	"time"

	"bookclub_backend/internal/model"

	"gorm.io/gorm"
)

type GoalEntryRepository struct {
	DB *gorm.DB
}

func NewGoalEntryRepository(db *gorm.DB) *GoalEntryRepository {
	return &GoalEntryRepository{DB: db}
}

func (r *GoalEntryRepository) Create(entry *model.GoalEntry) error {
	return r.DB.Create(entry).Error
}

func (r *GoalEntryRepository) Update(entry *model.GoalEntry) error {
	return r.DB.Model(&model.GoalEntry{}).
		Where("id = ?", entry.ID).
		Updates(map[string]interface{}{
			"occurred_at": entry.OccurredAt,
			"quantity":    entry.Quantity,
			"note":        entry.Note,
			"updated_at":  time.Now(),
		}).Error
}

func (r *GoalEntryRepository) Delete(id uint) error {
	return r.DB.Delete(&model.GoalEntry{}, id).Error
}

func (r *GoalEntryRepository) FindByIDAndUserID(id, userID uint) (*model.GoalEntry, error) {
	var entry model.GoalEntry
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&entry).Error
	return &entry, err
}

// EntriesInRange returns one goal's entries inside [start, end), newest
// first. This satisfies the scorer's analytics.EntryFetcher interface.
func (r *GoalEntryRepository) EntriesInRange(userID, goalID uint, start, end time.Time) ([]model.GoalEntry, error) {
	var entries []model.GoalEntry
	err := r.DB.
		Where("user_id = ? AND goal_id = ? AND occurred_at >= ? AND occurred_at < ?",
			userID, goalID, start, end).
		Order("occurred_at DESC").
		Find(&entries).Error
	return entries, err
}

// AllForGoal returns every entry of a goal, newest first.
func (r *GoalEntryRepository) AllForGoal(userID, goalID uint) ([]model.GoalEntry, error) {
	var entries []model.GoalEntry
	err := r.DB.
		Where("user_id = ? AND goal_id = ?", userID, goalID).
		Order("occurred_at DESC").
		Find(&entries).Error
	return entries, err
}

// CountInWindow counts a goal's entries inside [start, end). The reminder
// scheduler uses it with the user's local day converted to UTC.
func (r *GoalEntryRepository) CountInWindow(userID, goalID uint, start, end time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.GoalEntry{}).
		Where("user_id = ? AND goal_id = ? AND occurred_at >= ? AND occurred_at < ?",
			userID, goalID, start, end).
		Count(&count).Error
	return count, err
}
