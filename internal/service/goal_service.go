package service

import (
	"errors"
	"time"

	"bookclub_backend/internal/analytics"
	"bookclub_backend/internal/model"
	"bookclub_backend/internal/repository"
	"bookclub_backend/internal/util"

	"gorm.io/gorm"
)

// GoalService owns goal, entry and milestone lifecycle plus single-goal
// progress evaluation. All cross-goal scoring lives in ReportService.
type GoalService struct {
	GoalRepo  *repository.GoalRepository
	EntryRepo *repository.GoalEntryRepository
	ClubSvc   *ClubService
}

func NewGoalService(goalRepo *repository.GoalRepository, entryRepo *repository.GoalEntryRepository, clubSvc *ClubService) *GoalService {
	return &GoalService{
		GoalRepo:  goalRepo,
		EntryRepo: entryRepo,
		ClubSvc:   clubSvc,
	}
}

type CreateGoalRequest struct {
	ClubID         uint     `json:"clubId" binding:"required"`
	Title          string   `json:"title" binding:"required,max=255"`
	Description    string   `json:"description" binding:"max=2000"`
	Type           string   `json:"type" binding:"required,oneof=habit metric milestone one_time"`
	Cadence        string   `json:"cadence" binding:"omitempty,oneof=day week month quarter"`
	TargetCount    int      `json:"targetCount" binding:"omitempty,min=1"`
	TargetQuantity float64  `json:"targetQuantity" binding:"omitempty,gt=0"`
	Unit           string   `json:"unit" binding:"max=32"`
	Milestones     []string `json:"milestones" binding:"max=50,dive,max=255"`
}

// validateShape enforces the per-type field invariants before a goal is
// created or retyped.
func validateShape(goal *model.Goal) error {
	switch goal.Type {
	case model.GoalHabit:
		if goal.Cadence == "" || goal.TargetCount < 1 {
			return util.ErrInvalidGoal
		}
		goal.Measure = model.MeasureCount
	case model.GoalMetric:
		if goal.Cadence == "" || goal.TargetQuantity <= 0 || goal.Unit == "" {
			return util.ErrInvalidGoal
		}
		goal.Measure = model.MeasureSum
	case model.GoalMilestone, model.GoalOneTime:
		goal.Measure = ""
		goal.Cadence = ""
	default:
		return util.ErrInvalidGoal
	}
	return nil
}

func (s *GoalService) CreateGoal(userID uint, req CreateGoalRequest) (*model.Goal, error) {
	if _, err := s.ClubSvc.RequireMember(req.ClubID, userID); err != nil {
		return nil, err
	}

	goal := &model.Goal{
		UserID:         userID,
		ClubID:         req.ClubID,
		Title:          req.Title,
		Description:    req.Description,
		Type:           model.GoalType(req.Type),
		Cadence:        model.GoalCadence(req.Cadence),
		TargetCount:    req.TargetCount,
		TargetQuantity: req.TargetQuantity,
		Unit:           req.Unit,
	}
	if err := validateShape(goal); err != nil {
		return nil, err
	}

	if goal.Type == model.GoalMilestone {
		for i, title := range req.Milestones {
			goal.Milestones = append(goal.Milestones, model.Milestone{
				Title: title,
				Order: i,
			})
		}
	}

	return goal, s.GoalRepo.Create(goal)
}

type UpdateGoalRequest struct {
	Title          string  `json:"title" binding:"max=255"`
	Description    *string `json:"description" binding:"omitempty,max=2000"`
	Cadence        string  `json:"cadence" binding:"omitempty,oneof=day week month quarter"`
	TargetCount    int     `json:"targetCount" binding:"omitempty,min=1"`
	TargetQuantity float64 `json:"targetQuantity" binding:"omitempty,gt=0"`
	Unit           string  `json:"unit" binding:"max=32"`
	Archived       *bool   `json:"archived"`
	Completed      *bool   `json:"completed"`
}

func (s *GoalService) UpdateGoal(userID, goalID uint, req UpdateGoalRequest) (*model.Goal, error) {
	goal, err := s.findOwned(userID, goalID)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		goal.Title = req.Title
	}
	if req.Description != nil {
		goal.Description = *req.Description
	}
	if req.Cadence != "" {
		goal.Cadence = model.GoalCadence(req.Cadence)
	}
	if req.TargetCount > 0 {
		goal.TargetCount = req.TargetCount
	}
	if req.TargetQuantity > 0 {
		goal.TargetQuantity = req.TargetQuantity
	}
	if req.Unit != "" {
		goal.Unit = req.Unit
	}
	if req.Archived != nil {
		goal.Archived = *req.Archived
	}
	if req.Completed != nil {
		goal.Completed = *req.Completed
	}

	if err := validateShape(goal); err != nil {
		return nil, err
	}
	return goal, s.GoalRepo.Update(goal)
}

func (s *GoalService) DeleteGoal(userID, goalID uint) error {
	if _, err := s.findOwned(userID, goalID); err != nil {
		return err
	}
	return s.GoalRepo.Delete(goalID)
}

func (s *GoalService) GetGoal(userID, goalID uint) (*model.Goal, error) {
	return s.findOwned(userID, goalID)
}

func (s *GoalService) ListGoals(userID, clubID uint, goalType string) ([]model.Goal, error) {
	return s.GoalRepo.Find(repository.GoalFilter{
		UserID: userID,
		ClubID: clubID,
		Type:   model.GoalType(goalType),
	})
}

// GoalProgress evaluates one goal over a period token: "current" (default),
// "all", or "range" with explicit bounds.
func (s *GoalService) GoalProgress(userID, goalID uint, period string, start, end *time.Time) (*model.Evaluation, error) {
	goal, err := s.findOwned(userID, goalID)
	if err != nil {
		return nil, err
	}

	var from, to time.Time
	if start != nil {
		from = *start
	}
	if end != nil {
		to = *end
	}

	window, err := analytics.ResolveWindow(goal, period, from, to, time.Now())
	if err != nil {
		return nil, err
	}

	var entries []model.GoalEntry
	if window != nil {
		entries, err = s.EntryRepo.EntriesInRange(userID, goalID, window.Start, window.End)
	} else if goal.Type == model.GoalHabit || goal.Type == model.GoalMetric {
		entries, err = s.EntryRepo.AllForGoal(userID, goalID)
	}
	if err != nil {
		return nil, err
	}

	eval, err := analytics.EvaluateGoal(goal, entries)
	if err != nil {
		return nil, err
	}
	return &eval, nil
}

type AddEntryRequest struct {
	OccurredAt time.Time `json:"occurredAt"`
	Quantity   *float64  `json:"quantity"`
	Note       string    `json:"note" binding:"max=500"`
}

func (s *GoalService) AddEntry(userID, goalID uint, req AddEntryRequest) (*model.GoalEntry, error) {
	goal, err := s.findOwned(userID, goalID)
	if err != nil {
		return nil, err
	}
	if goal.Type != model.GoalHabit && goal.Type != model.GoalMetric {
		return nil, util.ErrInvalidGoal
	}

	entry := &model.GoalEntry{
		GoalID:     goalID,
		UserID:     userID,
		OccurredAt: req.OccurredAt,
		Quantity:   req.Quantity,
		Note:       req.Note,
	}
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = time.Now()
	}
	return entry, s.EntryRepo.Create(entry)
}

type UpdateEntryRequest struct {
	OccurredAt *time.Time `json:"occurredAt"`
	Quantity   *float64   `json:"quantity"`
	Note       *string    `json:"note" binding:"omitempty,max=500"`
}

func (s *GoalService) UpdateEntry(userID, entryID uint, req UpdateEntryRequest) (*model.GoalEntry, error) {
	entry, err := s.EntryRepo.FindByIDAndUserID(entryID, userID)
	if err != nil {
		return nil, err
	}

	if req.OccurredAt != nil {
		entry.OccurredAt = *req.OccurredAt
	}
	if req.Quantity != nil {
		entry.Quantity = req.Quantity
	}
	if req.Note != nil {
		entry.Note = *req.Note
	}
	return entry, s.EntryRepo.Update(entry)
}

func (s *GoalService) DeleteEntry(userID, entryID uint) error {
	if _, err := s.EntryRepo.FindByIDAndUserID(entryID, userID); err != nil {
		return err
	}
	return s.EntryRepo.Delete(entryID)
}

func (s *GoalService) ListEntries(userID, goalID uint, start, end *time.Time) ([]model.GoalEntry, error) {
	if _, err := s.findOwned(userID, goalID); err != nil {
		return nil, err
	}
	if start != nil && end != nil {
		return s.EntryRepo.EntriesInRange(userID, goalID, *start, *end)
	}
	return s.EntryRepo.AllForGoal(userID, goalID)
}

type MilestoneRequest struct {
	Title string `json:"title" binding:"required,max=255"`
	Order int    `json:"order"`
}

func (s *GoalService) AddMilestone(userID, goalID uint, req MilestoneRequest) (*model.Milestone, error) {
	goal, err := s.findOwned(userID, goalID)
	if err != nil {
		return nil, err
	}
	if goal.Type != model.GoalMilestone {
		return nil, util.ErrInvalidGoal
	}

	m := &model.Milestone{
		GoalID: goalID,
		Title:  req.Title,
		Order:  req.Order,
	}
	return m, s.GoalRepo.CreateMilestone(m)
}

// ToggleMilestone flips a checklist item, maintaining the done/doneAt
// invariant.
func (s *GoalService) ToggleMilestone(userID, goalID, milestoneID uint) (*model.Milestone, error) {
	if _, err := s.findOwned(userID, goalID); err != nil {
		return nil, err
	}

	m, err := s.GoalRepo.FindMilestone(milestoneID, goalID)
	if err != nil {
		return nil, err
	}

	m.Done = !m.Done
	if m.Done {
		now := time.Now()
		m.DoneAt = &now
	} else {
		m.DoneAt = nil
	}
	return m, s.GoalRepo.UpdateMilestone(m)
}

// ReorderMilestones rewrites the checklist order. Every id must belong to
// the goal or the whole call fails.
func (s *GoalService) ReorderMilestones(userID, goalID uint, ids []uint) error {
	goal, err := s.findOwned(userID, goalID)
	if err != nil {
		return err
	}
	if goal.Type != model.GoalMilestone {
		return util.ErrInvalidGoal
	}

	err = s.GoalRepo.ReorderMilestones(goalID, ids)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrInvalidGoal
	}
	return err
}

func (s *GoalService) DeleteMilestone(userID, goalID, milestoneID uint) error {
	if _, err := s.findOwned(userID, goalID); err != nil {
		return err
	}
	if _, err := s.GoalRepo.FindMilestone(milestoneID, goalID); err != nil {
		return err
	}
	return s.GoalRepo.DeleteMilestone(milestoneID)
}

func (s *GoalService) findOwned(userID, goalID uint) (*model.Goal, error) {
	goal, err := s.GoalRepo.FindByIDAndUserID(goalID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrGoalNotFound
	}
	return goal, err
}
