package repository

import (
	"time"

	"bookclub_backend/internal/model"

	"gorm.io/gorm"
)

type MeetingRepository struct {
	DB *gorm.DB
}

func NewMeetingRepository(db *gorm.DB) *MeetingRepository {
	return &MeetingRepository{DB: db}
}

func (r *MeetingRepository) Create(meeting *model.Meeting) error {
	return r.DB.Create(meeting).Error
}

func (r *MeetingRepository) Update(meeting *model.Meeting) error {
	return r.DB.Save(meeting).Error
}

func (r *MeetingRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meeting_id = ?", id).Delete(&model.MeetingRSVP{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Meeting{}, id).Error
	})
}

func (r *MeetingRepository) FindByID(id uint) (*model.Meeting, error) {
	var meeting model.Meeting
	err := r.DB.Preload("RSVPs").First(&meeting, id).Error
	return &meeting, err
}

// Upcoming returns a club's future meetings, soonest first.
func (r *MeetingRepository) Upcoming(clubID uint, now time.Time) ([]model.Meeting, error) {
	var meetings []model.Meeting
	err := r.DB.Preload("RSVPs").
		Where("club_id = ? AND scheduled_at >= ?", clubID, now).
		Order("scheduled_at").
		Find(&meetings).Error
	return meetings, err
}

// DueForReminder returns meetings starting within the window that have not
// been reminded yet.
func (r *MeetingRepository) DueForReminder(now time.Time, window time.Duration) ([]model.Meeting, error) {
	var meetings []model.Meeting
	err := r.DB.
		Where("reminded = ? AND scheduled_at > ? AND scheduled_at <= ?", false, now, now.Add(window)).
		Find(&meetings).Error
	return meetings, err
}

func (r *MeetingRepository) MarkReminded(id uint) error {
	return r.DB.Model(&model.Meeting{}).
		Where("id = ?", id).
		Update("reminded", true).Error
}

// SetRSVP upserts one member's RSVP.
func (r *MeetingRepository) SetRSVP(meetingID, userID uint, status model.RSVPStatus) error {
	var rsvp model.MeetingRSVP
	err := r.DB.Where("meeting_id = ? AND user_id = ?", meetingID, userID).First(&rsvp).Error
	if err == gorm.ErrRecordNotFound {
		return r.DB.Create(&model.MeetingRSVP{
			MeetingID: meetingID,
			UserID:    userID,
			Status:    status,
		}).Error
	}
	if err != nil {
		return err
	}
	rsvp.Status = status
	return r.DB.Save(&rsvp).Error
}
