package service

import (
	"time"

	"bookclub_backend/internal/model"
	"bookclub_backend/internal/repository"
	"bookclub_backend/internal/util"
)

type MeetingService struct {
	MeetingRepo *repository.MeetingRepository
	ClubSvc     *ClubService
	Notifier    *NotificationService
}

func NewMeetingService(meetingRepo *repository.MeetingRepository, clubSvc *ClubService, notifier *NotificationService) *MeetingService {
	return &MeetingService{
		MeetingRepo: meetingRepo,
		ClubSvc:     clubSvc,
		Notifier:    notifier,
	}
}

type CreateMeetingRequest struct {
	Title       string    `json:"title" binding:"required,max=255"`
	BookTitle   string    `json:"bookTitle" binding:"max=255"`
	Location    string    `json:"location" binding:"max=255"`
	ScheduledAt time.Time `json:"scheduledAt" binding:"required"`
}

func (s *MeetingService) Schedule(userID, clubID uint, req CreateMeetingRequest) (*model.Meeting, error) {
	member, err := s.ClubSvc.RequireMember(clubID, userID)
	if err != nil {
		return nil, err
	}
	if member.Role == model.ClubMemberR {
		return nil, util.ErrPermissionDenied
	}

	meeting := &model.Meeting{
		ClubID:      clubID,
		CreatedByID: userID,
		Title:       req.Title,
		BookTitle:   req.BookTitle,
		Location:    req.Location,
		ScheduledAt: req.ScheduledAt,
	}
	if err := s.MeetingRepo.Create(meeting); err != nil {
		return nil, err
	}

	s.Notifier.NotifyClub(clubID, userID, model.NotifyMeetingReminder,
		"Meeting scheduled", meeting.Title+" on "+meeting.ScheduledAt.Format("Jan 2 15:04"))
	return meeting, nil
}

type UpdateMeetingRequest struct {
	Title       *string    `json:"title" binding:"omitempty,max=255"`
	BookTitle   *string    `json:"bookTitle" binding:"omitempty,max=255"`
	Location    *string    `json:"location" binding:"omitempty,max=255"`
	ScheduledAt *time.Time `json:"scheduledAt"`
}

// Reschedule updates meeting details. Moderators or the creator only.
// Moving the start time re-arms the reminder.
func (s *MeetingService) Reschedule(userID, meetingID uint, req UpdateMeetingRequest) (*model.Meeting, error) {
	meeting, err := s.MeetingRepo.FindByID(meetingID)
	if err != nil {
		return nil, err
	}
	member, err := s.ClubSvc.RequireMember(meeting.ClubID, userID)
	if err != nil {
		return nil, err
	}
	if member.Role == model.ClubMemberR && meeting.CreatedByID != userID {
		return nil, util.ErrPermissionDenied
	}

	if req.Title != nil {
		meeting.Title = *req.Title
	}
	if req.BookTitle != nil {
		meeting.BookTitle = *req.BookTitle
	}
	if req.Location != nil {
		meeting.Location = *req.Location
	}
	if req.ScheduledAt != nil {
		meeting.ScheduledAt = *req.ScheduledAt
		meeting.Reminded = false
	}
	if err := s.MeetingRepo.Update(meeting); err != nil {
		return nil, err
	}

	s.Notifier.NotifyClub(meeting.ClubID, userID, model.NotifyMeetingReminder,
		"Meeting updated", meeting.Title+" now on "+meeting.ScheduledAt.Format("Jan 2 15:04"))
	return meeting, nil
}

func (s *MeetingService) Upcoming(userID, clubID uint) ([]model.Meeting, error) {
	if _, err := s.ClubSvc.RequireMember(clubID, userID); err != nil {
		return nil, err
	}
	return s.MeetingRepo.Upcoming(clubID, time.Now())
}

func (s *MeetingService) RSVP(userID, meetingID uint, status model.RSVPStatus) error {
	meeting, err := s.MeetingRepo.FindByID(meetingID)
	if err != nil {
		return err
	}
	if _, err := s.ClubSvc.RequireMember(meeting.ClubID, userID); err != nil {
		return err
	}
	return s.MeetingRepo.SetRSVP(meetingID, userID, status)
}

func (s *MeetingService) Cancel(userID, meetingID uint) error {
	meeting, err := s.MeetingRepo.FindByID(meetingID)
	if err != nil {
		return err
	}
	member, err := s.ClubSvc.RequireMember(meeting.ClubID, userID)
	if err != nil {
		return err
	}
	if member.Role == model.ClubMemberR && meeting.CreatedByID != userID {
		return util.ErrPermissionDenied
	}
	return s.MeetingRepo.Delete(meetingID)
}

// RemindDue sends a reminder for every meeting starting inside the window.
// Called from the background scheduler.
func (s *MeetingService) RemindDue(window time.Duration) error {
	meetings, err := s.MeetingRepo.DueForReminder(time.Now(), window)
	if err != nil {
		return err
	}

	for _, m := range meetings {
		s.Notifier.NotifyClub(m.ClubID, 0, model.NotifyMeetingReminder,
			"Meeting soon", m.Title+" starts at "+m.ScheduledAt.Format("15:04"))
		if err := s.MeetingRepo.MarkReminded(m.ID); err != nil {
			return err
		}
	}
	return nil
}
