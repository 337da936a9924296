package model

import "time"

type RSVPStatus string

const (
	RSVPGoing    RSVPStatus = "going"
	RSVPMaybe    RSVPStatus = "maybe"
	RSVPDeclined RSVPStatus = "declined"
)

// Meeting is one scheduled club gathering.
// swagger:model Meeting
type Meeting struct {
	BaseModel
	ClubID      uint      `gorm:"index;type:bigint unsigned;not null" json:"clubId"`
	CreatedByID uint      `gorm:"type:bigint unsigned;not null" json:"createdById"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	BookTitle   string    `gorm:"size:255" json:"bookTitle"`
	Location    string    `gorm:"size:255" json:"location"`
	ScheduledAt time.Time `gorm:"not null;index" json:"scheduledAt"`
	Reminded    bool      `gorm:"default:false" json:"-"`

	RSVPs []MeetingRSVP `gorm:"foreignKey:MeetingID" json:"rsvps,omitempty"`
}

func (Meeting) TableName() string {
	return "meetings"
}

type MeetingRSVP struct {
	BaseModel
	MeetingID uint       `gorm:"index:idx_meeting_user,unique;type:bigint unsigned;not null" json:"meetingId"`
	UserID    uint       `gorm:"index:idx_meeting_user,unique;type:bigint unsigned;not null" json:"userId"`
	Status    RSVPStatus `gorm:"type:enum('going','maybe','declined');default:'going'" json:"status"`
}

func (MeetingRSVP) TableName() string {
	return "meeting_rsvps"
}
