package model

import "time"

type ClubRole string

const (
	ClubOwner     ClubRole = "owner"
	ClubModerator ClubRole = "moderator"
	ClubMemberR   ClubRole = "member"
)

// swagger:model Club
type Club struct {
	BaseModel
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	OwnerID     uint   `gorm:"index;type:bigint unsigned;not null" json:"ownerId"`
	CoverColor  string `gorm:"size:16;default:'#3b5bdb'" json:"coverColor"`
	IsPrivate   bool   `gorm:"default:false" json:"isPrivate"`

	Members []ClubMember `gorm:"foreignKey:ClubID" json:"members,omitempty"`
}

func (Club) TableName() string {
	return "clubs"
}

// ClubMember links a user to a club with a role.
type ClubMember struct {
	BaseModel
	ClubID   uint      `gorm:"index:idx_club_user,unique;type:bigint unsigned;not null" json:"clubId"`
	UserID   uint      `gorm:"index:idx_club_user,unique;type:bigint unsigned;not null" json:"userId"`
	Role     ClubRole  `gorm:"type:enum('owner','moderator','member');default:'member'" json:"role"`
	JoinedAt time.Time `gorm:"not null" json:"joinedAt"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (ClubMember) TableName() string {
	return "club_members"
}
