package repository

import (
	"time"

	"bookclub_backend/internal/model"

	"gorm.io/gorm"
)

type ClubRepository struct {
	DB *gorm.DB
}

func NewClubRepository(db *gorm.DB) *ClubRepository {
	return &ClubRepository{DB: db}
}

// Create inserts the club and its owner membership in one transaction.
func (r *ClubRepository) Create(club *model.Club) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(club).Error; err != nil {
			return err
		}
		member := &model.ClubMember{
			ClubID:   club.ID,
			UserID:   club.OwnerID,
			Role:     model.ClubOwner,
			JoinedAt: time.Now(),
		}
		return tx.Create(member).Error
	})
}

func (r *ClubRepository) FindByID(id uint) (*model.Club, error) {
	var club model.Club
	err := r.DB.First(&club, id).Error
	return &club, err
}

func (r *ClubRepository) Update(club *model.Club) error {
	return r.DB.Save(club).Error
}

func (r *ClubRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("club_id = ?", id).Delete(&model.ClubMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Club{}, id).Error
	})
}

func (r *ClubRepository) FindByUserID(userID uint) ([]model.Club, error) {
	var clubs []model.Club
	err := r.DB.
		Joins("JOIN club_members ON club_members.club_id = clubs.id").
		Where("club_members.user_id = ? AND club_members.deleted_at IS NULL", userID).
		Find(&clubs).Error
	return clubs, err
}

func (r *ClubRepository) FindPublic(offset, limit int, search string) ([]model.Club, int64, error) {
	var clubs []model.Club
	var total int64

	query := r.DB.Model(&model.Club{}).Where("is_private = ?", false)
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&clubs).Error
	return clubs, total, err
}

// Members returns the club roster with user records preloaded.
func (r *ClubRepository) Members(clubID uint) ([]model.ClubMember, error) {
	var members []model.ClubMember
	err := r.DB.Preload("User").
		Where("club_id = ?", clubID).
		Order("joined_at").
		Find(&members).Error
	return members, err
}

func (r *ClubRepository) FindMember(clubID, userID uint) (*model.ClubMember, error) {
	var member model.ClubMember
	err := r.DB.Where("club_id = ? AND user_id = ?", clubID, userID).First(&member).Error
	return &member, err
}

func (r *ClubRepository) AddMember(member *model.ClubMember) error {
	return r.DB.Create(member).Error
}

func (r *ClubRepository) RemoveMember(clubID, userID uint) error {
	return r.DB.Where("club_id = ? AND user_id = ?", clubID, userID).
		Delete(&model.ClubMember{}).Error
}
