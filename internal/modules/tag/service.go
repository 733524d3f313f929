package tag

import (
	"errors"

	"github.com/inknote/core/internal/models"
	"gorm.io/gorm"
)

var ErrTagNotFound = errors.New("标签不存在")

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) List(ownerID string) ([]models.TagModel, error) {
	var tags []models.TagModel
	if err := s.db.Where("owner_id = ?", ownerID).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *Service) Create(ownerID, name string) (*models.TagModel, error) {
	tag := models.TagModel{
		OwnerID: ownerID,
		Name:    name,
	}
	if err := s.db.Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (s *Service) Rename(ownerID, id, name string) (*models.TagModel, error) {
	var tag models.TagModel
	err := s.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTagNotFound
	}
	if err != nil {
		return nil, err
	}

	tag.Name = name
	if err := s.db.Save(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// Delete removes the registry entry only; notes keep the dangling id and
// simply stop rendering the tag.
func (s *Service) Delete(ownerID, id string) error {
	res := s.db.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.TagModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTagNotFound
	}
	return nil
}
