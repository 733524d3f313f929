package category

import (
	"errors"

	"github.com/inknote/core/internal/models"
	"gorm.io/gorm"
)

var ErrCategoryNotFound = errors.New("分类不存在")

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) List(ownerID string) ([]models.CategoryModel, error) {
	var categories []models.CategoryModel
	if err := s.db.Where("owner_id = ?", ownerID).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Create does not enforce per-owner name uniqueness; the legacy registry
// accepted duplicate names and the clients dedupe on id.
func (s *Service) Create(ownerID, name string) (*models.CategoryModel, error) {
	category := models.CategoryModel{
		OwnerID: ownerID,
		Name:    name,
	}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *Service) Rename(ownerID, id, name string) (*models.CategoryModel, error) {
	var category models.CategoryModel
	err := s.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}

	category.Name = name
	if err := s.db.Save(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Delete removes the registry entry only. Notes referencing the category keep
// their dangling id and render it as a null category.
func (s *Service) Delete(ownerID, id string) error {
	res := s.db.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.CategoryModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
