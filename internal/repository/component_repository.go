package repository

import (
	"github.com/builddost/builddost-api/internal/models"
	"gorm.io/gorm"
)

// GormComponentRepository is a GORM implementation of ComponentRepository
type GormComponentRepository struct {
	db *gorm.DB
}

// NewComponentRepository creates a new ComponentRepository
func NewComponentRepository(db *gorm.DB) ComponentRepository {
	return &GormComponentRepository{db: db}
}

func (r *GormComponentRepository) Create(component *models.Component) error {
	prepareComponent(component)
	return r.db.Create(component).Error
}

func (r *GormComponentRepository) FindByID(id string) (*models.Component, error) {
	var component models.Component
	if err := r.db.First(&component, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &component, nil
}

func (r *GormComponentRepository) ListPublic() ([]models.Component, error) {
	var components []models.Component
	if err := r.db.Where("is_public = ?", true).
		Order("created_at ASC").
		Find(&components).Error; err != nil {
		return nil, err
	}
	return components, nil
}

func (r *GormComponentRepository) ListByCategory(category string) ([]models.Component, error) {
	var components []models.Component
	if err := r.db.Where("is_public = ? AND category = ?", true, category).
		Order("created_at ASC").
		Find(&components).Error; err != nil {
		return nil, err
	}
	return components, nil
}
