package repository

import (
	"github.com/builddost/builddost-api/internal/models"
	"gorm.io/gorm"
)

// GormTemplateRepository is a GORM implementation of TemplateRepository
type GormTemplateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository creates a new TemplateRepository
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &GormTemplateRepository{db: db}
}

func (r *GormTemplateRepository) Create(template *models.Template) error {
	prepareTemplate(template)
	return r.db.Create(template).Error
}

func (r *GormTemplateRepository) FindByID(id string) (*models.Template, error) {
	var template models.Template
	if err := r.db.First(&template, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &template, nil
}

func (r *GormTemplateRepository) ListPublic() ([]models.Template, error) {
	var templates []models.Template
	if err := r.db.Where("is_public = ?", true).
		Order("created_at ASC").
		Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *GormTemplateRepository) ListByCategory(category string) ([]models.Template, error) {
	var templates []models.Template
	if err := r.db.Where("is_public = ? AND category = ?", true, category).
		Order("created_at ASC").
		Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}
