package repository

import (
	"github.com/builddost/builddost-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	prepareProject(project)
	return r.db.Create(project).Error
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(id string) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &project, nil
}

// ListByUser lists a user's projects, newest first
func (r *GormProjectRepository) ListByUser(userID string) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Update merges the patch over an existing project. Concurrent updates are
// last-write-wins; each update is atomic within its transaction.
func (r *GormProjectRepository) Update(id string, patch ProjectPatch) (*models.Project, error) {
	var project models.Project
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&project, "id = ?", id).Error; err != nil {
			return err
		}

		patch.Apply(&project)
		project.UpdatedAt = nextTimestamp(project.UpdatedAt)

		if err := tx.Omit("User").Save(&project).Error; err != nil {
			return err
		}
		return tx.First(&project, "id = ?", id).Error
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &project, nil
}

// Delete hard deletes a project
func (r *GormProjectRepository) Delete(id string) (bool, error) {
	result := r.db.Delete(&models.Project{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
