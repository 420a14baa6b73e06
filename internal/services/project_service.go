package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/builddost/builddost-api/internal/constants"
	"github.com/builddost/builddost-api/internal/features"
	"github.com/builddost/builddost-api/internal/generation"
	"github.com/builddost/builddost-api/internal/models"
	"github.com/builddost/builddost-api/internal/repository"
	"gorm.io/datatypes"
)

// ProjectService handles project CRUD and full-stack generation.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	generator   generation.Generator
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository, generator generation.Generator) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		generator:   generator,
	}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	UserID        string
	Name          string
	Description   *string
	Components    []models.ComponentRef
	Config        *models.ProjectConfig
	IsPublic      bool
	Status        models.ProjectStatus
	DeploymentURL *string
}

// UpdateProjectInput represents input for updating a project
type UpdateProjectInput struct {
	Name          *string
	Description   *string
	Components    *[]models.ComponentRef
	Config        *models.ProjectConfig
	IsPublic      *bool
	Status        *models.ProjectStatus
	DeploymentURL *string
}

// GenerateProjectInput represents a full-stack generation request
type GenerateProjectInput struct {
	Prompt   string
	Type     string
	Features []string
	UserID   string
}

// GenerateProjectResult pairs the stored project with the generated payload.
// Result.ID is the stored project's ID.
type GenerateProjectResult struct {
	Project  *models.Project
	Result   *generation.FullStackResult
	Features []string
}

// ListProjects returns the projects owned by userID, newest first.
func (s *ProjectService) ListProjects(userID string) ([]models.Project, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, invalid("userId", "is required")
	}

	projects, err := s.projectRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProject returns a project by ID.
func (s *ProjectService) GetProject(id string) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// CreateProject validates and stores a hand-built project.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	name, err := requireText("name", input.Name, constants.MaxNameLength)
	if err != nil {
		return nil, err
	}
	if err := optionalText("description", input.Description, constants.MaxDescriptionLength); err != nil {
		return nil, err
	}
	if input.Status != "" && !input.Status.Valid() {
		return nil, invalid("status", "must be one of draft, live, building")
	}
	if err := s.ensureOwner(input.UserID); err != nil {
		return nil, err
	}

	project := &models.Project{
		UserID:        input.UserID,
		Name:          name,
		Description:   input.Description,
		Components:    datatypes.NewJSONType(input.Components),
		IsPublic:      input.IsPublic,
		Status:        input.Status,
		DeploymentURL: input.DeploymentURL,
	}
	if input.Config != nil {
		project.Config = datatypes.NewJSONType(*input.Config)
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

// UpdateProject merges input over an existing project. Concurrent updates
// are last-write-wins.
func (s *ProjectService) UpdateProject(id string, input UpdateProjectInput) (*models.Project, error) {
	if input.Name != nil {
		name, err := requireText("name", *input.Name, constants.MaxNameLength)
		if err != nil {
			return nil, err
		}
		input.Name = &name
	}
	if err := optionalText("description", input.Description, constants.MaxDescriptionLength); err != nil {
		return nil, err
	}
	if input.Status != nil && !input.Status.Valid() {
		return nil, invalid("status", "must be one of draft, live, building")
	}

	project, err := s.projectRepo.Update(id, repository.ProjectPatch{
		Name:          input.Name,
		Description:   input.Description,
		Components:    input.Components,
		Config:        input.Config,
		IsPublic:      input.IsPublic,
		Status:        input.Status,
		DeploymentURL: input.DeploymentURL,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}

// DeleteProject hard-deletes a project.
func (s *ProjectService) DeleteProject(id string) error {
	deleted, err := s.projectRepo.Delete(id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if !deleted {
		return ErrProjectNotFound
	}
	return nil
}

// GenerateProject runs feature extraction and full-stack generation, then
// stores the result as a new draft project. Nothing is stored when
// generation fails.
func (s *ProjectService) GenerateProject(ctx context.Context, input GenerateProjectInput) (*GenerateProjectResult, error) {
	prompt, err := requireDescription("prompt", input.Prompt)
	if err != nil {
		return nil, err
	}
	projectType := strings.TrimSpace(input.Type)
	if projectType == "" {
		projectType = "web"
	}
	if err := s.ensureOwner(input.UserID); err != nil {
		return nil, err
	}

	found := features.Merge(features.Extract(prompt), input.Features)

	result, err := s.generator.GenerateFullStackProject(ctx, generation.FullStackRequest{
		Description: prompt,
		Type:        projectType,
		Features:    found,
	})
	if err != nil {
		return nil, err
	}

	structure := result.Structure
	dependencies := result.Dependencies
	description := result.Description
	project := &models.Project{
		UserID:      input.UserID,
		Name:        truncateRunes(result.Name, constants.MaxNameLength),
		Description: &description,
		Config: datatypes.NewJSONType(models.ProjectConfig{
			Files:        result.Files,
			Structure:    &structure,
			Dependencies: &dependencies,
			Extra: map[string]any{
				"generationId": result.ID,
				"projectType":  projectType,
				"features":     found,
				"prompt":       prompt,
			},
		}),
		Status: models.ProjectStatusDraft,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to save generated project: %w", err)
	}

	payload := *result
	payload.ID = project.ID
	payload.Name = project.Name
	return &GenerateProjectResult{Project: project, Result: &payload, Features: found}, nil
}

func (s *ProjectService) ensureOwner(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return invalid("userId", "is required")
	}
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return invalid("userId", "does not match an existing user")
		}
		return fmt.Errorf("failed to find project owner: %w", err)
	}
	return nil
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
