package dto

import (
	"time"

	"github.com/builddost/builddost-api/internal/generation"
	"github.com/builddost/builddost-api/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID            string                `json:"id"`
	UserID        string                `json:"userId"`
	Name          string                `json:"name"`
	Description   *string               `json:"description"`
	Components    []models.ComponentRef `json:"components"`
	Config        models.ProjectConfig  `json:"config"`
	IsPublic      bool                  `json:"isPublic"`
	Status        models.ProjectStatus  `json:"status"`
	DeploymentURL *string               `json:"deploymentUrl"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

type ProjectResponse struct {
	Success bool       `json:"success"`
	Project ProjectDTO `json:"project"`
}

type ProjectListResponse struct {
	Success  bool         `json:"success"`
	Projects []ProjectDTO `json:"projects"`
	Count    int          `json:"count"`
}

// GeneratedProjectDTO is the generation payload. ID is the stored project ID.
type GeneratedProjectDTO struct {
	ID           string                     `json:"id"`
	Name         string                     `json:"name"`
	Description  string                     `json:"description"`
	Files        map[string]string          `json:"files"`
	Structure    models.ProjectStructure    `json:"structure"`
	Dependencies models.ProjectDependencies `json:"dependencies"`
}

type GenerateProjectResponse struct {
	Success  bool                `json:"success"`
	Project  GeneratedProjectDTO `json:"project"`
	Features []string            `json:"features"`
}

// ToProjectDTO converts a project to DTO
func ToProjectDTO(project models.Project) ProjectDTO {
	components := project.Components.Data()
	if components == nil {
		components = []models.ComponentRef{}
	}

	return ProjectDTO{
		ID:            project.ID,
		UserID:        project.UserID,
		Name:          project.Name,
		Description:   project.Description,
		Components:    components,
		Config:        project.Config.Data(),
		IsPublic:      project.IsPublic,
		Status:        project.Status,
		DeploymentURL: project.DeploymentURL,
		CreatedAt:     project.CreatedAt,
		UpdatedAt:     project.UpdatedAt,
	}
}

func NewProjectResponse(project models.Project) ProjectResponse {
	return ProjectResponse{Success: true, Project: ToProjectDTO(project)}
}

// NewProjectListResponse converts projects to a list envelope
func NewProjectListResponse(projects []models.Project) ProjectListResponse {
	items := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		items[i] = ToProjectDTO(p)
	}
	return ProjectListResponse{Success: true, Projects: items, Count: len(items)}
}

// NewGenerateProjectResponse converts a generation result to its envelope
func NewGenerateProjectResponse(result *generation.FullStackResult, features []string) GenerateProjectResponse {
	if features == nil {
		features = []string{}
	}
	return GenerateProjectResponse{
		Success: true,
		Project: GeneratedProjectDTO{
			ID:           result.ID,
			Name:         result.Name,
			Description:  result.Description,
			Files:        result.Files,
			Structure:    result.Structure,
			Dependencies: result.Dependencies,
		},
		Features: features,
	}
}
