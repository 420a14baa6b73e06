package dto

import (
	"time"

	"github.com/builddost/builddost-api/internal/export"
	"github.com/builddost/builddost-api/internal/generation"
	"github.com/builddost/builddost-api/internal/models"
)

// TemplateDTO represents a template in API responses. The source text is
// served separately.
type TemplateDTO struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Description  string                `json:"description"`
	Category     string                `json:"category"`
	Components   []models.ComponentRef `json:"components"`
	Config       map[string]any        `json:"config"`
	SourceFile   string                `json:"sourceFile,omitempty"`
	HasSource    bool                  `json:"hasSource"`
	PreviewImage string                `json:"previewImage"`
	IsPublic     bool                  `json:"isPublic"`
	CreatedAt    time.Time             `json:"createdAt"`
}

type TemplateResponse struct {
	Success  bool        `json:"success"`
	Template TemplateDTO `json:"template"`
}

type TemplateListResponse struct {
	Success   bool          `json:"success"`
	Templates []TemplateDTO `json:"templates"`
	Count     int           `json:"count"`
}

// ComponentDTO represents a component in API responses
type ComponentDTO struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Category     string                 `json:"category"`
	Code         models.ComponentCode   `json:"code"`
	Config       models.ComponentConfig `json:"config"`
	PreviewImage string                 `json:"previewImage"`
	IsPublic     bool                   `json:"isPublic"`
	CreatedAt    time.Time              `json:"createdAt"`
}

type ComponentResponse struct {
	Success   bool         `json:"success"`
	Component ComponentDTO `json:"component"`
}

type ComponentListResponse struct {
	Success    bool           `json:"success"`
	Components []ComponentDTO `json:"components"`
	Count      int            `json:"count"`
}

// GenerateComponentResponse carries the generated component and, when saved,
// the stored record.
type GenerateComponentResponse struct {
	Success   bool                        `json:"success"`
	Component *generation.ComponentResult `json:"component"`
	Saved     *ComponentDTO               `json:"saved,omitempty"`
}

type BackendResponse struct {
	Success bool                      `json:"success"`
	Backend *generation.BackendResult `json:"backend"`
}

type OptimizeResponse struct {
	Success bool                       `json:"success"`
	Result  *generation.OptimizeResult `json:"result"`
}

// ExportResponse describes a template export. DownloadURL is set for zip
// exports and GitHub for github exports.
type ExportResponse struct {
	Success     bool                 `json:"success"`
	Format      string               `json:"format"`
	Files       []string             `json:"files"`
	DownloadURL string               `json:"downloadUrl,omitempty"`
	GitHub      *export.GitHubResult `json:"github,omitempty"`
}

// ToTemplateDTO converts a template to DTO
func ToTemplateDTO(template models.Template) TemplateDTO {
	components := template.Components.Data()
	if components == nil {
		components = []models.ComponentRef{}
	}
	config := map[string]any(template.Config)
	if config == nil {
		config = map[string]any{}
	}

	return TemplateDTO{
		ID:           template.ID,
		Name:         template.Name,
		Description:  template.Description,
		Category:     template.Category,
		Components:   components,
		Config:       config,
		SourceFile:   template.SourceFile,
		HasSource:    template.SourceCode != "",
		PreviewImage: template.PreviewImage,
		IsPublic:     template.IsPublic,
		CreatedAt:    template.CreatedAt,
	}
}

func NewTemplateListResponse(templates []models.Template) TemplateListResponse {
	items := make([]TemplateDTO, len(templates))
	for i, t := range templates {
		items[i] = ToTemplateDTO(t)
	}
	return TemplateListResponse{Success: true, Templates: items, Count: len(items)}
}

// ToComponentDTO converts a component to DTO
func ToComponentDTO(component models.Component) ComponentDTO {
	return ComponentDTO{
		ID:           component.ID,
		Name:         component.Name,
		Category:     component.Category,
		Code:         component.Code.Data(),
		Config:       component.Config.Data(),
		PreviewImage: component.PreviewImage,
		IsPublic:     component.IsPublic,
		CreatedAt:    component.CreatedAt,
	}
}

func NewComponentListResponse(components []models.Component) ComponentListResponse {
	items := make([]ComponentDTO, len(components))
	for i, c := range components {
		items[i] = ToComponentDTO(c)
	}
	return ComponentListResponse{Success: true, Components: items, Count: len(items)}
}
