package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/builddost/builddost-api/internal/constants"
	"github.com/builddost/builddost-api/internal/models"
	"github.com/builddost/builddost-api/internal/repository"
	"gorm.io/datatypes"
)

var ErrTemplateSourceMissing = errors.New("template has no source")

// TemplateService handles the template gallery.
type TemplateService struct {
	templateRepo repository.TemplateRepository
}

// NewTemplateService creates a new TemplateService.
func NewTemplateService(templateRepo repository.TemplateRepository) *TemplateService {
	return &TemplateService{templateRepo: templateRepo}
}

// CreateTemplateInput represents input for creating a template.
// IsPublic defaults to true when nil.
type CreateTemplateInput struct {
	Name         string
	Description  string
	Category     string
	Components   []models.ComponentRef
	Config       map[string]any
	SourceFile   string
	SourceCode   string
	PreviewImage string
	IsPublic     *bool
}

// TemplateSource is the raw source file of a template.
type TemplateSource struct {
	Filename string
	Code     string
}

// ListTemplates lists public templates, optionally in one category.
func (s *TemplateService) ListTemplates(category string) ([]models.Template, error) {
	var (
		templates []models.Template
		err       error
	)
	if category = normalizeCategory(category); category != "" {
		templates, err = s.templateRepo.ListByCategory(category)
	} else {
		templates, err = s.templateRepo.ListPublic()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

// GetTemplate returns a template by ID.
func (s *TemplateService) GetTemplate(id string) (*models.Template, error) {
	template, err := s.templateRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to find template: %w", err)
	}
	return template, nil
}

// CreateTemplate validates and stores a template.
func (s *TemplateService) CreateTemplate(input CreateTemplateInput) (*models.Template, error) {
	name, err := requireText("name", input.Name, constants.MaxNameLength)
	if err != nil {
		return nil, err
	}
	category, err := requireText("category", normalizeCategory(input.Category), 50)
	if err != nil {
		return nil, err
	}
	if len(input.SourceCode) > constants.MaxCodeLength {
		return nil, invalid("sourceCode", "must be at most %d bytes", constants.MaxCodeLength)
	}

	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}
	sourceFile := strings.TrimSpace(input.SourceFile)
	if sourceFile == "" && input.SourceCode != "" {
		sourceFile = "App.tsx"
	}

	template := &models.Template{
		Name:         name,
		Description:  strings.TrimSpace(input.Description),
		Category:     category,
		Components:   datatypes.NewJSONType(input.Components),
		Config:       datatypes.JSONMap(input.Config),
		SourceFile:   sourceFile,
		SourceCode:   input.SourceCode,
		PreviewImage: input.PreviewImage,
		IsPublic:     isPublic,
	}

	if err := s.templateRepo.Create(template); err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}
	return template, nil
}

// GetSource returns the template's raw source file.
func (s *TemplateService) GetSource(id string) (*TemplateSource, error) {
	template, err := s.GetTemplate(id)
	if err != nil {
		return nil, err
	}
	if template.SourceCode == "" {
		return nil, ErrTemplateSourceMissing
	}
	return &TemplateSource{Filename: template.SourceFile, Code: template.SourceCode}, nil
}

func normalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}
