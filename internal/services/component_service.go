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
	"github.com/builddost/builddost-api/internal/prompts"
	"github.com/builddost/builddost-api/internal/repository"
	"gorm.io/datatypes"
)

// ComponentService handles the component library and component generation.
type ComponentService struct {
	componentRepo repository.ComponentRepository
	generator     generation.Generator
}

// NewComponentService creates a new ComponentService.
func NewComponentService(componentRepo repository.ComponentRepository, generator generation.Generator) *ComponentService {
	return &ComponentService{
		componentRepo: componentRepo,
		generator:     generator,
	}
}

// CreateComponentInput represents input for creating a component.
// IsPublic defaults to true when nil.
type CreateComponentInput struct {
	Name         string
	Category     string
	Code         models.ComponentCode
	Config       models.ComponentConfig
	PreviewImage string
	IsPublic     *bool
}

// GenerateComponentInput represents a component generation request.
type GenerateComponentInput struct {
	Description   string
	Type          string
	Style         string
	Functionality []string
	Save          bool
}

// GenerateComponentResult holds the generated component and, when it was
// saved, the stored record.
type GenerateComponentResult struct {
	Result *generation.ComponentResult
	Saved  *models.Component
}

// ListComponents lists public components, optionally in one category.
func (s *ComponentService) ListComponents(category string) ([]models.Component, error) {
	var (
		components []models.Component
		err        error
	)
	if category = normalizeCategory(category); category != "" {
		components, err = s.componentRepo.ListByCategory(category)
	} else {
		components, err = s.componentRepo.ListPublic()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list components: %w", err)
	}
	return components, nil
}

// GetComponent returns a component by ID.
func (s *ComponentService) GetComponent(id string) (*models.Component, error) {
	component, err := s.componentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrComponentNotFound
		}
		return nil, fmt.Errorf("failed to find component: %w", err)
	}
	return component, nil
}

// CreateComponent validates and stores a component.
func (s *ComponentService) CreateComponent(input CreateComponentInput) (*models.Component, error) {
	name, err := requireText("name", input.Name, constants.MaxNameLength)
	if err != nil {
		return nil, err
	}
	category, err := requireText("category", normalizeCategory(input.Category), 50)
	if err != nil {
		return nil, err
	}
	if len(input.Code.Source) > constants.MaxCodeLength {
		return nil, invalid("code.source", "must be at most %d bytes", constants.MaxCodeLength)
	}

	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	component := &models.Component{
		Name:         name,
		Category:     category,
		Code:         datatypes.NewJSONType(input.Code),
		Config:       datatypes.NewJSONType(input.Config),
		PreviewImage: input.PreviewImage,
		IsPublic:     isPublic,
	}
	if err := s.componentRepo.Create(component); err != nil {
		return nil, fmt.Errorf("failed to create component: %w", err)
	}
	return component, nil
}

// GenerateComponent generates a component and stores it in the public
// library when input.Save is set.
func (s *ComponentService) GenerateComponent(ctx context.Context, input GenerateComponentInput) (*GenerateComponentResult, error) {
	description, err := requireDescription("description", input.Description)
	if err != nil {
		return nil, err
	}

	result, err := s.generator.GenerateComponent(ctx, generation.ComponentRequest{
		Description:   description,
		Type:          strings.TrimSpace(input.Type),
		Style:         strings.TrimSpace(input.Style),
		Functionality: features.Merge(features.Extract(description), input.Functionality),
	})
	if err != nil {
		return nil, err
	}

	out := &GenerateComponentResult{Result: result}
	if !input.Save {
		return out, nil
	}

	category := normalizeCategory(input.Type)
	if category == "" {
		category = models.ComponentCategoryUI
	}
	saved, err := s.CreateComponent(CreateComponentInput{
		Name:     truncateRunes(result.Name, constants.MaxNameLength),
		Category: truncateRunes(category, 50),
		Code: models.ComponentCode{
			Source: result.Code,
			Props:  propDefaults(result.Props),
		},
		Config: models.ComponentConfig{
			Props:   result.Props,
			Styling: result.Styling,
		},
	})
	if err != nil {
		// Input was validated above, so a rejection here concerns model output.
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			return nil, &generation.Error{
				Mode: prompts.ModeComponent,
				Err:  fmt.Errorf("generated component cannot be saved: %s", validationErr.Error()),
			}
		}
		return nil, err
	}
	out.Saved = saved
	return out, nil
}

func propDefaults(props map[string]models.PropSpec) map[string]any {
	defaults := make(map[string]any, len(props))
	for name, spec := range props {
		if spec.Default != nil {
			defaults[name] = spec.Default
		}
	}
	return defaults
}
