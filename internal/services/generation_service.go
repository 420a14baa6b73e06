package services

import (
	"context"
	"strings"

	"github.com/builddost/builddost-api/internal/constants"
	"github.com/builddost/builddost-api/internal/features"
	"github.com/builddost/builddost-api/internal/generation"
)

// GenerationService runs the single-shot generations that are never stored.
type GenerationService struct {
	generator generation.Generator
}

// NewGenerationService creates a new GenerationService.
func NewGenerationService(generator generation.Generator) *GenerationService {
	return &GenerationService{generator: generator}
}

type GenerateBackendInput struct {
	Description string
	Framework   string
	Database    string
	Features    []string
}

type OptimizeCodeInput struct {
	Code     string
	Language string
	Goals    []string
}

// GenerateBackend generates a backend scaffold.
func (s *GenerationService) GenerateBackend(ctx context.Context, input GenerateBackendInput) (*generation.BackendResult, error) {
	description, err := requireDescription("description", input.Description)
	if err != nil {
		return nil, err
	}

	return s.generator.GenerateBackend(ctx, generation.BackendRequest{
		Description: description,
		Framework:   strings.TrimSpace(input.Framework),
		Database:    strings.TrimSpace(input.Database),
		Features:    features.Merge(features.Extract(description), input.Features),
	})
}

// OptimizeCode asks the generator to improve a piece of code.
func (s *GenerationService) OptimizeCode(ctx context.Context, input OptimizeCodeInput) (*generation.OptimizeResult, error) {
	if strings.TrimSpace(input.Code) == "" {
		return nil, invalid("code", "is required")
	}
	if len(input.Code) > constants.MaxCodeLength {
		return nil, invalid("code", "must be at most %d bytes", constants.MaxCodeLength)
	}

	return s.generator.OptimizeCode(ctx, generation.OptimizeRequest{
		Code:     input.Code,
		Language: strings.TrimSpace(input.Language),
		Goals:    input.Goals,
	})
}
