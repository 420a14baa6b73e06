package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/builddost/builddost-api/internal/export"
	"github.com/builddost/builddost-api/internal/repository"
)

const (
	ExportFormatZip    = "zip"
	ExportFormatGitHub = "github"
)

// ExportService builds bundles for templates and projects.
type ExportService struct {
	templateRepo repository.TemplateRepository
	projectRepo  repository.ProjectRepository
	github       export.GitHubExporter
}

// NewExportService creates a new ExportService.
func NewExportService(templateRepo repository.TemplateRepository, projectRepo repository.ProjectRepository, github export.GitHubExporter) *ExportService {
	return &ExportService{
		templateRepo: templateRepo,
		projectRepo:  projectRepo,
		github:       github,
	}
}

// ExportTemplateInput selects the export target.
type ExportTemplateInput struct {
	Format     string
	Repository string
}

// ExportTemplateResult describes a finished template export. GitHub is set
// for the github format only.
type ExportTemplateResult struct {
	Format string
	Bundle *export.Bundle
	GitHub *export.GitHubResult
}

// TemplateBundle builds the standalone bundle of a template.
func (s *ExportService) TemplateBundle(id string) (*export.Bundle, error) {
	template, err := s.templateRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to find template: %w", err)
	}
	return export.BuildTemplateBundle(template)
}

// ProjectBundle builds the bundle of a project's stored files.
func (s *ExportService) ProjectBundle(id string) (*export.Bundle, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return export.BuildProjectBundle(project)
}

// ExportTemplate builds a template bundle and, for the github format, hands
// it to the GitHub exporter.
func (s *ExportService) ExportTemplate(ctx context.Context, id string, input ExportTemplateInput) (*ExportTemplateResult, error) {
	format := strings.ToLower(strings.TrimSpace(input.Format))
	if format == "" {
		format = ExportFormatZip
	}
	if format != ExportFormatZip && format != ExportFormatGitHub {
		return nil, invalid("format", "must be zip or github")
	}

	bundle, err := s.TemplateBundle(id)
	if err != nil {
		return nil, err
	}

	result := &ExportTemplateResult{Format: format, Bundle: bundle}
	if format == ExportFormatGitHub {
		published, err := s.github.Publish(ctx, input.Repository, bundle)
		if err != nil {
			if errors.Is(err, export.ErrInvalidRepository) {
				return nil, invalid("repository", "must look like owner/name")
			}
			return nil, err
		}
		result.GitHub = published
	}
	return result, nil
}
