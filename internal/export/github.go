package export

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrInvalidRepository = errors.New("invalid repository name")

var repositoryPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+(/[A-Za-z0-9_.-]+)?$`)

// GitHubResult describes a bundle pushed to a repository.
type GitHubResult struct {
	Repository    string `json:"repository"`
	RepositoryURL string `json:"repositoryUrl"`
	Files         int    `json:"files"`
}

// GitHubExporter publishes a bundle to a GitHub repository.
type GitHubExporter interface {
	Publish(ctx context.Context, repository string, b *Bundle) (*GitHubResult, error)
}

// StubGitHubExporter reports where a bundle would be published without
// calling GitHub.
type StubGitHubExporter struct {
	Owner string
}

func NewStubGitHubExporter(owner string) *StubGitHubExporter {
	if owner == "" {
		owner = "builddost"
	}
	return &StubGitHubExporter{Owner: owner}
}

// Publish validates the repository name and returns the would-be URL.
// An empty repository is derived from the bundle name.
func (e *StubGitHubExporter) Publish(ctx context.Context, repository string, b *Bundle) (*GitHubResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExport, err)
	}

	repository = strings.TrimSpace(repository)
	if repository == "" {
		repository = Slug(b.Name)
	}
	if !repositoryPattern.MatchString(repository) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRepository, repository)
	}
	if !strings.Contains(repository, "/") {
		repository = e.Owner + "/" + repository
	}

	return &GitHubResult{
		Repository:    repository,
		RepositoryURL: "https://github.com/" + repository,
		Files:         b.Len(),
	}, nil
}
