package generation

import (
	"fmt"
	"path"
	"strings"

	"github.com/builddost/builddost-api/internal/models"
)

type ComponentRequest struct {
	Description   string
	Type          string
	Style         string
	Functionality []string
}

type BackendRequest struct {
	Description string
	Framework   string
	Database    string
	Features    []string
}

type OptimizeRequest struct {
	Code     string
	Language string
	Goals    []string
}

type FullStackRequest struct {
	Description string
	// Type is the project type: web, mobile or desktop.
	Type     string
	Features []string
}

type ComponentResult struct {
	Name         string                     `json:"name"`
	Description  string                     `json:"description"`
	Code         string                     `json:"code"`
	Props        map[string]models.PropSpec `json:"props"`
	Styling      map[string]any             `json:"styling"`
	Dependencies []string                   `json:"dependencies"`
}

type Route struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description,omitempty"`
}

type DataModel struct {
	Name   string            `json:"name"`
	Fields map[string]string `json:"fields"`
}

type BackendResult struct {
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Files        map[string]string `json:"files"`
	Routes       []Route           `json:"routes"`
	Models       []DataModel       `json:"models"`
	Dependencies []string          `json:"dependencies"`
}

type OptimizeResult struct {
	OptimizedCode string   `json:"optimizedCode"`
	Improvements  []string `json:"improvements"`
	Explanation   string   `json:"explanation"`
}

// FullStackResult is a generated project. Every field is populated, either
// from the model response or from defaults.
type FullStackResult struct {
	ID           string                     `json:"id"`
	Name         string                     `json:"name"`
	Description  string                     `json:"description"`
	Files        map[string]string          `json:"files"`
	Structure    models.ProjectStructure    `json:"structure"`
	Dependencies models.ProjectDependencies `json:"dependencies"`
}

func (r *FullStackResult) normalize() error {
	files, err := normalizeFiles(r.Files)
	if err != nil {
		return err
	}
	r.Files = files
	r.Structure.Frontend = normalizeList(r.Structure.Frontend)
	r.Structure.Backend = normalizeList(r.Structure.Backend)
	r.Structure.Database = normalizeList(r.Structure.Database)
	r.Dependencies.Frontend = nonNil(r.Dependencies.Frontend)
	r.Dependencies.Backend = nonNil(r.Dependencies.Backend)
	return nil
}

func (r *ComponentResult) normalize() error {
	if r.Props == nil {
		r.Props = map[string]models.PropSpec{}
	}
	if r.Styling == nil {
		r.Styling = map[string]any{}
	}
	r.Dependencies = nonNil(r.Dependencies)
	return nil
}

func (r *BackendResult) normalize() error {
	files, err := normalizeFiles(r.Files)
	if err != nil {
		return err
	}
	r.Files = files
	if r.Routes == nil {
		r.Routes = []Route{}
	}
	if r.Models == nil {
		r.Models = []DataModel{}
	}
	r.Dependencies = nonNil(r.Dependencies)
	return nil
}

func (r *OptimizeResult) normalize() error {
	r.Improvements = nonNil(r.Improvements)
	return nil
}

// normalizeFiles rewrites every key to a clean relative path. Keys that
// escape the project root, or collide once cleaned, are rejected.
func normalizeFiles(files map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(files))
	for key, content := range files {
		p, ok := relativePath(key)
		if !ok {
			return nil, fmt.Errorf("%w: %q", errFilePath, key)
		}
		if _, dup := out[p]; dup {
			return nil, fmt.Errorf("%w: %q collides with another file at %s", errFilePath, key, p)
		}
		out[p] = content
	}
	return out, nil
}

// normalizeList cleans structure listings the same way, dropping entries
// that do not name a path inside the project.
func normalizeList(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if cleaned, ok := relativePath(p); ok {
			out = append(out, cleaned)
		}
	}
	return out
}

// relativePath strips leading "/" and "./" segments and cleans p.
func relativePath(p string) (string, bool) {
	p = strings.ReplaceAll(strings.TrimSpace(p), "\\", "/")
	for {
		trimmed := strings.TrimPrefix(strings.TrimPrefix(p, "/"), "./")
		if trimmed == p {
			break
		}
		p = trimmed
	}
	cleaned := path.Clean(p)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", false
	}
	return cleaned, true
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
