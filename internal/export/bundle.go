// Package export assembles downloadable project bundles from templates and
// generated projects and serializes them as zip archives.
package export

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"unicode"
)

var (
	// ErrExport matches every failure to build or write a bundle.
	ErrExport = errors.New("export failed")
	// ErrDuplicatePath is returned when a bundle already holds a path.
	ErrDuplicatePath = errors.New("duplicate path in bundle")
	// ErrInvalidPath is returned for empty, absolute or escaping paths.
	ErrInvalidPath = errors.New("invalid path in bundle")
)

// File is one entry of a bundle.
type File struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Bundle is an insertion-ordered set of files with unique relative paths.
type Bundle struct {
	Name  string
	files []File
	index map[string]int
}

func NewBundle(name string) *Bundle {
	return &Bundle{Name: name, index: make(map[string]int)}
}

// Add appends a file. The path is cleaned first; a path that is already
// present is rejected.
func (b *Bundle) Add(filePath, content string) error {
	cleaned, err := cleanPath(filePath)
	if err != nil {
		return err
	}
	if _, exists := b.index[cleaned]; exists {
		return fmt.Errorf("%w: %w: %s", ErrExport, ErrDuplicatePath, cleaned)
	}
	b.index[cleaned] = len(b.files)
	b.files = append(b.files, File{Path: cleaned, Content: content})
	return nil
}

// Files returns the entries in insertion order.
func (b *Bundle) Files() []File {
	out := make([]File, len(b.files))
	copy(out, b.files)
	return out
}

// Paths returns the entry paths in insertion order.
func (b *Bundle) Paths() []string {
	out := make([]string, len(b.files))
	for i, f := range b.files {
		out[i] = f.Path
	}
	return out
}

// Get returns the content stored at path.
func (b *Bundle) Get(filePath string) (string, bool) {
	i, ok := b.index[filePath]
	if !ok {
		return "", false
	}
	return b.files[i].Content, true
}

func (b *Bundle) Len() int {
	return len(b.files)
}

func cleanPath(p string) (string, error) {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	if p == "" || strings.HasPrefix(p, "/") {
		return "", fmt.Errorf("%w: %w: %q", ErrExport, ErrInvalidPath, p)
	}
	cleaned := path.Clean(p)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %w: %q", ErrExport, ErrInvalidPath, p)
	}
	return cleaned, nil
}

// Slug turns a display name into a package and file name, "project" when
// nothing usable is left.
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "project"
	}
	return slug
}

// ZipFilename returns the attachment name for a bundle.
func ZipFilename(b *Bundle) string {
	return Slug(b.Name) + ".zip"
}
