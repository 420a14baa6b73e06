package export

import (
	"slices"

	"github.com/builddost/builddost-api/internal/models"
)

// BuildProjectBundle returns the project's stored file map unchanged, in
// sorted path order.
func BuildProjectBundle(project *models.Project) (*Bundle, error) {
	files := project.Config.Data().Files

	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	slices.Sort(paths)

	b := NewBundle(project.Name)
	for _, p := range paths {
		if err := b.Add(p, files[p]); err != nil {
			return nil, err
		}
	}
	return b, nil
}
