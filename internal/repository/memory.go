package repository

import (
	"slices"
	"strings"
	"sync"

	"github.com/builddost/builddost-api/internal/models"
)

// NewMemoryStore creates a Store backed by process-local maps. Records are
// copied on the way in and out, so callers never share state with the store.
func NewMemoryStore() *Store {
	return &Store{
		Users:      NewMemoryUserRepository(),
		Projects:   NewMemoryProjectRepository(),
		Templates:  NewMemoryTemplateRepository(),
		Components: NewMemoryComponentRepository(),
	}
}

// memoryTable is an insertion-ordered map of records guarded by a RWMutex.
type memoryTable[T any] struct {
	mu    sync.RWMutex
	rows  map[string]T
	order []string
	clone func(T) T
}

func newMemoryTable[T any](clone func(T) T) *memoryTable[T] {
	return &memoryTable[T]{
		rows:  make(map[string]T),
		clone: clone,
	}
}

// insert must be called with mu held.
func (t *memoryTable[T]) insert(id string, row T) {
	if _, exists := t.rows[id]; !exists {
		t.order = append(t.order, id)
	}
	t.rows[id] = t.clone(row)
}

func (t *memoryTable[T]) get(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	return t.clone(row), true
}

func (t *memoryTable[T]) remove(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	if i := slices.Index(t.order, id); i >= 0 {
		t.order = slices.Delete(t.order, i, i+1)
	}
	return true
}

// filter returns copies of the rows matching keep in insertion order.
func (t *memoryTable[T]) filter(keep func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]T, 0)
	for _, id := range t.order {
		row := t.rows[id]
		if keep(row) {
			out = append(out, t.clone(row))
		}
	}
	return out
}

// MemoryUserRepository is an in-memory implementation of UserRepository
type MemoryUserRepository struct {
	table *memoryTable[models.User]
}

// NewMemoryUserRepository creates an empty MemoryUserRepository
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{table: newMemoryTable(models.User.Clone)}
}

func (r *MemoryUserRepository) Create(user *models.User) error {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	if user.Email != nil && r.emailTaken(*user.Email, "") {
		return ErrDuplicateEmail
	}

	prepareUser(user)
	r.table.insert(user.ID, *user)
	return nil
}

func (r *MemoryUserRepository) FindByID(id string) (*models.User, error) {
	user, ok := r.table.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *MemoryUserRepository) FindByEmail(email string) (*models.User, error) {
	matches := r.table.filter(func(u models.User) bool {
		return u.Email != nil && strings.EqualFold(*u.Email, email)
	})
	if len(matches) == 0 {
		return nil, ErrNotFound
	}
	return &matches[0], nil
}

func (r *MemoryUserRepository) Update(id string, patch UserPatch) (*models.User, error) {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	user, ok := r.table.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.Email != nil && r.emailTaken(*patch.Email, id) {
		return nil, ErrDuplicateEmail
	}

	user = user.Clone()
	patch.Apply(&user)
	user.UpdatedAt = nextTimestamp(user.UpdatedAt)
	r.table.insert(id, user)

	out := user.Clone()
	return &out, nil
}

// emailTaken must be called with the table lock held.
func (r *MemoryUserRepository) emailTaken(email, exceptID string) bool {
	for id, u := range r.table.rows {
		if id != exceptID && u.Email != nil && strings.EqualFold(*u.Email, email) {
			return true
		}
	}
	return false
}

// MemoryProjectRepository is an in-memory implementation of ProjectRepository
type MemoryProjectRepository struct {
	table *memoryTable[models.Project]
}

// NewMemoryProjectRepository creates an empty MemoryProjectRepository
func NewMemoryProjectRepository() *MemoryProjectRepository {
	return &MemoryProjectRepository{table: newMemoryTable(models.Project.Clone)}
}

func (r *MemoryProjectRepository) Create(project *models.Project) error {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	prepareProject(project)
	r.table.insert(project.ID, *project)
	return nil
}

func (r *MemoryProjectRepository) FindByID(id string) (*models.Project, error) {
	project, ok := r.table.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &project, nil
}

func (r *MemoryProjectRepository) ListByUser(userID string) ([]models.Project, error) {
	projects := r.table.filter(func(p models.Project) bool {
		return p.UserID == userID
	})
	slices.Reverse(projects)
	return projects, nil
}

func (r *MemoryProjectRepository) Update(id string, patch ProjectPatch) (*models.Project, error) {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	project, ok := r.table.rows[id]
	if !ok {
		return nil, ErrNotFound
	}

	project = project.Clone()
	patch.Apply(&project)
	project.UpdatedAt = nextTimestamp(project.UpdatedAt)
	r.table.insert(id, project)

	out := project.Clone()
	return &out, nil
}

func (r *MemoryProjectRepository) Delete(id string) (bool, error) {
	return r.table.remove(id), nil
}

// MemoryTemplateRepository is an in-memory implementation of TemplateRepository
type MemoryTemplateRepository struct {
	table *memoryTable[models.Template]
}

// NewMemoryTemplateRepository creates an empty MemoryTemplateRepository
func NewMemoryTemplateRepository() *MemoryTemplateRepository {
	return &MemoryTemplateRepository{table: newMemoryTable(models.Template.Clone)}
}

func (r *MemoryTemplateRepository) Create(template *models.Template) error {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	prepareTemplate(template)
	r.table.insert(template.ID, *template)
	return nil
}

func (r *MemoryTemplateRepository) FindByID(id string) (*models.Template, error) {
	template, ok := r.table.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &template, nil
}

func (r *MemoryTemplateRepository) ListPublic() ([]models.Template, error) {
	return r.table.filter(func(t models.Template) bool {
		return t.IsPublic
	}), nil
}

func (r *MemoryTemplateRepository) ListByCategory(category string) ([]models.Template, error) {
	return r.table.filter(func(t models.Template) bool {
		return t.IsPublic && t.Category == category
	}), nil
}

// MemoryComponentRepository is an in-memory implementation of ComponentRepository
type MemoryComponentRepository struct {
	table *memoryTable[models.Component]
}

// NewMemoryComponentRepository creates an empty MemoryComponentRepository
func NewMemoryComponentRepository() *MemoryComponentRepository {
	return &MemoryComponentRepository{table: newMemoryTable(models.Component.Clone)}
}

func (r *MemoryComponentRepository) Create(component *models.Component) error {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	prepareComponent(component)
	r.table.insert(component.ID, *component)
	return nil
}

func (r *MemoryComponentRepository) FindByID(id string) (*models.Component, error) {
	component, ok := r.table.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &component, nil
}

func (r *MemoryComponentRepository) ListPublic() ([]models.Component, error) {
	return r.table.filter(func(c models.Component) bool {
		return c.IsPublic
	}), nil
}

func (r *MemoryComponentRepository) ListByCategory(category string) ([]models.Component, error) {
	return r.table.filter(func(c models.Component) bool {
		return c.IsPublic && c.Category == category
	}), nil
}
