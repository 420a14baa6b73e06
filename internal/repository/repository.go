package repository

import (
	"errors"
	"time"

	"github.com/builddost/builddost-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a record with the requested ID does not exist.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateEmail is returned when a user email is already registered.
	ErrDuplicateEmail = errors.New("repository: email already registered")
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create assigns an ID and timestamps and stores the user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Update merges the patch over an existing user
	Update(id string, patch UserPatch) (*models.User, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create assigns an ID and timestamps and stores the project
	Create(project *models.Project) error

	// FindByID finds a project by ID
	FindByID(id string) (*models.Project, error)

	// ListByUser lists the projects owned by a user, newest first
	ListByUser(userID string) ([]models.Project, error)

	// Update merges the patch over an existing project and refreshes UpdatedAt
	Update(id string, patch ProjectPatch) (*models.Project, error)

	// Delete removes a project. It reports false when nothing was deleted.
	Delete(id string) (bool, error)
}

// TemplateRepository defines the interface for template data access
type TemplateRepository interface {
	Create(template *models.Template) error
	FindByID(id string) (*models.Template, error)

	// ListPublic lists public templates in creation order
	ListPublic() ([]models.Template, error)

	// ListByCategory lists public templates in a category
	ListByCategory(category string) ([]models.Template, error)
}

// ComponentRepository defines the interface for component data access
type ComponentRepository interface {
	Create(component *models.Component) error
	FindByID(id string) (*models.Component, error)
	ListPublic() ([]models.Component, error)
	ListByCategory(category string) ([]models.Component, error)
}

// Store groups the repositories backing the API.
type Store struct {
	Users      UserRepository
	Projects   ProjectRepository
	Templates  TemplateRepository
	Components ComponentRepository
}

// NewGormStore creates a Store backed by a GORM database.
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Users:      NewUserRepository(db),
		Projects:   NewProjectRepository(db),
		Templates:  NewTemplateRepository(db),
		Components: NewComponentRepository(db),
	}
}

// UserPatch holds the user fields to change. Nil fields are left untouched.
type UserPatch struct {
	Email        *string
	PasswordHash *string
	FirstName    *string
	LastName     *string
	DisplayName  *string
	AvatarURL    *string
	Bio          *string
	Company      *string
	Location     *string
	Website      *string
}

// Apply merges the patch into user.
func (p UserPatch) Apply(user *models.User) {
	if p.Email != nil {
		email := *p.Email
		user.Email = &email
	}
	setString(&user.PasswordHash, p.PasswordHash)
	setString(&user.FirstName, p.FirstName)
	setString(&user.LastName, p.LastName)
	setString(&user.DisplayName, p.DisplayName)
	setString(&user.AvatarURL, p.AvatarURL)
	setString(&user.Bio, p.Bio)
	setString(&user.Company, p.Company)
	setString(&user.Location, p.Location)
	setString(&user.Website, p.Website)
}

// ProjectPatch holds the project fields to change. Nil fields are left untouched.
type ProjectPatch struct {
	Name          *string
	Description   *string
	Components    *[]models.ComponentRef
	Config        *models.ProjectConfig
	IsPublic      *bool
	Status        *models.ProjectStatus
	DeploymentURL *string
}

// IsEmpty reports whether the patch changes nothing.
func (p ProjectPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Components == nil && p.Config == nil &&
		p.IsPublic == nil && p.Status == nil && p.DeploymentURL == nil
}

// Apply merges the patch into project. It does not touch UpdatedAt.
func (p ProjectPatch) Apply(project *models.Project) {
	setString(&project.Name, p.Name)
	if p.Description != nil {
		desc := *p.Description
		project.Description = &desc
	}
	if p.Components != nil {
		project.Components = datatypes.NewJSONType(normalizeRefs(*p.Components))
	}
	if p.Config != nil {
		project.Config = datatypes.NewJSONType(p.Config.Clone())
	}
	if p.IsPublic != nil {
		project.IsPublic = *p.IsPublic
	}
	if p.Status != nil {
		project.Status = *p.Status
	}
	if p.DeploymentURL != nil {
		url := *p.DeploymentURL
		project.DeploymentURL = &url
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func newID() string {
	return uuid.New().String()
}

// timestampPrecision matches MySQL's default datetime(3) columns. Postgres
// and SQLite keep at least as much.
const timestampPrecision = time.Millisecond

// timestamp returns the current time at the precision every driver stores.
func timestamp() time.Time {
	return time.Now().Truncate(timestampPrecision)
}

// nextTimestamp returns the current time, nudged one precision step past
// prev when the clock has not moved beyond it.
func nextTimestamp(prev time.Time) time.Time {
	now := timestamp()
	if !now.After(prev) {
		now = prev.Truncate(timestampPrecision).Add(timestampPrecision)
	}
	return now
}

func normalizeRefs(refs []models.ComponentRef) []models.ComponentRef {
	if refs == nil {
		return []models.ComponentRef{}
	}
	return refs
}

func prepareUser(user *models.User) {
	user.ID = newID()
	now := timestamp()
	user.CreatedAt = now
	user.UpdatedAt = now
}

func prepareProject(project *models.Project) {
	project.ID = newID()
	if project.Status == "" {
		project.Status = models.ProjectStatusDraft
	}
	project.Components = datatypes.NewJSONType(normalizeRefs(project.Components.Data()))
	now := timestamp()
	project.CreatedAt = now
	project.UpdatedAt = now
}

func prepareTemplate(template *models.Template) {
	template.ID = newID()
	template.Components = datatypes.NewJSONType(normalizeRefs(template.Components.Data()))
	if template.Config == nil {
		template.Config = datatypes.JSONMap{}
	}
	template.CreatedAt = timestamp()
}

func prepareComponent(component *models.Component) {
	component.ID = newID()
	component.CreatedAt = timestamp()
}

// mapNotFound converts GORM's not-found error into ErrNotFound.
func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
