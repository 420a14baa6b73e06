package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/builddost/builddost-api/internal/constants"
	"github.com/builddost/builddost-api/internal/export"
	"github.com/builddost/builddost-api/internal/generation"
	"github.com/builddost/builddost-api/internal/models"
	"github.com/builddost/builddost-api/internal/prompts"
	"github.com/builddost/builddost-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	fullStack *generation.FullStackResult
	component *generation.ComponentResult
	backend   *generation.BackendResult
	optimize  *generation.OptimizeResult
	err       error

	calls         int
	lastFullStack generation.FullStackRequest
	lastComponent generation.ComponentRequest
}

func (f *fakeGenerator) GenerateComponent(ctx context.Context, req generation.ComponentRequest) (*generation.ComponentResult, error) {
	f.calls++
	f.lastComponent = req
	if f.err != nil {
		return nil, f.err
	}
	return f.component, nil
}

func (f *fakeGenerator) GenerateBackend(ctx context.Context, req generation.BackendRequest) (*generation.BackendResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.backend, nil
}

func (f *fakeGenerator) OptimizeCode(ctx context.Context, req generation.OptimizeRequest) (*generation.OptimizeResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.optimize, nil
}

func (f *fakeGenerator) GenerateFullStackProject(ctx context.Context, req generation.FullStackRequest) (*generation.FullStackResult, error) {
	f.calls++
	f.lastFullStack = req
	if f.err != nil {
		return nil, f.err
	}
	return f.fullStack, nil
}

func sampleFullStack() *generation.FullStackResult {
	return &generation.FullStackResult{
		ID:          "food-delivery",
		Name:        "Food Delivery",
		Description: "Order food online",
		Files: map[string]string{
			"frontend/src/App.tsx": "export default function App() {}",
			"backend/server.js":    "// server",
		},
		Structure:    models.ProjectStructure{Frontend: []string{"frontend/src/App.tsx"}, Backend: []string{"backend/server.js"}, Database: []string{}},
		Dependencies: models.ProjectDependencies{Frontend: []string{"react"}, Backend: []string{"express"}},
	}
}

type serviceEnv struct {
	store     *repository.Store
	generator *fakeGenerator
	users     *UserService
	projects  *ProjectService
	owner     *models.User
}

func setupServiceEnv(t *testing.T) serviceEnv {
	t.Helper()

	store := repository.NewMemoryStore()
	generator := &fakeGenerator{fullStack: sampleFullStack()}
	users := NewUserService(store.Users)

	owner, err := users.Register(RegisterInput{Email: "owner@example.com", Password: "supersecret", DisplayName: "Owner"})
	require.NoError(t, err)

	return serviceEnv{
		store:     store,
		generator: generator,
		users:     users,
		projects:  NewProjectService(store.Projects, store.Users, generator),
		owner:     owner,
	}
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	env := setupServiceEnv(t)

	assert.Equal(t, "owner@example.com", *env.owner.Email)
	assert.NotEmpty(t, env.owner.PasswordHash)
	assert.NotEqual(t, "supersecret", env.owner.PasswordHash)

	user, err := env.users.Login(LoginInput{Email: "  OWNER@example.com ", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, env.owner.ID, user.ID)

	_, err = env.users.Login(LoginInput{Email: "owner@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.users.Login(LoginInput{Email: "nobody@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_RegisterValidation(t *testing.T) {
	env := setupServiceEnv(t)

	_, err := env.users.Register(RegisterInput{Email: "owner@example.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = env.users.Register(RegisterInput{Email: "short@example.com", Password: "short"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = env.users.Register(RegisterInput{Email: "not-an-email"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.users.Register(RegisterInput{Password: "supersecret"})
	assert.ErrorIs(t, err, ErrValidation)

	anonymous, err := env.users.Register(RegisterInput{FirstName: "Ada", LastName: "Lovelace"})
	require.NoError(t, err)
	assert.Nil(t, anonymous.Email)
	assert.Equal(t, "Ada Lovelace", anonymous.DisplayName)
	assert.False(t, anonymous.HasPassword())
}

func TestUserService_EnsureUserIsIdempotent(t *testing.T) {
	env := setupServiceEnv(t)

	first, err := env.users.EnsureUser(constants.DemoUserEmail, constants.DemoUserDisplayName)
	require.NoError(t, err)
	second, err := env.users.EnsureUser(constants.DemoUserEmail, constants.DemoUserDisplayName)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}

func TestUserService_UpdateProfile(t *testing.T) {
	env := setupServiceEnv(t)

	bio := "builds things"
	updated, err := env.users.UpdateProfile(env.owner.ID, UpdateProfileInput{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, bio, updated.Bio)
	assert.Equal(t, "Owner", updated.DisplayName)

	_, err = env.users.UpdateProfile("missing", UpdateProfileInput{Bio: &bio})
	assert.ErrorIs(t, err, ErrUserNotFound)

	long := strings.Repeat("x", constants.MaxNameLength+1)
	_, err = env.users.UpdateProfile(env.owner.ID, UpdateProfileInput{Company: &long})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestProjectService_CreateValidation(t *testing.T) {
	env := setupServiceEnv(t)

	_, err := env.projects.CreateProject(CreateProjectInput{UserID: env.owner.ID, Name: "   "})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.projects.CreateProject(CreateProjectInput{UserID: "ghost", Name: "Site"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.projects.CreateProject(CreateProjectInput{UserID: env.owner.ID, Name: "Site", Status: "archived"})
	assert.ErrorIs(t, err, ErrValidation)

	project, err := env.projects.CreateProject(CreateProjectInput{UserID: env.owner.ID, Name: "Site"})
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusDraft, project.Status)
	assert.False(t, project.IsPublic)
}

func TestProjectService_UpdateAndDelete(t *testing.T) {
	env := setupServiceEnv(t)

	project, err := env.projects.CreateProject(CreateProjectInput{UserID: env.owner.ID, Name: "Site"})
	require.NoError(t, err)

	live := models.ProjectStatusLive
	updated, err := env.projects.UpdateProject(project.ID, UpdateProjectInput{Status: &live})
	require.NoError(t, err)
	assert.Equal(t, project.ID, updated.ID)
	assert.Equal(t, live, updated.Status)
	assert.True(t, updated.UpdatedAt.After(project.UpdatedAt))

	bogus := models.ProjectStatus("archived")
	_, err = env.projects.UpdateProject(project.ID, UpdateProjectInput{Status: &bogus})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.projects.UpdateProject("missing", UpdateProjectInput{Status: &live})
	assert.ErrorIs(t, err, ErrProjectNotFound)

	require.NoError(t, env.projects.DeleteProject(project.ID))
	assert.ErrorIs(t, env.projects.DeleteProject(project.ID), ErrProjectNotFound)

	_, err = env.projects.GetProject(project.ID)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestProjectService_ListRequiresUser(t *testing.T) {
	env := setupServiceEnv(t)

	_, err := env.projects.ListProjects("")
	assert.ErrorIs(t, err, ErrValidation)

	projects, err := env.projects.ListProjects(env.owner.ID)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestProjectService_GeneratePersistsProject(t *testing.T) {
	env := setupServiceEnv(t)

	res, err := env.projects.GenerateProject(context.Background(), GenerateProjectInput{
		Prompt: "Food delivery website with login and cart",
		UserID: env.owner.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "web", env.generator.lastFullStack.Type)
	assert.Contains(t, env.generator.lastFullStack.Features, "login")
	assert.Contains(t, env.generator.lastFullStack.Features, "cart")

	assert.Equal(t, res.Project.ID, res.Result.ID)
	assert.Equal(t, "Food Delivery", res.Project.Name)

	stored, err := env.projects.GetProject(res.Project.ID)
	require.NoError(t, err)
	cfg := stored.Config.Data()
	assert.Equal(t, sampleFullStack().Files, cfg.Files)
	require.NotNil(t, cfg.Structure)
	assert.Equal(t, []string{"backend/server.js"}, cfg.Structure.Backend)
	require.NotNil(t, cfg.Dependencies)
	assert.Equal(t, []string{"express"}, cfg.Dependencies.Backend)
	assert.Equal(t, "food-delivery", cfg.Extra["generationId"])
	assert.Equal(t, env.owner.ID, stored.UserID)
	assert.Equal(t, models.ProjectStatusDraft, stored.Status)
}

func TestProjectService_GenerateFailurePersistsNothing(t *testing.T) {
	env := setupServiceEnv(t)
	env.generator.err = &generation.Error{Mode: prompts.ModeFullStack, Err: errors.New("quota exceeded")}

	_, err := env.projects.GenerateProject(context.Background(), GenerateProjectInput{
		Prompt: "a blog",
		UserID: env.owner.ID,
	})
	assert.ErrorIs(t, err, generation.ErrGenerationFailed)

	projects, err := env.projects.ListProjects(env.owner.ID)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestProjectService_GenerateValidatesBeforeCalling(t *testing.T) {
	env := setupServiceEnv(t)

	cases := []GenerateProjectInput{
		{Prompt: "   ", UserID: env.owner.ID},
		{Prompt: strings.Repeat("a", constants.MaxDescriptionLength+1), UserID: env.owner.ID},
		{Prompt: "a blog", UserID: ""},
		{Prompt: "a blog", UserID: "ghost"},
	}
	for _, input := range cases {
		_, err := env.projects.GenerateProject(context.Background(), input)
		assert.ErrorIs(t, err, ErrValidation)
	}
	assert.Zero(t, env.generator.calls)
}

func TestComponentService_Generate(t *testing.T) {
	store := repository.NewMemoryStore()
	generator := &fakeGenerator{component: &generation.ComponentResult{
		Name:         "PricingCard",
		Description:  "A pricing card",
		Code:         "export default function PricingCard() {}",
		Props:        map[string]models.PropSpec{"price": {Type: "number", Default: 9.0}},
		Styling:      map[string]any{"framework": "tailwindcss"},
		Dependencies: []string{},
	}}
	components := NewComponentService(store.Components, generator)

	res, err := components.GenerateComponent(context.Background(), GenerateComponentInput{Description: "a pricing card with payments"})
	require.NoError(t, err)
	assert.Nil(t, res.Saved)
	assert.Contains(t, generator.lastComponent.Functionality, "payments")

	listed, err := components.ListComponents("")
	require.NoError(t, err)
	assert.Empty(t, listed)

	res, err = components.GenerateComponent(context.Background(), GenerateComponentInput{Description: "a pricing card", Type: "Forms", Save: true})
	require.NoError(t, err)
	require.NotNil(t, res.Saved)
	assert.Equal(t, "PricingCard", res.Saved.Name)
	assert.Equal(t, models.ComponentCategoryForms, res.Saved.Category)
	assert.Equal(t, 9.0, res.Saved.Code.Data().Props["price"])

	listed, err = components.ListComponents("forms")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, res.Saved.ID, listed[0].ID)

	_, err = components.GenerateComponent(context.Background(), GenerateComponentInput{Description: ""})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestComponentService_GenerateRejectsUnsavableContent(t *testing.T) {
	store := repository.NewMemoryStore()
	generator := &fakeGenerator{component: &generation.ComponentResult{
		Name: "HugeWidget",
		Code: strings.Repeat("x", constants.MaxCodeLength+1),
	}}
	components := NewComponentService(store.Components, generator)

	_, err := components.GenerateComponent(context.Background(), GenerateComponentInput{Description: "a widget", Save: true})
	require.ErrorIs(t, err, generation.ErrGenerationFailed)
	assert.False(t, errors.Is(err, ErrValidation))

	var genErr *generation.Error
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, prompts.ModeComponent, genErr.Mode)
	assert.Equal(t, 1, generator.calls)

	listed, err := components.ListComponents("")
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestTemplateService(t *testing.T) {
	store := repository.NewMemoryStore()
	templates := NewTemplateService(store.Templates)

	private := false
	_, err := templates.CreateTemplate(CreateTemplateInput{Name: "Hidden", Category: "blog", IsPublic: &private})
	require.NoError(t, err)

	created, err := templates.CreateTemplate(CreateTemplateInput{Name: "Shop", Category: " Ecommerce ", SourceCode: "export default function Shop() {}"})
	require.NoError(t, err)
	assert.True(t, created.IsPublic)
	assert.Equal(t, models.TemplateCategoryEcommerce, created.Category)
	assert.Equal(t, "App.tsx", created.SourceFile)

	all, err := templates.ListTemplates("")
	require.NoError(t, err)
	require.Len(t, all, 1)

	blog, err := templates.ListTemplates("blog")
	require.NoError(t, err)
	assert.Empty(t, blog)

	source, err := templates.GetSource(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "export default function Shop() {}", source.Code)

	_, err = templates.GetSource("missing")
	assert.ErrorIs(t, err, ErrTemplateNotFound)

	_, err = templates.CreateTemplate(CreateTemplateInput{Name: "No category"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestExportService_ExportTemplate(t *testing.T) {
	store := repository.NewMemoryStore()
	templates := NewTemplateService(store.Templates)
	exports := NewExportService(store.Templates, store.Projects, export.NewStubGitHubExporter("acme"))

	created, err := templates.CreateTemplate(CreateTemplateInput{Name: "Shop", Category: "ecommerce", SourceCode: "export default function Shop() {}"})
	require.NoError(t, err)

	res, err := exports.ExportTemplate(context.Background(), created.ID, ExportTemplateInput{Format: "github"})
	require.NoError(t, err)
	require.NotNil(t, res.GitHub)
	assert.Equal(t, "https://github.com/acme/shop", res.GitHub.RepositoryURL)
	assert.Equal(t, res.Bundle.Len(), res.GitHub.Files)

	res, err = exports.ExportTemplate(context.Background(), created.ID, ExportTemplateInput{})
	require.NoError(t, err)
	assert.Equal(t, ExportFormatZip, res.Format)
	assert.Nil(t, res.GitHub)

	_, err = exports.ExportTemplate(context.Background(), created.ID, ExportTemplateInput{Format: "tarball"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = exports.ExportTemplate(context.Background(), created.ID, ExportTemplateInput{Format: "github", Repository: "no spaces allowed"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = exports.ExportTemplate(context.Background(), "missing", ExportTemplateInput{})
	assert.ErrorIs(t, err, ErrTemplateNotFound)

	_, err = exports.ProjectBundle("missing")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestGenerationService_Validation(t *testing.T) {
	generator := &fakeGenerator{optimize: &generation.OptimizeResult{OptimizedCode: "x", Improvements: []string{}}}
	svc := NewGenerationService(generator)

	_, err := svc.OptimizeCode(context.Background(), OptimizeCodeInput{Code: "  "})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.GenerateBackend(context.Background(), GenerateBackendInput{})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Zero(t, generator.calls)

	out, err := svc.OptimizeCode(context.Background(), OptimizeCodeInput{Code: "var x = 1"})
	require.NoError(t, err)
	assert.Equal(t, "x", out.OptimizedCode)
}
