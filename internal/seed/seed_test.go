package seed

import (
	"testing"

	"github.com/builddost/builddost-api/internal/constants"
	"github.com/builddost/builddost-api/internal/export"
	"github.com/builddost/builddost-api/internal/models"
	"github.com/builddost/builddost-api/internal/repository"
	"github.com/builddost/builddost-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoUserIsIdempotent(t *testing.T) {
	store := repository.NewMemoryStore()
	userService := services.NewUserService(store.Users)

	first, err := DemoUser(userService)
	require.NoError(t, err)
	second, err := DemoUser(userService)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	require.NotNil(t, first.Email)
	assert.Equal(t, constants.DemoUserEmail, *first.Email)
	assert.Equal(t, constants.DemoUserDisplayName, first.DisplayName)
}

func TestTemplatesSeedsEachCategoryOnce(t *testing.T) {
	store := repository.NewMemoryStore()
	templateService := services.NewTemplateService(store.Templates)

	created, err := Templates(templateService)
	require.NoError(t, err)
	assert.Equal(t, len(models.TemplateCategories), created)

	created, err = Templates(templateService)
	require.NoError(t, err)
	assert.Zero(t, created)

	for _, category := range models.TemplateCategories {
		templates, err := templateService.ListTemplates(category)
		require.NoError(t, err)
		require.Len(t, templates, 1, category)
		assert.True(t, templates[0].IsPublic)
		assert.Equal(t, "App.tsx", templates[0].SourceFile)
	}
}

func TestSeededTemplatesExportStandalone(t *testing.T) {
	store := repository.NewMemoryStore()
	templateService := services.NewTemplateService(store.Templates)
	_, err := Templates(templateService)
	require.NoError(t, err)

	templates, err := templateService.ListTemplates(models.TemplateCategoryLanding)
	require.NoError(t, err)
	require.Len(t, templates, 1)

	bundle, err := export.BuildTemplateBundle(&templates[0])
	require.NoError(t, err)
	app, ok := bundle.Get("src/App.tsx")
	require.True(t, ok)
	assert.NotContains(t, app, "@/components/ui/button")
	assert.NotContains(t, app, "lucide-react")
	assert.Contains(t, app, "function Button(")
	assert.Contains(t, app, "function Rocket(")
	assert.Contains(t, app, `import { useState } from "react";`)
}
