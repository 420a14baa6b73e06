package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponent_Defaults(t *testing.T) {
	prompt := Component("a pricing card", nil, Options{})

	assert.Contains(t, prompt, "Description: a pricing card")
	assert.Contains(t, prompt, "Component type: any")
	assert.Contains(t, prompt, "Style: modern and clean")
	assert.Contains(t, prompt, "Functionality: none specified")
	assert.Contains(t, prompt, ComponentShape)
}

func TestComponent_Options(t *testing.T) {
	prompt := Component("a pricing card", []string{"forms", "payments"}, Options{Type: "card", Style: "brutalist"})

	assert.Contains(t, prompt, "Component type: card")
	assert.Contains(t, prompt, "Style: brutalist")
	assert.Contains(t, prompt, "Functionality: forms, payments")
}

func TestFullStack_EmbedsDescriptionAndFeatures(t *testing.T) {
	desc := `Food delivery website with "login" and cart`
	prompt := FullStack(desc, []string{"login", "cart"}, Options{})

	assert.Contains(t, prompt, desc)
	assert.Contains(t, prompt, "Features: login, cart")
	assert.Contains(t, prompt, "full-stack web application")
	assert.Contains(t, prompt, FullStackShape)
}

func TestBackend_Defaults(t *testing.T) {
	prompt := Backend("inventory service", nil, Options{})

	assert.Contains(t, prompt, "Framework: express")
	assert.Contains(t, prompt, "Database: postgresql")
	assert.Contains(t, prompt, BackendShape)
}

func TestOptimize_Goals(t *testing.T) {
	prompt := Optimize("const a = 1", Options{Language: "javascript", Goals: []string{"size"}})

	assert.Contains(t, prompt, "Optimize the following javascript code.")
	assert.Contains(t, prompt, "Goals: size")
	assert.Contains(t, prompt, "const a = 1")
	assert.Contains(t, prompt, OptimizeShape)
}

func TestBuild_SelectsMode(t *testing.T) {
	for _, mode := range []Mode{ModeComponent, ModeBackend, ModeFullStack, ModeOptimize} {
		prompt, err := Build(mode, "desc", nil, Options{Code: "x"})
		require.NoError(t, err, mode)
		assert.NotEmpty(t, prompt)
	}

	_, err := Build(Mode("poetry"), "desc", nil, Options{})
	assert.Error(t, err)
}
