package prompts

import (
	"fmt"
	"strings"
)

// Mode selects the prompt template and the response shape.
type Mode string

const (
	ModeComponent Mode = "ui-component"
	ModeBackend   Mode = "backend-scaffold"
	ModeFullStack Mode = "full-stack-project"
	ModeOptimize  Mode = "code-optimization"
)

// Options carries the optional, mode-specific inputs of a prompt.
type Options struct {
	// Type is the component type for ModeComponent and the project type
	// (web, mobile, desktop) for ModeFullStack.
	Type      string
	Style     string
	Framework string
	Database  string
	Language  string
	Code      string
	Goals     []string
}

// The response shapes below are the contract with the generation client's
// defaulting layer. Changing a field name here means changing it there too.
const (
	ComponentShape = `{
  "name": "PascalCaseComponentName",
  "description": "one sentence describing the component",
  "code": "complete React + TypeScript source of the component",
  "props": { "propName": { "type": "string", "required": false, "default": "value" } },
  "styling": { "framework": "tailwindcss", "notes": "styling notes" },
  "dependencies": ["npm-package"]
}`

	BackendShape = `{
  "name": "service name",
  "description": "what the backend does",
  "files": { "relative/path.ext": "full file source" },
  "routes": [ { "method": "GET", "path": "/api/resource", "description": "what it does" } ],
  "models": [ { "name": "Resource", "fields": { "fieldName": "type" } } ],
  "dependencies": ["npm-package"]
}`

	FullStackShape = `{
  "id": "short-kebab-case-id",
  "name": "Project Name",
  "description": "one paragraph describing the project",
  "files": { "frontend/src/main.tsx": "full file source", "backend/server.js": "full file source" },
  "structure": { "frontend": ["paths"], "backend": ["paths"], "database": ["paths"] },
  "dependencies": { "frontend": ["npm-package"], "backend": ["npm-package"] }
}`

	OptimizeShape = `{
  "optimizedCode": "the full optimized source",
  "improvements": ["one change per entry"],
  "explanation": "short summary of why the changes help"
}`
)

// SystemPrompt is sent as the system message for every generation mode.
const SystemPrompt = "You are BuildDost, an expert full-stack engineer. " +
	"You always reply with a single valid JSON object and nothing else: no markdown fences, no commentary."

// Build renders the user prompt for mode.
func Build(mode Mode, description string, features []string, opts Options) (string, error) {
	switch mode {
	case ModeComponent:
		return Component(description, features, opts), nil
	case ModeBackend:
		return Backend(description, features, opts), nil
	case ModeFullStack:
		return FullStack(description, features, opts), nil
	case ModeOptimize:
		return Optimize(opts.Code, opts), nil
	default:
		return "", fmt.Errorf("unknown generation mode %q", mode)
	}
}

// Component renders the UI component prompt.
func Component(description string, features []string, opts Options) string {
	return fmt.Sprintf(`Generate a reusable React component.

Description: %s
Component type: %s
Style: %s
Functionality: %s

Requirements:
- React 18 function component written in TypeScript
- Style with TailwindCSS utility classes only
- Typed props with sensible defaults
- Accessible markup (labels, roles, keyboard support)
- Responsive by default
- No imports from project-internal aliases such as "@/"

Respond with a single JSON object of this shape:
%s`,
		description,
		orDefault(opts.Type, "any"),
		orDefault(opts.Style, "modern and clean"),
		joinFeatures(features),
		ComponentShape,
	)
}

// Backend renders the backend scaffold prompt.
func Backend(description string, features []string, opts Options) string {
	return fmt.Sprintf(`Generate a backend scaffold.

Description: %s
Framework: %s
Database: %s
Features: %s

Requirements:
- Node.js with %s and TypeScript
- REST endpoints with input validation and JSON error responses
- A data model per resource, persisted in %s
- Environment based configuration, no hard-coded secrets
- Include a package.json and a README with run instructions

Respond with a single JSON object of this shape:
%s`,
		description,
		orDefault(opts.Framework, "express"),
		orDefault(opts.Database, "postgresql"),
		joinFeatures(features),
		orDefault(opts.Framework, "express"),
		orDefault(opts.Database, "postgresql"),
		BackendShape,
	)
}

// FullStack renders the full-stack project prompt.
func FullStack(description string, features []string, opts Options) string {
	return fmt.Sprintf(`Generate a complete full-stack %s application.

Description: %s
Features: %s

Frontend requirements:
- React 18 + TypeScript + Vite, styled with TailwindCSS
- frontend/index.html, frontend/src/main.tsx and frontend/src/App.tsx are required
- One component file per page or widget under frontend/src/components/
- Responsive layout

Backend requirements:
- Node.js + Express under backend/, entry point backend/server.js
- REST routes for every resource the description implies
- Authentication routes when login or user accounts are mentioned

Database requirements:
- SQL schema under database/schema.sql

Every file in "files" must contain complete, runnable source. Paths are relative and unique.

Respond with a single JSON object of this shape:
%s`,
		orDefault(opts.Type, "web"),
		description,
		joinFeatures(features),
		FullStackShape,
	)
}

// Optimize renders the code optimization prompt.
func Optimize(code string, opts Options) string {
	goals := "performance, readability, best practices"
	if len(opts.Goals) > 0 {
		goals = strings.Join(opts.Goals, ", ")
	}

	return fmt.Sprintf(`Optimize the following %s code.

Goals: %s

Requirements:
- Preserve behavior and public interfaces
- Keep the same language and framework
- List each improvement separately

Code:
%s

Respond with a single JSON object of this shape:
%s`,
		orDefault(opts.Language, "typescript"),
		goals,
		code,
		OptimizeShape,
	)
}

func joinFeatures(features []string) string {
	if len(features) == 0 {
		return "none specified"
	}
	return strings.Join(features, ", ")
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
