package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/builddost/builddost-api/internal/prompts"
	"github.com/builddost/builddost-api/internal/utils"
)

const maxLoggedResponse = 4000

// result is a typed model response. normalize replaces missing collections
// with empty ones and rejects content that cannot be stored.
type result interface {
	normalize() error
}

// GenerateComponent generates a single React component.
func (c *Client) GenerateComponent(ctx context.Context, req ComponentRequest) (*ComponentResult, error) {
	in := promptInput{req.Description, req.Functionality, prompts.Options{Type: req.Type, Style: req.Style}}

	var out ComponentResult
	if err := c.run(ctx, prompts.ModeComponent, in, componentDefaults(req.Description), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateBackend generates a backend scaffold.
func (c *Client) GenerateBackend(ctx context.Context, req BackendRequest) (*BackendResult, error) {
	in := promptInput{req.Description, req.Features, prompts.Options{Framework: req.Framework, Database: req.Database}}

	var out BackendResult
	if err := c.run(ctx, prompts.ModeBackend, in, backendDefaults(req.Description, req.Framework), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OptimizeCode asks the model to rewrite code against the given goals.
func (c *Client) OptimizeCode(ctx context.Context, req OptimizeRequest) (*OptimizeResult, error) {
	in := promptInput{opts: prompts.Options{Code: req.Code, Language: req.Language, Goals: req.Goals}}

	var out OptimizeResult
	if err := c.run(ctx, prompts.ModeOptimize, in, optimizeDefaults(req.Code), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateFullStackProject generates a complete project. The result always
// has every field set.
func (c *Client) GenerateFullStackProject(ctx context.Context, req FullStackRequest) (*FullStackResult, error) {
	in := promptInput{req.Description, req.Features, prompts.Options{Type: req.Type}}

	var out FullStackResult
	if err := c.run(ctx, prompts.ModeFullStack, in, fullStackDefaults(req.Description, c.now()), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// promptInput holds the arguments of prompts.Build.
type promptInput struct {
	description string
	features    []string
	opts        prompts.Options
}

func (c *Client) run(ctx context.Context, mode prompts.Mode, in promptInput, defaults []fieldDefault, out result) error {
	prompt, err := prompts.Build(mode, in.description, in.features, in.opts)
	if err != nil {
		return failure(mode, err)
	}

	content, err := c.complete(ctx, mode, prompt)
	if err != nil {
		utils.Logf(ctx, "generation", "mode=%s call failed: %v", mode, err)
		return failure(mode, err)
	}

	obj, err := parseObject(content)
	if err != nil {
		utils.Logf(ctx, "generation", "mode=%s unusable response: %v raw=%q", mode, err, truncate(content))
		return failure(mode, err)
	}

	applyDefaults(obj, defaults)

	data, err := json.Marshal(obj)
	if err != nil {
		return failure(mode, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		utils.Logf(ctx, "generation", "mode=%s response has wrong field types: %v raw=%q", mode, err, truncate(content))
		return failure(mode, fmt.Errorf("model response has unexpected field types: %w", err))
	}

	if err := out.normalize(); err != nil {
		utils.Logf(ctx, "generation", "mode=%s rejected response: %v", mode, err)
		return failure(mode, err)
	}
	return nil
}

// parseObject strips optional markdown fences and decodes a JSON object.
func parseObject(content string) (map[string]any, error) {
	cleaned := strings.TrimSpace(content)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var value any
	if err := json.Unmarshal([]byte(cleaned), &value); err != nil {
		return nil, fmt.Errorf("model response is not valid JSON: %w", err)
	}

	obj, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("model response is a JSON %s, not an object", jsonKind(value))
	}
	return obj, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	}
	return "value"
}

func truncate(s string) string {
	if len(s) <= maxLoggedResponse {
		return s
	}
	return s[:maxLoggedResponse] + "...(truncated)"
}
