package generation

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/builddost/builddost-api/internal/prompts"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReply struct {
	content string
	err     error
}

type fakeChat struct {
	mu       sync.Mutex
	replies  []fakeReply
	requests []openai.ChatCompletionRequest
}

func (f *fakeChat) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, req)
	if err := ctx.Err(); err != nil {
		return openai.ChatCompletionResponse{}, err
	}

	reply := f.replies[0]
	if len(f.replies) > 1 {
		f.replies = f.replies[1:]
	}
	if reply.err != nil {
		return openai.ChatCompletionResponse{}, reply.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: reply.content}},
		},
	}, nil
}

func (f *fakeChat) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

var fixedNow = time.UnixMilli(1700000000000)

func newTestClient(replies ...fakeReply) (*Client, *fakeChat) {
	chat := &fakeChat{replies: replies}
	client := NewClient(chat, Config{Model: "test-model", Timeout: time.Second, MaxRetries: 2})
	client.now = func() time.Time { return fixedNow }
	client.sleep = func(context.Context, time.Duration) error { return nil }
	return client, chat
}

func TestGenerateFullStackProject_FullResponse(t *testing.T) {
	client, chat := newTestClient(fakeReply{content: `{
		"id": "food-delivery",
		"name": "Food Delivery",
		"description": "Order food online",
		"files": {"frontend/src/App.tsx": "export default function App() {}"},
		"structure": {"frontend": ["frontend/src/App.tsx"], "backend": [], "database": []},
		"dependencies": {"frontend": ["react"], "backend": ["express"]}
	}`})

	got, err := client.GenerateFullStackProject(context.Background(), FullStackRequest{
		Description: "Food delivery website with login and cart",
		Features:    []string{"login", "cart"},
	})
	require.NoError(t, err)

	assert.Equal(t, "food-delivery", got.ID)
	assert.Equal(t, "Food Delivery", got.Name)
	assert.Equal(t, "Order food online", got.Description)
	assert.Equal(t, map[string]string{"frontend/src/App.tsx": "export default function App() {}"}, got.Files)
	assert.Equal(t, []string{"frontend/src/App.tsx"}, got.Structure.Frontend)
	assert.Equal(t, []string{}, got.Structure.Backend)
	assert.Equal(t, []string{"express"}, got.Dependencies.Backend)

	require.Len(t, chat.requests, 1)
	req := chat.requests[0]
	assert.Equal(t, "test-model", req.Model)
	require.NotNil(t, req.ResponseFormat)
	assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, req.ResponseFormat.Type)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, prompts.SystemPrompt, req.Messages[0].Content)
	assert.Contains(t, req.Messages[1].Content, "Food delivery website with login and cart")
	assert.Contains(t, req.Messages[1].Content, "Features: login, cart")
}

func TestGenerateFullStackProject_DefaultsMissingFields(t *testing.T) {
	client, _ := newTestClient(fakeReply{content: `{"files": {"backend/server.js": "// server"}, "name": ""}`})

	got, err := client.GenerateFullStackProject(context.Background(), FullStackRequest{
		Description: "a food delivery website with login and cart",
	})
	require.NoError(t, err)

	assert.Equal(t, "project-1700000000000", got.ID)
	assert.Equal(t, "Food Delivery Login", got.Name)
	assert.Equal(t, "a food delivery website with login and cart", got.Description)
	assert.Equal(t, map[string]string{"backend/server.js": "// server"}, got.Files)
	assert.NotEmpty(t, got.Structure.Frontend)
	assert.NotEmpty(t, got.Dependencies.Frontend)
}

func TestGenerateFullStackProject_EmptyObjectGetsSkeleton(t *testing.T) {
	client, _ := newTestClient(fakeReply{content: `{}`})

	got, err := client.GenerateFullStackProject(context.Background(), FullStackRequest{Description: "the app"})
	require.NoError(t, err)

	assert.Equal(t, "Generated Project", got.Name)
	assert.Contains(t, got.Files, "frontend/src/App.tsx")
	assert.Contains(t, got.Files["frontend/src/App.tsx"], "Generated Project")
	for _, path := range got.Structure.Frontend {
		assert.Contains(t, got.Files, path)
	}
}

func TestGenerate_StripsMarkdownFences(t *testing.T) {
	client, _ := newTestClient(fakeReply{content: "```json\n{\"optimizedCode\": \"const a = 1;\"}\n```"})

	got, err := client.OptimizeCode(context.Background(), OptimizeRequest{Code: "var a = 1"})
	require.NoError(t, err)

	assert.Equal(t, "const a = 1;", got.OptimizedCode)
	assert.Equal(t, []string{}, got.Improvements)
	assert.NotEmpty(t, got.Explanation)
}

func TestGenerate_RejectsUnusableResponses(t *testing.T) {
	cases := map[string]string{
		"array":       `[{"name": "x"}]`,
		"scalar":      `"just text"`,
		"invalid":     `{"name": `,
		"wrong types": `{"files": "not a map"}`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			client, chat := newTestClient(fakeReply{content: content})

			got, err := client.GenerateFullStackProject(context.Background(), FullStackRequest{Description: "blog"})
			assert.Nil(t, got)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrGenerationFailed))

			var genErr *Error
			require.True(t, errors.As(err, &genErr))
			assert.Equal(t, prompts.ModeFullStack, genErr.Mode)
			assert.NotContains(t, genErr.Message(), content)
			assert.Equal(t, 1, chat.calls())
		})
	}
}

func TestGenerate_EmptyChoiceIsFailure(t *testing.T) {
	client, chat := newTestClient(fakeReply{content: "   "})

	_, err := client.GenerateBackend(context.Background(), BackendRequest{Description: "inventory"})
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.Equal(t, 1, chat.calls())
}

func TestGenerate_RetriesTransientErrors(t *testing.T) {
	client, chat := newTestClient(
		fakeReply{err: &openai.APIError{HTTPStatusCode: http.StatusTooManyRequests, Message: "slow down"}},
		fakeReply{err: &openai.RequestError{HTTPStatusCode: http.StatusBadGateway, Err: errors.New("bad gateway")}},
		fakeReply{content: `{"name": "PricingCard", "code": "export default function PricingCard() {}"}`},
	)

	got, err := client.GenerateComponent(context.Background(), ComponentRequest{Description: "pricing card"})
	require.NoError(t, err)

	assert.Equal(t, "PricingCard", got.Name)
	assert.Equal(t, 3, chat.calls())
}

func TestGenerate_GivesUpAfterMaxRetries(t *testing.T) {
	client, chat := newTestClient(fakeReply{err: &openai.APIError{HTTPStatusCode: http.StatusServiceUnavailable, Message: "down"}})

	_, err := client.GenerateComponent(context.Background(), ComponentRequest{Description: "pricing card"})
	require.Error(t, err)

	var genErr *Error
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, prompts.ModeComponent, genErr.Mode)
	assert.Contains(t, genErr.Message(), "down")
	assert.Equal(t, 3, chat.calls())
}

func TestGenerate_DoesNotRetryClientErrors(t *testing.T) {
	client, chat := newTestClient(fakeReply{err: &openai.APIError{HTTPStatusCode: http.StatusUnauthorized, Message: "bad key"}})

	_, err := client.GenerateComponent(context.Background(), ComponentRequest{Description: "pricing card"})
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.Equal(t, 1, chat.calls())
}

func TestGenerate_ParentCancellationStopsRetries(t *testing.T) {
	client, chat := newTestClient(fakeReply{content: `{}`})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GenerateFullStackProject(ctx, FullStackRequest{Description: "blog"})
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, chat.calls())
}

func TestShouldRetry(t *testing.T) {
	assert.True(t, shouldRetry(context.DeadlineExceeded))
	assert.True(t, shouldRetry(&openai.APIError{HTTPStatusCode: 500}))
	assert.False(t, shouldRetry(&openai.APIError{HTTPStatusCode: 400}))
	assert.False(t, shouldRetry(errors.New("boom")))
	assert.False(t, shouldRetry(context.Canceled))
}

func TestDeriveName(t *testing.T) {
	cases := map[string]string{
		"":                           "Generated Project",
		"a simple todo app":          "Simple Todo",
		"The app for the website":    "Generated Project",
		"CRM dashboard with reports": "CRM Dashboard Reports",
		"blog, portfolio & shop!":    "Blog Portfolio Shop",
	}
	for in, want := range cases {
		assert.Equal(t, want, deriveName(in), in)
	}

	assert.Equal(t, "PricingCard", deriveComponentName("a pricing card"))
	assert.Equal(t, "GeneratedComponent", deriveComponentName(""))
}

// The keys filled in by the defaulting layer must be the keys the prompt
// asks the model for.
func TestDefaultKeysMatchPromptShapes(t *testing.T) {
	cases := []struct {
		shape    string
		defaults []fieldDefault
	}{
		{prompts.FullStackShape, fullStackDefaults("x", fixedNow)},
		{prompts.ComponentShape, componentDefaults("x")},
		{prompts.BackendShape, backendDefaults("x", "")},
		{prompts.OptimizeShape, optimizeDefaults("x")},
	}

	for _, tc := range cases {
		for _, d := range tc.defaults {
			assert.True(t, strings.Contains(tc.shape, `"`+d.key+`"`), d.key)
		}
	}
}

func TestGenerateFullStackProject_NormalizesFilePaths(t *testing.T) {
	client, _ := newTestClient(fakeReply{content: `{
		"name": "Paths",
		"files": {"/frontend/src/main.tsx": "main", "./backend//server.js": "server", "database/./schema.sql": "schema"},
		"structure": {"frontend": ["/frontend/src/main.tsx", "../outside"], "backend": ["./backend/server.js"], "database": []}
	}`})

	got, err := client.GenerateFullStackProject(context.Background(), FullStackRequest{Description: "a shop"})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"frontend/src/main.tsx": "main",
		"backend/server.js":     "server",
		"database/schema.sql":   "schema",
	}, got.Files)
	assert.Equal(t, []string{"frontend/src/main.tsx"}, got.Structure.Frontend)
	assert.Equal(t, []string{"backend/server.js"}, got.Structure.Backend)
}

func TestGenerate_RejectsUnusableFilePaths(t *testing.T) {
	cases := map[string]string{
		"escaping":  `{"files": {"../etc/passwd": "x"}}`,
		"root":      `{"files": {"/": "x"}}`,
		"collision": `{"files": {"./src/App.tsx": "a", "src/App.tsx": "b"}}`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			client, chat := newTestClient(fakeReply{content: content})

			got, err := client.GenerateFullStackProject(context.Background(), FullStackRequest{Description: "blog"})
			assert.Nil(t, got)
			require.ErrorIs(t, err, ErrGenerationFailed)
			assert.ErrorIs(t, err, errFilePath)
			assert.Equal(t, 1, chat.calls())
		})
	}

	client, _ := newTestClient(fakeReply{content: `{"files": {"/server.js": "a", "server.js": "b"}}`})
	_, err := client.GenerateBackend(context.Background(), BackendRequest{Description: "an api"})
	assert.ErrorIs(t, err, errFilePath)
}

func TestGenerateComponent_BlankNameIsDefaulted(t *testing.T) {
	client, _ := newTestClient(fakeReply{content: `{"name": "   ", "code": "x"}`})

	got, err := client.GenerateComponent(context.Background(), ComponentRequest{Description: "a pricing table"})
	require.NoError(t, err)

	assert.Equal(t, "PricingTable", got.Name)
	assert.Equal(t, "x", got.Code)
}

func TestClient_SendsBuiltPromptForEveryMode(t *testing.T) {
	client, chat := newTestClient(fakeReply{content: `{}`})
	ctx := context.Background()

	_, err := client.GenerateComponent(ctx, ComponentRequest{Description: "a navbar", Type: "navigation", Functionality: []string{"sticky"}})
	require.NoError(t, err)
	_, err = client.GenerateBackend(ctx, BackendRequest{Description: "a blog api", Framework: "fastify", Features: []string{"auth"}})
	require.NoError(t, err)
	_, err = client.OptimizeCode(ctx, OptimizeRequest{Code: "var x = 1", Language: "javascript", Goals: []string{"readability"}})
	require.NoError(t, err)
	_, err = client.GenerateFullStackProject(ctx, FullStackRequest{Description: "a recipe site", Type: "web", Features: []string{"search"}})
	require.NoError(t, err)

	want := []struct {
		mode     prompts.Mode
		desc     string
		features []string
		opts     prompts.Options
	}{
		{prompts.ModeComponent, "a navbar", []string{"sticky"}, prompts.Options{Type: "navigation"}},
		{prompts.ModeBackend, "a blog api", []string{"auth"}, prompts.Options{Framework: "fastify"}},
		{prompts.ModeOptimize, "", nil, prompts.Options{Code: "var x = 1", Language: "javascript", Goals: []string{"readability"}}},
		{prompts.ModeFullStack, "a recipe site", []string{"search"}, prompts.Options{Type: "web"}},
	}
	require.Len(t, chat.requests, len(want))
	for i, w := range want {
		prompt, err := prompts.Build(w.mode, w.desc, w.features, w.opts)
		require.NoError(t, err)
		assert.Equal(t, prompt, chat.requests[i].Messages[1].Content, w.mode)
	}
}
