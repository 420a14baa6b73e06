// Package generation calls the hosted text-generation service and turns its
// JSON replies into typed, fully defaulted results.
package generation

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/builddost/builddost-api/internal/constants"
	"github.com/builddost/builddost-api/internal/prompts"
	openai "github.com/sashabaranov/go-openai"
)

// ChatCompleter is the part of the OpenAI client the generator needs.
// *openai.Client satisfies it.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Generator is implemented by Client and consumed by the services.
type Generator interface {
	GenerateComponent(ctx context.Context, req ComponentRequest) (*ComponentResult, error)
	GenerateBackend(ctx context.Context, req BackendRequest) (*BackendResult, error)
	OptimizeCode(ctx context.Context, req OptimizeRequest) (*OptimizeResult, error)
	GenerateFullStackProject(ctx context.Context, req FullStackRequest) (*FullStackResult, error)
}

// Config controls model selection and the retry policy.
type Config struct {
	Model       string
	Temperature float32
	// Timeout bounds each attempt, not the whole call.
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

func (c Config) withDefaults() Config {
	if c.Model == "" {
		c.Model = constants.DefaultOpenAIModel
	}
	if c.Temperature == 0 {
		c.Temperature = 0.3
	}
	if c.Timeout <= 0 {
		c.Timeout = constants.DefaultGenerationTimeout
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = constants.DefaultGenerationRetryDelay
	}
	return c
}

// Client issues one logical generation per call, retrying transient failures.
type Client struct {
	chat  ChatCompleter
	cfg   Config
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient wraps an existing chat completer.
func NewClient(chat ChatCompleter, cfg Config) *Client {
	return &Client{
		chat:  chat,
		cfg:   cfg.withDefaults(),
		now:   time.Now,
		sleep: sleepContext,
	}
}

// NewOpenAIClient builds a Client talking to OpenAI, or to a compatible
// endpoint when baseURL is set.
func NewOpenAIClient(apiKey, baseURL string, cfg Config) *Client {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	return NewClient(openai.NewClientWithConfig(clientConfig), cfg)
}

// complete sends the prompt and returns the raw text of the first choice.
func (c *Client) complete(ctx context.Context, mode prompts.Mode, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompts.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: c.cfg.Temperature,
	}

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := c.cfg.RetryDelay * time.Duration(attempt)
			log.Printf("[generation] mode=%s attempt %d failed, retrying in %s: %v", mode, attempt, delay, lastErr)
			if err := c.sleep(ctx, delay); err != nil {
				return "", err
			}
		}

		content, err := c.attempt(ctx, req)
		if err == nil {
			return content, nil
		}
		lastErr = err

		if ctx.Err() != nil || !shouldRetry(err) {
			break
		}
	}

	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	return "", lastErr
}

func (c *Client) attempt(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	resp, err := c.chat.CreateChatCompletion(attemptCtx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", errEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

// shouldRetry reports whether err is worth another attempt: rate limits,
// upstream 5xx, network errors and attempt timeouts.
func shouldRetry(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return retryableStatus(apiErr.HTTPStatusCode)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return retryableStatus(reqErr.HTTPStatusCode)
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
