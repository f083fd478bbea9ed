package curator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const requestTimeout = 120 * time.Second

// CompletionRequest describes one generation call. The engine imposes no
// structure on the reply; all typing happens in the extractor.
type CompletionRequest struct {
	Model           string
	System          string
	User            string
	MaxTokens       int64
	ReasoningEffort string // e.g. "minimal" for the latency-sensitive mood path
}

// Completer is the generation-engine boundary. Pipelines depend on this
// interface so tests can substitute a scripted engine.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Engine is an OpenAI-compatible chat completion client. A custom base URL
// points it at Azure-style deployments or a test server.
type Engine struct {
	client openai.Client
}

// EngineConfig holds configuration for the engine client.
type EngineConfig struct {
	APIKey  string
	BaseURL string
}

// NewEngine creates a new generation-engine client.
func NewEngine(cfg EngineConfig) *Engine {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(requestTimeout),
		// Retrying is the trigger's job; a failed invocation fails outright.
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Engine{client: openai.NewClient(opts...)}
}

// Complete sends one system/user prompt pair and returns the raw reply text.
func (e *Engine) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(req.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.User),
		},
	}
	if req.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(req.MaxTokens)
	}
	if req.ReasoningEffort != "" {
		params.ReasoningEffort = openai.ReasoningEffort(req.ReasoningEffort)
	}

	resp, err := e.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from engine")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
