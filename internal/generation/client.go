package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultBaseURL points at a locally running OpenAI-compatible server.
	DefaultBaseURL = "http://127.0.0.1:11434/v1"
	// DefaultModel is the chat model requested when none is configured.
	DefaultModel = "llama3.1"
)

var (
	// ErrEmptyPrompt is returned when the prompt is empty
	ErrEmptyPrompt = errors.New("prompt cannot be empty")
)

// ChatAPI defines the interface for chat completion
type ChatAPI interface {
	CreateChatCompletion(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Client wraps an OpenAI-compatible chat backend. Retrieval and ranking
// happen entirely offline; this client is only consulted to phrase the
// final answer.
type Client struct {
	api ChatAPI
}

type OpenAIAdapter struct {
	client *openai.Client
	model  string
}

func NewOpenAIAdapter(baseURL, model string) *OpenAIAdapter {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	// Local servers ignore the API key but the client requires one.
	cfg := openai.DefaultConfig("local")
	cfg.BaseURL = baseURL
	return &OpenAIAdapter{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// CreateChatCompletion sends the prompt as a single user message.
func (a *OpenAIAdapter) CreateChatCompletion(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     a.model,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no completion choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}

type Config struct {
	BaseURL string
	Model   string
}

// NewClient creates a client against the default local backend.
func NewClient() *Client {
	return NewClientWithConfig(Config{})
}

// NewClientWithConfig creates a client with explicit configuration.
func NewClientWithConfig(cfg Config) *Client {
	return &Client{
		api: NewOpenAIAdapter(cfg.BaseURL, cfg.Model),
	}
}

// Generate produces a completion for the given prompt.
func (c *Client) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	answer, err := c.api.CreateChatCompletion(ctx, prompt, maxTokens)
	if err != nil {
		return "", fmt.Errorf("failed to create completion: %w", err)
	}

	return answer, nil
}
