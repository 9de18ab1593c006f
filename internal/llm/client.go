// ABOUTME: Groq client for chat completions and embeddings via the OpenAI-compatible API
// ABOUTME: Completions are retried with capped exponential backoff; embeddings fail fast for the caller to degrade
package llm

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/JahazielHernandezHoyos/embedding-with-groq-and-qdrant/internal/util"
)

const (
	// DefaultBaseURL is the Groq OpenAI-compatible endpoint.
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	// DefaultChatModel is the default model for chat completions.
	DefaultChatModel = "llama3-8b-8192"

	requestTimeout = 30 * time.Second
)

// ClientConfig holds configuration for the Groq client.
type ClientConfig struct {
	APIKey         string
	BaseURL        string
	ChatModel      string
	EmbeddingModel string
	Dimension      int
	Temperature    float32
	MaxTokens      int
	MaxRetries     int
	RetryDelay     time.Duration
	RetryCap       time.Duration
}

// Client wraps the OpenAI-compatible API client with retry logic for
// completions. One client serves both generation and embedding calls.
type Client struct {
	client         *openai.Client
	chatModel      string
	embeddingModel string
	dimension      int
	temperature    float32
	maxTokens      int
	maxRetries     int
	retryDelay     time.Duration
	retryCap       time.Duration
}

// NewClient creates a Groq client from the given configuration.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Groq API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = DefaultChatModel
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 2 // 3 attempts total
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.RetryCap == 0 {
		cfg.RetryCap = 10 * time.Second
	}

	apiConfig := openai.DefaultConfig(cfg.APIKey)
	apiConfig.BaseURL = cfg.BaseURL

	return &Client{
		client:         openai.NewClientWithConfig(apiConfig),
		chatModel:      cfg.ChatModel,
		embeddingModel: cfg.EmbeddingModel,
		dimension:      cfg.Dimension,
		temperature:    cfg.Temperature,
		maxTokens:      cfg.MaxTokens,
		maxRetries:     cfg.MaxRetries,
		retryDelay:     cfg.RetryDelay,
		retryCap:       cfg.RetryCap,
	}, nil
}

// Complete runs one chat completion at the configured model, temperature
// and token limit, retrying transient failures with capped backoff.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	var messages []openai.ChatCompletionMessage
	if systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userPrompt,
	})

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, c.retryCap, attempt))
		}

		callCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		resp, err := c.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
			Model:       c.chatModel,
			Messages:    messages,
			Temperature: c.temperature,
			MaxTokens:   c.maxTokens,
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("attempt %d: no completion choices returned", attempt+1)
			continue
		}
		return resp.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("completion failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

// Embed generates an embedding vector for text at the configured model and
// dimension. No internal retry: batch callers degrade to a zero vector.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	callCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := c.client.CreateEmbeddings(callCtx, openai.EmbeddingRequest{
		Input:      []string{text},
		Model:      openai.EmbeddingModel(c.embeddingModel),
		Dimensions: c.dimension,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no embeddings returned")
	}
	return resp.Data[0].Embedding, nil
}
