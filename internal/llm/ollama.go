package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
)

const defaultOllamaHost = "http://localhost:11434"

// OllamaClient implements Client for a local Ollama server
type OllamaClient struct {
	client *api.Client
	logger *slog.Logger
}

// NewOllamaClient creates a new Ollama client
func NewOllamaClient(host string, httpClient *http.Client, logger *slog.Logger) (*OllamaClient, error) {
	if host == "" {
		host = defaultOllamaHost
	}
	hostURL, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid host URL: %w", err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &OllamaClient{
		client: api.NewClient(hostURL, httpClient),
		logger: logger,
	}, nil
}

// Name returns the provider name
func (c *OllamaClient) Name() string {
	return "Ollama"
}

// Generate sends a single non-streaming chat request
func (c *OllamaClient) Generate(ctx context.Context, model, systemInstruction, content string) (string, error) {
	var messages []api.Message
	if systemInstruction != "" {
		messages = append(messages, api.Message{Role: "system", Content: systemInstruction})
	}
	messages = append(messages, api.Message{Role: "user", Content: content})

	stream := false
	var response strings.Builder

	start := time.Now()
	err := c.client.Chat(ctx, &api.ChatRequest{
		Model:    model,
		Messages: messages,
		Stream:   &stream,
	}, func(resp api.ChatResponse) error {
		response.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("chat failed: %w", err)
	}

	c.logger.Debug("generation finished",
		slog.String("model", model),
		slog.Int("chars", response.Len()),
		slog.Duration("elapsed", time.Since(start).Round(time.Millisecond)))
	return response.String(), nil
}

// ListModels returns the models pulled on the Ollama server
func (c *OllamaClient) ListModels(ctx context.Context) ([]string, error) {
	resp, err := c.client.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}

	names := make([]string, 0, len(resp.Models))
	for _, m := range resp.Models {
		names = append(names, NormalizeModelName(m.Name))
	}
	return names, nil
}
