package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rail44/gemrun/internal/log"
)

const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"

	modelPrefix = "models/"
)

// Client is the remote side of generation. Failures are returned to the
// caller without retry.
type Client interface {
	// Generate sends content with a system instruction to model and returns
	// the response text, which may be empty
	Generate(ctx context.Context, model, systemInstruction, content string) (string, error)

	// ListModels returns the normalized identifiers of models that support generation
	ListModels(ctx context.Context) ([]string, error)

	// Name returns the provider name
	Name() string
}

// ClientConfig represents the configuration for connecting to a provider
type ClientConfig struct {
	Provider   string        // "gemini" (default) or "ollama"
	APIKey     string        // API key for providers that require authentication
	Host       string        // Base URL override for the API endpoint
	Timeout    time.Duration // Request timeout, 0 means none
	HTTPClient *http.Client  // Optional, built from Timeout when nil
	Logger     *slog.Logger
}

// NewClient creates the client for the configured provider. No connection is
// made until the first request.
func NewClient(cfg *ClientConfig) (Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("clientConfig is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.Slog()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	switch strings.ToLower(cfg.Provider) {
	case "", ProviderGemini:
		return NewGeminiClient(&GeminiOptions{
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.Host,
			HTTPClient: httpClient,
			Logger:     logger,
		}), nil
	case ProviderOllama:
		c, err := NewOllamaClient(cfg.Host, httpClient, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create Ollama client: %w", err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// NormalizeModelName strips the "models/" resource prefix from a model identifier
func NormalizeModelName(name string) string {
	return strings.TrimPrefix(strings.TrimSpace(name), modelPrefix)
}
