package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"google.golang.org/genai"
)

// generateContentAction marks models that accept GenerateContent calls
const generateContentAction = "generateContent"

// GeminiOptions contains options for creating a Gemini client
type GeminiOptions struct {
	APIKey     string
	BaseURL    string // empty selects the public endpoint
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// GeminiClient implements Client for the Gemini API
type GeminiClient struct {
	opts   GeminiOptions
	client *genai.Client // built on first use
	logger *slog.Logger
}

// NewGeminiClient creates a Gemini client. The underlying SDK client is not
// constructed until the first request.
func NewGeminiClient(opts *GeminiOptions) *GeminiClient {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &GeminiClient{
		opts:   *opts,
		logger: logger,
	}
}

// Name returns the provider name
func (c *GeminiClient) Name() string {
	return "Gemini"
}

func (c *GeminiClient) sdk(ctx context.Context) (*genai.Client, error) {
	if c.client != nil {
		return c.client, nil
	}

	cc := &genai.ClientConfig{
		APIKey:     c.opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.opts.HTTPClient,
	}
	if c.opts.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: c.opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	c.client = client
	return client, nil
}

// Generate sends content to model with the given system instruction
func (c *GeminiClient) Generate(ctx context.Context, model, systemInstruction, content string) (string, error) {
	client, err := c.sdk(ctx)
	if err != nil {
		return "", err
	}

	config := &genai.GenerateContentConfig{}
	if systemInstruction != "" {
		config.SystemInstruction = genai.NewContentFromText(systemInstruction, genai.RoleUser)
	}

	start := time.Now()
	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(content), config)
	if err != nil {
		return "", fmt.Errorf("generate content with %s: %w", model, err)
	}

	text := resp.Text()
	c.logger.Debug("generation finished",
		slog.String("model", model),
		slog.Int("chars", len(text)),
		slog.Duration("elapsed", time.Since(start).Round(time.Millisecond)))
	return text, nil
}

// ListModels returns the models that support content generation
func (c *GeminiClient) ListModels(ctx context.Context) ([]string, error) {
	client, err := c.sdk(ctx)
	if err != nil {
		return nil, err
	}

	var models []*genai.Model
	for m, err := range client.Models.All(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list models: %w", err)
		}
		models = append(models, m)
	}
	return generativeModelNames(models), nil
}

// generativeModelNames keeps models supporting generateContent and strips the
// resource prefix from their names
func generativeModelNames(models []*genai.Model) []string {
	names := make([]string, 0, len(models))
	for _, m := range models {
		if m == nil || !slices.Contains(m.SupportedActions, generateContentAction) {
			continue
		}
		names = append(names, NormalizeModelName(m.Name))
	}
	return names
}
