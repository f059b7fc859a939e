// Package app wires configuration, the command registry, the dispatcher and
// the generation backend for one CLI invocation.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/rail44/gemrun/internal/builtin"
	"github.com/rail44/gemrun/internal/config"
	"github.com/rail44/gemrun/internal/credential"
	"github.com/rail44/gemrun/internal/dispatch"
	"github.com/rail44/gemrun/internal/input"
	"github.com/rail44/gemrun/internal/llm"
	"github.com/rail44/gemrun/internal/log"
	"github.com/rail44/gemrun/internal/registry"
	"github.com/rail44/gemrun/internal/ui"
)

// requestTimeout bounds a single remote call
const requestTimeout = 5 * time.Minute

// Options configures an App
type Options struct {
	Config   *config.Config
	Stdout   io.Writer   // generated text and listings, os.Stdout by default
	Progress *ui.Program // nil disables the spinner

	// NewClient builds the generation backend on first use. Defaults to
	// llm.NewClient with the configured provider and credential.
	NewClient func(cfg *config.Config) (llm.Client, error)
}

// App owns the state of one invocation
type App struct {
	cfg       *config.Config
	stdout    io.Writer
	progress  *ui.Program
	newClient func(cfg *config.Config) (llm.Client, error)
	client    llm.Client // built on first use
	registry  *registry.Registry
	logger    *slog.Logger
}

// Input is the content for a generation: Text when given on the command
// line, otherwise read from Reader unless it is an interactive terminal
type Input struct {
	Text        string
	Reader      io.Reader
	Interactive bool
}

// New creates the app and loads the stored commands
func New(opts Options) (*App, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("config is required")
	}

	a := &App{
		cfg:       opts.Config,
		stdout:    opts.Stdout,
		progress:  opts.Progress,
		newClient: opts.NewClient,
		logger:    log.Slog(),
	}
	if a.stdout == nil {
		a.stdout = os.Stdout
	}
	if a.progress == nil {
		a.progress = ui.NewProgramWithOptions(ui.ProgramOptions{Plain: true})
	}
	if a.newClient == nil {
		a.newClient = defaultClient
	}

	a.registry = registry.New(registry.Options{
		DefaultModel: a.cfg.DefaultModel,
		Store:        registry.NewFileStore(a.cfg.StorePath),
		Models:       a,
		Logger:       a.logger,
	})
	if err := a.registry.Load(); err != nil {
		return nil, fmt.Errorf("failed to load commands: %w", err)
	}

	return a, nil
}

func defaultClient(cfg *config.Config) (llm.Client, error) {
	return llm.NewClient(&llm.ClientConfig{
		Provider: cfg.Provider,
		APIKey:   credential.Resolve(cfg.GetAPIKey()),
		Host:     cfg.Host,
		Timeout:  requestTimeout,
		Logger:   log.Slog(),
	})
}

// Registry returns the command registry of this invocation
func (a *App) Registry() *registry.Registry {
	return a.registry
}

func (a *App) llmClient() (llm.Client, error) {
	if a.client != nil {
		return a.client, nil
	}
	client, err := a.newClient(a.cfg)
	if err != nil {
		return nil, err
	}
	a.client = client
	return client, nil
}

// Generate forwards to the generation backend, building it on first use
func (a *App) Generate(ctx context.Context, model, systemInstruction, content string) (string, error) {
	client, err := a.llmClient()
	if err != nil {
		return "", err
	}
	return client.Generate(ctx, model, systemInstruction, content)
}

// ListModels forwards to the generation backend, building it on first use
func (a *App) ListModels(ctx context.Context) ([]string, error) {
	client, err := a.llmClient()
	if err != nil {
		return nil, err
	}
	return client.ListModels(ctx)
}

func (a *App) content(in Input) (string, error) {
	if in.Text != "" {
		return input.Validate(in.Text, a.cfg.MaxInputLength)
	}
	if in.Reader == nil {
		return "", &input.ValidationError{Reason: "no input provided"}
	}
	return input.Read(in.Reader, in.Interactive, a.cfg.MaxInputLength)
}

// Run sends the input through the named command and prints the result
func (a *App) Run(ctx context.Context, name string, in Input) error {
	content, err := a.content(in)
	if err != nil {
		return err
	}

	var text string
	err = a.progress.Run(ctx, fmt.Sprintf("Running %s", name), func(ctx context.Context, logger *slog.Logger) error {
		out, err := dispatch.New(a.registry, a, logger).Generate(ctx, name, content)
		text = out
		return err
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(a.stdout, text)
	return err
}

// Translate sends the input through a built-in translation command
func (a *App) Translate(ctx context.Context, language string, in Input) error {
	kind, err := builtin.Parse(language)
	if err != nil {
		return err
	}

	content, err := a.content(in)
	if err != nil {
		return err
	}

	var text string
	err = a.progress.Run(ctx, fmt.Sprintf("Translating to %s", kind.Language()), func(ctx context.Context, logger *slog.Logger) error {
		out, err := dispatch.New(a.registry, a, logger).GenerateCommand(ctx, kind.Command(a.cfg.DefaultModel), content)
		text = out
		return err
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(a.stdout, text)
	return err
}

// Register stores a command. An explicit model is checked against the
// backend first; nothing is saved when registration fails.
func (a *App) Register(ctx context.Context, name, model, instruction string) error {
	register := func(ctx context.Context, _ *slog.Logger) error {
		return a.registry.Register(ctx, name, model, instruction)
	}

	var err error
	if model != "" {
		err = a.progress.Run(ctx, fmt.Sprintf("Checking model %s", model), register)
	} else {
		err = register(ctx, a.logger)
	}
	if err != nil {
		return err
	}

	if err := a.registry.Save(); err != nil {
		return err
	}
	a.logger.Info("registered command", slog.String("command", name))
	return nil
}

// Commands prints the registered command names, or full records when
// verbose, as an indented JSON array
func (a *App) Commands(verbose bool) error {
	var v any = a.registry.Names()
	if verbose {
		v = a.registry.List()
	}

	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode commands: %w", err)
	}
	_, err = fmt.Fprintln(a.stdout, string(data))
	return err
}

// Models prints the models the backend accepts, one per line
func (a *App) Models(ctx context.Context) error {
	var models []string
	err := a.progress.Run(ctx, "Listing models", func(ctx context.Context, _ *slog.Logger) error {
		out, err := a.ListModels(ctx)
		models = out
		return err
	})
	if err != nil {
		return err
	}

	for _, m := range models {
		if _, err := fmt.Fprintln(a.stdout, m); err != nil {
			return err
		}
	}
	return nil
}
