// Package dispatch resolves a command and sends content through it.
package dispatch

import (
	"context"
	"log/slog"

	"github.com/rail44/gemrun/internal/log"
	"github.com/rail44/gemrun/internal/registry"
)

// Resolver looks up registered commands
type Resolver interface {
	Lookup(name string) (registry.Command, error)
}

// Generator performs the remote generation call
type Generator interface {
	Generate(ctx context.Context, model, systemInstruction, content string) (string, error)
}

// Dispatcher sends content through named commands
type Dispatcher struct {
	commands  Resolver
	generator Generator
	logger    log.Logger
}

// New creates a dispatcher. A nil logger selects the package-level logger.
func New(commands Resolver, generator Generator, logger log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Dispatcher{
		commands:  commands,
		generator: generator,
		logger:    logger,
	}
}

// Generate runs content through the command registered as name. Lookup
// failures are returned unchanged and the generator is not called.
func (d *Dispatcher) Generate(ctx context.Context, name, content string) (string, error) {
	cmd, err := d.commands.Lookup(name)
	if err != nil {
		return "", err
	}
	return d.GenerateCommand(ctx, cmd, content)
}

// GenerateCommand runs content through an already resolved command. An empty
// response is returned as-is.
func (d *Dispatcher) GenerateCommand(ctx context.Context, cmd registry.Command, content string) (string, error) {
	d.logger.Debug("dispatching command",
		slog.String("command", cmd.Name),
		slog.String("model", cmd.Model),
		slog.Int("content_chars", len(content)))

	text, err := d.generator.Generate(ctx, cmd.Model, cmd.SystemInstruction, content)
	if err != nil {
		return "", err
	}

	if text == "" {
		d.logger.Warn("empty response", slog.String("command", cmd.Name))
	}
	return text, nil
}
