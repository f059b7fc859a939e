// Package registry keeps the named commands a user has registered.
//
// A Registry is owned by a single invocation; it is not safe for concurrent
// use and does not lock its store. Two processes saving the same store race
// and the last full snapshot wins.
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/rail44/gemrun/internal/log"
)

// ModelLister lists the model identifiers a backend accepts for generation
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}

// Registry maps command names to commands
type Registry struct {
	commands     map[string]Command
	order        []string
	defaultModel string
	store        Store
	models       ModelLister
	logger       log.Logger
}

// Options configures a Registry
type Options struct {
	DefaultModel string
	Store        Store
	Models       ModelLister // consulted only when a model is given explicitly
	Logger       log.Logger
}

// New creates an empty registry
func New(opts Options) *Registry {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Registry{
		commands:     make(map[string]Command),
		defaultModel: opts.DefaultModel,
		store:        opts.Store,
		models:       opts.Models,
		logger:       logger,
	}
}

// DefaultModel returns the model used when registration omits one
func (r *Registry) DefaultModel() string {
	return r.defaultModel
}

// Load merges the stored commands into the registry, overwriting commands
// with the same name. Stored models are not validated.
func (r *Registry) Load() error {
	if r.store == nil {
		return nil
	}

	stored, err := r.store.Load()
	if err != nil {
		return err
	}

	for i, c := range stored {
		if c.Name == "" {
			return fmt.Errorf("invalid command record at index %d: %w", i, ErrEmptyName)
		}
		r.put(c.Name, c.Model, c.SystemInstruction)
	}

	r.logger.Debug("loaded commands", slog.Int("count", len(stored)))
	return nil
}

// Register adds or replaces a command. An empty model selects the default
// model without contacting the backend; any other model must be listed by
// the backend. The registry is unchanged when an error is returned.
func (r *Registry) Register(ctx context.Context, name, model, instruction string) error {
	if name == "" {
		return ErrEmptyName
	}

	if model != "" {
		if err := r.validateModel(ctx, model); err != nil {
			return err
		}
	}

	r.put(name, model, instruction)
	r.logger.Debug("registered command",
		slog.String("command", name),
		slog.String("model", r.commands[name].Model))
	return nil
}

func (r *Registry) validateModel(ctx context.Context, model string) error {
	if r.models == nil {
		return fmt.Errorf("cannot validate model %q: no model lister configured", model)
	}

	supported, err := r.models.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list supported models: %w", err)
	}

	if !slices.Contains(supported, model) {
		return &ModelNotFoundError{Model: model}
	}
	return nil
}

func (r *Registry) put(name, model, instruction string) {
	if model == "" {
		model = r.defaultModel
	}
	if _, exists := r.commands[name]; !exists {
		r.order = append(r.order, name)
	}
	r.commands[name] = Command{
		Name:              name,
		Model:             model,
		SystemInstruction: instruction,
	}
}

// Lookup returns the command registered under name
func (r *Registry) Lookup(name string) (Command, error) {
	c, ok := r.commands[name]
	if !ok {
		return Command{}, &CommandNotFoundError{Name: name}
	}
	return c, nil
}

// List returns a snapshot of all commands in registration order
func (r *Registry) List() []Command {
	commands := make([]Command, 0, len(r.order))
	for _, name := range r.order {
		commands = append(commands, r.commands[name])
	}
	return commands
}

// Names returns the registered command names in registration order
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Save writes every command to the store, replacing its previous contents
func (r *Registry) Save() error {
	if r.store == nil {
		return fmt.Errorf("no command store configured")
	}
	if err := r.store.Save(r.List()); err != nil {
		return err
	}
	r.logger.Debug("saved commands", slog.Int("count", len(r.order)))
	return nil
}
