package ui

import (
	"context"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/rail44/gemrun/internal/log"
)

// ProgramOptions contains options for creating a Program
type ProgramOptions struct {
	Plain  bool      // Use plain output instead of the spinner
	Output io.Writer // Where the spinner is drawn, os.Stderr by default
}

// Program shows progress while a blocking call runs. The spinner is drawn on
// stderr so that stdout carries only the generated text.
type Program struct {
	output     io.Writer
	isTerminal bool // Whether the output is a terminal
	plain      bool // Whether to use plain output
}

// NewProgram creates a progress program with default options
func NewProgram() *Program {
	return NewProgramWithOptions(ProgramOptions{})
}

// NewProgramWithOptions creates a progress program with specified options
func NewProgramWithOptions(opts ProgramOptions) *Program {
	output := opts.Output
	isTerminal := false
	if output == nil {
		output = os.Stderr
		isTerminal = term.IsTerminal(int(os.Stderr.Fd()))
	} else if f, ok := output.(*os.File); ok {
		isTerminal = term.IsTerminal(int(f.Fd()))
	}

	return &Program{
		output:     output,
		isTerminal: isTerminal,
		plain:      opts.Plain,
	}
}

// IsTUIEnabled returns whether the spinner is shown
func (p *Program) IsTUIEnabled() bool {
	return p.isTerminal && !p.plain
}

// Work is the blocking call wrapped by Run. Logs written to logger are
// printed above the spinner instead of tearing through it.
type Work func(ctx context.Context, logger *slog.Logger) error

// Run executes work, showing message next to a spinner when enabled
func (p *Program) Run(ctx context.Context, message string, work Work) error {
	if !p.IsTUIEnabled() {
		log.Debug(message)
		return work(ctx, log.Slog())
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	teaProgram := tea.NewProgram(newModel(message, cancel),
		tea.WithOutput(p.output),
		tea.WithInput(nil),
		tea.WithContext(ctx))

	logger := log.NewCallbackLogger(func(r slog.Record) {
		teaProgram.Println(log.FormatRecord(r))
	}, log.GetCurrentLevel())

	result := make(chan error, 1)
	go func() {
		err := work(ctx, logger)
		result <- err
		teaProgram.Send(doneMsg{err: err})
	}()

	if _, err := teaProgram.Run(); err != nil {
		// The spinner failed or was interrupted; stop waiting on the work
		cancel()
		log.Debug("progress display stopped", slog.String("error", err.Error()))
	}
	return <-result
}
