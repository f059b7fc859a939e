package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	messageStyle = lipgloss.NewStyle().Bold(true)
	elapsedStyle = lipgloss.NewStyle().Faint(true)
)

// doneMsg is sent when the wrapped work finishes
type doneMsg struct {
	err error
}

// model is the Bubble Tea model showing a spinner while work is in flight
type model struct {
	spinner   spinner.Model
	message   string
	startTime time.Time
	now       func() time.Time
	done      bool
	err       error
	cancel    func()
}

func newModel(message string, cancel func()) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return &model{
		spinner:   s,
		message:   message,
		startTime: time.Now(),
		now:       time.Now,
		cancel:    cancel,
	}
}

// Init starts the spinner animation
func (m *model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages and updates the model
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}

	case doneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the spinner line; it is cleared once the work is done
func (m *model) View() string {
	if m.done {
		return ""
	}
	elapsed := m.now().Sub(m.startTime).Round(100 * time.Millisecond)
	return fmt.Sprintf("%s %s %s",
		m.spinner.View(),
		messageStyle.Render(m.message),
		elapsedStyle.Render(fmt.Sprintf("(%s)", elapsed)))
}
