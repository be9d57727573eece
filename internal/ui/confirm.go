package ui

import (
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/babarot/drash/internal/ui/confirm"
)

// Prompter asks yes/no questions on a terminal.
type Prompter struct {
	In  io.Reader
	Out io.Writer
}

// NewPrompter returns a Prompter on stdin and stderr.
func NewPrompter() *Prompter {
	return &Prompter{In: os.Stdin, Out: os.Stderr}
}

// Confirm asks prompt, showing help below it. def is the answer chosen when
// the user just presses enter.
func (p *Prompter) Confirm(prompt, help string, def bool) (bool, error) {
	m := confirm.New(prompt)
	m.Help = help
	m.Immediately = true
	if def {
		m.DefaultValue = confirm.Accepted
	}

	prog := tea.NewProgram(&m, tea.WithInput(p.In), tea.WithOutput(p.Out))
	if _, err := prog.Run(); err != nil {
		slog.Error("confirm failed", "error", err)
		return false, err
	}

	slog.Debug("confirm answered", "prompt", prompt, "decision", m.Selected())
	return m.Selected().IsAccepted(), nil
}
