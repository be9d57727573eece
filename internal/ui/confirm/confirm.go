// Package confirm is a bubbletea model asking a single yes/no question.
package confirm

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jimschubert/answer/colors"
)

// Decision is an enumeration of decisions available in the confirmation bubble
type Decision int

const (
	// Undecided indicates the state in which a user has not made a selection
	Undecided Decision = iota

	// Accepted indicates the user has provided a positive response
	Accepted

	// Denied indicates the user has provided a negative response
	Denied
)

// String satisfies the fmt.Stringer interface
func (d Decision) String() string {
	return [...]string{
		"undecided",
		"accepted",
		"denied",
	}[d]
}

// IsAccepted is a helper to indicate the positive confirmation state was selected
func (d Decision) IsAccepted() bool {
	return d == Accepted
}

// Styles holds relevant styles used for rendering
type Styles struct {
	PromptPrefix lipgloss.Style
	Prompt       lipgloss.Style
	Help         lipgloss.Style
	Text         lipgloss.Style
	Placeholder  lipgloss.Style
}

// Model represents the bubble tea model for the confirm bubble
type Model struct {
	// PromptPrefix is rendered before the prompt
	PromptPrefix string

	// Prompt is the question shown to the user
	Prompt string

	// Help is an optional hint rendered after the prompt
	Help string

	// DefaultValue is chosen when the user presses enter without answering
	DefaultValue Decision

	// Immediately decides on the first y/n key press, without waiting for enter
	Immediately bool

	Styles Styles

	selected Decision
	done     bool
	text     textinput.Model
}

// New creates a new model with default settings.
func New(prompt string) Model {
	return Model{
		PromptPrefix: "? ",
		Prompt:       prompt,
		DefaultValue: Denied,
		Styles: Styles{
			PromptPrefix: lipgloss.NewStyle().Foreground(lipgloss.Color(colors.PromptPrefix)),
			Help:         lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Placeholder)).Italic(true),
			Placeholder:  lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Placeholder)),
		},
	}
}

// Selected retrieves the default or user-selected Decision value
func (m *Model) Selected() Decision {
	return m.selected
}

// Init satisfies the tea.Model interface
func (m *Model) Init() tea.Cmd {
	m.selected = Undecided

	input := textinput.New()
	input.Placeholder = m.placeholder()
	input.Prompt = ""
	input.PlaceholderStyle = m.Styles.Placeholder
	input.TextStyle = m.Styles.Text
	input.CharLimit = 3
	input.Focus()
	m.text = input
	return nil
}

func (m *Model) placeholder() string {
	if m.DefaultValue == Accepted {
		return "Y/n"
	}
	return "y/N"
}

func (m *Model) decide(d Decision) (tea.Model, tea.Cmd) {
	m.selected = d
	m.done = true
	return m, tea.Quit
}

// Update satisfies the tea.Model interface
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m.decide(Denied)
	case tea.KeyEnter:
		switch answer := strings.ToLower(strings.TrimSpace(m.text.Value())); {
		case answer == "":
			return m.decide(m.DefaultValue)
		case strings.HasPrefix("yes", answer):
			return m.decide(Accepted)
		case strings.HasPrefix("no", answer):
			return m.decide(Denied)
		}
		m.text.Reset()
		return m, nil
	}

	if m.Immediately && isLetter(key.String()) {
		switch strings.ToLower(key.String()) {
		case "y":
			return m.decide(Accepted)
		case "n":
			return m.decide(Denied)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.text, cmd = m.text.Update(msg)
	return m, cmd
}

func isLetter(s string) bool {
	return s != "" && !strings.ContainsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}

// View satisfies the tea.Model interface
func (m *Model) View() string {
	var b strings.Builder
	if m.PromptPrefix != "" {
		b.WriteString(m.Styles.PromptPrefix.Inline(true).Render(m.PromptPrefix))
	}
	b.WriteString(m.Styles.Prompt.Inline(true).Render(m.Prompt))
	b.WriteString(" ")

	if m.done {
		if m.selected.IsAccepted() {
			b.WriteString("yes")
		} else {
			b.WriteString("no")
		}
		b.WriteRune('\n')
		return b.String()
	}

	b.WriteString(m.text.View())
	if m.Help != "" {
		b.WriteRune('\n')
		b.WriteString(m.Styles.Help.Render("[" + m.Help + "]"))
	}
	return b.String()
}
