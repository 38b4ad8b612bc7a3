package confirm

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// --- Messages ---

// ConfirmedMsg is sent when the user confirms the action. Value holds the
// entered text for dialogs that ask for input.
type ConfirmedMsg struct {
	Value string
}

// CancelledMsg is sent when the user cancels the action.
type CancelledMsg struct{}

// --- Model ---

// Model represents a confirmation dialog, optionally with a text field.
type Model struct {
	Active bool
	Prompt string

	withInput bool
	input     textinput.Model
	keys      keyMap
}

// New creates a new confirmation dialog model.
func New() Model {
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 50
	return Model{
		input: ti,
		keys:  defaultKeyMap,
	}
}

// Activate prepares the dialog for display with a given prompt.
func (m *Model) Activate(prompt string) {
	m.Prompt = prompt
	m.Active = true
	m.withInput = false
	m.input.Blur()
}

// ActivateInput shows the dialog with a text field prefilled with value.
func (m *Model) ActivateInput(prompt, value string) {
	m.Prompt = prompt
	m.Active = true
	m.withInput = true
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

// HasInput reports whether the dialog asks for text.
func (m Model) HasInput() bool {
	return m.withInput
}

// --- Update ---

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.Active {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.withInput {
		switch {
		case key.Matches(keyMsg, m.keys.Submit):
			m.Active = false
			value := m.input.Value()
			return m, func() tea.Msg { return ConfirmedMsg{Value: value} }
		case key.Matches(keyMsg, m.keys.Abort):
			m.Active = false
			return m, func() tea.Msg { return CancelledMsg{} }
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(keyMsg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		m.Active = false
		return m, func() tea.Msg { return ConfirmedMsg{} }
	case key.Matches(keyMsg, m.keys.Cancel):
		m.Active = false
		return m, func() tea.Msg { return CancelledMsg{} }
	}

	return m, nil
}

// --- View ---

var borderColor = lipgloss.AdaptiveColor{Light: "#D75F00", Dark: "#FF8700"}

func (m Model) View() string {
	if !m.Active {
		return ""
	}

	body := m.Prompt
	hint := "(y/n)"
	if m.withInput {
		body = lipgloss.JoinVertical(lipgloss.Left, m.Prompt, "", m.input.View())
		hint = "(enter to confirm, esc to cancel)"
	}

	dialogBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(1, 2).
		Render(body)

	helpText := lipgloss.NewStyle().
		Faint(true).
		Width(lipgloss.Width(dialogBox)).
		Align(lipgloss.Center).
		Render("\n" + hint)

	return lipgloss.JoinVertical(lipgloss.Left, dialogBox, helpText)
}

// --- KeyMap ---

type keyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
	Submit  key.Binding
	Abort   key.Binding
}

var defaultKeyMap = keyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "N", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Abort: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}
