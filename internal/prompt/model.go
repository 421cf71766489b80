package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kennyg/yokogaki/internal/ui"
)

// --- Model ---

// Model is a text input whose initial value carries a selection. While the
// selection is live, typing replaces it and deletion removes it; any
// cursor movement drops it.
type Model struct {
	title string
	input textinput.Model
	keys  keyMap

	selStart  int
	selEnd    int
	selecting bool

	submitted bool
	cancelled bool
}

// NewModel builds the prompt model for req.
func NewModel(req Request) Model {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.SetValue(req.Value)
	ti.Focus()

	start, end := clampSpan(len([]rune(req.Value)), req.SelStart, req.SelEnd)
	ti.SetCursor(end)

	return Model{
		title:     req.Title,
		input:     ti,
		keys:      defaultKeyMap,
		selStart:  start,
		selEnd:    end,
		selecting: end > start,
	}
}

// Value returns the current text.
func (m Model) Value() string {
	return m.input.Value()
}

// Submitted reports whether the user confirmed with enter.
func (m Model) Submitted() bool {
	return m.submitted
}

// Cancelled reports whether the user backed out.
func (m Model) Cancelled() bool {
	return m.cancelled
}

// Selection returns the live selection, if any.
func (m Model) Selection() (start, end int, ok bool) {
	return m.selStart, m.selEnd, m.selecting
}

// Cursor returns the cursor position in runes.
func (m Model) Cursor() int {
	return m.input.Position()
}

// --- Update ---

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Submit):
			m.submitted = true
			m.selecting = false
			return m, tea.Quit
		case key.Matches(msg, m.keys.Cancel):
			m.cancelled = true
			m.selecting = false
			return m, tea.Quit
		}

		if m.selecting {
			m.selecting = false
			if m.applyToSelection(msg) {
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// applyToSelection handles msg against the live selection and reports
// whether it was consumed.
func (m *Model) applyToSelection(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace:
		runes := msg.Runes
		if msg.Type == tea.KeySpace {
			runes = []rune{' '}
		}
		m.replaceSelection(string(runes))
		return true
	case tea.KeyBackspace, tea.KeyDelete:
		m.replaceSelection("")
		return true
	case tea.KeyLeft:
		m.input.SetCursor(m.selStart)
		return true
	case tea.KeyRight:
		m.input.SetCursor(m.selEnd)
		return true
	case tea.KeyHome, tea.KeyCtrlA:
		m.input.CursorStart()
		return true
	case tea.KeyEnd, tea.KeyCtrlE:
		m.input.CursorEnd()
		return true
	}
	return false
}

func (m *Model) replaceSelection(repl string) {
	m.input.SetValue(ReplaceSpan(m.input.Value(), m.selStart, m.selEnd, repl))
	m.input.SetCursor(m.selStart + len([]rune(repl)))
}

// --- View ---

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(ui.RenderHighlight(m.title))
	b.WriteString("\n")

	if m.selecting {
		rs := []rune(m.input.Value())
		b.WriteString(m.input.Prompt)
		b.WriteString(string(rs[:m.selStart]))
		b.WriteString(ui.Selected.Render(string(rs[m.selStart:m.selEnd])))
		b.WriteString(string(rs[m.selEnd:]))
	} else {
		b.WriteString(m.input.View())
	}

	b.WriteString("\n")
	b.WriteString(ui.RenderDim(m.keys.Submit.Help().Key + " " + m.keys.Submit.Help().Desc +
		" • " + m.keys.Cancel.Help().Key + " " + m.keys.Cancel.Help().Desc))
	b.WriteString("\n")

	return b.String()
}

// --- KeyMap ---

type keyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

var defaultKeyMap = keyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "rename"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
}
