// Package chat is the interactive gusto prompt: type a problem, get a solution card.
package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gusto/internal/config"
	"gusto/internal/logging"
	"gusto/internal/render"
	"gusto/internal/solver"
)

// DispatchFunc solves one submitted line.
type DispatchFunc func(text string) (solver.Solution, error)

// SolvedFunc is notified after each successful solution, e.g. to record history.
type SolvedFunc func(text string, sol solver.Solution)

// Message is one entry in the transcript.
type Message struct {
	Role    string // "user", "assistant" or "error"
	Content string
}

// Model is the bubbletea model for the chat view.
type Model struct {
	input    textinput.Model
	viewport viewport.Model
	styles   render.Styles
	renderer *render.Renderer

	dispatch DispatchFunc
	onSolved SolvedFunc
	modeName string

	history []Message
	width   int
	height  int
}

const (
	defaultWidth  = 80
	defaultHeight = 24
	chromeHeight  = 4 // header, input, footer, spacer
)

// New creates a chat model. modeName is shown in the header.
func New(modeName string, dispatch DispatchFunc, onSolved SolvedFunc) (Model, error) {
	r, err := render.New(render.Options{Format: config.FormatStyled})
	if err != nil {
		return Model{}, err
	}

	ti := textinput.New()
	ti.Placeholder = "2 + 2, anagram of listen, or any problem..."
	ti.Prompt = "› "
	ti.CharLimit = 500
	ti.Focus()

	m := Model{
		input:    ti,
		viewport: viewport.New(defaultWidth, defaultHeight-chromeHeight),
		styles:   render.DefaultStyles(),
		renderer: r,
		dispatch: dispatch,
		onSolved: onSolved,
		modeName: modeName,
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m.input.Width = defaultWidth - 4
	m.refresh()
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			m.submit()
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-chromeHeight)
		m.input.Width = max(10, msg.Width-4)
		m.refresh()
		return m, nil
	}

	var tiCmd tea.Cmd
	m.input, tiCmd = m.input.Update(msg)
	return m, tiCmd
}

func (m *Model) submit() {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return
	}
	m.input.Reset()
	m.history = append(m.history, Message{Role: "user", Content: text})

	sol, err := m.dispatch(text)
	if err != nil {
		logging.UIDebug("dispatch failed: %v", err)
		m.history = append(m.history, Message{Role: "error", Content: err.Error()})
		m.refresh()
		return
	}

	out, err := m.renderer.String(sol)
	if err != nil {
		m.history = append(m.history, Message{Role: "error", Content: err.Error()})
		m.refresh()
		return
	}
	m.history = append(m.history, Message{Role: "assistant", Content: out})
	logging.UIDebug("solved %q as %s", text, sol.Kind)
	if m.onSolved != nil {
		m.onSolved(text, sol)
	}
	m.refresh()
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()
}

func (m Model) renderHistory() string {
	if len(m.history) == 0 {
		return m.styles.Muted.Render("Type a problem and press Enter. Esc quits.")
	}
	blocks := make([]string, 0, len(m.history))
	for _, msg := range m.history {
		switch msg.Role {
		case "user":
			blocks = append(blocks, m.styles.Prompt.Render("you: ")+msg.Content)
		case "error":
			blocks = append(blocks, m.styles.Error.Render("oops: "+msg.Content))
		default:
			blocks = append(blocks, msg.Content)
		}
	}
	return strings.Join(blocks, "\n\n")
}

// View implements tea.Model.
func (m Model) View() string {
	header := m.styles.Header.Render("gusto · " + m.modeName)
	footer := m.styles.Muted.Render("enter: solve · pgup/pgdn: scroll · esc: quit")
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.viewport.View(),
		m.input.View(),
		footer,
	)
}

// History returns a copy of the transcript.
func (m Model) History() []Message {
	out := make([]Message, len(m.history))
	copy(out, m.history)
	return out
}
