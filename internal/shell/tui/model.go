// Package tui is a terminal rendition of the chat widget.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/acadassist/widget/internal/model/chat"
	chatservice "github.com/acadassist/widget/internal/service/chat"
	widgetservice "github.com/acadassist/widget/internal/service/widget"
)

const (
	title    = "AcadAssist"
	subtitle = "Language Agnostic Chatbot"
	botLabel = "AcadAssist"
	youLabel = "You"
)

// HistoryMsg carries the full history after a change.
type HistoryMsg struct {
	Turns []chat.Turn
}

// InputMsg carries a new value of the widget's input buffer.
type InputMsg struct {
	Text string
}

// voiceDoneMsg reports the end of a voice session.
type voiceDoneMsg struct {
	submitted bool
}

// Model is the bubbletea model of the terminal widget.
type Model struct {
	ctx    context.Context
	widget *widgetservice.Widget

	width  int
	height int
	ready  bool

	turns    []chat.Turn
	viewport viewport.Model
	input    textinput.Model
	status   string

	styles Styles
	keys   KeyMap
}

// NewModel creates a model driving w. Exchanges run with ctx.
func NewModel(ctx context.Context, w *widgetservice.Widget) Model {
	ti := textinput.New()
	ti.Placeholder = "Type a message..."
	ti.CharLimit = 4096
	ti.Focus()

	vp := viewport.New(80, 20)

	m := Model{
		ctx:      ctx,
		widget:   w,
		turns:    w.Store().Turns(),
		viewport: vp,
		input:    ti,
		styles:   DefaultStyles(),
		keys:     DefaultKeyMap(),
	}
	m.viewport.SetContent(m.renderHistory())
	return m
}

// Attach forwards widget changes to send, usually (*tea.Program).Send, and
// returns a function that stops forwarding history updates.
func Attach(w *widgetservice.Widget, send func(tea.Msg)) func() {
	w.OnInputChange(func(text string) {
		send(InputMsg{Text: text})
	})
	return w.Store().Subscribe(func(chatservice.Update) {
		send(HistoryMsg{Turns: w.Store().Turns()})
	})
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model. Widget calls that notify listeners run inside
// commands so Attach never sends to the program from its own event loop.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()

	case HistoryMsg:
		m.turns = msg.Turns
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()

	case InputMsg:
		if m.input.Value() != msg.Text {
			m.input.SetValue(msg.Text)
			m.input.CursorEnd()
		}

	case voiceDoneMsg:
		m.status = ""
		if !msg.submitted {
			m.status = "nothing heard"
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		text := m.input.Value()
		if strings.TrimSpace(text) == "" {
			return m, nil
		}
		m.input.SetValue("")
		m.status = ""
		return m, m.submitCmd(text)

	case key.Matches(msg, m.keys.Voice):
		if !m.widget.VoiceAvailable() {
			m.status = "voice input unavailable"
			return m, nil
		}
		if m.widget.Listening() {
			return m, nil
		}
		m.status = "listening (" + m.widget.RecognitionLocale() + ")..."
		return m, m.voiceCmd()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submitCmd(text string) tea.Cmd {
	ctx, w := m.ctx, m.widget
	return func() tea.Msg {
		w.Submit(ctx, text)
		return nil
	}
}

func (m Model) voiceCmd() tea.Cmd {
	ctx, w := m.ctx, m.widget
	return func() tea.Msg {
		return voiceDoneMsg{submitted: w.StartVoice(ctx)}
	}
}

func (m *Model) resize() {
	frame := m.styles.Frame.GetHorizontalFrameSize()
	width := m.width - frame
	if width < 20 {
		width = 20
	}
	// Title, subtitle, input, status, help and the frame borders.
	height := m.height - 7
	if height < 3 {
		height = 3
	}
	m.viewport.Width = width
	m.viewport.Height = height
	m.input.Width = width - 4
	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()
}

func (m Model) renderHistory() string {
	if len(m.turns) == 0 {
		return m.styles.Help.Render("Say hello in English, Hindi, Malayalam, Telugu, Kannada or Tamil.")
	}

	wrap := lipgloss.NewStyle().Width(m.viewport.Width)
	lines := make([]string, 0, len(m.turns))
	for _, turn := range m.turns {
		label := m.styles.Bot.Render(botLabel + ":")
		if turn.IsUser() {
			label = m.styles.User.Render(youLabel + ":")
		}
		lines = append(lines, wrap.Render(label+" "+turn.Text))
	}
	return strings.Join(lines, "\n")
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("  ")
	b.WriteString(m.styles.Online.Render("● Online"))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render(subtitle))
	b.WriteString("\n")
	b.WriteString(m.styles.Frame.Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.styles.Status.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(strings.Join([]string{
		m.keys.Submit.Help().Key + " " + m.keys.Submit.Help().Desc,
		m.keys.Voice.Help().Key + " " + m.keys.Voice.Help().Desc,
		m.keys.Quit.Help().Key + " " + m.keys.Quit.Help().Desc,
	}, " • ")))

	return b.String()
}
