package tui

import (
	"context"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/acadassist/widget/internal/model/chat"
	"github.com/acadassist/widget/internal/service/speech"
	widgetservice "github.com/acadassist/widget/internal/service/widget"
)

type replyTransport struct {
	replies []chat.Envelope
}

func (r replyTransport) Send(context.Context, string, string) ([]chat.Envelope, error) {
	return r.replies, nil
}

type scriptedRecognizer struct{ transcript string }

func (scriptedRecognizer) Available() bool { return true }

func (s scriptedRecognizer) Recognize(context.Context, string) (string, error) {
	return s.transcript, nil
}

type sink struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (s *sink) send(msg tea.Msg) {
	s.mu.Lock()
	s.msgs = append(s.msgs, msg)
	s.mu.Unlock()
}

func newWidget(rec speech.Recognizer, replies ...chat.Envelope) *widgetservice.Widget {
	return widgetservice.New(widgetservice.Dependencies{
		Transport: replyTransport{replies: replies},
		Input:     speech.NewInput(rec, "", zerolog.Nop()),
	}, zerolog.Nop())
}

func typeText(m Model, text string) Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return next.(Model)
}

func TestSubmitRunsExchange(t *testing.T) {
	w := newWidget(nil, chat.Envelope{Text: "hello back"})
	s := &sink{}
	detach := Attach(w, s.send)
	defer detach()

	m := NewModel(context.Background(), w)
	m = typeText(m, "hello")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if m.input.Value() != "" {
		t.Fatalf("expected input cleared, got %q", m.input.Value())
	}
	if cmd == nil {
		t.Fatalf("expected submit command")
	}
	cmd()

	turns := w.Store().Turns()
	if len(turns) != 2 || turns[0].Text != "hello" || turns[1].Text != "hello back" {
		t.Fatalf("unexpected history %+v", turns)
	}

	var last HistoryMsg
	s.mu.Lock()
	for _, msg := range s.msgs {
		if h, ok := msg.(HistoryMsg); ok {
			last = h
		}
	}
	s.mu.Unlock()

	next, _ = m.Update(last)
	m = next.(Model)
	view := m.View()
	if !strings.Contains(view, "hello back") || !strings.Contains(view, "You:") {
		t.Fatalf("view missing history:\n%s", view)
	}
}

func TestBlankSubmitDoesNothing(t *testing.T) {
	w := newWidget(nil)
	m := NewModel(context.Background(), w)
	m = typeText(m, "   ")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatalf("blank input must not submit")
	}
	if w.Store().Len() != 0 {
		t.Fatalf("history must stay empty")
	}
}

func TestVoiceUnavailable(t *testing.T) {
	m := NewModel(context.Background(), newWidget(nil))

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m = next.(Model)
	if cmd != nil {
		t.Fatalf("unexpected voice command")
	}
	if !strings.Contains(m.View(), "voice input unavailable") {
		t.Fatalf("expected unavailable status")
	}
}

func TestVoiceSubmitsTranscript(t *testing.T) {
	w := newWidget(scriptedRecognizer{transcript: "नमस्ते"}, chat.Envelope{Text: "ok", Language: "hi"})
	m := NewModel(context.Background(), w)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if cmd == nil {
		t.Fatalf("expected voice command")
	}
	msg := cmd()
	done, ok := msg.(voiceDoneMsg)
	if !ok || !done.submitted {
		t.Fatalf("expected submitted voice session, got %#v", msg)
	}
	if w.Store().Len() != 2 {
		t.Fatalf("expected user and bot turns, got %d", w.Store().Len())
	}
	if w.RecognitionLocale() != "hi-IN" {
		t.Fatalf("expected recognition locale hi-IN, got %s", w.RecognitionLocale())
	}
}

func TestInputMsgUpdatesField(t *testing.T) {
	m := NewModel(context.Background(), newWidget(nil))
	next, _ := m.Update(InputMsg{Text: "transcript"})
	if got := next.(Model).input.Value(); got != "transcript" {
		t.Fatalf("expected transcript in input, got %q", got)
	}
}

func TestQuitKeys(t *testing.T) {
	m := NewModel(context.Background(), newWidget(nil))
	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		_, cmd := m.Update(tea.KeyMsg{Type: k})
		if cmd == nil {
			t.Fatalf("expected quit command for %v", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("expected QuitMsg for %v", k)
		}
	}
}
