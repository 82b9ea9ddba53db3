// Package widget implements the chat widget's orchestration loop: it turns
// typed or spoken input into backend exchanges, fans replies into the message
// store and speaks them in the reply's language.
package widget

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/acadassist/widget/internal/metrics"
	"github.com/acadassist/widget/internal/model/chat"
	speechmodel "github.com/acadassist/widget/internal/model/speech"
	chatservice "github.com/acadassist/widget/internal/service/chat"
	"github.com/acadassist/widget/internal/service/speech"
	"github.com/acadassist/widget/internal/service/transport"
)

// Dependencies are the collaborators a Widget orchestrates.
type Dependencies struct {
	Transport transport.Transport
	Input     *speech.Input
	Output    *speech.Output
	Store     *chatservice.Store
	// SenderID identifies the conversation to the backend. A random UUID is
	// used when empty.
	SenderID string
}

// Widget owns one conversation: its history, typed-input buffer and
// recognition state.
type Widget struct {
	transport transport.Transport
	input     *speech.Input
	output    *speech.Output
	store     *chatservice.Store
	senderID  string
	logger    zerolog.Logger

	mu        sync.Mutex
	buffer    string
	listeners []func(string)
}

// New wires a widget. Missing speech adapters behave as an unavailable
// platform and a missing store is created empty.
func New(deps Dependencies, logger zerolog.Logger) *Widget {
	if deps.Store == nil {
		deps.Store = chatservice.NewStore()
	}
	if deps.Input == nil {
		deps.Input = speech.NewInput(nil, "", logger)
	}
	if deps.Output == nil {
		deps.Output = speech.NewOutput(nil, logger)
	}
	if deps.SenderID == "" {
		deps.SenderID = uuid.NewString()
	}

	return &Widget{
		transport: deps.Transport,
		input:     deps.Input,
		output:    deps.Output,
		store:     deps.Store,
		senderID:  deps.SenderID,
		logger:    logger.With().Str("component", "widget").Str("sender", deps.SenderID).Logger(),
	}
}

// Store returns the widget's message history.
func (w *Widget) Store() *chatservice.Store {
	return w.store
}

// SenderID returns the identifier sent to the backend.
func (w *Widget) SenderID() string {
	return w.senderID
}

// RecognitionLocale returns the locale the next voice session will use.
func (w *Widget) RecognitionLocale() string {
	return w.input.Locale()
}

// VoiceAvailable reports whether start-voice-input can do anything.
func (w *Widget) VoiceAvailable() bool {
	return w.input.Available()
}

// Listening reports whether a voice session is in progress.
func (w *Widget) Listening() bool {
	return w.input.State() == speechmodel.RecognitionListening
}

// Input returns the typed-input buffer.
func (w *Widget) Input() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buffer
}

// SetInput replaces the typed-input buffer.
func (w *Widget) SetInput(text string) {
	w.mu.Lock()
	changed := w.buffer != text
	w.buffer = text
	listeners := slices.Clone(w.listeners)
	w.mu.Unlock()

	if !changed {
		return
	}
	for _, fn := range listeners {
		fn(text)
	}
}

// OnInputChange registers fn to be called whenever the buffer changes.
func (w *Widget) OnInputChange(fn func(string)) {
	w.mu.Lock()
	w.listeners = append(w.listeners, fn)
	w.mu.Unlock()
}

// SubmitTyped submits the typed-input buffer.
func (w *Widget) SubmitTyped(ctx context.Context) bool {
	return w.submit(ctx, w.Input(), metrics.SourceTyped)
}

// Submit runs one exchange for text. Empty or whitespace-only text is
// rejected and leaves the history unchanged. It blocks until the backend
// replies; concurrent calls are independent exchanges whose replies may land
// in any order.
func (w *Widget) Submit(ctx context.Context, text string) bool {
	return w.submit(ctx, text, metrics.SourceTyped)
}

// StartVoice runs one recognition session and submits the transcript. It
// returns false if voice input is unavailable, already listening, failed, or
// heard nothing.
func (w *Widget) StartVoice(ctx context.Context) bool {
	task := w.input.Start(ctx)
	if task == nil {
		return false
	}

	transcript, err := task.Wait(ctx)
	if err != nil {
		return false
	}
	if strings.TrimSpace(transcript) == "" {
		return false
	}

	w.SetInput(transcript)
	return w.submit(ctx, transcript, metrics.SourceSpoken)
}

func (w *Widget) submit(ctx context.Context, text, source string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}

	w.store.Append(chat.NewTurn(chat.SenderUser, text))
	w.SetInput("")
	metrics.Exchanges.WithLabelValues(source).Inc()

	if w.transport == nil {
		w.logger.Error().Msg("no transport configured")
		return true
	}

	replies, err := w.transport.Send(ctx, text, w.senderID)
	if err != nil {
		w.logger.Error().Err(err).Msg("transport error, no replies appended")
		return true
	}

	batch := make([]chat.Turn, 0, len(replies))
	for _, reply := range replies {
		botText := reply.DisplayText()
		locale := speechmodel.LocaleFor(reply.Language)

		w.output.Speak(botText, locale)

		if w.input.Locale() != locale {
			w.input.SetLocale(locale)
		}

		batch = append(batch, chat.NewTurn(chat.SenderBot, botText))
	}

	w.store.Append(batch...)
	metrics.BotTurns.Add(float64(len(batch)))

	w.logger.Debug().Int("replies", len(batch)).Str("locale", w.input.Locale()).Msg("exchange complete")
	return true
}
