package speech

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	speechmodel "github.com/acadassist/widget/internal/model/speech"
)

// ErrRecognitionUnavailable is returned by recognizers without platform support.
var ErrRecognitionUnavailable = errors.New("speech recognition unavailable")

// Recognizer is a platform speech-to-text capability.
type Recognizer interface {
	// Available reports whether the platform can recognize speech.
	Available() bool
	// Recognize runs one single-shot session and returns the transcript.
	Recognize(ctx context.Context, locale string) (string, error)
}

// Task is one in-flight recognition session. It resolves exactly once.
type Task struct {
	done   chan struct{}
	text   string
	err    error
	locale string
}

// Done is closed when the session has produced a transcript or failed.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Locale is the locale the session was started with.
func (t *Task) Locale() string {
	return t.locale
}

// Wait blocks until the session resolves or ctx ends.
func (t *Task) Wait(ctx context.Context) (string, error) {
	select {
	case <-t.done:
		return t.text, t.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Input wraps a Recognizer with single-shot session state. The locale may be
// changed at any time and applies to the next Start.
type Input struct {
	recognizer Recognizer
	logger     zerolog.Logger

	mu     sync.Mutex
	state  speechmodel.RecognitionState
	locale string
}

// NewInput creates an idle input adapter. An empty locale means the default.
func NewInput(recognizer Recognizer, locale string, logger zerolog.Logger) *Input {
	if recognizer == nil {
		recognizer = Unavailable{}
	}
	locale = speechmodel.CanonicalLocale(locale)
	if locale == "" {
		locale = speechmodel.DefaultLocale
	}
	return &Input{
		recognizer: recognizer,
		logger:     logger.With().Str("component", "speech-input").Logger(),
		state:      speechmodel.RecognitionIdle,
		locale:     locale,
	}
}

// Available reports whether voice input can be started at all.
func (i *Input) Available() bool {
	return i.recognizer.Available()
}

// Locale returns the locale used by the next session.
func (i *Input) Locale() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.locale
}

// SetLocale changes the locale for the next session.
func (i *Input) SetLocale(locale string) {
	locale = speechmodel.CanonicalLocale(locale)
	if locale == "" {
		return
	}
	i.mu.Lock()
	i.locale = locale
	i.mu.Unlock()
}

// State returns the current session state.
func (i *Input) State() speechmodel.RecognitionState {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

// Start begins a single-shot recognition session. It returns nil when the
// platform has no recognizer or a session is already listening.
func (i *Input) Start(ctx context.Context) *Task {
	if !i.recognizer.Available() {
		return nil
	}

	i.mu.Lock()
	if i.state == speechmodel.RecognitionListening {
		i.mu.Unlock()
		i.logger.Warn().Msg("could not start voice recognition: session already active")
		return nil
	}
	i.state = speechmodel.RecognitionListening
	task := &Task{done: make(chan struct{}), locale: i.locale}
	i.mu.Unlock()

	i.logger.Debug().Str("locale", task.locale).Msg("listening")

	go func() {
		text, err := i.recognizer.Recognize(ctx, task.locale)

		i.mu.Lock()
		i.state = speechmodel.RecognitionIdle
		i.mu.Unlock()

		if err != nil {
			i.logger.Error().Err(err).Str("locale", task.locale).Msg("speech recognition error")
		}
		task.text, task.err = text, err
		close(task.done)
	}()

	return task
}
