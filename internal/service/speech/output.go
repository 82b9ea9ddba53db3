package speech

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/acadassist/widget/internal/metrics"
	speechmodel "github.com/acadassist/widget/internal/model/speech"
)

// Synthesizer is a platform text-to-speech capability. Enqueue must not block
// on playback; consecutive utterances play in enqueue order.
type Synthesizer interface {
	Available() bool
	Enqueue(text, locale string)
}

// Output speaks bot replies through a Synthesizer. It is fire-and-forget:
// there is no completion signal and no cancellation.
type Output struct {
	synth  Synthesizer
	logger zerolog.Logger
}

// NewOutput wraps synth; a nil synth behaves as an unavailable platform.
func NewOutput(synth Synthesizer, logger zerolog.Logger) *Output {
	if synth == nil {
		synth = Unavailable{}
	}
	return &Output{
		synth:  synth,
		logger: logger.With().Str("component", "speech-output").Logger(),
	}
}

// Available reports whether speech synthesis is enabled.
func (o *Output) Available() bool {
	return o.synth.Available()
}

// Speak enqueues one utterance. An empty locale means en-IN.
func (o *Output) Speak(text, locale string) {
	if !o.synth.Available() || strings.TrimSpace(text) == "" {
		return
	}
	if strings.TrimSpace(locale) == "" {
		locale = speechmodel.DefaultLocale
	}

	o.synth.Enqueue(text, locale)
	metrics.Utterances.WithLabelValues(locale).Inc()
	o.logger.Debug().Str("locale", locale).Int("chars", len(text)).Msg("utterance enqueued")
}
