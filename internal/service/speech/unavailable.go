package speech

import "context"

// Unavailable is the platform without speech capabilities. Voice input and
// speech output are treated as disabled features rather than errors.
type Unavailable struct{}

var (
	_ Recognizer  = Unavailable{}
	_ Synthesizer = Unavailable{}
)

// Available always reports false.
func (Unavailable) Available() bool { return false }

// Recognize always fails with ErrRecognitionUnavailable.
func (Unavailable) Recognize(context.Context, string) (string, error) {
	return "", ErrRecognitionUnavailable
}

// Enqueue drops the utterance.
func (Unavailable) Enqueue(string, string) {}
