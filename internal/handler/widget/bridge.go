package widget

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

var errRecognitionBusy = errors.New("recognition already pending")

type recognitionResult struct {
	text string
	err  error
}

// browserBridge forwards speech requests to the connected browser. The
// browser owns the actual recognition and synthesis engines; capabilities
// are unknown until it says hello.
type browserBridge struct {
	send func(msgType string, data interface{}) error

	recognition atomic.Bool
	synthesis   atomic.Bool

	mu      sync.Mutex
	pending chan recognitionResult
}

func newBrowserBridge(send func(string, interface{}) error) *browserBridge {
	return &browserBridge{send: send}
}

func (b *browserBridge) setCapabilities(hello HelloMessage) {
	b.recognition.Store(hello.SpeechRecognition)
	b.synthesis.Store(hello.SpeechSynthesis)
}

// resolve completes the pending recognition session, if any. Late results
// for an abandoned session are dropped.
func (b *browserBridge) resolve(text string, err error) bool {
	b.mu.Lock()
	ch := b.pending
	b.pending = nil
	b.mu.Unlock()

	if ch == nil {
		return false
	}
	ch <- recognitionResult{text: text, err: err}
	return true
}

func (b *browserBridge) recognize(ctx context.Context, locale string) (string, error) {
	ch := make(chan recognitionResult, 1)

	b.mu.Lock()
	if b.pending != nil {
		b.mu.Unlock()
		return "", errRecognitionBusy
	}
	b.pending = ch
	b.mu.Unlock()

	if err := b.send(msgListen, listenData{Locale: locale}); err != nil {
		b.clear(ch)
		return "", err
	}

	select {
	case res := <-ch:
		return res.text, res.err
	case <-ctx.Done():
		b.clear(ch)
		return "", ctx.Err()
	}
}

func (b *browserBridge) clear(ch chan recognitionResult) {
	b.mu.Lock()
	if b.pending == ch {
		b.pending = nil
	}
	b.mu.Unlock()
}

// recognizer adapts the bridge to speech.Recognizer.
type recognizer struct{ bridge *browserBridge }

func (r recognizer) Available() bool { return r.bridge.recognition.Load() }

func (r recognizer) Recognize(ctx context.Context, locale string) (string, error) {
	return r.bridge.recognize(ctx, locale)
}

// synthesizer adapts the bridge to speech.Synthesizer. The browser queues
// utterances itself, so Enqueue only forwards.
type synthesizer struct{ bridge *browserBridge }

func (s synthesizer) Available() bool { return s.bridge.synthesis.Load() }

func (s synthesizer) Enqueue(text, locale string) {
	_ = s.bridge.send(msgSpeak, speakData{Text: text, Locale: locale})
}
