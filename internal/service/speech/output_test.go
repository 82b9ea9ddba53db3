package speech

import (
	"context"
	"reflect"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

type recordingSynth struct {
	available bool
	calls     []utterance
}

func (s *recordingSynth) Available() bool { return s.available }

func (s *recordingSynth) Enqueue(text, locale string) {
	s.calls = append(s.calls, utterance{text: text, locale: locale})
}

func TestOutputDefaultsLocale(t *testing.T) {
	synth := &recordingSynth{available: true}
	out := NewOutput(synth, zerolog.Nop())

	out.Speak("Hello", "")
	out.Speak("Namaste", "hi-IN")

	want := []utterance{{text: "Hello", locale: "en-IN"}, {text: "Namaste", locale: "hi-IN"}}
	if !reflect.DeepEqual(synth.calls, want) {
		t.Fatalf("unexpected utterances: %+v", synth.calls)
	}
}

func TestOutputSkipsBlankText(t *testing.T) {
	synth := &recordingSynth{available: true}
	out := NewOutput(synth, zerolog.Nop())

	for _, text := range []string{"", "   ", "\n\t"} {
		out.Speak(text, "hi-IN")
	}
	out.Speak(" ok ", "hi-IN")

	want := []utterance{{text: " ok ", locale: "hi-IN"}}
	if !reflect.DeepEqual(synth.calls, want) {
		t.Fatalf("unexpected utterances: %+v", synth.calls)
	}
}

func TestOutputUnavailableIsNoop(t *testing.T) {
	synth := &recordingSynth{available: false}
	out := NewOutput(synth, zerolog.Nop())

	out.Speak("Hello", "en-IN")

	if len(synth.calls) != 0 {
		t.Fatalf("expected no utterances, got %+v", synth.calls)
	}
	if NewOutput(nil, zerolog.Nop()).Available() {
		t.Fatal("nil synthesizer must be unavailable")
	}
}

func TestCommandSynthesizerPlaysInOrder(t *testing.T) {
	var mu sync.Mutex
	var got [][]string
	run := func(_ context.Context, name string, args ...string) error {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, append([]string{name}, args...))
		return nil
	}

	synth := newCommandSynthesizer("/usr/bin/espeak-ng", []string{"-s", "150"}, run, zerolog.Nop())
	synth.Enqueue("Hi", "en-IN")
	synth.Enqueue("Vanakkam", "ta-IN")
	synth.Close()

	want := [][]string{
		{"/usr/bin/espeak-ng", "-s", "150", "-v", "en", "Hi"},
		{"/usr/bin/espeak-ng", "-s", "150", "-v", "ta", "Vanakkam"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected invocations: %v", got)
	}

	// Enqueue after Close is dropped rather than panicking.
	synth.Enqueue("late", "en-IN")
}

func TestCommandSynthesizerMissingCommand(t *testing.T) {
	synth := NewCommandSynthesizer("definitely-not-a-tts-binary-xyz", zerolog.Nop())
	if synth.Available() {
		t.Fatal("expected unavailable synthesizer")
	}
	synth.Enqueue("Hi", "en-IN")
	synth.Close()
}
