package speech

import (
	"context"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	speechmodel "github.com/acadassist/widget/internal/model/speech"
)

// DefaultTTSCommand is the local synthesizer used by the terminal widget.
const DefaultTTSCommand = "espeak-ng"

const (
	commandQueueSize = 32
	commandTimeout   = 2 * time.Minute
)

type utterance struct {
	text   string
	locale string
}

type commandRunner func(ctx context.Context, name string, args ...string) error

func runCommand(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// CommandSynthesizer speaks through a local TTS command such as espeak-ng,
// invoked as "<command> -v <language> <text>". Utterances are played one at a
// time on a single goroutine in enqueue order.
type CommandSynthesizer struct {
	path   string
	args   []string
	run    commandRunner
	logger zerolog.Logger

	mu     sync.Mutex
	queue  chan utterance
	closed bool
	done   chan struct{}
}

var _ Synthesizer = (*CommandSynthesizer)(nil)

// NewCommandSynthesizer resolves command on PATH. When it is missing the
// synthesizer reports itself unavailable.
func NewCommandSynthesizer(command string, logger zerolog.Logger) *CommandSynthesizer {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		fields = []string{DefaultTTSCommand}
	}

	path, err := exec.LookPath(fields[0])
	if err != nil {
		logger.Info().Str("command", fields[0]).Msg("speech synthesis command not found, speech output disabled")
		path = ""
	}
	return newCommandSynthesizer(path, fields[1:], runCommand, logger)
}

func newCommandSynthesizer(path string, args []string, run commandRunner, logger zerolog.Logger) *CommandSynthesizer {
	c := &CommandSynthesizer{
		path:   path,
		args:   args,
		run:    run,
		logger: logger.With().Str("component", "command-tts").Logger(),
		queue:  make(chan utterance, commandQueueSize),
		done:   make(chan struct{}),
	}
	if path == "" {
		close(c.done)
		return c
	}
	go c.loop()
	return c
}

// Available reports whether the command was found.
func (c *CommandSynthesizer) Available() bool {
	return c.path != ""
}

// Enqueue queues an utterance without waiting for playback. When the queue is
// full the utterance is dropped.
func (c *CommandSynthesizer) Enqueue(text, locale string) {
	if !c.Available() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	select {
	case c.queue <- utterance{text: text, locale: locale}:
	default:
		c.logger.Warn().Str("locale", locale).Msg("speech queue full, dropping utterance")
	}
}

// Close stops accepting utterances and waits for queued ones to finish.
func (c *CommandSynthesizer) Close() {
	c.mu.Lock()
	if !c.closed && c.Available() {
		c.closed = true
		close(c.queue)
	}
	c.mu.Unlock()
	<-c.done
}

func (c *CommandSynthesizer) loop() {
	defer close(c.done)

	for u := range c.queue {
		args := append(append([]string(nil), c.args...), "-v", speechmodel.Language(u.locale), u.text)

		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		err := c.run(ctx, c.path, args...)
		cancel()
		if err != nil {
			c.logger.Error().Err(err).Str("locale", u.locale).Msg("speech command failed")
		}
	}
}
