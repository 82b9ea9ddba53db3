// Command widgetcli runs the chat widget in a terminal, speaking replies
// through a local TTS command when one is installed.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/acadassist/widget/internal/config"
	"github.com/acadassist/widget/internal/logging"
	"github.com/acadassist/widget/internal/service/speech"
	"github.com/acadassist/widget/internal/service/transport"
	widgetservice "github.com/acadassist/widget/internal/service/widget"
	"github.com/acadassist/widget/internal/shell/tui"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	url := pflag.StringP("url", "u", cfg.Backend.URL, "Rasa REST webhook URL")
	timeout := pflag.Duration("timeout", cfg.Backend.Timeout, "backend request timeout (0 for none)")
	locale := pflag.StringP("locale", "l", cfg.Speech.RecognitionLocale, "initial recognition locale")
	tts := pflag.String("tts", cfg.Speech.TTSCommand, "speech synthesis command, empty to mute")
	logFile := pflag.String("log-file", "", "write logs to this file instead of discarding them")
	pflag.Parse()

	var logOut io.Writer = io.Discard
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal().Err(err).Str("path", *logFile).Msg("failed to open log file")
		}
		defer f.Close()
		logOut = f
	}
	logger := logging.NewWithWriter(logOut, logging.Options{Level: cfg.Log.Level, Format: "json"})

	var synth speech.Synthesizer = speech.Unavailable{}
	if *tts != "" {
		cmdSynth := speech.NewCommandSynthesizer(*tts, logger)
		defer cmdSynth.Close()
		synth = cmdSynth
	}

	w := widgetservice.New(widgetservice.Dependencies{
		Transport: transport.NewClient(transport.Options{Endpoint: *url, Timeout: *timeout}, logger),
		Input:     speech.NewInput(nil, *locale, logger),
		Output:    speech.NewOutput(synth, logger),
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	if err := tui.Run(ctx, w); err != nil {
		logger.Error().Err(err).Msg("terminal widget failed")
		os.Exit(1)
	}
	logger.Info().Int("turns", w.Store().Len()).Dur("elapsed", time.Since(start)).Msg("terminal widget closed")
}
