// Command mockrasa serves a Rasa-compatible REST webhook that echoes each
// message with its detected language, for running the widget without Rasa.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/acadassist/widget/internal/handler"
	"github.com/acadassist/widget/internal/handler/webhook"
	"github.com/acadassist/widget/internal/logging"
	"github.com/acadassist/widget/internal/server"
)

func main() {
	_ = godotenv.Load()

	addr := pflag.StringP("addr", "a", ":5005", "listen address")
	prefix := pflag.Bool("prefix", false, "prefix replies with the detected language code")
	logLevel := pflag.String("log-level", os.Getenv("LOG_LEVEL"), "log level (default info)")
	pflag.Parse()

	logger := logging.New(logging.Options{Level: *logLevel})

	var reply webhook.Replier
	if *prefix {
		reply = func(message, lang string) string {
			return fmt.Sprintf("[%s] %s", lang, message)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(*addr, handler.NewMockBackendRouter(reply, logger))
	logger.Info().Str("addr", *addr).Str("path", webhook.Path).Msg("mock backend listening")
	if err := server.Run(ctx, srv); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}
