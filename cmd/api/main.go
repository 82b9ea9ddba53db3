package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/acadassist/widget/internal/config"
	"github.com/acadassist/widget/internal/handler"
	"github.com/acadassist/widget/internal/logging"
	"github.com/acadassist/widget/internal/server"
	"github.com/acadassist/widget/internal/service/transport"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if envErr != nil {
		logger.Warn().Err(envErr).Msg("no .env file, continuing with system environment variables only")
	}

	client := transport.NewClient(transport.Options{
		Endpoint: cfg.Backend.URL,
		Timeout:  cfg.Backend.Timeout,
	}, logger)

	router := handler.NewRouter(client, handler.RouterOptions{
		Endpoint:          client.Endpoint(),
		RecognitionLocale: cfg.Speech.RecognitionLocale,
	}, logger)

	srv := server.New(cfg.Server.Addr, router)
	logger.Info().Str("addr", srv.Addr).Str("backend", client.Endpoint()).Msg("AcadAssist widget listening")
	if err := server.Run(ctx, srv); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}
