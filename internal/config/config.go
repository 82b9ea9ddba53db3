package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	speechmodel "github.com/acadassist/widget/internal/model/speech"
	"github.com/acadassist/widget/internal/service/speech"
	"github.com/acadassist/widget/internal/service/transport"
)

// Config aggregates the service configuration.
type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Speech  SpeechConfig
	Log     LogConfig
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	backend, err := loadBackendConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:  server,
		Backend: backend,
		Speech:  loadSpeechConfig(),
		Log:     loadLogConfig(),
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" as-is.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// BackendConfig describes the dialogue backend webhook.
type BackendConfig struct {
	URL string
	// Timeout of zero keeps the HTTP client default.
	Timeout time.Duration
}

func loadBackendConfig() (BackendConfig, error) {
	url := getEnvOrDefault("RASA_URL", getEnvOrDefault("REACT_APP_RASA_URL", transport.DefaultEndpoint))

	timeout, err := parseOptionalIntEnv("RASA_TIMEOUT")
	if err != nil {
		return BackendConfig{}, err
	}

	cfg := BackendConfig{URL: url}
	if timeout != nil {
		if *timeout < 0 {
			return BackendConfig{}, fmt.Errorf("invalid RASA_TIMEOUT value %d: must not be negative", *timeout)
		}
		cfg.Timeout = time.Duration(*timeout) * time.Second
	}
	return cfg, nil
}

// SpeechConfig describes speech defaults.
type SpeechConfig struct {
	// RecognitionLocale is the locale of the first voice session.
	RecognitionLocale string
	// TTSCommand is the local synthesizer used by the terminal widget.
	TTSCommand string
}

func loadSpeechConfig() SpeechConfig {
	return SpeechConfig{
		RecognitionLocale: speechmodel.CanonicalLocale(getEnvOrDefault("SPEECH_RECOGNITION_LOCALE", speechmodel.DefaultLocale)),
		TTSCommand:        getEnvOrDefault("SPEECH_TTS_COMMAND", speech.DefaultTTSCommand),
	}
}

// LogConfig selects log level and format.
type LogConfig struct {
	Level  string
	Format string
}

func loadLogConfig() LogConfig {
	return LogConfig{
		Level:  getEnvOrDefault("LOG_LEVEL", "info"),
		Format: getEnvOrDefault("LOG_FORMAT", "console"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
