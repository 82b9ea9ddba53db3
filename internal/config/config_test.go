package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "RASA_URL", "REACT_APP_RASA_URL", "RASA_TIMEOUT",
		"SPEECH_RECOGNITION_LOCALE", "SPEECH_TTS_COMMAND", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Fatalf("unexpected addr %s", cfg.Server.Addr)
	}
	if cfg.Backend.URL != "http://localhost:5005/webhooks/rest/webhook" {
		t.Fatalf("unexpected backend url %s", cfg.Backend.URL)
	}
	if cfg.Backend.Timeout != 0 {
		t.Fatalf("expected no timeout override, got %s", cfg.Backend.Timeout)
	}
	if cfg.Speech.RecognitionLocale != "en-IN" {
		t.Fatalf("unexpected recognition locale %s", cfg.Speech.RecognitionLocale)
	}
	if cfg.Speech.TTSCommand != "espeak-ng" {
		t.Fatalf("unexpected tts command %s", cfg.Speech.TTSCommand)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "console" {
		t.Fatalf("unexpected log config %+v", cfg.Log)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "127.0.0.1:9000")
	t.Setenv("RASA_URL", "http://rasa:5005/webhooks/rest/webhook")
	t.Setenv("RASA_TIMEOUT", "15")
	t.Setenv("SPEECH_RECOGNITION_LOCALE", "hi-in")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}

	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Fatalf("unexpected addr %s", cfg.Server.Addr)
	}
	if cfg.Backend.URL != "http://rasa:5005/webhooks/rest/webhook" {
		t.Fatalf("unexpected backend url %s", cfg.Backend.URL)
	}
	if cfg.Backend.Timeout != 15*time.Second {
		t.Fatalf("unexpected timeout %s", cfg.Backend.Timeout)
	}
	if cfg.Speech.RecognitionLocale != "hi-IN" {
		t.Fatalf("unexpected recognition locale %s", cfg.Speech.RecognitionLocale)
	}
}

func TestLoadLegacyBackendURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("REACT_APP_RASA_URL", "http://legacy:5005/webhooks/rest/webhook")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Backend.URL != "http://legacy:5005/webhooks/rest/webhook" {
		t.Fatalf("unexpected backend url %s", cfg.Backend.URL)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		key   string
		value string
	}{
		{key: "PORT", value: "80 80"},
		{key: "RASA_TIMEOUT", value: "soon"},
		{key: "RASA_TIMEOUT", value: "-1"},
	}

	for _, tc := range cases {
		clearEnv(t)
		t.Setenv(tc.key, tc.value)
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for %s=%q", tc.key, tc.value)
		}
	}
}
