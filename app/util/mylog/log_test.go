package mylog

import (
	"context"
	"log/slog"
	"testing"

	"github.com/GQAdonis/goal-app/app/config"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelDebug,
		"weird": slog.LevelDebug,
	}

	for name, want := range cases {
		if got := ParseLevel(name); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestInitRespectsConfiguredLevel(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(previous)
	})

	cfg := &config.Config{}
	cfg.Log.Level = "warn"

	if err := Init(cfg); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	handler := slog.Default().Handler()
	if handler.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatalf("info must be suppressed at warn level")
	}
	if !handler.Enabled(context.Background(), slog.LevelWarn) {
		t.Fatalf("warn must pass at warn level")
	}
}
