package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("failed to restore working directory: %v", err)
		}
	})
}

func TestLoadDefaults(t *testing.T) {
	writeConfig(t, "claude:\n  token: sk-test\n")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Log.Level != "debug" {
		t.Fatalf("unexpected default log level: %q", cfg.Log.Level)
	}
	if cfg.Server.Listen != ":8080" {
		t.Fatalf("unexpected default listen: %q", cfg.Server.Listen)
	}
	if cfg.Claude.Model != "claude-3-sonnet-20240229" || cfg.Claude.MaxTokens != 4096 || cfg.Claude.TimeoutSeconds != 45 {
		t.Fatalf("unexpected claude defaults: %+v", cfg.Claude)
	}
}

func TestLoadExplicitLevel(t *testing.T) {
	writeConfig(t, "log:\n  level: warn\nclaude:\n  token: sk-test\n")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("configured level lost: %q", cfg.Log.Level)
	}
}

func TestLoadRejectsUnknownLevel(t *testing.T) {
	writeConfig(t, "log:\n  level: loud\nclaude:\n  token: sk-test\n")

	if _, err := Load(); err == nil {
		t.Fatalf("expected validation error for unknown level")
	}
}

func TestLoadRequiresToken(t *testing.T) {
	writeConfig(t, "server:\n  listen: :9090\n")

	if _, err := Load(); err == nil {
		t.Fatalf("expected validation error for missing token")
	}
}
