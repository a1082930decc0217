package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log    Log    `yaml:"log"`
	Server Server `yaml:"server"`
	Claude Claude `yaml:"claude"`
}

type Server struct {
	// Address the turn endpoint listens on
	Listen string `yaml:"listen" example:":8080"`
}

type Claude struct {
	// Anthropic-compatible base url, empty for the default API endpoint
	BaseURL string `yaml:"base_url" example:"https://api.anthropic.com"`
	// API token
	Token string `yaml:"token" example:"sk-ant-REDACTED" validate:"required"`
	// Model identifier
	Model string `yaml:"model" example:"claude-3-sonnet-20240229"`
	// Max output tokens per completion
	MaxTokens int `yaml:"max_tokens" example:"4096"`
	// Completion call timeout in seconds
	TimeoutSeconds int `yaml:"timeout_seconds" example:"45"`
}

type Log struct {
	// Minimum log level: debug, info, warn or error
	Level string `yaml:"level" example:"info" validate:"omitempty,oneof=debug info warn error"`
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

func Load() (*Config, error) {
	var result Config

	data, err := os.ReadFile("config.yaml")
	if err != nil {
		return nil, oops.Errorf("failed to read config file: %w", err)
	}

	if err = yaml.Unmarshal(data, &result); err != nil {
		return nil, oops.Errorf("failed to parse YAML config: %w", err)
	}

	if result.Log.Level == "" {
		result.Log.Level = "debug"
	}
	if result.Server.Listen == "" {
		result.Server.Listen = ":8080"
	}
	if result.Claude.Model == "" {
		result.Claude.Model = "claude-3-sonnet-20240229"
	}
	if result.Claude.MaxTokens == 0 {
		result.Claude.MaxTokens = 4096
	}
	if result.Claude.TimeoutSeconds == 0 {
		result.Claude.TimeoutSeconds = 45
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}
