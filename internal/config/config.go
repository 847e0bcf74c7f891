// Package config loads bot configuration from environment variables,
// layered over built-in defaults. A .env file in the working directory is
// read first so local runs don't need exported variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	BotToken            string `koanf:"bot_token"`
	BotUsername         string `koanf:"bot_username"`
	DatabaseURL         string `koanf:"database_url"`
	ChannelLink         string `koanf:"channel_link"`
	GroupLink           string `koanf:"group_link"`
	AutoDeleteSec       int    `koanf:"auto_delete_sec"`
	SimilarityThreshold int    `koanf:"similarity_threshold"`
	AdminChatID         int64  `koanf:"admin_chat_id"`
	Port                int    `koanf:"port"`
	UseWebhook          bool   `koanf:"use_webhook"`
	LogLevel            string `koanf:"log_level"`
}

func defaultConfig() Config {
	return Config{
		BotUsername:         "urmoviebot",
		AutoDeleteSec:       60,
		SimilarityThreshold: 60,
		Port:                8080,
		LogLevel:            "info",
	}
}

// Load reads configuration with precedence ENV > .env file > defaults.
func Load() (*Config, error) {
	_ = loadDotEnv(".env")

	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}
	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the required keys.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BotToken) == "" {
		return errors.New("BOT_TOKEN is required")
	}
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.AutoDeleteSec <= 0 {
		c.AutoDeleteSec = 60
	}
	if c.SimilarityThreshold <= 0 || c.SimilarityThreshold > 100 {
		c.SimilarityThreshold = 60
	}
	return nil
}
