package config

import "time"

// Config holds the full runtime configuration for the garden bot.
type Config struct {
	AppEnv    string          `mapstructure:"-"`
	Bot       BotConfig       `mapstructure:"bot" validate:"required"`
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Sentry    SentryConfig    `mapstructure:"sentry"`
	Garden    GardenConfig    `mapstructure:"garden"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// BotConfig configures the Telegram front.
type BotConfig struct {
	Token    string        `mapstructure:"token" validate:"required"`
	Mode     string        `mapstructure:"mode" validate:"omitempty,oneof=polling webhook"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Language string        `mapstructure:"language"`
}

// ServerConfig configures the ops HTTP server (metrics and health probes).
type ServerConfig struct {
	Port            string        `mapstructure:"port" validate:"required"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig configures slog output and file rotation.
type LoggingConfig struct {
	Level      string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// SentryConfig configures error reporting.
type SentryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	DSN         string `mapstructure:"dsn" validate:"required_if=Enabled true"`
	Environment string `mapstructure:"environment"`
}

// GardenConfig configures engine behavior.
type GardenConfig struct {
	// Timezone is the IANA zone defining the calendar-date boundary for
	// check-ins. Empty means UTC.
	Timezone string `mapstructure:"timezone"`
	// SeedDemo controls whether the demo habits, friends and posts are
	// loaded at startup alongside the fixed user roster.
	SeedDemo bool `mapstructure:"seed_demo"`
}

// RateLimitRule is one limit/window pair.
type RateLimitRule struct {
	Limit  int    `mapstructure:"limit"`
	Window string `mapstructure:"window"`
}

// RateLimitCommands holds per-command overrides.
type RateLimitCommands struct {
	CheckIn   RateLimitRule `mapstructure:"checkin"`
	Post      RateLimitRule `mapstructure:"post"`
	AddFriend RateLimitRule `mapstructure:"addfriend"`
}

// RateLimitConfig configures update throttling for the bot.
type RateLimitConfig struct {
	Global    RateLimitRule     `mapstructure:"global"`
	PerUser   RateLimitRule     `mapstructure:"per_user"`
	Commands  RateLimitCommands `mapstructure:"commands"`
	Whitelist []int64           `mapstructure:"whitelist"`
}
