package config

import "time"

// RateLimitConfig bounds how fast one sender may chat.
type RateLimitConfig struct {
	Burst          int           `mapstructure:"burst" yaml:"burst"`
	RefillInterval time.Duration `mapstructure:"refill_interval" yaml:"refill_interval"`
}

// Config holds server configuration values.
type Config struct {
	Addr            string          `mapstructure:"addr" yaml:"addr"`
	WSAddr          string          `mapstructure:"ws_addr" yaml:"ws_addr"`
	MOTD            string          `mapstructure:"motd" yaml:"motd"`
	LogLevel        string          `mapstructure:"log_level" yaml:"log_level"`
	MaxUsers        int             `mapstructure:"max_users" yaml:"max_users"`
	EventBuffer     int             `mapstructure:"event_buffer" yaml:"event_buffer"`
	ShutdownTimeout time.Duration   `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	BannedWords     []string        `mapstructure:"banned_words" yaml:"banned_words"`
	RateLimit       RateLimitConfig `mapstructure:"rate_limit" yaml:"rate_limit"`
}

// Default returns configuration with reasonable starter defaults. The
// WebSocket listener stays disabled until an address is set.
func Default() Config {
	return Config{
		Addr:            "127.0.0.1:8080",
		MOTD:            "Welcome to the telex chat server!",
		LogLevel:        "info",
		MaxUsers:        100,
		EventBuffer:     32,
		ShutdownTimeout: 5 * time.Second,
		RateLimit: RateLimitConfig{
			Burst:          5,
			RefillInterval: time.Second,
		},
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.WSAddr != "" {
		c.WSAddr = other.WSAddr
	}
	if other.MOTD != "" {
		c.MOTD = other.MOTD
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.MaxUsers != 0 {
		c.MaxUsers = other.MaxUsers
	}
	if other.EventBuffer != 0 {
		c.EventBuffer = other.EventBuffer
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if len(other.BannedWords) != 0 {
		c.BannedWords = other.BannedWords
	}
	if other.RateLimit.Burst != 0 {
		c.RateLimit.Burst = other.RateLimit.Burst
	}
	if other.RateLimit.RefillInterval != 0 {
		c.RateLimit.RefillInterval = other.RateLimit.RefillInterval
	}
}
