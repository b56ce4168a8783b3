package config

import "time"

// ServerConfig holds settings for the HTTP listener that serves the page.
type ServerConfig struct {
	Addr            string          `mapstructure:"ADDR"             json:"addr"             yaml:"addr"             validate:"required,listen_addr"`
	ReadTimeout     time.Duration   `mapstructure:"READ_TIMEOUT"     json:"read_timeout"     yaml:"read_timeout"     validate:"required,timeout_duration"`
	WriteTimeout    time.Duration   `mapstructure:"WRITE_TIMEOUT"    json:"write_timeout"    yaml:"write_timeout"    validate:"required,timeout_duration"`
	ShutdownTimeout time.Duration   `mapstructure:"SHUTDOWN_TIMEOUT" json:"shutdown_timeout" yaml:"shutdown_timeout" validate:"required,timeout_duration"`
	RateLimit       RateLimitConfig `mapstructure:"RATE_LIMIT"       json:"rate_limit"       yaml:"rate_limit"`
}

// RateLimitConfig throttles page requests so a busy ingress cannot flood the
// database with connections.
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"ENABLED"             json:"enabled"             yaml:"enabled"`
	RequestsPerSecond float64 `mapstructure:"REQUESTS_PER_SECOND" json:"requests_per_second" yaml:"requests_per_second" validate:"min=0,max=50000"`
	Burst             int     `mapstructure:"BURST"               json:"burst"               yaml:"burst"               validate:"min=0,max=10000"`
}
