package config

import "time"

// ServerConfig holds the HTTP server (serve mode) configuration
type ServerConfig struct {
	// Listen address (host:port)
	Address string `mapstructure:"address" validate:"required"`

	// PID file location
	PIDFile string `mapstructure:"pid_file"`

	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`

	// Allowed websocket origins; empty allows any
	AllowedOrigins []string `mapstructure:"allowed_origins"`

	// Websocket keepalive ping interval
	PingInterval time.Duration `mapstructure:"ping_interval" validate:"required"`
}

// PollerConfig controls live project refresh
type PollerConfig struct {
	// Time between fetches
	Interval time.Duration `mapstructure:"interval" validate:"required"`

	// Stop after this long without a change
	IdleBudget time.Duration `mapstructure:"idle_budget" validate:"required"`
}
