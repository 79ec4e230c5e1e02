package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults: a local sqlite file
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = DefaultDatabasePath()
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "colonial"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "colonial"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 10
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// API defaults
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "https://ravencolonial100-awcbdvabgze4c5cq.canadacentral-01.azurewebsites.net"
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = 30 * time.Second
	}
	if cfg.API.RateLimit.Requests == 0 {
		cfg.API.RateLimit.Requests = 4
	}
	if cfg.API.RateLimit.Burst == 0 {
		cfg.API.RateLimit.Burst = 8
	}
	if cfg.API.Retry.MaxAttempts == 0 {
		cfg.API.Retry.MaxAttempts = 3
	}
	if cfg.API.Retry.BackoffBase == 0 {
		cfg.API.Retry.BackoffBase = 500 * time.Millisecond
	}
	if cfg.API.Breaker.MaxFailures == 0 {
		cfg.API.Breaker.MaxFailures = 5
	}
	if cfg.API.Breaker.Timeout == 0 {
		cfg.API.Breaker.Timeout = 30 * time.Second
	}

	// Provider defaults
	if cfg.Providers.AstroURL == "" {
		cfg.Providers.AstroURL = "https://spansh.co.uk"
	}
	if cfg.Providers.POIURL == "" {
		cfg.Providers.POIURL = "https://inara.cz"
	}
	if cfg.Providers.BodiesURL == "" {
		cfg.Providers.BodiesURL = "https://www.edsm.net"
	}
	if cfg.Providers.Timeout == 0 {
		cfg.Providers.Timeout = 20 * time.Second
	}
	if cfg.Providers.RateLimit == 0 {
		cfg.Providers.RateLimit = 2
	}

	// Cache defaults
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 10 * time.Minute
	}
	if cfg.Cache.Prefix == "" {
		cfg.Cache.Prefix = "colonial:markets:"
	}

	// Server defaults
	if cfg.Server.Address == "" {
		cfg.Server.Address = "localhost:8080"
	}
	if cfg.Server.PIDFile == "" {
		cfg.Server.PIDFile = "/tmp/colonial-server.pid"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Server.PingInterval == 0 {
		cfg.Server.PingInterval = 30 * time.Second
	}

	// Poller defaults
	if cfg.Poller.Interval == 0 {
		cfg.Poller.Interval = 30 * time.Second
	}
	if cfg.Poller.IdleBudget == 0 {
		cfg.Poller.IdleBudget = 10 * time.Minute
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Metrics defaults
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}
