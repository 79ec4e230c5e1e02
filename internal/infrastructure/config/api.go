package config

import "time"

// APIConfig holds the colonization backend client configuration
type APIConfig struct {
	// Base URL of the backend REST service
	BaseURL string `mapstructure:"base_url" validate:"required,url"`

	// Rate limiting settings
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// Request timeout
	Timeout time.Duration `mapstructure:"timeout" validate:"required"`

	// Retry configuration (GET requests only)
	Retry RetryConfig `mapstructure:"retry"`

	// Circuit breaker configuration
	Breaker BreakerConfig `mapstructure:"breaker"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	// Maximum requests per second
	Requests int `mapstructure:"requests" validate:"min=1"`

	// Burst size for token bucket
	Burst int `mapstructure:"burst" validate:"min=1"`
}

// RetryConfig holds retry configuration for failed reads
type RetryConfig struct {
	// Maximum number of retry attempts
	MaxAttempts int `mapstructure:"max_attempts" validate:"min=0"`

	// Base duration for exponential backoff
	BackoffBase time.Duration `mapstructure:"backoff_base"`
}

// BreakerConfig holds circuit breaker thresholds
type BreakerConfig struct {
	MaxFailures int           `mapstructure:"max_failures" validate:"min=1"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// ProvidersConfig holds the third-party data provider endpoints. All are
// read-only and unauthenticated.
type ProvidersConfig struct {
	AstroURL  string        `mapstructure:"astro_url" validate:"required,url"`
	POIURL    string        `mapstructure:"poi_url" validate:"required,url"`
	BodiesURL string        `mapstructure:"bodies_url" validate:"required,url"`
	Timeout   time.Duration `mapstructure:"timeout"`

	// Requests per second shared by each provider client
	RateLimit int `mapstructure:"rate_limit" validate:"min=1"`
}
