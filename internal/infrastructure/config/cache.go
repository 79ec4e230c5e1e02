package config

import "time"

// CacheConfig holds the market search cache configuration. Without a redis
// URL only the in-process memo is used.
type CacheConfig struct {
	RedisURL string        `mapstructure:"redis_url" validate:"omitempty,url"`
	TTL      time.Duration `mapstructure:"ttl" validate:"min=0"`
	Prefix   string        `mapstructure:"prefix"`
}

// Enabled reports whether a redis cache is configured
func (c CacheConfig) Enabled() bool {
	return c.RedisURL != ""
}
