package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/finwise/loancalc/internal/config"
	"github.com/finwise/loancalc/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address      string               `yaml:"address"`
	MaxBodyBytes int64                `yaml:"maxBodyBytes"`
	Logging      config.LoggingConfig `yaml:"logging"`
	RateLimit    RateLimitConfig      `yaml:"rateLimit"`
	Cache        CacheConfig          `yaml:"cache"`
}

// RateLimitConfig controls the per-client token bucket.
type RateLimitConfig struct {
	Requests int    `yaml:"requests"`
	Window   string `yaml:"window"`
}

// CacheConfig selects the response cache backend.
type CacheConfig struct {
	Backend   string `yaml:"backend"` // memory, redis
	RedisAddr string `yaml:"redisAddr"`
	TTL       string `yaml:"ttl"`
}

// LoadConfig loads the server configuration from YAML. If the file does not
// exist, defaults are returned without error.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Address:      constants.DefaultServerAddress,
		MaxBodyBytes: constants.DefaultMaxBodyBytes,
		RateLimit:    RateLimitConfig{Requests: 60, Window: "1m"},
		Cache:        CacheConfig{Backend: "memory"},
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = constants.DefaultMaxBodyBytes
	}
	if c.RateLimit.Requests <= 0 {
		c.RateLimit.Requests = 60
	}
	if c.RateLimit.Window == "" {
		c.RateLimit.Window = "1m"
	}
	if _, err := time.ParseDuration(c.RateLimit.Window); err != nil {
		return fmt.Errorf("invalid rate limit window %q: %w", c.RateLimit.Window, err)
	}
	switch c.Cache.Backend {
	case "", "memory":
		c.Cache.Backend = "memory"
	case "redis":
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("cache backend redis requires redisAddr")
		}
	default:
		return fmt.Errorf("unsupported cache backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL != "" {
		if _, err := time.ParseDuration(c.Cache.TTL); err != nil {
			return fmt.Errorf("invalid cache ttl %q: %w", c.Cache.TTL, err)
		}
	}
	return nil
}

// RateLimitWindow returns the parsed window duration.
func (c *Config) RateLimitWindow() time.Duration {
	d, err := time.ParseDuration(c.RateLimit.Window)
	if err != nil {
		return time.Minute
	}
	return d
}

// CacheTTL returns the parsed cache entry lifetime; zero means no expiry.
func (c *Config) CacheTTL() time.Duration {
	if c.Cache.TTL == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 0
	}
	return d
}
