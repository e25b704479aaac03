package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// Config holds server configuration read from the environment
type Config struct {
	Host     string
	Port     int
	LogLevel slog.Level

	StorageType string
	RedisURL    string

	RoomStaleAfter  time.Duration
	CleanupInterval time.Duration

	// RateLimitRPS of zero disables rate limiting
	RateLimitRPS   float64
	RateLimitBurst int
}

// Default returns the configuration used when no environment is set
func Default() Config {
	return Config{
		Host:            "",
		Port:            8080,
		LogLevel:        slog.LevelInfo,
		StorageType:     StorageTypeMemory,
		RoomStaleAfter:  3 * time.Minute,
		CleanupInterval: 30 * time.Second,
		RateLimitRPS:    20,
		RateLimitBurst:  40,
	}
}

// Load reads a .env file if one exists, then the process environment
func Load() (Config, error) {
	// A missing .env is normal outside local development
	_ = godotenv.Load()
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from the given lookup function
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	var errs []error

	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get("HOST"); ok {
		cfg.Host = v
	}
	if v, ok := get("PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil || port < 1 || port > 65535 {
			errs = append(errs, fmt.Errorf("PORT: invalid port %q", v))
		} else {
			cfg.Port = port
		}
	}
	if v, ok := get("LOG_LEVEL"); ok {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
		}
	}

	if v, ok := get("STORAGE_TYPE"); ok {
		cfg.StorageType = strings.ToLower(v)
	}
	if v, ok := get("REDIS_URL"); ok {
		cfg.RedisURL = v
	}
	switch cfg.StorageType {
	case StorageTypeMemory:
	case StorageTypeRedis:
		if cfg.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL required when STORAGE_TYPE=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORAGE_TYPE: must be %q or %q, got %q", StorageTypeMemory, StorageTypeRedis, cfg.StorageType))
	}

	if v, ok := get("ROOM_STALE_AFTER"); ok {
		d, err := parsePositiveDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("ROOM_STALE_AFTER: %w", err))
		} else {
			cfg.RoomStaleAfter = d
		}
	}
	if v, ok := get("CLEANUP_INTERVAL"); ok {
		d, err := parsePositiveDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("CLEANUP_INTERVAL: %w", err))
		} else {
			cfg.CleanupInterval = d
		}
	}

	if v, ok := get("RATE_LIMIT_RPS"); ok {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil || rps < 0 {
			errs = append(errs, fmt.Errorf("RATE_LIMIT_RPS: invalid rate %q", v))
		} else {
			cfg.RateLimitRPS = rps
		}
	}
	if v, ok := get("RATE_LIMIT_BURST"); ok {
		burst, err := strconv.Atoi(v)
		if err != nil || burst < 1 {
			errs = append(errs, fmt.Errorf("RATE_LIMIT_BURST: invalid burst %q", v))
		} else {
			cfg.RateLimitBurst = burst
		}
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return cfg, nil
}

func parsePositiveDuration(v string) (time.Duration, error) {
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %s", v)
	}
	return d, nil
}
