package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/fijas/internal/config"
	"github.com/mcoot/fijas/internal/dependencies/clock"
	"github.com/mcoot/fijas/internal/dependencies/random"
	"github.com/mcoot/fijas/internal/services/cleanup"
	"github.com/mcoot/fijas/internal/services/room"
	"github.com/mcoot/fijas/internal/storage"
	"github.com/mcoot/fijas/internal/storage/memory"
	redisstorage "github.com/mcoot/fijas/internal/storage/redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	RoomController *room.Controller
	CleanupService *cleanup.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// RoomConfig holds engine settings (optional)
	// If zero value, defaults to room.DefaultConfig()
	RoomConfig room.Config
	// CleanupInterval is how often stale rooms are swept (optional)
	CleanupInterval time.Duration
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = config.StorageTypeMemory
	}

	switch storageType {
	case config.StorageTypeMemory:
		store = memory.New()
	case config.StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, cfg.RoomConfig, cfg.CleanupInterval, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	roomCfg room.Config,
	cleanupInterval time.Duration,
	logger *slog.Logger,
) *App {
	if roomCfg.StaleAfter == 0 {
		roomCfg = room.DefaultConfig()
	}

	roomController := room.NewController(store, clk, rnd, roomCfg, logger)
	cleanupService := cleanup.New(roomController, cleanupInterval, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		RoomController: roomController,
		CleanupService: cleanupService,
	}
}

// Close releases storage resources
func (a *App) Close() error {
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
