package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/vytor/quizzical/internal/logger"
)

// Storage backends for quiz history and the temporary slot.
const (
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

type Config struct {
	Addr            string
	DBPath          string
	QuestionsPath   string
	StorageType     string
	LogLevel        string
	TimerTick       time.Duration
	ShutdownTimeout time.Duration
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent.
	_ = godotenv.Load()

	return Config{
		Addr:            envOr("ADDR", "127.0.0.1:8080"),
		DBPath:          envOr("DB_PATH", "file:quizzical.db"),
		QuestionsPath:   envOr("QUESTIONS_PATH", "questions.txt"),
		StorageType:     strings.ToLower(envOr("STORAGE_TYPE", StorageSQLite)),
		LogLevel:        envOr("LOG_LEVEL", "INFO"),
		TimerTick:       time.Duration(envIntOr("TIMER_TICK_MS", 1000)) * time.Millisecond,
		ShutdownTimeout: time.Duration(envIntOr("SHUTDOWN_TIMEOUT_SECONDS", 30)) * time.Second,
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if strings.TrimSpace(c.QuestionsPath) == "" {
		errs = append(errs, errors.New("QUESTIONS_PATH cannot be empty"))
	}
	switch c.StorageType {
	case StorageSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			errs = append(errs, errors.New("DB_PATH cannot be empty when STORAGE_TYPE=sqlite"))
		}
	case StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("STORAGE_TYPE must be %q or %q, got %q", StorageSQLite, StorageMemory, c.StorageType))
	}
	if _, ok := logger.LookupLevel(c.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR, got %q", c.LogLevel))
	}
	if c.TimerTick < 10*time.Millisecond || c.TimerTick > time.Minute {
		errs = append(errs, fmt.Errorf("TIMER_TICK_MS must be between 10 and 60000, got %d", c.TimerTick.Milliseconds()))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT_SECONDS must be positive"))
	}

	return errors.Join(errs...)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
