package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Progress sources. Exactly one of them is the source of truth for daily
// task completion.
const (
	ProgressSourceRemote = "remote"
	ProgressSourceLocal  = "local"
)

// Database drivers understood by utils.InitDB.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string
	JWTSecret  string
	ServerPort string

	CORSAllowOrigins string
	LogFormat        string
	LogLevel         string

	// ProgressSource selects where daily task completion is persisted:
	// the project row (remote) or the local completion cache (local).
	ProgressSource       string
	ProgressCachePath    string
	ProgressPruneStale   bool
	ProgressWriteTimeout time.Duration
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	cfg := &Config{
		DBDriver:          getEnv("DB_DRIVER", DriverPostgres),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBName:            getEnv("DB_NAME", "airdrop_tracker"),
		DBSSLMode:         getEnv("DB_SSLMODE", "disable"),
		SQLitePath:        getEnv("SQLITE_PATH", "airdrop_tracker.db"),
		JWTSecret:         getEnv("JWT_SECRET", "secret"),
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		CORSAllowOrigins:  getEnv("CORS_ALLOW_ORIGINS", "*"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		ProgressSource:    getEnv("PROGRESS_SOURCE", ProgressSourceRemote),
		ProgressCachePath: getEnv("PROGRESS_CACHE_PATH", "task_completions.db"),
	}

	if cfg.ProgressPruneStale, err = getEnvBool("PROGRESS_PRUNE_STALE", false); err != nil {
		return nil, err
	}
	if cfg.ProgressWriteTimeout, err = getEnvDuration("PROGRESS_WRITE_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("invalid DB_DRIVER %q: want %q or %q", c.DBDriver, DriverPostgres, DriverSQLite)
	}
	switch c.ProgressSource {
	case ProgressSourceRemote, ProgressSourceLocal:
	default:
		return fmt.Errorf("invalid PROGRESS_SOURCE %q: want %q or %q", c.ProgressSource, ProgressSourceRemote, ProgressSourceLocal)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q: want json or console", c.LogFormat)
	}
	if c.ProgressWriteTimeout <= 0 {
		return fmt.Errorf("invalid PROGRESS_WRITE_TIMEOUT %s: must be positive", c.ProgressWriteTimeout)
	}
	return nil
}

// DSN returns the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return b, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}
