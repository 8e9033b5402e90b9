package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `toml:"port"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
}

// DatabaseConfig selects and addresses the store backend
type DatabaseConfig struct {
	Driver      string `toml:"driver"`
	SQLitePath  string `toml:"sqlite_path"`
	DatabaseURL string `toml:"database_url"`
}

// SeedConfig controls the managers inserted at startup
type SeedConfig struct {
	ManagerCount int    `toml:"manager_count"`
	Mode         string `toml:"mode"`
}

// Config holds all configuration
type Config struct {
	AppName              string         `toml:"app_name"`
	Environment          string         `toml:"environment"`
	LogLevel             string         `toml:"log_level"`
	StatsRefreshInterval time.Duration  `toml:"stats_refresh_interval"`
	Server               ServerConfig   `toml:"server"`
	Database             DatabaseConfig `toml:"database"`
	Seed                 SeedConfig     `toml:"seed"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		AppName:              "usersvc",
		Environment:          "development",
		LogLevel:             "info",
		StatsRefreshInterval: time.Minute,
		Server: ServerConfig{
			Port:            3005,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:     DriverSQLite,
			SQLitePath: "users.db",
		},
		Seed: SeedConfig{
			ManagerCount: 3,
			Mode:         "idempotent",
		},
	}
}

// Load layers, lowest precedence first: defaults, the TOML file named by
// CONFIG_FILE, a .env file in the working directory, environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg.AppName = getEnv("APP_NAME", cfg.AppName)
	cfg.Environment = getEnv("APP_ENV", cfg.Environment)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.StatsRefreshInterval = getEnvAsDuration("STATS_REFRESH_INTERVAL", cfg.StatsRefreshInterval)
	cfg.Server.Port = getEnvAsInt("PORT", cfg.Server.Port)
	cfg.Server.ShutdownTimeout = getEnvAsDuration("SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout)
	cfg.Database.Driver = getEnv("DB_DRIVER", cfg.Database.Driver)
	cfg.Database.SQLitePath = getEnv("SQLITE_PATH", cfg.Database.SQLitePath)
	cfg.Database.DatabaseURL = getEnv("DATABASE_URL", cfg.Database.DatabaseURL)
	cfg.Seed.ManagerCount = getEnvAsInt("MANAGER_SEED_COUNT", cfg.Seed.ManagerCount)
	cfg.Seed.Mode = getEnv("MANAGER_SEED_MODE", cfg.Seed.Mode)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Database.DatabaseURL == "" {
			return errors.New("DATABASE_URL environment variable is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.Database.Driver)
	}
	switch c.Seed.Mode {
	case "idempotent", "always":
	default:
		return fmt.Errorf("unknown MANAGER_SEED_MODE %q", c.Seed.Mode)
	}
	if c.Seed.ManagerCount < 0 {
		return fmt.Errorf("invalid MANAGER_SEED_COUNT %d", c.Seed.ManagerCount)
	}
	if c.StatsRefreshInterval <= 0 {
		return fmt.Errorf("invalid STATS_REFRESH_INTERVAL %s", c.StatsRefreshInterval)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}
