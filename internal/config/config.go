package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	// DefaultHeartbeatChannel applies only when HEARTBEAT_CHANNEL is unset.
	// Setting it to an empty value turns the heartbeat off.
	DefaultHeartbeatChannel = "botlogs"

	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config holds every setting the bot reads from the environment.
type Config struct {
	DiscordToken      string        `env:"DISCORD_TOKEN,required,notEmpty"`
	Port              int           `env:"PORT" envDefault:"8080"`
	CommandPrefix     string        `env:"COMMAND_PREFIX" envDefault:"!"`
	StoreBackend      string        `env:"STORE_BACKEND" envDefault:"file"`
	DataFile          string        `env:"DATA_FILE" envDefault:"tourney_data.json"`
	DatabaseURL       string        `env:"DATABASE_URL" envDefault:"tourney.db?_journal_mode=WAL"`
	HeartbeatChannel  string        `env:"HEARTBEAT_CHANNEL"`
	HeartbeatInterval time.Duration `env:"HEARTBEAT_INTERVAL" envDefault:"30s"`
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat         string        `env:"LOG_FORMAT" envDefault:"json"`
}

// Load reads envFile if it exists, then parses and validates the environment.
// Values already present in the environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if _, ok := os.LookupEnv("HEARTBEAT_CHANNEL"); !ok {
		cfg.HeartbeatChannel = DefaultHeartbeatChannel
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if strings.TrimSpace(c.CommandPrefix) == "" {
		return fmt.Errorf("COMMAND_PREFIX must not be blank")
	}

	switch c.StoreBackend {
	case BackendFile:
		if c.DataFile == "" {
			return fmt.Errorf("DATA_FILE must be set for the file backend")
		}
	case BackendSQLite, BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL must be set for the %s backend", c.StoreBackend)
		}
	default:
		return fmt.Errorf("STORE_BACKEND must be one of file, sqlite, postgres, got %q", c.StoreBackend)
	}

	if c.HeartbeatChannel != "" && c.HeartbeatInterval <= 0 {
		return fmt.Errorf("HEARTBEAT_INTERVAL must be positive, got %s", c.HeartbeatInterval)
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	return nil
}

func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// HeartbeatEnabled is false when no heartbeat channel is configured.
func (c *Config) HeartbeatEnabled() bool {
	return c.HeartbeatChannel != ""
}
