package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"wardaropa-backend/internal/utils"

	"gopkg.in/yaml.v3"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverMemory   = "memory"
)

// Config holds the server settings. BodyLimit is in bytes and must leave
// room for inline photo payloads.
type Config struct {
	Port       string   `yaml:"port"`
	BcryptCost int      `yaml:"bcrypt_cost"`
	BodyLimit  int      `yaml:"body_limit"`
	Database   Database `yaml:"database"`
}

type Database struct {
	Driver string `yaml:"driver"`
	// URL is a postgres connection string or a go-sql-driver/mysql DSN,
	// depending on Driver.
	URL            string        `yaml:"url"`
	MaxConns       int           `yaml:"max_conns"`
	AcquireTimeout time.Duration `yaml:"acquire_timeout"`
}

func Default() *Config {
	return &Config{
		Port:       "3000",
		BcryptCost: 10,
		BodyLimit:  10 * 1024 * 1024,
		Database: Database{
			Driver:         DriverPostgres,
			MaxConns:       10,
			AcquireTimeout: 5 * time.Second,
		},
	}
}

// Load reads the optional YAML file at path and then applies environment
// overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		file, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(file, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Port = utils.GetEnv("PORT", c.Port)
	c.BcryptCost = utils.GetEnvInt("BCRYPT_COST", c.BcryptCost)
	c.BodyLimit = utils.GetEnvInt("BODY_LIMIT", c.BodyLimit)

	db := &c.Database
	db.Driver = utils.GetEnv("DB_DRIVER", db.Driver)
	db.MaxConns = utils.GetEnvInt("DB_MAX_CONNS", db.MaxConns)
	db.AcquireTimeout = utils.GetEnvDuration("DB_ACQUIRE_TIMEOUT", db.AcquireTimeout)

	switch db.Driver {
	case DriverPostgres:
		db.URL = utils.GetEnv("DATABASE_URL", db.URL)
		if db.URL == "" {
			db.URL = "postgres://" + utils.GetEnv("POSTGRES_USER", "postgres") + ":" +
				utils.GetEnv("POSTGRES_PASSWORD", "postgres") + "@" +
				utils.GetEnv("POSTGRES_HOST", "localhost") + ":" +
				utils.GetEnv("POSTGRES_PORT", "5432") + "/" +
				utils.GetEnv("POSTGRES_DB", "wardaropa") + "?sslmode=disable"
		}
	case DriverMySQL:
		db.URL = utils.GetEnv("MYSQL_DSN", utils.GetEnv("DATABASE_URL", db.URL))
	}
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverMySQL:
		if c.Database.URL == "" {
			return fmt.Errorf("database url required for driver %q", c.Database.Driver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	if c.Database.MaxConns <= 0 {
		return errors.New("database max_conns must be positive")
	}
	if c.Database.AcquireTimeout <= 0 {
		return errors.New("database acquire_timeout must be positive")
	}
	if c.BodyLimit <= 0 {
		return errors.New("body_limit must be positive")
	}
	if c.Port == "" {
		return errors.New("port required")
	}
	return nil
}
