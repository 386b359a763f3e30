package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	StoreFile     = "file"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Gigdash"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Log struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info"`
		Format string `envconfig:"LOG_FORMAT" default:"text"`
		// File receives TUI logs; stdout belongs to the terminal UI.
		File string `envconfig:"LOG_FILE"`
	}

	Store struct {
		Driver     string `envconfig:"STORE_DRIVER" default:"sqlite"`
		SQLitePath string `envconfig:"SQLITE_PATH" default:"data/gigdash.db"`
		FilePath   string `envconfig:"BUDGET_FILE" default:"data/budget_limits.json"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"gigdash"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		JWTSecret string        `envconfig:"JWT_SECRET"`
		Issuer    string        `envconfig:"JWT_ISSUER"`
		Audience  string        `envconfig:"JWT_AUDIENCE"`
		TokenTTL  time.Duration `envconfig:"JWT_TTL" default:"24h"`
		// SessionToken is what the TUI presents when a secret is set.
		SessionToken string `envconfig:"GIGDASH_TOKEN"`
	}

	CORS struct {
		Origins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`
	}

	Aggregator struct {
		URL             string        `envconfig:"AGGREGATOR_URL" default:"http://localhost:8000"`
		Token           string        `envconfig:"AGGREGATOR_TOKEN"`
		ItemIDs         []string      `envconfig:"AGGREGATOR_ITEM_IDS"`
		Lookback        time.Duration `envconfig:"AGGREGATOR_LOOKBACK" default:"2160h"`
		MinTransactions int           `envconfig:"AGGREGATOR_MIN_TRANSACTIONS" default:"100"`
		MaxTransactions int           `envconfig:"AGGREGATOR_MAX_TRANSACTIONS" default:"500"`
		Timeout         time.Duration `envconfig:"AGGREGATOR_TIMEOUT" default:"30s"`
	}

	AMQP struct {
		URL      string `envconfig:"AMQP_URL"`
		Exchange string `envconfig:"AMQP_EXCHANGE" default:"gigdash"`
		Queue    string `envconfig:"AMQP_QUEUE" default:"budget_alerts"`
	}

	Budget struct {
		Tracked    []string `envconfig:"BUDGET_TRACKED" default:"Food and Drink,Transportation,Shops,Service"`
		IncomeGoal string   `envconfig:"INCOME_GOAL" default:"6000"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	switch cfg.Store.Driver {
	case StoreFile, StoreSQLite, StorePostgres:
	default:
		return nil, fmt.Errorf("unknown store driver %q: want file, sqlite or postgres", cfg.Store.Driver)
	}

	return &cfg, nil
}
