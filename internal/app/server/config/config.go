package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	sharedcfg "scanpass/internal/config"
	"scanpass/internal/utils/logger"
)

const (
	defaultRunAddress = ":8080"
	envPath           = "../../.env"
)

type Config struct {
	Env    string
	DB     db
	Server server
	Logger logging
	Scan   scan
}

type db struct {
	DatabaseURI string
}

type server struct {
	RunAddress      string
	ShutdownTimeout time.Duration
}

type logging struct {
	LogLevel string
}

type scan struct {
	Latency     time.Duration
	FailureRate float64
}

// Load читает конфигурацию сервера из окружения и .env
func Load() (*Config, error) {
	if _, err := sharedcfg.LoadDotEnv(".env", envPath); err != nil {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetDefault("APP_ENV", sharedcfg.EnvLocal)
	v.SetDefault("RUN_ADDRESS", defaultRunAddress)
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("SCAN_LATENCY", "2s")
	v.SetDefault("SCAN_FAILURE_RATE", 0.2)
	v.AutomaticEnv()

	cfg := &Config{
		Env: v.GetString("APP_ENV"),
		DB: db{
			DatabaseURI: v.GetString("DATABASE_URI"),
		},
		Server: server{
			RunAddress:      v.GetString("RUN_ADDRESS"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Logger: logging{LogLevel: v.GetString("LOG_LEVEL")},
		Scan: scan{
			Latency:     v.GetDuration("SCAN_LATENCY"),
			FailureRate: v.GetFloat64("SCAN_FAILURE_RATE"),
		},
	}

	if _, err := logger.ParseLevel(cfg.Logger.LogLevel); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if cfg.Server.RunAddress == "" {
		return nil, fmt.Errorf("RUN_ADDRESS is empty")
	}
	if cfg.Scan.Latency < 0 {
		return nil, fmt.Errorf("SCAN_LATENCY must not be negative")
	}
	if cfg.Scan.FailureRate < 0 || cfg.Scan.FailureRate > 1 {
		return nil, fmt.Errorf("SCAN_FAILURE_RATE must be within [0, 1]")
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// HasDatabase - задан ли адрес PostgreSQL
func (c *Config) HasDatabase() bool {
	return c.DB.DatabaseURI != ""
}
