package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"

	sharedcfg "scanpass/internal/config"
	"scanpass/internal/utils/logger"
)

const (
	defaultServerAddress = "localhost:8080"
	defaultConfigDir     = ".scanpass"

	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
	StorageMemory = "memory"

	CameraSynthetic = "synthetic"
	CameraDevice    = "device"

	DecoderSimulated = "simulated"
	DecoderHTTP      = "http"
)

type Config struct {
	Env                 string        `mapstructure:"app_env"`
	LogLevel            string        `mapstructure:"log_level"`
	ConfigDir           string        `mapstructure:"config_dir"`
	DataPath            string        `mapstructure:"data_path"`
	LogPath             string        `mapstructure:"log_path"`
	StorageDriver       string        `mapstructure:"storage_driver"`
	RedisURL            string        `mapstructure:"redis_url"`
	CameraDriver        string        `mapstructure:"camera_driver"`
	CameraDeviceGlob    string        `mapstructure:"camera_device_glob"`
	UserAgent           string        `mapstructure:"user_agent"`
	Decoder             string        `mapstructure:"decoder"`
	ScanLatency         time.Duration `mapstructure:"scan_latency"`
	ScanFailureRate     float64       `mapstructure:"scan_failure_rate"`
	ServerAddress       string        `mapstructure:"server_address"`
	EnableTLS           bool          `mapstructure:"enable_tls"`
	LowBalanceThreshold int           `mapstructure:"low_balance_threshold"`
	BcryptCost          int           `mapstructure:"bcrypt_cost"`
}

// Load читает конфигурацию: значения по умолчанию, затем YAML-файл
// configFile (если задан), затем переменные окружения и .env
func Load(configFile string) (*Config, error) {
	if _, err := sharedcfg.LoadDotEnv(".env", "../.env"); err != nil {
		return nil, fmt.Errorf("ошибка загрузки .env файла: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("ошибка чтения файла конфигурации: %w", err)
		}
	}

	cfg := &Config{
		Env:                 v.GetString("APP_ENV"),
		LogLevel:            v.GetString("LOG_LEVEL"),
		ConfigDir:           v.GetString("CONFIG_DIR"),
		DataPath:            v.GetString("DATA_PATH"),
		LogPath:             v.GetString("LOG_PATH"),
		StorageDriver:       strings.ToLower(v.GetString("STORAGE_DRIVER")),
		RedisURL:            v.GetString("REDIS_URL"),
		CameraDriver:        strings.ToLower(v.GetString("CAMERA_DRIVER")),
		CameraDeviceGlob:    v.GetString("CAMERA_DEVICE_GLOB"),
		UserAgent:           v.GetString("USER_AGENT"),
		Decoder:             strings.ToLower(v.GetString("DECODER")),
		ScanLatency:         v.GetDuration("SCAN_LATENCY"),
		ScanFailureRate:     v.GetFloat64("SCAN_FAILURE_RATE"),
		ServerAddress:       v.GetString("SERVER_ADDRESS"),
		EnableTLS:           v.GetBool("ENABLE_TLS"),
		LowBalanceThreshold: v.GetInt("LOW_BALANCE_THRESHOLD"),
		BcryptCost:          v.GetInt("BCRYPT_COST"),
	}

	if cfg.ConfigDir == defaultConfigDir {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = "."
		}
		cfg.ConfigDir = filepath.Join(homeDir, defaultConfigDir)
	}
	if cfg.DataPath == "" {
		cfg.DataPath = filepath.Join(cfg.ConfigDir, "scanpass.db")
	}
	if cfg.LogPath == "" {
		cfg.LogPath = filepath.Join(cfg.ConfigDir, "scanpass.log")
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("ошибка конфигурации: %w", err)
	}
	return cfg, nil
}

// MustLoad загружает конфигурацию клиента
func MustLoad(configFile string) *Config {
	cfg, err := Load(configFile)
	if err != nil {
		panic(err)
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", sharedcfg.EnvLocal)
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("CONFIG_DIR", defaultConfigDir)
	v.SetDefault("STORAGE_DRIVER", StorageSQLite)
	v.SetDefault("CAMERA_DRIVER", CameraSynthetic)
	v.SetDefault("CAMERA_DEVICE_GLOB", "/dev/video*")
	v.SetDefault("DECODER", DecoderSimulated)
	v.SetDefault("SCAN_LATENCY", "2s")
	v.SetDefault("SCAN_FAILURE_RATE", 0.2)
	v.SetDefault("SERVER_ADDRESS", defaultServerAddress)
	v.SetDefault("ENABLE_TLS", false)
	v.SetDefault("LOW_BALANCE_THRESHOLD", 5)
	v.SetDefault("BCRYPT_COST", bcrypt.DefaultCost)
}

func (c *Config) validate() error {
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("неизвестный log_level %q", c.LogLevel)
	}

	switch c.StorageDriver {
	case StorageSQLite, StorageMemory:
	case StorageRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("redis_url не может быть пустым для storage_driver=redis")
		}
	default:
		return fmt.Errorf("неизвестный storage_driver %q", c.StorageDriver)
	}

	switch c.CameraDriver {
	case CameraSynthetic, CameraDevice:
	default:
		return fmt.Errorf("неизвестный camera_driver %q", c.CameraDriver)
	}

	switch c.Decoder {
	case DecoderSimulated:
	case DecoderHTTP:
		if c.ServerAddress == "" {
			return fmt.Errorf("server_address не может быть пустым для decoder=http")
		}
	default:
		return fmt.Errorf("неизвестный decoder %q", c.Decoder)
	}

	if c.ScanLatency < 0 {
		return fmt.Errorf("scan_latency не может быть отрицательной")
	}
	if c.ScanFailureRate < 0 || c.ScanFailureRate > 1 {
		return fmt.Errorf("scan_failure_rate должен быть в диапазоне [0, 1]")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt_cost должен быть в диапазоне [%d, %d]", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}

// IsProd проверяет, prod ли окружение
func (c *Config) IsProd() bool {
	return c.Env == sharedcfg.EnvProd
}

// IsDev проверяет, dev ли окружение
func (c *Config) IsDev() bool {
	return c.Env == sharedcfg.EnvDev
}

// IsLocal проверяет, local ли окружение
func (c *Config) IsLocal() bool {
	return c.Env == sharedcfg.EnvLocal || c.Env == ""
}
