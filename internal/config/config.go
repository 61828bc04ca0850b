package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	domcart "example.com/gomarketplace/internal/domain/cart"
)

type Config struct {
	AppPort         string        `yaml:"app_port"`
	Namespace       string        `yaml:"namespace"`
	DecrementPolicy string        `yaml:"decrement_policy"`
	Storage         StorageConfig `yaml:"storage"`
	Log             LogConfig     `yaml:"log"`
}

type StorageConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Env   string `yaml:"env"`
}

func Default() Config {
	return Config{
		AppPort:         "8080",
		Namespace:       domcart.DefaultNamespace,
		DecrementPolicy: string(domcart.AllowNegative),
		Storage: StorageConfig{
			Driver: "sqlite",
			DSN:    "data/cart.db",
		},
		Log: LogConfig{
			Level: "info",
			Env:   "prod",
		},
	}
}

// Load reads path (if non-empty) over the defaults, then applies environment
// overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.AppPort = getenv("APP_PORT", cfg.AppPort)
	cfg.Namespace = getenv("CART_NAMESPACE", cfg.Namespace)
	cfg.DecrementPolicy = getenv("CART_DECREMENT_POLICY", cfg.DecrementPolicy)
	cfg.Storage.Driver = getenv("STORAGE_DRIVER", cfg.Storage.Driver)
	cfg.Storage.DSN = getenv("STORAGE_DSN", cfg.Storage.DSN)
	cfg.Log.Level = getenv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Env = getenv("APP_ENV", cfg.Log.Env)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Namespace == "" {
		return errors.New("namespace must not be empty")
	}
	if _, err := c.Policy(); err != nil {
		return err
	}
	switch c.Storage.Driver {
	case "memory":
	case "sqlite", "mysql", "postgres":
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required for driver %q", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}
	return nil
}

func (c Config) Policy() (domcart.DecrementPolicy, error) {
	return domcart.ParseDecrementPolicy(c.DecrementPolicy)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
