package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	FileName  = "neurocalm.yaml"
	envPrefix = "NEUROCALM_"

	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

type Config struct {
	DataDir        string        `yaml:"-"`
	StoreDriver    string        `yaml:"store_driver"`
	DBPath         string        `yaml:"db_path"`
	Gateway        GatewayConfig `yaml:"gateway"`
	VerifyPassword bool          `yaml:"verify_password"`
	ResetLinkBase  string        `yaml:"reset_link_base"`
	LogLevel       string        `yaml:"log_level"`
}

// GatewayConfig shapes the simulated external calls (verification mail,
// password reset/update, chat replies).
type GatewayConfig struct {
	DelayMinMs int  `yaml:"delay_min_ms"`
	DelayMaxMs int  `yaml:"delay_max_ms"` // 0 = use min as fixed
	Fail       bool `yaml:"fail"`
}

// Load layers defaults, <dataDir>/neurocalm.yaml, <dataDir>/.env and
// NEUROCALM_* environment variables, later layers winning.
func Load(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := Config{
		DataDir:       dataDir,
		StoreDriver:   StoreFile,
		Gateway:       GatewayConfig{DelayMinMs: 1500},
		ResetLinkBase: "https://neurocalm.app/reset-password",
		LogLevel:      "warn",
	}

	raw, err := os.ReadFile(filepath.Join(dataDir, FileName))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode %s: %w", FileName, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return Config{}, fmt.Errorf("read %s: %w", FileName, err)
	}

	// .env is optional; godotenv never overrides variables already set.
	_ = godotenv.Load(filepath.Join(dataDir, ".env"))

	cfg.StoreDriver = getenv("STORE_DRIVER", cfg.StoreDriver)
	cfg.DBPath = getenv("DB_PATH", cfg.DBPath)
	cfg.Gateway.DelayMinMs = getenvInt("GATEWAY_DELAY_MIN_MS", cfg.Gateway.DelayMinMs)
	cfg.Gateway.DelayMaxMs = getenvInt("GATEWAY_DELAY_MAX_MS", cfg.Gateway.DelayMaxMs)
	cfg.Gateway.Fail = getenvBool("GATEWAY_FAIL", cfg.Gateway.Fail)
	cfg.VerifyPassword = getenvBool("VERIFY_PASSWORD", cfg.VerifyPassword)
	cfg.ResetLinkBase = getenv("RESET_LINK_BASE", cfg.ResetLinkBase)
	cfg.LogLevel = getenv("LOG_LEVEL", cfg.LogLevel)

	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(dataDir, ".neurocalm", "neurocalm.db")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.StoreDriver != StoreFile && c.StoreDriver != StoreSQLite {
		return fmt.Errorf("unsupported store driver %q", c.StoreDriver)
	}
	if c.Gateway.DelayMinMs < 0 || c.Gateway.DelayMaxMs < 0 {
		return fmt.Errorf("gateway delays must be non-negative")
	}
	return nil
}

// RecordsDir is where the file store keeps one file per record key.
func (c Config) RecordsDir() string {
	return filepath.Join(c.DataDir, ".neurocalm", "records")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(envPrefix + key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(envPrefix + key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	if v := os.Getenv(envPrefix + key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
