package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"stockdash/internal/logging"
	"stockdash/pkg/stockdash"
)

// Environment variables read by Load.
const (
	EnvConfigPath = "STOCKDASH_CONFIG"
	EnvHost       = "STOCKDASH_HOST"
	EnvPort       = "STOCKDASH_PORT"
	EnvLogDir     = "STOCKDASH_LOG_DIR"
	EnvLogLevel   = "STOCKDASH_LOG_LEVEL"
	EnvWebDir     = "STOCKDASH_WEB_DIR"
	EnvStore      = "STOCKDASH_STORE"
	EnvRateLimit  = "STOCKDASH_RATE_LIMIT"
	EnvRateBurst  = "STOCKDASH_RATE_BURST"
	EnvSeedDemo   = "STOCKDASH_SEED_DEMO"
)

// Config holds server settings. Sources are applied in order: defaults,
// the JSON config file, a .env file, process environment; command-line
// flags are layered on top by the caller.
type Config struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	LogDir   string `json:"log_dir"`
	LogLevel string `json:"log_level"`
	WebDir   string `json:"web_dir"`
	// Store selects the entity store: "memory" or "sqlite".
	Store string `json:"store"`
	// RateLimit is requests per second per client; 0 disables it.
	RateLimit float64 `json:"rate_limit"`
	RateBurst int     `json:"rate_burst"`
	SeedDemo  bool    `json:"seed_demo"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Host:      "127.0.0.1",
		Port:      8000,
		LogLevel:  "info",
		Store:     stockdash.StoreMemory,
		RateBurst: 20,
		SeedDemo:  true,
	}
}

// Load resolves configuration from the JSON file, ./.env and the
// environment.
func Load() (Config, error) {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit dotenv path. A missing dotenv file is
// not an error.
func LoadFrom(dotenvPath string) (Config, error) {
	cfg := Default()

	path, explicit, err := configFilePath()
	if err != nil {
		return cfg, err
	}
	if err := readConfigFile(path, explicit, &cfg); err != nil {
		return cfg, err
	}

	if dotenvPath != "" {
		if _, err := os.Stat(dotenvPath); err == nil {
			if err := godotenv.Load(dotenvPath); err != nil {
				return cfg, fmt.Errorf("load %s: %w", dotenvPath, err)
			}
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func configFilePath() (string, bool, error) {
	if path := strings.TrimSpace(os.Getenv(EnvConfigPath)); path != "" {
		return path, true, nil
	}
	path, err := appConfigPath()
	return path, false, err
}

func readConfigFile(path string, explicit bool, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v, ok := lookupEnv(EnvHost); ok {
		cfg.Host = v
	}
	if v, ok := lookupEnv(EnvPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPort, err)
		}
		cfg.Port = port
	}
	if v, ok := lookupEnv(EnvLogDir); ok {
		cfg.LogDir = v
	}
	if v, ok := lookupEnv(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := lookupEnv(EnvWebDir); ok {
		cfg.WebDir = v
	}
	if v, ok := lookupEnv(EnvStore); ok {
		cfg.Store = v
	}
	if v, ok := lookupEnv(EnvRateLimit); ok {
		limit, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRateLimit, err)
		}
		cfg.RateLimit = limit
	}
	if v, ok := lookupEnv(EnvRateBurst); ok {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRateBurst, err)
		}
		cfg.RateBurst = burst
	}
	if v, ok := lookupEnv(EnvSeedDemo); ok {
		seed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeedDemo, err)
		}
		cfg.SeedDemo = seed
	}
	return nil
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	switch c.Store {
	case stockdash.StoreMemory, stockdash.StoreSQLite:
	default:
		return fmt.Errorf("unknown store %q (want %s or %s)", c.Store, stockdash.StoreMemory, stockdash.StoreSQLite)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative: %v", c.RateLimit)
	}
	if c.RateBurst < 0 {
		return fmt.Errorf("rate burst must not be negative: %d", c.RateBurst)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Addr is the listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ResolveLogDir returns the configured log directory, or a logs folder in
// the application config directory.
func (c Config) ResolveLogDir() (string, error) {
	dir := c.LogDir
	if dir == "" {
		base, err := appConfigDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(base, "logs")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func IsMacOS() bool {
	return runtime.GOOS == "darwin"
}

func IsWindows() bool {
	return runtime.GOOS == "windows"
}

func appConfigDir() (string, error) {
	if IsMacOS() {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support", "StockDash"), nil
	}
	if IsWindows() {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			appData = home
		}
		return filepath.Join(appData, "StockDash"), nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "stockdash"), nil
	}
	return filepath.Join(configDir, "stockdash"), nil
}

func appConfigPath() (string, error) {
	dir, err := appConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}
