package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

var envKeys = []string{
	EnvConfigPath, EnvHost, EnvPort, EnvLogDir, EnvLogLevel, EnvWebDir,
	EnvStore, EnvRateLimit, EnvRateBurst, EnvSeedDemo,
}

// isolateEnv points the config directory at a temp dir and unsets every
// STOCKDASH_* variable for the duration of the test.
func isolateEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, key := range envKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadDefaults(t *testing.T) {
	isolateEnv(t)

	cfg, err := LoadFrom("")
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if got := cfg.Addr(); got != "127.0.0.1:8000" {
		t.Fatalf("unexpected addr %q", got)
	}
}

func TestLoadPrecedence(t *testing.T) {
	home := isolateEnv(t)

	configPath := filepath.Join(home, "custom.json")
	writeFile(t, configPath, `{"port": 9000, "store": "sqlite", "log_level": "debug", "rate_limit": 5}`)
	t.Setenv(EnvConfigPath, configPath)

	dotenv := filepath.Join(home, ".env")
	writeFile(t, dotenv, "STOCKDASH_PORT=9100\nSTOCKDASH_SEED_DEMO=false\n")

	t.Setenv(EnvLogLevel, "warn")

	cfg, err := LoadFrom(dotenv)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Store != "sqlite" || cfg.RateLimit != 5 {
		t.Fatalf("expected file values, got %+v", cfg)
	}
	if cfg.Port != 9100 || cfg.SeedDemo {
		t.Fatalf("expected .env to override file, got %+v", cfg)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("expected environment to override file, got %q", cfg.LogLevel)
	}
	if cfg.Host != "127.0.0.1" {
		t.Fatalf("expected default host, got %q", cfg.Host)
	}
}

func TestLoadReadsAppConfigFile(t *testing.T) {
	isolateEnv(t)

	path, err := appConfigPath()
	if err != nil {
		t.Fatalf("appConfigPath: %v", err)
	}
	writeFile(t, path, `{"host": "0.0.0.0", "web_dir": "/srv/dashboard"}`)

	cfg, err := LoadFrom("")
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Host != "0.0.0.0" || cfg.WebDir != "/srv/dashboard" {
		t.Fatalf("expected app config values, got %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		home := isolateEnv(t)
		t.Setenv(EnvConfigPath, filepath.Join(home, "nope.json"))
		if _, err := LoadFrom(""); err == nil {
			t.Fatal("expected error for missing explicit config")
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		home := isolateEnv(t)
		path := filepath.Join(home, "config.json")
		writeFile(t, path, `{"db_name": "transactions.db"}`)
		t.Setenv(EnvConfigPath, path)
		_, err := LoadFrom("")
		if err == nil || !strings.Contains(err.Error(), "parse config") {
			t.Fatalf("expected parse error, got %v", err)
		}
	})

	t.Run("bad port", func(t *testing.T) {
		isolateEnv(t)
		t.Setenv(EnvPort, "eighty")
		if _, err := LoadFrom(""); err == nil || !strings.Contains(err.Error(), EnvPort) {
			t.Fatalf("expected port error, got %v", err)
		}
	})

	t.Run("bad seed flag", func(t *testing.T) {
		isolateEnv(t)
		t.Setenv(EnvSeedDemo, "maybe")
		if _, err := LoadFrom(""); err == nil {
			t.Fatal("expected seed parse error")
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"port", func(c *Config) { c.Port = 70000 }},
		{"store", func(c *Config) { c.Store = "redis" }},
		{"rate limit", func(c *Config) { c.RateLimit = -1 }},
		{"rate burst", func(c *Config) { c.RateBurst = -1 }},
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected %s to be rejected", tt.name)
			}
		})
	}
}

func TestResolveLogDir(t *testing.T) {
	isolateEnv(t)

	custom := filepath.Join(t.TempDir(), "logs")
	cfg := Default()
	cfg.LogDir = custom
	dir, err := cfg.ResolveLogDir()
	if err != nil {
		t.Fatalf("ResolveLogDir: %v", err)
	}
	if dir != custom {
		t.Fatalf("expected %q, got %q", custom, dir)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("expected log dir to be created: %v", err)
	}

	cfg.LogDir = ""
	dir, err = cfg.ResolveLogDir()
	if err != nil {
		t.Fatalf("ResolveLogDir default: %v", err)
	}
	base, _ := appConfigDir()
	if dir != filepath.Join(base, "logs") {
		t.Fatalf("expected default under %q, got %q", base, dir)
	}
}

func TestIsMacOSWindows(t *testing.T) {
	if IsMacOS() != (runtime.GOOS == "darwin") {
		t.Fatalf("IsMacOS mismatch")
	}
	if IsWindows() != (runtime.GOOS == "windows") {
		t.Fatalf("IsWindows mismatch")
	}
}
