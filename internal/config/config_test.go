package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DATABASE_URL", "GUILDRPC_LISTEN", "GUILDRPC_JWT_SECRET", "REDIS_URL", "LOG_LEVEL", "DATABASE_MAX_CONNECTIONS", envConfigPath} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}

func TestResolveConfigPath(t *testing.T) {
	clearEnv(t)
	if got := ResolveConfigPath(""); got != DefaultConfigPath {
		t.Fatalf("expected default path, got %q", got)
	}
	t.Setenv(envConfigPath, "/etc/guildrpc.yaml")
	if got := ResolveConfigPath(""); got != "/etc/guildrpc.yaml" {
		t.Fatalf("expected env path, got %q", got)
	}
	if got := ResolveConfigPath(" ./local.yaml "); got != "./local.yaml" {
		t.Fatalf("expected flag path, got %q", got)
	}
}

func TestLoadFileOverDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
server:
  listen: "0.0.0.0:8080"
  read_timeout: 5s
database:
  dsn: "postgres://bot:pw@db/guilds"
  max_open_conns: 20
logging:
  level: debug
  format: json
auth:
  jwt_secret: s3cret
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Listen != "0.0.0.0:8080" || cfg.Server.ReadTimeout != 5*time.Second {
		t.Fatalf("unexpected server config %+v", cfg.Server)
	}
	if cfg.Server.WriteTimeout != 15*time.Second {
		t.Fatalf("expected default write timeout, got %s", cfg.Server.WriteTimeout)
	}
	if cfg.Database.MaxOpenConns != 20 || cfg.Database.MaxIdleConns != 5 {
		t.Fatalf("unexpected pool config %+v", cfg.Database)
	}
	if !cfg.Auth.Enabled() {
		t.Fatalf("expected auth enabled")
	}
	if !cfg.Metrics.Enabled {
		t.Fatalf("expected metrics enabled by default")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "database:\n  dsn: \"file:guilds.db\"\n")
	t.Setenv("DATABASE_URL", "postgres://bot@db/guilds")
	t.Setenv("GUILDRPC_LISTEN", ":9000")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("DATABASE_MAX_CONNECTIONS", "8")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.DSN != "postgres://bot@db/guilds" {
		t.Fatalf("expected DATABASE_URL to win, got %q", cfg.Database.DSN)
	}
	if cfg.Server.Listen != ":9000" || cfg.Notify.RedisURL != "redis://localhost:6379/0" || cfg.Database.MaxOpenConns != 8 {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestLoadMissingDefaultFileUsesEnv(t *testing.T) {
	clearEnv(t)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("DATABASE_URL", "file:guilds.db")

	dsn, err := LoadDatabaseDSN(DefaultConfigPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if dsn != "file:guilds.db" {
		t.Fatalf("unexpected dsn %q", dsn)
	}
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "file:guilds.db")
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}

func TestLoadRejectsBadEnvNumber(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "database:\n  dsn: \"file:guilds.db\"\n")
	t.Setenv("DATABASE_MAX_CONNECTIONS", "five")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "DATABASE_MAX_CONNECTIONS") {
		t.Fatalf("expected DATABASE_MAX_CONNECTIONS error, got %v", err)
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Server.Listen = ""
	cfg.Database.MaxOpenConns = -1
	cfg.Logging.Level = "loud"
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"server.listen", "database.dsn", "max_open_conns", "logging.level", "logging.format"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}
}

func TestValidateDefaultsWithDSN(t *testing.T) {
	cfg := Default()
	cfg.Database.DSN = "file:guilds.db"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}
