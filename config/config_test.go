package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":3000" || cfg.Store.Driver != "memory" || cfg.Notify.Lifetime != 3*time.Second {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "server:\n  addr: \":8080\"\nstore:\n  driver: redis\nnotify:\n  lifetime: 5s\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("REDIS_DB", "2")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":8080" || cfg.Store.Driver != "redis" || cfg.Notify.Lifetime != 5*time.Second {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Redis.Addr != "cache:6379" || cfg.Redis.Database != 2 {
		t.Fatalf("env overrides not applied: %+v", cfg.Redis)
	}
	if cfg.Bootstrap.AdminEmail != "admin123@gmail.com" {
		t.Fatalf("defaults lost for unset sections: %+v", cfg.Bootstrap)
	}
}

func TestLoadConfigRejectsBadEnv(t *testing.T) {
	t.Setenv("REDIS_DB", "zero")
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for non-numeric REDIS_DB")
	}
}

func TestDSNFromParts(t *testing.T) {
	c := DatabaseConfig{Username: "u", Password: "p", Host: "h", Port: "1", Database: "d"}
	want := "u:p@tcp(h:1)/d?charset=utf8mb4&parseTime=True&loc=Local"
	if got := c.dsn(); got != want {
		t.Fatalf("dsn = %q, want %q", got, want)
	}
	c.DSN = "explicit"
	if c.dsn() != "explicit" {
		t.Fatalf("explicit dsn must win")
	}
}

func TestSetupStoreDrivers(t *testing.T) {
	cfg := Default()
	store, closeFn, err := SetupStore(cfg, zerolog.Nop())
	if err != nil || store == nil {
		t.Fatalf("memory store: %v", err)
	}
	closeFn()

	cfg.Store.Driver = "cassandra"
	if _, _, err := SetupStore(cfg, zerolog.Nop()); err == nil {
		t.Fatalf("expected unknown driver error")
	}
}
