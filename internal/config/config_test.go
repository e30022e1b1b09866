package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.ListenAddr != ":8080" {
		t.Errorf("listen addr = %q", cfg.Server.ListenAddr)
	}
	if cfg.Cache.TTLMinutes != 60 {
		t.Errorf("cache ttl = %d", cfg.Cache.TTLMinutes)
	}
	if cfg.Schedule.PrefetchCron == "" {
		t.Error("prefetch cron default missing")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "server:\n  listen_addr: \":9000\"\ndatabase:\n  sqlite_path: \"data/x.db\"\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SQLITE_PATH", "data/override.db")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.ListenAddr != ":9000" {
		t.Errorf("listen addr = %q, want :9000", cfg.Server.ListenAddr)
	}
	if cfg.Database.SQLitePath != "data/override.db" {
		t.Errorf("sqlite path = %q, env override lost", cfg.Database.SQLitePath)
	}
}
