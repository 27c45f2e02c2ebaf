package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TERRAVERSE_ADDR",
		"TERRAVERSE_DB_DSN",
		"TERRAVERSE_MIGRATIONS_DIR",
		"TERRAVERSE_DB_AUTOMIGRATE",
		"TERRAVERSE_SNAPSHOT_DIR",
		"TERRAVERSE_RESULTS_DB",
		"TERRAVERSE_MAP_WIDTH",
		"TERRAVERSE_MAP_HEIGHT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Game.DefaultWidth != 10 || cfg.Game.DefaultHeight != 10 {
		t.Errorf("map size = %dx%d", cfg.Game.DefaultWidth, cfg.Game.DefaultHeight)
	}
	if !cfg.Database.AutoMigrate {
		t.Error("auto migrate should default on")
	}
	if cfg.Database.DSN != "" {
		t.Errorf("dsn = %q, want empty", cfg.Database.DSN)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte(`
server:
  addr: ":9090"
database:
  dsn: "postgres://localhost/terraverse"
  auto_migrate: false
snapshots:
  dir: "/var/lib/terraverse/snapshots"
game:
  default_width: 16
  default_height: 12
`)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Database.DSN != "postgres://localhost/terraverse" || cfg.Database.AutoMigrate {
		t.Errorf("database = %+v", cfg.Database)
	}
	if cfg.Snapshots.Dir != "/var/lib/terraverse/snapshots" {
		t.Errorf("snapshot dir = %q", cfg.Snapshots.Dir)
	}
	if cfg.Game.DefaultWidth != 16 || cfg.Game.DefaultHeight != 12 {
		t.Errorf("map size = %dx%d", cfg.Game.DefaultWidth, cfg.Game.DefaultHeight)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  addr: \":9090\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TERRAVERSE_ADDR", ":7070")
	t.Setenv("TERRAVERSE_MAP_WIDTH", "20")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("addr = %q, want env override", cfg.Server.Addr)
	}
	if cfg.Game.DefaultWidth != 20 {
		t.Errorf("width = %d, want env override", cfg.Game.DefaultWidth)
	}
	if cfg.Game.DefaultHeight != 10 {
		t.Errorf("height = %d, want file/default value", cfg.Game.DefaultHeight)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadRejectsBadMapSize(t *testing.T) {
	clearEnv(t)
	t.Setenv("TERRAVERSE_MAP_WIDTH", "-3")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for invalid map size")
	}
}
