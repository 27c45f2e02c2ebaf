// Package config loads server configuration from an optional YAML file
// with environment variable overrides on top.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    Server    `yaml:"server"`
	Database  Database  `yaml:"database"`
	Snapshots Snapshots `yaml:"snapshots"`
	Results   Results   `yaml:"results"`
	Game      Game      `yaml:"game"`
}

type Server struct {
	Addr string `yaml:"addr"`
}

type Database struct {
	// DSN empty means in-memory repositories only.
	DSN           string `yaml:"dsn"`
	MigrationsDir string `yaml:"migrations_dir"`
	AutoMigrate   bool   `yaml:"auto_migrate"`
}

type Snapshots struct {
	// Dir empty disables the snapshot file store.
	Dir string `yaml:"dir"`
}

type Results struct {
	// Path empty disables the results index.
	Path string `yaml:"path"`
}

type Game struct {
	DefaultWidth  int `yaml:"default_width"`
	DefaultHeight int `yaml:"default_height"`
}

func Default() Config {
	return Config{
		Server:   Server{Addr: ":8080"},
		Database: Database{AutoMigrate: true},
		Game:     Game{DefaultWidth: 10, DefaultHeight: 10},
	}
}

// Load reads path when non-empty, then applies TERRAVERSE_* environment
// overrides. A missing file with an empty path is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&cfg)

	if cfg.Game.DefaultWidth <= 0 || cfg.Game.DefaultHeight <= 0 {
		return Config{}, fmt.Errorf("invalid default map size %dx%d", cfg.Game.DefaultWidth, cfg.Game.DefaultHeight)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Addr = strEnv("TERRAVERSE_ADDR", cfg.Server.Addr)
	cfg.Database.DSN = strEnv("TERRAVERSE_DB_DSN", cfg.Database.DSN)
	cfg.Database.MigrationsDir = strEnv("TERRAVERSE_MIGRATIONS_DIR", cfg.Database.MigrationsDir)
	cfg.Database.AutoMigrate = boolEnv("TERRAVERSE_DB_AUTOMIGRATE", cfg.Database.AutoMigrate)
	cfg.Snapshots.Dir = strEnv("TERRAVERSE_SNAPSHOT_DIR", cfg.Snapshots.Dir)
	cfg.Results.Path = strEnv("TERRAVERSE_RESULTS_DB", cfg.Results.Path)
	cfg.Game.DefaultWidth = intEnv("TERRAVERSE_MAP_WIDTH", cfg.Game.DefaultWidth)
	cfg.Game.DefaultHeight = intEnv("TERRAVERSE_MAP_HEIGHT", cfg.Game.DefaultHeight)
}

func strEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func boolEnv(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
