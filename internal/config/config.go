package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv = "MOVIESYNC_CONFIG"

	databaseDSNEnv = "DATABASE_DSN"
	notionKeyEnv   = "MOVIESYNC_NOTION_KEY"
	databaseIDEnv  = "MOVIESYNC_DATABASE_ID"
	tmdbTokenEnv   = "TMDB_READ_TOKEN"
	logLevelEnv    = "MOVIESYNC_LOG_LEVEL"
)

// Config holds high-level settings required across the application.
type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
	TMDB    TMDBConfig    `yaml:"tmdb"`
	Notion  NotionConfig  `yaml:"notion"`
	Store   StoreConfig   `yaml:"store"`
	Batch   BatchConfig   `yaml:"batch"`
	Logging LoggingConfig `yaml:"logging"`
}

// CatalogConfig describes the review-site catalog endpoint.
type CatalogConfig struct {
	BaseURL        string `yaml:"baseUrl"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

// Timeout resolves the catalog request timeout.
func (c CatalogConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// TMDBConfig defines how to contact the TMDB API.
type TMDBConfig struct {
	BaseURL   string `yaml:"baseUrl"`
	ReadToken string `yaml:"readToken"`
	Language  string `yaml:"language"`
}

// NotionConfig wires all data required to push records into a Notion database.
type NotionConfig struct {
	BaseURL    string `yaml:"baseUrl"`
	Key        string `yaml:"key"`
	DatabaseID string `yaml:"databaseId"`
	Version    string `yaml:"version"`
}

// StoreConfig selects the record store backend.
type StoreConfig struct {
	Backend string `yaml:"backend"`
	DSN     string `yaml:"dsn"`
}

// BatchConfig tunes the reconciliation loop.
type BatchConfig struct {
	DelaySeconds int `yaml:"delaySeconds"`
}

// Delay resolves the per-row pause between catalog lookups.
func (b BatchConfig) Delay() time.Duration {
	return time.Duration(b.DelaySeconds) * time.Second
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides. The file path comes from MOVIESYNC_CONFIG, falling back to
// ~/.config/moviesync/config.yaml.
func Load() Config {
	return LoadPath(configPath())
}

// LoadPath is Load with an explicit configuration file path. An empty or
// missing path just yields the defaults plus environment overrides.
func LoadPath(path string) Config {
	cfg := defaultConfig()

	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
			}
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg
}

func configPath() string {
	if path := os.Getenv(configPathEnv); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "moviesync", "config.yaml")
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Store.DSN = v
	}

	if v := os.Getenv(notionKeyEnv); v != "" {
		c.Notion.Key = v
	}

	if v := os.Getenv(databaseIDEnv); v != "" {
		c.Notion.DatabaseID = v
	}

	if v := os.Getenv(tmdbTokenEnv); v != "" {
		c.TMDB.ReadToken = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Catalog.BaseURL != "" {
		base.Catalog.BaseURL = override.Catalog.BaseURL
	}
	if override.Catalog.TimeoutSeconds > 0 {
		base.Catalog.TimeoutSeconds = override.Catalog.TimeoutSeconds
	}

	if override.TMDB.BaseURL != "" {
		base.TMDB.BaseURL = override.TMDB.BaseURL
	}
	if override.TMDB.ReadToken != "" {
		base.TMDB.ReadToken = override.TMDB.ReadToken
	}
	if override.TMDB.Language != "" {
		base.TMDB.Language = override.TMDB.Language
	}

	if override.Notion.BaseURL != "" {
		base.Notion.BaseURL = override.Notion.BaseURL
	}
	if override.Notion.Key != "" {
		base.Notion.Key = override.Notion.Key
	}
	if override.Notion.DatabaseID != "" {
		base.Notion.DatabaseID = override.Notion.DatabaseID
	}
	if override.Notion.Version != "" {
		base.Notion.Version = override.Notion.Version
	}

	if override.Store.Backend != "" {
		base.Store.Backend = override.Store.Backend
	}
	if override.Store.DSN != "" {
		base.Store.DSN = override.Store.DSN
	}

	if override.Batch.DelaySeconds > 0 {
		base.Batch.DelaySeconds = override.Batch.DelaySeconds
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Catalog: CatalogConfig{
			BaseURL:        "https://www.rottentomatoes.com",
			TimeoutSeconds: 30,
		},
		TMDB: TMDBConfig{
			BaseURL:  "https://api.themoviedb.org/3",
			Language: "en-US",
		},
		Notion: NotionConfig{
			BaseURL: "https://api.notion.com/v1",
			Version: "2022-06-28",
		},
		Store: StoreConfig{Backend: "notion"},
		Batch: BatchConfig{DelaySeconds: 15},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
