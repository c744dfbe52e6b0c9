package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MOVIESYNC_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("MOVIESYNC_NOTION_KEY", "")
	t.Setenv("MOVIESYNC_DATABASE_ID", "")
	t.Setenv("TMDB_READ_TOKEN", "")
	t.Setenv("MOVIESYNC_LOG_LEVEL", "")

	cfg := Load()

	if cfg.Catalog.BaseURL != "https://www.rottentomatoes.com" {
		t.Fatalf("unexpected catalog base: %s", cfg.Catalog.BaseURL)
	}
	if cfg.Store.Backend != "notion" {
		t.Fatalf("unexpected store backend: %s", cfg.Store.Backend)
	}
	if cfg.Batch.Delay() != 15*time.Second {
		t.Fatalf("unexpected delay: %s", cfg.Batch.Delay())
	}
	if cfg.Notion.Version != "2022-06-28" {
		t.Fatalf("unexpected notion version: %s", cfg.Notion.Version)
	}
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := []byte(`
catalog:
  baseUrl: https://tomatoes.test
  timeoutSeconds: 5
store:
  backend: postgres
  dsn: postgres://file@localhost/moviesync
batch:
  delaySeconds: 1
notion:
  key: from-file
`)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("MOVIESYNC_CONFIG", path)
	t.Setenv("DATABASE_DSN", "postgres://env@localhost/moviesync")
	t.Setenv("MOVIESYNC_NOTION_KEY", "")
	t.Setenv("MOVIESYNC_DATABASE_ID", "db-from-env")
	t.Setenv("TMDB_READ_TOKEN", "tmdb-token")
	t.Setenv("MOVIESYNC_LOG_LEVEL", "debug")

	cfg := Load()

	if cfg.Catalog.BaseURL != "https://tomatoes.test" || cfg.Catalog.Timeout() != 5*time.Second {
		t.Fatalf("file values not applied: %+v", cfg.Catalog)
	}
	if cfg.Store.Backend != "postgres" {
		t.Fatalf("file backend not applied: %s", cfg.Store.Backend)
	}
	if cfg.Store.DSN != "postgres://env@localhost/moviesync" {
		t.Fatalf("env DSN must win over file: %s", cfg.Store.DSN)
	}
	if cfg.Notion.Key != "from-file" {
		t.Fatalf("empty env var must not clear file value: %s", cfg.Notion.Key)
	}
	if cfg.Notion.DatabaseID != "db-from-env" {
		t.Fatalf("env database id not applied: %s", cfg.Notion.DatabaseID)
	}
	if cfg.TMDB.ReadToken != "tmdb-token" {
		t.Fatalf("env tmdb token not applied: %s", cfg.TMDB.ReadToken)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("env log level not applied: %s", cfg.Logging.Level)
	}
	if cfg.Batch.Delay() != time.Second {
		t.Fatalf("file delay not applied: %s", cfg.Batch.Delay())
	}
}

func TestMergeKeepsBaseWhenOverrideEmpty(t *testing.T) {
	t.Parallel()

	base := defaultConfig()
	merged := mergeConfig(base, Config{})

	if merged.Catalog.BaseURL != base.Catalog.BaseURL || merged.Batch.DelaySeconds != base.Batch.DelaySeconds {
		t.Fatalf("empty override must not clear defaults: %+v", merged)
	}
}
