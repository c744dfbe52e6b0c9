package app

import (
	"database/sql"
	"fmt"
	"net/http"

	"MovieSync/internal/catalog"
	"MovieSync/internal/config"
	"MovieSync/internal/infrastructure/notion"
	"MovieSync/internal/infrastructure/storage"
	"MovieSync/internal/infrastructure/tmdb"
	"MovieSync/internal/infrastructure/tomatoes"
	"MovieSync/internal/ports"
)

// Catalogs wires the configured catalog implementations into a registry.
func Catalogs(cfg config.Config) *catalog.Registry {
	registry := catalog.NewRegistry()

	registry.Register("tomatoes", tomatoes.NewScraper(cfg.Catalog.BaseURL, &http.Client{
		Timeout: cfg.Catalog.Timeout(),
	}))

	if cfg.TMDB.ReadToken != "" {
		registry.Register("tmdb", tmdb.NewClient(tmdb.Config{
			BaseURL:   cfg.TMDB.BaseURL,
			ReadToken: cfg.TMDB.ReadToken,
			Language:  cfg.TMDB.Language,
		}, nil))
	}

	return registry
}

// Store builds the configured record store backend. The returned cleanup
// releases any held connections and is safe to call once.
func Store(cfg config.Config) (ports.RecordStore, func() error, error) {
	switch cfg.Store.Backend {
	case "notion", "":
		client := notion.NewClient(notion.Config{
			BaseURL:    cfg.Notion.BaseURL,
			Key:        cfg.Notion.Key,
			DatabaseID: cfg.Notion.DatabaseID,
			Version:    cfg.Notion.Version,
		}, nil)
		return client, func() error { return nil }, nil

	case "postgres":
		if cfg.Store.DSN == "" {
			return nil, nil, fmt.Errorf("store backend postgres requires a DSN")
		}
		db, err := sql.Open("postgres", cfg.Store.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres store: %w", err)
		}
		return storage.NewPostgresStore(db), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
