package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"MovieSync/internal/domain"
	"MovieSync/internal/ports"
)

const (
	defaultBaseURL = "https://api.notion.com/v1"
	defaultVersion = "2022-06-28"

	queryPageSize = 100
)

// Client implements the record store port against a Notion database. The
// natural key is the "Rotten Tomatoes URL" url property.
type Client struct {
	baseURL    string
	key        string
	databaseID string
	version    string
	httpClient *http.Client
}

var _ ports.RecordStore = (*Client)(nil)

// Config carries the credentials and target database for a client.
type Config struct {
	BaseURL    string
	Key        string
	DatabaseID string
	Version    string
}

// NewClient builds a client; nil httpClient selects a 20s-timeout default.
func NewClient(cfg Config, httpClient *http.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Version == "" {
		cfg.Version = defaultVersion
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		key:        cfg.Key,
		databaseID: cfg.DatabaseID,
		version:    cfg.Version,
		httpClient: httpClient,
	}
}

type queryResponse struct {
	Results []struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	} `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

// Query returns every database row whose natural key equals href, following
// pagination so duplicate entries beyond the first page are not missed.
func (c *Client) Query(ctx context.Context, href string) ([]domain.StoreRef, error) {
	path := fmt.Sprintf("databases/%s/query", c.databaseID)

	var refs []domain.StoreRef
	cursor := ""
	for {
		body := map[string]any{
			"page_size": queryPageSize,
			"filter": map[string]any{
				"property": "Rotten Tomatoes URL",
				"url":      map[string]any{"equals": href},
			},
		}
		if cursor != "" {
			body["start_cursor"] = cursor
		}

		var page queryResponse
		if err := c.post(ctx, path, body, &page); err != nil {
			return nil, err
		}

		for _, result := range page.Results {
			refs = append(refs, domain.StoreRef{ID: result.ID, URL: result.URL})
		}

		if !page.HasMore {
			return refs, nil
		}
		cursor = page.NextCursor
	}
}

// Create appends one database row for the record, with the original search
// phrase and any notes as page content.
func (c *Client) Create(ctx context.Context, movie domain.Movie, original, notes string) (domain.StoreRef, error) {
	body := map[string]any{
		"parent": map[string]any{
			"type":        "database_id",
			"database_id": c.databaseID,
		},
		"properties": properties(movie),
		"children":   blocks(original, notes),
	}

	var created struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	if err := c.post(ctx, "pages", body, &created); err != nil {
		return domain.StoreRef{}, err
	}
	return domain.StoreRef{ID: created.ID, URL: created.URL}, nil
}

func properties(movie domain.Movie) map[string]any {
	props := map[string]any{
		"Title": map[string]any{
			"title": []any{
				map[string]any{
					"type": "text",
					"text": map[string]any{"content": movie.Title},
				},
			},
		},
		"Release Year":        map[string]any{"number": numberOrNil(movie.Year)},
		"Rotten Tomatoes URL": map[string]any{"url": movie.Href},
		"Audience Score":      map[string]any{"number": movie.Audience},
		"Tomatometer":         map[string]any{"number": movie.Tomatometer},
		"Genre":               map[string]any{"multi_select": multiSelect(movie.Genres)},
		"Runtime":             map[string]any{"number": movie.Runtime},
		"Status": map[string]any{
			"select": map[string]any{"name": "want to watch"},
		},
	}

	if movie.Rating != "" {
		props["MPAA Rating"] = map[string]any{
			"select": map[string]any{"name": movie.Rating},
		}
	}

	return props
}

// blocks renders the provenance paragraph plus one paragraph per blank-line
// separated chunk of notes; "\n" escapes in notes are honored.
func blocks(original, notes string) []any {
	out := []any{
		map[string]any{
			"object": "block",
			"type":   "paragraph",
			"paragraph": map[string]any{
				"text": []any{
					map[string]any{
						"type":        "text",
						"text":        map[string]any{"content": "Original search phrase: "},
						"annotations": map[string]any{"bold": true},
					},
					map[string]any{
						"type":        "text",
						"text":        map[string]any{"content": original},
						"annotations": map[string]any{"code": true},
					},
				},
			},
		},
	}

	if notes == "" {
		return out
	}

	for _, text := range strings.Split(strings.ReplaceAll(notes, `\n`, "\n"), "\n\n") {
		out = append(out, map[string]any{
			"object": "block",
			"type":   "paragraph",
			"paragraph": map[string]any{
				"text": []any{
					map[string]any{
						"type": "text",
						"text": map[string]any{"content": text},
					},
				},
			},
		})
	}

	return out
}

func multiSelect(genres []string) []any {
	tags := make([]any, 0, len(genres))
	for _, genre := range genres {
		tags = append(tags, map[string]any{"name": genre})
	}
	return tags
}

func numberOrNil(n int) any {
	if n == 0 {
		return nil
	}
	return n
}

func (c *Client) post(ctx context.Context, path string, payload, v any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Notion-Version", c.version)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ports.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: %s: %s", ports.ErrStoreUnavailable, resp.Status, strings.TrimSpace(string(detail)))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: decode response: %v", ports.ErrStoreUnavailable, err)
	}

	return nil
}
