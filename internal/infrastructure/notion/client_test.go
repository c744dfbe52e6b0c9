package notion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"MovieSync/internal/domain"
	"MovieSync/internal/ports"
)

func testMovie() domain.Movie {
	audience, tomatometer, runtime := 94, 91, 137
	return domain.Movie{
		Candidate: domain.Candidate{
			Title: "Terminator 2: Judgment Day",
			Year:  1991,
			Href:  "https://www.rottentomatoes.com/m/terminator_2_judgment_day",
		},
		Audience:    &audience,
		Tomatometer: &tomatometer,
		Rating:      "R",
		Genres:      []string{"Sci-Fi", "Action"},
		Runtime:     &runtime,
	}
}

func TestQueryFiltersByHref(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/databases/db-1/query" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Notion-Version"); got != defaultVersion {
			t.Errorf("unexpected version header %q", got)
		}

		var body struct {
			Filter struct {
				Property string `json:"property"`
				URL      struct {
					Equals string `json:"equals"`
				} `json:"url"`
			} `json:"filter"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if body.Filter.Property != "Rotten Tomatoes URL" {
			t.Errorf("unexpected filter property %q", body.Filter.Property)
		}
		if body.Filter.URL.Equals == "" {
			t.Error("missing natural key in filter")
		}

		fmt.Fprint(w, `{"results":[{"id":"page-1","url":"https://notion.so/page-1"}],"has_more":false}`)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Key: "k", DatabaseID: "db-1"}, server.Client())
	refs, err := client.Query(context.Background(), testMovie().Href)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(refs) != 1 || refs[0].ID != "page-1" {
		t.Fatalf("unexpected refs: %+v", refs)
	}
}

func TestQueryFollowsPagination(t *testing.T) {
	t.Parallel()

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)

		if calls == 1 {
			if _, ok := body["start_cursor"]; ok {
				t.Error("first page must not send a cursor")
			}
			fmt.Fprint(w, `{"results":[{"id":"page-1"}],"has_more":true,"next_cursor":"cur-2"}`)
			return
		}
		if body["start_cursor"] != "cur-2" {
			t.Errorf("expected cursor cur-2, got %v", body["start_cursor"])
		}
		fmt.Fprint(w, `{"results":[{"id":"page-2"}],"has_more":false}`)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Key: "k", DatabaseID: "db-1"}, server.Client())
	refs, err := client.Query(context.Background(), "href")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(refs) != 2 || calls != 2 {
		t.Fatalf("expected 2 refs over 2 calls, got %d refs %d calls", len(refs), calls)
	}
}

func TestCreateBuildsRow(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		var body struct {
			Parent struct {
				DatabaseID string `json:"database_id"`
			} `json:"parent"`
			Properties map[string]json.RawMessage `json:"properties"`
			Children   []json.RawMessage          `json:"children"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if body.Parent.DatabaseID != "db-1" {
			t.Errorf("unexpected parent %q", body.Parent.DatabaseID)
		}
		for _, want := range []string{"Title", "Release Year", "Rotten Tomatoes URL", "Genre", "Runtime", "MPAA Rating", "Status"} {
			if _, ok := body.Properties[want]; !ok {
				t.Errorf("property %q missing", want)
			}
		}
		// Provenance block plus two note paragraphs.
		if len(body.Children) != 3 {
			t.Errorf("expected 3 content blocks, got %d", len(body.Children))
		}

		fmt.Fprint(w, `{"id":"page-9","url":"https://notion.so/page-9"}`)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Key: "k", DatabaseID: "db-1"}, server.Client())
	ref, err := client.Create(context.Background(), testMovie(), "terminator 2", "first note\n\nsecond note")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if ref.ID != "page-9" {
		t.Fatalf("unexpected ref: %+v", ref)
	}
}

func TestCreateWithoutRatingOmitsSelect(t *testing.T) {
	t.Parallel()

	movie := testMovie()
	movie.Rating = ""

	props := properties(movie)
	if _, ok := props["MPAA Rating"]; ok {
		t.Fatal("empty rating must not produce an MPAA Rating property")
	}
}

func TestStoreErrorWrapsSentinel(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"database not shared"}`, http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Key: "k", DatabaseID: "db-1"}, server.Client())
	_, err := client.Query(context.Background(), "href")
	if !errors.Is(err, ports.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}
