package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"MovieSync/internal/domain"
	"MovieSync/internal/ports"
)

const (
	defaultBaseURL = "https://api.themoviedb.org/3"
	webBaseURL     = "https://www.themoviedb.org"
)

// certSeverity orders US certifications so the strictest one wins when a
// title carries several release entries.
var certSeverity = map[string]int{
	"NR":    0,
	"G":     1,
	"PG":    2,
	"PG-13": 3,
	"R":     4,
	"NC-17": 5,
}

// Client talks to the TMDB API with a bearer read token. It doubles as a
// catalog backend: TMDB detail URLs act as the natural key the same way
// scraped detail pages do.
type Client struct {
	baseURL    string
	token      string
	language   string
	httpClient *http.Client
}

var _ ports.Catalog = (*Client)(nil)

// Config carries the TMDB endpoint and credentials.
type Config struct {
	BaseURL   string
	ReadToken string
	Language  string
}

// NewClient builds a client; nil httpClient selects a 20s-timeout default.
func NewClient(cfg Config, httpClient *http.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Language == "" {
		cfg.Language = "en-US"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.ReadToken,
		language:   cfg.Language,
		httpClient: httpClient,
	}
}

// SearchResult is a single TMDB movie search hit.
type SearchResult struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int64   `json:"vote_count"`
}

// Year extracts the release year, 0 when unknown.
func (r SearchResult) Year() int {
	if len(r.ReleaseDate) < 4 {
		return 0
	}
	year, _ := strconv.Atoi(r.ReleaseDate[:4])
	return year
}

type searchResponse struct {
	Results []SearchResult `json:"results"`
}

// SearchMovies queries the movie search endpoint, dropping hits that are
// actually collections (the collection search shares the query namespace).
func (c *Client) SearchMovies(ctx context.Context, query string, year int) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	params.Set("language", c.language)
	params.Set("page", "1")
	if year != 0 {
		params.Set("primary_release_year", strconv.Itoa(year))
	}

	var movies searchResponse
	if err := c.get(ctx, "/search/movie", params, &movies); err != nil {
		return nil, err
	}

	var collections searchResponse
	if err := c.get(ctx, "/search/collection", params, &collections); err != nil {
		return nil, err
	}

	excluded := make(map[int64]struct{}, len(collections.Results))
	for _, coll := range collections.Results {
		excluded[coll.ID] = struct{}{}
	}

	results := make([]SearchResult, 0, len(movies.Results))
	for _, hit := range movies.Results {
		if _, ok := excluded[hit.ID]; ok {
			continue
		}
		results = append(results, hit)
	}
	return results, nil
}

// MovieRecord is the detailed TMDB payload reduced to what the sync needs.
type MovieRecord struct {
	ID            int64
	Title         string
	Overview      string
	ReleaseDate   string
	Runtime       int
	Genres        []string
	Certification string
	VoteAverage   float64
	VoteCount     int64
}

type detailResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Overview    string `json:"overview"`
	ReleaseDate string `json:"release_date"`
	Runtime     int    `json:"runtime"`
	Genres      []struct {
		Name string `json:"name"`
	} `json:"genres"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int64   `json:"vote_count"`
	ReleaseDates struct {
		Results []struct {
			Country  string `json:"iso_3166_1"`
			Releases []struct {
				Certification string `json:"certification"`
			} `json:"release_dates"`
		} `json:"results"`
	} `json:"release_dates"`
}

// MovieDetail fetches full movie data, resolving the US certification to the
// strictest one on record (NR when none).
func (c *Client) MovieDetail(ctx context.Context, id int64) (MovieRecord, error) {
	params := url.Values{}
	params.Set("language", c.language)
	params.Set("append_to_response", "release_dates")

	var detail detailResponse
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", id), params, &detail); err != nil {
		return MovieRecord{}, err
	}

	genres := make([]string, 0, len(detail.Genres))
	for _, genre := range detail.Genres {
		genres = append(genres, genre.Name)
	}

	return MovieRecord{
		ID:            detail.ID,
		Title:         detail.Title,
		Overview:      detail.Overview,
		ReleaseDate:   detail.ReleaseDate,
		Runtime:       detail.Runtime,
		Genres:        genres,
		Certification: usCertification(detail),
		VoteAverage:   detail.VoteAverage,
		VoteCount:     detail.VoteCount,
	}, nil
}

func usCertification(detail detailResponse) string {
	cert := "NR"
	for _, country := range detail.ReleaseDates.Results {
		if country.Country != "US" {
			continue
		}
		for _, release := range country.Releases {
			candidate := release.Certification
			if candidate == "" {
				candidate = "NR"
			}
			if certSeverity[candidate] > certSeverity[cert] {
				cert = candidate
			}
		}
	}
	return cert
}

// Movie converts a detailed record into the canonical shape shared with the
// scraped catalog. The TMDB web URL becomes the natural key and the vote
// average (0-10) maps onto the 0-100 audience score.
func (r MovieRecord) Movie() domain.Movie {
	movie := domain.Movie{
		Candidate: domain.Candidate{
			Title: r.Title,
			Href:  DetailURL(r.ID),
		},
		Rating: r.Certification,
		Genres: r.Genres,
	}
	if len(r.ReleaseDate) >= 4 {
		movie.Year, _ = strconv.Atoi(r.ReleaseDate[:4])
	}
	if r.Runtime > 0 {
		runtime := r.Runtime
		movie.Runtime = &runtime
	}
	if r.VoteCount > 0 {
		audience := int(math.Round(r.VoteAverage * 10))
		movie.Audience = &audience
	}
	return movie
}

// DetailURL renders the canonical web URL for a TMDB movie id.
func DetailURL(id int64) string {
	return fmt.Sprintf("%s/movie/%d", webBaseURL, id)
}

// Search implements the catalog port on top of SearchMovies.
func (c *Client) Search(ctx context.Context, phrase string) ([]domain.Candidate, error) {
	results, err := c.SearchMovies(ctx, phrase, 0)
	if err != nil {
		return nil, err
	}

	candidates := make([]domain.Candidate, 0, len(results))
	for _, hit := range results {
		candidates = append(candidates, domain.Candidate{
			Title: hit.Title,
			Year:  hit.Year(),
			Href:  DetailURL(hit.ID),
		})
	}
	return candidates, nil
}

// Detail implements the catalog port for hrefs produced by Search.
func (c *Client) Detail(ctx context.Context, href string) (domain.Movie, error) {
	idText := href[strings.LastIndex(href, "/")+1:]
	id, err := strconv.ParseInt(idText, 10, 64)
	if err != nil {
		return domain.Movie{}, fmt.Errorf("%w: no movie id in %s", ports.ErrCatalogUnavailable, href)
	}

	record, err := c.MovieDetail(ctx, id)
	if err != nil {
		return domain.Movie{}, err
	}
	return record.Movie(), nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: request %s: %v", ports.ErrCatalogUnavailable, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned %s", ports.ErrCatalogUnavailable, path, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ports.ErrCatalogUnavailable, path, err)
	}

	return nil
}
