package tomatoes

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"MovieSync/internal/domain"
	"MovieSync/internal/ports"
)

const defaultBaseURL = "https://www.rottentomatoes.com"

// Runtimes render as "2h 17m" or "95m" on detail pages.
var runtimeExpr = regexp.MustCompile(`(?:(\d+)h )?(\d+)m`)

// Scraper implements the catalog port against the Rotten Tomatoes website.
type Scraper struct {
	baseURL string
	client  *http.Client
}

var _ ports.Catalog = (*Scraper)(nil)

// NewScraper wires an HTTP client; nil selects a 20s-timeout default.
// An empty baseURL selects the production site.
func NewScraper(baseURL string, client *http.Client) *Scraper {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &Scraper{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// Search scrapes the movie slot of the search results page into candidates.
// A page without a movie slot is a valid empty result; a slot without its
// result list is a markup change and reported as a catalog failure.
func (s *Scraper) Search(ctx context.Context, phrase string) ([]domain.Candidate, error) {
	pageURL := s.baseURL + "/search?search=" + url.QueryEscape(phrase)

	doc, err := s.fetchDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	slot := doc.Find(`search-page-result[slot="movie"]`).First()
	if slot.Length() == 0 {
		return nil, nil
	}

	list := slot.Find("ul").First()
	if list.Length() == 0 {
		return nil, fmt.Errorf("%w: result list not found in movie slot", ports.ErrCatalogUnavailable)
	}

	var candidates []domain.Candidate
	list.Find("search-page-media-row").Each(func(_ int, row *goquery.Selection) {
		link := row.Find("a").Eq(1)
		href, _ := link.Attr("href")

		year, _ := strconv.Atoi(strings.TrimSpace(row.AttrOr("releaseyear", "")))

		candidates = append(candidates, domain.Candidate{
			Title: strings.TrimSpace(link.Text()),
			Year:  year,
			Href:  s.absolute(href),
		})
	})

	return candidates, nil
}

// Detail scrapes a movie page's score board into the canonical record. The
// href may be site-relative; the record always carries the absolute form,
// which is also the natural key downstream.
func (s *Scraper) Detail(ctx context.Context, href string) (domain.Movie, error) {
	href = s.absolute(href)

	doc, err := s.fetchDocument(ctx, href)
	if err != nil {
		return domain.Movie{}, err
	}

	board := doc.Find("score-board").First()
	if board.Length() == 0 {
		return domain.Movie{}, fmt.Errorf("%w: score board not found at %s", ports.ErrCatalogUnavailable, href)
	}

	title := strings.TrimSpace(board.Find(`h1[slot="title"]`).First().Text())
	if title == "" {
		return domain.Movie{}, fmt.Errorf("%w: title heading not found at %s", ports.ErrCatalogUnavailable, href)
	}

	info := strings.TrimSpace(board.Find(`p[slot="info"]`).First().Text())
	year, genres, runtime := parseInfo(info)

	return domain.Movie{
		Candidate: domain.Candidate{
			Title: title,
			Year:  year,
			Href:  href,
		},
		Audience:    scoreAttr(board, "audiencescore"),
		Tomatometer: scoreAttr(board, "tomatometerscore"),
		Rating:      strings.TrimSpace(board.AttrOr("rating", "")),
		Genres:      genres,
		Runtime:     runtime,
	}, nil
}

func (s *Scraper) absolute(href string) string {
	if href == "" || strings.HasPrefix(href, "http") {
		return href
	}
	return s.baseURL + href
}

func (s *Scraper) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "MovieSync/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request %s: %v", ports.ErrCatalogUnavailable, pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %s", ports.ErrCatalogUnavailable, pageURL, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ports.ErrCatalogUnavailable, pageURL, err)
	}

	return doc, nil
}

// parseInfo splits the score board's info line, which renders as
// "year, genre/genre, runtime", "genre/genre, runtime", or just "year".
func parseInfo(info string) (year int, genres []string, runtime *int) {
	if info == "" {
		return 0, nil, nil
	}

	var yearText, genreText, runtimeText string
	parts := strings.Split(info, ", ")
	switch len(parts) {
	case 3:
		yearText, genreText, runtimeText = parts[0], parts[1], parts[2]
	case 2:
		genreText, runtimeText = parts[0], parts[1]
	default:
		yearText = info
	}

	year, _ = strconv.Atoi(strings.TrimSpace(yearText))
	if genreText != "" {
		genres = strings.Split(genreText, "/")
	}
	runtime = computeMinutes(runtimeText)
	return year, genres, runtime
}

// computeMinutes turns "1h 37m" style runtimes into minutes, nil on no match.
func computeMinutes(runtime string) *int {
	m := runtimeExpr.FindStringSubmatch(runtime)
	if m == nil {
		return nil
	}

	hours := 0
	if m[1] != "" {
		hours, _ = strconv.Atoi(m[1])
	}
	minutes, _ := strconv.Atoi(m[2])

	total := 60*hours + minutes
	return &total
}

func scoreAttr(board *goquery.Selection, name string) *int {
	raw := strings.TrimSpace(board.AttrOr(name, ""))
	if raw == "" {
		return nil
	}
	score, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &score
}
