package match

import (
	"slices"
	"testing"

	"MovieSync/internal/domain"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want []string
	}{
		{"Terminator 2: Judgment Day", []string{"terminator", "2", "judgment", "day"}},
		{"The Terminator", []string{"the", "terminator"}},
		{"  spaced   out  ", []string{"spaced", "out"}},
		{"", nil},
		{"---", nil},
	}

	for _, tc := range cases {
		got := Tokenize(tc.in)
		if len(got) == 0 && len(tc.want) == 0 {
			continue
		}
		if !slices.Equal(got, tc.want) {
			t.Fatalf("Tokenize(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func terminatorCandidates() []domain.Candidate {
	return []domain.Candidate{
		{Title: "Terminator 2: Judgment Day", Year: 1991, Href: "/m/terminator_2_judgment_day"},
		{Title: "The Terminator", Year: 1984, Href: "/m/the_terminator"},
	}
}

func TestMoviesSingleTokenReturnsBoth(t *testing.T) {
	t.Parallel()

	got := Movies(terminatorCandidates(), "terminator", 0)
	if len(got) != 2 {
		t.Fatalf("expected both candidates, got %d: %v", len(got), got)
	}
}

func TestMoviesExactWithYear(t *testing.T) {
	t.Parallel()

	got := Movies(terminatorCandidates(), "Terminator 2: Judgment Day", 1991)
	if len(got) != 1 {
		t.Fatalf("expected single exact match, got %d", len(got))
	}
	if got[0].Href != "/m/terminator_2_judgment_day" {
		t.Fatalf("unexpected match: %+v", got[0])
	}
}

func TestMoviesYearExcludes(t *testing.T) {
	t.Parallel()

	got := Movies(terminatorCandidates(), "Terminator 2: Judgment Day", 1984)
	if len(got) != 0 {
		t.Fatalf("expected no matches for wrong year, got %v", got)
	}
}

func TestMoviesEmptyCandidates(t *testing.T) {
	t.Parallel()

	for _, year := range []int{0, 1991} {
		if got := Movies(nil, "anything", year); len(got) != 0 {
			t.Fatalf("expected empty result for empty candidates, got %v", got)
		}
	}
}

// An exact hit must suppress every lower tier, even when the lower tiers would
// also be non-empty.
func TestMoviesTierPrecedence(t *testing.T) {
	t.Parallel()

	candidates := []domain.Candidate{
		{Title: "Alien", Year: 1979, Href: "/m/alien"},
		{Title: "Aliens", Year: 1986, Href: "/m/aliens"},
		{Title: "Alien: Resurrection", Year: 1997, Href: "/m/alien_resurrection"},
	}

	got := Movies(candidates, "Alien", 0)
	if len(got) != 1 || got[0].Href != "/m/alien" {
		t.Fatalf("exact tier should win alone, got %v", got)
	}
}

// Token runs must be contiguous and ordered; scattered or reordered tokens
// fall through to the substring tier (and miss it too here).
func TestMoviesTokenRunIsContiguous(t *testing.T) {
	t.Parallel()

	candidates := []domain.Candidate{
		{Title: "Judgment Day Terminator", Href: "/m/scrambled"},
	}

	if got := Movies(candidates, "terminator judgment", 0); len(got) != 0 {
		t.Fatalf("non-contiguous tokens must not match, got %v", got)
	}

	if got := Movies(candidates, "judgment day", 0); len(got) != 1 {
		t.Fatalf("contiguous interior run should match, got %v", got)
	}
}

func TestContainsRunQueryLongerThanTitle(t *testing.T) {
	t.Parallel()

	full := Tokenize("Alien")
	sub := Tokenize("Alien versus Predator")
	if containsRun(full, sub) {
		t.Fatal("a query longer than the title can never be a token run")
	}
}

func TestMoviesSubstringTier(t *testing.T) {
	t.Parallel()

	candidates := []domain.Candidate{
		{Title: "The Terminators", Year: 2009, Href: "/m/the_terminators"},
	}

	// "erminato" is no token run, only a raw substring.
	got := Movies(candidates, "erminato", 0)
	if len(got) != 1 {
		t.Fatalf("expected substring tier hit, got %v", got)
	}
}
