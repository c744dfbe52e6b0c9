package main

import (
	"strings"
	"testing"

	"MovieSync/internal/infrastructure/tmdb"
)

func TestPickResult(t *testing.T) {
	t.Parallel()

	results := []tmdb.SearchResult{
		{ID: 1, Title: "The Terminator", ReleaseDate: "1984-10-26"},
		{ID: 2, Title: "Terminator 2: Judgment Day", ReleaseDate: "1991-07-03"},
	}

	pick, err := pickResult(strings.NewReader("2\n"), results)
	if err != nil {
		t.Fatalf("pick: %v", err)
	}
	if pick.ID != 2 {
		t.Fatalf("picked %d, want 2", pick.ID)
	}

	if _, err := pickResult(strings.NewReader("0\n"), results); err == nil {
		t.Fatal("out-of-range choice must fail")
	}
	if _, err := pickResult(strings.NewReader("nope\n"), results); err == nil {
		t.Fatal("non-numeric choice must fail")
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	t.Parallel()

	root := newRootCommand()

	for _, name := range []string{"search", "csv", "nirvana", "notion", "tmdb"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Fatalf("subcommand %s not registered: %v", name, err)
		}
	}
}
