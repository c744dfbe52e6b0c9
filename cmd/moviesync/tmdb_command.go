package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"MovieSync/internal/app"
	"MovieSync/internal/infrastructure/tmdb"
	"MovieSync/internal/ports"
	"MovieSync/internal/usecase"
)

func newTMDBCommand(ctx *commandContext) *cobra.Command {
	var (
		year           int
		dryRun         bool
		exactMatch     bool
		nonInteractive bool
	)

	cmd := &cobra.Command{
		Use:   "tmdb <query>...",
		Short: "Look a movie up on TMDB and push it into the record store",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger := ctx.ensure()

			if cfg.TMDB.ReadToken == "" {
				return fmt.Errorf("TMDB read token is not configured (set TMDB_READ_TOKEN)")
			}

			client := tmdb.NewClient(tmdb.Config{
				BaseURL:   cfg.TMDB.BaseURL,
				ReadToken: cfg.TMDB.ReadToken,
				Language:  cfg.TMDB.Language,
			}, nil)

			query := strings.Join(args, " ")
			results, err := client.SearchMovies(cmd.Context(), query, year)
			if err != nil {
				return err
			}

			if exactMatch {
				filtered := results[:0]
				for _, hit := range results {
					if strings.EqualFold(hit.Title, query) {
						filtered = append(filtered, hit)
					}
				}
				results = filtered
			}

			if len(results) == 0 {
				return fmt.Errorf("no matches for %q", query)
			}

			pick := results[0]
			if len(results) > 1 && !nonInteractive {
				pick, err = pickResult(cmd.InOrStdin(), results)
				if err != nil {
					return err
				}
			}

			record, err := client.MovieDetail(cmd.Context(), pick.ID)
			if err != nil {
				return err
			}
			movie := record.Movie()

			if dryRun {
				return printJSON(movie)
			}

			store, cleanup, err := app.Store(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			upserter := usecase.NewUpserter(store, usecase.FailExisting)
			ref, err := upserter.Upsert(cmd.Context(), movie, query, "")
			if errors.Is(err, ports.ErrAlreadyExists) {
				logger.Info("already in store, skipping", "title", movie.Title, "year", movie.Year, "ref", ref.URL)
				return nil
			}
			if err != nil {
				return err
			}

			logger.Info("created", "title", movie.Title, "year", movie.Year, "ref", ref.URL)
			return nil
		},
	}

	cmd.Flags().IntVarP(&year, "year", "y", 0, "Restrict to a primary release year")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the record instead of storing it")
	cmd.Flags().BoolVar(&exactMatch, "exact-match", false, "Keep only title-for-title matches")
	cmd.Flags().BoolVar(&nonInteractive, "non-interactive", false, "Take the first match without prompting")

	return cmd
}

// pickResult lists the candidates on stderr and reads a 1-based choice.
func pickResult(in io.Reader, results []tmdb.SearchResult) (tmdb.SearchResult, error) {
	for i, hit := range results {
		overview := hit.Overview
		if len(overview) > 120 {
			overview = overview[:120] + "..."
		}
		fmt.Fprintf(os.Stderr, "%2d. %s (%d) %s\n", i+1, hit.Title, hit.Year(), overview)
	}
	fmt.Fprintf(os.Stderr, "pick [1-%d]: ", len(results))

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil {
		return tmdb.SearchResult{}, fmt.Errorf("read choice: %w", err)
	}

	choice, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || choice < 1 || choice > len(results) {
		return tmdb.SearchResult{}, fmt.Errorf("invalid choice %q", strings.TrimSpace(line))
	}
	return results[choice-1], nil
}
