package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"MovieSync/internal/app"
	"MovieSync/internal/domain"
	"MovieSync/internal/infrastructure/stream"
	"MovieSync/internal/usecase"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var catalogName string

	cmd := &cobra.Command{
		Use:   "search <phrase> [year]",
		Short: "Resolve a single title against a catalog",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _ := ctx.ensure()

			catalog, err := app.Catalogs(cfg).Resolve(catalogName)
			if err != nil {
				return err
			}

			query := domain.SearchQuery{Title: args[0]}
			if len(args) == 2 {
				query.Year = stream.ParseYear(args[1])
				if query.Year == 0 {
					return fmt.Errorf("invalid year %q", args[1])
				}
			}

			resolver := usecase.NewResolver(catalog)
			res, err := resolver.Resolve(cmd.Context(), query)
			if err != nil {
				return err
			}

			switch len(res.Matches) {
			case 1:
				movie, err := catalog.Detail(cmd.Context(), res.Matches[0].Href)
				if err != nil {
					return err
				}
				return printJSON(movie)
			case 0:
				return fmt.Errorf("no matches for %s", query.Original())
			default:
				fmt.Fprintf(os.Stderr, "%d matches for %s:\n", len(res.Matches), query.Original())
				return printJSON(res.Matches)
			}
		},
	}

	cmd.Flags().StringVar(&catalogName, "catalog", "tomatoes", "Catalog to search (tomatoes, tmdb)")

	return cmd
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
