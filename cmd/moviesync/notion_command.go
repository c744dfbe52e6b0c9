package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"MovieSync/internal/app"
	"MovieSync/internal/infrastructure/stream"
	"MovieSync/internal/ports"
	"MovieSync/internal/usecase"
)

func newNotionCommand(ctx *commandContext) *cobra.Command {
	var (
		inputPath string
		strict    bool
	)

	cmd := &cobra.Command{
		Use:   "notion",
		Short: "Push a success stream into the configured record store",
		Long: "Push a success stream into the configured record store. Each line is " +
			"looked up by its catalog reference first; records already present are " +
			"skipped (or fatal with --strict), so a stream can be replayed safely.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger := ctx.ensure()

			in := os.Stdin
			if inputPath != "" && inputPath != "-" {
				f, err := os.Open(inputPath)
				if err != nil {
					return fmt.Errorf("open input: %w", err)
				}
				defer f.Close()
				in = f
			}

			store, cleanup, err := app.Store(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			upserter := usecase.NewUpserter(store, usecase.FailExisting)
			reader := stream.NewRecordReader(in)

			created, skipped := 0, 0
			for {
				record, err := reader.Next()
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					return err
				}

				ref, err := upserter.Upsert(cmd.Context(), record.Movie, record.Original, record.Notes)
				if errors.Is(err, ports.ErrAlreadyExists) {
					if strict {
						return err
					}
					logger.Info("already in store, skipping", "title", record.Title, "year", record.Year)
					skipped++
					continue
				}
				if err != nil {
					return err
				}

				created++
				logger.Info("created", "title", record.Title, "year", record.Year, "ref", ref.URL)
			}

			logger.Info("push finished", "created", created, "skipped", skipped)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Success stream path (default stdin)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on records already present in the store")

	return cmd
}
