package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"MovieSync/internal/app"
	"MovieSync/internal/infrastructure/stream"
	"MovieSync/internal/usecase"
)

func newCSVCommand(ctx *commandContext) *cobra.Command {
	var (
		inputPath    string
		successPath  string
		failurePath  string
		catalogName  string
		skip         int
		delaySeconds int
		overwrite    bool
		toStore      bool
	)

	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Reconcile a CSV watch list against a catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger := ctx.ensure()

			if !toStore && successPath == "" {
				return fmt.Errorf("either --success or --to-store is required")
			}

			catalog, err := app.Catalogs(cfg).Resolve(catalogName)
			if err != nil {
				return err
			}

			input, err := os.Open(inputPath)
			if err != nil {
				return fmt.Errorf("open input: %w", err)
			}
			defer input.Close()

			streamPath := successPath
			if toStore {
				streamPath = ""
			}
			outputs, err := stream.OpenOutputs(streamPath, failurePath, overwrite)
			if err != nil {
				return err
			}
			defer outputs.Close()

			var success usecase.SuccessSink
			if toStore {
				store, cleanup, err := app.Store(cfg)
				if err != nil {
					return err
				}
				defer cleanup()
				success = usecase.NewStoreSink(usecase.NewUpserter(store, usecase.SkipExisting), logger)
			} else {
				success = stream.NewSuccessWriter(outputs.Success)
			}

			delay := cfg.Batch.Delay()
			if cmd.Flags().Changed("delay") {
				delay = time.Duration(delaySeconds) * time.Second
			}

			pipeline := usecase.NewPipeline(usecase.PipelineDeps{
				Catalog: catalog,
				Success: success,
				Failure: stream.NewFailureWriter(outputs.Failure),
				Logger:  logger.With("component", "pipeline"),
			})

			succeeded, failed, runErr := pipeline.Run(cmd.Context(), stream.NewCSVReader(input), usecase.BatchOptions{
				ResumeOffset: skip,
				Delay:        delay,
			})
			logger.Info("batch finished", "succeeded", succeeded, "failed", failed)
			return runErr
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input CSV path")
	cmd.Flags().StringVarP(&successPath, "success", "s", "", "Success stream destination (JSONL)")
	cmd.Flags().StringVarP(&failurePath, "failure", "f", "", "Failure stream destination")
	cmd.Flags().StringVar(&catalogName, "catalog", "tomatoes", "Catalog to search (tomatoes, tmdb)")
	cmd.Flags().IntVar(&skip, "skip", 0, "Skip rows with a smaller index (resume after abort)")
	cmd.Flags().IntVar(&delaySeconds, "delay", 0, "Seconds to pause after each row (default from config)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Append to existing destination files instead of failing")
	cmd.Flags().BoolVar(&toStore, "to-store", false, "Upsert successes into the configured record store instead of a file")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("failure")

	return cmd
}
