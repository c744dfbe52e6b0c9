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

func newNirvanaCommand(ctx *commandContext) *cobra.Command {
	var (
		inputPath    string
		failurePath  string
		catalogName  string
		skip         int
		delaySeconds int
		overwrite    bool
	)

	cmd := &cobra.Command{
		Use:   "nirvana",
		Short: "Reconcile a Nirvana watch-list export against a catalog",
		Long: "Reconcile a Nirvana watch-list export against a catalog. The export keeps " +
			"the title in column 5, optionally suffixed with \";year\", and notes in " +
			"column 12. Confirmed records go to stdout as JSONL; diagnostics to stderr.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger := ctx.ensure()

			catalog, err := app.Catalogs(cfg).Resolve(catalogName)
			if err != nil {
				return err
			}

			input, err := os.Open(inputPath)
			if err != nil {
				return fmt.Errorf("open input: %w", err)
			}
			defer input.Close()

			outputs, err := stream.OpenOutputs("", failurePath, overwrite)
			if err != nil {
				return err
			}
			defer outputs.Close()

			delay := cfg.Batch.Delay()
			if cmd.Flags().Changed("delay") {
				delay = time.Duration(delaySeconds) * time.Second
			}

			pipeline := usecase.NewPipeline(usecase.PipelineDeps{
				Catalog: catalog,
				Success: stream.NewSuccessWriter(os.Stdout),
				Failure: stream.NewFailureWriter(outputs.Failure),
				Logger:  logger.With("component", "pipeline"),
			})

			succeeded, failed, runErr := pipeline.Run(cmd.Context(), stream.NewNirvanaReader(input), usecase.BatchOptions{
				ResumeOffset: skip,
				Delay:        delay,
			})
			logger.Info("batch finished", "succeeded", succeeded, "failed", failed)
			return runErr
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Nirvana export CSV path")
	cmd.Flags().StringVarP(&failurePath, "failure", "f", "", "Failure stream destination")
	cmd.Flags().StringVar(&catalogName, "catalog", "tomatoes", "Catalog to search (tomatoes, tmdb)")
	cmd.Flags().IntVar(&skip, "skip", 0, "Skip rows with a smaller index (resume after abort)")
	cmd.Flags().IntVar(&delaySeconds, "delay", 0, "Seconds to pause after each row (default from config)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Append to an existing failure file instead of failing")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("failure")

	return cmd
}
