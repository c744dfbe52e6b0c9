package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"MovieSync/internal/domain"
	"MovieSync/internal/ports"
)

// RowReader yields input rows in order. Implementations decode one concrete
// tabular layout; io.EOF ends the batch.
type RowReader interface {
	Next() (domain.InputRow, error)
}

// SuccessSink receives confirmed canonical records together with their notes
// and the original query text. Backed by the success stream or, in live-store
// mode, by the duplicate-aware upsert.
type SuccessSink interface {
	Resolved(ctx context.Context, movie domain.Movie, original, notes string) error
}

// FailureSink receives rows that did not narrow to exactly one record, plus
// diagnostic candidates for the operator's edit-and-rerun loop.
type FailureSink interface {
	Unresolved(row domain.InputRow, candidates []domain.Candidate) error
}

// BatchOptions configures one pipeline run.
type BatchOptions struct {
	// ResumeOffset skips rows with a smaller index without any external call,
	// so an aborted run can be restarted past its last emitted row.
	ResumeOffset int

	// Delay is the unconditional pause after each processed row, keeping the
	// request cadence acceptable to the catalog.
	Delay time.Duration
}

// PipelineDeps wires the collaborators into the reconciliation pipeline.
type PipelineDeps struct {
	Catalog ports.Catalog
	Success SuccessSink
	Failure FailureSink
	Logger  *slog.Logger

	// Sleep substitutes the inter-row pause; nil means time.Sleep.
	Sleep func(time.Duration)
}

// Pipeline drives resolution over a batch of input rows, one row at a time:
// resolve, route to exactly one of the two sinks, pause. Strictly sequential;
// the catalog's request budget is the only scarce resource and is managed
// purely through the per-row delay.
type Pipeline struct {
	resolver *Resolver
	catalog  ports.Catalog
	success  SuccessSink
	failure  FailureSink
	logger   *slog.Logger
	sleep    func(time.Duration)
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	sleep := deps.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		resolver: NewResolver(deps.Catalog),
		catalog:  deps.Catalog,
		success:  deps.Success,
		failure:  deps.Failure,
		logger:   logger,
		sleep:    sleep,
	}
}

// Run processes every remaining row and reports how many rows landed in each
// sink. Catalog and sink failures abort the whole batch wrapped with the row
// index: a transport outage hits all subsequent rows equally, and a loud stop
// beats silent partial failure. Ambiguity is not an error, only a routed
// outcome.
func (p *Pipeline) Run(ctx context.Context, rows RowReader, opts BatchOptions) (succeeded, failed int, err error) {
	for {
		row, readErr := rows.Next()
		if errors.Is(readErr, io.EOF) {
			return succeeded, failed, nil
		}
		if readErr != nil {
			return succeeded, failed, fmt.Errorf("read input: %w", readErr)
		}

		if row.Index < opts.ResumeOffset {
			continue
		}

		outcome, resolveErr := p.resolveRow(ctx, row)
		if resolveErr != nil {
			return succeeded, failed, fmt.Errorf("row %d: %w", row.Index, resolveErr)
		}

		if routeErr := p.route(ctx, outcome); routeErr != nil {
			return succeeded, failed, fmt.Errorf("row %d: %w", row.Index, routeErr)
		}
		if outcome.Resolved() {
			succeeded++
		} else {
			failed++
		}

		if opts.Delay > 0 {
			p.sleep(opts.Delay)
		}
	}
}

func (p *Pipeline) resolveRow(ctx context.Context, row domain.InputRow) (domain.Outcome, error) {
	query := row.Query()
	if !query.Valid() {
		// Neither a title nor a reference; nothing to resolve, the operator
		// has to fill the row in by hand.
		p.logger.Warn("row has no title or reference", "index", row.Index)
		return domain.Outcome{Row: row}, nil
	}

	p.logger.Info("searching", "index", row.Index, "query", query.Original())

	res, err := p.resolver.Resolve(ctx, query)
	if err != nil {
		return domain.Outcome{}, err
	}

	switch len(res.Matches) {
	case 1:
		hit := res.Matches[0]
		movie, ok := res.Canonical(hit.Href)
		if !ok {
			movie, err = p.catalog.Detail(ctx, hit.Href)
			if err != nil {
				return domain.Outcome{}, fmt.Errorf("fetch %s: %w", hit.Href, err)
			}
		}
		return domain.Outcome{Row: row, Movie: &movie}, nil
	case 0:
		// Keep the fetched-but-mismatched record (direct references only) so
		// the failure stream shows what the URL actually resolved to.
		return domain.Outcome{Row: row, Candidates: res.Mismatched}, nil
	default:
		return domain.Outcome{Row: row, Candidates: res.Matches}, nil
	}
}

func (p *Pipeline) route(ctx context.Context, outcome domain.Outcome) error {
	if outcome.Resolved() {
		query := outcome.Row.Query()
		if err := p.success.Resolved(ctx, *outcome.Movie, query.Original(), query.Notes); err != nil {
			return err
		}
		p.logger.Info("resolved", "index", outcome.Row.Index, "title", outcome.Movie.Title, "year", outcome.Movie.Year)
		return nil
	}

	if err := p.failure.Unresolved(outcome.Row, outcome.Candidates); err != nil {
		return err
	}
	p.logger.Info("unresolved", "index", outcome.Row.Index, "candidates", len(outcome.Candidates))
	return nil
}
