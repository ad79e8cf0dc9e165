package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"statlab/domain/analysis"
	"statlab/domain/sample"
)

// BatchResult pairs one record with its report or the error that stopped it.
// Records are independent, so one failure never cancels the others.
type BatchResult struct {
	Name   string
	Report *analysis.Report
	Err    error
}

// BatchRunner analyzes independent records concurrently. Each record's
// pipeline is strictly ordered internally; only whole records run in
// parallel.
type BatchRunner struct {
	service     *AnalysisService
	concurrency int
}

// NewBatchRunner creates a batch runner. Concurrency below 1 means
// unbounded.
func NewBatchRunner(service *AnalysisService, concurrency int) *BatchRunner {
	return &BatchRunner{service: service, concurrency: concurrency}
}

// Run analyzes every record and returns results in input order. The only
// error returned is context cancellation.
func (b *BatchRunner) Run(ctx context.Context, records []*sample.Record) ([]BatchResult, error) {
	results := make([]BatchResult, len(records))

	g, ctx := errgroup.WithContext(ctx)
	if b.concurrency > 0 {
		g.SetLimit(b.concurrency)
	}

	for i, record := range records {
		i, record := i, record
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report, err := b.service.Analyze(record)
			results[i] = BatchResult{Name: record.Name, Report: report, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
