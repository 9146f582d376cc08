//-------------------------------------------------------------------------
//
// salescope: Retail Sales Analytics
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package report runs the analytics catalog over a cleaned dataset.
package report

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/salescope/salescope/internal/analytics"
	"github.com/salescope/salescope/internal/logging"
)

// QueryReport is the outcome of one catalog query.
type QueryReport struct {
	Name     string
	Result   *analytics.Result
	Duration time.Duration
	Err      error
}

// Runner evaluates catalog queries concurrently. The dataset is
// immutable, every query is an independent read, and each query writes
// to its own result slot, so the only synchronization needed is the
// wait group and the shared work index.
type Runner struct {
	dataset *analytics.Dataset
	params  analytics.Params
	workers int

	failed atomic.Int64
}

// NewRunner creates a runner with the given worker count.
func NewRunner(dataset *analytics.Dataset, params analytics.Params, workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{dataset: dataset, params: params, workers: workers}
}

// Run evaluates the given queries and returns one report per query, in
// catalog order regardless of completion order. A query failure is
// recorded in its report; other queries are unaffected. Run stops
// handing out work once ctx is cancelled.
func (r *Runner) Run(ctx context.Context, queries []analytics.Query) []QueryReport {
	reports := make([]QueryReport, len(queries))

	var next atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1)) - 1
				if i >= len(queries) {
					return
				}
				if ctx.Err() != nil {
					reports[i] = QueryReport{Name: queries[i].Name, Err: ctx.Err()}
					continue
				}
				reports[i] = r.runOne(queries[i])
			}
		}()
	}
	wg.Wait()

	return reports
}

// RunAll evaluates the full catalog.
func (r *Runner) RunAll(ctx context.Context) []QueryReport {
	return r.Run(ctx, analytics.Catalog())
}

// Failed returns the number of failed queries so far.
func (r *Runner) Failed() int64 {
	return r.failed.Load()
}

func (r *Runner) runOne(q analytics.Query) QueryReport {
	start := time.Now()
	result, err := q.Run(r.dataset, r.params)
	elapsed := time.Since(start)

	if err != nil {
		r.failed.Add(1)
		logging.Warn().
			Str("query", q.Name).
			Err(err).
			Msg("Query failed")
	} else {
		logging.Debug().
			Str("query", q.Name).
			Int("rows", len(result.Rows)).
			Dur("elapsed", elapsed).
			Msg("Query complete")
	}

	return QueryReport{
		Name:     q.Name,
		Result:   result,
		Duration: elapsed,
		Err:      err,
	}
}
