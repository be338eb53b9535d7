// Package batch solves many problems concurrently and returns the results in input order.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"gusto/internal/logging"
	"gusto/internal/solver"
)

// DefaultConcurrency is used when a Runner has no positive limit.
const DefaultConcurrency = 4

// Func solves a single problem.
type Func func(ctx context.Context, problem string) (solver.Solution, error)

// Item is the outcome for one input line. Err holds a per-problem failure
// (for example an empty prompt seed); it does not stop the rest of the batch.
type Item struct {
	Index    int
	ID       string
	Problem  string
	Solution solver.Solution
	Err      error
}

// Runner runs a Func over a list of problems with bounded concurrency.
type Runner struct {
	Concurrency int
}

// NewRunner creates a Runner; n <= 0 falls back to DefaultConcurrency.
func NewRunner(n int) *Runner {
	if n <= 0 {
		n = DefaultConcurrency
	}
	return &Runner{Concurrency: n}
}

// Run solves every problem and returns one Item per problem in input order.
// Only context cancellation aborts the run.
func (r *Runner) Run(ctx context.Context, problems []string, fn Func) ([]Item, error) {
	limit := r.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	timer := logging.StartTimer(logging.CategoryBatch, "batch run")
	defer timer.Stop()

	items := make([]Item, len(problems))
	var failed atomic.Int64

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)

	for i, problem := range problems {
		if err := egCtx.Err(); err != nil {
			break
		}
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			id := uuid.NewString()
			log := logging.WithRequestID(logging.CategoryBatch, id).WithField("index", i)
			log.Debug("solving %q", problem)

			sol, err := fn(egCtx, problem)
			items[i] = Item{Index: i, ID: id, Problem: problem, Solution: sol, Err: err}
			if err != nil {
				failed.Add(1)
				log.Warn("problem failed: %v", err)
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("batch cancelled: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch cancelled: %w", err)
	}

	logging.Batch("solved %d problems (%d failed, concurrency %d)", len(problems), failed.Load(), limit)
	return items, nil
}

// ReadProblems reads one problem per line, trimming whitespace and skipping blank lines.
func ReadProblems(r io.Reader) ([]string, error) {
	var problems []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		problems = append(problems, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read problems: %w", err)
	}
	return problems, nil
}
