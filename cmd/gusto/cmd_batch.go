package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gusto/internal/batch"
	"gusto/internal/render"
	"gusto/internal/solver"
	"gusto/internal/store"
)

// batchCmd solves one problem per input line
var batchCmd = &cobra.Command{
	Use:   "batch [file|-]",
	Short: "Solve one problem per line from a file or stdin",
	Long: `Reads problems one per line (blank lines are skipped), solves them in parallel
in the active mode (--prompt, --pack or plain solve) and prints the results in
input order, separated by blank lines.

With no argument or "-", problems are read from stdin. More than one word is
solved as a single problem ("gusto batch of cookies").`,
	Args: cobra.ArbitraryArgs,
	RunE: runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return runSolve(cmd, append([]string{cmd.Name()}, args...))
	}

	c, err := activeConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open problems file: %w", err)
		}
		defer f.Close()
		in = f
	}

	problems, err := batch.ReadProblems(in)
	if err != nil {
		return err
	}
	if len(problems) == 0 {
		logger.Info("No problems to solve")
		return nil
	}

	r, err := newRenderer(c)
	if err != nil {
		return err
	}

	mode := currentMode()
	logger.Debug("Running batch",
		zap.Int("problems", len(problems)),
		zap.String("mode", string(mode)),
		zap.Int("concurrency", c.Batch.Concurrency))

	runner := batch.NewRunner(c.Batch.Concurrency)
	items, err := runner.Run(ctx, problems, func(ctx context.Context, problem string) (solver.Solution, error) {
		return solver.Dispatch(currentRequest(c, problem))
	})
	if err != nil {
		return err
	}

	solved, err := printItems(cmd.OutOrStdout(), cmd.ErrOrStderr(), r, items)
	if err != nil {
		return err
	}

	entries := make([]store.Entry, 0, len(solved))
	for _, item := range solved {
		entries = append(entries, historyEntry(currentRequest(c, item.Problem), item.Solution))
	}
	recordHistory(ctx, c, entries...)

	if failed := len(items) - len(solved); failed > 0 {
		return fmt.Errorf("%d of %d problems failed", failed, len(items))
	}
	return nil
}

// printItems renders the solved items to out, separated by blank lines, and
// reports failed ones on errOut. It returns the items that were rendered.
func printItems(out, errOut io.Writer, r *render.Renderer, items []batch.Item) ([]batch.Item, error) {
	var solved []batch.Item
	for _, item := range items {
		if item.Err != nil {
			fmt.Fprintf(errOut, "line %d (%q): %v\n", item.Index+1, item.Problem, item.Err)
			continue
		}
		if len(solved) > 0 {
			fmt.Fprintln(out)
		}
		if err := r.Render(out, item.Solution); err != nil {
			return solved, err
		}
		solved = append(solved, item)
	}
	return solved, nil
}
