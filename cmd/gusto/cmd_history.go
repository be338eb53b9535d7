package main

import (
	"context"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gusto/internal/config"
	"gusto/internal/store"
)

var (
	historyLimit int
	historyKind  string
)

// historyCmd lists recorded solutions
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently solved problems",
	Long: `Lists solutions recorded in the history database, newest first.

History is recorded only when history.enabled is true in the config
(run "gusto init" to create a config with history switched on).`,
	Args: cobra.ArbitraryArgs,
	RunE: orSolve(runHistory),
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count recorded solutions by kind",
	Args:  cobra.ArbitraryArgs,
	RunE:  orSolve(runHistoryStats),
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded solutions",
	Args:  cobra.ArbitraryArgs,
	RunE:  orSolve(runHistoryClear),
}

// withHistory opens the history store for the read-only and maintenance commands.
func withHistory(cmd *cobra.Command, fn func(ctx context.Context, c *config.Config, s *store.HistoryStore) error) error {
	c, err := activeConfig()
	if err != nil {
		return err
	}
	if !c.History.Enabled {
		writeLine(cmd.OutOrStdout(), "History is disabled. Set history.enabled: true in %s or run `gusto init`.",
			config.DefaultPath(resolveWorkspace()))
		return nil
	}

	s, err := openHistory(c)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx, c, s)
}

func runHistory(cmd *cobra.Command, args []string) error {
	return withHistory(cmd, func(ctx context.Context, c *config.Config, s *store.HistoryStore) error {
		limit := historyLimit
		if limit <= 0 {
			limit = c.History.ListLimit
		}

		entries, err := s.Recent(ctx, limit, historyKind)
		if err != nil {
			return err
		}
		logger.Debug("Listing history", zap.Int("entries", len(entries)), zap.String("kind", historyKind))

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			writeLine(out, "No solutions recorded yet.")
			return nil
		}
		for _, e := range entries {
			label := e.Kind
			if e.Medium != "" {
				label += "/" + e.Medium
			}
			writeLine(out, "%s  [%s] %s", e.CreatedAt.Local().Format("2006-01-02 15:04:05"), label, e.Problem)
			writeLine(out, "    %s", e.Answer)
		}
		return nil
	})
}

func runHistoryStats(cmd *cobra.Command, args []string) error {
	return withHistory(cmd, func(ctx context.Context, c *config.Config, s *store.HistoryStore) error {
		counts, err := s.CountByKind(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(counts) == 0 {
			writeLine(out, "No solutions recorded yet.")
			return nil
		}

		kinds := make([]string, 0, len(counts))
		total := 0
		for k, n := range counts {
			kinds = append(kinds, k)
			total += n
		}
		sort.Strings(kinds)

		width := 0
		for _, k := range kinds {
			if len(k) > width {
				width = len(k)
			}
		}
		for _, k := range kinds {
			writeLine(out, "%-*s  %d", width, k, counts[k])
		}
		writeLine(out, "%s", strings.Repeat("-", width+6))
		writeLine(out, "%-*s  %d", width, "Total", total)
		return nil
	})
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	return withHistory(cmd, func(ctx context.Context, c *config.Config, s *store.HistoryStore) error {
		n, err := s.Clear(ctx)
		if err != nil {
			return err
		}
		writeLine(cmd.OutOrStdout(), "Cleared %d solutions from %s.", n, s.Path())
		return nil
	})
}
