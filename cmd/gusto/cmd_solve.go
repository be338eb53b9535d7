package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gusto/internal/config"
	"gusto/internal/render"
	"gusto/internal/solver"
	"gusto/internal/store"
)

// runSolve handles the root command: one problem from the arguments.
func runSolve(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	c, err := activeConfig()
	if err != nil {
		return err
	}

	problem := joinArgs(args)
	req := currentRequest(c, problem)
	logger.Debug("Dispatching", zap.String("mode", string(req.Mode)), zap.String("problem", problem))

	sol, err := solver.Dispatch(req)
	if err != nil {
		if errors.Is(err, solver.ErrEmptySeed) {
			return fmt.Errorf("%s mode: %w", req.Mode, err)
		}
		return err
	}

	r, err := newRenderer(c)
	if err != nil {
		return err
	}
	if err := r.Render(cmd.OutOrStdout(), sol); err != nil {
		return err
	}

	recordHistory(cmd.Context(), c, historyEntry(req, sol))
	return nil
}

// orSolve wraps a subcommand so that extra words turn the whole command line
// back into a problem: "gusto history of rome" brainstorms instead of failing.
func orSolve(run func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return run(cmd, args)
		}
		words := strings.Fields(cmd.CommandPath())[1:]
		return runSolve(cmd, append(words, args...))
	}
}

// currentMode maps the --prompt/--pack flags to a dispatch mode.
func currentMode() solver.Mode {
	switch {
	case promptMode:
		return solver.ModePrompt
	case packMode:
		return solver.ModePack
	default:
		return solver.ModeSolve
	}
}

func currentRequest(c *config.Config, text string) solver.Request {
	req := solver.Request{Mode: currentMode(), Text: text}
	if req.Mode == solver.ModePrompt {
		req.Medium = c.Prompt.DefaultMedium
	}
	return req
}

func newRenderer(c *config.Config) (*render.Renderer, error) {
	opts := render.OptionsFrom(c.Output)
	opts.AutoStyle = isTerminal()
	r, err := render.New(opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("Renderer ready", zap.String("format", r.Format()), zap.Bool("auto_style", opts.AutoStyle))
	return r, nil
}

// openHistory opens the configured history database.
func openHistory(c *config.Config) (*store.HistoryStore, error) {
	path := c.HistoryPath(resolveWorkspace())
	s, err := store.NewHistoryStore(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history at %s: %w", path, err)
	}
	return s, nil
}

func historyEntry(req solver.Request, sol solver.Solution) store.Entry {
	e := store.Entry{
		Mode:    string(req.Mode),
		Problem: req.Text,
		Kind:    sol.Kind,
		Answer:  sol.Answer,
		Details: sol.Details,
	}
	if req.Mode == solver.ModePrompt {
		e.Medium = solver.ResolveMedium(req.Text, req.Medium)
	}
	return e
}

// recordHistory stores entries when history is enabled. Failures are logged, not returned:
// the answers have already been printed.
func recordHistory(ctx context.Context, c *config.Config, entries ...store.Entry) {
	if !c.History.Enabled || len(entries) == 0 {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := openHistory(c)
	if err != nil {
		logger.Warn("History unavailable", zap.Error(err))
		return
	}
	defer s.Close()

	for _, entry := range entries {
		if _, err := s.Record(ctx, entry); err != nil {
			logger.Warn("Failed to record solution", zap.Error(err))
			return
		}
	}
}

func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func writeLine(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}
