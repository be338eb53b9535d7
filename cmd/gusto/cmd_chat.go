package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"gusto/cmd/gusto/chat"
	"gusto/internal/solver"
)

// chatCmd starts the interactive prompt
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Solve problems interactively",
	Long: `Opens an interactive prompt. Each line you enter is solved in the active
mode (--prompt, --pack or plain solve) and shown as a solution card.
Press Esc or Ctrl+C to quit.`,
	Args: cobra.ArbitraryArgs,
	RunE: orSolve(runChat),
}

func runChat(cmd *cobra.Command, args []string) error {
	c, err := activeConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	model, err := chat.New(string(currentMode()),
		func(text string) (solver.Solution, error) {
			return solver.Dispatch(currentRequest(c, text))
		},
		func(text string, sol solver.Solution) {
			recordHistory(ctx, c, historyEntry(currentRequest(c, text), sol))
		},
	)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat exited: %w", err)
	}
	return nil
}
