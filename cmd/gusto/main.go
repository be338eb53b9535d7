package main

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gusto/internal/config"
	"gusto/internal/logging"
	"gusto/internal/solver"
)

var (
	// Global flags
	verbose    bool
	workspace  string
	configPath string
	format     string

	// Mode flags
	promptMode bool
	packMode   bool
	medium     string

	// Logger
	logger *zap.Logger

	// Effective configuration, loaded in PersistentPreRunE
	cfg *config.Config
)

// rootCmd solves the problem given as arguments
var rootCmd = &cobra.Command{
	Use:   "gusto [flags] <problem...>",
	Short: "A joyful assistant that tackles small problems with gusto!",
	Long: `gusto answers small problems from the command line.

Arithmetic is evaluated safely, "anagram of <word>" finds anagram buddies,
and anything else gets a friendly brainstorm plan. With --prompt a few words
become a structured creative prompt; with --pack they become a five-medium
prompt pack.

Examples:
  gusto "2 + 3 * 4"
  gusto anagram of listen
  gusto --prompt --medium photo sunrise over a pier
  gusto --pack dreamy neon city at sunset`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		c, err := loadConfig()
		if err != nil {
			return err
		}
		cfg = c

		if err := logging.Initialize(config.LogsDir(resolveWorkspace()), cfg.Logging.Settings()); err != nil {
			logger.Warn("category logging disabled", zap.Error(err))
		}
		logging.BootDebug("command=%s format=%s history=%v", cmd.Name(), cfg.Output.Format, cfg.History.Enabled)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: runSolve,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: current)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: <workspace>/.gusto/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "", "Output format: text, styled, markdown, json")
	rootCmd.PersistentFlags().BoolVar(&promptMode, "prompt", false, "Turn a few words into a fully structured creative prompt")
	rootCmd.PersistentFlags().BoolVar(&packMode, "pack", false, "Turn a few words into a photo/video/music/art/poem prompt pack")
	rootCmd.PersistentFlags().StringVar(&medium, "medium", "", "Creative medium for --prompt: photo, video, music, art, poem, auto")
	rootCmd.MarkFlagsMutuallyExclusive("prompt", "pack")
	_ = rootCmd.RegisterFlagCompletionFunc("medium", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return append(solver.Media(), "auto"), cobra.ShellCompDirectiveNoFileComp
	})

	// Everything after the first word is the problem, even if it looks like a flag.
	rootCmd.Flags().SetInterspersed(false)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "Number of entries to show (default: history.list_limit)")
	historyCmd.Flags().StringVar(&historyKind, "kind", "", "Only show one solution kind, e.g. Math")
	historyCmd.AddCommand(historyStatsCmd)
	historyCmd.AddCommand(historyClearCmd)

	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")

	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := execute(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func execute(args []string) error {
	rootCmd.SetArgs(normalizeArgs(args))
	return rootCmd.Execute()
}

var leadingNegative = regexp.MustCompile(`^-[\d.(]`)

// normalizeArgs inserts "--" before a problem that starts with a negative number
// or expression ("gusto -5 + 2"), so it is not parsed as a shorthand flag.
// Scanning stops at the first positional argument or an explicit "--".
func normalizeArgs(args []string) []string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return args
		case leadingNegative.MatchString(arg):
			out := make([]string, 0, len(args)+1)
			out = append(out, args[:i]...)
			out = append(out, "--")
			return append(out, args[i:]...)
		case arg == "-" || !strings.HasPrefix(arg, "-"):
			return args
		case takesValue(arg):
			i++
		}
	}
	return args
}

// takesValue reports whether arg is a root flag whose value is the next argument.
func takesValue(arg string) bool {
	if strings.Contains(arg, "=") {
		return false
	}
	flags := rootCmd.Flags()
	flags.AddFlagSet(rootCmd.PersistentFlags())
	var name string
	if strings.HasPrefix(arg, "--") {
		name = strings.TrimPrefix(arg, "--")
	} else if len(arg) == 2 {
		if f := flags.ShorthandLookup(arg[1:]); f != nil {
			name = f.Name
		}
	}
	f := flags.Lookup(name)
	return f != nil && f.Value.Type() != "bool"
}

func resolveWorkspace() string {
	if workspace != "" {
		return workspace
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}

// loadConfig reads the config file and applies the --format and --medium flags on top.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath(resolveWorkspace())
	}
	c, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if format != "" {
		c.Output.Format = format
	}
	if medium != "" {
		c.Prompt.DefaultMedium = medium
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return c, nil
}

// activeConfig returns the loaded config, loading it when a command runs without the root pre-run.
func activeConfig() (*config.Config, error) {
	if cfg != nil {
		return cfg, nil
	}
	c, err := loadConfig()
	if err != nil {
		return nil, err
	}
	cfg = c
	return cfg, nil
}

func joinArgs(args []string) string {
	result := ""
	for i, arg := range args {
		if i > 0 {
			result += " "
		}
		result += arg
	}
	return result
}
