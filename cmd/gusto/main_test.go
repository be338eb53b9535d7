package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"gusto/internal/batch"
	"gusto/internal/config"
	"gusto/internal/render"
	"gusto/internal/solver"
)

// setupTest resets package state so each test sees a fresh workspace and no flags.
func setupTest(t *testing.T) {
	t.Helper()
	logger = zap.NewNop()
	workspace = t.TempDir()
	configPath, format, medium = "", "", ""
	promptMode, packMode, verbose = false, false, false
	historyLimit, historyKind = 0, ""
	initForce = false
	cfg = nil

	for _, k := range []string{
		"GUSTO_FORMAT", "GUSTO_MEDIUM", "GUSTO_HISTORY_DB",
		"GUSTO_HISTORY", "GUSTO_BATCH_CONCURRENCY", "GUSTO_DEBUG",
	} {
		t.Setenv(k, "")
	}
	t.Cleanup(func() { cfg = nil })
}

// resetFlags puts every flag back to its default so repeated Execute calls start clean.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// executeArgs runs the full command line from a fresh workspace directory.
func executeArgs(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	setupTest(t)
	t.Chdir(workspace)
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	})

	err := execute(args)
	return out.String(), errOut.String(), err
}

func newTestCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	cmd := &cobra.Command{}
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	return cmd, &out, &errOut
}

func TestJoinArgs(t *testing.T) {
	got := joinArgs([]string{"anagram", "of", "listen"})
	if got != "anagram of listen" {
		t.Fatalf("expected 'anagram of listen', got '%s'", got)
	}
	if joinArgs(nil) != "" {
		t.Fatal("expected empty string for no args")
	}
}

func TestRunSolveMath(t *testing.T) {
	setupTest(t)
	cmd, out, _ := newTestCmd()

	if err := runSolve(cmd, []string{"2", "+", "3", "*", "4"}); err != nil {
		t.Fatalf("runSolve returned error: %v", err)
	}

	want := solver.Solve("2 + 3 * 4").Format() + "\n"
	if out.String() != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", out.String(), want)
	}
	if !strings.Contains(out.String(), "the answer is 14!") {
		t.Fatalf("expected 14 in output, got: %s", out.String())
	}
}

func TestRunSolveBrainstorm(t *testing.T) {
	setupTest(t)
	cmd, out, _ := newTestCmd()

	if err := runSolve(cmd, []string{"What is 10 / 4?"}); err != nil {
		t.Fatalf("runSolve returned error: %v", err)
	}
	if !strings.HasPrefix(out.String(), "✨ Brainstorm solution ready! ✨\n") {
		t.Fatalf("expected brainstorm banner, got: %s", out.String())
	}
	if !strings.Contains(out.String(), "'What is 10 / 4?'") {
		t.Fatalf("expected the raw problem in the answer, got: %s", out.String())
	}
}

func TestRunSolveNoArgsPrintsHelp(t *testing.T) {
	setupTest(t)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	if err := runSolve(rootCmd, nil); err != nil {
		t.Fatalf("runSolve returned error: %v", err)
	}
	if !strings.Contains(out.String(), "Usage:") {
		t.Fatalf("expected usage help, got: %s", out.String())
	}
}

func TestRunSolvePromptMode(t *testing.T) {
	setupTest(t)
	promptMode = true
	medium = "photo"
	cmd, out, _ := newTestCmd()

	if err := runSolve(cmd, []string{"sunrise", "over", "a", "pier"}); err != nil {
		t.Fatalf("runSolve returned error: %v", err)
	}
	if !strings.Contains(out.String(), "Creative Prompt solution ready!") {
		t.Fatalf("expected creative banner, got: %s", out.String())
	}
	if !strings.Contains(out.String(), "sunrise over a pier") {
		t.Fatalf("expected the seed in the prompt, got: %s", out.String())
	}
}

func TestRunSolvePromptEmptySeed(t *testing.T) {
	setupTest(t)
	promptMode = true
	cmd, out, _ := newTestCmd()

	err := runSolve(cmd, []string{"   "})
	if !errors.Is(err, solver.ErrEmptySeed) {
		t.Fatalf("expected ErrEmptySeed, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output on error, got: %s", out.String())
	}
}

func TestRunSolvePackMode(t *testing.T) {
	setupTest(t)
	packMode = true
	cmd, out, _ := newTestCmd()

	if err := runSolve(cmd, []string{"quiet", "forest"}); err != nil {
		t.Fatalf("runSolve returned error: %v", err)
	}
	want := "Prompt pack for 'quiet forest' — mood: dreamy, style: watercolor, sound: warm, motion: slow"
	if !strings.Contains(out.String(), want) {
		t.Fatalf("expected pack defaults, got: %s", out.String())
	}
}

func TestRunSolveInvalidMedium(t *testing.T) {
	setupTest(t)
	promptMode = true
	medium = "sculpture"
	cmd, _, _ := newTestCmd()

	err := runSolve(cmd, []string{"clay bust"})
	if err == nil || !strings.Contains(err.Error(), "default_medium") {
		t.Fatalf("expected invalid medium error, got %v", err)
	}
}

func TestRunSolveJSONFormat(t *testing.T) {
	setupTest(t)
	format = config.FormatJSON
	cmd, out, _ := newTestCmd()

	if err := runSolve(cmd, []string{"anagram of listen"}); err != nil {
		t.Fatalf("runSolve returned error: %v", err)
	}

	var sol solver.Solution
	if err := json.Unmarshal(out.Bytes(), &sol); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if sol.Kind != solver.KindAnagram {
		t.Fatalf("expected Anagram kind, got %s", sol.Kind)
	}
	for _, w := range []string{"silent", "enlist", "tinsel"} {
		if !strings.Contains(sol.Answer, w) {
			t.Errorf("expected %q in answer %q", w, sol.Answer)
		}
	}
}

func TestRunBatchFromFile(t *testing.T) {
	setupTest(t)
	path := filepath.Join(workspace, "problems.txt")
	if err := os.WriteFile(path, []byte("2 + 2\n\n  anagram of listen  \nplan a picnic\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cmd, out, _ := newTestCmd()

	if err := runBatch(cmd, []string{path}); err != nil {
		t.Fatalf("runBatch returned error: %v", err)
	}

	blocks := strings.Split(strings.TrimSpace(out.String()), "\n\n")
	if len(blocks) != 3 {
		t.Fatalf("expected 3 result blocks, got %d:\n%s", len(blocks), out.String())
	}
	for i, kind := range []string{"Math", "Anagram", "Brainstorm"} {
		if !strings.HasPrefix(blocks[i], "✨ "+kind+" solution ready!") {
			t.Errorf("block %d: expected %s, got: %s", i, kind, blocks[i])
		}
	}
}

func TestRunBatchFromStdin(t *testing.T) {
	setupTest(t)
	cmd, out, _ := newTestCmd()
	cmd.SetIn(strings.NewReader("10 // 3\n"))

	if err := runBatch(cmd, []string{"-"}); err != nil {
		t.Fatalf("runBatch returned error: %v", err)
	}
	if !strings.Contains(out.String(), "the answer is 3!") {
		t.Fatalf("expected floor division result, got: %s", out.String())
	}
}

func TestRunBatchMissingFile(t *testing.T) {
	setupTest(t)
	cmd, _, _ := newTestCmd()

	if err := runBatch(cmd, []string{filepath.Join(workspace, "missing.txt")}); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestInitConfigAndHistory(t *testing.T) {
	setupTest(t)

	cmd, out, _ := newTestCmd()
	if err := runInit(cmd, nil); err != nil {
		t.Fatalf("runInit returned error: %v", err)
	}
	if _, err := os.Stat(config.DefaultPath(workspace)); err != nil {
		t.Fatalf("expected config file: %v", err)
	}
	if !strings.Contains(out.String(), "Wrote") {
		t.Fatalf("expected init confirmation, got: %s", out.String())
	}

	cmd, out, _ = newTestCmd()
	if err := runInit(cmd, nil); err != nil {
		t.Fatalf("second runInit returned error: %v", err)
	}
	if !strings.Contains(out.String(), "already exists") {
		t.Fatalf("expected existing-config notice, got: %s", out.String())
	}

	cmd, _, _ = newTestCmd()
	if err := runSolve(cmd, []string{"6 * 7"}); err != nil {
		t.Fatalf("runSolve returned error: %v", err)
	}
	cmd, _, _ = newTestCmd()
	if err := runSolve(cmd, []string{"anagram of evil"}); err != nil {
		t.Fatalf("runSolve returned error: %v", err)
	}

	cmd, out, _ = newTestCmd()
	if err := runHistory(cmd, nil); err != nil {
		t.Fatalf("runHistory returned error: %v", err)
	}
	if !strings.Contains(out.String(), "[Math] 6 * 7") || !strings.Contains(out.String(), "[Anagram] anagram of evil") {
		t.Fatalf("expected both problems in history, got: %s", out.String())
	}
	if strings.Index(out.String(), "anagram of evil") > strings.Index(out.String(), "6 * 7") {
		t.Fatalf("expected newest first, got: %s", out.String())
	}

	historyKind = solver.KindMath
	cmd, out, _ = newTestCmd()
	if err := runHistory(cmd, nil); err != nil {
		t.Fatalf("runHistory returned error: %v", err)
	}
	if strings.Contains(out.String(), "anagram of evil") {
		t.Fatalf("expected kind filter to hide anagram, got: %s", out.String())
	}
	historyKind = ""

	cmd, out, _ = newTestCmd()
	if err := runHistoryStats(cmd, nil); err != nil {
		t.Fatalf("runHistoryStats returned error: %v", err)
	}
	if !strings.Contains(out.String(), "Total") || !strings.Contains(out.String(), "2") {
		t.Fatalf("unexpected stats output: %s", out.String())
	}

	cmd, out, _ = newTestCmd()
	if err := runHistoryClear(cmd, nil); err != nil {
		t.Fatalf("runHistoryClear returned error: %v", err)
	}
	if !strings.Contains(out.String(), "Cleared 2 solutions from "+filepath.Join(workspace, ".gusto", "history.db")) {
		t.Fatalf("unexpected clear output: %s", out.String())
	}
}

func TestHistoryDisabled(t *testing.T) {
	setupTest(t)
	cmd, out, _ := newTestCmd()

	if err := runHistory(cmd, nil); err != nil {
		t.Fatalf("runHistory returned error: %v", err)
	}
	if !strings.Contains(out.String(), "History is disabled") {
		t.Fatalf("expected disabled notice, got: %s", out.String())
	}
}

func TestRunConfigPrintsEffectiveConfig(t *testing.T) {
	setupTest(t)
	format = config.FormatMarkdown
	cmd, out, _ := newTestCmd()

	if err := runConfig(cmd, nil); err != nil {
		t.Fatalf("runConfig returned error: %v", err)
	}
	if !strings.Contains(out.String(), "format: markdown") {
		t.Fatalf("expected flag override in config output, got: %s", out.String())
	}
}

func TestNormalizeArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"negative first", []string{"-5", "+", "2"}, []string{"--", "-5", "+", "2"}},
		{"negative glued", []string{"-5+2"}, []string{"--", "-5+2"}},
		{"negative decimal", []string{"-.5", "*", "2"}, []string{"--", "-.5", "*", "2"}},
		{"negated group", []string{"-(2+3)"}, []string{"--", "-(2+3)"}},
		{"after bool flag", []string{"-v", "-5"}, []string{"-v", "--", "-5"}},
		{"after value flag", []string{"--format", "json", "-5"}, []string{"--format", "json", "--", "-5"}},
		{"after shorthand value flag", []string{"-f", "json", "-5"}, []string{"-f", "json", "--", "-5"}},
		{"after inline value", []string{"--format=json", "-5"}, []string{"--format=json", "--", "-5"}},
		{"later negative untouched", []string{"3", "-", "-2"}, []string{"3", "-", "-2"}},
		{"explicit terminator", []string{"--", "-5"}, []string{"--", "-5"}},
		{"flags only", []string{"--pack", "--prompt"}, []string{"--pack", "--prompt"}},
		{"plain words", []string{"anagram", "of", "listen"}, []string{"anagram", "of", "listen"}},
		{"empty", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeArgs(tt.args)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
				t.Fatalf("normalizeArgs(%q) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestExecute(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr string
	}{
		{
			name: "leading negative expression",
			args: []string{"-5", "+", "2"},
			want: []string{"✨ Math solution ready! ✨", "the answer is -3!"},
		},
		{
			name: "quoted leading negative expression",
			args: []string{"-5 + 2"},
			want: []string{"the answer is -3!"},
		},
		{
			name: "negative after value flag",
			args: []string{"--format", "text", "-2", "*", "3"},
			want: []string{"the answer is -6!"},
		},
		{
			name: "history with extra words",
			args: []string{"history", "of", "rome"},
			want: []string{"✨ Brainstorm solution ready! ✨", "'history of rome'"},
		},
		{
			name: "batch with extra words",
			args: []string{"batch", "of", "cookies"},
			want: []string{"✨ Brainstorm solution ready! ✨", "'batch of cookies'"},
		},
		{
			name: "config with extra words",
			args: []string{"config", "the", "router"},
			want: []string{"'config the router'"},
		},
		{
			name: "history stats with extra words",
			args: []string{"history", "stats", "for", "my", "team"},
			want: []string{"'history stats for my team'"},
		},
		{
			name: "terminator before subcommand name",
			args: []string{"--", "history", "of", "rome"},
			want: []string{"✨ Brainstorm solution ready! ✨", "'history of rome'"},
		},
		{
			name: "prompt with medium",
			args: []string{"--prompt", "--medium", "photo", "sunrise", "over", "a", "pier"},
			want: []string{"Creative Prompt solution ready!", "sunrise over a pier"},
		},
		{
			name:    "pack and prompt together",
			args:    []string{"--pack", "--prompt", "quiet", "forest"},
			wantErr: "none of the others can be",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := executeArgs(t, tt.args...)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				if out != "" {
					t.Fatalf("expected no output on error, got: %s", out)
				}
				return
			}
			if err != nil {
				t.Fatalf("execute(%q) returned error: %v", tt.args, err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("expected %q in output, got: %s", w, out)
				}
			}
		})
	}
}

func TestExecuteInitWithExtraWordsWritesNothing(t *testing.T) {
	out, _, err := executeArgs(t, "init", "a", "garden")
	if err != nil {
		t.Fatalf("execute returned error: %v", err)
	}
	if !strings.Contains(out, "'init a garden'") {
		t.Fatalf("expected brainstorm for the whole line, got: %s", out)
	}
	if _, err := os.Stat(config.DefaultPath(workspace)); !os.IsNotExist(err) {
		t.Fatalf("expected no config file, stat returned %v", err)
	}
}

func TestExecuteInitWithoutWords(t *testing.T) {
	out, _, err := executeArgs(t, "init")
	if err != nil {
		t.Fatalf("execute returned error: %v", err)
	}
	if !strings.Contains(out, "Wrote") {
		t.Fatalf("expected init confirmation, got: %s", out)
	}
}

func TestPrintItemsSeparatesOnlyRenderedItems(t *testing.T) {
	r, err := render.New(render.Options{Format: config.FormatText})
	if err != nil {
		t.Fatal(err)
	}
	items := []batch.Item{
		{Index: 0, Problem: "   ", Err: solver.ErrEmptySeed},
		{Index: 1, Problem: "2 + 2", Solution: solver.Solve("2 + 2")},
		{Index: 2, Problem: "  ", Err: solver.ErrEmptySeed},
		{Index: 3, Problem: "anagram of evil", Solution: solver.Solve("anagram of evil")},
	}

	var out, errOut bytes.Buffer
	solved, err := printItems(&out, &errOut, r, items)
	if err != nil {
		t.Fatalf("printItems returned error: %v", err)
	}
	if len(solved) != 2 || solved[0].Index != 1 || solved[1].Index != 3 {
		t.Fatalf("unexpected solved items: %+v", solved)
	}

	want := items[1].Solution.Format() + "\n\n" + items[3].Solution.Format() + "\n"
	if out.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", out.String(), want)
	}
	if !strings.Contains(errOut.String(), "line 1 ") || !strings.Contains(errOut.String(), "line 3 ") {
		t.Fatalf("expected both failures reported, got: %s", errOut.String())
	}
}
