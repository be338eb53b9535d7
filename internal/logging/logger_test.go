package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func resetLogging(t *testing.T) {
	t.Helper()
	CloseAll()
	configMu.Lock()
	settings = Settings{}
	logLevel = LevelInfo
	configMu.Unlock()
	t.Cleanup(func() {
		CloseAll()
		configMu.Lock()
		settings = Settings{}
		configMu.Unlock()
	})
}

func readLog(t *testing.T, dir string, cat Category) string {
	t.Helper()
	date := time.Now().Format("2006-01-02")
	data, err := os.ReadFile(filepath.Join(dir, date+"_"+string(cat)+".log"))
	if err != nil {
		t.Fatalf("read %s log: %v", cat, err)
	}
	return string(data)
}

// TestAllCategoriesLog checks every category writes its own file in debug mode.
func TestAllCategoriesLog(t *testing.T) {
	resetLogging(t)
	dir := filepath.Join(t.TempDir(), "logs")

	if err := Initialize(dir, Settings{DebugMode: true, Level: "debug"}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if !IsDebugMode() {
		t.Fatal("expected debug mode")
	}

	DispatchDebug("dispatch %d", 1)
	MathDebug("math")
	AnagramDebug("anagram")
	CreativeDebug("creative")
	Store("store")
	Batch("batch")
	RenderDebug("render")
	UI("ui")

	for _, cat := range []Category{
		CategoryBoot, CategoryDispatch, CategoryMath, CategoryAnagram,
		CategoryCreative, CategoryStore, CategoryBatch, CategoryRender, CategoryUI,
	} {
		content := readLog(t, dir, cat)
		if content == "" {
			t.Errorf("category %s wrote an empty log", cat)
		}
	}

	if got := readLog(t, dir, CategoryDispatch); !strings.Contains(got, "[DEBUG] dispatch 1") {
		t.Errorf("dispatch log missing message: %q", got)
	}
}

func TestDebugModeDisabled(t *testing.T) {
	resetLogging(t)
	dir := filepath.Join(t.TempDir(), "logs")

	if err := Initialize(dir, Settings{DebugMode: false}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	DispatchDebug("should not appear")
	Boot("nor this")

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("logs directory should not exist in production mode, stat err=%v", err)
	}
	if IsCategoryEnabled(CategoryDispatch) {
		t.Error("categories must be disabled when debug mode is off")
	}
}

func TestInitializeRequiresDir(t *testing.T) {
	resetLogging(t)
	if err := Initialize("", Settings{DebugMode: true}); err == nil {
		t.Fatal("expected error for empty dir")
	}
}

func TestCategoryToggle(t *testing.T) {
	resetLogging(t)
	dir := filepath.Join(t.TempDir(), "logs")

	err := Initialize(dir, Settings{
		DebugMode:  true,
		Level:      "debug",
		Categories: map[string]bool{"math": false, "anagram": true},
	})
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	if IsCategoryEnabled(CategoryMath) {
		t.Error("math should be disabled")
	}
	if !IsCategoryEnabled(CategoryAnagram) {
		t.Error("anagram should be enabled")
	}
	if !IsCategoryEnabled(CategoryStore) {
		t.Error("unlisted categories default to enabled")
	}

	MathDebug("hidden")
	date := time.Now().Format("2006-01-02")
	if _, err := os.Stat(filepath.Join(dir, date+"_math.log")); !os.IsNotExist(err) {
		t.Error("disabled category must not create a file")
	}
}

func TestLevelFiltering(t *testing.T) {
	resetLogging(t)
	dir := filepath.Join(t.TempDir(), "logs")

	if err := Initialize(dir, Settings{DebugMode: true, Level: "warn"}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	l := Get(CategoryStore)
	l.Debug("debug-line")
	l.Info("info-line")
	l.Warn("warn-line")
	l.Error("error-line")

	got := readLog(t, dir, CategoryStore)
	for _, hidden := range []string{"debug-line", "info-line"} {
		if strings.Contains(got, hidden) {
			t.Errorf("%s should be filtered at warn level", hidden)
		}
	}
	for _, shown := range []string{"[WARN] warn-line", "[ERROR] error-line"} {
		if !strings.Contains(got, shown) {
			t.Errorf("missing %q in %q", shown, got)
		}
	}
}

func TestRequestLoggerJSON(t *testing.T) {
	resetLogging(t)
	dir := filepath.Join(t.TempDir(), "logs")

	if err := Initialize(dir, Settings{DebugMode: true, Level: "debug", JSONFormat: true}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	WithRequestID(CategoryBatch, "req-123").WithField("line", 7).Info("solved")

	content := readLog(t, dir, CategoryBatch)
	idx := strings.Index(content, "{")
	if idx < 0 {
		t.Fatalf("no JSON in log: %q", content)
	}
	var entry StructuredLogEntry
	if err := json.Unmarshal([]byte(strings.TrimSpace(content[idx:])), &entry); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if entry.RequestID != "req-123" || entry.Message != "solved" || entry.Category != "batch" {
		t.Errorf("unexpected entry: %+v", entry)
	}
	if entry.Fields["line"] != float64(7) {
		t.Errorf("expected line field, got %v", entry.Fields)
	}
}

func TestTimerLogging(t *testing.T) {
	resetLogging(t)
	dir := filepath.Join(t.TempDir(), "logs")

	if err := Initialize(dir, Settings{DebugMode: true, Level: "debug"}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	timer := StartTimer(CategoryBatch, "batch run")
	if d := timer.Stop(); d < 0 {
		t.Errorf("negative duration %v", d)
	}
	StartTimer(CategoryBatch, "slow op").StopWithThreshold(-1)

	got := readLog(t, dir, CategoryBatch)
	if !strings.Contains(got, "batch run completed in") {
		t.Errorf("missing timer line: %q", got)
	}
	if !strings.Contains(got, "slow op took") {
		t.Errorf("missing threshold warning: %q", got)
	}
}
