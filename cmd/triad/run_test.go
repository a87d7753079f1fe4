package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/triadhq/triad/internal/config"
	"github.com/triadhq/triad/internal/reward"
	"github.com/triadhq/triad/internal/store"
)

func TestSelectScenarios_Defaults(t *testing.T) {
	scenarios, err := selectScenarios("", nil)
	if err != nil {
		t.Fatalf("selectScenarios failed: %v", err)
	}
	if len(scenarios) != 3 {
		t.Errorf("scenarios = %d, want the 3 built-ins", len(scenarios))
	}
}

func TestSelectScenarios_ByName(t *testing.T) {
	scenarios, err := selectScenarios("", []string{"ContactsAdd", "SystemBrightnessMax"})
	if err != nil {
		t.Fatalf("selectScenarios failed: %v", err)
	}
	if len(scenarios) != 2 {
		t.Fatalf("scenarios = %d, want 2", len(scenarios))
	}
	// Argument order is preserved.
	if scenarios[0].Name != "ContactsAdd" || scenarios[1].Name != "SystemBrightnessMax" {
		t.Errorf("unexpected order: %s, %s", scenarios[0].Name, scenarios[1].Name)
	}
}

func TestSelectScenarios_Unknown(t *testing.T) {
	if _, err := selectScenarios("", []string{"NoSuchTask"}); err == nil {
		t.Error("expected error for unknown scenario name")
	}
}

func TestDecomposerOptions_BadStrategy(t *testing.T) {
	cfg := config.Default()
	if _, err := decomposerOptions(cfg, "quantum"); err == nil {
		t.Error("expected error for unknown strategy")
	}
}

func TestDecomposerOptions_FlagOverridesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Coordination.Strategy = "nonsense"

	// A valid flag value should win over the config entry.
	if _, err := decomposerOptions(cfg, "global"); err != nil {
		t.Errorf("decomposerOptions failed: %v", err)
	}
}

func TestRunner_WatchSwapsConfigBetweenEpisodes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("coordination:\n  strategy: greedy\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	r := &runner{tracker: reward.NewTracker()}
	r.cfg.Store(cfg)

	w, err := r.watchConfig(path)
	if err != nil {
		t.Fatalf("watchConfig failed: %v", err)
	}
	defer w.Close()

	// Give the watcher a moment to register before rewriting.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(path, []byte("coordination:\n  strategy: global\n"), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	// Read the config the way an episode would until the swap lands. The
	// reads race the watcher goroutine's store, which the atomic pointer
	// makes safe.
	deadline := time.After(3 * time.Second)
	for r.cfg.Load().Coordination.Strategy != "global" {
		select {
		case <-deadline:
			t.Fatalf("strategy = %q, want global after reload", r.cfg.Load().Coordination.Strategy)
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestWatchPath_ExplicitWins(t *testing.T) {
	if got := watchPath("/tmp/custom.yaml"); got != "/tmp/custom.yaml" {
		t.Errorf("watchPath = %q, want the explicit path", got)
	}
}

func TestWatchPath_FindsProjectConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".triad.yaml"), []byte("coordination:\n  strategy: greedy\n"), 0o644); err != nil {
		t.Fatalf("write project config: %v", err)
	}
	t.Chdir(dir)

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	want := filepath.Join(cwd, ".triad.yaml")
	if got := watchPath(""); got != want {
		t.Errorf("watchPath = %q, want %q", got, want)
	}
}

func TestWatchPath_FallsBackToUserConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(t.TempDir(), "xdg"))
	t.Chdir(t.TempDir())

	want := config.GetUserConfigPath()
	if got := watchPath(""); got != want {
		t.Errorf("watchPath = %q, want %q", got, want)
	}
}

func TestOpenStore_ProjectLocal(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".triad.yaml"), []byte("coordination:\n  strategy: greedy\n"), 0o644); err != nil {
		t.Fatalf("write project config: %v", err)
	}
	t.Chdir(dir)

	db, err := openStore(config.Default())
	if err != nil {
		t.Fatalf("openStore failed: %v", err)
	}
	defer db.Close()

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if want := store.ProjectDBPath(cwd); db.Path() != want {
		t.Errorf("store path = %q, want project-local %q", db.Path(), want)
	}
}

func TestOpenStore_ExplicitPathWinsOverProject(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".triad.yaml"), []byte("coordination:\n  strategy: greedy\n"), 0o644); err != nil {
		t.Fatalf("write project config: %v", err)
	}
	t.Chdir(dir)

	cfg := config.Default()
	cfg.Store.Path = filepath.Join(t.TempDir(), "explicit.db")

	db, err := openStore(cfg)
	if err != nil {
		t.Fatalf("openStore failed: %v", err)
	}
	defer db.Close()

	if db.Path() != cfg.Store.Path {
		t.Errorf("store path = %q, want %q", db.Path(), cfg.Store.Path)
	}
}

func TestMatrixFromConfig(t *testing.T) {
	matrix, err := matrixFromConfig([][]float64{
		{0.9, 0.3, 0.2},
		{0.2, 0.9, 0.3},
		{0.3, 0.2, 0.9},
	})
	if err != nil {
		t.Fatalf("matrixFromConfig failed: %v", err)
	}
	if matrix[1][1] != 0.9 {
		t.Errorf("matrix[1][1] = %v, want 0.9", matrix[1][1])
	}
}

func TestMatrixFromConfig_WrongShape(t *testing.T) {
	if _, err := matrixFromConfig([][]float64{{1, 2, 3}}); err == nil {
		t.Error("expected error for wrong row count")
	}
	if _, err := matrixFromConfig([][]float64{{1}, {2}, {3}}); err == nil {
		t.Error("expected error for wrong column count")
	}
}
