package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/bowl-game/bowl/internal/storage"
	"github.com/bowl-game/bowl/internal/testutil"
)

// execute runs the root command against dir and returns everything it printed.
func execute(t *testing.T, dir, stdin string, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--dir", dir}, args...))
	err := rootCmd.Execute()
	return buf.String(), err
}

func mustExecute(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := execute(t, dir, "", args...)
	if err != nil {
		t.Fatalf("bowl %s failed: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func lastActiveID(t *testing.T, dir string) string {
	t.Helper()
	kv, err := storage.NewSQLiteKV(filepath.Join(dir, ".bowl", "bowl.db"))
	if err != nil {
		t.Fatalf("NewSQLiteKV failed: %v", err)
	}
	defer kv.Close()
	id, err := storage.NewGameStorage(kv, zerolog.Nop()).LoadLastActiveID(context.Background())
	if err != nil {
		t.Fatalf("LoadLastActiveID failed: %v", err)
	}
	return id
}

func TestInitWritesConfigAndSetup(t *testing.T) {
	dir := t.TempDir()

	out := mustExecute(t, dir, "init", "--force")
	if !strings.Contains(out, "Bowl initialized") {
		t.Errorf("unexpected init output:\n%s", out)
	}
	for _, rel := range []string{".bowl/config.yaml", "setup.yaml", ".gitignore"} {
		if _, err := os.Stat(filepath.Join(dir, rel)); err != nil {
			t.Errorf("%s not written: %v", rel, err)
		}
	}
	gitignore, _ := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if !strings.Contains(string(gitignore), ".bowl/bowl.db") {
		t.Errorf(".gitignore missing database entry:\n%s", gitignore)
	}

	// The example setup starts a game as written.
	out = mustExecute(t, dir, "new", "-f", filepath.Join(dir, "setup.yaml"))
	if !strings.Contains(out, "New game with 22 cards") {
		t.Errorf("unexpected new output:\n%s", out)
	}

	// Reinitializing asks first; anything but yes aborts.
	forceFlag = false
	out, err := execute(t, dir, "n\n", "init")
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(out, "Aborted.") {
		t.Errorf("reinit without confirmation should abort:\n%s", out)
	}
}

func TestPlayAGameFromTheCommandLine(t *testing.T) {
	dir := testutil.TempProject(t, map[string]string{"setup.yaml": testutil.SetupYAML()})

	if out := mustExecute(t, dir, "status"); !strings.Contains(out, "No active game") {
		t.Errorf("status without a game:\n%s", out)
	}
	if _, err := execute(t, dir, "", "got"); err == nil {
		t.Error("got without a game should fail")
	}

	out := mustExecute(t, dir, "new", "-f", filepath.Join(dir, "setup.yaml"))
	if !strings.Contains(out, "Up next: Red") {
		t.Errorf("new game should announce the first team:\n%s", out)
	}
	id := lastActiveID(t, dir)
	if id == "" {
		t.Fatal("new game was not recorded as active")
	}

	out = mustExecute(t, dir, "start")
	if !strings.Contains(out, "Turn: Red") || !strings.Contains(out, "Card: ") {
		t.Errorf("start should show the running turn:\n%s", out)
	}
	if out := mustExecute(t, dir, "start"); !strings.Contains(out, "already running") {
		t.Errorf("second start should be a no-op:\n%s", out)
	}

	mustExecute(t, dir, "got")
	mustExecute(t, dir, "pass")
	mustExecute(t, dir, "undo")
	out = mustExecute(t, dir, "end")
	if !strings.Contains(out, "Up next: Blue") {
		t.Errorf("after end the other team is up:\n%s", out)
	}
	if out := mustExecute(t, dir, "undo"); !strings.Contains(out, "Nothing to undo.") {
		t.Errorf("undo between turns should be a no-op:\n%s", out)
	}

	out = mustExecute(t, dir, "report", "--save")
	for _, want := range []string{"Scoreboard", "Red", "Blue", "In progress", "Report written to"} {
		if !strings.Contains(out, want) {
			t.Errorf("report output missing %q:\n%s", want, out)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, ".bowl", "reports", id+".txt")); err != nil {
		t.Errorf("saved report missing: %v", err)
	}

	out = mustExecute(t, dir, "history")
	if !strings.Contains(out, id) {
		t.Errorf("history should list the game:\n%s", out)
	}
	out = mustExecute(t, dir, "history", id)
	for _, want := range []string{"session_created", "turn_started", "card_scored", "card_passed", "undo", "turn_ended"} {
		if !strings.Contains(out, want) {
			t.Errorf("event history missing %q:\n%s", want, out)
		}
	}

	out = mustExecute(t, dir, "clean", "--keep", "1", "--dry-run")
	if !strings.Contains(out, "No games to clean up.") {
		t.Errorf("the active game must never be pruned:\n%s", out)
	}

	out = mustExecute(t, dir, "reset", "--yes")
	if !strings.Contains(out, "All games deleted.") {
		t.Errorf("unexpected reset output:\n%s", out)
	}
	if out := mustExecute(t, dir, "status"); !strings.Contains(out, "No active game") {
		t.Errorf("status after reset:\n%s", out)
	}
}

func TestNewRejectsSmallDeck(t *testing.T) {
	dir := testutil.TempProject(t, map[string]string{
		"small.yaml": "teams: [A, B]\ncards:\n  - text: One\n  - text: Two\n",
	})
	_, err := execute(t, dir, "", "new", "-f", filepath.Join(dir, "small.yaml"))
	if err == nil || !strings.Contains(err.Error(), "starter_pack") {
		t.Errorf("small deck error = %v, want a starter_pack hint", err)
	}
}

func TestDotEnvOverridesConfig(t *testing.T) {
	dir := testutil.TempProject(t, map[string]string{
		"setup.yaml": testutil.SetupYAML(),
		".env":       "BOWL_DB=.bowl/other.db\n",
	})
	t.Setenv("BOWL_DB", "")
	os.Unsetenv("BOWL_DB")

	mustExecute(t, dir, "new", "-f", filepath.Join(dir, "setup.yaml"))
	if _, err := os.Stat(filepath.Join(dir, ".bowl", "other.db")); err != nil {
		t.Errorf("database from .env not used: %v", err)
	}
}

func TestNextClosesRoundResults(t *testing.T) {
	dir := testutil.TempProject(t, map[string]string{"setup.yaml": testutil.SetupYAML()})
	mustExecute(t, dir, "new", "-f", filepath.Join(dir, "setup.yaml"))

	if out := mustExecute(t, dir, "next"); !strings.Contains(out, "Nothing to continue.") {
		t.Errorf("next without results should be a no-op:\n%s", out)
	}

	mustExecute(t, dir, "start")
	var out string
	for i := 0; i < 12; i++ {
		out = mustExecute(t, dir, "got")
	}
	if !strings.Contains(out, "Describe complete. Run 'bowl next' to continue.") {
		t.Fatalf("emptying the bowl should show the round results:\n%s", out)
	}

	out = mustExecute(t, dir, "next")
	if strings.Contains(out, "Nothing to continue.") || !strings.Contains(out, "Phase: One Word (12 cards left in the bowl)") {
		t.Errorf("next should deal the one-word round:\n%s", out)
	}
	if !strings.Contains(out, fmt.Sprintf("  %-20s %3d", "Red", 12)) {
		t.Errorf("describe points should carry over:\n%s", out)
	}
}
