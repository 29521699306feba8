package cleanup

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/bowl-game/bowl/internal/game"
	"github.com/bowl-game/bowl/internal/storage"
)

// createMockSession stores a session created daysAgo days before now.
func createMockSession(t *testing.T, gs *storage.GameStorage, id string, daysAgo int) string {
	t.Helper()
	s := game.Session{
		ID:         id,
		CreatedAt:  time.Now().AddDate(0, 0, -daysAgo).UnixMilli(),
		Phase:      game.PhaseDescribe,
		GameStatus: game.StatusPlaying,
	}
	if err := gs.SaveSession(context.Background(), s); err != nil {
		t.Fatalf("creating mock session %s: %v", id, err)
	}
	return id
}

func newStorage() *storage.GameStorage {
	return storage.NewGameStorage(storage.NewMemoryKV(), zerolog.Nop())
}

func remaining(t *testing.T, gs *storage.GameStorage) []string {
	t.Helper()
	sessions, err := gs.ListSessions(context.Background())
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	var ids []string
	for _, s := range sessions {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestPruneByAge_RemovesOldSessions(t *testing.T) {
	ctx := context.Background()
	gs := newStorage()
	old := createMockSession(t, gs, "old", 60)
	recent := createMockSession(t, gs, "recent", 5)

	pruned, err := PruneByAge(ctx, gs, 30, false)
	if err != nil {
		t.Fatalf("PruneByAge failed: %v", err)
	}

	if len(pruned) != 1 || pruned[0] != old {
		t.Errorf("expected pruned=[%s], got %v", old, pruned)
	}
	if got := remaining(t, gs); !reflect.DeepEqual(got, []string{recent}) {
		t.Errorf("remaining = %v, want [%s]", got, recent)
	}
}

func TestPruneByAge_DryRun(t *testing.T) {
	ctx := context.Background()
	gs := newStorage()
	old := createMockSession(t, gs, "old", 60)

	pruned, err := PruneByAge(ctx, gs, 30, true)
	if err != nil {
		t.Fatalf("PruneByAge dry-run failed: %v", err)
	}

	if len(pruned) != 1 || pruned[0] != old {
		t.Errorf("expected pruned=[%s], got %v", old, pruned)
	}
	if got := remaining(t, gs); len(got) != 1 {
		t.Errorf("expected %s to still exist in dry-run, remaining = %v", old, got)
	}
}

func TestPruneByAge_KeepsActiveSession(t *testing.T) {
	ctx := context.Background()
	gs := newStorage()
	active := createMockSession(t, gs, "active", 90)
	if err := gs.SaveLastActiveID(ctx, active); err != nil {
		t.Fatalf("SaveLastActiveID failed: %v", err)
	}

	pruned, err := PruneByAge(ctx, gs, 30, false)
	if err != nil {
		t.Fatalf("PruneByAge failed: %v", err)
	}
	if len(pruned) != 0 {
		t.Errorf("expected no pruned sessions, got %v", pruned)
	}
}

func TestPruneByAge_Empty(t *testing.T) {
	pruned, err := PruneByAge(context.Background(), newStorage(), 30, false)
	if err != nil {
		t.Fatalf("expected nil error for empty storage, got: %v", err)
	}
	if len(pruned) != 0 {
		t.Errorf("expected empty pruned list, got %v", pruned)
	}
}

func TestPruneKeepRecent_KeepsCorrectCount(t *testing.T) {
	ctx := context.Background()
	gs := newStorage()
	d1 := createMockSession(t, gs, "d1", 4)
	d2 := createMockSession(t, gs, "d2", 3)
	createMockSession(t, gs, "d3", 2)
	createMockSession(t, gs, "d4", 1)

	pruned, err := PruneKeepRecent(ctx, gs, 2, false)
	if err != nil {
		t.Fatalf("PruneKeepRecent failed: %v", err)
	}

	// The two oldest should be removed, newest first.
	if !reflect.DeepEqual(pruned, []string{d2, d1}) {
		t.Errorf("expected pruned=[%s %s], got %v", d2, d1, pruned)
	}
	if got := remaining(t, gs); len(got) != 2 {
		t.Errorf("expected 2 remaining sessions, got %v", got)
	}
}

func TestPruneKeepRecent_ActiveCountsTowardKeep(t *testing.T) {
	ctx := context.Background()
	gs := newStorage()
	active := createMockSession(t, gs, "active", 10)
	createMockSession(t, gs, "newest", 1)
	older := createMockSession(t, gs, "older", 5)
	if err := gs.SaveLastActiveID(ctx, active); err != nil {
		t.Fatalf("SaveLastActiveID failed: %v", err)
	}

	pruned, err := PruneKeepRecent(ctx, gs, 2, false)
	if err != nil {
		t.Fatalf("PruneKeepRecent failed: %v", err)
	}
	if !reflect.DeepEqual(pruned, []string{older}) {
		t.Errorf("expected pruned=[%s], got %v", older, pruned)
	}
}

func TestPruneKeepRecent_KeepMoreThanExist(t *testing.T) {
	ctx := context.Background()
	gs := newStorage()
	createMockSession(t, gs, "only", 1)

	pruned, err := PruneKeepRecent(ctx, gs, 5, false)
	if err != nil {
		t.Fatalf("PruneKeepRecent failed: %v", err)
	}
	if len(pruned) != 0 {
		t.Errorf("expected no pruned sessions, got %v", pruned)
	}
}

func TestPruneKeepRecent_DryRun(t *testing.T) {
	ctx := context.Background()
	gs := newStorage()
	d1 := createMockSession(t, gs, "d1", 3)
	createMockSession(t, gs, "d2", 1)

	pruned, err := PruneKeepRecent(ctx, gs, 1, true)
	if err != nil {
		t.Fatalf("PruneKeepRecent dry-run failed: %v", err)
	}
	if len(pruned) != 1 || pruned[0] != d1 {
		t.Errorf("expected pruned=[%s], got %v", d1, pruned)
	}
	if got := remaining(t, gs); len(got) != 2 {
		t.Errorf("expected 2 sessions to remain in dry-run, got %v", got)
	}
}
