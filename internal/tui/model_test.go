package tui

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/bowl-game/bowl/internal/game"
	"github.com/bowl-game/bowl/internal/storage"
	"github.com/bowl-game/bowl/internal/store"
)

func newTestStore(t *testing.T, withGame bool) *store.Store {
	t.Helper()
	games := storage.NewGameStorage(storage.NewMemoryKV(), zerolog.Nop())
	st := store.New(games, store.Options{
		Now:     func() time.Time { return time.UnixMilli(1_000) },
		Shuffle: func(ids []string) []string { return append([]string{}, ids...) },
	})
	if withGame {
		st.CreateNewSession(context.Background(), game.CreateSessionInput{
			TeamNames:   [2]string{"Owls", "Foxes"},
			Cards:       []game.WizardCardSeed{{ID: "c1", Text: "Alpha"}, {ID: "c2", Text: "Beta"}},
			TurnSeconds: 3,
		})
	}
	return st
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m *Model, msg tea.Msg) tea.Cmd {
	t.Helper()
	_, cmd := m.Update(msg)
	return cmd
}

func current(t *testing.T, st *store.Store) game.Session {
	t.Helper()
	s, ok := st.Current()
	if !ok {
		t.Fatal("no current session")
	}
	return s
}

func TestStartTurnBeginsTicking(t *testing.T) {
	st := newTestStore(t, true)
	m := NewModel(context.Background(), st, nil)

	if cmd := m.Init(); cmd != nil {
		t.Error("Init should not tick without a running turn")
	}
	if !strings.Contains(m.View(), "press space") {
		t.Errorf("between-turns view missing prompt:\n%s", m.View())
	}

	cmd := press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if cmd == nil {
		t.Fatal("starting a turn should schedule a tick")
	}
	if !m.ticking {
		t.Error("ticking should be set after starting a turn")
	}
	s := current(t, st)
	if !game.IsTurnRunning(s) || s.Turn.CurrentCardID != "c1" {
		t.Fatalf("turn not started: %+v", s.Turn)
	}
	if !strings.Contains(m.View(), "Alpha") {
		t.Errorf("turn view missing card text:\n%s", m.View())
	}

	// A second key press must not start a second tick chain.
	if cmd := press(t, m, runes("g")); cmd != nil {
		t.Error("got it during a ticking turn should not schedule another tick")
	}
}

func TestTickCountsDownAndEndsTurn(t *testing.T) {
	st := newTestStore(t, true)
	m := NewModel(context.Background(), st, nil)
	press(t, m, runes("s"))

	if cmd := press(t, m, TickMsg{Gen: m.tickGen, Time: time.Now()}); cmd == nil {
		t.Fatal("tick with time left should reschedule")
	}
	if got := current(t, st).Turn.SecondsRemaining; got != 2 {
		t.Errorf("SecondsRemaining = %d, want 2", got)
	}

	press(t, m, TickMsg{Gen: m.tickGen, Time: time.Now()})
	if cmd := press(t, m, TickMsg{Gen: m.tickGen, Time: time.Now()}); cmd != nil {
		t.Error("tick that ends the turn should stop the chain")
	}
	if m.ticking {
		t.Error("ticking should be cleared once the turn ends")
	}
	if current(t, st).Turn != nil {
		t.Error("turn should have ended on time")
	}
}

func TestTickFromEarlierTurnIsDropped(t *testing.T) {
	st := newTestStore(t, true)
	m := NewModel(context.Background(), st, nil)

	press(t, m, runes("s"))
	stale := TickMsg{Gen: m.tickGen, Time: time.Now()}
	press(t, m, runes("e"))
	if cmd := press(t, m, runes("s")); cmd == nil {
		t.Fatal("a new turn should schedule its own tick")
	}

	if cmd := press(t, m, stale); cmd != nil {
		t.Error("tick from the ended turn should not reschedule")
	}
	if got := current(t, st).Turn.SecondsRemaining; got != 3 {
		t.Errorf("SecondsRemaining = %d after a stale tick, want 3", got)
	}
	if !m.ticking {
		t.Error("the new turn's chain should still be scheduled")
	}

	if cmd := press(t, m, TickMsg{Gen: m.tickGen, Time: time.Now()}); cmd == nil {
		t.Fatal("tick of the running turn should reschedule")
	}
	if got := current(t, st).Turn.SecondsRemaining; got != 2 {
		t.Errorf("SecondsRemaining = %d, want 2", got)
	}
}

func TestKeysPlayThroughPhase(t *testing.T) {
	st := newTestStore(t, true)
	m := NewModel(context.Background(), st, nil)

	press(t, m, runes("s"))
	press(t, m, runes("g"))
	press(t, m, runes("u"))
	if s := current(t, st); s.Turn.CurrentCardID != "c1" || len(s.Turn.History) != 0 {
		t.Fatalf("undo did not restore c1: %+v", s.Turn)
	}

	press(t, m, runes("g"))
	press(t, m, runes("p"))

	s := current(t, st)
	if s.PhaseCompleteModal != game.PhaseDescribe {
		t.Fatalf("PhaseCompleteModal = %q, want describe", s.PhaseCompleteModal)
	}
	if !strings.Contains(m.View(), "Describe complete!") {
		t.Errorf("modal view missing:\n%s", m.View())
	}

	// Turn keys are ignored while the modal is up.
	press(t, m, runes("s"))
	if current(t, st).Turn != nil {
		t.Error("start should be ignored while the phase modal is shown")
	}

	press(t, m, runes("n"))
	s = current(t, st)
	if s.PhaseCompleteModal != "" || s.Phase != game.PhaseOneWord {
		t.Errorf("after continue: modal=%q phase=%q", s.PhaseCompleteModal, s.Phase)
	}
}

func TestEndTurnKey(t *testing.T) {
	st := newTestStore(t, true)
	m := NewModel(context.Background(), st, nil)
	press(t, m, runes("s"))
	press(t, m, runes("e"))

	s := current(t, st)
	if s.Turn != nil {
		t.Fatal("e should end the turn")
	}
	if got := s.PhaseState.Describe.MainBowl; len(got) != 2 || got[0] != "c1" {
		t.Errorf("card in hand should return to the top of the bowl, got %v", got)
	}
	if !strings.Contains(m.View(), "Foxes") {
		t.Errorf("next team should be shown:\n%s", m.View())
	}
}

func TestInitResumesRunningTurn(t *testing.T) {
	st := newTestStore(t, true)
	if _, err := st.StartTurn(context.Background()); err != nil {
		t.Fatalf("StartTurn failed: %v", err)
	}
	m := NewModel(context.Background(), st, nil)
	if cmd := m.Init(); cmd == nil {
		t.Error("Init should resume the clock of a running turn")
	}
}

func TestCtrlCNeedsConfirmation(t *testing.T) {
	m := NewModel(context.Background(), newTestStore(t, false), nil)

	ctrlC := tea.KeyMsg{Type: tea.KeyCtrlC}
	press(t, m, ctrlC)
	if !m.ctrlCPending {
		t.Fatal("first ctrl+c should only arm the confirmation")
	}
	if !strings.Contains(m.View(), "Ctrl+C again") {
		t.Error("confirmation hint should be shown")
	}
	press(t, m, CtrlCResetMsg{})
	if m.ctrlCPending {
		t.Error("reset message should clear the confirmation")
	}

	press(t, m, ctrlC)
	cmd := press(t, m, ctrlC)
	if cmd == nil {
		t.Fatal("second ctrl+c should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("second ctrl+c should return tea.Quit")
	}
}

func TestNoGameView(t *testing.T) {
	m := NewModel(context.Background(), newTestStore(t, false), nil)
	if !strings.Contains(m.View(), "No active game") {
		t.Errorf("view without a game:\n%s", m.View())
	}
	if cmd := press(t, m, runes("s")); cmd != nil {
		t.Error("keys without a game should do nothing")
	}
}

func TestRunFallback(t *testing.T) {
	st := newTestStore(t, true)
	var buf bytes.Buffer
	if err := runFallback(&buf, NewModel(context.Background(), st, nil)); err != nil {
		t.Fatalf("runFallback failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Owls", "Describe", "Up next: Owls", "Non-TTY"} {
		if !strings.Contains(out, want) {
			t.Errorf("fallback output missing %q:\n%s", want, out)
		}
	}
}
