package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bowl-game/bowl/internal/game"
	applog "github.com/bowl-game/bowl/internal/log"
	"github.com/bowl-game/bowl/internal/store"
)

// Game is the store surface the play screen drives.
type Game interface {
	Current() (game.Session, bool)
	StartTurn(ctx context.Context) (bool, error)
	Tick(ctx context.Context) (bool, error)
	EndTurn(ctx context.Context, reason store.EndReason) (bool, error)
	GotIt(ctx context.Context) (bool, error)
	Pass(ctx context.Context) (bool, error)
	Undo(ctx context.Context) (bool, error)
	DismissPhaseCompleteModal(ctx context.Context) (bool, error)
	DismissGameOverModal(ctx context.Context) (bool, error)
}

// EventSource returns the recorded events of a session for the results screen.
type EventSource func(sessionID string) []applog.LogEvent

// Model is the root Bubble Tea model of the play screen.
type Model struct {
	ctx    context.Context
	game   Game
	events EventSource

	keys KeyMap
	help help.Model

	// ticking is true while a tick chain is scheduled; at most one runs.
	// tickGen stamps the chain so ticks from an earlier turn are dropped.
	ticking      bool
	tickGen      int
	ctrlCPending bool
	lastErr      error
}

// NewModel creates a play screen over g. events may be nil.
func NewModel(ctx context.Context, g Game, events EventSource) *Model {
	return &Model{
		ctx:    ctx,
		game:   g,
		events: events,
		keys:   DefaultKeyMap,
		help:   help.New(),
	}
}

// Init resumes the clock of a hydrated running turn.
func (m *Model) Init() tea.Cmd {
	return m.ensureTicking()
}

// Update handles messages and routes key presses to game commands.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case CtrlCResetMsg:
		m.ctrlCPending = false
		return m, nil

	case TickMsg:
		if msg.Gen != m.tickGen {
			return m, nil
		}
		return m, m.handleTick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == KeyCtrlC {
		if m.ctrlCPending {
			return m, tea.Quit
		}
		m.ctrlCPending = true
		return m, tea.Tick(time.Second, func(time.Time) tea.Msg {
			return CtrlCResetMsg{}
		})
	}
	m.ctrlCPending = false

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	s, ok := m.game.Current()
	if !ok {
		return m, nil
	}

	switch {
	case s.GameOverModal:
		if key.Matches(msg, m.keys.Continue) {
			m.run(m.game.DismissGameOverModal)
		}
	case s.PhaseCompleteModal != "":
		if key.Matches(msg, m.keys.Continue) {
			m.run(m.game.DismissPhaseCompleteModal)
		}
	case game.IsTurnRunning(s):
		switch {
		case key.Matches(msg, m.keys.GotIt):
			m.run(m.game.GotIt)
		case key.Matches(msg, m.keys.Pass):
			m.run(m.game.Pass)
		case key.Matches(msg, m.keys.Undo):
			m.run(m.game.Undo)
		case key.Matches(msg, m.keys.EndTurn):
			m.run(func(ctx context.Context) (bool, error) {
				return m.game.EndTurn(ctx, store.EndManual)
			})
		}
	default:
		if key.Matches(msg, m.keys.Start) {
			started, err := m.game.StartTurn(m.ctx)
			m.lastErr = err
			if started {
				m.ticking = false
				m.tickGen++
			}
		}
	}
	return m, m.ensureTicking()
}

// run executes a game command and records its error for the status line.
func (m *Model) run(cmd func(context.Context) (bool, error)) {
	_, err := cmd(m.ctx)
	m.lastErr = err
}

func (m *Model) handleTick() tea.Cmd {
	s, ok := m.game.Current()
	if !ok || !game.IsTurnRunning(s) {
		m.ticking = false
		return nil
	}
	if _, err := m.game.Tick(m.ctx); err != nil {
		m.lastErr = err
	}
	s, ok = m.game.Current()
	if !ok || !game.IsTurnRunning(s) {
		m.ticking = false
		return nil
	}
	return tick(m.tickGen)
}

// ensureTicking starts a tick chain if a turn is running and none is scheduled.
func (m *Model) ensureTicking() tea.Cmd {
	if m.ticking {
		return nil
	}
	s, ok := m.game.Current()
	if !ok || !game.IsTurnRunning(s) {
		return nil
	}
	m.ticking = true
	return tick(m.tickGen)
}

func (m *Model) eventsFor(sessionID string) []applog.LogEvent {
	if m.events == nil {
		return nil
	}
	return m.events(sessionID)
}

func tick(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}
