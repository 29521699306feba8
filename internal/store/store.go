// Package store owns the active Bowl session. Every mutation goes through a
// Store method, which applies the matching game command, runs the follow-up
// the command asks for and persists the result.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/bowl-game/bowl/internal/game"
	applog "github.com/bowl-game/bowl/internal/log"
)

// ErrNoActiveGame is returned by commands when no session is loaded.
var ErrNoActiveGame = errors.New("no active game")

// EndReason records why a turn ended.
type EndReason string

const (
	EndTime   EndReason = "time"
	EndManual EndReason = "manual"
)

// Storage is the persistence the store needs.
type Storage interface {
	LoadSession(ctx context.Context, id string) (*game.Session, error)
	SaveSession(ctx context.Context, s game.Session) error
	LoadLastActiveID(ctx context.Context) (string, error)
	SaveLastActiveID(ctx context.Context, id string) error
	ClearAll(ctx context.Context) error
}

// EventLog receives game events.
type EventLog interface {
	Append(event applog.LogEvent) error
}

// Options configures a Store. Zero fields get production defaults.
type Options struct {
	Events  EventLog
	Logger  *zerolog.Logger
	Now     func() time.Time
	NewID   game.IDGenerator
	Shuffle game.Shuffler
}

// Store holds one session and is its only mutation surface.
type Store struct {
	mu      sync.Mutex
	storage Storage
	events  EventLog
	logger  zerolog.Logger
	now     func() time.Time
	newID   game.IDGenerator
	shuffle game.Shuffler

	current      *game.Session
	lastActiveID string
}

// New creates a Store persisting through st.
func New(st Storage, opts Options) *Store {
	s := &Store{
		storage: st,
		events:  opts.Events,
		logger:  zerolog.Nop(),
		now:     opts.Now,
		newID:   opts.NewID,
		shuffle: opts.Shuffle,
	}
	if opts.Logger != nil {
		s.logger = *opts.Logger
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = game.NewID
	}
	if s.shuffle == nil {
		s.shuffle = game.RandShuffle
	}
	return s
}

// Current returns a copy of the active session.
func (s *Store) Current() (game.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return game.Session{}, false
	}
	return *s.current, true
}

// LastActiveID returns the id of the last persisted session, or "".
func (s *Store) LastActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActiveID
}

// CreateNewSession builds a session from wizard input, makes it current and persists it.
func (s *Store) CreateNewSession(ctx context.Context, input game.CreateSessionInput) game.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := game.CreateSessionFromWizard(input, game.CreateSessionDeps{
		GenerateID: s.newID,
		Shuffle:    s.shuffle,
		Now:        s.now,
	})
	s.current = &session
	s.debug("createNewSession", session.ID)
	s.emit(applog.LogEvent{Event: applog.EventSessionCreated})
	s.persistLocked(ctx)
	return session
}

// Persist saves the active session and records it as the last active one.
func (s *Store) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	return s.saveLocked(ctx)
}

// HydrateLastGame loads the last active session and charges a running turn
// for the wall-clock time that passed since it was saved. It reports whether
// a game was loaded; a pointer to a missing session is cleared.
func (s *Store) HydrateLastGame(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	s.lastActiveID = ""

	id, err := s.storage.LoadLastActiveID(ctx)
	if err != nil {
		return false, err
	}
	if id == "" {
		return false, nil
	}

	session, err := s.storage.LoadSession(ctx, id)
	if err != nil {
		return false, err
	}
	if session == nil {
		s.logger.Info().Str("session", id).Msg("last active game is gone, clearing pointer")
		if err := s.storage.SaveLastActiveID(ctx, ""); err != nil {
			return false, err
		}
		return false, nil
	}

	hydrated := game.HydrateRunningTurn(*session, s.now())
	s.current = &hydrated
	s.lastActiveID = id
	s.debug("hydrateLastGame", id)
	return true, nil
}

// EndExpiredTurn ends a turn whose clock ran out while nobody was watching,
// putting its card back in the bowl. Call it after HydrateLastGame.
func (s *Store) EndExpiredTurn(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return false, ErrNoActiveGame
	}
	turn := s.current.Turn
	if turn == nil || turn.IsRunning || turn.SecondsRemaining > 0 {
		return false, nil
	}
	return s.endTurnLocked(ctx, EndTime), nil
}

// ResetAll clears every stored game and forgets the active one.
func (s *Store) ResetAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.ClearAll(ctx); err != nil {
		return err
	}
	s.emit(applog.LogEvent{Event: applog.EventSessionReset})
	s.current = nil
	s.lastActiveID = ""
	s.debug("resetAll", "")
	return nil
}

// ResetGame forgets the active session in memory. Storage is untouched.
func (s *Store) ResetGame() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.debug("resetGame", "")
}

// StartTurn starts the next team's turn. With an empty bowl it advances the phase instead.
// It does nothing while a turn is in progress or a modal is pending.
func (s *Store) StartTurn(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return false, ErrNoActiveGame
	}
	if cur := s.current; cur.Turn != nil || cur.PhaseCompleteModal != "" || cur.GameOverModal {
		return false, nil
	}

	res := game.StartTurn(*s.current, s.now())
	if res.ShouldAdvancePhase {
		return s.advanceLocked(ctx), nil
	}
	if !res.Changed {
		return false, nil
	}
	s.apply(ctx, res.Session)
	turn := res.Session.Turn
	s.debug("startTurn", turn.ActiveTeamID)
	s.emit(applog.LogEvent{Event: applog.EventTurnStarted, TeamID: turn.ActiveTeamID, Remaining: turn.SecondsRemaining})
	return true, nil
}

// Tick counts the turn clock down one second and ends the turn when it runs out.
// Ticks are not persisted on their own; the running turn's start time is moved
// to now so a later reconciliation only charges time after this tick.
func (s *Store) Tick(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return false, ErrNoActiveGame
	}

	res := game.TickTurn(*s.current)
	if res.ShouldEndTurn {
		return s.endTurnLocked(ctx, EndTime), nil
	}
	if !res.Changed {
		return false, nil
	}
	next := res.Session
	turn := *next.Turn
	turn.StartedAt = s.now().UnixMilli()
	next.Turn = &turn
	s.current = &next
	return true, nil
}

// EndTurn ends the current turn, returning the card in hand to the bowl.
func (s *Store) EndTurn(ctx context.Context, reason EndReason) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return false, ErrNoActiveGame
	}
	return s.endTurnLocked(ctx, reason), nil
}

func (s *Store) endTurnLocked(ctx context.Context, reason EndReason) bool {
	prev := *s.current
	res := game.EndTurn(prev)
	if !res.Changed {
		return false
	}
	s.apply(ctx, res.Session)
	s.debug("endTurn", string(reason))
	s.emit(applog.LogEvent{Event: applog.EventTurnEnded, TeamID: prev.Turn.ActiveTeamID, Reason: string(reason)})
	if res.ShouldAdvancePhase {
		s.advanceLocked(ctx)
	}
	return true
}

// GotIt scores the card in hand for the active team.
func (s *Store) GotIt(ctx context.Context) (bool, error) {
	return s.resolve(ctx, "gotIt", game.GotIt)
}

// Pass credits the card in hand to the other team.
func (s *Store) Pass(ctx context.Context) (bool, error) {
	return s.resolve(ctx, "pass", game.Pass)
}

func (s *Store) resolve(ctx context.Context, step string, cmd func(game.Session) game.AdvanceResult) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return false, ErrNoActiveGame
	}

	res := cmd(*s.current)
	if !res.Changed {
		return false, nil
	}
	s.apply(ctx, res.Session)

	history := res.Session.Turn.History
	switch a := history[len(history)-1].(type) {
	case game.GotItAction:
		s.debug(step, a.CardID)
		s.emit(applog.LogEvent{Event: applog.EventCardScored, TeamID: a.TeamID, CardID: a.CardID})
	case game.PassAction:
		s.debug(step, a.CardID)
		s.emit(applog.LogEvent{Event: applog.EventCardPassed, TeamID: a.ToTeamID, CardID: a.CardID})
	}

	if res.ShouldAdvancePhase {
		s.advanceLocked(ctx)
	}
	return true, nil
}

// Undo reverts the most recent resolved card of the turn.
func (s *Store) Undo(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return false, ErrNoActiveGame
	}

	res := game.Undo(*s.current)
	if !res.Changed {
		return false, nil
	}
	s.apply(ctx, res.Session)
	s.debug("undo", res.Session.Turn.CurrentCardID)
	s.emit(applog.LogEvent{Event: applog.EventUndo, CardID: res.Session.Turn.CurrentCardID})
	return true, nil
}

// AdvancePhaseIfComplete finalizes the current phase once its bowl is empty
// and no card is in hand.
func (s *Store) AdvancePhaseIfComplete(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return false, ErrNoActiveGame
	}
	return s.advanceLocked(ctx), nil
}

func (s *Store) advanceLocked(ctx context.Context) bool {
	// A card still in hand belongs to the phase; finalizing now would drop it.
	if turn := s.current.Turn; turn != nil && turn.CurrentCardID != "" {
		return false
	}
	phase := s.current.Phase
	res := game.AdvancePhaseIfComplete(*s.current)
	if !res.Changed {
		return false
	}
	s.apply(ctx, res.Session)
	s.debug("advancePhaseIfComplete", string(phase))
	s.emit(applog.LogEvent{Event: applog.EventPhaseCompleted, Scores: res.Session.PhaseResults.Get(phase)})
	if res.Session.GameStatus == game.StatusFinished {
		s.emit(applog.LogEvent{Event: applog.EventGameOver, Scores: totals(res.Session)})
	}
	return true
}

// DismissPhaseCompleteModal moves on to the next phase with a fresh bowl.
func (s *Store) DismissPhaseCompleteModal(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return false, ErrNoActiveGame
	}

	res := game.DismissPhaseCompleteModal(*s.current, s.shuffle)
	if !res.Changed {
		return false, nil
	}
	s.apply(ctx, res.Session)
	s.debug("dismissPhaseCompleteModal", string(res.Session.Phase))
	return true, nil
}

// DismissGameOverModal hides the game-over modal.
func (s *Store) DismissGameOverModal(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return false, ErrNoActiveGame
	}

	res := game.DismissGameOverModal(*s.current)
	if !res.Changed {
		return false, nil
	}
	s.apply(ctx, res.Session)
	s.debug("dismissGameOverModal", "")
	return true, nil
}

// apply makes next current and persists it.
func (s *Store) apply(ctx context.Context, next game.Session) {
	s.current = &next
	s.persistLocked(ctx)
}

// persistLocked saves the current session, logging instead of returning failures.
func (s *Store) persistLocked(ctx context.Context) {
	if err := s.saveLocked(ctx); err != nil {
		s.logger.Warn().Err(err).Str("session", s.current.ID).Msg("persist failed")
	}
}

func (s *Store) saveLocked(ctx context.Context) error {
	if err := s.storage.SaveSession(ctx, *s.current); err != nil {
		return err
	}
	if err := s.storage.SaveLastActiveID(ctx, s.current.ID); err != nil {
		return err
	}
	s.lastActiveID = s.current.ID
	return nil
}

func (s *Store) debug(step, detail string) {
	e := s.logger.Debug().Str("step", step)
	if detail != "" {
		e = e.Str("detail", detail)
	}
	e.Msg("game store")
}

// emit appends a game event stamped with the current session and phase.
func (s *Store) emit(event applog.LogEvent) {
	if s.events == nil {
		return
	}
	event.Time = s.now().UTC()
	if s.current != nil {
		event.SessionID = s.current.ID
		if event.Phase == "" {
			event.Phase = string(s.current.Phase)
		}
	}
	if err := s.events.Append(event); err != nil {
		s.logger.Warn().Err(err).Str("event", event.Event).Msg("event log append failed")
	}
}

func totals(session game.Session) map[string]int {
	out := make(map[string]int, len(session.Teams))
	for _, t := range session.Teams {
		out[t.ID] = game.TeamTotalScore(session, t.ID)
	}
	return out
}
