package game

import "time"

// Result is the outcome of a command. Changed is false when the command
// did not apply; Session is then the input unchanged.
type Result struct {
	Session Session
	Changed bool
}

// AdvanceResult signals that the caller should run AdvancePhaseIfComplete.
type AdvanceResult struct {
	Result
	ShouldAdvancePhase bool
}

// TickResult signals that the turn clock expired and the caller should end the turn.
type TickResult struct {
	Result
	ShouldEndTurn bool
}

func unchanged(s Session) Result { return Result{Session: s} }

func changed(s Session) Result { return Result{Session: s, Changed: true} }

// StartTurn hands the bowl to the team that did not play last and draws the
// first card. If the bowl is already empty nothing changes and the caller is
// asked to advance the phase.
func StartTurn(s Session, now time.Time) AdvanceResult {
	if s.GameStatus != StatusPlaying {
		return AdvanceResult{Result: unchanged(s)}
	}
	teamA, _, ok := s.teamPair()
	if !ok {
		return AdvanceResult{Result: unchanged(s)}
	}

	activeTeamID := teamA
	if s.LastTeamID != "" {
		activeTeamID = OtherTeamID(s, s.LastTeamID)
	}
	var activePlayerID string
	for _, p := range s.Players {
		if p.TeamID == activeTeamID {
			activePlayerID = p.ID
			break
		}
	}

	state, cardID := drawFromBowl(s.PhaseState.Get(s.Phase))
	if cardID == "" {
		return AdvanceResult{Result: unchanged(s), ShouldAdvancePhase: true}
	}
	state.PassedToTeam = emptyBuckets(s.TeamIDs())

	s.PhaseState = s.PhaseState.With(s.Phase, state)
	s.Turn = &TurnState{
		ActiveTeamID:     activeTeamID,
		ActivePlayerID:   activePlayerID,
		SecondsRemaining: s.Settings.TurnSeconds,
		IsRunning:        true,
		StartedAt:        now.UnixMilli(),
		CurrentCardID:    cardID,
		History:          TurnHistory{},
	}
	s.LastTeamID = activeTeamID
	return AdvanceResult{Result: changed(s)}
}

// TickTurn counts the running clock down by one second. When the clock would
// reach zero the session is left as is and ShouldEndTurn is set.
func TickTurn(s Session) TickResult {
	if s.Turn == nil || !s.Turn.IsRunning {
		return TickResult{Result: unchanged(s)}
	}
	remaining := max(0, s.Turn.SecondsRemaining-1)
	if remaining == 0 {
		return TickResult{Result: unchanged(s), ShouldEndTurn: true}
	}
	turn := *s.Turn
	turn.SecondsRemaining = remaining
	s.Turn = &turn
	return TickResult{Result: changed(s)}
}

// EndTurn puts the card in hand back on top of the bowl and clears the turn.
func EndTurn(s Session) AdvanceResult {
	if s.Turn == nil {
		return AdvanceResult{Result: unchanged(s)}
	}
	if cardID := s.Turn.CurrentCardID; cardID != "" {
		state := s.PhaseState.Get(s.Phase)
		bowl := make([]string, 0, len(state.MainBowl)+1)
		bowl = append(bowl, cardID)
		state.MainBowl = append(bowl, state.MainBowl...)
		state.PassedToTeam = emptyBuckets(s.TeamIDs())
		s.PhaseState = s.PhaseState.With(s.Phase, state)
	}
	s.Turn = nil
	return AdvanceResult{Result: changed(s), ShouldAdvancePhase: true}
}

// GotIt scores the card in hand for the active team and draws the next one.
func GotIt(s Session) AdvanceResult {
	if s.Turn == nil || s.Turn.CurrentCardID == "" {
		return AdvanceResult{Result: unchanged(s)}
	}
	teamID := s.Turn.ActiveTeamID
	return resolve(s, teamID, func(cardID, next string) TurnAction {
		return GotItAction{CardID: cardID, TeamID: teamID, Phase: s.Phase, NextCardID: next}
	})
}

// Pass credits the card in hand to the other team and draws the next one.
func Pass(s Session) AdvanceResult {
	if s.Turn == nil || s.Turn.CurrentCardID == "" {
		return AdvanceResult{Result: unchanged(s)}
	}
	from := s.Turn.ActiveTeamID
	to := OtherTeamID(s, from)
	return resolve(s, to, func(cardID, next string) TurnAction {
		return PassAction{CardID: cardID, FromTeamID: from, ToTeamID: to, Phase: s.Phase, NextCardID: next}
	})
}

// resolve moves the card in hand to creditTeamID's bucket, draws the next
// card and records the action built by record.
func resolve(s Session, creditTeamID string, record func(cardID, next string) TurnAction) AdvanceResult {
	cardID := s.Turn.CurrentCardID
	prev := s.PhaseState.Get(s.Phase)

	state, next := drawFromBowl(prev)
	state.PassedToTeam = emptyBuckets(s.TeamIDs())
	state.ScoredByTeam = withBucket(prev.ScoredByTeam, creditTeamID, withCard(prev.ScoredByTeam[creditTeamID], cardID))
	s.PhaseState = s.PhaseState.With(s.Phase, state)

	turn := *s.Turn
	turn.CurrentCardID = next
	turn.History = pushAction(turn.History, record(cardID, next))
	if next == "" {
		turn.IsRunning = false
		turn.SecondsRemaining = 0
	}
	s.Turn = &turn
	return AdvanceResult{Result: changed(s), ShouldAdvancePhase: next == ""}
}

// Undo reverts the most recent resolved card of the turn. It refuses when
// the history no longer matches the card in hand.
func Undo(s Session) Result {
	if s.Turn == nil || len(s.Turn.History) == 0 {
		return unchanged(s)
	}
	history := s.Turn.History
	action := history[len(history)-1]

	state := s.PhaseState.Get(s.Phase)
	bowl := append([]string{}, state.MainBowl...)
	if next := action.DrawnNext(); next != "" {
		if s.Turn.CurrentCardID != next {
			return unchanged(s)
		}
		bowl = append([]string{next}, bowl...)
	}

	var creditedTeamID string
	switch a := action.(type) {
	case GotItAction:
		creditedTeamID = a.TeamID
	case PassAction:
		creditedTeamID = a.ToTeamID
	default:
		return unchanged(s)
	}
	scored, ok := withoutLast(state.ScoredByTeam[creditedTeamID], action.ResolvedCard())
	if !ok {
		return unchanged(s)
	}

	state.MainBowl = bowl
	state.PassedToTeam = emptyBuckets(s.TeamIDs())
	state.ScoredByTeam = withBucket(state.ScoredByTeam, creditedTeamID, scored)
	s.PhaseState = s.PhaseState.With(s.Phase, state)

	turn := *s.Turn
	turn.CurrentCardID = action.ResolvedCard()
	turn.History = append(TurnHistory{}, history[:len(history)-1]...)
	s.Turn = &turn
	return changed(s)
}

// AdvancePhaseIfComplete finalizes the current phase once its bowl is empty.
// It opens the phase-complete modal, or ends the game after the last phase.
func AdvancePhaseIfComplete(s Session) Result {
	if !IsPhaseComplete(s, s.Phase) {
		return unchanged(s)
	}
	// Already finalized: the modal is pending or the game is over.
	if s.PhaseCompleteModal == s.Phase || s.GameStatus == StatusFinished {
		return unchanged(s)
	}
	s.PhaseResults = s.PhaseResults.With(s.Phase, SnapshotPhaseResult(s, s.Phase))
	s.Turn = nil
	if _, ok := NextPhase(s.Phase); ok {
		s.PhaseCompleteModal = s.Phase
		return changed(s)
	}
	s.GameStatus = StatusFinished
	s.GameOverModal = true
	return changed(s)
}

// DismissPhaseCompleteModal moves on to the round after the completed one,
// dealing it a fresh shuffle of the whole deck.
func DismissPhaseCompleteModal(s Session, shuffle Shuffler) Result {
	if s.PhaseCompleteModal == "" {
		return unchanged(s)
	}
	next, ok := NextPhase(s.PhaseCompleteModal)
	if !ok {
		return unchanged(s)
	}
	teamA, teamB, ok := s.teamPair()
	if !ok {
		return unchanged(s)
	}
	s.PhaseState = s.PhaseState.With(next, InitPhaseState(s.CardIDs(), teamA, teamB, shuffle))
	s.Phase = next
	s.PhaseCompleteModal = ""
	s.Turn = nil
	return changed(s)
}

// DismissGameOverModal hides the game-over modal.
func DismissGameOverModal(s Session) Result {
	if !s.GameOverModal {
		return unchanged(s)
	}
	s.GameOverModal = false
	return changed(s)
}
