package game

import "time"

// WizardPlayerSeed is a player entered during setup. TeamIndex is 0 or 1.
type WizardPlayerSeed struct {
	ID        string
	Name      string
	TeamIndex int
}

// WizardCardSeed is a card entered during setup.
type WizardCardSeed struct {
	ID                string
	Text              string
	CreatedByPlayerID string
}

// CreateSessionInput is the completed setup wizard.
type CreateSessionInput struct {
	TeamNames   [2]string
	Players     []WizardPlayerSeed
	Cards       []WizardCardSeed
	TurnSeconds int
}

// CreateSessionDeps are the side-effecting collaborators of session creation.
// Nil fields fall back to NewID, RandShuffle and time.Now.
type CreateSessionDeps struct {
	GenerateID IDGenerator
	Shuffle    Shuffler
	Now        func() time.Time
}

func (d CreateSessionDeps) withDefaults() CreateSessionDeps {
	if d.GenerateID == nil {
		d.GenerateID = NewID
	}
	if d.Shuffle == nil {
		d.Shuffle = RandShuffle
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

// CreateSessionFromWizard builds a new session in the describe phase. Each
// phase gets its own shuffle of the same card set.
func CreateSessionFromWizard(input CreateSessionInput, deps CreateSessionDeps) Session {
	deps = deps.withDefaults()

	teamA := deps.GenerateID()
	teamB := deps.GenerateID()
	teams := []Team{
		{ID: teamA, Name: input.TeamNames[0]},
		{ID: teamB, Name: input.TeamNames[1]},
	}

	teamIDs := [2]string{teamA, teamB}
	players := make([]Player, 0, len(input.Players))
	for _, p := range input.Players {
		idx := p.TeamIndex
		if idx != 1 {
			idx = 0
		}
		players = append(players, Player{ID: p.ID, Name: p.Name, TeamID: teamIDs[idx]})
	}
	if len(players) == 0 {
		players = []Player{
			{ID: deps.GenerateID(), Name: "Player 1", TeamID: teamA},
			{ID: deps.GenerateID(), Name: "Player 2", TeamID: teamB},
		}
	}

	byID := make(map[string]Card, len(input.Cards))
	ids := make([]string, 0, len(input.Cards))
	for _, c := range input.Cards {
		byID[c.ID] = Card{ID: c.ID, Text: c.Text, CreatedByPlayerID: c.CreatedByPlayerID}
		ids = append(ids, c.ID)
	}
	deck := make([]Card, 0, len(ids))
	for _, id := range deps.Shuffle(ids) {
		deck = append(deck, byID[id])
	}

	cardIDs := make([]string, 0, len(deck))
	for _, c := range deck {
		cardIDs = append(cardIDs, c.ID)
	}

	turnSeconds := input.TurnSeconds
	if turnSeconds <= 0 {
		turnSeconds = DefaultTurnSeconds
	}

	return Session{
		ID:        deps.GenerateID(),
		CreatedAt: deps.Now().UnixMilli(),
		Teams:     teams,
		Players:   players,
		Deck:      deck,
		Phase:     PhaseDescribe,
		Settings:  Settings{TurnSeconds: turnSeconds},
		PhaseState: PhaseStates{
			Describe: InitPhaseState(cardIDs, teamA, teamB, deps.Shuffle),
			OneWord:  InitPhaseState(cardIDs, teamA, teamB, deps.Shuffle),
			Charades: InitPhaseState(cardIDs, teamA, teamB, deps.Shuffle),
		},
		PhaseResults: EmptyPhaseResults(),
		GameStatus:   StatusPlaying,
	}
}

// HydrateRunningTurn charges a running turn for the wall-clock time that
// passed since it was last reconciled. A turn that runs out is stopped but
// the phase is not advanced.
func HydrateRunningTurn(s Session, now time.Time) Session {
	if s.Turn == nil || !s.Turn.IsRunning {
		return s
	}
	elapsed := int((now.UnixMilli() - s.Turn.StartedAt) / 1000)
	if elapsed <= 0 {
		return s
	}
	remaining := max(0, s.Turn.SecondsRemaining-elapsed)
	if remaining == s.Turn.SecondsRemaining {
		return s
	}

	turn := *s.Turn
	if remaining == 0 {
		turn.IsRunning = false
		turn.SecondsRemaining = 0
	} else {
		turn.SecondsRemaining = remaining
		turn.StartedAt = now.UnixMilli()
	}
	s.Turn = &turn
	return s
}
