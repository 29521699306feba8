// Package game implements the Bowl session model and the pure commands that
// advance it: turns, card resolution, undo, phase transitions and migration
// of persisted sessions from earlier schema generations.
package game

// Phase is one of the three rounds played with the same card set.
type Phase string

const (
	PhaseDescribe Phase = "describe"
	PhaseOneWord  Phase = "oneWord"
	PhaseCharades Phase = "charades"
)

// GameStatus reports whether a session is still being played.
type GameStatus string

const (
	StatusPlaying  GameStatus = "playing"
	StatusFinished GameStatus = "finished"
)

// DefaultTurnSeconds is the turn length used when settings are missing.
const DefaultTurnSeconds = 60

// Team is one of the two sides of a session. Score is kept for older saves;
// totals are always derived from the phase state.
type Team struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Player is a named participant assigned to a team.
type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	TeamID string `json:"teamId"`
}

// Card is a single word or phrase in the deck.
type Card struct {
	ID                string `json:"id"`
	Text              string `json:"text"`
	CreatedByPlayerID string `json:"createdByPlayerId,omitempty"`
}

// PhaseState holds the card pools of one round. PassedToTeam is a legacy
// bucket: it is kept for compatibility with older saves and is always empty.
type PhaseState struct {
	MainBowl     []string            `json:"mainBowl"`
	PassedToTeam map[string][]string `json:"passedToTeam"`
	ScoredByTeam map[string][]string `json:"scoredByTeam"`
}

// PhaseStates holds the per-round state for all three rounds.
type PhaseStates struct {
	Describe PhaseState `json:"describe"`
	OneWord  PhaseState `json:"oneWord"`
	Charades PhaseState `json:"charades"`
}

// Get returns the state of the given phase.
func (p PhaseStates) Get(phase Phase) PhaseState {
	switch phase {
	case PhaseOneWord:
		return p.OneWord
	case PhaseCharades:
		return p.Charades
	default:
		return p.Describe
	}
}

// With returns a copy of p with the state of phase replaced.
func (p PhaseStates) With(phase Phase, state PhaseState) PhaseStates {
	switch phase {
	case PhaseOneWord:
		p.OneWord = state
	case PhaseCharades:
		p.Charades = state
	default:
		p.Describe = state
	}
	return p
}

// PhaseResult is the frozen score of a finished phase, keyed by team id.
// A nil PhaseResult means the phase has not been finalized.
type PhaseResult map[string]int

// PhaseResults holds the finalized results of all three rounds.
type PhaseResults struct {
	Describe PhaseResult `json:"describe"`
	OneWord  PhaseResult `json:"oneWord"`
	Charades PhaseResult `json:"charades"`
}

// Get returns the finalized result of phase, or nil.
func (p PhaseResults) Get(phase Phase) PhaseResult {
	switch phase {
	case PhaseOneWord:
		return p.OneWord
	case PhaseCharades:
		return p.Charades
	default:
		return p.Describe
	}
}

// With returns a copy of p with the result of phase replaced.
func (p PhaseResults) With(phase Phase, result PhaseResult) PhaseResults {
	switch phase {
	case PhaseOneWord:
		p.OneWord = result
	case PhaseCharades:
		p.Charades = result
	default:
		p.Describe = result
	}
	return p
}

// TurnState is one team's timed possession of the bowl.
type TurnState struct {
	ActiveTeamID     string      `json:"activeTeamId"`
	ActivePlayerID   string      `json:"activePlayerId,omitempty"`
	SecondsRemaining int         `json:"secondsRemaining"`
	IsRunning        bool        `json:"isRunning"`
	StartedAt        int64       `json:"startedAt"` // unix milliseconds
	CurrentCardID    string      `json:"currentCardId,omitempty"`
	History          TurnHistory `json:"history"`
}

// Settings are the per-session rule knobs.
type Settings struct {
	TurnSeconds int `json:"turnSeconds"`
}

// Session is the complete persisted state of one game. Sessions are treated
// as values: commands never mutate the slices or maps of their input.
type Session struct {
	ID                 string       `json:"id"`
	CreatedAt          int64        `json:"createdAt"` // unix milliseconds
	Teams              []Team       `json:"teams"`
	Players            []Player     `json:"players"`
	Deck               []Card       `json:"deck"`
	Phase              Phase        `json:"phase"`
	Turn               *TurnState   `json:"turn"`
	Settings           Settings     `json:"settings"`
	PhaseState         PhaseStates  `json:"phaseState"`
	PhaseResults       PhaseResults `json:"phaseResults"`
	GameStatus         GameStatus   `json:"gameStatus"`
	LastTeamID         string       `json:"lastTeamId,omitempty"`
	PhaseCompleteModal Phase        `json:"phaseCompleteModal,omitempty"`
	GameOverModal      bool         `json:"gameOverModal"`

	// Fields written by the first schema generation, carried through untouched.
	Discard      []Card         `json:"discard,omitempty"`
	LegacyScores map[string]int `json:"scoredByTeam,omitempty"`
}

// TeamIDs returns the ids of the session's teams in order.
func (s Session) TeamIDs() []string {
	ids := make([]string, 0, len(s.Teams))
	for _, t := range s.Teams {
		ids = append(ids, t.ID)
	}
	return ids
}

// CardIDs returns the ids of every card in the deck in deck order.
func (s Session) CardIDs() []string {
	ids := make([]string, 0, len(s.Deck))
	for _, c := range s.Deck {
		ids = append(ids, c.ID)
	}
	return ids
}

func (s Session) teamPair() (string, string, bool) {
	if len(s.Teams) < 2 || s.Teams[0].ID == "" || s.Teams[1].ID == "" {
		return "", "", false
	}
	return s.Teams[0].ID, s.Teams[1].ID, true
}
