package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidSession is returned when a stored blob cannot be read as a session at all.
var ErrInvalidSession = errors.New("invalid session")

// Migrator upgrades decoded session blobs of any schema generation to the
// current Session shape. Nil fields fall back to time.Now and RandShuffle.
type Migrator struct {
	Now     func() time.Time
	Shuffle Shuffler
}

// MigrateSession upgrades raw (the result of json.Unmarshal into any) with
// the default clock and shuffle.
func MigrateSession(raw any) (Session, error) {
	return Migrator{}.Migrate(raw)
}

// DecodeSession parses a stored JSON blob and migrates it.
func (m Migrator) DecodeSession(data []byte) (Session, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	return m.Migrate(raw)
}

// Migrate upgrades raw to the current shape. Only a non-object raw value is
// an error; every missing or malformed field is defaulted.
func (m Migrator) Migrate(raw any) (Session, error) {
	s, ok := raw.(map[string]any)
	if !ok || s == nil {
		return Session{}, ErrInvalidSession
	}
	if m.Now == nil {
		m.Now = time.Now
	}
	if m.Shuffle == nil {
		m.Shuffle = RandShuffle
	}

	teams := decodeTeams(s["teams"])
	deck := decodeCards(s["deck"])
	teamA, teamB := "teamA", "teamB"
	if len(teams) > 0 && teams[0].ID != "" {
		teamA = teams[0].ID
	}
	if len(teams) > 1 && teams[1].ID != "" {
		teamB = teams[1].ID
	}
	teamIDs := []string{teamA, teamB}

	cardIDs := make([]string, 0, len(deck))
	for _, c := range deck {
		cardIDs = append(cardIDs, c.ID)
	}
	phaseState := m.migratePhaseStates(s["phaseState"], cardIDs, teamA, teamB)

	settings := Settings{TurnSeconds: DefaultTurnSeconds}
	if rs, ok := s["settings"].(map[string]any); ok {
		if v, ok := finite(rs["turnSeconds"]); ok && v > 0 {
			settings.TurnSeconds = int(v)
		}
	}

	phase := PhaseDescribe
	if p := Phase(str(s["phase"])); ValidPhase(p) {
		phase = p
	}
	status := StatusPlaying
	if GameStatus(str(s["gameStatus"])) == StatusFinished {
		status = StatusFinished
	}
	modal := Phase(str(s["phaseCompleteModal"]))
	if !ValidPhase(modal) {
		modal = ""
	}

	results := EmptyPhaseResults()
	if rr, ok := s["phaseResults"].(map[string]any); ok {
		for _, p := range PhaseOrder {
			results = results.With(p, decodePhaseResult(rr[string(p)], teamIDs))
		}
	}
	// Older builds could save between the bowl emptying and the result snapshot.
	for _, p := range PhaseOrder {
		if results.Get(p) != nil || len(phaseState.Get(p).MainBowl) > 0 {
			continue
		}
		result := PhaseResult{}
		for _, id := range teamIDs {
			result[id] = len(phaseState.Get(p).ScoredByTeam[id])
		}
		results = results.With(p, result)
	}

	createdAt, _ := finite(s["createdAt"])
	migrated := Session{
		ID:                 str(s["id"]),
		CreatedAt:          int64(createdAt),
		Teams:              teams,
		Players:            decodePlayers(s["players"]),
		Deck:               deck,
		Phase:              phase,
		Turn:               m.decodeTurn(s["turn"], settings),
		Settings:           settings,
		PhaseState:         phaseState,
		PhaseResults:       results,
		GameStatus:         status,
		LastTeamID:         str(s["lastTeamId"]),
		PhaseCompleteModal: modal,
		GameOverModal:      truthy(s["gameOverModal"]),
	}
	if discard := decodeCards(s["discard"]); len(discard) > 0 {
		migrated.Discard = discard
	}
	if legacy, ok := s["scoredByTeam"].(map[string]any); ok && len(legacy) > 0 {
		migrated.LegacyScores = make(map[string]int, len(legacy))
		for id, v := range legacy {
			n, _ := finite(v)
			migrated.LegacyScores[id] = int(n)
		}
	}
	return migrated, nil
}

// migratePhaseStates dispatches on the shape of the stored phase state.
func (m Migrator) migratePhaseStates(raw any, cardIDs []string, teamA, teamB string) PhaseStates {
	fresh := func() PhaseState { return InitPhaseState(cardIDs, teamA, teamB, m.Shuffle) }

	var convert func(p map[string]any) PhaseState
	switch {
	case isCurrentPhaseState(raw):
		convert = func(p map[string]any) PhaseState { return normalizePhaseState(p, teamA, teamB) }
	case isDrawPilePhaseState(raw):
		convert = func(p map[string]any) PhaseState { return migrateDrawPiles(p, teamA, teamB) }
	default:
		return PhaseStates{Describe: fresh(), OneWord: fresh(), Charades: fresh()}
	}

	rp := raw.(map[string]any)
	var out PhaseStates
	for _, phase := range PhaseOrder {
		p, ok := rp[string(phase)].(map[string]any)
		if !ok {
			out = out.With(phase, fresh())
			continue
		}
		out = out.With(phase, convert(p))
	}
	return out
}

// isCurrentPhaseState detects the single shared bowl generation.
func isCurrentPhaseState(raw any) bool {
	rp, ok := raw.(map[string]any)
	if !ok {
		return false
	}
	describe, ok := rp["describe"].(map[string]any)
	if !ok {
		return false
	}
	_, ok = describe["mainBowl"].([]any)
	return ok
}

// isDrawPilePhaseState detects the per-team draw pile generation.
func isDrawPilePhaseState(raw any) bool {
	rp, ok := raw.(map[string]any)
	if !ok {
		return false
	}
	describe, ok := rp["describe"].(map[string]any)
	if !ok {
		return false
	}
	_, ok = describe["drawPileByTeam"].(map[string]any)
	return ok
}

// normalizePhaseState fills in both team keys and folds cards from the legacy
// passed pile into the team's scored cards.
func normalizePhaseState(p map[string]any, teamA, teamB string) PhaseState {
	passed, _ := p["passedToTeam"].(map[string]any)
	scored, _ := p["scoredByTeam"].(map[string]any)
	return PhaseState{
		MainBowl:     strList(p["mainBowl"]),
		PassedToTeam: emptyBuckets([]string{teamA, teamB}),
		ScoredByTeam: map[string][]string{
			teamA: mergeUniqueCardIDs(strList(scored[teamA]), strList(passed[teamA])),
			teamB: mergeUniqueCardIDs(strList(scored[teamB]), strList(passed[teamB])),
		},
	}
}

// migrateDrawPiles merges the two per-team draw piles into one bowl.
func migrateDrawPiles(p map[string]any, teamA, teamB string) PhaseState {
	piles, _ := p["drawPileByTeam"].(map[string]any)
	scored, _ := p["scoredByTeam"].(map[string]any)
	return PhaseState{
		MainBowl:     mergeUniqueCardIDs(strList(piles[teamA]), strList(piles[teamB])),
		PassedToTeam: emptyBuckets([]string{teamA, teamB}),
		ScoredByTeam: map[string][]string{
			teamA: strList(scored[teamA]),
			teamB: strList(scored[teamB]),
		},
	}
}

func (m Migrator) decodeTurn(raw any, settings Settings) *TurnState {
	rt, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	active := str(rt["activeTeamId"])
	if active == "" {
		return nil
	}
	turn := &TurnState{
		ActiveTeamID:     active,
		ActivePlayerID:   str(rt["activePlayerId"]),
		SecondsRemaining: settings.TurnSeconds,
		IsRunning:        truthy(rt["isRunning"]),
		StartedAt:        m.Now().UnixMilli(),
		CurrentCardID:    str(rt["currentCardId"]),
		History:          TurnHistory{},
	}
	if v, ok := finite(rt["secondsRemaining"]); ok {
		turn.SecondsRemaining = int(v)
	}
	if v, ok := finite(rt["startedAt"]); ok {
		turn.StartedAt = int64(v)
	}
	if entries, ok := rt["history"].([]any); ok {
		for _, e := range entries {
			if a, ok := decodeAction(e); ok {
				turn.History = append(turn.History, a)
			}
		}
	}
	return turn
}

func decodeAction(raw any) (TurnAction, bool) {
	e, ok := raw.(map[string]any)
	if !ok {
		return nil, false
	}
	return turnActionJSON{
		Type:       str(e["type"]),
		CardID:     str(e["cardId"]),
		TeamID:     str(e["teamId"]),
		FromTeamID: str(e["fromTeamId"]),
		ToTeamID:   str(e["toTeamId"]),
		Phase:      Phase(str(e["phase"])),
		NextCardID: str(e["nextCardId"]),
	}.action()
}

func decodePhaseResult(raw any, teamIDs []string) PhaseResult {
	rr, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	result := PhaseResult{}
	for _, id := range teamIDs {
		v, _ := finite(rr[id])
		result[id] = int(v)
	}
	return result
}

func decodeTeams(raw any) []Team {
	teams := []Team{}
	for _, e := range objects(raw) {
		score, _ := finite(e["score"])
		teams = append(teams, Team{ID: str(e["id"]), Name: str(e["name"]), Score: int(score)})
	}
	return teams
}

func decodePlayers(raw any) []Player {
	players := []Player{}
	for _, e := range objects(raw) {
		players = append(players, Player{ID: str(e["id"]), Name: str(e["name"]), TeamID: str(e["teamId"])})
	}
	return players
}

func decodeCards(raw any) []Card {
	cards := []Card{}
	for _, e := range objects(raw) {
		cards = append(cards, Card{ID: str(e["id"]), Text: str(e["text"]), CreatedByPlayerID: str(e["createdByPlayerId"])})
	}
	return cards
}

func objects(raw any) []map[string]any {
	list, _ := raw.([]any)
	out := make([]map[string]any, 0, len(list))
	for _, e := range list {
		if obj, ok := e.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

func strList(raw any) []string {
	list, _ := raw.([]any)
	out := make([]string, 0, len(list))
	for _, e := range list {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func str(raw any) string {
	s, _ := raw.(string)
	return s
}

func finite(raw any) (float64, bool) {
	v, ok := raw.(float64)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func truthy(raw any) bool {
	switch v := raw.(type) {
	case bool:
		return v
	case float64:
		return v != 0 && !math.IsNaN(v)
	case string:
		return v != ""
	case nil:
		return false
	}
	return true
}
