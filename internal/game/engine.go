package game

import (
	"math/rand"

	"github.com/google/uuid"
)

// PhaseOrder is the fixed sequence of rounds.
var PhaseOrder = []Phase{PhaseDescribe, PhaseOneWord, PhaseCharades}

// Shuffler returns a permutation of ids. It must not modify its argument.
type Shuffler func(ids []string) []string

// IDGenerator returns a new unique identifier.
type IDGenerator func() string

// RandShuffle returns a uniformly shuffled copy of ids.
func RandShuffle(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// NewID returns a random UUID string.
func NewID() string {
	return uuid.NewString()
}

// ValidPhase reports whether p is one of the three rounds.
func ValidPhase(p Phase) bool {
	for _, known := range PhaseOrder {
		if p == known {
			return true
		}
	}
	return false
}

// NextPhase returns the round after phase. ok is false after the last round.
func NextPhase(phase Phase) (next Phase, ok bool) {
	for i, p := range PhaseOrder {
		if p == phase && i < len(PhaseOrder)-1 {
			return PhaseOrder[i+1], true
		}
	}
	return "", false
}

// OtherTeamID returns the id of the team that is not teamID. If teamID is
// unknown the first team is returned.
func OtherTeamID(s Session, teamID string) string {
	for _, t := range s.Teams {
		if t.ID != teamID {
			return t.ID
		}
	}
	if len(s.Teams) > 0 {
		return s.Teams[0].ID
	}
	return ""
}

// TeamPhaseScore is the live number of cards teamID holds in phase.
func TeamPhaseScore(s Session, teamID string, phase Phase) int {
	return len(s.PhaseState.Get(phase).ScoredByTeam[teamID])
}

// TeamPhaseResult is the finalized score of teamID in phase, or the live
// score while the phase is in progress.
func TeamPhaseResult(s Session, teamID string, phase Phase) int {
	if v, ok := s.PhaseResults.Get(phase)[teamID]; ok {
		return v
	}
	return TeamPhaseScore(s, teamID, phase)
}

// TeamTotalScore sums TeamPhaseResult over every round.
func TeamTotalScore(s Session, teamID string) int {
	total := 0
	for _, p := range PhaseOrder {
		total += TeamPhaseResult(s, teamID, p)
	}
	return total
}

// IsPhaseComplete reports whether the bowl of phase is empty.
func IsPhaseComplete(s Session, phase Phase) bool {
	return len(s.PhaseState.Get(phase).MainBowl) == 0
}

// CardsInBowlCount is the number of unresolved cards left in phase.
func CardsInBowlCount(s Session, phase Phase) int {
	return len(s.PhaseState.Get(phase).MainBowl)
}

// CardByID looks a card up in the deck.
func CardByID(s Session, cardID string) (Card, bool) {
	for _, c := range s.Deck {
		if c.ID == cardID {
			return c, true
		}
	}
	return Card{}, false
}

// Winner returns the team with the highest total. tie is true when both
// teams have the same total.
func Winner(s Session) (teamID string, tie bool) {
	a, b, ok := s.teamPair()
	if !ok {
		return "", false
	}
	sa, sb := TeamTotalScore(s, a), TeamTotalScore(s, b)
	switch {
	case sa > sb:
		return a, false
	case sb > sa:
		return b, false
	}
	return "", true
}

// SnapshotPhaseResult freezes the live scores of phase.
func SnapshotPhaseResult(s Session, phase Phase) PhaseResult {
	scored := s.PhaseState.Get(phase).ScoredByTeam
	result := PhaseResult{}
	for _, id := range s.TeamIDs() {
		result[id] = len(scored[id])
	}
	return result
}

// EmptyPhaseResults returns results with every phase in progress.
func EmptyPhaseResults() PhaseResults {
	return PhaseResults{}
}

// InitPhaseState builds a fresh round: a shuffled bowl of every card and
// empty buckets for both teams.
func InitPhaseState(cardIDs []string, teamA, teamB string, shuffle Shuffler) PhaseState {
	if shuffle == nil {
		shuffle = RandShuffle
	}
	bowl := shuffle(append([]string{}, cardIDs...))
	if bowl == nil {
		bowl = []string{}
	}
	return PhaseState{
		MainBowl:     bowl,
		PassedToTeam: emptyBuckets([]string{teamA, teamB}),
		ScoredByTeam: emptyBuckets([]string{teamA, teamB}),
	}
}

func emptyBuckets(teamIDs []string) map[string][]string {
	out := make(map[string][]string, len(teamIDs))
	for _, id := range teamIDs {
		out[id] = []string{}
	}
	return out
}

// mergeUniqueCardIDs concatenates lists, keeping the first occurrence of each id.
func mergeUniqueCardIDs(lists ...[]string) []string {
	seen := make(map[string]struct{})
	merged := []string{}
	for _, list := range lists {
		for _, id := range list {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			merged = append(merged, id)
		}
	}
	return merged
}

// drawFromBowl takes the head card of the bowl. next is "" when the bowl is empty.
func drawFromBowl(state PhaseState) (rest PhaseState, next string) {
	if len(state.MainBowl) == 0 {
		return state, ""
	}
	next = state.MainBowl[0]
	state.MainBowl = append([]string{}, state.MainBowl[1:]...)
	return state, next
}

// withCard returns a new slice with id appended.
func withCard(list []string, id string) []string {
	out := make([]string, 0, len(list)+1)
	out = append(out, list...)
	return append(out, id)
}

// withoutLast returns a new slice without the last occurrence of id.
// ok is false when id is not present.
func withoutLast(list []string, id string) (out []string, ok bool) {
	idx := -1
	for i := len(list) - 1; i >= 0; i-- {
		if list[i] == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return list, false
	}
	out = make([]string, 0, len(list)-1)
	out = append(out, list[:idx]...)
	return append(out, list[idx+1:]...), true
}

// withBucket returns a copy of buckets with teamID set to list.
func withBucket(buckets map[string][]string, teamID string, list []string) map[string][]string {
	out := make(map[string][]string, len(buckets)+1)
	for k, v := range buckets {
		out[k] = v
	}
	out[teamID] = list
	return out
}
