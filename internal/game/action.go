package game

import (
	"encoding/json"
	"fmt"
)

// TurnHistoryLimit is the number of resolved cards a turn remembers for undo.
const TurnHistoryLimit = 50

const (
	actionGotIt       = "gotIt"
	actionPassToOther = "passToOther"
)

// TurnAction records one resolved card. It is a closed set: GotItAction or PassAction.
type TurnAction interface {
	turnAction()
	// ResolvedCard is the card that was scored.
	ResolvedCard() string
	// DrawnNext is the card drawn right after, or "" if the bowl ran out.
	DrawnNext() string
}

// GotItAction credits the card to the active team.
type GotItAction struct {
	CardID     string
	TeamID     string
	Phase      Phase
	NextCardID string
}

// PassAction credits the card to the team that was not guessing.
type PassAction struct {
	CardID     string
	FromTeamID string
	ToTeamID   string
	Phase      Phase
	NextCardID string
}

func (GotItAction) turnAction() {}
func (PassAction) turnAction()  {}

func (a GotItAction) ResolvedCard() string { return a.CardID }
func (a GotItAction) DrawnNext() string    { return a.NextCardID }
func (a PassAction) ResolvedCard() string  { return a.CardID }
func (a PassAction) DrawnNext() string     { return a.NextCardID }

// TurnHistory is the undo stack of a turn, oldest first.
type TurnHistory []TurnAction

type turnActionJSON struct {
	Type       string `json:"type"`
	CardID     string `json:"cardId"`
	TeamID     string `json:"teamId,omitempty"`
	FromTeamID string `json:"fromTeamId,omitempty"`
	ToTeamID   string `json:"toTeamId,omitempty"`
	Phase      Phase  `json:"phase"`
	NextCardID string `json:"nextCardId,omitempty"`
}

// MarshalJSON encodes the history as tagged records.
func (h TurnHistory) MarshalJSON() ([]byte, error) {
	out := make([]turnActionJSON, 0, len(h))
	for _, a := range h {
		switch a := a.(type) {
		case GotItAction:
			out = append(out, turnActionJSON{
				Type: actionGotIt, CardID: a.CardID, TeamID: a.TeamID,
				Phase: a.Phase, NextCardID: a.NextCardID,
			})
		case PassAction:
			out = append(out, turnActionJSON{
				Type: actionPassToOther, CardID: a.CardID, FromTeamID: a.FromTeamID,
				ToTeamID: a.ToTeamID, Phase: a.Phase, NextCardID: a.NextCardID,
			})
		default:
			return nil, fmt.Errorf("encode turn action: unknown type %T", a)
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes tagged records; entries of unknown type are dropped.
func (h *TurnHistory) UnmarshalJSON(data []byte) error {
	var raw []turnActionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode turn history: %w", err)
	}
	out := make(TurnHistory, 0, len(raw))
	for _, r := range raw {
		if a, ok := r.action(); ok {
			out = append(out, a)
		}
	}
	*h = out
	return nil
}

func (r turnActionJSON) action() (TurnAction, bool) {
	switch r.Type {
	case actionGotIt:
		return GotItAction{CardID: r.CardID, TeamID: r.TeamID, Phase: r.Phase, NextCardID: r.NextCardID}, true
	case actionPassToOther:
		return PassAction{
			CardID: r.CardID, FromTeamID: r.FromTeamID, ToTeamID: r.ToTeamID,
			Phase: r.Phase, NextCardID: r.NextCardID,
		}, true
	}
	return nil, false
}

// pushAction appends a to h, dropping the oldest entries beyond the limit.
func pushAction(h TurnHistory, a TurnAction) TurnHistory {
	out := make(TurnHistory, 0, len(h)+1)
	out = append(out, h...)
	out = append(out, a)
	if len(out) > TurnHistoryLimit {
		out = out[len(out)-TurnHistoryLimit:]
	}
	return out
}
