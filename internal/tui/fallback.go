package tui

import (
	"fmt"
	"strings"

	"github.com/bowl-game/bowl/internal/game"
	"github.com/bowl-game/bowl/internal/report"
)

// RenderStatus returns a plain-text snapshot of a session for non-interactive
// output.
func RenderStatus(s game.Session) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Game %s\n", s.ID)
	if s.GameStatus == game.StatusFinished {
		b.WriteString("Status: finished\n")
	} else {
		fmt.Fprintf(&b, "Phase: %s (%d cards left in the bowl)\n",
			report.PhaseLabel(s.Phase), game.CardsInBowlCount(s, s.Phase))
	}

	for _, t := range s.Teams {
		fmt.Fprintf(&b, "  %-20s %3d\n", t.Name, game.TeamTotalScore(s, t.ID))
	}

	switch {
	case s.GameOverModal:
		b.WriteString("Game over. Run 'bowl next' to close the results.\n")
	case s.PhaseCompleteModal != "":
		fmt.Fprintf(&b, "%s complete. Run 'bowl next' to continue.\n", report.PhaseLabel(s.PhaseCompleteModal))
	case game.IsTurnRunning(s):
		team, _ := game.TeamByID(s, s.Turn.ActiveTeamID)
		fmt.Fprintf(&b, "Turn: %s, %ds left\n", team.Name, s.Turn.SecondsRemaining)
		if card, ok := game.CurrentCard(s); ok {
			fmt.Fprintf(&b, "Card: %s\n", card.Text)
		}
	case s.GameStatus == game.StatusPlaying:
		fmt.Fprintf(&b, "Up next: %s\n", nextTeamName(s))
	}
	return b.String()
}

// nextTeamName names the team that will get the bowl on the next turn.
func nextTeamName(s game.Session) string {
	teamA, _ := game.Teams(s)
	if s.LastTeamID == "" {
		return teamA.Name
	}
	next, _ := game.TeamByID(s, game.OtherTeamID(s, s.LastTeamID))
	return next.Name
}
