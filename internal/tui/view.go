package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bowl-game/bowl/internal/game"
	"github.com/bowl-game/bowl/internal/report"
)

const clockWidth = 30

// View renders the play screen.
func (m *Model) View() string {
	var sections []string
	if s, ok := m.game.Current(); ok {
		sections = append(sections, viewHeader(s), m.viewBody(s))
	} else {
		sections = append(sections, BoxStyle.Render(TitleStyle.Render("Bowl")+"\n\n"+
			DimStyle.Render("No active game. Create one with 'bowl new -f setup.yaml'.")))
	}

	if m.lastErr != nil {
		sections = append(sections, ErrorStyle.Render("Error: "+m.lastErr.Error()))
	}
	if m.ctrlCPending {
		sections = append(sections, WarningStyle.Render("Press Ctrl+C again to quit"))
	}
	sections = append(sections, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m *Model) viewBody(s game.Session) string {
	switch {
	case s.GameOverModal || s.GameStatus == game.StatusFinished:
		return m.viewGameOver(s)
	case s.PhaseCompleteModal != "":
		return viewPhaseComplete(s)
	case game.IsTurnRunning(s):
		return viewTurn(s)
	default:
		return viewBetweenTurns(s)
	}
}

func viewHeader(s game.Session) string {
	title := TitleStyle.Render("Bowl · " + report.PhaseLabel(s.Phase))

	active := ""
	if s.Turn != nil {
		active = s.Turn.ActiveTeamID
	}
	var teams []string
	for _, t := range s.Teams {
		label := fmt.Sprintf("%s  %d", t.Name, game.TeamTotalScore(s, t.ID))
		if t.ID == active {
			teams = append(teams, ActiveTeamStyle.Render(label))
		} else {
			teams = append(teams, InactiveTeamStyle.Render(label))
		}
	}
	bar := StatusBarStyle.Render(fmt.Sprintf("%d cards in the bowl", game.CardsInBowlCount(s, s.Phase)))

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		lipgloss.JoinHorizontal(lipgloss.Top, teams...),
		bar,
	)
}

func viewTurn(s game.Session) string {
	team, _ := game.TeamByID(s, s.Turn.ActiveTeamID)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s is up\n\n", team.Name))
	if card, ok := game.CurrentCard(s); ok {
		b.WriteString(CardStyle.Width(clockWidth).Render(card.Text))
		b.WriteString("\n\n")
	}
	b.WriteString(renderClock(s.Turn.SecondsRemaining, s.Settings.TurnSeconds))
	if n := len(s.Turn.History); n > 0 {
		b.WriteString(DimStyle.Render(fmt.Sprintf("\n%d resolved this turn", n)))
	}
	return BoxStyle.Render(b.String())
}

// renderClock draws the remaining time as a bar followed by the seconds left.
func renderClock(remaining, total int) string {
	if total <= 0 {
		total = game.DefaultTurnSeconds
	}
	filled := remaining * clockWidth / total
	filled = min(max(filled, 0), clockWidth)

	bar := ProgressFullStyle.Render(strings.Repeat("█", filled)) +
		ProgressEmptyStyle.Render(strings.Repeat("░", clockWidth-filled))

	secs := fmt.Sprintf(" %2ds", remaining)
	if remaining <= 10 {
		secs = WarningStyle.Render(secs)
	}
	return bar + secs
}

func viewBetweenTurns(s game.Session) string {
	return BoxStyle.Render(fmt.Sprintf("Next up: %s\n\n%s",
		TitleStyle.Render(nextTeamName(s)),
		DimStyle.Render("Pass the device, then press space to start the turn.")))
}

func viewPhaseComplete(s game.Session) string {
	done := s.PhaseCompleteModal

	var b strings.Builder
	b.WriteString(SuccessStyle.Render(report.PhaseLabel(done) + " complete!"))
	b.WriteString("\n\n")
	for _, t := range s.Teams {
		b.WriteString(fmt.Sprintf("%-20s %3d\n", t.Name, game.TeamPhaseResult(s, t.ID, done)))
	}
	if next, ok := game.NextPhase(done); ok {
		b.WriteString(DimStyle.Render("\nNext round: " + report.PhaseLabel(next) + ". Press n to continue."))
	}
	return BoxStyle.Render(b.String())
}

func (m *Model) viewGameOver(s game.Session) string {
	out := report.FormatReport(report.GenerateReport(s, m.eventsFor(s.ID)))
	if s.GameOverModal {
		out += "\n" + DimStyle.Render("Press n to close.")
	}
	return BoxStyle.Render(out)
}
