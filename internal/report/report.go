// Package report builds end-of-game scoreboards.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/bowl-game/bowl/internal/game"
	"github.com/bowl-game/bowl/internal/log"
)

// TeamLine is one team's row on the scoreboard.
type TeamLine struct {
	ID       string
	Name     string
	ByPhase  map[game.Phase]int
	Total    int
	Passed   int // cards this team passed to the other side
	Finished map[game.Phase]bool
}

// Report holds the aggregated scores and metadata of one session.
type Report struct {
	SessionID string
	Status    game.GameStatus
	Phase     game.Phase
	Teams     []TeamLine
	WinnerID  string
	Tie       bool
	Cards     int
	Turns     int
	Duration  time.Duration
}

// GenerateReport builds a Report from a session and the event log entries
// recorded for it. events may be nil.
func GenerateReport(s game.Session, events []log.LogEvent) *Report {
	r := &Report{
		SessionID: s.ID,
		Status:    s.GameStatus,
		Phase:     s.Phase,
		Cards:     len(s.Deck),
	}

	for _, t := range s.Teams {
		line := TeamLine{
			ID:       t.ID,
			Name:     t.Name,
			ByPhase:  make(map[game.Phase]int),
			Finished: make(map[game.Phase]bool),
			Total:    game.TeamTotalScore(s, t.ID),
		}
		for _, p := range game.PhaseOrder {
			line.ByPhase[p] = game.TeamPhaseResult(s, t.ID, p)
			line.Finished[p] = s.PhaseResults.Get(p) != nil
		}
		r.Teams = append(r.Teams, line)
	}

	if s.GameStatus == game.StatusFinished {
		r.WinnerID, r.Tie = game.Winner(s)
	}

	events = log.ForSession(events, s.ID)
	passedBy := make(map[string]int)
	for _, e := range events {
		switch e.Event {
		case log.EventTurnStarted:
			r.Turns++
		case log.EventCardPassed:
			// The event names the credited team.
			passedBy[game.OtherTeamID(s, e.TeamID)]++
		}
	}
	for i := range r.Teams {
		r.Teams[i].Passed = passedBy[r.Teams[i].ID]
	}
	r.Duration = computeDuration(events)

	return r
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	winnerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
)

// FormatReport produces a terminal-friendly, human-readable summary string.
func FormatReport(r *Report) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Bowl Scoreboard"))
	b.WriteString("\n\n")

	headers := []string{"Team"}
	for _, p := range game.PhaseOrder {
		headers = append(headers, PhaseLabel(p))
	}
	headers = append(headers, "Total")

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
	for _, line := range r.Teams {
		row := []string{line.Name}
		for _, p := range game.PhaseOrder {
			cell := fmt.Sprintf("%d", line.ByPhase[p])
			if !line.Finished[p] && p == r.Phase && r.Status == game.StatusPlaying {
				cell += "*"
			} else if !line.Finished[p] {
				cell = "-"
			}
			row = append(row, cell)
		}
		row = append(row, fmt.Sprintf("%d", line.Total))
		t.Row(row...)
	}
	b.WriteString(t.String())
	b.WriteString("\n\n")

	switch {
	case r.Status != game.StatusFinished:
		fmt.Fprintf(&b, "In progress: %s round (* = live score)\n", PhaseLabel(r.Phase))
	case r.Tie:
		b.WriteString(winnerStyle.Render("It's a tie!"))
		b.WriteString("\n")
	default:
		for _, line := range r.Teams {
			if line.ID == r.WinnerID {
				b.WriteString(winnerStyle.Render(line.Name + " wins!"))
				b.WriteString("\n")
			}
		}
	}

	fmt.Fprintf(&b, "Cards:       %d\n", r.Cards)
	if r.Turns > 0 {
		fmt.Fprintf(&b, "Turns:       %d\n", r.Turns)
	}
	for _, line := range r.Teams {
		if line.Passed > 0 {
			fmt.Fprintf(&b, "Passed:      %s gave away %d\n", line.Name, line.Passed)
		}
	}
	if r.Duration > 0 {
		fmt.Fprintf(&b, "Duration:    %s\n", formatDuration(r.Duration))
	}

	return b.String()
}

// WriteReport writes the formatted report to {dir}/{session id}.txt and
// returns the path. Creates dir if it does not exist.
func WriteReport(dir string, r *Report) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}

	path := filepath.Join(dir, r.SessionID+".txt")
	if err := os.WriteFile(path, []byte(FormatReport(r)), 0644); err != nil {
		return "", fmt.Errorf("writing report file: %w", err)
	}

	return path, nil
}

// PhaseLabel is the display name of a phase.
func PhaseLabel(p game.Phase) string {
	switch p {
	case game.PhaseDescribe:
		return "Describe"
	case game.PhaseOneWord:
		return "One Word"
	case game.PhaseCharades:
		return "Charades"
	}
	return string(p)
}

// computeDuration measures from the session_created event to game_over, or
// to the last event when the game is still running.
func computeDuration(events []log.LogEvent) time.Duration {
	var start, end time.Time
	for _, e := range events {
		if e.Event == log.EventSessionCreated && start.IsZero() {
			start = e.Time
		}
		if !e.Time.IsZero() {
			end = e.Time
		}
		if e.Event == log.EventGameOver {
			end = e.Time
			break
		}
	}

	if start.IsZero() || end.IsZero() {
		return 0
	}
	d := end.Sub(start)
	if d < 0 {
		return 0
	}
	return d
}

// formatDuration produces a human-readable duration string such as "5m 32s"
// or "1h 12m 5s". Sub-second durations are shown as "< 1s".
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "< 1s"
	}

	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
