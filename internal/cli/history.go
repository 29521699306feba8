// history.go implements the "bowl history" command that lists stored games
// and the event log of one game.
package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/bowl-game/bowl/internal/game"
	bowlreport "github.com/bowl-game/bowl/internal/report"
)

var historyCmd = &cobra.Command{
	Use:   "history [game-id]",
	Short: "List stored games or show the events of one",
	Long: `Without arguments, list every stored game, newest first.
With a game id, print that game's recorded events in order.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	if len(args) == 1 {
		events := a.sessionEvents(args[0])
		if len(events) == 0 {
			fmt.Fprintf(out, "No events recorded for %s.\n", args[0])
			return nil
		}
		for _, e := range events {
			line := fmt.Sprintf("%s  %-16s", e.Time.Local().Format(time.TimeOnly), e.Event)
			if e.Phase != "" {
				line += " " + bowlreport.PhaseLabel(game.Phase(e.Phase))
			}
			if e.TeamID != "" {
				line += " team=" + e.TeamID
			}
			if e.CardID != "" {
				line += " card=" + e.CardID
			}
			if e.Reason != "" {
				line += " reason=" + e.Reason
			}
			fmt.Fprintln(out, line)
		}
		return nil
	}

	sessions, err := a.games.ListSessions(ctx)
	if err != nil {
		return fmt.Errorf("listing games: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No stored games.")
		return nil
	}
	active, err := a.games.LoadLastActiveID(ctx)
	if err != nil {
		return fmt.Errorf("loading last active game: %w", err)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("", "Game", "Created", "Teams", "Status")
	for _, s := range sessions {
		marker := ""
		if s.ID == active {
			marker = "*"
		}
		teamA, teamB := game.Teams(s)
		teams := fmt.Sprintf("%s %d : %d %s",
			teamA.Name, game.TeamTotalScore(s, teamA.ID),
			game.TeamTotalScore(s, teamB.ID), teamB.Name)
		status := string(s.GameStatus)
		if s.GameStatus == game.StatusPlaying {
			status = bowlreport.PhaseLabel(s.Phase)
		}
		t.Row(marker, s.ID, time.UnixMilli(s.CreatedAt).Local().Format(time.DateTime), teams, status)
	}
	fmt.Fprintln(out, t.String())
	return nil
}
