// report.go implements the "bowl report" command for the scoreboard.
package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bowl-game/bowl/internal/config"
	bowlreport "github.com/bowl-game/bowl/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report [game-id]",
	Short: "Show the scoreboard",
	Long: `Display the scoreboard of the active game, or of a stored game by id,
with per-round results, totals and the winner once the game is over.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

var saveFlag bool

func init() {
	reportCmd.Flags().BoolVar(&saveFlag, "save", false, "Also write the report to .bowl/reports/<id>.txt")
}

func runReport(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	var id string
	if len(args) == 1 {
		id = args[0]
	} else {
		if err := a.requireGame(ctx); err != nil {
			return err
		}
		cur, _ := a.store.Current()
		id = cur.ID
	}

	session, err := a.games.LoadSession(ctx, id)
	if err != nil {
		return fmt.Errorf("loading game %s: %w", id, err)
	}
	if session == nil {
		return fmt.Errorf("no stored game with id %s", id)
	}
	if cur, ok := a.store.Current(); ok && cur.ID == id {
		session = &cur
	}

	r := bowlreport.GenerateReport(*session, a.sessionEvents(id))
	fmt.Fprint(cmd.OutOrStdout(), bowlreport.FormatReport(r))

	if saveFlag {
		path, err := bowlreport.WriteReport(filepath.Join(a.dir, config.Dir, "reports"), r)
		if err != nil {
			return fmt.Errorf("saving report: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nReport written to %s\n", path)
	}
	return nil
}
