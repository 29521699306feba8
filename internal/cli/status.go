// status.go implements the "bowl status" command.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bowl-game/bowl/internal/tui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active game",
	Long: `Show the phase, scores and the running turn of the active game.
The turn clock is charged for the time since the last command.`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ok, err := a.hydrate(cmd.Context())
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "No active game. Create one with 'bowl new -f setup.yaml'.")
		return nil
	}

	s, _ := a.store.Current()
	fmt.Fprint(cmd.OutOrStdout(), tui.RenderStatus(s))
	return nil
}
