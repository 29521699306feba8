// reset.go implements the "bowl reset" command that wipes stored games.
package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every stored game",
	Long: `Delete every stored game and forget the active one. The config and
event log are kept.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

var yesFlag bool

func init() {
	resetCmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "Do not ask for confirmation")
}

func runReset(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if !yesFlag {
		fmt.Fprint(out, "Delete all stored games? [y/N]: ")
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.hydrate(cmd.Context()); err != nil {
		// An unreadable game must not block the reset.
		a.log.Warn().Err(err).Msg("loading last game before reset")
	}
	if err := a.store.ResetAll(cmd.Context()); err != nil {
		return fmt.Errorf("resetting: %w", err)
	}
	fmt.Fprintln(out, "All games deleted.")
	return nil
}
