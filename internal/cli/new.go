// new.go implements the "bowl new" command that starts a game from a setup file.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bowl-game/bowl/internal/game"
	"github.com/bowl-game/bowl/internal/tui"
	"github.com/bowl-game/bowl/internal/wizard"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new game from a setup file",
	Long: `Read teams, players and cards from a YAML setup file and start a new
game. The new game becomes the active one; earlier games stay stored.`,
	Args: cobra.NoArgs,
	RunE: runNew,
}

var setupFileFlag string

func init() {
	newCmd.Flags().StringVarP(&setupFileFlag, "file", "f", "setup.yaml", "Setup file to read")
}

func runNew(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	setup, err := wizard.ReadFile(setupFileFlag)
	if err != nil {
		return err
	}

	input, err := setup.ToInput(wizard.Options{
		MinCards:    a.cfg.Game.MinCards,
		TurnSeconds: a.cfg.Game.TurnSeconds,
		TeamNames:   a.cfg.Game.TeamNames,
	}, game.NewID)
	if errors.Is(err, wizard.ErrTooFewCards) {
		return fmt.Errorf("%w (add cards or set starter_pack: true)", err)
	}
	if err != nil {
		return fmt.Errorf("invalid setup: %w", err)
	}

	session := a.store.CreateNewSession(cmd.Context(), input)
	if err := a.store.Persist(cmd.Context()); err != nil {
		return fmt.Errorf("saving game: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "New game with %d cards and %d players.\n\n", len(session.Deck), len(session.Players))
	fmt.Fprint(out, tui.RenderStatus(session))
	return nil
}
