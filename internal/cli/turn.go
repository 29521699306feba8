// turn.go implements the one-shot turn commands: start, got, pass, undo, end.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bowl-game/bowl/internal/store"
	"github.com/bowl-game/bowl/internal/tui"
)

// action is a store command run against the hydrated game.
type action func(ctx context.Context, s *store.Store) (bool, error)

// actionCmd builds a command that hydrates the last game, runs act once and
// prints the resulting state. unchanged is printed when act was a no-op.
func actionCmd(use, short, unchanged string, act action) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			if err := a.requireGame(ctx); err != nil {
				return err
			}
			changed, err := act(ctx, a.store)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !changed {
				fmt.Fprintln(out, unchanged)
			}
			s, _ := a.store.Current()
			fmt.Fprint(out, tui.RenderStatus(s))
			return nil
		},
	}
}

var startCmd = actionCmd("start", "Start the next team's turn",
	"A turn is already running or the game is waiting on 'bowl next'.",
	func(ctx context.Context, s *store.Store) (bool, error) { return s.StartTurn(ctx) })

var gotCmd = actionCmd("got", "Score the card in hand for the active team",
	"No card in hand.",
	func(ctx context.Context, s *store.Store) (bool, error) { return s.GotIt(ctx) })

var passCmd = actionCmd("pass", "Give the card in hand to the other team",
	"No card in hand.",
	func(ctx context.Context, s *store.Store) (bool, error) { return s.Pass(ctx) })

var undoCmd = actionCmd("undo", "Take back the last card of this turn",
	"Nothing to undo.",
	func(ctx context.Context, s *store.Store) (bool, error) { return s.Undo(ctx) })

var endCmd = actionCmd("end", "End the running turn",
	"No turn is running.",
	func(ctx context.Context, s *store.Store) (bool, error) { return s.EndTurn(ctx, store.EndManual) })
