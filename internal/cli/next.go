// next.go implements the "bowl next" command that closes the round and game results.
package cli

import (
	"context"

	"github.com/bowl-game/bowl/internal/store"
)

var nextCmd = actionCmd("next", "Close the round results and move on",
	"Nothing to continue.",
	func(ctx context.Context, s *store.Store) (bool, error) {
		cur, _ := s.Current()
		if cur.GameOverModal {
			return s.DismissGameOverModal(ctx)
		}
		return s.DismissPhaseCompleteModal(ctx)
	})

func init() {
	nextCmd.Long = `Dismiss the phase-complete results and deal a fresh bowl for the
next round, or close the final results once the game is over.`
}
