// play.go implements the "bowl play" command that opens the play screen.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/bowl-game/bowl/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the play screen",
	Long: `Open the full-screen play screen for the active game. A turn that
was running when the last command exited resumes with its remaining time.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	if _, err := a.hydrate(ctx); err != nil {
		return err
	}

	m := tui.NewModel(ctx, a.store, a.sessionEvents)
	if err := tui.Run(m); err != nil {
		return err
	}
	// Leave the running turn's clock where the screen last saw it.
	return a.store.Persist(ctx)
}
