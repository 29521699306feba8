// clean.go implements the "bowl clean" command for pruning stored games.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bowl-game/bowl/internal/cleanup"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove old stored games",
	Long: `Remove old games from storage.

By default, removes games older than the configured max_age_days (default 30).
Use --keep to keep only the N most recent games instead.
Use --dry-run to preview what would be removed.
The active game is never removed.`,
	RunE: runClean,
}

var (
	keepFlag   int
	dryRunFlag bool
)

func init() {
	cleanCmd.Flags().IntVar(&keepFlag, "keep", 0, "Keep only the last N games (0 = use age-based cleanup)")
	cleanCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Preview what would be removed without deleting")
}

func runClean(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	var pruned []string
	if keepFlag > 0 {
		pruned, err = cleanup.PruneKeepRecent(cmd.Context(), a.games, keepFlag, dryRunFlag)
	} else {
		maxAge := a.cfg.Cleanup.MaxAgeDays
		if maxAge <= 0 {
			maxAge = 30
		}
		pruned, err = cleanup.PruneByAge(cmd.Context(), a.games, maxAge, dryRunFlag)
	}
	if err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(pruned) == 0 {
		fmt.Fprintln(out, "No games to clean up.")
		return nil
	}

	verb := "Removed"
	if dryRunFlag {
		verb = "Would remove"
	}

	for _, id := range pruned {
		fmt.Fprintf(out, "  %s %s\n", verb, id)
	}
	fmt.Fprintf(out, "%s %d game(s).\n", verb, len(pruned))

	return nil
}
