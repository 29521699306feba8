// Package cli defines Cobra command definitions for the bowl CLI.
// This file contains the root command, version flag, and help output.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bowl-game/bowl/internal/tui"
)

var (
	verbose bool
	dirFlag string
	version = "dev" // set via ldflags at build time
)

var rootCmd = &cobra.Command{
	Use:   "bowl",
	Short: "Bowl party game: describe, one word, charades",
	Long: `Bowl runs a two-team party game played over three rounds with the
same bowl of cards: describe it, say one word, act it out.
Without a subcommand it opens the play screen in a terminal.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// When no subcommand is provided, launch TUI if TTY, show help otherwise
		if !tui.IsTTY() {
			return cmd.Help()
		}
		return runPlay(cmd, args)
	},
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log every game command to stderr")
	rootCmd.PersistentFlags().StringVar(&dirFlag, "dir", "", "Project directory holding .bowl/ (default: working directory)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(gotCmd)
	rootCmd.AddCommand(passCmd)
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(endCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(resetCmd)
}
