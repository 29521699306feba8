// init.go implements the "bowl init" command.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bowl-game/bowl/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize bowl in the current directory",
	Long: `Create the .bowl/ directory with a default config.yaml and write an
example setup.yaml to start a game from.`,
	RunE: runInit,
}

var forceFlag bool

func init() {
	initCmd.Flags().BoolVar(&forceFlag, "force", false, "Overwrite an existing configuration without asking")
}

const exampleSetup = `# Start a game with: bowl new -f setup.yaml
teams: ["Team A", "Team B"]
turn_seconds: 60
players:
  - name: Player 1
    team: 0
  - name: Player 2
    team: 1
# Everyone writes a few names, places or things.
cards:
  - text: Eiffel Tower
    by: Player 1
  - text: Marie Curie
    by: Player 2
# Add twenty cards from the built-in list.
starter_pack: true
`

func runInit(cmd *cobra.Command, args []string) error {
	dir, err := projectDir()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	// Check for existing .bowl/ directory.
	bowlDir := filepath.Join(dir, config.Dir)
	if info, statErr := os.Stat(bowlDir); statErr == nil && info.IsDir() && !forceFlag {
		fmt.Fprintln(out, "Warning: .bowl/ directory already exists.")
		fmt.Fprint(out, "Reinitialize? [y/N]: ")
		reader := bufio.NewReader(cmd.InOrStdin())
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	if err := config.WriteConfig(dir, config.DefaultConfig()); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Ensure .gitignore keeps game state out of version control.
	if err := ensureGitignore(dir); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to set up .gitignore: %v\n", err)
	}

	setupPath := filepath.Join(dir, "setup.yaml")
	wroteSetup := false
	if _, statErr := os.Stat(setupPath); os.IsNotExist(statErr) {
		if err := os.WriteFile(setupPath, []byte(exampleSetup), 0644); err != nil {
			return fmt.Errorf("writing setup.yaml: %w", err)
		}
		wroteSetup = true
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Bowl initialized")
	fmt.Fprintln(out, "Configuration written to .bowl/config.yaml")
	if wroteSetup {
		fmt.Fprintln(out, "Example game written to setup.yaml")
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Edit setup.yaml with your teams, players and cards")
	fmt.Fprintln(out, "  2. Run: bowl new -f setup.yaml")
	return nil
}

// ensureGitignore appends the bowl runtime files to .gitignore if missing.
// Creates .gitignore if it does not exist.
func ensureGitignore(dir string) error {
	gitignorePath := filepath.Join(dir, ".gitignore")

	// config.yaml IS committed; the database and event log are not.
	requiredEntries := []string{
		".env",
		filepath.ToSlash(filepath.Join(config.Dir, "bowl.db")),
		filepath.ToSlash(filepath.Join(config.Dir, "events.jsonl")),
		filepath.ToSlash(filepath.Join(config.Dir, "reports")) + "/",
	}

	existing := ""
	if data, err := os.ReadFile(gitignorePath); err == nil {
		existing = string(data)
	}

	var missing []string
	for _, entry := range requiredEntries {
		if !strings.Contains(existing, entry) {
			missing = append(missing, entry)
		}
	}

	if len(missing) == 0 {
		return nil
	}

	var toAppend strings.Builder
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		toAppend.WriteString("\n")
	}
	if existing != "" {
		toAppend.WriteString("\n# Added by bowl init\n")
	}
	for _, entry := range missing {
		toAppend.WriteString(entry + "\n")
	}

	f, err := os.OpenFile(gitignorePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening .gitignore: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(toAppend.String()); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	return nil
}
