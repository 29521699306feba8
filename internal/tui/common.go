// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// KeyCtrlC quits after a second press.
const KeyCtrlC = "ctrl+c"

// IsTTY returns true if stdout is connected to a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Run starts the TUI program with the given model.
// If stdout is a TTY, it runs in alternate screen mode.
// Otherwise, it prints the current state once and returns.
func Run(m *Model) error {
	if IsTTY() {
		p := tea.NewProgram(m, tea.WithAltScreen())
		_, err := p.Run()
		return err
	}
	return runFallback(os.Stdout, m)
}

// runFallback handles non-TTY execution by printing a status snapshot and
// pointing at the one-shot commands.
func runFallback(w io.Writer, m *Model) error {
	s, ok := m.game.Current()
	if !ok {
		fmt.Fprintln(w, "No active game. Create one with 'bowl new -f setup.yaml'.")
		return nil
	}
	fmt.Fprint(w, RenderStatus(s))
	fmt.Fprintln(w, "Non-TTY environment detected.")
	fmt.Fprintln(w, "Use 'bowl start', 'bowl got', 'bowl pass', 'bowl undo' and 'bowl end' to play.")
	return nil
}
