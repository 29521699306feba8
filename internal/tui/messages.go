package tui

import "time"

// TickMsg is sent once a second while the turn clock runs. Gen identifies
// the tick chain that scheduled it.
type TickMsg struct {
	Gen  int
	Time time.Time
}

// CtrlCResetMsg clears a pending Ctrl+C confirmation.
type CtrlCResetMsg struct{}
