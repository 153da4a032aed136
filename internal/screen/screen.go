// Package screen declares what the router needs from a terminal screen,
// plus optional capabilities a screen may add.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/triviaz/internal/ui/layout"
)

// Screen is one page of the terminal app: home, play, summary or history.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body only. The app draws header and footer around it
	// and passes the space left between them.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// ResumedMsg is sent to the screen that becomes active after the ones
// above it are popped, so it can refresh stale data.
type ResumedMsg struct{}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider supplies the player, score and difficulty shown on the
// right of the header.
type StatusProvider interface {
	Status() layout.Status
}

// EscapeHandler screens receive Esc themselves while HandlesEscape is true
// instead of being popped.
type EscapeHandler interface {
	HandlesEscape() bool
}

// Closer is called once when the screen leaves the stack or the program
// exits. The play screen ends its quiz session here.
type Closer interface {
	Close()
}
