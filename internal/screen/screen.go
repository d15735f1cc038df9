package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/amixedcolor/aws-identity-gift/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Refresher is implemented by screens that reload their data when they
// become the active screen again.
type Refresher interface {
	Refresh() tea.Cmd
}

// Closer is implemented by screens holding background work that must stop
// when the screen leaves the stack.
type Closer interface {
	Close()
}

// ArchiveChangedMsg tells the app that the saved results changed.
type ArchiveChangedMsg struct{}

// ArchiveChanged is a command emitting ArchiveChangedMsg.
func ArchiveChanged() tea.Msg { return ArchiveChangedMsg{} }
