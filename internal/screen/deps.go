package screen

import (
	"context"

	"go.uber.org/zap"

	"github.com/amixedcolor/aws-identity-gift/internal/archive"
	"github.com/amixedcolor/aws-identity-gift/internal/gift"
	"github.com/amixedcolor/aws-identity-gift/internal/quiz"
	"github.com/amixedcolor/aws-identity-gift/internal/session"
)

// Archive is what the screens need from the result archive.
type Archive interface {
	GetAll(ctx context.Context, order archive.Order) []gift.DiagnosticResult
	GetByID(ctx context.Context, id string) (*gift.DiagnosticResult, bool)
	DeleteByID(ctx context.Context, id string) error
	ClearAll(ctx context.Context) error
	Count(ctx context.Context) int
	MaxCount() int
}

// Deps is shared by every screen of the TUI.
type Deps struct {
	Bank    *quiz.Bank
	Runner  *session.Runner
	Archive Archive
	Logger  *zap.Logger
	// WatchPath is the database file the archive screen watches for
	// changes made by other processes. Empty disables live reload.
	WatchPath string
	// CardDir is where gift card images are written.
	CardDir string
}

// Log returns the logger, or a no-op one.
func (d *Deps) Log() *zap.Logger {
	if d == nil || d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}
