// Package logging builds the zap loggers used by the CLI, the TUI and the
// HTTP server.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FileName is the log written next to the database while the TUI owns the
// terminal.
const FileName = "identitygift.log"

// Options selects the level and the sink.
type Options struct {
	Verbose bool
	// File, when set, receives JSON lines instead of stderr.
	File string
}

// New builds a production logger.
func New(opts Options) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if opts.Verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	config.EncoderConfig.TimeKey = "ts"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableStacktrace = !opts.Verbose

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		config.OutputPaths = []string{opts.File}
		config.ErrorOutputPaths = []string{opts.File}
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.With(zap.String("app", "identitygift")), nil
}

// ForTUI logs to FileName inside dataDir.
func ForTUI(dataDir string, verbose bool) (*zap.Logger, error) {
	return New(Options{Verbose: verbose, File: filepath.Join(dataDir, FileName)})
}
