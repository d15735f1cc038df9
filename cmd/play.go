package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/amixedcolor/aws-identity-gift/internal/app"
	"github.com/amixedcolor/aws-identity-gift/internal/logging"
	"github.com/amixedcolor/aws-identity-gift/internal/quiz"
	"github.com/amixedcolor/aws-identity-gift/internal/screen"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the diagnostic (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func init() {
	playCmd.Flags().String("result", "", "Open a saved result by id")
	playCmd.Flags().String("cards", "", "Directory for saved gift card images (default: current directory)")
}

// runPlay opens the store, builds dependencies, and launches the TUI.
func runPlay(cmd *cobra.Command) error {
	ctx := cmd.Context()
	verbose, _ := cmd.Flags().GetBool("verbose")

	// The TUI owns the terminal, so logs go next to the database.
	e, err := openEnv(cmd, func(dbPath string) *zap.Logger {
		logger, err := logging.ForTUI(filepath.Dir(dbPath), verbose)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Logging disabled:", err)
			return zap.NewNop()
		}
		return logger
	})
	if err != nil {
		return err
	}
	defer e.Close()

	bank, err := quiz.LoadBank()
	if err != nil {
		return fmt.Errorf("load questions: %w", err)
	}
	runner, err := e.runner(ctx)
	if err != nil {
		return err
	}

	cardDir, _ := cmd.Flags().GetString("cards")
	if cardDir == "" {
		if cardDir, err = os.Getwd(); err != nil {
			return fmt.Errorf("resolve card dir: %w", err)
		}
	}

	// Absent when invoked as the root command.
	resultID, _ := cmd.Flags().GetString("result")

	e.logger.Info("session started", zap.String("db", e.dbPath), zap.String("archive", e.cfg.Archive.Backend))
	return app.Run(&screen.Deps{
		Bank:      bank,
		Runner:    runner,
		Archive:   e.archive,
		Logger:    e.logger,
		WatchPath: e.watchPath,
		CardDir:   cardDir,
	}, app.Options{ResultID: resultID})
}
