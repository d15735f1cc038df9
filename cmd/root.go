package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/amixedcolor/aws-identity-gift/internal/config"
	"github.com/amixedcolor/aws-identity-gift/internal/logging"
	"github.com/amixedcolor/aws-identity-gift/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "identitygift",
	Short: "AWS service gift diagnostic",
	Long:  "AWS Identity Gift: answer a few questions and receive the AWS service that matches you, with a letter and a gift card.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides IDGIFT_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config.toml (overrides IDGIFT_CONFIG env var)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(quickCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(resultCmd)
	rootCmd.AddCommand(giftcardCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the config file, environment and flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then IDGIFT_DB env var or the config file, then the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// cliLogger writes to stderr.
func cliLogger(cmd *cobra.Command) *zap.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger, err := logging.New(logging.Options{Verbose: verbose})
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
