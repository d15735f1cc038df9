package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amixedcolor/aws-identity-gift/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config.toml",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath(cmd)
		if err != nil {
			return err
		}
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Println("Wrote", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved configuration (API keys hidden)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		dbPath, err := resolveDBPath(cfg)
		if err != nil {
			return err
		}

		source := cfg.Source
		if source == "" {
			source = "(none)"
		}
		credentials := "missing"
		if cfg.LLM.HasCredentials() {
			credentials = "ok"
		}
		image := cfg.LLM.Image.Provider
		if image == "" {
			image = "(disabled)"
		}

		fmt.Printf("Config file:  %s\n", source)
		fmt.Printf("Provider:     %s (credentials %s)\n", cfg.LLM.Provider, credentials)
		fmt.Printf("Images:       %s\n", image)
		fmt.Printf("Timeout:      %s\n", cfg.LLM.Timeout)
		fmt.Printf("Archive:      %s\n", cfg.Archive.Backend)
		fmt.Printf("Database:     %s\n", dbPath)
		fmt.Printf("Serve addr:   %s\n", cfg.ServeAddr)
		if cfg.CatalogPath != "" {
			fmt.Printf("Catalog:      %s\n", cfg.CatalogPath)
		}
		return nil
	},
}

func configPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p, nil
	}
	return config.DefaultPath()
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
