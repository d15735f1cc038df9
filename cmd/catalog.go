package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amixedcolor/aws-identity-gift/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the AWS services a diagnosis can recommend",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		services, err := catalog.Load(cfg.CatalogPath)
		if err != nil {
			return err
		}

		if category != "" {
			services = catalog.FilterByCategory(services, category)
			if len(services) == 0 {
				return fmt.Errorf("no services in category %q", category)
			}
		}

		grouped := catalog.GroupByCategory(services)
		for _, c := range catalog.Categories(services) {
			fmt.Printf("%s (%d)\n", c, len(grouped[c]))
			for _, s := range grouped[c] {
				fmt.Printf("  %s\n", s.ServiceName)
			}
		}
		fmt.Printf("\n%d services\n", len(services))
		return nil
	},
}

func init() {
	catalogCmd.Flags().StringP("category", "c", "", "Only list one category")
}
