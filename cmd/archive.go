package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amixedcolor/aws-identity-gift/internal/apperr"
	"github.com/amixedcolor/aws-identity-gift/internal/archive"
	"github.com/amixedcolor/aws-identity-gift/internal/gift"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage saved diagnostic results",
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved results",
	RunE: func(cmd *cobra.Command, args []string) error {
		order, _ := cmd.Flags().GetString("order")

		e, err := openCLIEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		results := e.archive.GetAll(cmd.Context(), archive.ParseOrder(order))
		if len(results) == 0 {
			fmt.Println("まだ診断結果はありません。")
			return nil
		}

		fmt.Printf("%-2s  %-36s  %-16s  %-12s  %s\n", "", "ID", "Timestamp", "Mode", "Service")
		fmt.Println(strings.Repeat("─", 100))
		for _, r := range results {
			fmt.Printf("%-2s  %-36s  %-16s  %-12s  %s\n",
				gift.GiftGlyph(r.ID).Icon,
				r.ID,
				gift.FormatShortTimestamp(r.Timestamp),
				r.Mode,
				r.Service.ServiceName,
			)
		}
		fmt.Println(strings.Repeat("─", 100))
		fmt.Printf("保存された結果 %d / %d\n", len(results), e.archive.MaxCount())
		return nil
	},
}

var archiveShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one saved result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return showResult(cmd, args[0])
	},
}

var archiveDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one saved result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openCLIEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		if _, ok := e.archive.GetByID(ctx, args[0]); !ok {
			fmt.Println(apperr.MsgResultNotFound)
			return nil
		}
		if err := e.archive.DeleteByID(ctx, args[0]); err != nil {
			return archiveFailure(e, apperr.OpArchiveDel, err)
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

var archiveClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all saved results",
	Long:  "Delete every saved diagnostic result. LLM event history is kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		e, err := openCLIEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		n := e.archive.Count(ctx)
		if n == 0 {
			fmt.Println("Nothing to clear.")
			return nil
		}
		if !force {
			fmt.Printf("This will delete %d saved result(s). Continue? [y/N] ", n)
			var answer string
			fmt.Scanln(&answer)
			if answer != "y" && answer != "Y" {
				fmt.Println("Aborted.")
				return nil
			}
		}
		if err := e.archive.ClearAll(ctx); err != nil {
			return archiveFailure(e, apperr.OpArchiveClear, err)
		}
		fmt.Printf("Cleared %d result(s).\n", n)
		return nil
	},
}

// archiveFailure logs a storage error and returns its user message.
func archiveFailure(e *env, op string, err error) error {
	ae := apperr.Normalize(op, err)
	apperr.Log(e.logger, ae)
	return fmt.Errorf("%s", ae.UserMessage())
}

func init() {
	archiveListCmd.Flags().String("order", "desc", "Sort order: asc or desc")
	archiveClearCmd.Flags().BoolP("force", "f", false, "Skip the confirmation prompt")

	archiveCmd.AddCommand(archiveListCmd)
	archiveCmd.AddCommand(archiveShowCmd)
	archiveCmd.AddCommand(archiveDeleteCmd)
	archiveCmd.AddCommand(archiveClearCmd)
}
