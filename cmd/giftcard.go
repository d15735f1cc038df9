package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/amixedcolor/aws-identity-gift/internal/apperr"
	"github.com/amixedcolor/aws-identity-gift/internal/giftcard"
)

const giftcardTimeout = 2 * time.Minute

var giftcardCmd = &cobra.Command{
	Use:   "giftcard <id>",
	Short: "Generate a gift card image for a saved result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, _ := cmd.Flags().GetString("out")

		e, err := openCLIEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		r, ok := e.archive.GetByID(cmd.Context(), args[0])
		if !ok {
			fmt.Println(apperr.MsgResultNotFound)
			return nil
		}

		gen, err := e.cardGenerator(cmd.Context())
		if err != nil {
			return fmt.Errorf("image provider: %w", err)
		}
		if gen == nil {
			return fmt.Errorf("no image provider configured: set [image] provider in config.toml or IDGIFT_IMAGE_PROVIDER")
		}

		fmt.Printf("Generating gift card for %s...\n", r.Service.ServiceName)
		ctx, cancel := context.WithTimeout(cmd.Context(), giftcardTimeout)
		defer cancel()
		img, err := gen.Generate(ctx, r)
		if err != nil {
			return fmt.Errorf("%s", apperr.UserMessage(err))
		}

		if outPath == "" {
			outPath = giftcard.FileName(*r)
		}
		if err := giftcard.WritePNG(outPath, img); err != nil {
			return err
		}
		fmt.Println("🎁", outPath)
		return nil
	},
}

func init() {
	giftcardCmd.Flags().StringP("out", "o", "", "Output PNG path (default: aws-identity-gift-<id>.png)")
}
