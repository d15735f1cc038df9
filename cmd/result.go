package cmd

import (
	"github.com/spf13/cobra"
)

var resultCmd = &cobra.Command{
	Use:   "result <id>",
	Short: "Print a saved result as a card",
	Long: `Print a saved diagnostic result.

An id that is not saved prints the not-found page and exits successfully,
matching what a shared link to a deleted result shows.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return showResult(cmd, args[0])
	},
}

func showResult(cmd *cobra.Command, id string) error {
	e, err := openCLIEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	r, ok := e.archive.GetByID(cmd.Context(), id)
	if !ok {
		printMarkdown(notFoundMarkdown(id))
		return nil
	}
	printMarkdown(resultMarkdown(*r))
	return nil
}
