package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [description]",
	Short: "Print suggestions for a task description",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		fmt.Fprintln(cmd.OutOrStdout(), a.tasks.Suggest(cmd.Context(), strings.Join(args, " ")))
		return nil
	},
}
