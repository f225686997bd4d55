package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rolloverCmd = &cobra.Command{
	Use:   "rollover",
	Short: "Move yesterday's open tasks to today and send the daily summary",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		job, err := a.rolloverJob()
		if err != nil {
			return err
		}
		count, err := job.Run(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Successfully rolled over %d tasks\n", count)
		return nil
	},
}
