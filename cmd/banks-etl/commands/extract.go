package commands

import (
	"banks-etl/lib/serviceutil"
	"banks-etl/services/banks"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Scrapes the bank table and prints it without transforming or loading it.",
	Run: func(cmd *cobra.Command, args []string) {
		opts := pipelineOptions()
		opts.Out = cmd.OutOrStdout()

		err := banks.NewPipeline(loadConfig(), opts).Extract(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to extract", err)
		}
	},
}
