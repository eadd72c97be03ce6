package commands

import (
	"context"
	"fmt"
	"os"

	"banks-etl/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	configPath string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "banks-etl",
	Short: "banks-etl scrapes the largest banks by market cap into a CSV file and a SQL table.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(debug)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		telemetry.RecordPerfStats(cmd.Context())
	},
	Run: runPipeline,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "banks-etl.json5", "The config file, defaults are used for anything it leaves out.")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enables debug logging and dumps http messages to <dev_state>/resty.")
}

// ExecuteContext runs the command line and returns the process exit code.
func ExecuteContext(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
