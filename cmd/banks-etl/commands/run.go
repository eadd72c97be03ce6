package commands

import (
	"log/slog"

	"banks-etl/lib/configutil"
	"banks-etl/lib/restyutil"
	"banks-etl/lib/serviceutil"
	"banks-etl/services/banks"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [--config <path/to/config.json5>]",
	Short: "Runs extract, transform, load and the report queries once.",
	Run:   runPipeline,
}

func loadConfig() banks.Config {
	cfg, err := configutil.LoadWithDefaults(configPath, banks.DefaultConfig())
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	return cfg
}

func pipelineOptions() banks.Options {
	opts := banks.Options{}
	if debug {
		output, err := restyutil.NewFilesystemOutput("<dev_state>/resty/extract")
		if err != nil {
			serviceutil.Fatal("failed to create http dump directory", err)
		}
		opts.HttpOutput = output
	}
	return opts
}

func runPipeline(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	console := slog.Default().Handler().WithAttrs([]slog.Attr{
		slog.String("run_id", uuid.NewString()),
	})
	progress, logFile, err := banks.OpenProgressLogger(cfg.LogPath, console)
	if err != nil {
		serviceutil.Fatal("failed to open progress log", err)
	}
	defer logFile.Close()

	opts := pipelineOptions()
	opts.Progress = progress
	opts.Out = cmd.OutOrStdout()

	err = banks.NewPipeline(cfg, opts).Run(cmd.Context())
	if err != nil {
		logFile.Close()
		serviceutil.Fatal("etl run failed", err)
	}
}
