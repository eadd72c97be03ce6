package commands

import (
	"banks-etl/lib/serviceutil"
	"banks-etl/services/banks"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query [statement]",
	Short: "Runs the report queries, or a single statement, against the loaded table.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		db, err := cfg.Database.OpenDB()
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer db.Close()

		if len(args) == 1 {
			err = banks.RunQuery(cmd.Context(), db, args[0], cmd.OutOrStdout())
		} else {
			err = banks.RunQueries(cmd.Context(), db, cfg.TableName, cmd.OutOrStdout())
		}
		if err != nil {
			db.Close()
			serviceutil.Fatal("failed to run query", err)
		}
	},
}
