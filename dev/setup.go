package main

import (
	"fmt"
	"log/slog"
	"os"

	configlibsql "banks-etl/lib/configutil/libsql"
)

const localConfigPath = "banks-etl.local.json5"

// points every output of the pipeline into dev/.state so dev runs never
// touch data/.
const localConfig = `{
  output_path: "<dev_state>/Largest_banks_data.csv",
  database: {
    file: "<dev_state>/Banks.db",
  },
  log_path: "<dev_state>/code_log.txt",
}
`

func WriteLocalConfig(overwrite bool) error {
	_, err := os.Stat(localConfigPath)
	if err == nil && !overwrite {
		fmt.Println("local config already exists at", localConfigPath)
		return nil
	}
	fmt.Println("writing local config to", localConfigPath)
	return os.WriteFile(localConfigPath, []byte(localConfig), 0644)
}

func CreateEmptyStateDB() error {
	db, err := configlibsql.Struct{File: "<dev_state>/Banks.db"}.OpenDB()
	if err != nil {
		return err
	}
	defer db.Close()
	return db.Ping()
}

func PrintConfigLocations() {
	slog.Info("dev runs read banks-etl.json5 merged with banks-etl.local.json5, write a telemetry.json5 in the repository root to export traces and metrics.")
}
