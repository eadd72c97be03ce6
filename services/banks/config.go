package banks

import (
	"errors"
	"fmt"
	"slices"
	"time"

	configlibsql "banks-etl/lib/configutil/libsql"
)

const DefaultUrl = "https://web.archive.org/web/20230908091635/https://en.wikipedia.org/wiki/List_of_largest_banks"

type Config struct {
	Url              string              `json:"url"`
	TableAttributes  []string            `json:"table_attributes"`
	ExchangeRatePath string              `json:"exchange_rate_path"`
	OutputPath       string              `json:"output_path"`
	Database         configlibsql.Struct `json:"database"`
	TableName        string              `json:"table_name"`
	LogPath          string              `json:"log_path"`
	CloudflareBypass bool                `json:"cloudflare_bypass"`
	TimeoutSeconds   int                 `json:"timeout_seconds"`
	UserAgent        string              `json:"user_agent"`
}

func DefaultConfig() Config {
	return Config{
		Url:              DefaultUrl,
		TableAttributes:  []string{ColumnName, ColumnMarketCapUSD},
		ExchangeRatePath: "data/exchange_rate.csv",
		OutputPath:       "data/Largest_banks_data.csv",
		Database:         configlibsql.Struct{File: "data/Banks.db"},
		TableName:        "Largest_banks",
		LogPath:          "data/code_log.txt",
		TimeoutSeconds:   30,
		UserAgent:        DefaultUserAgent,
	}
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

var ErrConfig = errors.New("invalid config")

// Validate checks the settings later stages rely on. The transform and the
// report queries address the extracted columns by name, so they must be
// exactly the name and USD market cap columns.
func (c Config) Validate() error {
	expected := []string{ColumnName, ColumnMarketCapUSD}
	if !slices.Equal(c.TableAttributes, expected) {
		return fmt.Errorf("%w: table_attributes must be %q, got %q", ErrConfig, expected, c.TableAttributes)
	}
	if c.TableName == "" {
		return fmt.Errorf("%w: table_name is empty", ErrConfig)
	}
	return nil
}
