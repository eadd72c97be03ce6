// Package banks scrapes the list of the largest banks by market
// capitalization, converts the market caps into other currencies and stores
// the result as a CSV file and a SQL table.
package banks

import (
	"banks-etl/lib/telemetry"
)

var tracer = telemetry.Tracer("banks-etl/services/banks")

const (
	ColumnName         = "Name"
	ColumnMarketCapUSD = "MC_USD_Billion"
	ColumnMarketCapGBP = "MC_GBP_Billion"
	ColumnMarketCapEUR = "MC_EUR_Billion"
	ColumnMarketCapINR = "MC_INR_Billion"
)

// Conversion describes one derived market cap column.
type Conversion struct {
	Currency string
	Column   string
}

var Conversions = []Conversion{
	{Currency: "GBP", Column: ColumnMarketCapGBP},
	{Currency: "EUR", Column: ColumnMarketCapEUR},
	{Currency: "INR", Column: ColumnMarketCapINR},
}
