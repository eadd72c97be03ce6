package banks

import (
	"bytes"
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
)

func loadedTestDB(t testing.TB) *sql.DB {
	db := openTestDB(t)
	require.NoError(t, LoadDB(context.Background(), db, transformedFrame(t, expectedBanks), "Largest_banks"))
	return db
}

func TestStatements(t *testing.T) {
	require.Equal(t, []string{
		"SELECT * FROM Largest_banks",
		"SELECT AVG(MC_GBP_Billion) FROM Largest_banks",
		"SELECT Name FROM Largest_banks LIMIT 5",
	}, Statements("Largest_banks"))
}

func TestQuery(t *testing.T) {
	db := loadedTestDB(t)
	ctx := context.Background()
	statements := Statements("Largest_banks")

	all, err := Query(ctx, db, statements[0])
	require.NoError(t, err)
	require.Equal(t, []string{
		ColumnName,
		ColumnMarketCapUSD,
		ColumnMarketCapGBP,
		ColumnMarketCapEUR,
		ColumnMarketCapINR,
	}, all.Columns)
	require.Len(t, all.Rows, len(expectedBanks))
	require.Equal(t, []any{"JPMorgan Chase", 432.92, 346.34, 402.62, 35910.71}, all.Rows[0])

	avg, err := Query(ctx, db, statements[1])
	require.NoError(t, err)
	require.Len(t, avg.Rows, 1)
	require.InDelta(t, 151.987, avg.Rows[0][0].(float64), 1e-9)

	names, err := Query(ctx, db, statements[2])
	require.NoError(t, err)
	require.Equal(t, [][]any{
		{"JPMorgan Chase"},
		{"Bank of America"},
		{"Industrial and Commercial Bank of China"},
		{"Agricultural Bank of China"},
		{"HDFC Bank"},
	}, names.Rows)
}

func TestQueryMissingTable(t *testing.T) {
	db := openTestDB(t)
	_, err := Query(context.Background(), db, "SELECT * FROM nowhere")
	require.Error(t, err)
}

func TestRunQueries(t *testing.T) {
	db := loadedTestDB(t)
	var out bytes.Buffer

	err := RunQueries(context.Background(), db, "Largest_banks", &out)
	require.NoError(t, err)

	text := out.String()
	for _, statement := range Statements("Largest_banks") {
		require.Contains(t, text, statement)
	}
	require.Contains(t, text, "Bank of China")
	require.Contains(t, text, "35910.71")
	require.Contains(t, text, "151.987")
}

func TestStatementsQuoteTableName(t *testing.T) {
	testCases := []struct {
		table    string
		expected string
	}{
		{table: "banks_2023", expected: "SELECT * FROM banks_2023"},
		{table: "Largest banks", expected: `SELECT * FROM "Largest banks"`},
		{table: "select", expected: `SELECT * FROM "select"`},
		{table: `odd"name`, expected: `SELECT * FROM "odd""name"`},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, Statements(test.table)[0], test.table)
	}
}

func TestRunQueriesUnusualTableNames(t *testing.T) {
	for _, table := range []string{"Largest banks", "order"} {
		db := openTestDB(t)
		require.NoError(t, LoadDB(context.Background(), db, transformedFrame(t, expectedBanks), table))

		var out bytes.Buffer
		require.NoError(t, RunQueries(context.Background(), db, table, &out), table)
		require.Contains(t, out.String(), "JPMorgan Chase")
	}
}
