package banks

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"banks-etl/lib/exchangerate"
	"banks-etl/lib/frame"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testRates = exchangerate.Rates{
	"EUR": decimal.RequireFromString("0.93"),
	"GBP": decimal.RequireFromString("0.8"),
	"INR": decimal.RequireFromString("82.95"),
}

const testRatesCsv = "Currency,Rate\nEUR,0.93\nGBP,0.8\nINR,82.95\n"

type convertedBank struct {
	Name string
	USD  float64
	GBP  float64
	EUR  float64
	INR  float64
}

var expectedConverted = []convertedBank{
	{"JPMorgan Chase", 432.92, 346.34, 402.62, 35910.71},
	{"Bank of America", 231.52, 185.22, 215.31, 19204.58},
	{"Industrial and Commercial Bank of China", 194.56, 155.65, 180.94, 16138.75},
	{"Agricultural Bank of China", 160.68, 128.54, 149.43, 13328.41},
	{"HDFC Bank", 157.91, 126.33, 146.86, 13098.63},
	{"Wells Fargo", 155.87, 124.70, 144.96, 12929.42},
	{"HSBC Holdings PLC", 148.90, 119.12, 138.48, 12351.26},
	{"Morgan Stanley", 140.83, 112.66, 130.97, 11681.85},
	{"China Construction Bank", 139.82, 111.86, 130.03, 11598.07},
	{"Bank of China", 136.81, 109.45, 127.23, 11348.39},
}

func newBanksFrame(t testing.TB, banks []bank) *frame.Frame {
	f, err := frame.New(ColumnName, ColumnMarketCapUSD)
	require.NoError(t, err)
	for _, b := range banks {
		require.NoError(t, f.Append(b.Name, b.MarketCap))
	}
	return f
}

func convertedRows(t testing.TB, f *frame.Frame) []convertedBank {
	var out []convertedBank
	for i := 0; i < f.Len(); i++ {
		row := f.Row(i)
		require.Len(t, row, 5)
		out = append(out, convertedBank{
			Name: row[0].(string),
			USD:  row[1].(float64),
			GBP:  row[2].(float64),
			EUR:  row[3].(float64),
			INR:  row[4].(float64),
		})
	}
	return out
}

func TestConvert(t *testing.T) {
	testCases := []struct {
		usd      float64
		rate     string
		expected float64
	}{
		{usd: 100, rate: "0.8", expected: 80},
		{usd: 100, rate: "0.93", expected: 93},
		{usd: 100, rate: "82.95", expected: 8295},
		{usd: 432.92, rate: "0.93", expected: 402.62},
		{usd: 194.56, rate: "0.8", expected: 155.65},
		{usd: 0, rate: "82.95", expected: 0},
	}
	for _, test := range testCases {
		result := Convert(test.usd, decimal.RequireFromString(test.rate))
		require.Equal(t, test.expected, result, "%v * %s", test.usd, test.rate)
	}
}

func TestTransform(t *testing.T) {
	f := newBanksFrame(t, expectedBanks)
	result, err := Transform(context.Background(), f, testRates)
	require.NoError(t, err)

	require.Equal(t, []string{
		ColumnName,
		ColumnMarketCapUSD,
		ColumnMarketCapGBP,
		ColumnMarketCapEUR,
		ColumnMarketCapINR,
	}, result.Columns())
	diff := cmp.Diff(expectedConverted, convertedRows(t, result))
	require.Empty(t, diff)
}

func TestTransformEmpty(t *testing.T) {
	f := newBanksFrame(t, nil)
	result, err := Transform(context.Background(), f, testRates)
	require.NoError(t, err)
	require.Equal(t, 0, result.Len())
	require.Len(t, result.Columns(), 5)
}

func TestTransformMissingCurrency(t *testing.T) {
	f := newBanksFrame(t, expectedBanks)
	rates := exchangerate.Rates{
		"EUR": decimal.RequireFromString("0.93"),
		"GBP": decimal.RequireFromString("0.8"),
	}

	_, err := Transform(context.Background(), f, rates)
	require.ErrorIs(t, err, exchangerate.ErrMissingCurrency)
	require.ErrorContains(t, err, "INR")
	require.Equal(t, []string{ColumnName, ColumnMarketCapUSD}, f.Columns())
}

func TestTransformMissingUsdColumn(t *testing.T) {
	f, err := frame.New(ColumnName)
	require.NoError(t, err)
	_, err = Transform(context.Background(), f, testRates)
	require.ErrorIs(t, err, frame.ErrColumnMissing)
}

func TestTransformFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exchange_rate.csv")
	require.NoError(t, os.WriteFile(path, []byte(testRatesCsv), 0644))

	result, err := TransformFile(context.Background(), newBanksFrame(t, expectedBanks[:2]), path)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(expectedConverted[:2], convertedRows(t, result)))

	_, err = TransformFile(context.Background(), newBanksFrame(t, expectedBanks), filepath.Join(t.TempDir(), "missing.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
