package exchangerate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const sample = `Currency,Rate
EUR,0.93
GBP,0.8
INR,82.95
`

func TestRead(t *testing.T) {
	rates, err := Read(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, rates, 3)

	gbp, err := rates.Get("GBP")
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("0.8").Equal(gbp))

	inr, err := rates.Get("inr")
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("82.95").Equal(inr))
}

func TestReadColumnOrder(t *testing.T) {
	rates, err := Read(strings.NewReader("Rate, Currency, Note\n0.93, EUR, euro\n"))
	require.NoError(t, err)
	require.NoError(t, rates.Require("EUR"))
}

func TestRequire(t *testing.T) {
	rates, err := Read(strings.NewReader("Currency,Rate\nEUR,0.93\n"))
	require.NoError(t, err)

	err = rates.Require("GBP", "EUR", "INR")
	require.ErrorIs(t, err, ErrMissingCurrency)
	require.Contains(t, err.Error(), "GBP, INR")

	_, err = rates.Get("GBP")
	require.ErrorIs(t, err, ErrMissingCurrency)
}

func TestReadMalformed(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "missing rate column", input: "Currency,Value\nEUR,0.93\n"},
		{name: "bad rate", input: "Currency,Rate\nEUR,abc\n"},
		{name: "empty code", input: "Currency,Rate\n,0.93\n"},
		{name: "duplicate", input: "Currency,Rate\nEUR,0.93\neur,0.94\n"},
		{name: "ragged", input: "Currency,Rate\nEUR\n"},
	}
	for _, test := range testCases {
		_, err := Read(strings.NewReader(test.input))
		require.ErrorIs(t, err, ErrMalformed, test.name)
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exchange_rate.csv")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	rates, err := ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, rates.Require("GBP", "EUR", "INR"))

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
