// Package exchangerate reads the static (Currency, Rate) lookup table used to
// convert USD amounts.
package exchangerate

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	CurrencyColumn = "Currency"
	RateColumn     = "Rate"
)

var (
	ErrMalformed       = errors.New("malformed exchange rate table")
	ErrMissingCurrency = errors.New("missing exchange rate")
)

// Rates maps an upper case currency code to the number of units of that
// currency one USD buys.
type Rates map[string]decimal.Decimal

// Get returns the rate for `code`, it never substitutes a default.
func (r Rates) Get(code string) (decimal.Decimal, error) {
	rate, ok := r[strings.ToUpper(code)]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrMissingCurrency, code)
	}
	return rate, nil
}

// Require fails with ErrMissingCurrency naming every absent code.
func (r Rates) Require(codes ...string) error {
	var missing []string
	for _, code := range codes {
		if _, ok := r[strings.ToUpper(code)]; !ok {
			missing = append(missing, code)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCurrency, strings.Join(missing, ", "))
	}
	return nil
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}

// Read parses a CSV table whose header names a Currency and a Rate column,
// other columns are ignored.
func Read(r io.Reader) (Rates, error) {
	in := csv.NewReader(r)
	in.TrimLeadingSpace = true

	header, err := in.Read()
	if errors.Is(err, io.EOF) {
		return nil, malformed("empty file")
	}
	if err != nil {
		return nil, malformed("%s", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	currencyIdx := slices.Index(header, CurrencyColumn)
	rateIdx := slices.Index(header, RateColumn)
	if currencyIdx < 0 || rateIdx < 0 {
		return nil, malformed("header must contain %q and %q, got %v", CurrencyColumn, RateColumn, header)
	}

	rates := Rates{}
	for line := 2; ; line++ {
		record, err := in.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, malformed("%s", err)
		}

		code := strings.ToUpper(strings.TrimSpace(record[currencyIdx]))
		if code == "" {
			return nil, malformed("line %d: empty currency code", line)
		}
		if _, exists := rates[code]; exists {
			return nil, malformed("line %d: duplicate currency %s", line, code)
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(record[rateIdx]))
		if err != nil {
			return nil, malformed("line %d: rate for %s: %s", line, code, err)
		}
		rates[code] = rate
	}

	return rates, nil
}

func ReadFile(path string) (Rates, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rates, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rates, nil
}
