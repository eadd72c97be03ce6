package banks

import (
	"context"
	"fmt"

	"banks-etl/lib/exchangerate"
	"banks-etl/lib/frame"

	"github.com/shopspring/decimal"
)

// Convert multiplies `usd` by `rate` and rounds the product to 2 decimal
// places.
func Convert(usd float64, rate decimal.Decimal) float64 {
	return decimal.NewFromFloat(usd).Mul(rate).Round(2).InexactFloat64()
}

// Transform appends one column per entry of Conversions to `f`. Every
// currency must be present in `rates`.
func Transform(ctx context.Context, f *frame.Frame, rates exchangerate.Rates) (*frame.Frame, error) {
	_, span := tracer.Start(ctx, "Transform")
	defer span.End()

	currencies := make([]string, len(Conversions))
	for i, c := range Conversions {
		currencies[i] = c.Currency
	}
	err := rates.Require(currencies...)
	if err != nil {
		return nil, err
	}
	if f.Index(ColumnMarketCapUSD) < 0 {
		return nil, fmt.Errorf("%w: %q", frame.ErrColumnMissing, ColumnMarketCapUSD)
	}

	for _, c := range Conversions {
		rate, err := rates.Get(c.Currency)
		if err != nil {
			return nil, err
		}
		err = f.AddColumn(c.Column, func(i int) (any, error) {
			usd, err := f.Float(i, ColumnMarketCapUSD)
			if err != nil {
				return nil, err
			}
			return Convert(usd, rate), nil
		})
		if err != nil {
			return nil, err
		}
	}

	return f, nil
}

// TransformFile reads the exchange rate table at `path` and calls Transform.
func TransformFile(ctx context.Context, f *frame.Frame, path string) (*frame.Frame, error) {
	rates, err := exchangerate.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Transform(ctx, f, rates)
}
