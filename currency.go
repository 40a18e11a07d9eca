package bankbook

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Rates maps a currency code to its USD-relative rate, expressed as units of
// that currency per US dollar. The table is fixed: this book does not follow
// live foreign-exchange feeds.
var Rates = map[string]decimal.Decimal{
	"USD": decimal.NewFromInt(1),
	"INR": decimal.NewFromInt(85),
	"EUR": decimal.RequireFromString("0.95"),
	"JPY": decimal.NewFromInt(150),
}

// ValidateCurrency reports whether a currency code can be used for an account.
// The code must be a known ISO currency and present in the rate table.
func ValidateCurrency(code string) error {
	if money.GetCurrency(code) == nil {
		return fmt.Errorf("unknown currency code %q: %w", code, ErrUnsupportedCurrency)
	}
	if _, ok := Rates[code]; !ok {
		return fmt.Errorf("no conversion rate for %q: %w", code, ErrUnsupportedCurrency)
	}
	return nil
}

// Convert expresses an amount in another currency using the fixed rate table,
// rounded to two decimal places. Converting to the amount's own currency
// returns it unchanged. Either currency missing from the table fails with
// ErrUnsupportedCurrency, and callers must treat that as a hard stop: no
// partial mutation may survive a failed conversion.
func Convert(amount Money, to string) (Money, error) {
	from := amount.Currency()
	if from == to {
		return amount, nil
	}
	rateFrom, ok := Rates[from]
	if !ok {
		return Money{}, fmt.Errorf("cannot convert from %q: %w", from, ErrUnsupportedCurrency)
	}
	rateTo, ok := Rates[to]
	if !ok {
		return Money{}, fmt.Errorf("cannot convert to %q: %w", to, ErrUnsupportedCurrency)
	}
	value := amount.Amount().Mul(rateTo).Div(rateFrom)
	return M(value, to).Round2(), nil
}
