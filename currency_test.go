package bankbook

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestValidateCurrency(t *testing.T) {
	for _, code := range []string{"USD", "INR", "EUR", "JPY"} {
		if err := ValidateCurrency(code); err != nil {
			t.Errorf("ValidateCurrency(%q) = %v, want nil", code, err)
		}
	}
	// GBP is a real currency but has no rate in the table, XXX is not a
	// currency at all. Both must be refused the same way.
	for _, code := range []string{"GBP", "XXX", ""} {
		err := ValidateCurrency(code)
		if !errors.Is(err, ErrUnsupportedCurrency) {
			t.Errorf("ValidateCurrency(%q) = %v, want ErrUnsupportedCurrency", code, err)
		}
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		amount string
		from   string
		to     string
		want   string
	}{
		{"100", "USD", "INR", "8500"},
		{"100", "INR", "USD", "1.18"},
		{"10", "EUR", "JPY", "1578.95"},
		{"0", "USD", "JPY", "0"},
		{"123.456", "USD", "USD", "123.456"}, // same currency passes through unrounded
	}
	for _, tt := range tests {
		got, err := Convert(M(dec(tt.amount), tt.from), tt.to)
		if err != nil {
			t.Errorf("Convert(%s %s -> %s): %v", tt.amount, tt.from, tt.to, err)
			continue
		}
		if !got.Amount().Equal(dec(tt.want)) || got.Currency() != tt.to {
			t.Errorf("Convert(%s %s -> %s) = %s, want %s %s", tt.amount, tt.from, tt.to, got.Amount(), tt.want, tt.to)
		}
	}
}

func TestConvertUnsupported(t *testing.T) {
	if _, err := Convert(M(100, "USD"), "GBP"); !errors.Is(err, ErrUnsupportedCurrency) {
		t.Errorf("Convert to GBP = %v, want ErrUnsupportedCurrency", err)
	}
	if _, err := Convert(M(100, "GBP"), "USD"); !errors.Is(err, ErrUnsupportedCurrency) {
		t.Errorf("Convert from GBP = %v, want ErrUnsupportedCurrency", err)
	}
}
