package calculator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// BaseCurrency is the currency prices are quoted in.
const BaseCurrency = "INR"

// ErrUnknownCurrency is returned for a currency code without a configured rate.
var ErrUnknownCurrency = errors.New("unknown currency")

// Rates converts one INR into other currencies.
type Rates struct {
	byCode map[string]decimal.Decimal
	codes  []string
}

// NewRates builds a rate table from configuration values.
// Codes are upper-cased. INR is always present at 1 and any other rate for it
// is rejected.
func NewRates(rates map[string]float64) (*Rates, error) {
	r := &Rates{byCode: map[string]decimal.Decimal{BaseCurrency: decimal.NewFromInt(1)}}
	for code, rate := range rates {
		code = strings.ToUpper(strings.TrimSpace(code))
		if rate <= 0 {
			return nil, fmt.Errorf("rate for %s must be positive, got %g", code, rate)
		}
		if code == BaseCurrency && rate != 1 {
			return nil, fmt.Errorf("rate for %s is fixed at 1, got %g", code, rate)
		}
		r.byCode[code] = decimal.NewFromFloat(rate)
	}

	for code := range r.byCode {
		if code != BaseCurrency {
			r.codes = append(r.codes, code)
		}
	}
	sort.Strings(r.codes)
	r.codes = append([]string{BaseCurrency}, r.codes...)
	return r, nil
}

// Rate returns the multiplier from INR into code.
func (r *Rates) Rate(code string) (decimal.Decimal, error) {
	rate, ok := r.byCode[strings.ToUpper(code)]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	return rate, nil
}

// Codes lists the supported currencies, INR first, the rest alphabetically.
func (r *Rates) Codes() []string {
	out := make([]string, len(r.codes))
	copy(out, r.codes)
	return out
}

// Convert multiplies an INR amount by the rate for code.
func (r *Rates) Convert(inr decimal.Decimal, code string) (decimal.Decimal, error) {
	rate, err := r.Rate(code)
	if err != nil {
		return decimal.Zero, err
	}
	return inr.Mul(rate), nil
}
