// Package decimals provides exact-decimal helpers shared by the
// accounting code. All money, volume and price math in this project
// goes through shopspring/decimal; float64 is never used for
// accounting fields.
package decimals

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Parse converts numeric text to an exact decimal. The empty string
// parses as zero because Kraken omits optional numeric fields.
func Parse(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, errors.Wrapf(err, "parse decimal %q", s)
	}
	return d, nil
}

// SafeDiv divides n by d, returning zero when d is zero. A zero
// denominator means "no volume yet"; callers must read the zero
// result as "no data", not as a literal zero value.
func SafeDiv(n, d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return decimal.Zero
	}
	return n.Div(d)
}
