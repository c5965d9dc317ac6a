// Package pricer supplies current market prices for valuation.
package pricer

import (
	"context"

	"github.com/shopspring/decimal"
)

// Pricer maps raw pair identifiers (as seen in trade history) to a
// current price. Identifiers absent from the result have no price
// available; valuation treats them as "no data".
type Pricer interface {
	Prices(ctx context.Context, pairNames []string) (map[string]decimal.Decimal, error)
}
