package ledger

import "github.com/shopspring/decimal"

// Lot is one unconsumed (or partially consumed) batch of acquired
// units. Lots are owned exclusively by their Ledger and consumed in
// acquisition order.
type Lot struct {
	// Volume is the amount still held from this acquisition.
	Volume decimal.Decimal
	// UnitCost is the cost per unit, fees included when the ledger
	// capitalizes fees.
	UnitCost decimal.Decimal
	// TotalCost always equals Volume * UnitCost; the ledger recomputes
	// it on every partial consumption.
	TotalCost decimal.Decimal
}
