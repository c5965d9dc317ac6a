// Package ledger implements FIFO lot accounting for trade history.
//
// Buys append lots to the tail of a per-pair queue; sells consume
// lots from the head, oldest first, recognizing realized PnL as the
// difference between per-unit proceeds and the consumed lot's unit
// cost. All arithmetic is exact decimal.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/P0werNap/Kraken-PNL/pkg/decimals"
)

// Ledger tracks FIFO lot accounting for a single (base, quote) pair.
// It is not safe for concurrent use; trade application is a strict
// sequential fold over an ordered record sequence.
type Ledger struct {
	// BuyVolume is the total volume bought.
	BuyVolume decimal.Decimal
	// BuyCost is the total spent on buys, fees included when
	// capitalized.
	BuyCost decimal.Decimal
	// SellVolume is the total volume sold.
	SellVolume decimal.Decimal
	// SellProceeds is the total received from sells, net of fees when
	// capitalized.
	SellProceeds decimal.Decimal
	// Fees is the total fees paid across buys and sells.
	Fees decimal.Decimal
	// RealizedPnL accumulates FIFO-matched profit and loss in the
	// quote currency.
	RealizedPnL decimal.Decimal
	// LastSeen is the maximum trade timestamp observed, in seconds.
	LastSeen float64
	// PairName remembers one raw pair identifier for price lookup.
	PairName string

	includeFeesInCost bool
	lots              []Lot
}

// NewLedger creates an empty ledger. When includeFeesInCost is true,
// buy fees are capitalized into lot cost and sell fees are netted out
// of proceeds.
func NewLedger(includeFeesInCost bool) *Ledger {
	return &Ledger{includeFeesInCost: includeFeesInCost}
}

// ApplyBuy records a buy of vol units for the given total cost and
// fee, appending a new lot at the tail of the queue. Zero-volume buys
// are accepted and produce a degenerate zero-unit-cost lot.
func (l *Ledger) ApplyBuy(vol, cost, fee decimal.Decimal) {
	buyCost := cost
	if l.includeFeesInCost {
		buyCost = buyCost.Add(fee)
	}

	l.BuyVolume = l.BuyVolume.Add(vol)
	l.BuyCost = l.BuyCost.Add(buyCost)
	l.Fees = l.Fees.Add(fee)

	unitCost := decimals.SafeDiv(buyCost, vol)
	l.lots = append(l.lots, Lot{Volume: vol, UnitCost: unitCost, TotalCost: buyCost})
}

// ApplySell records a sell of vol units for the given total cost and
// fee, consuming lots from the head of the queue until the volume is
// matched or the queue runs dry. Selling more than the recorded lots
// hold saturates silently: matching stops at the available inventory
// and the unmatched remainder is returned as a data-quality signal
// (it usually means buy history is incomplete).
func (l *Ledger) ApplySell(vol, cost, fee decimal.Decimal) (unmatched decimal.Decimal) {
	proceeds := cost
	if l.includeFeesInCost {
		proceeds = proceeds.Sub(fee)
	}

	l.SellVolume = l.SellVolume.Add(vol)
	l.SellProceeds = l.SellProceeds.Add(proceeds)
	l.Fees = l.Fees.Add(fee)

	perUnitProceeds := decimals.SafeDiv(proceeds, vol)

	remaining := vol
	realized := decimal.Zero
	for remaining.IsPositive() && len(l.lots) > 0 {
		head := &l.lots[0]
		use := decimal.Min(head.Volume, remaining)

		realized = realized.Add(use.Mul(perUnitProceeds)).Sub(use.Mul(head.UnitCost))

		head.Volume = head.Volume.Sub(use)
		remaining = remaining.Sub(use)
		if head.Volume.IsPositive() {
			head.TotalCost = head.Volume.Mul(head.UnitCost)
		} else {
			l.lots = l.lots[1:]
		}
	}
	l.RealizedPnL = l.RealizedPnL.Add(realized)

	return remaining
}

// Remaining returns the total volume and total cost still held in
// open lots.
func (l *Ledger) Remaining() (vol, cost decimal.Decimal) {
	vol, cost = decimal.Zero, decimal.Zero
	for _, lot := range l.lots {
		vol = vol.Add(lot.Volume)
		cost = cost.Add(lot.TotalCost)
	}
	return vol, cost
}

// Lots returns a copy of the open lot queue in FIFO order. The copy
// keeps callers from mutating lots behind the ledger's back.
func (l *Ledger) Lots() []Lot {
	out := make([]Lot, len(l.lots))
	copy(out, l.lots)
	return out
}

// ShrinkToTarget reduces the remaining lot inventory down to target
// volume, consuming from the head exactly like a sell but without
// touching sell totals, fees or realized PnL: it models disposals
// that happened outside the observed history (another venue, a cold
// wallet), for which no proceeds information exists. Targets at or
// above the current remaining volume are a no-op; inventory is never
// fabricated. Returns the volume actually removed.
//
// The caller must reject negative targets before calling.
func (l *Ledger) ShrinkToTarget(target decimal.Decimal) (removed decimal.Decimal) {
	current, _ := l.Remaining()
	if target.GreaterThanOrEqual(current) {
		return decimal.Zero
	}

	toReduce := current.Sub(target)
	removed = toReduce
	for toReduce.IsPositive() && len(l.lots) > 0 {
		head := &l.lots[0]
		use := decimal.Min(head.Volume, toReduce)

		head.Volume = head.Volume.Sub(use)
		toReduce = toReduce.Sub(use)
		if head.Volume.IsPositive() {
			head.TotalCost = head.Volume.Mul(head.UnitCost)
		} else {
			l.lots = l.lots[1:]
		}
	}
	return removed.Sub(toReduce)
}
