// Package report derives per-pair accounting figures from a ledger
// book and a snapshot of current prices.
package report

import (
	"github.com/shopspring/decimal"

	"github.com/P0werNap/Kraken-PNL/internal/ledger"
	"github.com/P0werNap/Kraken-PNL/pkg/decimals"
)

// Row is the reporting record for one (base, quote) pair. It is a
// derived, read-only snapshot; all monetary figures are in the quote
// currency.
type Row struct {
	Asset            string
	Quote            string
	TotalBought      decimal.Decimal
	AvgBuyPrice      decimal.Decimal
	TotalSold        decimal.Decimal
	AvgSellPrice     decimal.Decimal
	NetFromHistory   decimal.Decimal
	RemainingVolume  decimal.Decimal
	RemainingAvgCost decimal.Decimal
	FeesTotal        decimal.Decimal
	RealizedPnL      decimal.Decimal
	CurrentPrice     decimal.Decimal
	UnrealizedPnL    decimal.Decimal
}

// Compute builds one row per pair, sorted by (base, quote). Prices
// are keyed by the raw pair identifier seen in trade history; a
// missing price reports current price and unrealized PnL as zero,
// which readers must interpret as "no price data", not a worthless
// asset. Averages over zero volume likewise report zero.
func Compute(book *ledger.Book, prices map[string]decimal.Decimal) []Row {
	pairs := book.Pairs()
	rows := make([]Row, 0, len(pairs))

	for _, pair := range pairs {
		led, ok := book.Ledger(pair)
		if !ok {
			continue
		}

		remVol, remCost := led.Remaining()
		price := prices[led.PairName]

		// Unrealized PnL only makes sense with a price and inventory.
		unrealized := decimal.Zero
		if price.IsPositive() && remVol.IsPositive() {
			for _, lot := range led.Lots() {
				unrealized = unrealized.Add(price.Sub(lot.UnitCost).Mul(lot.Volume))
			}
		}

		rows = append(rows, Row{
			Asset:            pair.Base,
			Quote:            pair.Quote,
			TotalBought:      led.BuyVolume,
			AvgBuyPrice:      decimals.SafeDiv(led.BuyCost, led.BuyVolume),
			TotalSold:        led.SellVolume,
			AvgSellPrice:     decimals.SafeDiv(led.SellProceeds, led.SellVolume),
			NetFromHistory:   led.BuyVolume.Sub(led.SellVolume),
			RemainingVolume:  remVol,
			RemainingAvgCost: decimals.SafeDiv(remCost, remVol),
			FeesTotal:        led.Fees,
			RealizedPnL:      led.RealizedPnL,
			CurrentPrice:     price,
			UnrealizedPnL:    unrealized,
		})
	}
	return rows
}
