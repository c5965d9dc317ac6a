package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/P0werNap/Kraken-PNL/internal/domain"
	"github.com/P0werNap/Kraken-PNL/internal/ledger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func buildBook(t *testing.T, raws []domain.RawTrade) *ledger.Book {
	t.Helper()
	b := ledger.NewBook(ledger.BookConfig{IncludeFeesInCost: true}, zap.NewNop())
	b.ApplyAll(raws)
	return b
}

func TestComputeAveragesAndPnL(t *testing.T) {
	book := buildBook(t, []domain.RawTrade{
		{Pair: "XXBTZUSD", Type: "buy", Volume: "1.0", Price: "9000", Cost: "9000", Fee: "9", Time: 1},
		{Pair: "XXBTZUSD", Type: "sell", Volume: "0.4", Price: "10000", Cost: "4000", Fee: "4", Time: 2},
	})

	rows := Compute(book, map[string]decimal.Decimal{
		"XXBTZUSD": dec("12000"),
	})

	require.Len(t, rows, 1)
	r := rows[0]
	assert.Equal(t, "BTC", r.Asset)
	assert.Equal(t, "USD", r.Quote)
	assert.True(t, r.TotalBought.Equal(dec("1.0")))
	assert.True(t, r.AvgBuyPrice.Equal(dec("9009")))
	assert.True(t, r.TotalSold.Equal(dec("0.4")))
	assert.True(t, r.AvgSellPrice.Equal(dec("9990")))
	assert.True(t, r.NetFromHistory.Equal(dec("0.6")))
	assert.True(t, r.RemainingVolume.Equal(dec("0.6")))
	assert.True(t, r.RemainingAvgCost.Equal(dec("9009")))
	assert.True(t, r.FeesTotal.Equal(dec("13")))
	assert.True(t, r.RealizedPnL.Equal(dec("392.4")))
	assert.True(t, r.CurrentPrice.Equal(dec("12000")))
	// (12000 - 9009) * 0.6
	assert.True(t, r.UnrealizedPnL.Equal(dec("1794.6")), "unrealized = %s", r.UnrealizedPnL)
}

func TestComputeMissingPrice(t *testing.T) {
	book := buildBook(t, []domain.RawTrade{
		{Pair: "XETHZUSD", Type: "buy", Volume: "2", Price: "1800", Cost: "3600", Fee: "0", Time: 1},
	})

	rows := Compute(book, nil)

	require.Len(t, rows, 1)
	assert.True(t, rows[0].CurrentPrice.IsZero(), "absent price reports as zero")
	assert.True(t, rows[0].UnrealizedPnL.IsZero(), "no price means no unrealized PnL")
	assert.True(t, rows[0].RemainingAvgCost.Equal(dec("1800")))
}

func TestComputeZeroVolumePair(t *testing.T) {
	// Only a fully-consumed position: averages over zero remaining
	// volume must come back zero, not error.
	book := buildBook(t, []domain.RawTrade{
		{Pair: "ETHUSD", Type: "buy", Volume: "1", Price: "1800", Cost: "1800", Time: 1},
		{Pair: "ETHUSD", Type: "sell", Volume: "1", Price: "2000", Cost: "2000", Time: 2},
	})

	rows := Compute(book, map[string]decimal.Decimal{"ETHUSD": dec("2100")})

	require.Len(t, rows, 1)
	assert.True(t, rows[0].RemainingVolume.IsZero())
	assert.True(t, rows[0].RemainingAvgCost.IsZero())
	assert.True(t, rows[0].UnrealizedPnL.IsZero(), "no inventory means no unrealized PnL")
	assert.True(t, rows[0].RealizedPnL.Equal(dec("200")))
}

func TestComputeSortedByPair(t *testing.T) {
	book := buildBook(t, []domain.RawTrade{
		{Pair: "SOLUSDT", Type: "buy", Volume: "10", Price: "20", Cost: "200", Time: 1},
		{Pair: "XXBTZUSD", Type: "buy", Volume: "1", Price: "9000", Cost: "9000", Time: 2},
		{Pair: "XETHZUSD", Type: "buy", Volume: "5", Price: "1800", Cost: "9000", Time: 3},
	})

	rows := Compute(book, nil)

	require.Len(t, rows, 3)
	assert.Equal(t, "BTC", rows[0].Asset)
	assert.Equal(t, "ETH", rows[1].Asset)
	assert.Equal(t, "SOL", rows[2].Asset)
}
