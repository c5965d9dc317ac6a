package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/P0werNap/Kraken-PNL/internal/domain"
)

func newTestBook(cfg BookConfig) *Book {
	return NewBook(cfg, zap.NewNop())
}

func TestBookAppliesTradesInOrder(t *testing.T) {
	b := newTestBook(BookConfig{IncludeFeesInCost: true})

	b.ApplyAll([]domain.RawTrade{
		{Pair: "XXBTZUSD", Type: "buy", Volume: "1.0", Price: "9000", Cost: "9000", Fee: "9", Time: 100},
		{Pair: "XXBTZUSD", Type: "sell", Volume: "0.4", Price: "10000", Cost: "4000", Fee: "4", Time: 200},
	})

	led, ok := b.Ledger(domain.Pair{Base: "BTC", Quote: "USD"})
	require.True(t, ok)
	assert.True(t, led.RealizedPnL.Equal(dec("392.4")))
	assert.Equal(t, "XXBTZUSD", led.PairName)
	assert.Equal(t, float64(200), led.LastSeen)
	assert.Equal(t, 0, b.Skipped())
}

func TestBookSkipsMalformedRecords(t *testing.T) {
	b := newTestBook(BookConfig{IncludeFeesInCost: true})

	b.ApplyAll([]domain.RawTrade{
		{Pair: "ETHUSD", Type: "buy", Volume: "not-a-number", Price: "1800"},
		{Pair: "ETHUSD", Type: "hold", Volume: "1", Price: "1800"},
		{Pair: "ETHUSD", Type: "buy", Volume: "2", Price: "1800", Cost: "3600", Fee: "3"},
	})

	require.Equal(t, 2, b.Skipped())

	led, ok := b.Ledger(domain.Pair{Base: "ETH", Quote: "USD"})
	require.True(t, ok, "valid record after malformed ones must still apply")
	assert.True(t, led.BuyVolume.Equal(dec("2")))
}

func TestBookQuoteFilter(t *testing.T) {
	b := newTestBook(BookConfig{IncludeFeesInCost: true, Quotes: []string{"usd"}})

	b.ApplyAll([]domain.RawTrade{
		{Pair: "XXBTZUSD", Type: "buy", Volume: "1", Price: "9000", Cost: "9000"},
		{Pair: "XXBTZEUR", Type: "buy", Volume: "1", Price: "8000", Cost: "8000"},
	})

	_, ok := b.Ledger(domain.Pair{Base: "BTC", Quote: "USD"})
	assert.True(t, ok)
	_, ok = b.Ledger(domain.Pair{Base: "BTC", Quote: "EUR"})
	assert.False(t, ok, "EUR quote must be filtered out")
	assert.Equal(t, 0, b.Skipped(), "filtered records are dropped, not counted as malformed")
}

func TestBookRoutesPerPair(t *testing.T) {
	b := newTestBook(BookConfig{IncludeFeesInCost: true})

	b.ApplyAll([]domain.RawTrade{
		{Pair: "XXBTZUSD", Type: "buy", Volume: "1", Price: "9000", Cost: "9000", Time: 5},
		{Pair: "XETHZUSD", Type: "buy", Volume: "10", Price: "180", Cost: "1800", Time: 7},
		{Pair: "SOLUSDT", Type: "buy", Volume: "100", Price: "20", Cost: "2000", Time: 9},
	})

	pairs := b.Pairs()
	require.Equal(t, []domain.Pair{
		{Base: "BTC", Quote: "USD"},
		{Base: "ETH", Quote: "USD"},
		{Base: "SOL", Quote: "USDT"},
	}, pairs, "pairs sorted by (base, quote)")

	assert.Equal(t, []string{"SOLUSDT", "XETHZUSD", "XXBTZUSD"}, b.PairNames())
}

func TestBookCountsOversells(t *testing.T) {
	b := newTestBook(BookConfig{IncludeFeesInCost: true})

	b.ApplyAll([]domain.RawTrade{
		{Pair: "ETHUSD", Type: "sell", Volume: "1", Price: "1800", Cost: "1800"},
	})

	assert.Equal(t, 1, b.Oversold())

	led, ok := b.Ledger(domain.Pair{Base: "ETH", Quote: "USD"})
	require.True(t, ok)
	vol, _ := led.Remaining()
	assert.True(t, vol.IsZero())
	assert.True(t, led.RealizedPnL.IsZero(), "nothing matched, nothing realized")
}
