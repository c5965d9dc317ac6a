package ledger

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/P0werNap/Kraken-PNL/internal/domain"
)

// BookConfig controls how trades are aggregated. It is passed in at
// construction so behavior stays deterministic per Book instance.
type BookConfig struct {
	// IncludeFeesInCost capitalizes buy fees into lot cost and nets
	// sell fees out of proceeds.
	IncludeFeesInCost bool
	// Quotes is an optional allow-list of quote currencies; records
	// with any other quote are dropped. Empty means analyze all.
	Quotes []string
}

// Book routes an ordered trade sequence to one Ledger per
// (base, quote) pair. FIFO correctness depends on callers supplying
// records in chronological order, so buys precede the sells they
// cover.
type Book struct {
	cfg     BookConfig
	quotes  map[string]struct{}
	ledgers map[domain.Pair]*Ledger
	logger  *zap.Logger

	skipped  int
	oversold int
}

// NewBook creates an empty book with the given aggregation config.
func NewBook(cfg BookConfig, logger *zap.Logger) *Book {
	var quotes map[string]struct{}
	if len(cfg.Quotes) > 0 {
		quotes = make(map[string]struct{}, len(cfg.Quotes))
		for _, q := range cfg.Quotes {
			quotes[strings.ToUpper(strings.TrimSpace(q))] = struct{}{}
		}
	}

	return &Book{
		cfg:     cfg,
		quotes:  quotes,
		ledgers: make(map[domain.Pair]*Ledger),
		logger:  logger,
	}
}

// ApplyAll folds the raw records, in the order given, into per-pair
// ledgers. Records that fail to parse are skipped and counted, never
// fatal; records outside the quote allow-list are dropped.
func (b *Book) ApplyAll(raws []domain.RawTrade) {
	for _, raw := range raws {
		trade, err := domain.ParseTrade(raw)
		if err != nil {
			b.skipped++
			b.logger.Warn("skipping malformed trade record",
				zap.String("pair", raw.Pair),
				zap.Error(err))
			continue
		}
		b.Apply(trade)
	}
}

// Apply routes a single parsed trade to its ledger, creating the
// ledger on first reference.
func (b *Book) Apply(trade domain.Trade) {
	if b.quotes != nil {
		if _, ok := b.quotes[trade.Pair.Quote]; !ok {
			return
		}
	}

	led, ok := b.ledgers[trade.Pair]
	if !ok {
		led = NewLedger(b.cfg.IncludeFeesInCost)
		b.ledgers[trade.Pair] = led
	}

	if trade.Time > led.LastSeen {
		led.LastSeen = trade.Time
	}
	if led.PairName == "" {
		led.PairName = trade.PairName
	}

	switch trade.Side {
	case domain.SideBuy:
		led.ApplyBuy(trade.Volume, trade.Cost, trade.Fee)
	case domain.SideSell:
		unmatched := led.ApplySell(trade.Volume, trade.Cost, trade.Fee)
		if unmatched.IsPositive() {
			b.oversold++
			b.logger.Warn("sell volume exceeds recorded inventory, matching saturated",
				zap.String("pair", trade.Pair.String()),
				zap.String("unmatched", unmatched.String()))
		}
	}
}

// Ledger returns the ledger for a pair, if one exists.
func (b *Book) Ledger(pair domain.Pair) (*Ledger, bool) {
	led, ok := b.ledgers[pair]
	return led, ok
}

// Pairs returns every pair with a ledger, sorted by (base, quote)
// for deterministic presentation.
func (b *Book) Pairs() []domain.Pair {
	pairs := make([]domain.Pair, 0, len(b.ledgers))
	for p := range b.ledgers {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Base != pairs[j].Base {
			return pairs[i].Base < pairs[j].Base
		}
		return pairs[i].Quote < pairs[j].Quote
	})
	return pairs
}

// PairNames returns the distinct raw pair identifiers observed, for
// price lookup.
func (b *Book) PairNames() []string {
	seen := make(map[string]struct{}, len(b.ledgers))
	for _, led := range b.ledgers {
		if led.PairName != "" {
			seen[led.PairName] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Skipped reports how many records failed to parse and were dropped.
func (b *Book) Skipped() int { return b.skipped }

// Oversold reports how many sells exceeded recorded inventory.
func (b *Book) Oversold() int { return b.oversold }
