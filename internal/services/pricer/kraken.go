package pricer

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/P0werNap/Kraken-PNL/internal/clients"
)

// KrakenPricer reads current prices from the public Ticker endpoint.
type KrakenPricer struct {
	client *clients.KrakenClient
	logger *zap.Logger

	// useMidprice values inventory at (bid+ask)/2 instead of the last
	// traded price.
	useMidprice bool
}

// NewKrakenPricer creates a pricer backed by the Kraken Ticker
// endpoint.
func NewKrakenPricer(client *clients.KrakenClient, useMidprice bool, logger *zap.Logger) *KrakenPricer {
	return &KrakenPricer{client: client, useMidprice: useMidprice, logger: logger}
}

// Prices fetches current prices for the given pair identifiers.
// Entries Kraken does not return, or returns malformed, are omitted
// rather than failing the whole snapshot.
func (p *KrakenPricer) Prices(ctx context.Context, pairNames []string) (map[string]decimal.Decimal, error) {
	tickers, err := p.client.Ticker(ctx, pairNames)
	if err != nil {
		return nil, err
	}

	prices := make(map[string]decimal.Decimal, len(tickers))
	for name, info := range tickers {
		var price decimal.Decimal
		var perr error
		if p.useMidprice {
			price, perr = info.MidPrice()
		} else {
			price, perr = info.LastPrice()
		}
		if perr != nil {
			p.logger.Warn("skipping unusable ticker entry",
				zap.String("pair", name),
				zap.Error(perr))
			continue
		}
		prices[name] = price
	}
	return prices, nil
}
