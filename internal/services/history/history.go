// Package history supplies the ordered trade-history stream the
// ledger consumes.
package history

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/P0werNap/Kraken-PNL/internal/clients"
	"github.com/P0werNap/Kraken-PNL/internal/domain"
)

// Source supplies the full trade history in chronological order.
type Source interface {
	Trades(ctx context.Context) ([]domain.RawTrade, error)
}

// KrakenSource pages the private TradesHistory endpoint.
type KrakenSource struct {
	client *clients.KrakenClient
	logger *zap.Logger
}

// NewKrakenSource creates a history source backed by the Kraken API.
func NewKrakenSource(client *clients.KrakenClient, logger *zap.Logger) *KrakenSource {
	return &KrakenSource{client: client, logger: logger}
}

// Trades fetches the complete trade history.
func (s *KrakenSource) Trades(ctx context.Context) ([]domain.RawTrade, error) {
	trades, err := s.client.AllTrades(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "fetch trade history")
	}
	s.logger.Info("fetched trade history", zap.Int("trades", len(trades)))
	return trades, nil
}
