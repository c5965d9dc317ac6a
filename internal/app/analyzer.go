// Package app wires the analyzer pipeline: fetch history, fold it
// into FIFO ledgers, optionally adjust remaining balances, value the
// result at current prices, and render the summary.
package app

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/P0werNap/Kraken-PNL/config"
	"github.com/P0werNap/Kraken-PNL/internal/ledger"
	"github.com/P0werNap/Kraken-PNL/internal/render"
	"github.com/P0werNap/Kraken-PNL/internal/report"
	"github.com/P0werNap/Kraken-PNL/internal/services/history"
	"github.com/P0werNap/Kraken-PNL/internal/services/pricer"
	"github.com/P0werNap/Kraken-PNL/internal/setup"
)

// Analyzer runs one end-to-end analysis pass.
type Analyzer struct {
	History history.Source
	Pricer  pricer.Pricer
	Config  config.Config
	Logger  *zap.Logger

	// Out receives the rendered summary table, stdout by default.
	Out io.Writer
	// Adjust is the interactive balance-adjustment hook; nil skips it.
	Adjust func(*ledger.Book) error
}

// NewAnalyzer assembles an analyzer with the standard pipeline.
func NewAnalyzer(cfg config.Config, source history.Source, prices pricer.Pricer, logger *zap.Logger) *Analyzer {
	a := &Analyzer{
		History: source,
		Pricer:  prices,
		Config:  cfg,
		Logger:  logger,
		Out:     os.Stdout,
	}
	if cfg.Interactive {
		a.Adjust = setup.RunAdjustments
	}
	return a
}

// Run executes the analysis.
func (a *Analyzer) Run(ctx context.Context) error {
	trades, err := a.History.Trades(ctx)
	if err != nil {
		return errors.Wrap(err, "trade history")
	}

	book := ledger.NewBook(ledger.BookConfig{
		IncludeFeesInCost: a.Config.IncludeFeesInCost,
		Quotes:            a.Config.Quotes,
	}, a.Logger)
	book.ApplyAll(trades)

	if book.Skipped() > 0 {
		a.Logger.Warn("some trade records were malformed and skipped",
			zap.Int("skipped", book.Skipped()))
	}
	if book.Oversold() > 0 {
		a.Logger.Warn("some sells exceeded recorded inventory; buy history may be incomplete",
			zap.Int("oversold", book.Oversold()))
	}

	if a.Adjust != nil {
		if err := a.Adjust(book); err != nil {
			a.Logger.Warn("skipping balance adjustments", zap.Error(err))
		}
	}

	prices, err := a.Pricer.Prices(ctx, book.PairNames())
	if err != nil {
		// Valuation degrades to "no price data" instead of failing
		// the whole run.
		a.Logger.Warn("price fetch failed, unrealized PnL unavailable", zap.Error(err))
		prices = map[string]decimal.Decimal{}
	}

	rows := report.Compute(book, prices)

	if err := render.Table(a.Out, rows); err != nil {
		return errors.Wrap(err, "render summary")
	}
	if a.Config.CSVOut != "" && len(rows) > 0 {
		if err := render.CSVFile(a.Config.CSVOut, rows); err != nil {
			return errors.Wrap(err, "write csv")
		}
		a.Logger.Info("wrote summary csv", zap.String("path", a.Config.CSVOut))
	}
	return nil
}
