// Command kraken-pnl pulls private trade history from Kraken and
// computes per-pair averages, fees, FIFO realized PnL and unrealized
// PnL at current prices. It can be configured via a YAML file or
// command-line arguments.
//
// Usage:
//
//	kraken-pnl --config config.yaml
//	kraken-pnl (uses CLI arguments)
//
// Required environment variables:
//
//	KRAKEN_KEY, KRAKEN_SECRET
//
// Use an API key with query-only permissions; the analyzer never
// trades or withdraws.
package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/P0werNap/Kraken-PNL/config"
	"github.com/P0werNap/Kraken-PNL/internal/app"
	"github.com/P0werNap/Kraken-PNL/internal/clients"
	"github.com/P0werNap/Kraken-PNL/internal/services/history"
	"github.com/P0werNap/Kraken-PNL/internal/services/pricer"
)

func main() {
	cfg, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	apiKey := os.Getenv("KRAKEN_KEY")
	apiSecret := os.Getenv("KRAKEN_SECRET")
	if apiKey == "" || apiSecret == "" {
		log.Fatal("KRAKEN_KEY and KRAKEN_SECRET environment variables must be set")
	}

	client, err := clients.NewKrakenClient(apiKey, apiSecret)
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	analyzer := app.NewAnalyzer(cfg,
		history.NewKrakenSource(client, logger),
		pricer.NewKrakenPricer(client, cfg.UseMidprice, logger),
		logger)

	if err := analyzer.Run(context.Background()); err != nil {
		logger.Fatal("analysis failed", zap.Error(err))
	}
}
