// Package config resolves runtime configuration from a YAML file or
// command-line flags.
package config

import (
	"flag"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const defaultCSVOut = "kraken_trade_averages.csv"

// Config controls aggregation and output. It is passed explicitly
// into the book and valuation layers; there is no package-level
// mutable state.
type Config struct {
	// IncludeFeesInCost capitalizes buy fees into cost and nets sell
	// fees from proceeds.
	IncludeFeesInCost bool
	// Quotes restricts analysis to these quote currencies; empty
	// analyzes all.
	Quotes []string
	// CSVOut is the summary export path.
	CSVOut string
	// UseMidprice values inventory at (bid+ask)/2 instead of the last
	// traded price.
	UseMidprice bool
	// Interactive enables the adjust-balances prompt.
	Interactive bool
}

type configTmp struct {
	IncludeFeesInCost *bool    `yaml:"include_fees_in_cost,omitempty"`
	Quotes            []string `yaml:"quotes,omitempty"`
	CSVOut            string   `yaml:"csv_out,omitempty"`
	UseMidprice       bool     `yaml:"use_midprice,omitempty"`
	Interactive       *bool    `yaml:"interactive,omitempty"`
}

// Get resolves the configuration: a --config YAML file when given,
// individual flags otherwise.
func Get() (Config, error) {
	configPath := flag.String("config", "", "path to yaml config")
	feesInCost := flag.Bool("include-fees-in-cost", true, "capitalize buy fees into cost, net sell fees from proceeds")
	quotes := flag.String("quotes", "", "comma-separated quote currency allow-list, example: USD,USDT (empty means all)")
	csvOut := flag.String("csv-out", defaultCSVOut, "path for the CSV export")
	useMidprice := flag.Bool("use-midprice", false, "use (bid+ask)/2 instead of last traded price")
	interactive := flag.Bool("interactive", true, "prompt to adjust remaining balances")
	flag.Parse()

	if *configPath != "" {
		return getYaml(*configPath)
	}

	return Config{
		IncludeFeesInCost: *feesInCost,
		Quotes:            splitQuotes(*quotes),
		CSVOut:            *csvOut,
		UseMidprice:       *useMidprice,
		Interactive:       *interactive,
	}, nil
}

func getYaml(path string) (Config, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "read config %s", path)
	}

	var tmp configTmp
	if err := yaml.Unmarshal(f, &tmp); err != nil {
		return Config{}, errors.Wrapf(err, "parse yaml config %s", path)
	}

	cfg := Config{
		IncludeFeesInCost: true,
		Quotes:            tmp.Quotes,
		CSVOut:            tmp.CSVOut,
		UseMidprice:       tmp.UseMidprice,
		Interactive:       true,
	}
	if tmp.IncludeFeesInCost != nil {
		cfg.IncludeFeesInCost = *tmp.IncludeFeesInCost
	}
	if tmp.Interactive != nil {
		cfg.Interactive = *tmp.Interactive
	}
	if cfg.CSVOut == "" {
		cfg.CSVOut = defaultCSVOut
	}
	return cfg, nil
}

func splitQuotes(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	quotes := make([]string, 0, len(parts))
	for _, p := range parts {
		if q := strings.TrimSpace(p); q != "" {
			quotes = append(quotes, q)
		}
	}
	return quotes
}
