package domain

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/P0werNap/Kraken-PNL/pkg/decimals"
)

// Side represents the direction of a trade.
type Side int

const (
	SideBuy Side = iota
	SideSell
)

// String returns the string representation of the side.
func (s Side) String() string {
	switch s {
	case SideBuy:
		return "buy"
	case SideSell:
		return "sell"
	default:
		return "unknown"
	}
}

// ParseSide parses a trade side case-insensitively.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy":
		return SideBuy, nil
	case "sell":
		return SideSell, nil
	default:
		return 0, errors.Errorf("unknown trade side %q", s)
	}
}

// RawTrade is one trade record as it arrives from the Kraken
// TradesHistory endpoint. Numeric fields are strings on the wire;
// Cost may be empty, in which case it derives as Volume*Price.
type RawTrade struct {
	Pair   string  `json:"pair"`
	Type   string  `json:"type"`
	Volume string  `json:"vol"`
	Price  string  `json:"price"`
	Cost   string  `json:"cost"`
	Fee    string  `json:"fee"`
	Time   float64 `json:"time"`
}

// Trade is a fully parsed trade record ready for ledger application.
type Trade struct {
	// PairName is the raw identifier as seen on the wire, kept for
	// price lookup against the Ticker endpoint.
	PairName string
	Pair     Pair
	Side     Side
	Volume   decimal.Decimal
	Price    decimal.Decimal
	Cost     decimal.Decimal
	Fee      decimal.Decimal
	// Time is the trade timestamp in seconds since epoch.
	Time float64
}

// String returns a human-readable string representation.
func (t *Trade) String() string {
	return fmt.Sprintf("%s %s vol: %s price: %s", t.Pair.String(), t.Side.String(), t.Volume.String(), t.Price.String())
}

// ParseTrade converts a raw record into a typed Trade. A non-nil
// error means the record is malformed and should be skipped; the
// batch as a whole continues.
func ParseTrade(raw RawTrade) (Trade, error) {
	side, err := ParseSide(raw.Type)
	if err != nil {
		return Trade{}, err
	}

	vol, err := decimals.Parse(raw.Volume)
	if err != nil {
		return Trade{}, errors.Wrap(err, "volume")
	}
	price, err := decimals.Parse(raw.Price)
	if err != nil {
		return Trade{}, errors.Wrap(err, "price")
	}
	cost, err := decimals.Parse(raw.Cost)
	if err != nil {
		return Trade{}, errors.Wrap(err, "cost")
	}
	fee, err := decimals.Parse(raw.Fee)
	if err != nil {
		return Trade{}, errors.Wrap(err, "fee")
	}

	// Kraken usually provides cost, but it is optional on the wire.
	if raw.Cost == "" {
		cost = vol.Mul(price)
	}

	pairName := strings.TrimSpace(raw.Pair)

	return Trade{
		PairName: pairName,
		Pair:     ParsePair(pairName),
		Side:     side,
		Volume:   vol,
		Price:    price,
		Cost:     cost,
		Fee:      fee,
		Time:     raw.Time,
	}, nil
}
