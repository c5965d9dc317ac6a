// Package domain defines core data structures used throughout the analyzer.
package domain

import (
	"fmt"
	"strings"
)

// Pair is an instrument pair: the asset being priced (Base) and the
// asset it is priced in (Quote).
type Pair struct {
	// Base asset symbol.
	Base string
	// Quote currency symbol.
	Quote string
}

// String returns the string representation.
func (p Pair) String() string {
	return fmt.Sprintf("%s/%s", p.Base, p.Quote)
}

// ParsePair normalizes a Kraken pair identifier into (base, quote).
// Handles formats like "XXBTZUSD", "XETHZUSD", "ETHUSD", "ETH/USDT".
// Maps the legacy XBT ticker to BTC.
//
// The split is heuristic: identifiers with no recognizable structure
// fall back to a trailing 4-then-3 character quote guess, so callers
// should treat an empty base or quote as a data-quality signal, not a
// fatal error.
func ParsePair(raw string) Pair {
	if raw == "" {
		return Pair{}
	}

	p := strings.ToUpper(strings.ReplaceAll(raw, "/", ""))
	p = strings.ReplaceAll(p, "XBT", "BTC")

	// Legacy "BASEZQUOTE" format (e.g. XETHZUSD).
	if i := strings.LastIndex(p, "Z"); i >= 0 && len(p) >= 7 {
		left, right := p[:i], p[i+1:]
		if left != "" && right != "" && len(right) >= 3 && len(right) <= 4 {
			if strings.HasPrefix(left, "X") && len(left) >= 2 {
				left = left[1:]
			}
			return Pair{Base: left, Quote: right}
		}
	}

	// Otherwise assume the last 3-4 characters are the quote symbol,
	// preferring a suffix that is a currency we know about so that
	// "ETHUSD" splits as ETH/USD rather than ET/HUSD.
	for _, qlen := range []int{4, 3} {
		if len(p) > qlen && knownQuotes[p[len(p)-qlen:]] {
			return Pair{Base: p[:len(p)-qlen], Quote: p[len(p)-qlen:]}
		}
	}
	for _, qlen := range []int{4, 3} {
		if len(p) > qlen {
			return Pair{Base: p[:len(p)-qlen], Quote: p[len(p)-qlen:]}
		}
	}
	return Pair{Base: p}
}

// knownQuotes lists quote currencies Kraken actually trades against.
var knownQuotes = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "CAD": true, "AUD": true,
	"CHF": true, "JPY": true, "USDT": true, "USDC": true, "DAI": true,
	"BTC": true, "ETH": true,
}
