// Package clients holds the Kraken REST client. Use an API key with
// query-only permissions; the analyzer never trades or withdraws.
package clients

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/P0werNap/Kraken-PNL/internal/domain"
	"github.com/P0werNap/Kraken-PNL/pkg/decimals"
	"github.com/P0werNap/Kraken-PNL/pkg/retrier"
)

const (
	defaultBaseURL   = "https://api.kraken.com"
	defaultTimeout   = 30 * time.Second
	defaultPageDelay = 800 * time.Millisecond
)

// APIError is the Kraken error envelope: every response carries an
// "error" list, non-empty on failure.
type APIError struct {
	Messages []string
}

func (e *APIError) Error() string {
	return "kraken API error: " + strings.Join(e.Messages, "; ")
}

// IsRateLimited reports whether err is a Kraken throttling response
// (the "EAPI:Rate limit exceeded" family), which is worth backing off
// and retrying.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	msg := strings.ToLower(strings.Join(apiErr.Messages, " "))
	return strings.Contains(msg, "rate limit") || strings.Contains(msg, "exceeded")
}

// KrakenClient talks to the Kraken REST API: the private
// TradesHistory endpoint (paged) and the public Ticker endpoint.
type KrakenClient struct {
	baseURL    string
	key        string
	secret     []byte
	httpClient *http.Client
	retrier    *retrier.Retrier
	pageDelay  time.Duration
	nonce      func() int64
}

// Option configures the client.
type Option func(*KrakenClient)

// WithBaseURL overrides the API endpoint, used by tests.
func WithBaseURL(u string) Option {
	return func(c *KrakenClient) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithRetrier overrides the backoff policy for rate-limited calls.
func WithRetrier(r *retrier.Retrier) Option {
	return func(c *KrakenClient) {
		c.retrier = r
	}
}

// WithPageDelay sets the pacing delay between history pages. Private
// endpoints throttle harder than public ones, so pages are never
// requested back to back.
func WithPageDelay(d time.Duration) Option {
	return func(c *KrakenClient) {
		c.pageDelay = d
	}
}

// NewKrakenClient creates a client from API credentials. The secret
// is the base64-encoded private key Kraken hands out.
func NewKrakenClient(key, secret string, opts ...Option) (*KrakenClient, error) {
	if key == "" || secret == "" {
		return nil, errors.New("kraken API key and secret must be set")
	}
	decoded, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return nil, errors.Wrap(err, "kraken API secret is not valid base64")
	}

	c := &KrakenClient{
		baseURL:    defaultBaseURL,
		key:        key,
		secret:     decoded,
		httpClient: &http.Client{Timeout: defaultTimeout},
		retrier:    retrier.New(),
		pageDelay:  defaultPageDelay,
		nonce:      func() int64 { return time.Now().UnixNano() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type envelope struct {
	Error  []string        `json:"error"`
	Result json.RawMessage `json:"result"`
}

type tradesHistoryResult struct {
	Trades map[string]domain.RawTrade `json:"trades"`
	Count  int                        `json:"count"`
}

// TickerInfo is one pair's entry in the public Ticker response.
type TickerInfo struct {
	Ask  []string `json:"a"`
	Bid  []string `json:"b"`
	Last []string `json:"c"`
}

// AllTrades pages through the private TradesHistory endpoint and
// returns the full history sorted chronologically, which the FIFO
// ledger depends on.
func (c *KrakenClient) AllTrades(ctx context.Context) ([]domain.RawTrade, error) {
	var trades []domain.RawTrade

	for ofs := 0; ; {
		page, err := c.tradesPage(ctx, ofs)
		if err != nil {
			return nil, err
		}
		for _, t := range page.Trades {
			trades = append(trades, t)
		}

		ofs += len(page.Trades)
		if ofs >= page.Count || len(page.Trades) == 0 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pageDelay):
		}
	}

	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].Time < trades[j].Time
	})
	return trades, nil
}

func (c *KrakenClient) tradesPage(ctx context.Context, ofs int) (tradesHistoryResult, error) {
	params := url.Values{}
	params.Set("ofs", strconv.Itoa(ofs))

	raw, err := retrier.DoWithData(c.retrier, ctx, func(ctx context.Context) (json.RawMessage, error) {
		return c.queryPrivate(ctx, "TradesHistory", params)
	})
	if err != nil {
		return tradesHistoryResult{}, errors.Wrap(err, "TradesHistory")
	}

	var result tradesHistoryResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return tradesHistoryResult{}, errors.Wrap(err, "decode TradesHistory result")
	}
	return result, nil
}

// Ticker fetches current ticker data for the given Kraken-native pair
// names via the public Ticker endpoint.
func (c *KrakenClient) Ticker(ctx context.Context, pairNames []string) (map[string]TickerInfo, error) {
	if len(pairNames) == 0 {
		return map[string]TickerInfo{}, nil
	}

	names := append([]string(nil), pairNames...)
	sort.Strings(names)

	params := url.Values{}
	params.Set("pair", strings.Join(names, ","))

	raw, err := retrier.DoWithData(c.retrier, ctx, func(ctx context.Context) (json.RawMessage, error) {
		return c.queryPublic(ctx, "Ticker", params)
	})
	if err != nil {
		return nil, errors.Wrap(err, "Ticker")
	}

	var result map[string]TickerInfo
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, errors.Wrap(err, "decode Ticker result")
	}
	return result, nil
}

// LastPrice extracts the last traded price from a ticker entry.
func (t TickerInfo) LastPrice() (decimal.Decimal, error) {
	if len(t.Last) == 0 {
		return decimal.Decimal{}, errors.New("ticker entry has no last price")
	}
	return decimals.Parse(t.Last[0])
}

// MidPrice extracts the midpoint of best bid and ask.
func (t TickerInfo) MidPrice() (decimal.Decimal, error) {
	if len(t.Bid) == 0 || len(t.Ask) == 0 {
		return decimal.Decimal{}, errors.New("ticker entry has no bid/ask")
	}
	bid, err := decimals.Parse(t.Bid[0])
	if err != nil {
		return decimal.Decimal{}, err
	}
	ask, err := decimals.Parse(t.Ask[0])
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimals.SafeDiv(bid.Add(ask), decimal.NewFromInt(2)), nil
}

func (c *KrakenClient) queryPrivate(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error) {
	path := "/0/private/" + endpoint

	values := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			values.Add(k, v)
		}
	}
	values.Set("nonce", strconv.FormatInt(c.nonce(), 10))
	body := values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(body))
	if err != nil {
		return nil, retrier.Permanent(errors.Wrap(err, "create request"))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("API-Key", c.key)
	req.Header.Set("API-Sign", c.sign(path, values.Get("nonce"), body))

	return c.roundTrip(req)
}

func (c *KrakenClient) queryPublic(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error) {
	u := c.baseURL + "/0/public/" + endpoint
	if enc := params.Encode(); enc != "" {
		u += "?" + enc
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, retrier.Permanent(errors.Wrap(err, "create request"))
	}

	return c.roundTrip(req)
}

func (c *KrakenClient) roundTrip(req *http.Request) (json.RawMessage, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "HTTP request failed")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response body")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, retrier.Permanent(errors.Wrap(err, "decode response envelope"))
	}
	if len(env.Error) > 0 {
		apiErr := &APIError{Messages: env.Error}
		if IsRateLimited(apiErr) {
			return nil, apiErr
		}
		return nil, retrier.Permanent(apiErr)
	}
	return env.Result, nil
}

// sign computes the API-Sign header:
// HMAC-SHA512(path + SHA256(nonce + postdata), secret), base64-encoded.
func (c *KrakenClient) sign(path, nonce, body string) string {
	sha := sha256.Sum256([]byte(nonce + body))
	mac := hmac.New(sha512.New, c.secret)
	mac.Write([]byte(path))
	mac.Write(sha[:])
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
