package pricer

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/P0werNap/Kraken-PNL/internal/clients"
)

func newKrakenPricer(t *testing.T, srv *httptest.Server, useMidprice bool) *KrakenPricer {
	t.Helper()
	client, err := clients.NewKrakenClient("key", "c2VjcmV0", clients.WithBaseURL(srv.URL))
	require.NoError(t, err)
	return NewKrakenPricer(client, useMidprice, zap.NewNop())
}

func TestPricesLastPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":[],"result":{
			"XXBTZUSD":{"a":["10010.0","1","1.0"],"b":["9990.0","1","1.0"],"c":["10000.0","0.1"]}}}`)
	}))
	defer srv.Close()

	p := newKrakenPricer(t, srv, false)
	prices, err := p.Prices(context.Background(), []string{"XXBTZUSD"})
	require.NoError(t, err)
	require.Len(t, prices, 1)
	assert.True(t, prices["XXBTZUSD"].Equal(decimal.NewFromInt(10000)))
}

func TestPricesMidprice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":[],"result":{
			"XXBTZUSD":{"a":["10010.0","1","1.0"],"b":["9990.0","1","1.0"],"c":["10000.0","0.1"]}}}`)
	}))
	defer srv.Close()

	p := newKrakenPricer(t, srv, true)
	prices, err := p.Prices(context.Background(), []string{"XXBTZUSD"})
	require.NoError(t, err)
	assert.True(t, prices["XXBTZUSD"].Equal(decimal.NewFromInt(10000)))
}

func TestPricesSkipsMalformedEntries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":[],"result":{
			"XXBTZUSD":{"a":[],"b":[],"c":[]},
			"XETHZUSD":{"a":["1801.0"],"b":["1799.0"],"c":["1800.0","0.5"]}}}`)
	}))
	defer srv.Close()

	p := newKrakenPricer(t, srv, false)
	prices, err := p.Prices(context.Background(), []string{"XXBTZUSD", "XETHZUSD"})
	require.NoError(t, err)
	require.Len(t, prices, 1, "entry without prices must be omitted")
	assert.True(t, prices["XETHZUSD"].Equal(decimal.NewFromInt(1800)))
}
