package exchange

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFills(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/wallets/main/fills", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "2026-08-01T00:00:00Z", r.URL.Query().Get("from"))

		w.Write([]byte(`{"fills":[
			{"instrument":"BTC-PERP","side":"buy","price":"30000","size":"0.5","fee":"1.1","timestamp_ms":1754900000000}
		]}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "tok")
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	fills, err := c.GetFills(context.Background(), "main", from)
	require.NoError(t, err)
	require.Len(t, fills, 1)
	assert.Equal(t, "BTC-PERP", fills[0].Instrument)
	assert.Equal(t, "30000", fills[0].Price)
	assert.Equal(t, int64(1754900000000), fills[0].TimestampMillis)
}

func TestGetFillsOmitsZeroFrom(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("from"))
		w.Write([]byte(`{"fills":[]}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "tok")
	fills, err := c.GetFills(context.Background(), "main", time.Time{})
	require.NoError(t, err)
	assert.Empty(t, fills)
}

func TestGetAccount(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/wallets/main/account", r.URL.Path)
		w.Write([]byte(`{"equity":"5000.25","positions":[
			{"instrument":"ETH-PERP","signed_size":"-2","entry_price":"2500","leverage":"5","margin_mode":"cross","cumulative_funding":"0.4"}
		]}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "tok")
	acct, err := c.GetAccount(context.Background(), "main")
	require.NoError(t, err)
	assert.Equal(t, "5000.25", acct.Equity)
	require.Len(t, acct.Positions, 1)
	assert.Equal(t, "-2", acct.Positions[0].SignedSize)
}

func TestNon2xxIsAnError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "tok")

	_, err := c.GetFills(context.Background(), "main", time.Time{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
	assert.Contains(t, err.Error(), "rate limited")

	_, err = c.GetAccount(context.Background(), "main")
	assert.Error(t, err)
}

func TestBadJSONIsAnError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"fills":`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "tok")
	_, err := c.GetFills(context.Background(), "main", time.Time{})
	assert.ErrorContains(t, err, "decode response")
}
