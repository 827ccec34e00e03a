package quote

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestYahoo(t *testing.T, handler http.HandlerFunc) *YahooClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewYahoo(srv.URL, 0, zerolog.Nop())
}

func TestYahooLookup(t *testing.T) {
	t.Parallel()

	c := newTestYahoo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/TCS.NS", r.URL.Path)
		fmt.Fprint(w, `{"chart":{"result":[{"meta":{"regularMarketPrice":3141.557}}],"error":null}}`)
	})

	price, err := c.Lookup(context.Background(), "TCS.NS")
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromFloat(3141.56)), "got %s", price)
}

func TestYahooLookupUnavailable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server_error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "not_found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
		{
			name: "garbage_body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `not json`)
			},
		},
		{
			name: "api_error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"chart":{"result":[],"error":{"code":"Not Found","description":"No data found"}}}`)
			},
		},
		{
			name: "zero_price",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"chart":{"result":[{"meta":{"regularMarketPrice":0}}],"error":null}}`)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTestYahoo(t, tt.handler)
			_, err := c.Lookup(context.Background(), "BAD.NS")
			assert.ErrorIs(t, err, ErrUnavailable)
		})
	}
}

func TestStaticSource(t *testing.T) {
	t.Parallel()

	src := Static{"TCS.NS": decimal.NewFromInt(100)}

	price, err := src.Lookup(context.Background(), "TCS.NS")
	assert.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(100)))

	_, err = src.Lookup(context.Background(), "INFY.NS")
	assert.ErrorIs(t, err, ErrUnavailable)
}
