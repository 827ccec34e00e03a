package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DefaultYahooURL is the public Yahoo Finance chart endpoint.
const DefaultYahooURL = "https://query1.finance.yahoo.com"

// YahooClient fetches the latest close for a symbol from the Yahoo
// Finance chart API. Any transport, status or decode failure maps to
// ErrUnavailable so one bad symbol cannot sink a whole report.
type YahooClient struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewYahoo creates a Yahoo quote client. An empty baseURL selects the
// public endpoint; tests point it at a local server.
func NewYahoo(baseURL string, timeout time.Duration, log zerolog.Logger) *YahooClient {
	if baseURL == "" {
		baseURL = DefaultYahooURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &YahooClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// chartResponse mirrors the slice of the chart payload we read: the
// regular market price of the first result.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Lookup fetches the live price for symbol.
func (c *YahooClient) Lookup(ctx context.Context, symbol string) (decimal.Decimal, error) {
	params := url.Values{}
	params.Set("interval", "1d")
	params.Set("range", "5d")

	apiURL := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(symbol), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "fintrack/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("symbol", symbol).Msg("quote request failed")
		return decimal.Zero, fmt.Errorf("%s: %w", symbol, ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Debug().Int("status", resp.StatusCode).Str("symbol", symbol).Msg("quote status not ok")
		return decimal.Zero, fmt.Errorf("%s: status %d: %w", symbol, resp.StatusCode, ErrUnavailable)
	}

	var payload chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Zero, fmt.Errorf("%s: decode: %w", symbol, ErrUnavailable)
	}

	if payload.Chart.Error != nil || len(payload.Chart.Result) == 0 {
		return decimal.Zero, fmt.Errorf("%s: no data: %w", symbol, ErrUnavailable)
	}

	price := payload.Chart.Result[0].Meta.RegularMarketPrice
	if price <= 0 {
		return decimal.Zero, fmt.Errorf("%s: no data: %w", symbol, ErrUnavailable)
	}

	// Two decimal places, matching the display currency precision.
	return decimal.NewFromFloat(price).Round(2), nil
}
