// Package eodhd fetches end of day prices from https://eodhd.com.
package eodhd

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/etnz/returns"
	"github.com/etnz/returns/date"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the EODHD API root.
const DefaultBaseURL = "https://eodhd.com/api"

// Client is an EODHD API client. It implements returns.PriceSource.
type Client struct {
	APIKey   string
	Exchange string // appended to bare tickers, "US" when empty
	BaseURL  string // DefaultBaseURL when empty
	HTTP     *http.Client
	log      zerolog.Logger
}

var _ returns.PriceSource = (*Client)(nil)

// New returns a client whose responses are cached on disk for the day.
func New(apiKey string, log zerolog.Logger) *Client {
	log = log.With().Str("component", "eodhd").Logger()
	return &Client{APIKey: apiKey, HTTP: newDailyCachingClient(log), log: log}
}

// Ticker returns the EODHD ticker of an instrument, "SYMBOL.EXCHANGE".
func (c *Client) Ticker(instrument string) string {
	if strings.Contains(instrument, ".") {
		return instrument
	}
	exchange := c.Exchange
	if exchange == "" {
		exchange = "US"
	}
	return instrument + "." + exchange
}

// DailyCloses returns the daily closes of instrument between from and to, both included.
func (c *Client) DailyCloses(ctx context.Context, instrument string, from, to date.Date) ([]returns.DailyClose, error) {
	// https://eodhd.com/api/eod/MCD.US?api_token=demo&fmt=json&from=2024-01-01&to=2024-02-01
	// [
	//	{
	//		"date": "2024-02-13",
	//		"open": 675.066,
	//		"high": 684.219,
	//		"low": 648.659,
	//		"close": 668.445,
	//		"adjusted_close": 67.705,
	//		"volume": 0
	//	},
	// bounds are included in the response, and time is limited to 1 year with free subscription.
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	addr := fmt.Sprintf("%s/eod/%s?fmt=json&api_token=%s&from=%s&to=%s", base, url.PathEscape(c.Ticker(instrument)), url.QueryEscape(c.APIKey), from, to)

	type Info struct {
		Date  date.Date       `json:"date"`
		Close decimal.Decimal `json:"close"`
	}
	content := make([]Info, 0)
	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	if err := jwget(ctx, client, addr, &content); err != nil {
		return nil, fmt.Errorf("fetching %s prices: %w", instrument, err)
	}

	closes := make([]returns.DailyClose, 0, len(content))
	for _, info := range content {
		closes = append(closes, returns.DailyClose{Instrument: instrument, Date: info.Date, Close: info.Close})
	}
	c.log.Debug().Str("instrument", instrument).Int("closes", len(closes)).Msg("prices fetched")
	return closes, nil
}
