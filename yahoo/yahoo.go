// Package yahoo fetches daily closing prices from the Yahoo Finance chart API.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/returns"
	"github.com/etnz/returns/date"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the chart API root.
const DefaultBaseURL = "https://query2.finance.yahoo.com/v8/finance/chart"

// Aliases maps instruments renamed since they were traded to their current symbol.
var Aliases = map[string]string{
	"FB": "META",
}

// Client queries the chart API. It implements returns.PriceSource.
type Client struct {
	BaseURL string // DefaultBaseURL when empty
	HTTP    *http.Client
	log     zerolog.Logger
}

var _ returns.PriceSource = (*Client)(nil)

// New returns a Client using http.DefaultClient.
func New(log zerolog.Logger) *Client {
	return &Client{HTTP: http.DefaultClient, log: log.With().Str("component", "yahoo").Logger()}
}

// Symbol returns the Yahoo symbol of instrument.
func Symbol(instrument string) string {
	if s, ok := Aliases[instrument]; ok {
		return s
	}
	return instrument
}

// DailyCloses returns the daily closes of instrument between from and to, both included.
// Days without a close (null in the payload) are skipped.
func (c *Client) DailyCloses(ctx context.Context, instrument string, from, to date.Date) ([]returns.DailyClose, error) {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), to.Day()+1, 0, 0, 0, 0, time.UTC)
	addr := fmt.Sprintf("%s/%s?interval=1d&period1=%d&period2=%d", base, url.PathEscape(Symbol(instrument)), start.Unix(), end.Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s prices: %w", instrument, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %v%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding %s chart: %w", instrument, err)
	}
	closes, err := parseChart(instrument, payload)
	if err != nil {
		return nil, err
	}

	// keep the requested range only, the API rounds to trading sessions
	kept := closes[:0]
	for _, dc := range closes {
		if !dc.Date.Before(from) && !dc.Date.After(to) {
			kept = append(kept, dc)
		}
	}
	c.log.Debug().Str("instrument", instrument).Int("closes", len(kept)).Msg("prices fetched")
	return kept, nil
}

// get evaluates path on v and unwraps single element lists.
func get(path string, v any) (any, error) {
	jval, err := jsonpath.Get(path, v)
	if err != nil {
		return nil, fmt.Errorf("error parsing %q: %w", path, err)
	}
	// jsonpath is never clear about whether it returns a list of 1 answer, or a single answer
	if jlist, ok := jval.([]any); ok && len(jlist) == 1 {
		if _, nested := jlist[0].([]any); nested {
			jval = jlist[0]
		}
	}
	return jval, nil
}

// parseChart extracts daily closes from a decoded chart payload.
func parseChart(instrument string, payload any) ([]returns.DailyClose, error) {
	if errObj, err := get("$.chart.error", payload); err == nil && errObj != nil {
		return nil, fmt.Errorf("chart %s: %v", instrument, errObj)
	}
	jts, err := get("$.chart.result[0].timestamp", payload)
	if err != nil {
		return nil, err
	}
	jcloses, err := get("$.chart.result[0].indicators.quote[0].close", payload)
	if err != nil {
		return nil, err
	}
	var offset int64
	if joff, err := get("$.chart.result[0].meta.gmtoffset", payload); err == nil {
		if f, ok := joff.(float64); ok {
			offset = int64(f)
		}
	}

	timestamps, _ := jts.([]any)
	values, _ := jcloses.([]any)
	if len(timestamps) != len(values) {
		return nil, fmt.Errorf("chart %s: %d timestamps for %d closes", instrument, len(timestamps), len(values))
	}

	closes := make([]returns.DailyClose, 0, len(values))
	for i, jv := range values {
		v, ok := jv.(float64)
		if !ok {
			continue
		}
		ts, ok := timestamps[i].(float64)
		if !ok {
			return nil, fmt.Errorf("chart %s: invalid timestamp %v", instrument, timestamps[i])
		}
		on := date.FromTime(time.Unix(int64(ts)+offset, 0).UTC())
		closes = append(closes, returns.DailyClose{Instrument: instrument, Date: on, Close: decimal.NewFromFloat(v)})
	}
	return closes, nil
}
