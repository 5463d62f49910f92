package yahoo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/etnz/returns/date"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-01-31 and 2024-02-01 and 2024-02-02 at 14:30 UTC, 09:30 in New York.
const chart = `{"chart":{"result":[{"meta":{"symbol":"META","gmtoffset":-18000},
"timestamp":[1706711400,1706797800,1706884200],
"indicators":{"quote":[{"close":[390.14,null,474.99]}]}}],"error":null}}`

func TestParseChart(t *testing.T) {
	var payload any
	require.NoError(t, json.Unmarshal([]byte(chart), &payload))

	closes, err := parseChart("FB", payload)
	require.NoError(t, err)
	require.Len(t, closes, 2)
	assert.Equal(t, date.New(2024, 1, 31), closes[0].Date)
	assert.Equal(t, "390.14", closes[0].Close.String())
	assert.Equal(t, date.New(2024, 2, 2), closes[1].Date)
	assert.Equal(t, "FB", closes[1].Instrument)
}

func TestParseChartError(t *testing.T) {
	var payload any
	require.NoError(t, json.Unmarshal([]byte(`{"chart":{"result":null,"error":{"code":"Not Found"}}}`), &payload))
	_, err := parseChart("XXX", payload)
	assert.Error(t, err)
}

func TestDailyCloses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/META", r.URL.Path)
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		w.Write([]byte(chart))
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, HTTP: srv.Client(), log: zerolog.Nop()}
	closes, err := c.DailyCloses(context.Background(), "FB", date.New(2024, 2, 1), date.New(2024, 2, 29))
	require.NoError(t, err)
	require.Len(t, closes, 1, "January is outside the requested range")
	assert.Equal(t, date.New(2024, 2, 2), closes[0].Date)
}

func TestSymbol(t *testing.T) {
	assert.Equal(t, "META", Symbol("FB"))
	assert.Equal(t, "AAPL", Symbol("AAPL"))
}
