package eodhd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/etnz/returns/date"
	"github.com/rs/zerolog"
)

func TestDailyCloses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/eod/MCD.US" {
			t.Errorf("path = %q, want /eod/MCD.US", r.URL.Path)
		}
		if got := r.URL.Query().Get("from"); got != "2024-02-01" {
			t.Errorf("from = %q, want 2024-02-01", got)
		}
		w.Write([]byte(`[{"date":"2024-02-01","open":1,"close":268.44},{"date":"2024-02-02","open":1,"close":270.1}]`))
	}))
	defer srv.Close()

	c := &Client{APIKey: "demo", BaseURL: srv.URL, HTTP: srv.Client(), log: zerolog.Nop()}
	closes, err := c.DailyCloses(context.Background(), "MCD", date.New(2024, 2, 1), date.New(2024, 2, 29))
	if err != nil {
		t.Fatalf("DailyCloses() unexpected error: %v", err)
	}
	if len(closes) != 2 {
		t.Fatalf("len(DailyCloses()) = %d, want 2", len(closes))
	}
	if closes[1].Instrument != "MCD" || closes[1].Date != date.New(2024, 2, 2) || closes[1].Close.String() != "270.1" {
		t.Errorf("DailyCloses()[1] = %+v", closes[1])
	}
}

func TestDailyClosesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, HTTP: srv.Client(), log: zerolog.Nop()}
	if _, err := c.DailyCloses(context.Background(), "MCD", date.New(2024, 2, 1), date.New(2024, 2, 29)); err == nil {
		t.Errorf("DailyCloses() expected an error on 403")
	}
}

func TestTicker(t *testing.T) {
	c := &Client{}
	if got := c.Ticker("AAPL"); got != "AAPL.US" {
		t.Errorf("Ticker(AAPL) = %q, want AAPL.US", got)
	}
	if got := c.Ticker("NVD.F"); got != "NVD.F" {
		t.Errorf("Ticker(NVD.F) = %q, want NVD.F", got)
	}
	c.Exchange = "XETRA"
	if got := c.Ticker("SAP"); got != "SAP.XETRA" {
		t.Errorf("Ticker(SAP) = %q, want SAP.XETRA", got)
	}
}

func TestDiskCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := &http.Client{Transport: &diskCache{base: http.DefaultTransport, dir: t.TempDir(), log: zerolog.Nop()}}
	for range 2 {
		var content []any
		if err := jwget(context.Background(), client, srv.URL+"/eod/X.US", &content); err != nil {
			t.Fatalf("jwget() unexpected error: %v", err)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hits = %d, want 1", got)
	}
}
