package server

import (
	"fmt"
	"net/http"

	"github.com/etnz/returns"
	"github.com/etnz/returns/renderer"
	"github.com/go-chi/chi/v5"
)

// instrumentStatus is an entry of GET /api/instruments.
type instrumentStatus struct {
	Instrument string                `json:"instrument"`
	Active     bool                  `json:"active"`
	Periods    int                   `json:"periods"`
	Latest     *returns.PeriodRecord `json:"latest,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

// GET /api/instruments
func (s *Server) handleInstruments(w http.ResponseWriter, r *http.Request) {
	report, ok := s.compute(w, r)
	if !ok {
		return
	}
	list := make([]instrumentStatus, 0, len(report.Instruments))
	for _, ir := range report.Instruments {
		st := instrumentStatus{Instrument: ir.Instrument, Active: ir.Active(), Periods: len(ir.Records)}
		if latest, ok := ir.Latest(); ok {
			st.Latest = &latest
		}
		list = append(list, st)
	}
	s.writeJSON(w, list)
}

// instrument resolves the {instrument} URL parameter, writing a 404 when unknown.
func (s *Server) instrument(w http.ResponseWriter, r *http.Request) (returns.InstrumentReport, bool) {
	report, ok := s.compute(w, r)
	if !ok {
		return returns.InstrumentReport{}, false
	}
	name := chi.URLParam(r, "instrument")
	ir, ok := report.Instrument(name)
	if !ok {
		http.Error(w, fmt.Sprintf("unknown instrument %q", name), http.StatusNotFound)
	}
	return ir, ok
}

// GET /api/instruments/{instrument}/records
func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	if ir, ok := s.instrument(w, r); ok {
		s.writeJSON(w, ir.Records)
	}
}

// GET /api/instruments/{instrument}/flows
func (s *Server) handleFlows(w http.ResponseWriter, r *http.Request) {
	if ir, ok := s.instrument(w, r); ok {
		s.writeJSON(w, ir.Flows)
	}
}

// GET /api/portfolio
func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	if report, ok := s.compute(w, r); ok {
		s.writeJSON(w, report.Portfolio)
	}
}

// GET /api/returns
func (s *Server) handleReturns(w http.ResponseWriter, r *http.Request) {
	if report, ok := s.compute(w, r); ok {
		s.writeJSON(w, report.Summary)
	}
}

// GET /report renders the summary and portfolio tables as an HTML page.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report, ok := s.compute(w, r)
	if !ok {
		return
	}
	body, err := renderer.HTML(renderer.Summary(report, s.render) + "\n" + renderer.Portfolio(report, s.render))
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to render report")
		http.Error(w, "Failed to render report", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>Returns</title></head><body>\n%s</body></html>\n", body)
}
