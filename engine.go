package returns

import (
	"context"
	"fmt"
	"slices"

	"github.com/etnz/returns/date"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the number of instruments computed concurrently by default.
const DefaultWorkers = 4

// Options tunes a Compute run.
type Options struct {
	// Through is a day of the last month covered by the calendar. It is
	// rounded up to the end of its month, as returns are monthly. The zero
	// value uses the latest transaction or price date.
	Through date.Date
	// ActiveOnly restricts the summary to instruments still held at the end
	// of their latest period. The portfolio row always covers every instrument.
	ActiveOnly bool
}

// InstrumentReport holds the monthly records of a single instrument.
type InstrumentReport struct {
	Instrument  string         `json:"instrument"`
	Records     []PeriodRecord `json:"records"`
	Flows       []WeightedFlow `json:"flows"`
	Diagnostics []Diagnostic   `json:"-"`
}

// Latest returns the last record, and false if there is none.
func (r InstrumentReport) Latest() (PeriodRecord, bool) {
	if len(r.Records) == 0 {
		return PeriodRecord{}, false
	}
	return r.Records[len(r.Records)-1], true
}

// Active reports whether the instrument is still held at the end of its latest period.
func (r InstrumentReport) Active() bool {
	last, ok := r.Latest()
	return ok && !last.SharesEOM.IsZero()
}

// Report is the outcome of a Compute run.
type Report struct {
	Instruments []InstrumentReport `json:"instruments"`
	Portfolio   []PortfolioRecord  `json:"portfolio"`
	Summary     []Row              `json:"summary"`
	Diagnostics []Diagnostic       `json:"-"`
}

// Instrument returns the report of the named instrument.
func (r *Report) Instrument(name string) (InstrumentReport, bool) {
	i := slices.IndexFunc(r.Instruments, func(x InstrumentReport) bool { return x.Instrument == name })
	if i < 0 {
		return InstrumentReport{}, false
	}
	return r.Instruments[i], true
}

// Engine computes Modified Dietz reports. It holds no state between runs.
type Engine struct {
	log     zerolog.Logger
	workers int
}

// NewEngine returns an Engine computing up to workers instruments concurrently.
func NewEngine(log zerolog.Logger, workers int) *Engine {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Engine{log: log.With().Str("component", "engine").Logger(), workers: workers}
}

// Compute builds the monthly records of every instrument found in txs, the
// portfolio records, and the ranked horizon summary.
//
// Each instrument is computed independently, in parallel. Malformed
// transactions, months without prices and undefined returns are reported as
// diagnostics and never abort the run. Compute only fails when ctx is done.
func (e *Engine) Compute(ctx context.Context, txs []Transaction, prices []PricePoint, opts Options) (*Report, error) {
	report := new(Report)

	byInstrument := make(map[string][]Transaction)
	var last date.Date
	for _, tx := range txs {
		if err := tx.Validate(); err != nil {
			e.log.Warn().Err(err).Int("seq", tx.Seq).Msg("dropping transaction")
			report.Diagnostics = append(report.Diagnostics, Diagnostic{Instrument: tx.Instrument, Err: err})
			continue
		}
		byInstrument[tx.Instrument] = append(byInstrument[tx.Instrument], tx)
		if tx.Date.After(last) {
			last = tx.Date
		}
	}

	byPrice := make(map[string][]PricePoint)
	for _, p := range prices {
		byPrice[p.Instrument] = append(byPrice[p.Instrument], p)
	}

	names := make([]string, 0, len(byInstrument))
	series := make(map[string]*priceSeries, len(byInstrument))
	for name := range byInstrument {
		names = append(names, name)
		s := newPriceSeries(byPrice[name])
		series[name] = s
		if on := s.latest(); on.After(last) {
			last = on
		}
	}
	slices.Sort(names)

	through := opts.Through
	if through.IsZero() {
		through = last
	}
	through = through.EndOf(date.Monthly)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	reports := make([]InstrumentReport, len(names))
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			txs := slices.Clone(byInstrument[name])
			SortTransactions(txs)
			reports[i] = e.instrument(name, txs, series[name], through)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("computing instruments: %w", err)
	}
	report.Instruments = reports

	all := make([][]PeriodRecord, len(reports))
	rows := make([]Row, 0, len(reports))
	for i, r := range reports {
		all[i] = r.Records
		report.Diagnostics = append(report.Diagnostics, r.Diagnostics...)
		if opts.ActiveOnly && !r.Active() {
			continue
		}
		row := Summarize(r.Instrument, InstrumentPoints(r.Records))
		if row.Empty() {
			report.Diagnostics = append(report.Diagnostics, Diagnostic{Instrument: r.Instrument, Err: ErrEmptySeries})
		}
		rows = append(rows, row)
	}
	report.Portfolio = Consolidate(all...)
	report.Summary = Rank(rows, Summarize(PortfolioName, PortfolioPoints(report.Portfolio)))

	e.log.Info().Int("instruments", len(names)).Int("periods", len(report.Portfolio)).Int("diagnostics", len(report.Diagnostics)).Msg("report computed")
	return report, nil
}

// instrument computes the records of a single instrument from its sorted transactions.
func (e *Engine) instrument(name string, txs []Transaction, prices *priceSeries, through date.Date) InstrumentReport {
	log := e.log.With().Str("instrument", name).Logger()
	report := InstrumentReport{Instrument: name}
	if len(txs) == 0 || txs[0].Date.After(through) {
		return report
	}

	periods := Calendar(txs[0].Date, through)
	positions := TrackPositions(periods, txs)

	rest := txs
	for _, pos := range positions {
		var in []Transaction
		in, rest = inPeriod(rest, pos.Period)
		report.Flows = append(report.Flows, WeightedFlows(pos.Period, in)...)

		bom, eom, filled, ok := prices.at(pos.Period)
		if !ok {
			log.Debug().Str("period", pos.Period.Identifier()).Msg("no price yet, period omitted")
			report.Diagnostics = append(report.Diagnostics, Diagnostic{Instrument: name, Period: pos.Period, Err: ErrMissingPrice})
			continue
		}
		record := bridge(name, pos, bom, eom, in)
		record.PriceFilled = filled
		if !record.Return.Valid() {
			report.Diagnostics = append(report.Diagnostics, Diagnostic{Instrument: name, Period: pos.Period, Err: ErrUndefinedReturn})
		}
		report.Records = append(report.Records, record)
	}

	returns := make([]Return, len(report.Records))
	shares := make([]decimal.Decimal, len(report.Records))
	for i, r := range report.Records {
		returns[i], shares[i] = r.Return, r.SharesEOM
	}
	ltd := LinkLTD(returns)
	reset := LinkWithReset(returns, shares)
	for i := range report.Records {
		report.Records[i].LTDReturn = ltd[i]
		report.Records[i].LinkedReturn = reset[i]
	}

	log.Debug().Int("records", len(report.Records)).Int("flows", len(report.Flows)).Msg("instrument computed")
	return report
}
