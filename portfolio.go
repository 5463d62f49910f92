package returns

import (
	"cmp"
	"slices"

	"github.com/etnz/returns/date"
	"github.com/shopspring/decimal"
)

// PortfolioName is the name of the portfolio row in summaries.
const PortfolioName = "PORTFOLIO"

// PortfolioRecord aggregates the records of every instrument for a calendar month.
type PortfolioRecord struct {
	Start          date.Date       `json:"period_start"`
	End            date.Date       `json:"period_end"`
	Instruments    int             `json:"instruments"`
	NavBOM         decimal.Decimal `json:"nav_bom"`
	NavEOM         decimal.Decimal `json:"nav_eom"`
	NetCashFlow    decimal.Decimal `json:"net_cash_flow"`
	WCF            decimal.Decimal `json:"wcf"`
	AverageCapital decimal.Decimal `json:"average_capital"`
	PnL            decimal.Decimal `json:"pnl"`
	RealizedPnL    decimal.Decimal `json:"realized_pnl"`
	Return         Return          `json:"return"`
	LTDReturn      Return          `json:"ltd_return"`
}

// Consolidate sums instrument records month by month and computes the
// portfolio Modified Dietz return of each month from the sums.
//
// The result is ordered by month and covers every month present in at least
// one instrument.
func Consolidate(instruments ...[]PeriodRecord) []PortfolioRecord {
	byMonth := make(map[date.Date]*PortfolioRecord)
	for _, records := range instruments {
		for _, r := range records {
			p, ok := byMonth[r.Start]
			if !ok {
				p = &PortfolioRecord{Start: r.Start, End: r.End}
				byMonth[r.Start] = p
			}
			p.Instruments++
			p.NavBOM = p.NavBOM.Add(r.NavBOM)
			p.NavEOM = p.NavEOM.Add(r.NavEOM)
			p.NetCashFlow = p.NetCashFlow.Add(r.NetCashFlow)
			p.WCF = p.WCF.Add(r.WCF)
			p.RealizedPnL = p.RealizedPnL.Add(r.RealizedPnL)
		}
	}

	records := make([]PortfolioRecord, 0, len(byMonth))
	for _, p := range byMonth {
		p.AverageCapital = AverageCapital(p.NavBOM, p.WCF)
		p.PnL = PnL(p.NavBOM, p.NavEOM, p.NetCashFlow)
		p.Return = ModifiedDietz(p.NavBOM, p.NavEOM, p.NetCashFlow, p.WCF)
		records = append(records, *p)
	}
	slices.SortFunc(records, func(a, b PortfolioRecord) int { return a.Start.Compare(b.Start) })

	returns := make([]Return, len(records))
	for i, r := range records {
		returns[i] = r.Return
	}
	for i, l := range LinkLTD(returns) {
		records[i].LTDReturn = l
	}
	return records
}

// InstrumentPoints returns the return series of records.
func InstrumentPoints(records []PeriodRecord) []Point {
	points := make([]Point, len(records))
	for i, r := range records {
		points[i] = Point{End: r.End, Return: r.Return}
	}
	return points
}

// PortfolioPoints returns the return series of records.
func PortfolioPoints(records []PortfolioRecord) []Point {
	points := make([]Point, len(records))
	for i, r := range records {
		points[i] = Point{End: r.End, Return: r.Return}
	}
	return points
}

// Rank sorts instrument rows by descending LTD return, undefined last and
// ties by name, then appends the portfolio row.
func Rank(rows []Row, portfolio Row) []Row {
	ranked := slices.Clone(rows)
	slices.SortStableFunc(ranked, func(a, b Row) int {
		switch {
		case a.LTD.Valid() && !b.LTD.Valid():
			return -1
		case !a.LTD.Valid() && b.LTD.Valid():
			return 1
		}
		if c := b.LTD.Decimal().Cmp(a.LTD.Decimal()); c != 0 {
			return c
		}
		return cmp.Compare(a.Instrument, b.Instrument)
	})
	portfolio.Portfolio = true
	if portfolio.Instrument == "" {
		portfolio.Instrument = PortfolioName
	}
	return append(ranked, portfolio)
}
