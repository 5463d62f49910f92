package returns

import (
	"cmp"
	"slices"

	"github.com/etnz/returns/date"
	"github.com/shopspring/decimal"
)

// DailyClose is the closing price of an instrument on a trading day.
type DailyClose struct {
	Instrument string          `json:"instrument"`
	Date       date.Date       `json:"date"`
	Close      decimal.Decimal `json:"close"`
}

// PricePoint is the price of an instrument at the beginning and end of a calendar month.
type PricePoint struct {
	Instrument string          `json:"instrument"`
	Month      date.Date       `json:"month"` // first day of the month
	BOM        decimal.Decimal `json:"price_bom"`
	EOM        decimal.Decimal `json:"price_eom"`
}

// MonthlyPrices reduces daily closes to one PricePoint per instrument and
// month: the first close of the month is the beginning of month price, the
// last close the end of month price.
//
// The result is sorted by instrument then month.
func MonthlyPrices(closes []DailyClose) []PricePoint {
	sorted := slices.Clone(closes)
	slices.SortStableFunc(sorted, func(a, b DailyClose) int {
		if c := cmp.Compare(a.Instrument, b.Instrument); c != 0 {
			return c
		}
		return a.Date.Compare(b.Date)
	})

	var points []PricePoint
	for _, c := range sorted {
		month := c.Date.StartOf(date.Monthly)
		if n := len(points); n > 0 && points[n-1].Instrument == c.Instrument && points[n-1].Month == month {
			points[n-1].EOM = c.Close
			continue
		}
		points = append(points, PricePoint{Instrument: c.Instrument, Month: month, BOM: c.Close, EOM: c.Close})
	}
	return points
}

// priceSeries resolves the monthly prices of a single instrument.
type priceSeries struct {
	points date.History[PricePoint]
}

func newPriceSeries(points []PricePoint) *priceSeries {
	s := new(priceSeries)
	for _, p := range points {
		s.points.Append(p.Month.StartOf(date.Monthly), p)
	}
	return s
}

// at returns the prices of period. A month without observation carries the
// last known end of month price forward, as both its beginning and end price.
// ok is false when no price was ever observed up to period.
func (s *priceSeries) at(period date.Range) (bom, eom decimal.Decimal, filled, ok bool) {
	if p, found := s.points.Get(period.From); found {
		return p.BOM, p.EOM, false, true
	}
	p, found := s.points.ValueAsOf(period.From)
	if !found {
		return decimal.Zero, decimal.Zero, false, false
	}
	return p.EOM, p.EOM, true, true
}

// latest returns the first day of the last month with a price.
func (s *priceSeries) latest() date.Date {
	on, _ := s.points.Latest()
	return on
}
