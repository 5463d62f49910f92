package returns

import (
	"fmt"
	"strings"

	"github.com/etnz/returns/date"
)

// Horizon is a trailing window of periods ending with the latest one.
type Horizon int

const (
	MTD Horizon = iota // month to date
	QTD                // quarter to date
	YTD                // year to date
	TTM                // trailing twelve months
	T2Y                // trailing two years
	LTD                // life to date
)

// Horizons lists every horizon in display order.
var Horizons = []Horizon{MTD, QTD, YTD, TTM, T2Y, LTD}

func (h Horizon) String() string {
	switch h {
	case MTD:
		return "MTD"
	case QTD:
		return "QTD"
	case YTD:
		return "YTD"
	case TTM:
		return "TTM"
	case T2Y:
		return "T2Y"
	case LTD:
		return "LTD"
	default:
		panic(fmt.Sprintf("unknown horizon %d", h))
	}
}

// ParseHorizon parses a horizon name, case insensitively.
func ParseHorizon(s string) (Horizon, error) {
	for _, h := range Horizons {
		if strings.EqualFold(s, h.String()) {
			return h, nil
		}
	}
	return MTD, fmt.Errorf("unknown horizon %q", s)
}

// Includes reports whether the period ending on end belongs to h, given the
// end of the latest period.
func (h Horizon) Includes(latest, end date.Date) bool {
	switch h {
	case MTD:
		return !end.Before(latest.StartOf(date.Monthly))
	case QTD:
		return !end.Before(latest.StartOf(date.Quarterly))
	case YTD:
		return !end.Before(latest.StartOf(date.Yearly))
	case TTM:
		return end.After(latest.AddMonths(-12))
	case T2Y:
		return end.After(latest.AddMonths(-24))
	default:
		return true
	}
}

// Point is the return of an entity over the period ending on End.
type Point struct {
	End    date.Date
	Return Return
}

// Compound returns Π(1+r) - 1 over the points selected by h.
// Undefined returns are neutral; the result is Undefined when no point is selected.
func Compound(points []Point, h Horizon) Return {
	if len(points) == 0 {
		return Undefined
	}
	latest := points[0].End
	for _, p := range points[1:] {
		if p.End.After(latest) {
			latest = p.End
		}
	}
	acc, selected := R(0), false
	for _, p := range points {
		if !h.Includes(latest, p.End) {
			continue
		}
		acc, selected = acc.Link(p.Return), true
	}
	if !selected {
		return Undefined
	}
	return acc
}

// Row is the horizon summary of one entity, an instrument or the portfolio.
type Row struct {
	Instrument string `json:"instrument"`
	Portfolio  bool   `json:"portfolio,omitempty"`
	MTD        Return `json:"mtd"`
	QTD        Return `json:"qtd"`
	YTD        Return `json:"ytd"`
	TTM        Return `json:"ttm"`
	T2Y        Return `json:"t2y"`
	LTD        Return `json:"ltd"`
	Risk       Risk   `json:"risk"`
}

// Return returns the row value for h.
func (r Row) Return(h Horizon) Return {
	switch h {
	case MTD:
		return r.MTD
	case QTD:
		return r.QTD
	case YTD:
		return r.YTD
	case TTM:
		return r.TTM
	case T2Y:
		return r.T2Y
	default:
		return r.LTD
	}
}

// Empty reports whether every horizon of the row is undefined.
func (r Row) Empty() bool {
	for _, h := range Horizons {
		if r.Return(h).Valid() {
			return false
		}
	}
	return true
}

// Summarize compounds points over every horizon.
// An empty series yields a row where every horizon is Undefined.
func Summarize(name string, points []Point) Row {
	return Row{
		Instrument: name,
		MTD:        Compound(points, MTD),
		QTD:        Compound(points, QTD),
		YTD:        Compound(points, YTD),
		TTM:        Compound(points, TTM),
		T2Y:        Compound(points, T2Y),
		LTD:        Compound(points, LTD),
		Risk:       NewRisk(points),
	}
}
