package returns

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// monthsPerYear annualizes monthly statistics.
const monthsPerYear = 12

// Risk summarizes the dispersion of the monthly returns of an entity.
type Risk struct {
	Months               int      `json:"months"`
	AnnualizedReturn     float64  `json:"annualized_return"`
	AnnualizedVolatility float64  `json:"annualized_volatility"`
	Sharpe               *float64 `json:"sharpe"` // nil when volatility is zero or unknown
}

// NewRisk computes risk statistics over the defined returns of points.
//
// The annualized return is the mean monthly return times 12, the annualized
// volatility the sample standard deviation times √12, and the Sharpe ratio
// their quotient (with a zero risk free rate). At least two returns are
// needed for a volatility.
func NewRisk(points []Point) Risk {
	values := make([]float64, 0, len(points))
	for _, p := range points {
		if p.Return.Valid() {
			values = append(values, p.Return.Float64())
		}
	}
	r := Risk{Months: len(values)}
	if len(values) == 0 {
		return r
	}
	r.AnnualizedReturn = stat.Mean(values, nil) * monthsPerYear
	if len(values) < 2 {
		return r
	}
	r.AnnualizedVolatility = stat.StdDev(values, nil) * math.Sqrt(monthsPerYear)
	if r.AnnualizedVolatility > 0 {
		sharpe := r.AnnualizedReturn / r.AnnualizedVolatility
		r.Sharpe = &sharpe
	}
	return r
}
