package returns

import (
	"github.com/etnz/returns/date"
	"github.com/shopspring/decimal"
)

// Weight returns the fraction of period during which a flow dated on was
// invested: (T - t + 1) / T where T is the number of days in the period and t
// the 1-based day of the flow within it.
//
// A flow on the first day weighs 1, one on the last day weighs 1/T.
func Weight(period date.Range, on date.Date) decimal.Decimal {
	T := int64(period.Days())
	t := int64(on.Sub(period.From) + 1)
	return decimal.NewFromInt(T - t + 1).Div(decimal.NewFromInt(T))
}

// WeightedFlow details the contribution of one transaction to the weighted cash flow.
type WeightedFlow struct {
	Instrument   string          `json:"instrument"`
	Period       date.Range      `json:"-"`
	Date         date.Date       `json:"date"`
	Type         EventType       `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	DayCount     int             `json:"day_count"`
	Day          int             `json:"day"`
	Weight       decimal.Decimal `json:"weight"`
	Contribution decimal.Decimal `json:"contribution"`
}

// WeightedFlows returns the weighted contribution of each transaction of txs to period.
// Transactions dated outside of period are ignored.
func WeightedFlows(period date.Range, txs []Transaction) []WeightedFlow {
	flows := make([]WeightedFlow, 0, len(txs))
	for _, tx := range txs {
		if !period.Contains(tx.Date) {
			continue
		}
		w := Weight(period, tx.Date)
		flows = append(flows, WeightedFlow{
			Instrument:   tx.Instrument,
			Period:       period,
			Date:         tx.Date,
			Type:         tx.Type,
			Amount:       tx.Amount,
			DayCount:     period.Days(),
			Day:          tx.Date.Sub(period.From) + 1,
			Weight:       w,
			Contribution: w.Mul(tx.Amount),
		})
	}
	return flows
}

// WCF returns the weighted cash flow of txs over period.
// Every transaction counts, dividends included.
func WCF(period date.Range, txs []Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, f := range WeightedFlows(period, txs) {
		sum = sum.Add(f.Contribution)
	}
	return sum
}
