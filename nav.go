package returns

import (
	"github.com/etnz/returns/date"
	"github.com/shopspring/decimal"
)

// PeriodRecord is the monthly performance record of an instrument.
type PeriodRecord struct {
	Instrument     string          `json:"instrument"`
	Start          date.Date       `json:"period_start"`
	End            date.Date       `json:"period_end"`
	DayCount       int             `json:"day_count"`
	SharesBOM      decimal.Decimal `json:"shares_bom"`
	SharesEOM      decimal.Decimal `json:"shares_eom"`
	PriceBOM       decimal.Decimal `json:"price_bom"`
	PriceEOM       decimal.Decimal `json:"price_eom"`
	PriceFilled    bool            `json:"price_filled,omitempty"`
	NavBOM         decimal.Decimal `json:"nav_bom"`
	NavEOM         decimal.Decimal `json:"nav_eom"`
	NetCashFlow    decimal.Decimal `json:"net_cash_flow"`
	WCF            decimal.Decimal `json:"wcf"`
	AverageCapital decimal.Decimal `json:"average_capital"`
	PnL            decimal.Decimal `json:"pnl"`
	RealizedPnL    decimal.Decimal `json:"realized_pnl"`
	UnrealizedPnL  decimal.Decimal `json:"unrealized_pnl"`
	Return         Return          `json:"return"`
	LinkedReturn   Return          `json:"linked_return"` // reset when the position goes flat
	LTDReturn      Return          `json:"ltd_return"`
}

// Period returns the calendar month of the record.
func (r PeriodRecord) Period() date.Range { return date.Range{From: r.Start, To: r.End} }

// bridge values pos at the given prices and reconciles it with the period
// flows in txs.
func bridge(instrument string, pos Position, priceBOM, priceEOM decimal.Decimal, txs []Transaction) PeriodRecord {
	r := PeriodRecord{
		Instrument:  instrument,
		Start:       pos.Period.From,
		End:         pos.Period.To,
		DayCount:    pos.Period.Days(),
		SharesBOM:   pos.BOM,
		SharesEOM:   pos.EOM,
		PriceBOM:    priceBOM,
		PriceEOM:    priceEOM,
		NavBOM:      pos.BOM.Mul(priceBOM),
		NavEOM:      pos.EOM.Mul(priceEOM),
		NetCashFlow: decimal.Zero,
		RealizedPnL: decimal.Zero,
	}
	for _, tx := range txs {
		switch tx.Type {
		case Buy, Sell:
			r.NetCashFlow = r.NetCashFlow.Add(tx.Amount)
		case Dividend:
			r.RealizedPnL = r.RealizedPnL.Add(tx.Amount)
		}
	}
	r.WCF = WCF(pos.Period, txs)
	r.AverageCapital = AverageCapital(r.NavBOM, r.WCF)
	r.PnL = PnL(r.NavBOM, r.NavEOM, r.NetCashFlow)
	r.UnrealizedPnL = r.PnL
	r.Return = ModifiedDietz(r.NavBOM, r.NavEOM, r.NetCashFlow, r.WCF)
	return r
}
