package returns

import "github.com/shopspring/decimal"

// AverageCapital is the capital at work during a period: nav_bom + WCF.
func AverageCapital(navBOM, wcf decimal.Decimal) decimal.Decimal { return navBOM.Add(wcf) }

// PnL is the gain of a period net of flows: nav_eom - nav_bom - net_cash_flow.
func PnL(navBOM, navEOM, netCashFlow decimal.Decimal) decimal.Decimal {
	return navEOM.Sub(navBOM).Sub(netCashFlow)
}

// ModifiedDietz returns the Modified Dietz return of a period:
//
//	(nav_eom - nav_bom - net_cash_flow) / (nav_bom + wcf)
//
// The return is Undefined when the average capital is zero.
func ModifiedDietz(navBOM, navEOM, netCashFlow, wcf decimal.Decimal) Return {
	capital := AverageCapital(navBOM, wcf)
	if capital.IsZero() {
		return Undefined
	}
	return R(PnL(navBOM, navEOM, netCashFlow).Div(capital))
}
