package returns

import "github.com/shopspring/decimal"

// LinkLTD chains returns geometrically since the first one:
// linked[n] = (1+linked[n-1])(1+r[n]) - 1.
//
// Undefined returns are neutral. The result is always defined, starting from zero.
func LinkLTD(returns []Return) []Return {
	linked := make([]Return, len(returns))
	acc := R(0)
	for i, r := range returns {
		acc = acc.Link(r)
		linked[i] = acc
	}
	return linked
}

// LinkWithReset chains returns geometrically, restarting from zero whenever
// the position is closed at the end of a period.
//
// sharesEOM[i] is the position held at the end of period i. A period ending
// flat yields 0. The next period with a defined return and an open position
// restarts the chain from its own return. While compounding, an undefined
// return keeps the chain value unchanged.
func LinkWithReset(returns []Return, sharesEOM []decimal.Decimal) []Return {
	linked := make([]Return, len(returns))
	compounding := false
	acc := R(0)
	for i, r := range returns {
		switch {
		case sharesEOM[i].IsZero():
			compounding, acc = false, R(0)
		case !compounding && r.Valid():
			compounding, acc = true, r
		case compounding:
			acc = acc.Link(r)
		}
		linked[i] = acc
	}
	return linked
}
