package returns

import (
	"github.com/etnz/returns/date"
	"github.com/shopspring/decimal"
)

// Position is the number of shares held at the beginning and end of a period.
type Position struct {
	Period date.Range
	BOM    decimal.Decimal
	EOM    decimal.Decimal
}

// TrackPositions folds txs (sorted in processing order) over periods and
// returns the position held in each of them.
//
// The position at the beginning of a period is the one at the end of the
// previous period, zero for the first one. Transactions dated before the
// first period are ignored.
func TrackPositions(periods []date.Range, txs []Transaction) []Position {
	positions := make([]Position, 0, len(periods))
	shares := decimal.Zero
	rest := txs
	for _, p := range periods {
		var in []Transaction
		in, rest = inPeriod(rest, p)
		pos := Position{Period: p, BOM: shares}
		for _, tx := range in {
			shares = shares.Add(tx.ShareDelta())
		}
		pos.EOM = shares
		positions = append(positions, pos)
	}
	return positions
}
