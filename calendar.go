package returns

import "github.com/etnz/returns/date"

// Calendar returns every calendar month from the month of from to the month
// of to, both included, in order and without gaps.
func Calendar(from, to date.Date) []date.Range {
	var periods []date.Range
	for m := range date.NewRange(from, to).Months() {
		periods = append(periods, m)
	}
	return periods
}

// inPeriod returns the prefix of txs (sorted by date) dated within period and the rest.
// Transactions before the period are skipped.
func inPeriod(txs []Transaction, period date.Range) (in, rest []Transaction) {
	for len(txs) > 0 && txs[0].Date.Before(period.From) {
		txs = txs[1:]
	}
	i := 0
	for i < len(txs) && !txs[i].Date.After(period.To) {
		i++
	}
	return txs[:i], txs[i:]
}
