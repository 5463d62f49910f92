// Package ingest normalizes broker activity exports into engine transactions.
//
// The expected layout is the Robinhood account activity CSV:
//
//	Activity Date,Process Date,Settle Date,Instrument,Description,Trans Code,Quantity,Price,Amount
//
// Money columns use the accounting notation ("$1,000.00", "($58.19)").
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/etnz/returns"
	"github.com/etnz/returns/date"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// CashInstrument holds transfers in and out of the account.
const CashInstrument = "CASH"

// placeholders are pseudo instruments that never have a market price.
var placeholders = []string{CashInstrument, "DFEE", "DTAX", "GOLD", "OCA"}

// Tradable reports whether instrument is a real, priced instrument.
func Tradable(instrument string) bool {
	return instrument != "" && !slices.Contains(placeholders, instrument)
}

// dateLayouts are tried in order on date columns.
var dateLayouts = []string{"01/02/06", "01/02/2006", "1/2/06", "1/2/2006"}

// codes maps broker transaction codes to event types. Unknown codes are Other.
var codes = map[string]returns.EventType{
	"Buy":  returns.Buy,
	"Sell": returns.Sell,
	"CDIV": returns.Dividend,
	"SPL":  returns.Split,
}

// Descriptions of the broker codes, for display.
var Descriptions = map[string]string{
	"ACH":  "ACH",
	"BTC":  "Buy to Close",
	"BTO":  "Buy to Open",
	"Buy":  "Buy",
	"CDIV": "Dividend",
	"DFEE": "Fee",
	"DTAX": "Tax",
	"GOLD": "Gold Fee",
	"OCA":  "OCA",
	"OEXP": "Option Expiration",
	"REC":  "Received",
	"Sell": "Sell",
	"SPL":  "Split",
	"STC":  "Sell to Close",
	"STO":  "Sell to Open",
}

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("missing column")

var required = []string{"activity date", "instrument", "trans code", "quantity", "amount"}

// Result is the outcome of reading an export.
type Result struct {
	Transactions []returns.Transaction
	Rows         int // data rows read
	Dropped      int // rows that could not be normalized
}

// Read parses a broker export.
//
// Malformed rows are dropped with a warning and counted. The transactions
// are returned in processing order (see returns.SortTransactions).
func Read(r io.Reader, log zerolog.Logger) (*Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	columns := make(map[string]int)
	for i, h := range header {
		columns[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingColumn, name)
		}
	}

	res := new(Result)
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", res.Rows+1, err)
		}
		res.Rows++
		get := func(name string) string {
			i, ok := columns[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		tx, err := normalize(get)
		if err != nil {
			log.Warn().Err(err).Int("row", res.Rows).Msg("dropping row")
			res.Dropped++
			continue
		}
		tx.Seq = res.Rows
		res.Transactions = append(res.Transactions, tx)
	}

	returns.SortTransactions(res.Transactions)
	log.Info().Int("rows", res.Rows).Int("transactions", len(res.Transactions)).Int("dropped", res.Dropped).Msg("export read")
	return res, nil
}

// normalize converts a row into a transaction.
func normalize(get func(string) string) (returns.Transaction, error) {
	var tx returns.Transaction

	on, err := date.ParseLayout(get("activity date"), dateLayouts...)
	if err != nil {
		return tx, err
	}
	code := get("trans code")
	amount, hasAmount, err := ParseAmount(get("amount"))
	if err != nil {
		return tx, err
	}
	quantity, hasQuantity, err := ParseAmount(get("quantity"))
	if err != nil {
		return tx, err
	}

	tx = returns.Transaction{
		Date:       on,
		Instrument: get("instrument"),
		Type:       codes[code],
		Code:       code,
		Quantity:   quantity,
		Amount:     amount,
	}

	switch {
	case code == "ACH":
		tx.Instrument, tx.Quantity = CashInstrument, decimal.Zero
	case tx.Instrument == "":
		return tx, fmt.Errorf("%s on %v has no instrument", code, on)
	}

	switch tx.Type {
	case returns.Buy, returns.Sell:
		if !hasAmount || !hasQuantity {
			return tx, fmt.Errorf("%s %s on %v lacks amount or quantity", code, tx.Instrument, on)
		}
		// money into the position is positive
		tx.Quantity, tx.Amount = quantity.Abs(), amount.Abs()
		if tx.Type == returns.Sell {
			tx.Amount = tx.Amount.Neg()
		}
	}
	return tx, nil
}

// ParseAmount parses an accounting formatted number: "$" and "," are
// ignored and parentheses denote a negative value. An empty string is
// reported as absent, not as an error.
func ParseAmount(s string) (d decimal.Decimal, ok bool, err error) {
	s = strings.TrimSpace(strings.NewReplacer("$", "", ",", "").Replace(s))
	if s == "" {
		return decimal.Zero, false, nil
	}
	negative := strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
	if negative {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	// split quantities are sometimes suffixed with S
	s = strings.TrimSuffix(s, "S")
	d, err = decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if negative {
		d = d.Neg()
	}
	return d, true, nil
}
