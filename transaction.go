package returns

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/returns/date"
	"github.com/shopspring/decimal"
)

// EventType classifies a transaction for position and cash-flow purposes.
type EventType int

const (
	Other EventType = iota
	Buy
	Sell
	Dividend
	Split
)

func (e EventType) String() string {
	switch e {
	case Buy:
		return "Buy"
	case Sell:
		return "Sell"
	case Dividend:
		return "Dividend"
	case Split:
		return "Split"
	default:
		return "Other"
	}
}

// ParseEventType parses the name of an event type, case insensitively.
// Unknown names are Other.
func ParseEventType(s string) EventType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy":
		return Buy
	case "sell":
		return Sell
	case "dividend":
		return Dividend
	case "split":
		return Split
	default:
		return Other
	}
}

func (e EventType) MarshalJSON() ([]byte, error) { return json.Marshal(e.String()) }

func (e *EventType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*e = ParseEventType(s)
	return nil
}

// Transaction is a single signed, dated cash-flow event on an instrument.
//
// Amount is positive when money goes into the position (a purchase) and
// negative when it comes out of it (a sale). Dividends are recorded with the
// sign the broker reports.
type Transaction struct {
	Date       date.Date       `json:"date"`
	Instrument string          `json:"instrument"`
	Type       EventType       `json:"type"`
	Code       string          `json:"code,omitempty"` // raw broker code
	Quantity   decimal.Decimal `json:"quantity"`
	Amount     decimal.Decimal `json:"amount"`
	Seq        int             `json:"seq"` // position in the source
}

// Validate checks that the fields required by the engine are present.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.Instrument) == "" {
		return fmt.Errorf("%w: transaction #%d has no instrument", ErrMalformedTransaction, t.Seq)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("%w: transaction #%d on %q has no date", ErrMalformedTransaction, t.Seq, t.Instrument)
	}
	return nil
}

// ShareDelta returns the change in shares held caused by t.
func (t Transaction) ShareDelta() decimal.Decimal {
	switch t.Type {
	case Buy:
		return t.Quantity
	case Sell:
		return t.Quantity.Neg()
	case Split:
		if t.Quantity.IsPositive() {
			return t.Quantity
		}
	}
	return decimal.Zero
}

// Priority returns the processing rank of a broker transaction code within a day:
// openings first, then closings, then expirations, then everything else.
func Priority(code string) int {
	switch code {
	case "Buy", "BTO", "STO":
		return 0
	case "Sell", "STC", "BTC":
		return 1
	case "OEXP":
		return 2
	default:
		return 3
	}
}

func (t Transaction) priority() int {
	if t.Code != "" {
		return Priority(t.Code)
	}
	switch t.Type {
	case Buy:
		return 0
	case Sell:
		return 1
	default:
		return 3
	}
}

// SortTransactions sorts txs in processing order: by date, then priority, then source order.
func SortTransactions(txs []Transaction) {
	slices.SortStableFunc(txs, func(a, b Transaction) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		if c := cmp.Compare(a.priority(), b.priority()); c != 0 {
			return c
		}
		return cmp.Compare(a.Seq, b.Seq)
	})
}
