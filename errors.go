package returns

import (
	"errors"
	"fmt"

	"github.com/etnz/returns/date"
)

var (
	// ErrMissingPrice reports a period with no price observed on or before it.
	ErrMissingPrice = errors.New("missing price")
	// ErrUndefinedReturn reports a period whose average capital is zero.
	ErrUndefinedReturn = errors.New("undefined return")
	// ErrMalformedTransaction reports a transaction lacking a required field.
	ErrMalformedTransaction = errors.New("malformed transaction")
	// ErrEmptySeries reports an entity with no period to aggregate.
	ErrEmptySeries = errors.New("empty series")
)

// Diagnostic is a non fatal condition met while computing a report.
type Diagnostic struct {
	Instrument string     `json:"instrument,omitempty"`
	Period     date.Range `json:"-"`
	Err        error      `json:"-"`
}

func (d Diagnostic) Error() string {
	switch {
	case d.Period.From.IsZero():
		return fmt.Sprintf("%s: %v", d.Instrument, d.Err)
	default:
		return fmt.Sprintf("%s %s: %v", d.Instrument, d.Period.Identifier(), d.Err)
	}
}

func (d Diagnostic) Unwrap() error { return d.Err }
