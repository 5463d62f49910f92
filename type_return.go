package returns

import (
	"bytes"

	"github.com/shopspring/decimal"
)

// Return is a rate of return expressed as a decimal fraction (0.05 is 5%).
//
// The zero value is the undefined return: a period whose average capital was
// zero, or a horizon with no period at all. Undefined returns are neutral
// when compounded.
type Return struct {
	value decimal.Decimal
	valid bool
}

// Undefined is the undefined Return.
var Undefined = Return{}

// R returns a defined Return of the given value.
func R[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Return {
	return Return{value: newDecimal(value), valid: true}
}

// Valid reports whether the return is defined.
func (r Return) Valid() bool { return r.valid }

// Decimal returns the value of a defined return, or zero.
func (r Return) Decimal() decimal.Decimal {
	if !r.valid {
		return decimal.Zero
	}
	return r.value
}

// Float64 returns the value as a float, zero when undefined.
func (r Return) Float64() float64 { return r.Decimal().InexactFloat64() }

// Factor returns 1+r, or 1 when r is undefined.
func (r Return) Factor() decimal.Decimal { return one.Add(r.Decimal()) }

// Link compounds r then s: (1+r)(1+s)-1. Undefined operands are identities,
// the result is undefined only when both are.
func (r Return) Link(s Return) Return {
	if !r.valid {
		return s
	}
	if !s.valid {
		return r
	}
	return Return{value: r.Factor().Mul(s.Factor()).Sub(one), valid: true}
}

// Equal reports whether r and s are both undefined or both defined with the same value.
func (r Return) Equal(s Return) bool {
	if r.valid != s.valid {
		return false
	}
	return !r.valid || r.value.Equal(s.value)
}

// Round returns r rounded to places decimal places.
func (r Return) Round(places int32) Return {
	if !r.valid {
		return r
	}
	return Return{value: r.value.Round(places), valid: true}
}

// String formats the return as a percentage with two decimals, "N/A" when undefined.
func (r Return) String() string {
	if !r.valid {
		return "N/A"
	}
	return r.value.Shift(2).StringFixed(2) + "%"
}

// SignedString is like String with an explicit sign on positive values.
func (r Return) SignedString() string {
	if r.valid && r.value.IsPositive() {
		return "+" + r.String()
	}
	return r.String()
}

// MarshalJSON encodes a defined return as a JSON number and an undefined one as null.
func (r Return) MarshalJSON() ([]byte, error) {
	if !r.valid {
		return []byte("null"), nil
	}
	return []byte(r.value.String()), nil
}

// UnmarshalJSON accepts null, a JSON number or a quoted decimal.
func (r *Return) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*r = Undefined
		return nil
	}
	var v decimal.Decimal
	if err := v.UnmarshalJSON(data); err != nil {
		return err
	}
	*r = Return{value: v, valid: true}
	return nil
}
