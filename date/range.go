package date

import (
	"fmt"
	"iter"
)

// Range represents a range of dates, boundaries included.
type Range struct{ From, To Date }

// NewRange creates a new date range. If 'from' is after 'to', they are swapped.
func NewRange(from, to Date) Range {
	if from.After(to) {
		from, to = to, from
	}
	return Range{From: from, To: to}
}

// Month returns the calendar month containing d.
func Month(d Date) Range { return Range{From: d.StartOf(Monthly), To: d.EndOf(Monthly)} }

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// Days returns the number of days in the range, both ends counted.
func (r Range) Days() int { return r.To.Sub(r.From) + 1 }

// Months returns an iterator that yields each calendar month that contains at
// least one day of r, in chronological order.
func (r Range) Months() iter.Seq[Range] {
	return func(yield func(Range) bool) {
		for current := r.From; !current.After(r.To); {
			m := Month(current)
			if !yield(m) {
				return
			}
			current = m.To.Add(1)
		}
	}
}

// Identifier compute a unique identifier for the Range.
// Calendar months are named "2006-01".
func (r Range) Identifier() string {
	if r.From.Day() == 1 && r.From.EndOf(Monthly) == r.To {
		return r.From.Format("2006-01")
	}
	return fmt.Sprintf("%s_%s", r.From, r.To)
}

func (r Range) String() string { return r.Identifier() }
