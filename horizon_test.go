package returns

import (
	"testing"

	"github.com/etnz/returns/date"
)

// monthly returns a point per month ending on the month of last, oldest first.
func monthly(last date.Date, values ...Return) []Point {
	points := make([]Point, len(values))
	for i, v := range values {
		end := last.AddMonths(i - len(values) + 1).EndOf(date.Monthly)
		points[i] = Point{End: end, Return: v}
	}
	return points
}

func TestHorizonIncludes(t *testing.T) {
	latest := date.New(2024, 11, 30)
	testCases := []struct {
		h    Horizon
		end  date.Date
		want bool
	}{
		{MTD, date.New(2024, 11, 30), true},
		{MTD, date.New(2024, 10, 31), false},
		{QTD, date.New(2024, 10, 31), true},
		{QTD, date.New(2024, 9, 30), false},
		{YTD, date.New(2024, 1, 31), true},
		{YTD, date.New(2023, 12, 31), false},
		{TTM, date.New(2023, 12, 31), true},
		{TTM, date.New(2023, 11, 30), false},
		{T2Y, date.New(2022, 12, 31), true},
		{T2Y, date.New(2022, 11, 30), false},
		{LTD, date.New(1999, 1, 31), true},
	}
	for _, tc := range testCases {
		if got := tc.h.Includes(latest, tc.end); got != tc.want {
			t.Errorf("%v.Includes(%v, %v) = %v, want %v", tc.h, latest, tc.end, got, tc.want)
		}
	}
}

func TestCompoundQTDStartsAtQuarter(t *testing.T) {
	// Sep, Oct, Nov 2024: QTD must cover October and November only.
	points := monthly(date.New(2024, 11, 30), R(dec("0.5")), R(dec("0.1")), R(dec("0.1")))
	if got, want := Compound(points, QTD), R(dec("0.21")); !got.Equal(want) {
		t.Errorf("Compound(QTD) = %v, want %v", got, want)
	}
	if got, want := Compound(points, MTD), R(dec("0.1")); !got.Equal(want) {
		t.Errorf("Compound(MTD) = %v, want %v", got, want)
	}
	if got, want := Compound(points, LTD), R(dec("0.815")); !got.Equal(want) {
		t.Errorf("Compound(LTD) = %v, want %v", got, want)
	}
}

func TestCompoundTrailing(t *testing.T) {
	values := make([]Return, 30)
	for i := range values {
		values[i] = R(dec("0.01"))
	}
	points := monthly(date.New(2024, 2, 29), values...)

	counts := map[Horizon]int{}
	latest := points[len(points)-1].End
	for _, h := range Horizons {
		for _, p := range points {
			if h.Includes(latest, p.End) {
				counts[h]++
			}
		}
	}
	want := map[Horizon]int{MTD: 1, QTD: 2, YTD: 2, TTM: 12, T2Y: 24, LTD: 30}
	for h, n := range want {
		if counts[h] != n {
			t.Errorf("%v covers %d periods, want %d", h, counts[h], n)
		}
	}
}

func TestCompoundUndefined(t *testing.T) {
	if got := Compound(nil, LTD); got.Valid() {
		t.Errorf("Compound(nil) = %v, want undefined", got)
	}
	points := monthly(date.New(2024, 3, 31), R(dec("0.1")), Undefined, R(dec("0.1")))
	if got, want := Compound(points, LTD), R(dec("0.21")); !got.Equal(want) {
		t.Errorf("Compound(LTD) with undefined = %v, want %v", got, want)
	}
	if got, want := Compound(monthly(date.New(2024, 3, 31), Undefined), MTD), R(0); !got.Equal(want) {
		t.Errorf("Compound(MTD) of only undefined = %v, want %v", got, want)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	row := Summarize("AAA", nil)
	if !row.Empty() {
		t.Errorf("Summarize(nil) = %+v, want every horizon undefined", row)
	}
	for _, h := range Horizons {
		if got := row.Return(h).String(); got != "N/A" {
			t.Errorf("Summarize(nil).%v = %q, want N/A", h, got)
		}
	}
}

func TestParseHorizon(t *testing.T) {
	for _, h := range Horizons {
		got, err := ParseHorizon(h.String())
		if err != nil || got != h {
			t.Errorf("ParseHorizon(%q) = %v, %v", h, got, err)
		}
	}
	if _, err := ParseHorizon("WTD"); err == nil {
		t.Errorf("ParseHorizon(\"WTD\") expected an error")
	}
}
