package returns

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestLinkLTD(t *testing.T) {
	got := LinkLTD([]Return{R(dec("0.05")), R(dec("0.03"))})
	if want := R(dec("0.0815")); !got[1].Equal(want) {
		t.Errorf("LinkLTD(0.05, 0.03) = %v, want %v", got[1], want)
	}
	if want := R(dec("0.05")); !got[0].Equal(want) {
		t.Errorf("LinkLTD(0.05, 0.03)[0] = %v, want %v", got[0], want)
	}
}

func TestLinkLTDUndefinedIsNeutral(t *testing.T) {
	got := LinkLTD([]Return{Undefined, R(dec("0.1")), Undefined, R(dec("0.1"))})
	want := []Return{R(0), R(dec("0.1")), R(dec("0.1")), R(dec("0.21"))}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("LinkLTD()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLinkWithReset(t *testing.T) {
	testCases := []struct {
		name    string
		returns []Return
		shares  []int
		want    []Return
	}{
		{
			name:    "closed then reopened",
			returns: []Return{R(dec("0.10")), R(dec("0.05")), R(dec("0.08"))},
			shares:  []int{10, 0, 5},
			want:    []Return{R(dec("0.10")), R(0), R(dec("0.08"))},
		},
		{
			name:    "compounding",
			returns: []Return{R(dec("0.05")), R(dec("0.03"))},
			shares:  []int{1, 1},
			want:    []Return{R(dec("0.05")), R(dec("0.0815"))},
		},
		{
			name:    "undefined while flat stays at zero",
			returns: []Return{Undefined, Undefined, R(dec("0.02"))},
			shares:  []int{0, 3, 3},
			want:    []Return{R(0), R(0), R(dec("0.02"))},
		},
		{
			name:    "undefined while compounding keeps value",
			returns: []Return{R(dec("0.02")), Undefined, R(dec("0.01"))},
			shares:  []int{3, 3, 3},
			want:    []Return{R(dec("0.02")), R(dec("0.02")), R(dec("0.0302"))},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			shares := make([]decimal.Decimal, len(tc.shares))
			for i, s := range tc.shares {
				shares[i] = D(s)
			}
			got := LinkWithReset(tc.returns, shares)
			for i := range tc.want {
				if !got[i].Equal(tc.want[i]) {
					t.Errorf("LinkWithReset()[%d] = %v, want %v", i, got[i], tc.want[i])
				}
			}
		})
	}
}
