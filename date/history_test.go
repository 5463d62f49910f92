package date

import "testing"

func TestAppend(t *testing.T) {
	h := new(History[string])
	d1, v1 := New(2025, 07, 01), "25 Jul 1"
	d2, v2 := New(2024, 07, 01), "24 Jul 1"

	// Appending two values in reverse order and checking that everything is
	// as expected at every step of the way.

	if h.Len() != 0 {
		t.Errorf("History.Len() = %v want 0", h.Len())
	}

	h.Append(d1, v1)
	if h.Len() != 1 {
		t.Errorf("Append(d1, v1).Len() = %v want 1", h.Len())
	}

	h.Append(d2, v2)
	if h.Len() != 2 {
		t.Errorf("Append(d2, v2).Len() = %v want 2", h.Len())
	}

	if h.days[0] != d2 || h.days[1] != d1 {
		t.Errorf("history days = %v want [%v %v]", h.days, d2, d1)
	}
	if h.values[0] != v2 || h.values[1] != v1 {
		t.Errorf("history values = %v want [%v %v]", h.values, v2, v1)
	}

	h.Append(d1, "overwritten")
	if v, _ := h.Get(d1); v != "overwritten" || h.Len() != 2 {
		t.Errorf("Append(d1).Get(d1) = %q (len %d) want \"overwritten\" (len 2)", v, h.Len())
	}
}

func TestValueAsOf(t *testing.T) {
	h := new(History[int])
	h.Append(New(2024, 1, 31), 10).Append(New(2024, 3, 31), 30)

	testCases := []struct {
		on     Date
		want   int
		wantOk bool
	}{
		{New(2023, 12, 31), 0, false},
		{New(2024, 1, 31), 10, true},
		{New(2024, 2, 29), 10, true},
		{New(2024, 3, 31), 30, true},
		{New(2025, 1, 1), 30, true},
	}
	for _, tc := range testCases {
		got, ok := h.ValueAsOf(tc.on)
		if got != tc.want || ok != tc.wantOk {
			t.Errorf("ValueAsOf(%v) = %v, %v want %v, %v", tc.on, got, ok, tc.want, tc.wantOk)
		}
	}

	first, _ := h.First()
	last, _ := h.Latest()
	if first != New(2024, 1, 31) || last != New(2024, 3, 31) {
		t.Errorf("First(), Latest() = %v, %v", first, last)
	}
}
