package returns

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/etnz/returns/date"
)

func TestSortTransactions(t *testing.T) {
	day := date.New(2024, 5, 2)
	txs := []Transaction{
		{Seq: 0, Date: day, Instrument: "X", Code: "OEXP", Type: Other},
		{Seq: 1, Date: day, Instrument: "X", Code: "STC", Type: Other},
		{Seq: 2, Date: day.Add(-1), Instrument: "X", Code: "CDIV", Type: Dividend},
		{Seq: 3, Date: day, Instrument: "X", Code: "BTO", Type: Other},
		{Seq: 4, Date: day, Instrument: "X", Code: "Sell", Type: Sell},
		{Seq: 5, Date: day, Instrument: "X", Code: "ACH", Type: Other},
		{Seq: 6, Date: day, Instrument: "X", Code: "Buy", Type: Buy},
		{Seq: 7, Date: day, Instrument: "X", Type: Buy},
	}
	SortTransactions(txs)

	want := []int{2, 3, 6, 7, 1, 4, 0, 5}
	for i, w := range want {
		if txs[i].Seq != w {
			var got []int
			for _, tx := range txs {
				got = append(got, tx.Seq)
			}
			t.Fatalf("SortTransactions() order = %v, want %v", got, want)
		}
	}
}

func TestPriority(t *testing.T) {
	testCases := map[string]int{"Buy": 0, "BTO": 0, "STO": 0, "Sell": 1, "STC": 1, "BTC": 1, "OEXP": 2, "CDIV": 3, "": 3}
	for code, want := range testCases {
		if got := Priority(code); got != want {
			t.Errorf("Priority(%q) = %d, want %d", code, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := (Transaction{Instrument: "AAA", Date: date.New(2024, 1, 1)}).Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
	if err := (Transaction{Date: date.New(2024, 1, 1)}).Validate(); !errors.Is(err, ErrMalformedTransaction) {
		t.Errorf("Validate() without instrument = %v, want %v", err, ErrMalformedTransaction)
	}
	if err := (Transaction{Instrument: "AAA"}).Validate(); !errors.Is(err, ErrMalformedTransaction) {
		t.Errorf("Validate() without date = %v, want %v", err, ErrMalformedTransaction)
	}
}

func TestEventTypeJSON(t *testing.T) {
	tx := Transaction{Date: date.New(2024, 1, 2), Instrument: "AAA", Type: Dividend, Amount: D(3)}
	data, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("json.Marshal() unexpected error: %v", err)
	}
	var back Transaction
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("json.Unmarshal() unexpected error: %v", err)
	}
	if back.Type != Dividend || back.Date != tx.Date || !back.Amount.Equal(tx.Amount) {
		t.Errorf("json round trip = %+v, want %+v", back, tx)
	}
}
