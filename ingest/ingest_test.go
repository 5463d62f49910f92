package ingest

import (
	"strings"
	"testing"

	"github.com/etnz/returns"
	"github.com/etnz/returns/date"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const export = `"Activity Date","Process Date","Settle Date","Instrument","Description","Trans Code","Quantity","Price","Amount"
"3/15/2024","3/15/2024","3/19/2024","AAPL","Apple
CUSIP: 037833100","Sell","2","$180.00","$360.00"
"3/15/2024","3/15/2024","3/19/2024","AAPL","Apple","Buy","10","$170.00","($1,700.00)"
"03/01/24","03/01/24","03/01/24","","ACH Deposit","ACH","","","$5,000.00"
"03/20/24","03/20/24","03/20/24","AAPL","Cash Div: R/D 2024-03-10","CDIV","","","$2.40"
"03/21/24","03/21/24","03/21/24","NVDA","Stock split","SPL","9S","",""
"03/22/24","03/22/24","03/22/24","","Gold fee","GOLD","","","($5.00)"
"not a date","","","AAPL","","Buy","1","$1","($1.00)"
"03/23/24","03/23/24","03/23/24","MSFT","Missing amount","Buy","1","$1",""
"","","","","","","","",""
"The data provided is for informational purposes only."
`

func TestRead(t *testing.T) {
	res, err := Read(strings.NewReader(export), zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, 10, res.Rows)
	assert.Equal(t, 5, res.Dropped)
	require.Len(t, res.Transactions, 5)

	cash := res.Transactions[0]
	assert.Equal(t, CashInstrument, cash.Instrument)
	assert.Equal(t, date.New(2024, 3, 1), cash.Date)
	assert.True(t, cash.Quantity.IsZero())
	assert.True(t, cash.Amount.Equal(decimal.NewFromInt(5000)))

	// same day: the buy is processed before the sell
	buy, sell := res.Transactions[1], res.Transactions[2]
	assert.Equal(t, returns.Buy, buy.Type)
	assert.True(t, buy.Amount.Equal(decimal.NewFromInt(1700)), "buy amount = %v", buy.Amount)
	assert.True(t, buy.Quantity.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, returns.Sell, sell.Type)
	assert.True(t, sell.Amount.Equal(decimal.NewFromInt(-360)), "sell amount = %v", sell.Amount)
	assert.Equal(t, 1, sell.Seq)

	div := res.Transactions[3]
	assert.Equal(t, returns.Dividend, div.Type)
	assert.Equal(t, "CDIV", div.Code)
	assert.True(t, div.Amount.Equal(decimal.RequireFromString("2.40")))

	split := res.Transactions[4]
	assert.Equal(t, returns.Split, split.Type)
	assert.True(t, split.Quantity.Equal(decimal.NewFromInt(9)))
}

func TestReadReverseSplit(t *testing.T) {
	const rows = `Activity Date,Process Date,Settle Date,Instrument,Description,Trans Code,Quantity,Price,Amount
03/01/24,03/01/24,03/05/24,XYZ,Xyz,Buy,10,$100.00,"($1,000.00)"
03/20/24,03/20/24,03/20/24,XYZ,Reverse split,SPL,-5,,
`
	res, err := Read(strings.NewReader(rows), zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, res.Transactions, 2)

	buy, split := res.Transactions[0], res.Transactions[1]
	assert.True(t, buy.Quantity.Equal(decimal.NewFromInt(10)), "buy quantity = %v", buy.Quantity)
	assert.Equal(t, returns.Split, split.Type)
	assert.True(t, split.Quantity.Equal(decimal.NewFromInt(-5)), "split quantity = %v", split.Quantity)
	assert.True(t, split.ShareDelta().IsZero(), "a reverse split does not add shares")
}

func TestReadMissingColumn(t *testing.T) {
	_, err := Read(strings.NewReader("Date,Instrument,Amount\n"), zerolog.Nop())
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		in     string
		want   string
		wantOk bool
		err    bool
	}{
		{"($58.19)", "-58.19", true, false},
		{"$1,234.50", "1234.5", true, false},
		{"-3", "-3", true, false},
		{"", "0", false, false},
		{"  ", "0", false, false},
		{"abc", "0", false, true},
	}
	for _, tc := range testCases {
		got, ok, err := ParseAmount(tc.in)
		if (err != nil) != tc.err {
			t.Errorf("ParseAmount(%q) error = %v, want error %v", tc.in, err, tc.err)
			continue
		}
		if ok != tc.wantOk || !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Errorf("ParseAmount(%q) = %v, %v, want %v, %v", tc.in, got, ok, tc.want, tc.wantOk)
		}
	}
}

func TestTradable(t *testing.T) {
	for _, name := range []string{"CASH", "GOLD", "DFEE", "DTAX", "OCA", ""} {
		assert.False(t, Tradable(name), name)
	}
	assert.True(t, Tradable("AAPL"))
}
