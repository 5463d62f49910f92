package cmd

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/returns/date"
	"github.com/etnz/returns/store"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const activity = `"Activity Date","Process Date","Settle Date","Instrument","Description","Trans Code","Quantity","Price","Amount"
"03/01/24","03/01/24","03/01/24","","ACH Deposit","ACH","","","$5,000.00"
"3/15/2024","3/15/2024","3/19/2024","AAPL","Apple","Buy","10","$170.00","($1,700.00)"
`

func TestParseThrough(t *testing.T) {
	tests := []struct {
		in      string
		want    date.Date
		wantErr bool
	}{
		{"", date.Date{}, false},
		{"2024-06-30", date.New(2024, 6, 30), false},
		{"30/06/2024", date.Date{}, true},
	}
	for _, tt := range tests {
		got, err := parseThrough(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseThrough(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseThrough(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// execute runs c with args in a fresh environment backed by db.
func execute(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	require.NoError(t, f.Parse(args))
	return c.Execute(context.Background(), f)
}

func TestImportCmd(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	db := filepath.Join(dir, "returns.db")
	t.Setenv("MDR_DB", db)
	t.Setenv("MDR_LOG_LEVEL", "error")

	csv := filepath.Join(dir, "activity.csv")
	require.NoError(t, os.WriteFile(csv, []byte(activity), 0644))

	assert.Equal(t, subcommands.ExitUsageError, execute(t, &importCmd{}))
	assert.Equal(t, subcommands.ExitSuccess, execute(t, &importCmd{}, csv))
	// a second import of the same file adds nothing
	assert.Equal(t, subcommands.ExitSuccess, execute(t, &importCmd{}, csv))

	s, err := store.Open(context.Background(), db, zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()
	txs, err := s.Transactions(context.Background())
	require.NoError(t, err)
	assert.Len(t, txs, 2)

	txs, _, err = s.Inputs(context.Background())
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "AAPL", txs[0].Instrument)
}

func TestWcfCmdRequiresInstrument(t *testing.T) {
	assert.Equal(t, subcommands.ExitUsageError, execute(t, &wcfCmd{}))
}

func TestUnknownProvider(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MDR_DB", filepath.Join(t.TempDir(), "returns.db"))
	t.Setenv("MDR_LOG_LEVEL", "error")
	assert.Equal(t, subcommands.ExitUsageError, execute(t, &fetchCmd{}, "-provider", "bloomberg"))
}
