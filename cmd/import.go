package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/returns/ingest"
	"github.com/google/subcommands"
)

// importCmd loads broker activity CSV files into the database.
type importCmd struct {
	source string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import broker activity from CSV files" }
func (*importCmd) Usage() string {
	return `mdr import [-source <name>] <file.csv>...

  Normalizes broker activity rows and appends them to the database.
  Rows already imported from the same source are skipped.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.source, "source", "", "Source name recorded with the rows. Defaults to the file base name.")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one CSV file is required")
		return subcommands.ExitUsageError
	}
	if c.source != "" && f.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Error: -source can only be used with a single file")
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	for _, name := range f.Args() {
		source := c.source
		if source == "" {
			source = filepath.Base(name)
		}
		if err := c.importFile(ctx, a, name, source); err != nil {
			fmt.Fprintf(os.Stderr, "Error importing %q: %v\n", name, err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

func (c *importCmd) importFile(ctx context.Context, a *app, name, source string) error {
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()

	res, err := ingest.Read(file, a.log)
	if err != nil {
		return err
	}
	n, err := a.store.AddTransactions(ctx, source, res.Transactions)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d rows read, %d dropped, %d new transactions\n", name, res.Rows, res.Dropped, n)
	return nil
}
