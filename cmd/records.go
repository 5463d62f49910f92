package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/returns"
	"github.com/etnz/returns/renderer"
	"github.com/google/subcommands"
)

// recordsCmd prints the monthly records of an instrument or of the portfolio.
type recordsCmd struct {
	instrument string
	through    string
	json       bool
}

func (*recordsCmd) Name() string     { return "records" }
func (*recordsCmd) Synopsis() string { return "display monthly NAV, cash flow and return records" }
func (*recordsCmd) Usage() string {
	return `mdr records [-i <instrument>] [-through <date>] [-json]

  Displays one row per month: positions, prices, NAV, net cash flow,
  weighted cash flow, P&L and returns. Without -i, displays the
  consolidated portfolio.
`
}

func (c *recordsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.instrument, "i", "", "Instrument to display. Defaults to the whole portfolio.")
	f.StringVar(&c.through, "through", "", "Last day of the calendar. Defaults to the latest transaction or price.")
	f.BoolVar(&c.json, "json", false, "Print JSON instead of a table.")
}

func (c *recordsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	through, err := parseThrough(c.through)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	report, err := a.report(ctx, returns.Options{Through: through})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing returns: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.instrument == "" {
		if c.json {
			return exitStatus(printJSON(report.Portfolio))
		}
		printMarkdown(renderer.Portfolio(report, a.render()))
		return subcommands.ExitSuccess
	}

	ir, ok := report.Instrument(c.instrument)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown instrument %q\n", c.instrument)
		return subcommands.ExitFailure
	}
	if c.json {
		return exitStatus(printJSON(ir.Records))
	}
	printMarkdown(renderer.Records(ir, a.render()))
	return subcommands.ExitSuccess
}

// exitStatus maps an output error to an exit status.
func exitStatus(err error) subcommands.ExitStatus {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
