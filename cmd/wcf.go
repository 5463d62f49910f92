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

// wcfCmd prints how each transaction of an instrument weighs in its month.
type wcfCmd struct {
	instrument string
	json       bool
}

func (*wcfCmd) Name() string     { return "wcf" }
func (*wcfCmd) Synopsis() string { return "display the weighted cash flow components of an instrument" }
func (*wcfCmd) Usage() string {
	return `mdr wcf -i <instrument> [-json]

  Displays every transaction with its day in the month, its weight
  (T - t + 1) / T and its contribution to the weighted cash flow.
`
}

func (c *wcfCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.instrument, "i", "", "Instrument to display.")
	f.BoolVar(&c.json, "json", false, "Print JSON instead of a table.")
}

func (c *wcfCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.instrument == "" {
		fmt.Fprintln(os.Stderr, "Error: -i is required")
		return subcommands.ExitUsageError
	}
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	report, err := a.report(ctx, returns.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing returns: %v\n", err)
		return subcommands.ExitFailure
	}
	ir, ok := report.Instrument(c.instrument)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown instrument %q\n", c.instrument)
		return subcommands.ExitFailure
	}
	if c.json {
		return exitStatus(printJSON(ir.Flows))
	}
	printMarkdown(renderer.Flows(ir, a.render()))
	return subcommands.ExitSuccess
}
