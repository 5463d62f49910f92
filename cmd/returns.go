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

// returnsCmd prints the horizon summary of every instrument and the portfolio.
type returnsCmd struct {
	through string
	active  bool
	save    bool
	html    string
	json    bool
}

func (*returnsCmd) Name() string     { return "returns" }
func (*returnsCmd) Synopsis() string { return "display MTD, QTD, YTD, TTM, T2Y and LTD returns" }
func (*returnsCmd) Usage() string {
	return `mdr returns [-through <date>] [-active] [-save] [-html <file>] [-json]

  Displays the compounded returns over each horizon, ranked by
  life-to-date return, with the portfolio last.
`
}

func (c *returnsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.through, "through", "", "Last day of the calendar. Defaults to the latest transaction or price.")
	f.BoolVar(&c.active, "active", false, "Only list instruments still held at the end of the calendar.")
	f.BoolVar(&c.save, "save", false, "Save the monthly records in the database.")
	f.StringVar(&c.html, "html", "", "Write an HTML report to this file instead of printing.")
	f.BoolVar(&c.json, "json", false, "Print JSON instead of a table.")
}

func (c *returnsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	report, err := a.report(ctx, returns.Options{Through: through, ActiveOnly: c.active})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing returns: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.save {
		run, err := a.store.SaveReport(ctx, report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error saving report: %v\n", err)
			return subcommands.ExitFailure
		}
		a.log.Info().Str("run", run.ID).Int("records", run.Records).Msg("report saved")
	}

	md := renderer.Summary(report, a.render())
	switch {
	case c.json:
		return exitStatus(printJSON(report.Summary))
	case c.html != "":
		body, err := renderer.HTML(md + "\n" + renderer.Portfolio(report, a.render()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering HTML: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := os.WriteFile(c.html, []byte(body), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.html, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Report written to %s\n", c.html)
	default:
		printMarkdown(md)
	}
	return subcommands.ExitSuccess
}
