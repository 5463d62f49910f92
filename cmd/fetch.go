package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/returns"
	"github.com/etnz/returns/config"
	"github.com/etnz/returns/date"
	"github.com/etnz/returns/eodhd"
	"github.com/etnz/returns/ingest"
	"github.com/etnz/returns/store"
	"github.com/etnz/returns/yahoo"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// fetchCmd downloads the missing daily closes of the traded instruments.
type fetchCmd struct {
	provider   string
	instrument string
	eodhdKey   string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch daily closing prices" }
func (*fetchCmd) Usage() string {
	return `mdr fetch [-provider yahoo|eodhd] [-i <instrument>]

  Downloads daily closes from the start of the first traded month, or from
  the day after the latest stored close, up to today.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.provider, "provider", "", "Price provider, yahoo or eodhd. Defaults to $MDR_PROVIDER.")
	f.StringVar(&c.instrument, "i", "", "Only fetch this instrument.")
	f.StringVar(&c.eodhdKey, "eodhd-api-key", "", "EODHD API key. Defaults to $EODHD_API_KEY.")
}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if c.provider != "" {
		a.cfg.Provider = c.provider
	}
	if c.eodhdKey != "" {
		a.cfg.EODHDAPIKey = c.eodhdKey
	}
	source, err := newPriceSource(a.cfg, a.log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	instruments, err := a.store.Instruments(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing instruments: %v\n", err)
		return subcommands.ExitFailure
	}

	today := date.Today()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Workers)
	for _, in := range instruments {
		if !ingest.Tradable(in.Name) || (c.instrument != "" && in.Name != c.instrument) {
			continue
		}
		g.Go(func() error { return fetchInstrument(ctx, a, source, in, today) })
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching prices: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// newPriceSource returns the configured provider.
func newPriceSource(cfg *config.Config, log zerolog.Logger) (returns.PriceSource, error) {
	switch cfg.Provider {
	case "yahoo":
		return yahoo.New(log), nil
	case "eodhd":
		if cfg.EODHDAPIKey == "" {
			return nil, fmt.Errorf("EODHD API key is missing, set EODHD_API_KEY or -eodhd-api-key")
		}
		return eodhd.New(cfg.EODHDAPIKey, log), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// fetchInstrument fetches and stores the closes of in missing up to today.
func fetchInstrument(ctx context.Context, a *app, source returns.PriceSource, in store.Instrument, today date.Date) error {
	from := in.First.StartOf(date.Monthly)
	latest, ok, err := a.store.LatestClose(ctx, in.Name)
	if err != nil {
		return err
	}
	if ok {
		from = latest.Add(1)
	}
	if from.After(today) {
		a.log.Debug().Str("instrument", in.Name).Msg("prices up to date")
		return nil
	}

	closes, err := source.DailyCloses(ctx, in.Name, from, today)
	if err != nil {
		return fmt.Errorf("%s: %w", in.Name, err)
	}
	if err := a.store.UpsertCloses(ctx, closes); err != nil {
		return err
	}
	fmt.Printf("%s: %d closes from %v\n", in.Name, len(closes), from)
	return nil
}
