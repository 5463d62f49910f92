// Package cmd implements the mdr command line: importing broker activity,
// fetching prices and reporting Modified Dietz returns.
package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/returns"
	"github.com/etnz/returns/config"
	"github.com/etnz/returns/date"
	"github.com/etnz/returns/logger"
	"github.com/etnz/returns/renderer"
	"github.com/etnz/returns/store"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Commands lists the mdr subcommands in the order they are documented.
var Commands = []subcommands.Command{
	&importCmd{},
	&fetchCmd{},
	&recordsCmd{},
	&wcfCmd{},
	&returnsCmd{},
	&serveCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dbPath = flag.String("db", "", "Path to the sqlite database. Defaults to $MDR_DB or returns.db")

// app bundles what a command needs once the environment is loaded.
type app struct {
	cfg   *config.Config
	log   zerolog.Logger
	store *store.Store
}

// openApp loads the configuration and opens the database.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if *dbPath != "" {
		cfg.DatabasePath = *dbPath
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	s, err := store.Open(ctx, cfg.DatabasePath, log)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, log: log, store: s}, nil
}

func (a *app) Close() error { return a.store.Close() }

func (a *app) render() renderer.Options { return renderer.Options{Currency: a.cfg.Currency} }

// report computes the report over the stored transactions and prices.
func (a *app) report(ctx context.Context, opts returns.Options) (*returns.Report, error) {
	txs, prices, err := a.store.Inputs(ctx)
	if err != nil {
		return nil, err
	}
	return returns.NewEngine(a.log, a.cfg.Workers).Compute(ctx, txs, prices, opts)
}

// parseThrough parses the optional -through flag value.
func parseThrough(s string) (date.Date, error) {
	if s == "" {
		return date.Date{}, nil
	}
	return date.Parse(s)
}

// printMarkdown renders md for the terminal, falling back to raw markdown.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(200))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// printJSON writes v as indented JSON on stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
