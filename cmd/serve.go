package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/returns/server"
	"github.com/google/subcommands"
)

// serveCmd serves the reports over HTTP.
type serveCmd struct {
	listen string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the returns as a JSON API and an HTML report" }
func (*serveCmd) Usage() string {
	return `mdr serve [-listen <addr>]

  Serves /api/instruments, /api/instruments/{instrument}/records,
  /api/returns, /api/portfolio and /report. Every request recomputes
  from the database.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.listen, "listen", "", "Listen address. Defaults to $MDR_LISTEN or :8080.")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if c.listen != "" {
		a.cfg.Listen = c.listen
	}
	srv := server.New(server.Config{
		Listen:   a.cfg.Listen,
		Log:      a.log,
		Source:   a.store,
		Workers:  a.cfg.Workers,
		Currency: a.cfg.Currency,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	select {
	case err := <-errc:
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error serving: %v\n", err)
			return subcommands.ExitFailure
		}
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			fmt.Fprintf(os.Stderr, "Error shutting down: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}
