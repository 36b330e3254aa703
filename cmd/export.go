package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	sentinel "github.com/sebakremis/TradeSentinel"
)

// exportCmd holds the flags for the 'export' subcommand.
type exportCmd struct {
	start   string
	end     string
	metrics bool
	output  string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export a portfolio valuation as CSV" }
func (*exportCmd) Usage() string {
	return `ts export [-s <start>] [-e <end>] [-metrics] [-o <file>] <portfolio>

  Exports the valuation history of a portfolio as CSV: one row per date
  with cost basis, market value, unrealized and realized PnL. With
  -metrics, exports the metric report instead (metric,value rows; an
  empty cell marks a metric whose precondition failed).

Usage Examples:
$ ts export growth > growth.csv
$ ts export -metrics -o growth-metrics.csv growth

`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "", "Start date of the valuation")
	f.StringVar(&c.end, "e", "", "End date of the valuation")
	f.BoolVar(&c.metrics, "metrics", false, "Export the metric report instead of the history")
	f.StringVar(&c.output, "o", "", "Output file (defaults to stdout)")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(flag.CommandLine.Output(), "Error: exactly one portfolio name is required")
		return subcommands.ExitUsageError
	}

	cfg, err := LoadConfig()
	if err != nil {
		return fail(err)
	}
	window, err := parseWindow(c.start, c.end)
	if err != nil {
		return fail(err)
	}

	store, err := OpenStore()
	if err != nil {
		return fail(err)
	}
	p, err := store.Load(f.Arg(0))
	if err != nil {
		return fail(err)
	}
	prices, err := DecodePrices()
	if err != nil {
		return fail(err)
	}
	val, err := sentinel.ValuePortfolio(p, prices, window, cfg)
	if err != nil {
		return fail(err)
	}

	var w io.Writer = os.Stdout
	if c.output != "" {
		file, err := os.Create(c.output)
		if err != nil {
			return fail(err)
		}
		defer file.Close()
		w = file
	}

	if c.metrics {
		err = val.Report.WriteCSV(w)
	} else {
		err = val.WriteCSV(w)
	}
	if err != nil {
		return fail(err)
	}
	if c.output != "" {
		fmt.Printf("Exported %q to %s\n", f.Arg(0), c.output)
	}
	return subcommands.ExitSuccess
}
