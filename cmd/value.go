package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	sentinel "github.com/sebakremis/TradeSentinel"
	"github.com/sebakremis/TradeSentinel/renderer"
)

// valueCmd holds the flags for the 'value' subcommand.
type valueCmd struct {
	start  string
	end    string
	method string
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "value a portfolio's holdings over time" }
func (*valueCmd) Usage() string {
	return `ts value [-s <start>] [-e <end>] [-method <method>] <portfolio>

  Replays the portfolio's transactions over the known price history and
  reports daily cost basis, market value, unrealized and realized PnL,
  plus performance metrics on the resulting value series.

`
}

func (c *valueCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "", "Start date of the valuation (defaults to the first transaction)")
	f.StringVar(&c.end, "e", "", "End date of the valuation (defaults to the latest known price)")
	f.StringVar(&c.method, "method", "", "Cost basis method: average or fifo (overrides config)")
}

func (c *valueCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(flag.CommandLine.Output(), "Error: exactly one portfolio name is required")
		return subcommands.ExitUsageError
	}

	cfg, err := LoadConfig()
	if err != nil {
		return fail(err)
	}
	if c.method != "" {
		if cfg.CostMethod, err = sentinel.ParseCostMethod(c.method); err != nil {
			return fail(err)
		}
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

	printMarkdown(renderer.ValuationMarkdown(val, cfg))
	return subcommands.ExitSuccess
}
