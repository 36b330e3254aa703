package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/subcommands"
	sentinel "github.com/sebakremis/TradeSentinel"
	"github.com/sebakremis/TradeSentinel/renderer"
)

// backtestCmd holds the flags for the 'backtest' subcommand.
type backtestCmd struct {
	weights   string
	start     string
	end       string
	alignment string
	benchmark string
	csv       string
}

func (*backtestCmd) Name() string     { return "backtest" }
func (*backtestCmd) Synopsis() string { return "simulate a fixed-weight portfolio over price history" }
func (*backtestCmd) Usage() string {
	return `ts backtest [-w <weights>] [-s <start>] [-e <end>] [-align <mode>] [-csv <file>] <ticker>...

  Simulates holding the given tickers at fixed weights over the known
  price history and reports performance and risk metrics. Weights default
  to equal and must sum to 1.

Usage Examples:
# Equal-weight backtest of two tickers over all known history.
$ ts backtest AAPL MSFT

# 60/40 over 2024 only, forward-filling missing dates.
$ ts backtest -w 0.6,0.4 -s 2024-01-01 -e 2024-12-31 -align ffill AAPL MSFT

`
}

func (c *backtestCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.weights, "w", "", "Comma-separated weights, one per ticker (defaults to equal)")
	f.StringVar(&c.start, "s", "", "Start date of the simulation (defaults to earliest common date)")
	f.StringVar(&c.end, "e", "", "End date of the simulation (defaults to latest common date)")
	f.StringVar(&c.alignment, "align", "", "Date alignment across tickers: intersect or ffill")
	f.StringVar(&c.benchmark, "b", "", "Benchmark ticker for alpha and beta (overrides config)")
	f.StringVar(&c.csv, "csv", "", "Also write the return and curve series to a CSV file")
}

func (c *backtestCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tickers := f.Args()
	if len(tickers) == 0 {
		fmt.Fprintln(flag.CommandLine.Output(), "Error: at least one ticker is required")
		return subcommands.ExitUsageError
	}

	cfg, err := LoadConfig()
	if err != nil {
		return fail(err)
	}
	if c.alignment != "" {
		if cfg.Alignment, err = sentinel.ParseAlignment(c.alignment); err != nil {
			return fail(err)
		}
	}
	if c.benchmark != "" {
		cfg.Benchmark = c.benchmark
	}

	window, err := parseWindow(c.start, c.end)
	if err != nil {
		return fail(err)
	}
	weights, err := parseWeights(c.weights)
	if err != nil {
		return fail(err)
	}

	prices, err := DecodePrices()
	if err != nil {
		return fail(err)
	}
	res, err := sentinel.Backtest(prices, tickers, weights, window, cfg)
	if err != nil {
		return fail(err)
	}

	if c.csv != "" {
		file, err := os.Create(c.csv)
		if err != nil {
			return fail(err)
		}
		if err := res.WriteCSV(file); err != nil {
			file.Close()
			return fail(err)
		}
		if err := file.Close(); err != nil {
			return fail(err)
		}
	}

	printMarkdown(renderer.BacktestMarkdown(res, cfg))
	return subcommands.ExitSuccess
}

// parseWeights parses a comma-separated weight list; empty means default.
func parseWeights(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	weights := make([]float64, len(parts))
	for i, p := range parts {
		w, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight %q", p)
		}
		weights[i] = w
	}
	return weights, nil
}
