package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	sentinel "github.com/sebakremis/TradeSentinel"
	"github.com/sebakremis/TradeSentinel/date"
)

// importPricesCmd holds the flags for the 'import-prices' subcommand.
type importPricesCmd struct {
	ticker    string
	datePath  string
	closePath string
	jsonl     bool
}

func (*importPricesCmd) Name() string { return "import-prices" }
func (*importPricesCmd) Synopsis() string {
	return "import close prices for a ticker from a provider JSON document"
}
func (*importPricesCmd) Usage() string {
	return `ts import-prices -t <ticker> [-date-path <expr>] [-close-path <expr>] <file.json>
ts import-prices -jsonl <file.jsonl>

  Extracts (date, close) pairs from a provider-shaped JSON document using
  two JSONPath expressions that must select arrays of equal length, and
  merges them into the price file. Existing prices for the same dates are
  overwritten. With -jsonl the input is already in the price file format
  (one {"ticker","date","close"} object per line) and is merged as is.

Usage Examples:
$ ts import-prices -t AAPL -date-path '$.data.dates' -close-path '$.data.close' aapl.json
$ ts import-prices -jsonl prices-2024.jsonl

`
}

func (c *importPricesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Ticker the imported prices belong to")
	f.StringVar(&c.datePath, "date-path", "$.dates", "JSONPath expression selecting the date array")
	f.StringVar(&c.closePath, "close-path", "$.close", "JSONPath expression selecting the close array")
	f.BoolVar(&c.jsonl, "jsonl", false, "Input is already in the JSONL price file format")
}

func (c *importPricesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.jsonl && c.ticker == "" {
		fmt.Fprintln(flag.CommandLine.Output(), "Error: -t <ticker> is required")
		return subcommands.ExitUsageError
	}
	if f.NArg() != 1 {
		fmt.Fprintln(flag.CommandLine.Output(), "Error: exactly one input document is required")
		return subcommands.ExitUsageError
	}

	doc, err := os.Open(f.Arg(0))
	if err != nil {
		return fail(err)
	}
	defer doc.Close()

	prices, err := DecodePrices()
	if err != nil {
		return fail(err)
	}

	if c.jsonl {
		incoming, err := sentinel.DecodePrices(doc)
		if err != nil {
			return fail(err)
		}
		n := 0
		for _, ticker := range incoming.Tickers() {
			for day, close := range incoming.Series(ticker).Values() {
				if err := prices.Add(ticker, day, close); err != nil {
					return fail(err)
				}
				n++
			}
		}
		if err := EncodePrices(prices); err != nil {
			return fail(err)
		}
		fmt.Printf("Merged %d prices for %d tickers\n", n, len(incoming.Tickers()))
		return subcommands.ExitSuccess
	}

	n, err := sentinel.ImportPrices(prices, c.ticker, doc, c.datePath, c.closePath)
	if err != nil {
		return fail(err)
	}
	if err := EncodePrices(prices); err != nil {
		return fail(err)
	}

	if h := prices.Series(c.ticker); h != nil {
		first, _ := h.First()
		last, _ := h.Latest()
		fmt.Printf("Imported %d prices for %s, coverage %s\n", n, sentinel.Normalize(c.ticker), date.Range{From: first, To: last})
	}
	return subcommands.ExitSuccess
}
