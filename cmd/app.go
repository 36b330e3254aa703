// Package cmd implements the CLI application for portfolio analytics.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	sentinel "github.com/sebakremis/TradeSentinel"
	"github.com/sebakremis/TradeSentinel/date"
)

// Commands lists the subcommands of the application. A main package
// registers each of them and executes the user-selected one.
var Commands = []subcommands.Command{
	&backtestCmd{},
	&valueCmd{},
	&newCmd{},
	&listCmd{},
	&renameCmd{},
	&deleteCmd{},
	&buyCmd{},
	&sellCmd{},
	&txCmd{},
	&dropTxCmd{},
	&exportCmd{},
	&chartCmd{},
	&importPricesCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var pricesFile = flag.String("prices", "prices.jsonl", "Path to the price history file (JSONL format)")
var storeDir = flag.String("store", "portfolios", "Path to the portfolio store directory")
var configFile = flag.String("config", "sentinel.yaml", "Path to the analytics configuration file")
var plain = flag.Bool("plain", false, "Print plain markdown without terminal styling")

// LoadConfig reads the analytics defaults from the app config file.
func LoadConfig() (sentinel.Config, error) {
	return sentinel.LoadConfig(*configFile)
}

// DecodePrices loads the price table from the app prices file.
func DecodePrices() (*sentinel.PriceTable, error) {
	f, err := os.Open(*pricesFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, price file does not exist, starting with an empty price table")
		return sentinel.NewPriceTable(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return sentinel.DecodePrices(f)
}

// EncodePrices writes the price table back to the app prices file.
func EncodePrices(t *sentinel.PriceTable) error {
	f, err := os.Create(*pricesFile)
	if err != nil {
		return err
	}
	if err := sentinel.EncodePrices(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// OpenStore opens the portfolio store of the application.
func OpenStore() (sentinel.Store, error) {
	return sentinel.NewFileStore(*storeDir)
}

// printMarkdown renders a markdown document to the terminal, styled for
// readability unless -plain was set or styling fails.
func printMarkdown(doc string) {
	if !*plain {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
		if err == nil {
			if out, err := r.Render(doc); err == nil {
				fmt.Print(out)
				return
			}
		}
	}
	fmt.Println(doc)
}

// fail prints an error and maps it to the exit status of the subcommand.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}

// parseWindow builds a date range from optional start and end strings; an
// empty string leaves that side open.
func parseWindow(start, end string) (date.Range, error) {
	var window date.Range
	var err error
	if start != "" {
		if window.From, err = date.Parse(start); err != nil {
			return window, fmt.Errorf("invalid start date: %w", err)
		}
	}
	if end != "" {
		if window.To, err = date.Parse(end); err != nil {
			return window, fmt.Errorf("invalid end date: %w", err)
		}
	}
	if !window.From.IsZero() && !window.To.IsZero() && window.To.Before(window.From) {
		return window, fmt.Errorf("end date %s precedes start date %s", window.To, window.From)
	}
	return window, nil
}
