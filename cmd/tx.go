package cmd

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/google/subcommands"
	sentinel "github.com/sebakremis/TradeSentinel"
	"github.com/sebakremis/TradeSentinel/date"
	"github.com/sebakremis/TradeSentinel/renderer"
)

// recordCmd is the shared shape of 'buy' and 'sell': both append one
// validated transaction to a portfolio's ledger.
type recordCmd struct {
	action sentinel.Action
	date   string
}

func (c *recordCmd) setFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date of the transaction (defaults to today)")
}

func (c *recordCmd) execute(f *flag.FlagSet) subcommands.ExitStatus {
	if f.NArg() != 4 {
		fmt.Fprintln(flag.CommandLine.Output(), "Error: portfolio, ticker, quantity and price are required")
		return subcommands.ExitUsageError
	}
	name, ticker := f.Arg(0), f.Arg(1)

	quantity, err := strconv.ParseFloat(f.Arg(2), 64)
	if err != nil {
		return fail(fmt.Errorf("invalid quantity %q", f.Arg(2)))
	}
	price, err := strconv.ParseFloat(f.Arg(3), 64)
	if err != nil {
		return fail(fmt.Errorf("invalid price %q", f.Arg(3)))
	}

	day := date.Today()
	if c.date != "" {
		if day, err = date.Parse(c.date); err != nil {
			return fail(err)
		}
	}

	var tx sentinel.Transaction
	if c.action == sentinel.Buy {
		tx = sentinel.NewBuy(day, ticker, sentinel.Q(quantity), sentinel.M(price))
	} else {
		tx = sentinel.NewSell(day, ticker, sentinel.Q(quantity), sentinel.M(price))
	}

	store, err := OpenStore()
	if err != nil {
		return fail(err)
	}
	p, err := store.Load(name)
	if err != nil {
		return fail(err)
	}
	if p, err = p.WithTransaction(tx); err != nil {
		return fail(err)
	}
	if err := store.Save(p); err != nil {
		return fail(err)
	}
	fmt.Printf("Recorded in %q: %s\n", name, tx)
	return subcommands.ExitSuccess
}

type buyCmd struct{ recordCmd }

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record a purchase in a portfolio" }
func (*buyCmd) Usage() string {
	return `ts buy [-d <date>] <portfolio> <ticker> <quantity> <price>

  Records a purchase of <quantity> shares at <price> per share.

Usage Examples:
$ ts buy growth AAPL 10 187.50

`
}
func (c *buyCmd) SetFlags(f *flag.FlagSet) { c.action = sentinel.Buy; c.setFlags(f) }
func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.execute(f)
}

type sellCmd struct{ recordCmd }

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a sale in a portfolio" }
func (*sellCmd) Usage() string {
	return `ts sell [-d <date>] <portfolio> <ticker> <quantity> <price>

  Records a sale of <quantity> shares at <price> per share. Selling more
  shares than held at that date is rejected.

`
}
func (c *sellCmd) SetFlags(f *flag.FlagSet) { c.action = sentinel.Sell; c.setFlags(f) }
func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.execute(f)
}

type txCmd struct{}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the transactions of a portfolio" }
func (*txCmd) Usage() string {
	return `ts tx <portfolio>

  Lists the transactions of a portfolio in stored order, numbered. The
  numbers are the indexes accepted by 'drop-tx'.

`
}
func (*txCmd) SetFlags(f *flag.FlagSet) {}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(flag.CommandLine.Output(), "Error: exactly one portfolio name is required")
		return subcommands.ExitUsageError
	}
	store, err := OpenStore()
	if err != nil {
		return fail(err)
	}
	p, err := store.Load(f.Arg(0))
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Transactions(p))
	return subcommands.ExitSuccess
}

type dropTxCmd struct{}

func (*dropTxCmd) Name() string     { return "drop-tx" }
func (*dropTxCmd) Synopsis() string { return "remove one transaction from a portfolio" }
func (*dropTxCmd) Usage() string {
	return `ts drop-tx <portfolio> <number>

  Removes the numbered transaction (see 'ts tx'). Removing a purchase
  that a later sale depends on is rejected.

`
}
func (*dropTxCmd) SetFlags(f *flag.FlagSet) {}

func (c *dropTxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(flag.CommandLine.Output(), "Error: portfolio name and transaction number are required")
		return subcommands.ExitUsageError
	}
	n, err := strconv.Atoi(f.Arg(1))
	if err != nil || n < 1 {
		return fail(fmt.Errorf("invalid transaction number %q", f.Arg(1)))
	}

	store, err := OpenStore()
	if err != nil {
		return fail(err)
	}
	p, err := store.Load(f.Arg(0))
	if err != nil {
		return fail(err)
	}
	if n > len(p.Transactions) {
		return fail(fmt.Errorf("no transaction %d in %q", n, f.Arg(0)))
	}
	dropped := p.Transactions[n-1]
	if p, err = p.WithoutTransaction(n - 1); err != nil {
		return fail(err)
	}
	if err := store.Save(p); err != nil {
		return fail(err)
	}
	fmt.Printf("Dropped from %q: %s\n", f.Arg(0), dropped)
	return subcommands.ExitSuccess
}
