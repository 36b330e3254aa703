package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	sentinel "github.com/sebakremis/TradeSentinel"
)

type newCmd struct{}

func (*newCmd) Name() string     { return "new" }
func (*newCmd) Synopsis() string { return "create an empty portfolio" }
func (*newCmd) Usage() string {
	return `ts new <portfolio>

  Creates an empty named portfolio in the store.

`
}
func (*newCmd) SetFlags(f *flag.FlagSet) {}

func (c *newCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(flag.CommandLine.Output(), "Error: exactly one portfolio name is required")
		return subcommands.ExitUsageError
	}
	name := f.Arg(0)

	store, err := OpenStore()
	if err != nil {
		return fail(err)
	}
	if _, err := store.Load(name); err == nil {
		return fail(fmt.Errorf("portfolio %q already exists", name))
	}
	p, err := sentinel.NewPortfolio(name)
	if err != nil {
		return fail(err)
	}
	if err := store.Save(p); err != nil {
		return fail(err)
	}
	fmt.Printf("Created portfolio %q\n", name)
	return subcommands.ExitSuccess
}

type listCmd struct{}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list the portfolios in the store" }
func (*listCmd) Usage() string {
	return `ts list

  Lists the portfolio names in the store, alphabetically.

`
}
func (*listCmd) SetFlags(f *flag.FlagSet) {}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := OpenStore()
	if err != nil {
		return fail(err)
	}
	names, err := store.List()
	if err != nil {
		return fail(err)
	}
	if len(names) == 0 {
		fmt.Println("No portfolios yet. Create one with 'ts new <name>'.")
		return subcommands.ExitSuccess
	}
	for _, name := range names {
		p, err := store.Load(name)
		if err != nil {
			return fail(err)
		}
		fmt.Printf("%s\t%d transactions\n", name, len(p.Transactions))
	}
	return subcommands.ExitSuccess
}

type renameCmd struct{}

func (*renameCmd) Name() string     { return "rename" }
func (*renameCmd) Synopsis() string { return "rename a portfolio" }
func (*renameCmd) Usage() string {
	return `ts rename <old> <new>

  Renames a portfolio. The target name must be free.

`
}
func (*renameCmd) SetFlags(f *flag.FlagSet) {}

func (c *renameCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(flag.CommandLine.Output(), "Error: old and new names are required")
		return subcommands.ExitUsageError
	}
	store, err := OpenStore()
	if err != nil {
		return fail(err)
	}
	if err := sentinel.Rename(store, f.Arg(0), f.Arg(1)); err != nil {
		return fail(err)
	}
	fmt.Printf("Renamed portfolio %q to %q\n", f.Arg(0), f.Arg(1))
	return subcommands.ExitSuccess
}

type deleteCmd struct {
	force bool
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a portfolio from the store" }
func (*deleteCmd) Usage() string {
	return `ts delete -f <portfolio>

  Deletes a portfolio and its transactions. Requires -f; there is no undo.

`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.force, "f", false, "Confirm the deletion")
}

func (c *deleteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(flag.CommandLine.Output(), "Error: exactly one portfolio name is required")
		return subcommands.ExitUsageError
	}
	if !c.force {
		fmt.Fprintln(flag.CommandLine.Output(), "Error: deletion is permanent, pass -f to confirm")
		return subcommands.ExitUsageError
	}
	store, err := OpenStore()
	if err != nil {
		return fail(err)
	}
	if err := store.Delete(f.Arg(0)); err != nil {
		return fail(err)
	}
	fmt.Printf("Deleted portfolio %q\n", f.Arg(0))
	return subcommands.ExitSuccess
}
