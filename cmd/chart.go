package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	sentinel "github.com/sebakremis/TradeSentinel"
	charts "github.com/vicanso/go-charts/v2"
)

// chartCmd holds the flags for the 'chart' subcommand.
type chartCmd struct {
	start  string
	end    string
	output string
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "render a portfolio's market value as a PNG chart" }
func (*chartCmd) Usage() string {
	return `ts chart [-s <start>] [-e <end>] [-o <file>] <portfolio>

  Renders the market value history of a portfolio as a PNG line chart.

Usage Examples:
$ ts chart -o growth.png growth

`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "", "Start date of the valuation")
	f.StringVar(&c.end, "e", "", "End date of the valuation")
	f.StringVar(&c.output, "o", "chart.png", "Output PNG file")
}

func (c *chartCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	if len(val.Points) == 0 {
		return fail(fmt.Errorf("portfolio %q has nothing to chart", f.Arg(0)))
	}

	buf, err := valuationChart(val)
	if err != nil {
		return fail(err)
	}
	if err := os.WriteFile(c.output, buf, 0644); err != nil {
		return fail(err)
	}
	fmt.Printf("Wrote chart of %q to %s\n", f.Arg(0), c.output)
	return subcommands.ExitSuccess
}

// valuationChart renders the market value series as a PNG line chart.
func valuationChart(val *sentinel.Valuation) ([]byte, error) {
	values := val.MarketValues()
	labels := make([]string, len(val.Points))
	for i, pt := range val.Points {
		labels[i] = pt.Date.String()
	}

	// pad the y axis so the line does not hug the frame
	minVal, maxVal := values[0], values[0]
	for _, v := range values {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	padding := (maxVal - minVal) * 0.05
	if padding == 0 {
		padding = maxVal * 0.05
	}
	yMin, yMax := minVal-padding, maxVal+padding

	splitNum := 6
	if len(labels) <= 30 {
		splitNum = max(len(labels)/3, 3)
	}

	chart, err := charts.LineRender(
		[][]float64{values},
		charts.TitleTextOptionFunc(fmt.Sprintf("Portfolio %s market value", val.Portfolio)),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        labels,
			SplitNumber: splitNum,
			BoundaryGap: charts.FalseFlag(),
		}),
		charts.YAxisOptionFunc(charts.YAxisOption{
			Min:         &yMin,
			Max:         &yMax,
			DivideCount: 5,
		}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot render chart: %w", err)
	}
	return chart.Bytes()
}
