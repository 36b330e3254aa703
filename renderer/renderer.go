// Package renderer turns analytics results into markdown documents, the
// display format of the command line tool.
package renderer

import (
	"bytes"
	"fmt"
	"strings"

	md "github.com/nao1215/markdown"
	sentinel "github.com/sebakremis/TradeSentinel"
)

// metricLabels maps report keys to their display names. Keys absent here
// (like the confidence-dependent VaR keys) fall back to a generated label.
var metricLabels = map[string]string{
	"annual_return":  "Annualized Return",
	"annual_vol":     "Annualized Volatility",
	"sharpe":         "Sharpe Ratio",
	"sortino":        "Sortino Ratio",
	"calmar":         "Calmar Ratio",
	"max_drawdown":   "Max Drawdown",
	"win_rate":       "Win Rate",
	"loss_rate":      "Loss Rate",
	"avg_win":        "Average Win",
	"avg_loss":       "Average Loss",
	"win_loss_ratio": "Win/Loss Ratio",
	"profit_factor":  "Profit Factor",
	"alpha":          "Alpha",
	"beta":           "Beta",
}

// percentMetrics are displayed as percentages rather than raw ratios.
var percentMetrics = map[string]bool{
	"annual_return": true,
	"annual_vol":    true,
	"max_drawdown":  true,
	"win_rate":      true,
	"loss_rate":     true,
	"avg_win":       true,
	"avg_loss":      true,
	"alpha":         true,
}

func label(key string) string {
	if l, ok := metricLabels[key]; ok {
		return l
	}
	if rest, ok := strings.CutPrefix(key, "var_"); ok {
		return fmt.Sprintf("VaR (%s%%)", rest)
	}
	if rest, ok := strings.CutPrefix(key, "cvar_"); ok {
		return fmt.Sprintf("CVaR (%s%%)", rest)
	}
	return key
}

// formatValue renders a metric value for display. Percent-style metrics
// get two decimals and a % sign, ratios four significant digits. The
// undefined sentinel renders as "n/a".
func formatValue(key string, v sentinel.Value) string {
	f, ok := v.Float()
	if !ok {
		return v.String() // "undefined" never reaches here, see below
	}
	if strings.HasPrefix(key, "var_") || strings.HasPrefix(key, "cvar_") || percentMetrics[key] {
		return fmt.Sprintf("%.2f%%", 100*f)
	}
	return fmt.Sprintf("%.4g", f)
}

func cell(key string, v sentinel.Value) string {
	if v.IsUndefined() {
		return "n/a"
	}
	return formatValue(key, v)
}

// metricsTable renders a report as a two-column markdown table.
func metricsTable(doc *md.Markdown, r *sentinel.Report) {
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Metric", "Value"},
	}
	for _, key := range r.Names() {
		v, _ := r.Get(key)
		table.Rows = append(table.Rows, []string{label(key), cell(key, v)})
	}
	doc.Table(table)
}

// BacktestMarkdown renders a backtest result as a markdown document.
func BacktestMarkdown(r *sentinel.BacktestResult, cfg sentinel.Config) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Backtest Report")

	if len(r.Days) == 0 {
		doc.PlainText("No overlapping price history for the requested tickers and window.")
		return doc.String()
	}

	doc.H2("Portfolio")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Ticker", "Weight"},
	}
	for i, ticker := range r.Tickers {
		table.Rows = append(table.Rows, []string{ticker, fmt.Sprintf("%.2f%%", 100*r.Weights[i])})
	}
	doc.Table(table)

	first, last := r.Days[0], r.Days[len(r.Days)-1]
	growth := r.Curve[len(r.Curve)-1]
	doc.PlainTextf("%d trading days from %s to %s (%s alignment). $1 grew to $%.4f.",
		len(r.Days), first, last, cfg.Alignment, growth)

	doc.H2("Metrics")
	metricsTable(doc, r.Report)

	return doc.String()
}

// ValuationMarkdown renders a portfolio valuation as a markdown document.
func ValuationMarkdown(v *sentinel.Valuation, cfg sentinel.Config) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio %s", v.Portfolio))

	if len(v.Points) == 0 {
		doc.PlainText("No transactions recorded.")
		return doc.String()
	}

	last := v.Points[len(v.Points)-1]
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold(fmt.Sprintf("Value on %s", last.Date)), md.Bold(last.MarketValue.String())},
		Rows: [][]string{
			{"Cost Basis", last.CostBasis.String()},
			{"Unrealized PnL", last.Unrealized.SignedString()},
			{"Realized PnL", last.Realized.SignedString()},
		},
	})

	doc.H2("History")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Date", "Market Value", "Unrealized", "Realized"},
	}
	for _, pt := range v.Points {
		table.Rows = append(table.Rows, []string{
			pt.Date.String(),
			pt.MarketValue.String(),
			pt.Unrealized.SignedString(),
			pt.Realized.SignedString(),
		})
	}
	doc.Table(table)

	doc.H2("Metrics")
	metricsTable(doc, v.Report)

	return doc.String()
}

// Transactions renders a portfolio ledger as a markdown document, one
// numbered line per transaction so drop-tx indexes are visible.
func Transactions(p sentinel.Portfolio) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio %s", p.Name))
	if len(p.Transactions) == 0 {
		doc.PlainText("No transactions recorded.")
		return doc.String()
	}

	var lines []string
	for _, tx := range p.Transactions {
		lines = append(lines, tx.String())
	}
	doc.OrderedList(lines...)
	return doc.String()
}
