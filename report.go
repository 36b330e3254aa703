package sentinel

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/sebakremis/TradeSentinel/date"
)

// Report maps metric names to their computed Value, preserving insertion
// order so rendered output is stable. A consumer can always distinguish a
// computed 0.0 from an undefined metric.
type Report struct {
	names  []string
	values map[string]Value
}

// NewEmptyReport returns a report with no metrics.
func NewEmptyReport() *Report {
	return &Report{values: make(map[string]Value)}
}

// Set records a metric, keeping first-set order for new names.
func (r *Report) Set(name string, v Value) {
	if _, ok := r.values[name]; !ok {
		r.names = append(r.names, name)
	}
	r.values[name] = v
}

// Get returns the value of a metric and whether it was computed at all.
func (r *Report) Get(name string) (Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Names returns the metric names in insertion order.
func (r *Report) Names() []string { return append([]string(nil), r.names...) }

// VaRKey returns the report key for Value-at-Risk at a confidence level,
// e.g. "var_95" for 0.95.
func VaRKey(confidence float64) string { return fmt.Sprintf("var_%.0f", confidence*100) }

// CVaRKey returns the report key for conditional VaR at a confidence level.
func CVaRKey(confidence float64) string { return fmt.Sprintf("cvar_%.0f", confidence*100) }

// NewReport computes the standard metric set over a return series and its
// cumulative-value curve. Degenerate inputs simply yield undefined values;
// no metric ever fails.
func NewReport(returns, curve []float64, cfg Config) *Report {
	perYear := cfg.Period.PerYear()
	r := NewEmptyReport()
	r.Set("annual_return", AnnualizedReturn(returns, perYear))
	r.Set("annual_vol", AnnualizedVolatility(returns, perYear))
	r.Set("sharpe", Sharpe(returns, cfg.RiskFreeRate, perYear))
	r.Set("sortino", Sortino(returns, cfg.RiskFreeRate, perYear))
	r.Set("calmar", Calmar(returns, perYear))
	r.Set(VaRKey(cfg.Confidence), VaR(returns, cfg.Confidence))
	r.Set(CVaRKey(cfg.Confidence), CVaR(returns, cfg.Confidence))
	r.Set("max_drawdown", MaxDrawdown(curve))

	wl := WinLoss(returns)
	r.Set("win_rate", wl.WinRate)
	r.Set("loss_rate", wl.LossRate)
	r.Set("avg_win", wl.AvgWin)
	r.Set("avg_loss", wl.AvgLoss)
	r.Set("win_loss_ratio", wl.WinLossRatio)
	r.Set("profit_factor", wl.ProfitFactor)
	return r
}

// csvCell renders a Value for CSV: defined values as plain numbers,
// infinities as "+Inf"/"-Inf", undefined as an empty cell.
func csvCell(v Value) string {
	switch {
	case v.IsUndefined():
		return ""
	case v.IsInf(1):
		return "+Inf"
	case v.IsInf(-1):
		return "-Inf"
	default:
		f, _ := v.Float()
		return fmt.Sprintf("%g", f)
	}
}

// WriteCSV renders the report as metric,value rows.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"metric", "value"}); err != nil {
		return err
	}
	for _, name := range r.names {
		if err := cw.Write([]string{name, csvCell(r.values[name])}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSeriesCSV renders a date-indexed table: one row per date, one
// column per series. header names the value columns; every column must
// have one value per day.
func WriteSeriesCSV(w io.Writer, header []string, days []date.Date, columns ...[]float64) error {
	for _, col := range columns {
		if len(col) != len(days) {
			return fmt.Errorf("column length %d does not match %d dates", len(col), len(days))
		}
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"date"}, header...)); err != nil {
		return err
	}
	row := make([]string, len(columns)+1)
	for i, day := range days {
		row[0] = day.String()
		for j, col := range columns {
			row[j+1] = fmt.Sprintf("%g", col[i])
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
