package sentinel

import (
	"strings"
	"testing"

	"github.com/sebakremis/TradeSentinel/date"
)

func TestReportOrder(t *testing.T) {
	r := NewEmptyReport()
	r.Set("b", Def(2))
	r.Set("a", Def(1))
	r.Set("b", Def(3)) // overwrite keeps the original slot

	names := r.Names()
	if len(names) != 2 || names[0] != "b" || names[1] != "a" {
		t.Errorf("Names = %v, want [b a]", names)
	}
	if v, ok := r.Get("b"); !ok {
		t.Error("Get(b) not found")
	} else if f, _ := v.Float(); f != 3 {
		t.Errorf("Get(b) = %s, want 3", v)
	}
	if _, ok := r.Get("missing"); ok {
		t.Error("Get(missing) found a value")
	}
}

func TestVaRKeys(t *testing.T) {
	if got := VaRKey(0.95); got != "var_95" {
		t.Errorf("VaRKey(0.95) = %q, want var_95", got)
	}
	if got := CVaRKey(0.99); got != "cvar_99" {
		t.Errorf("CVaRKey(0.99) = %q, want cvar_99", got)
	}
}

func TestNewReportKeys(t *testing.T) {
	returns := []float64{0.01, -0.02, 0.015, 0.0, -0.01}
	r := NewReport(returns, Compound(returns), testConfig())

	for _, name := range []string{
		"annual_return", "annual_vol", "sharpe", "sortino", "calmar",
		"var_95", "cvar_95", "max_drawdown",
		"win_rate", "loss_rate", "avg_win", "avg_loss", "win_loss_ratio", "profit_factor",
	} {
		if _, ok := r.Get(name); !ok {
			t.Errorf("report is missing %s", name)
		}
	}
	if v, _ := r.Get("var_95"); !v.IsDefined() {
		t.Errorf("var_95 = %s, want defined", v)
	}
}

func TestReportWriteCSV(t *testing.T) {
	r := NewEmptyReport()
	r.Set("sharpe", Def(1.25))
	r.Set("sortino", PosInf)
	r.Set("calmar", Undefined)

	var sb strings.Builder
	if err := r.WriteCSV(&sb); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	want := "metric,value\nsharpe,1.25\nsortino,+Inf\ncalmar,\n"
	if sb.String() != want {
		t.Errorf("WriteCSV =\n%q\nwant\n%q", sb.String(), want)
	}
}

func TestWriteSeriesCSV(t *testing.T) {
	days := []date.Date{date.MustParse("2025-01-02"), date.MustParse("2025-01-03")}
	var sb strings.Builder
	err := WriteSeriesCSV(&sb, []string{"close", "return"}, days, []float64{100, 110}, []float64{0, 0.1})
	if err != nil {
		t.Fatalf("WriteSeriesCSV: %v", err)
	}
	want := "date,close,return\n2025-01-02,100,0\n2025-01-03,110,0.1\n"
	if sb.String() != want {
		t.Errorf("WriteSeriesCSV =\n%q\nwant\n%q", sb.String(), want)
	}

	if err := WriteSeriesCSV(&sb, []string{"x"}, days, []float64{1}); err == nil {
		t.Error("WriteSeriesCSV should reject a short column")
	}
}
