package sentinel

import (
	"strings"
	"testing"

	"github.com/sebakremis/TradeSentinel/date"
)

func TestBacktestSingleTicker(t *testing.T) {
	prices := newTestTable(t,
		priceRow{"AAA", "2025-01-02", 100},
		priceRow{"AAA", "2025-01-03", 110},
		priceRow{"AAA", "2025-01-06", 99},
	)

	res, err := Backtest(prices, []string{"aaa"}, nil, date.Range{}, testConfig())
	if err != nil {
		t.Fatalf("Backtest: %v", err)
	}
	if len(res.Days) != 3 {
		t.Fatalf("backtest covers %d days, want 3", len(res.Days))
	}
	wantReturns := []float64{0.1, -0.1}
	for i, want := range wantReturns {
		if !approx(res.Returns[i], want) {
			t.Errorf("Returns[%d] = %v, want %v", i, res.Returns[i], want)
		}
	}
	wantCurve := []float64{1.0, 1.1, 0.99}
	for i, want := range wantCurve {
		if !approx(res.Curve[i], want) {
			t.Errorf("Curve[%d] = %v, want %v", i, res.Curve[i], want)
		}
	}
	if mdd, _ := res.Report.Get("max_drawdown"); !mdd.IsDefined() {
		t.Errorf("max_drawdown = %s, want defined", mdd)
	}
}

func TestBacktestHedgedPairIsFlat(t *testing.T) {
	// two tickers whose returns cancel exactly at equal weights
	prices := newTestTable(t,
		priceRow{"AAA", "2025-01-02", 100},
		priceRow{"AAA", "2025-01-03", 110},
		priceRow{"AAA", "2025-01-06", 99},
		priceRow{"BBB", "2025-01-02", 100},
		priceRow{"BBB", "2025-01-03", 90},
		priceRow{"BBB", "2025-01-06", 99},
	)

	res, err := Backtest(prices, []string{"AAA", "BBB"}, nil, date.Range{}, testConfig())
	if err != nil {
		t.Fatalf("Backtest: %v", err)
	}
	for i, r := range res.Returns {
		if !approx(r, 0) {
			t.Errorf("Returns[%d] = %v, want 0", i, r)
		}
	}
	for i, v := range res.Curve {
		if !approx(v, 1) {
			t.Errorf("Curve[%d] = %v, want 1", i, v)
		}
	}
	// a constant series has no deviation to price risk with
	if sharpe, _ := res.Report.Get("sharpe"); !sharpe.IsUndefined() {
		t.Errorf("sharpe = %s, want undefined", sharpe)
	}
	if mdd, _ := res.Report.Get("max_drawdown"); mdd.String() != "0" {
		t.Errorf("max_drawdown = %s, want 0", mdd)
	}
}

func TestBacktestExplicitWeights(t *testing.T) {
	prices := newTestTable(t,
		priceRow{"AAA", "2025-01-02", 100},
		priceRow{"AAA", "2025-01-03", 110},
		priceRow{"BBB", "2025-01-02", 100},
		priceRow{"BBB", "2025-01-03", 90},
	)

	res, err := Backtest(prices, []string{"AAA", "BBB"}, []float64{1, 0}, date.Range{}, testConfig())
	if err != nil {
		t.Fatalf("Backtest: %v", err)
	}
	if !approx(res.Returns[0], 0.1) {
		t.Errorf("Returns[0] = %v, want 0.1 (all weight on AAA)", res.Returns[0])
	}
}

func TestBacktestWeightValidation(t *testing.T) {
	prices := newTestTable(t,
		priceRow{"AAA", "2025-01-02", 100},
		priceRow{"AAA", "2025-01-03", 110},
	)
	testCases := []struct {
		name    string
		tickers []string
		weights []float64
	}{
		{"wrong count", []string{"AAA"}, []float64{0.5, 0.5}},
		{"negative", []string{"AAA"}, []float64{-1}},
		{"sum not one", []string{"AAA"}, []float64{0.8}},
		{"no tickers", nil, nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Backtest(prices, tc.tickers, tc.weights, date.Range{}, testConfig()); err == nil {
				t.Error("Backtest should fail")
			}
		})
	}
}

func TestBacktestUnknownTicker(t *testing.T) {
	prices := newTestTable(t, priceRow{"AAA", "2025-01-02", 100})
	if _, err := Backtest(prices, []string{"ZZZ"}, nil, date.Range{}, testConfig()); err == nil {
		t.Error("Backtest should fail on an unknown ticker")
	}
}

func TestBacktestNoOverlap(t *testing.T) {
	// disjoint calendars: the intersection is empty, which is a report
	// full of undefined metrics, not an error
	prices := newTestTable(t,
		priceRow{"AAA", "2025-01-02", 100},
		priceRow{"AAA", "2025-01-03", 110},
		priceRow{"BBB", "2025-02-02", 50},
		priceRow{"BBB", "2025-02-03", 51},
	)

	res, err := Backtest(prices, []string{"AAA", "BBB"}, nil, date.Range{}, testConfig())
	if err != nil {
		t.Fatalf("Backtest: %v", err)
	}
	if len(res.Days) != 0 || len(res.Returns) != 0 || len(res.Curve) != 0 {
		t.Errorf("no-overlap backtest produced %d days", len(res.Days))
	}
	for _, name := range res.Report.Names() {
		if v, _ := res.Report.Get(name); !v.IsUndefined() {
			t.Errorf("metric %s = %s, want undefined", name, v)
		}
	}
}

func TestBacktestBenchmark(t *testing.T) {
	prices := newTestTable(t,
		priceRow{"AAA", "2025-01-02", 100},
		priceRow{"AAA", "2025-01-03", 110},
		priceRow{"AAA", "2025-01-06", 99},
		priceRow{"SPY", "2025-01-02", 200},
		priceRow{"SPY", "2025-01-03", 220},
		priceRow{"SPY", "2025-01-06", 198},
	)

	cfg := testConfig()
	cfg.Benchmark = "SPY"
	res, err := Backtest(prices, []string{"AAA"}, nil, date.Range{}, cfg)
	if err != nil {
		t.Fatalf("Backtest: %v", err)
	}
	beta, _ := res.Report.Get("beta")
	if f, ok := beta.Float(); !ok || !approx(f, 1) {
		t.Errorf("beta = %s, want 1", beta)
	}
}

func TestBacktestWriteCSV(t *testing.T) {
	prices := newTestTable(t,
		priceRow{"AAA", "2025-01-02", 100},
		priceRow{"AAA", "2025-01-03", 110},
	)
	res, err := Backtest(prices, []string{"AAA"}, nil, date.Range{}, testConfig())
	if err != nil {
		t.Fatalf("Backtest: %v", err)
	}

	var sb strings.Builder
	if err := res.WriteCSV(&sb); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("CSV has %d lines, want header plus 2 rows:\n%s", len(lines), sb.String())
	}
	if lines[0] != "date,return,cumulative" {
		t.Errorf("CSV header = %q", lines[0])
	}
}
