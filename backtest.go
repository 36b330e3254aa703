package sentinel

import (
	"fmt"
	"io"
	"math"

	"github.com/sebakremis/TradeSentinel/date"
)

// BacktestResult is the outcome of simulating a fixed-weight portfolio
// over historical prices: the common calendar, the weighted portfolio
// returns, the cumulative growth curve anchored at 1.0, and the metric
// report over those returns.
type BacktestResult struct {
	Tickers []string
	Weights []float64
	Days    []date.Date
	Returns []float64
	Curve   []float64
	Report  *Report
}

// equalWeights splits 1.0 evenly over n tickers.
func equalWeights(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1.0 / float64(n)
	}
	return w
}

// checkWeights validates an explicit weight vector: one weight per
// ticker, none negative, summing to 1 within rounding tolerance.
func checkWeights(weights []float64, n int) error {
	if len(weights) != n {
		return fmt.Errorf("got %d weights for %d tickers", len(weights), n)
	}
	var sum float64
	for i, w := range weights {
		if w < 0 {
			return fmt.Errorf("weight %d is negative: %v", i, w)
		}
		sum += w
	}
	if math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("weights sum to %v, want 1", sum)
	}
	return nil
}

// Backtest simulates holding the given tickers at fixed weights over the
// window, rebalanced every period. Weights default to equal when nil.
// The series are aligned per cfg.Alignment; fewer than 2 common dates is
// not an error but yields an empty result with every metric undefined,
// so a caller can render "no overlap" instead of crashing. An unknown
// ticker or an invalid weight vector is an error.
func Backtest(prices *PriceTable, tickers []string, weights []float64, window date.Range, cfg Config) (*BacktestResult, error) {
	if len(tickers) == 0 {
		return nil, fmt.Errorf("no tickers to backtest")
	}
	normalized := make([]string, len(tickers))
	for i, t := range tickers {
		normalized[i] = Normalize(t)
	}
	if weights == nil {
		weights = equalWeights(len(tickers))
	}
	if err := checkWeights(weights, len(tickers)); err != nil {
		return nil, err
	}

	days, closes, err := prices.Align(normalized, window, cfg.Alignment)
	if err != nil {
		return nil, err
	}

	res := &BacktestResult{Tickers: normalized, Weights: weights}
	if len(days) < 2 {
		res.Report = NewReport(nil, nil, cfg)
		addBenchmark(res.Report, prices, nil, nil, cfg)
		return res, nil
	}

	// per-ticker simple returns, then the weighted sum per period
	res.Days = days
	res.Returns = make([]float64, len(days)-1)
	for i, series := range closes {
		for j, r := range ReturnsOf(series) {
			res.Returns[j] += weights[i] * r
		}
	}
	res.Curve = Compound(res.Returns)

	periods := make([]date.Range, len(res.Returns))
	for i := range periods {
		periods[i] = date.Range{From: days[i], To: days[i+1]}
	}
	res.Report = NewReport(res.Returns, res.Curve, cfg)
	addBenchmark(res.Report, prices, res.Returns, periods, cfg)
	return res, nil
}

// WriteCSV renders the backtest series as a date-indexed table: the
// cumulative curve on every date, the period return on all but the
// first.
func (r *BacktestResult) WriteCSV(w io.Writer) error {
	// the first date anchors the curve at 1.0 and has no return
	returns := make([]float64, len(r.Days))
	copy(returns[1:], r.Returns)
	return WriteSeriesCSV(w, []string{"return", "cumulative"}, r.Days, returns, r.Curve)
}
