package sentinel

import (
	"encoding/csv"
	"io"
	"slices"

	"github.com/sebakremis/TradeSentinel/date"
)

// ValuationPoint is the state of a portfolio at the close of one date:
// total cost basis and market value of the open positions, their
// difference (unrealized PnL), and the realized PnL accumulated by sales
// up to that date.
type ValuationPoint struct {
	Date        date.Date
	CostBasis   Money
	MarketValue Money
	Unrealized  Money
	Realized    Money
}

// Valuation is the reconstructed history of a transaction-based portfolio,
// plus the derived return series and metric report. Market-value changes
// period over period are treated as the return series, which makes the
// report directly comparable with an idealized backtest of the same
// tickers.
type Valuation struct {
	Portfolio string
	Points    []ValuationPoint
	Returns   []float64
	Report    *Report
}

// MarketValues returns the market-value curve as floats, for drawdown and
// charting.
func (v *Valuation) MarketValues() []float64 {
	curve := make([]float64, len(v.Points))
	for i, pt := range v.Points {
		curve[i] = pt.MarketValue.AsFloat()
	}
	return curve
}

// ValuePortfolio replays the portfolio's transactions over the union of
// transaction dates and price dates within the window, valuing the open
// positions at each date with the last known price. A SELL exceeding the
// held quantity or a held ticker with no price coverage aborts the whole
// computation with a structured error; nothing is silently clamped or
// dropped.
func ValuePortfolio(p Portfolio, prices *PriceTable, window date.Range, cfg Config) (*Valuation, error) {
	for _, tx := range p.Transactions {
		if err := tx.Validate(); err != nil {
			return nil, err
		}
	}

	val := &Valuation{Portfolio: p.Name}
	if len(p.Transactions) == 0 {
		val.Report = NewReport(nil, nil, cfg)
		return val, nil
	}

	txs := slices.Clone(p.Transactions)
	sortTransactions(txs)

	// default window: first transaction to the latest known price
	if window.From.IsZero() {
		window.From = txs[0].Date
	}
	if window.To.IsZero() {
		window.To = txs[len(txs)-1].Date
		for _, ticker := range p.Tickers() {
			if h := prices.Series(ticker); h != nil {
				if day, _ := h.Latest(); day.After(window.To) {
					window.To = day
				}
			}
		}
	}

	// date grid: union of transaction dates and price dates in the window
	var grid date.History[float64]
	for _, tx := range txs {
		if window.Contains(tx.Date) {
			grid.Append(tx.Date, 0)
		}
	}
	for _, ticker := range p.Tickers() {
		if h := prices.Series(ticker); h != nil {
			for day := range h.Values() {
				if window.Contains(day) {
					grid.Append(day, 0)
				}
			}
		}
	}

	positions := make(map[string]*Position)
	next := 0 // next transaction to replay
	for day := range grid.Values() {
		for next < len(txs) && !txs[next].Date.After(day) {
			tx := txs[next]
			ticker := Normalize(tx.Ticker)
			pos, ok := positions[ticker]
			if !ok {
				pos = NewPosition(ticker, cfg.CostMethod)
				positions[ticker] = pos
			}
			if err := pos.Apply(tx); err != nil {
				return nil, err
			}
			next++
		}

		pt := ValuationPoint{Date: day, CostBasis: M(0), MarketValue: M(0), Realized: M(0)}
		for _, pos := range positions {
			pt.Realized = pt.Realized.Add(pos.Realized)
			if pos.Quantity.IsZero() {
				continue
			}
			close, ok := prices.PriceAsOf(pos.Ticker, day)
			if !ok {
				return nil, &MissingPriceError{Ticker: pos.Ticker, Date: day}
			}
			pt.CostBasis = pt.CostBasis.Add(pos.CostBasis)
			pt.MarketValue = pt.MarketValue.Add(M(close).Mul(pos.Quantity))
		}
		pt.Unrealized = pt.MarketValue.Sub(pt.CostBasis)
		val.Points = append(val.Points, pt)
	}

	// period-over-period market-value change; a zero previous value
	// (cash-only day) yields no return for that pair
	var periods []date.Range
	for i := 1; i < len(val.Points); i++ {
		prev := val.Points[i-1].MarketValue.AsFloat()
		cur := val.Points[i].MarketValue.AsFloat()
		if prev != 0 {
			val.Returns = append(val.Returns, (cur-prev)/prev)
			periods = append(periods, date.Range{From: val.Points[i-1].Date, To: val.Points[i].Date})
		}
	}

	val.Report = NewReport(val.Returns, val.MarketValues(), cfg)
	addBenchmark(val.Report, prices, val.Returns, periods, cfg)
	return val, nil
}

// addBenchmark appends alpha and beta regressed against the configured
// benchmark ticker over the same return periods (inner join: periods the
// benchmark cannot price on both ends are dropped from both series). Both
// metrics stay undefined when no benchmark prices are known or no period
// overlaps.
func addBenchmark(r *Report, prices *PriceTable, returns []float64, periods []date.Range, cfg Config) {
	alpha, beta := Undefined, Undefined
	defer func() {
		r.Set("alpha", alpha)
		r.Set("beta", beta)
	}()

	if cfg.Benchmark == "" || !prices.Has(cfg.Benchmark) || len(returns) != len(periods) {
		return
	}

	var asset, bench []float64
	for i, period := range periods {
		p0, ok0 := prices.PriceAsOf(cfg.Benchmark, period.From)
		p1, ok1 := prices.PriceAsOf(cfg.Benchmark, period.To)
		if !ok0 || !ok1 || p0 == 0 {
			continue
		}
		asset = append(asset, returns[i])
		bench = append(bench, (p1-p0)/p0)
	}

	beta = Beta(asset, bench)
	alpha = Alpha(asset, bench, beta, cfg.RiskFreeRate, cfg.Period.PerYear())
}

// WriteCSV renders the valuation history as a date-indexed table exposing
// every computed field.
func (v *Valuation) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "cost_basis", "market_value", "unrealized_pnl", "realized_pnl"}); err != nil {
		return err
	}
	for _, pt := range v.Points {
		row := []string{
			pt.Date.String(),
			pt.CostBasis.Decimal().String(),
			pt.MarketValue.Decimal().String(),
			pt.Unrealized.Decimal().String(),
			pt.Realized.Decimal().String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
