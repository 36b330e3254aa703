package sentinel

import (
	"math"
	"sort"
)

// This file is the metrics library: pure, stateless functions computing
// risk and performance statistics from a return series (or, for drawdown,
// a cumulative-value series). Annualization follows the periods-per-year
// factor of the series cadence (252 daily, 52 weekly, 12 monthly).

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stddev is the population standard deviation (ddof=0).
func stddev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := mean(xs)
	var ss float64
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)))
}

func excessReturns(returns []float64, riskFree, perYear float64) []float64 {
	rf := riskFree / perYear
	excess := make([]float64, len(returns))
	for i, r := range returns {
		excess[i] = r - rf
	}
	return excess
}

// Compound turns a return series into a cumulative-value series anchored
// at 1.0 before the first return: the result has len(returns)+1 elements.
func Compound(returns []float64) []float64 {
	curve := make([]float64, len(returns)+1)
	curve[0] = 1.0
	for i, r := range returns {
		curve[i+1] = curve[i] * (1 + r)
	}
	return curve
}

// AnnualizedReturn compounds the return series and scales it to a yearly
// basis: (prod(1+r))^(perYear/n) - 1.
func AnnualizedReturn(returns []float64, perYear float64) Value {
	if len(returns) == 0 {
		return Undefined
	}
	total := 1.0
	for _, r := range returns {
		total *= 1 + r
	}
	if total <= 0 {
		// a -100% period wipes the portfolio, no annualized rate exists
		return Undefined
	}
	return Def(math.Pow(total, perYear/float64(len(returns))) - 1)
}

// AnnualizedVolatility is the population standard deviation of the returns
// scaled by sqrt(perYear).
func AnnualizedVolatility(returns []float64, perYear float64) Value {
	if len(returns) < 2 {
		return Undefined
	}
	return Def(stddev(returns) * math.Sqrt(perYear))
}

// Sharpe is the annualized Sharpe ratio: mean excess return over the
// standard deviation of returns, scaled by sqrt(perYear). Undefined for
// fewer than 2 points or a zero standard deviation (constant series).
func Sharpe(returns []float64, riskFree, perYear float64) Value {
	if len(returns) < 2 {
		return Undefined
	}
	excess := excessReturns(returns, riskFree, perYear)
	std := stddev(excess)
	if std == 0 {
		return Undefined
	}
	return Def(math.Sqrt(perYear) * mean(excess) / std)
}

// Sortino is the annualized Sortino ratio: mean excess return over the
// downside deviation, the root-mean-square of negative excess returns
// only. With no downside at all the ratio degenerates: +Inf when the mean
// excess return is positive, undefined otherwise.
func Sortino(returns []float64, riskFree, perYear float64) Value {
	if len(returns) < 2 {
		return Undefined
	}
	excess := excessReturns(returns, riskFree, perYear)
	var ss float64
	var n int
	for _, e := range excess {
		if e < 0 {
			ss += e * e
			n++
		}
	}
	if n == 0 {
		if mean(excess) > 0 {
			return PosInf
		}
		return Undefined
	}
	downside := math.Sqrt(ss / float64(n))
	if downside == 0 {
		if mean(excess) > 0 {
			return PosInf
		}
		return Undefined
	}
	return Def(math.Sqrt(perYear) * mean(excess) / downside)
}

// Calmar is the annualized return divided by the absolute maximum drawdown
// of the compounded series. A zero drawdown (flat or strictly increasing
// series) makes the ratio undefined: the division is skipped, not computed
// as infinity, to avoid misleading values from near-zero denominators.
func Calmar(returns []float64, perYear float64) Value {
	if len(returns) < 2 {
		return Undefined
	}
	annual, ok := AnnualizedReturn(returns, perYear).Float()
	if !ok {
		return Undefined
	}
	mdd, ok := MaxDrawdown(Compound(returns)).Float()
	if !ok || mdd == 0 {
		return Undefined
	}
	return Def(annual / mdd)
}

// quantile returns the empirical quantile at position q in [0,1], with
// linear interpolation between order statistics (numpy.percentile
// semantics). xs must be non-empty and is not modified.
func quantile(xs []float64, q float64) float64 {
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// VaR is the Value-at-Risk at the given confidence level: the return at
// the (1-confidence) lower empirical quantile, reported as a positive loss
// magnitude. Undefined for fewer than 2 points.
func VaR(returns []float64, confidence float64) Value {
	if len(returns) < 2 {
		return Undefined
	}
	return Def(-quantile(returns, 1-confidence))
}

// CVaR (expected shortfall) is the mean of all returns at or below the VaR
// quantile threshold, reported as a positive loss magnitude. Its magnitude
// is always at least the VaR magnitude at the same confidence level.
func CVaR(returns []float64, confidence float64) Value {
	if len(returns) < 2 {
		return Undefined
	}
	threshold := quantile(returns, 1-confidence)
	var sum float64
	var n int
	for _, r := range returns {
		if r <= threshold {
			sum += r
			n++
		}
	}
	if n == 0 {
		return Undefined
	}
	return Def(-sum / float64(n))
}

// MaxDrawdown computes the largest peak-to-trough decline of a
// cumulative-value series as a non-negative fraction of the running peak,
// in a single forward pass. Zero for a monotonically non-decreasing
// series, undefined for an empty one.
func MaxDrawdown(curve []float64) Value {
	if len(curve) == 0 {
		return Undefined
	}
	peak := curve[0]
	var worst float64
	for _, v := range curve {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			if dd := (peak - v) / peak; dd > worst {
				worst = dd
			}
		}
	}
	return Def(worst)
}

// WinLossStats collects counts and rates of positive vs. negative return
// periods. With zero periods every field is undefined; with zero losing
// periods and at least one win, the ratios are positive infinity.
type WinLossStats struct {
	Wins, Losses int
	WinRate      Value
	LossRate     Value
	AvgWin       Value
	AvgLoss      Value
	WinLossRatio Value
	ProfitFactor Value
}

// WinLoss computes win/loss statistics over a return (or PnL) series.
// Zero returns count as neither win nor loss but are part of the total.
func WinLoss(returns []float64) WinLossStats {
	s := WinLossStats{
		WinRate: Undefined, LossRate: Undefined,
		AvgWin: Undefined, AvgLoss: Undefined,
		WinLossRatio: Undefined, ProfitFactor: Undefined,
	}
	if len(returns) == 0 {
		return s
	}

	var winSum, lossSum float64
	for _, r := range returns {
		switch {
		case r > 0:
			s.Wins++
			winSum += r
		case r < 0:
			s.Losses++
			lossSum += r
		}
	}
	n := float64(len(returns))
	s.WinRate = Def(float64(s.Wins) / n)
	s.LossRate = Def(float64(s.Losses) / n)

	if s.Wins > 0 {
		s.AvgWin = Def(winSum / float64(s.Wins))
	}
	if s.Losses > 0 {
		s.AvgLoss = Def(lossSum / float64(s.Losses))
	}

	switch {
	case s.Losses > 0 && s.Wins > 0:
		avgWin := winSum / float64(s.Wins)
		avgLoss := lossSum / float64(s.Losses)
		s.WinLossRatio = Def(avgWin / math.Abs(avgLoss))
		s.ProfitFactor = Def(winSum / math.Abs(lossSum))
	case s.Losses == 0 && s.Wins > 0:
		s.WinLossRatio = PosInf
		s.ProfitFactor = PosInf
	case s.Losses > 0:
		// wins == 0
		s.WinLossRatio = Def(0)
		s.ProfitFactor = Def(0)
	}
	return s
}

// Beta is the slope of the simple linear regression of asset returns
// against benchmark returns: cov(asset, bench) / var(bench). The two
// slices must already be aligned date-by-date. Undefined for fewer than 2
// common points or a zero benchmark variance.
func Beta(asset, bench []float64) Value {
	n := len(asset)
	if n != len(bench) || n < 2 {
		return Undefined
	}
	ma, mb := mean(asset), mean(bench)
	var cov, varB float64
	for i := range asset {
		cov += (asset[i] - ma) * (bench[i] - mb)
		varB += (bench[i] - mb) * (bench[i] - mb)
	}
	if varB == 0 {
		return Undefined
	}
	return Def(cov / varB)
}

// Alpha is Jensen's alpha, annualized: the asset's mean excess return
// minus beta times the benchmark's mean excess return, scaled by perYear.
func Alpha(asset, bench []float64, beta Value, riskFree, perYear float64) Value {
	b, ok := beta.Float()
	if !ok || len(asset) == 0 || len(asset) != len(bench) {
		return Undefined
	}
	rf := riskFree / perYear
	perPeriod := (mean(asset) - rf) - b*(mean(bench)-rf)
	return Def(perPeriod * perYear)
}
