package sentinel

import (
	"fmt"
	"strings"

	"github.com/sebakremis/TradeSentinel/date"
)

// PriceTable holds adjusted-close price series for a set of tickers.
// Prices are strictly positive and dates unique per ticker; a single price
// per date already reflects corporate actions, so a simple percentage
// change equals total return.
type PriceTable struct {
	tickers []string // sorted
	index   map[string]*date.History[float64]
}

// NewPriceTable returns a new empty price table.
func NewPriceTable() *PriceTable {
	return &PriceTable{index: make(map[string]*date.History[float64])}
}

// Normalize upper-cases a ticker symbol, the keying convention of the table.
func Normalize(ticker string) string { return strings.ToUpper(strings.TrimSpace(ticker)) }

// Add records a close price for a ticker on a day. The price must be
// strictly positive. An existing price for that day is overwritten.
func (t *PriceTable) Add(ticker string, day date.Date, close float64) error {
	if close <= 0 {
		return fmt.Errorf("invalid price %v for %s on %s: must be > 0", close, ticker, day)
	}
	if day.IsZero() {
		return fmt.Errorf("invalid price for %s: missing date", ticker)
	}
	ticker = Normalize(ticker)
	if ticker == "" {
		return fmt.Errorf("invalid price on %s: missing ticker", day)
	}
	h, ok := t.index[ticker]
	if !ok {
		h = &date.History[float64]{}
		t.index[ticker] = h
		t.tickers = insertSorted(t.tickers, ticker)
	}
	h.Append(day, close)
	return nil
}

func insertSorted(list []string, s string) []string {
	for i, v := range list {
		if s < v {
			return append(list[:i], append([]string{s}, list[i:]...)...)
		}
	}
	return append(list, s)
}

// Has reports whether the table holds any price for the ticker.
func (t *PriceTable) Has(ticker string) bool {
	_, ok := t.index[Normalize(ticker)]
	return ok
}

// Tickers returns the tickers of the table in alphabetical order.
func (t *PriceTable) Tickers() []string { return append([]string(nil), t.tickers...) }

// Series returns the price history for a ticker, or nil if unknown.
func (t *PriceTable) Series(ticker string) *date.History[float64] {
	return t.index[Normalize(ticker)]
}

// Price returns the close price for the ticker on exactly that day.
func (t *PriceTable) Price(ticker string, day date.Date) (float64, bool) {
	h, ok := t.index[Normalize(ticker)]
	if !ok {
		return 0, false
	}
	return h.Get(day)
}

// PriceAsOf returns the close price on that day, or the most recent one
// before it.
func (t *PriceTable) PriceAsOf(ticker string, day date.Date) (float64, bool) {
	h, ok := t.index[Normalize(ticker)]
	if !ok {
		return 0, false
	}
	return h.ValueAsOf(day)
}

// Alignment is the policy used to put several price series on a common
// calendar. Dropping sparse-coverage dates silently has real consequences,
// so the choice is explicit.
type Alignment int

const (
	// AlignIntersect keeps only the dates present for every ticker
	// (inner join on date).
	AlignIntersect Alignment = iota
	// AlignForwardFill keeps the union of dates once every ticker has
	// traded at least once, carrying the last known price forward.
	AlignForwardFill
)

func (a Alignment) String() string {
	switch a {
	case AlignIntersect:
		return "intersect"
	case AlignForwardFill:
		return "ffill"
	default:
		return "unknown"
	}
}

// ParseAlignment parses a string into an Alignment.
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(s) {
	case "intersect", "inner":
		return AlignIntersect, nil
	case "ffill", "forward-fill":
		return AlignForwardFill, nil
	default:
		return 0, fmt.Errorf("unknown alignment %q", s)
	}
}

// Align puts the series of the given tickers on a common calendar within
// the window, per the alignment policy. It returns the common dates and,
// for each ticker in input order, the close prices on those dates. An
// unknown ticker is an error; an empty intersection is not (the caller
// decides what a degenerate calendar means).
func (t *PriceTable) Align(tickers []string, window date.Range, mode Alignment) ([]date.Date, [][]float64, error) {
	histories := make([]*date.History[float64], len(tickers))
	for i, ticker := range tickers {
		h := t.Series(ticker)
		if h == nil {
			return nil, nil, fmt.Errorf("no prices for ticker %q", Normalize(ticker))
		}
		histories[i] = h
	}
	if len(histories) == 0 {
		return nil, nil, nil
	}

	// candidate calendar: the union of all dates within the window
	var union date.History[float64]
	for _, h := range histories {
		for day := range h.Values() {
			if window.Contains(day) {
				union.Append(day, 0)
			}
		}
	}

	var days []date.Date
	prices := make([][]float64, len(tickers))
	for day := range union.Values() {
		row := make([]float64, len(histories))
		ok := true
		for i, h := range histories {
			var p float64
			var found bool
			switch mode {
			case AlignForwardFill:
				p, found = h.ValueAsOf(day)
			default:
				p, found = h.Get(day)
			}
			if !found {
				ok = false
				break
			}
			row[i] = p
		}
		if !ok {
			continue
		}
		days = append(days, day)
		for i := range histories {
			prices[i] = append(prices[i], row[i])
		}
	}
	return days, prices, nil
}

// ReturnsOf converts aligned close prices into simple percentage changes
// between consecutive dates: one element shorter than its input, empty
// for fewer than 2 prices.
func ReturnsOf(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	rets := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		rets[i-1] = (closes[i] - closes[i-1]) / closes[i-1]
	}
	return rets
}
