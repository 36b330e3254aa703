package sentinel

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/sebakremis/TradeSentinel/date"
)

// Price data is persisted as JSONL: one {"ticker","date","close"} object
// per line, human-readable and git-friendly. Decoding tolerates blank
// lines; any malformed line aborts with the offending content quoted.

// jprice is the line object of the price file.
type jprice struct {
	Ticker string    `json:"ticker"`
	Date   date.Date `json:"date"`
	Close  float64   `json:"close"`
}

// DecodePrices reads a JSONL stream of price points into a PriceTable.
func DecodePrices(r io.Reader) (*PriceTable, error) {
	table := NewPriceTable()
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		txt := strings.TrimSpace(scanner.Text())
		if txt == "" {
			continue
		}
		var jp jprice
		if err := json.Unmarshal([]byte(txt), &jp); err != nil {
			return nil, fmt.Errorf("format error on line %d %q: %w", line, txt, err)
		}
		if err := table.Add(jp.Ticker, jp.Date, jp.Close); err != nil {
			return nil, fmt.Errorf("invalid price on line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read prices: %w", err)
	}
	return table, nil
}

// EncodePrices writes the table as JSONL, tickers in alphabetical order,
// dates in chronological order, so successive encodings diff cleanly.
func EncodePrices(w io.Writer, t *PriceTable) error {
	for _, ticker := range t.Tickers() {
		for day, close := range t.Series(ticker).Values() {
			data, err := json.Marshal(jprice{Ticker: ticker, Date: day, Close: close})
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
				return err
			}
		}
	}
	return nil
}

// ImportPrices extracts (date, close) pairs for one ticker out of a
// provider-shaped JSON document, using two JSONPath expressions that must
// select two arrays of equal length. Providers disagree wildly on their
// envelope; a pair of paths is enough to read most of them offline, e.g.
// "$.chart.result[0].timestamps" style documents. It returns the number of
// points appended to the table.
func ImportPrices(t *PriceTable, ticker string, r io.Reader, dateExpr, closeExpr string) (int, error) {
	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return 0, fmt.Errorf("cannot parse provider document: %w", err)
	}

	days, err := pathStrings(jobj, dateExpr)
	if err != nil {
		return 0, fmt.Errorf("date path %q: %w", dateExpr, err)
	}
	closes, err := pathFloats(jobj, closeExpr)
	if err != nil {
		return 0, fmt.Errorf("close path %q: %w", closeExpr, err)
	}
	if len(days) != len(closes) {
		return 0, fmt.Errorf("date and close arrays differ in length: %d vs %d", len(days), len(closes))
	}

	n := 0
	for i, s := range days {
		day, err := date.Parse(s)
		if err != nil {
			return n, fmt.Errorf("provider date %q: %w", s, err)
		}
		if err := t.Add(ticker, day, closes[i]); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func pathValues(jobj any, expr string) ([]any, error) {
	jval, err := jsonpath.Get(expr, jobj)
	if err != nil {
		return nil, err
	}
	// jsonpath is never clear about whether it returns a list or a single
	// answer; normalize to a list.
	if list, ok := jval.([]any); ok {
		return list, nil
	}
	return []any{jval}, nil
}

func pathStrings(jobj any, expr string) ([]string, error) {
	list, err := pathValues(jobj, expr)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(list))
	for i, v := range list {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("element %d is not a string: %v", i, v)
		}
		out[i] = s
	}
	return out, nil
}

func pathFloats(jobj any, expr string) ([]float64, error) {
	list, err := pathValues(jobj, expr)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(list))
	for i, v := range list {
		f, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("element %d is not a number: %v", i, v)
		}
		out[i] = f
	}
	return out, nil
}
