package sentinel

import (
	"fmt"
	"sort"

	"github.com/sebakremis/TradeSentinel/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Action is the kind of a transaction.
type Action string

const (
	Buy  Action = "BUY"
	Sell Action = "SELL"
)

// ParseAction parses a string into an Action.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case Buy:
		return Buy, nil
	case Sell:
		return Sell, nil
	default:
		return "", fmt.Errorf("unknown action %q", s)
	}
}

// Transaction is an immutable buy or sell event in a portfolio ledger.
type Transaction struct {
	Ticker   string    `json:"ticker"`
	Action   Action    `json:"action"`
	Quantity Quantity  `json:"quantity"`
	Price    Money     `json:"price"`
	Date     date.Date `json:"date"`
}

// NewBuy creates a buy transaction.
func NewBuy(day date.Date, ticker string, quantity Quantity, price Money) Transaction {
	return Transaction{Ticker: Normalize(ticker), Action: Buy, Quantity: quantity, Price: price, Date: day}
}

// NewSell creates a sell transaction.
func NewSell(day date.Date, ticker string, quantity Quantity, price Money) Transaction {
	return Transaction{Ticker: Normalize(ticker), Action: Sell, Quantity: quantity, Price: price, Date: day}
}

// Cost is the total amount of the transaction, quantity times unit price.
func (t Transaction) Cost() Money { return t.Price.Mul(t.Quantity) }

func (t Transaction) String() string {
	return fmt.Sprintf("%s %s %s %s @ %s", t.Date, t.Action, t.Quantity, t.Ticker, t.Price)
}

// Validate checks the shape of a transaction record: ticker present,
// known action, strictly positive quantity and price, and a date. Shape
// violations are rejected before any state mutation.
func (t Transaction) Validate() error {
	if Normalize(t.Ticker) == "" {
		return fmt.Errorf("transaction on %s: missing ticker", t.Date)
	}
	if t.Action != Buy && t.Action != Sell {
		return fmt.Errorf("transaction %s on %s: unknown action %q", t.Ticker, t.Date, t.Action)
	}
	if !t.Quantity.IsPositive() {
		return fmt.Errorf("transaction %s on %s: quantity %s must be > 0", t.Ticker, t.Date, t.Quantity)
	}
	if !t.Price.IsPositive() {
		return fmt.Errorf("transaction %s on %s: price %s must be > 0", t.Ticker, t.Date, t.Price)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("transaction %s: missing date", t.Ticker)
	}
	return nil
}

// sortTransactions orders transactions chronologically. The sort is
// stable: same-day transactions keep their insertion order.
func sortTransactions(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date.Before(txs[j].Date) })
}

// OversellError reports a SELL exceeding the quantity held at that date.
// The valuation engine never clamps such a transaction; it is surfaced
// whole so the caller can fix the ledger.
type OversellError struct {
	Ticker    string
	Date      date.Date
	Held      Quantity
	Requested Quantity
}

func (e *OversellError) Error() string {
	return fmt.Sprintf("cannot sell %s of %s on %s: only %s held", e.Requested, e.Ticker, e.Date, e.Held)
}

// MissingPriceError reports a ticker held on a date with no price coverage
// at or before that date.
type MissingPriceError struct {
	Ticker string
	Date   date.Date
}

func (e *MissingPriceError) Error() string {
	return fmt.Sprintf("no price for %s on or before %s", e.Ticker, e.Date)
}
