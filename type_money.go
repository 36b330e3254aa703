package sentinel

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal.
func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// Quantity is an exact number of shares or units. Transactions carry exact
// decimals so that price times quantity accumulates without float drift.
type Quantity struct {
	value decimal.Decimal
}

// Q creates a Quantity from a number.
func Q[T float64 | int | int64 | decimal.Decimal](value T) Quantity {
	return Quantity{value: newDecimal(value)}
}

func (q Quantity) Add(p Quantity) Quantity      { return Quantity{value: q.value.Add(p.value)} }
func (q Quantity) Sub(p Quantity) Quantity      { return Quantity{value: q.value.Sub(p.value)} }
func (q Quantity) Div(p Quantity) Quantity      { return Quantity{value: q.value.Div(p.value)} }
func (q Quantity) Equal(p Quantity) bool        { return q.value.Equal(p.value) }
func (q Quantity) GreaterThan(p Quantity) bool  { return q.value.GreaterThan(p.value) }
func (q Quantity) LessThan(p Quantity) bool     { return q.value.LessThan(p.value) }
func (q Quantity) IsZero() bool                 { return q.value.IsZero() }
func (q Quantity) IsPositive() bool             { return q.value.IsPositive() }
func (q Quantity) IsNegative() bool             { return q.value.IsNegative() }
func (q Quantity) String() string               { return q.value.String() }
func (q Quantity) AsFloat() float64             { return q.value.InexactFloat64() }

func (q Quantity) MarshalJSON() ([]byte, error)  { return q.value.MarshalJSON() }
func (q *Quantity) UnmarshalJSON(b []byte) error { return q.value.UnmarshalJSON(b) }

// Money is an exact monetary value. The toolkit accounts in a single
// reporting currency; the code defaults to USD and only uses the currency
// for display formatting.
type Money struct {
	value decimal.Decimal
	cur   string
}

// Currency is the reporting currency used for display.
const Currency = "USD"

// M creates a Money value in the reporting currency.
func M[T float64 | int | int64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value), cur: Currency}
}

func (m Money) Add(n Money) Money        { return Money{value: m.value.Add(n.value), cur: Currency} }
func (m Money) Sub(n Money) Money        { return Money{value: m.value.Sub(n.value), cur: Currency} }
func (m Money) Neg() Money               { return Money{value: m.value.Neg(), cur: Currency} }
func (m Money) Mul(q Quantity) Money     { return Money{value: m.value.Mul(q.value), cur: Currency} }
func (m Money) Div(q Quantity) Money     { return Money{value: m.value.Div(q.value), cur: Currency} }
func (m Money) Equal(n Money) bool       { return m.value.Equal(n.value) }
func (m Money) IsZero() bool             { return m.value.IsZero() }
func (m Money) IsPositive() bool         { return m.value.IsPositive() }
func (m Money) IsNegative() bool         { return m.value.IsNegative() }
func (m Money) AsFloat() float64         { return m.value.InexactFloat64() }
func (m Money) Decimal() decimal.Decimal { return m.value }

// currency resolves the display currency, defaulting to the reporting one.
func (m Money) currency() *money.Currency {
	cur := m.cur
	if cur == "" {
		cur = Currency
	}
	return money.New(0, cur).Currency()
}

// String formats the value with its currency symbol, e.g. "$1,234.56".
func (m Money) String() string {
	cur := m.currency()
	cents := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(cents.IntPart())
}

// SignedString formats the value with an explicit sign; zero renders as "-".
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) MarshalJSON() ([]byte, error)  { return m.value.MarshalJSON() }
func (m *Money) UnmarshalJSON(b []byte) error { return m.value.UnmarshalJSON(b) }
