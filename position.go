package sentinel

import (
	"fmt"
	"strings"
)

// CostMethod defines how the cost basis of a position is reduced on sale.
type CostMethod int

const (
	// AverageCost reduces the cost basis proportionally to the quantity
	// sold (the average-cost convention).
	AverageCost CostMethod = iota
	// FIFO matches sales against the earliest remaining purchase lots.
	FIFO
)

func (m CostMethod) String() string {
	switch m {
	case AverageCost:
		return "average"
	case FIFO:
		return "fifo"
	default:
		return "unknown"
	}
}

// ParseCostMethod parses a string into a CostMethod.
func ParseCostMethod(s string) (CostMethod, error) {
	switch strings.ToLower(s) {
	case "average":
		return AverageCost, nil
	case "fifo":
		return FIFO, nil
	default:
		return 0, fmt.Errorf("unknown cost basis method: %q", s)
	}
}

// lot is a single purchase still (partially) held, used for FIFO matching.
type lot struct {
	quantity Quantity
	cost     Money // total cost of the remaining shares in the lot
}

// Position is the running state of one ticker: quantity held, cost basis
// of the shares still held, and cumulative realized PnL from sales.
type Position struct {
	Ticker    string
	Quantity  Quantity
	CostBasis Money
	Realized  Money

	method CostMethod
	lots   []lot
}

// NewPosition returns an empty position for a ticker.
func NewPosition(ticker string, method CostMethod) *Position {
	return &Position{Ticker: Normalize(ticker), method: method}
}

// Apply updates the position with a transaction. A SELL for more shares
// than held returns an *OversellError and leaves the position untouched;
// the state is only mutated once the transaction is fully checked.
func (p *Position) Apply(tx Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	if Normalize(tx.Ticker) != p.Ticker {
		return fmt.Errorf("transaction for %s applied to position %s", tx.Ticker, p.Ticker)
	}

	switch tx.Action {
	case Buy:
		cost := tx.Cost()
		p.Quantity = p.Quantity.Add(tx.Quantity)
		p.CostBasis = p.CostBasis.Add(cost)
		p.lots = append(p.lots, lot{quantity: tx.Quantity, cost: cost})
		return nil

	case Sell:
		if tx.Quantity.GreaterThan(p.Quantity) {
			return &OversellError{Ticker: p.Ticker, Date: tx.Date, Held: p.Quantity, Requested: tx.Quantity}
		}
		var removed Money
		switch p.method {
		case FIFO:
			removed = p.sellLots(tx.Quantity)
		default:
			// proportional reduction: basis * (sold / held)
			removed = p.CostBasis.Mul(tx.Quantity).Div(p.Quantity)
			p.sellLots(tx.Quantity) // keep lots in sync for later method switches
		}
		p.Quantity = p.Quantity.Sub(tx.Quantity)
		p.CostBasis = p.CostBasis.Sub(removed)
		if p.Quantity.IsZero() {
			// flush residual rounding so a closed position is exactly flat
			p.CostBasis = M(0)
			p.lots = nil
		}
		p.Realized = p.Realized.Add(tx.Cost().Sub(removed))
		return nil

	default:
		return fmt.Errorf("unsupported action %q", tx.Action)
	}
}

// sellLots consumes lots front-first for the quantity sold and returns the
// cost of the consumed shares.
func (p *Position) sellLots(toSell Quantity) Money {
	var consumed Money
	var remaining []lot
	for _, l := range p.lots {
		if toSell.IsZero() {
			remaining = append(remaining, l)
			continue
		}
		if l.quantity.GreaterThan(toSell) {
			// partial sale from this lot
			part := l.cost.Mul(toSell).Div(l.quantity)
			consumed = consumed.Add(part)
			remaining = append(remaining, lot{quantity: l.quantity.Sub(toSell), cost: l.cost.Sub(part)})
			toSell = Q(0)
		} else {
			consumed = consumed.Add(l.cost)
			toSell = toSell.Sub(l.quantity)
		}
	}
	p.lots = remaining
	return consumed
}

// MarketValue is the position value at the given unit price.
func (p *Position) MarketValue(price Money) Money { return price.Mul(p.Quantity) }

// Unrealized is the PnL of the shares still held at the given unit price.
func (p *Position) Unrealized(price Money) Money {
	return p.MarketValue(price).Sub(p.CostBasis)
}
