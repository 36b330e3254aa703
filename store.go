package sentinel

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Portfolio is a named, persisted sequence of transactions. The valuation
// engine only ever borrows a snapshot: mutation helpers work on a copy and
// return the updated portfolio for the caller to persist, all-or-nothing.
type Portfolio struct {
	Name         string        `json:"name"`
	Transactions []Transaction `json:"transactions"`
	Created      time.Time     `json:"created"`
	Updated      time.Time     `json:"updated"`
}

// NewPortfolio creates an empty named portfolio.
func NewPortfolio(name string) (Portfolio, error) {
	if err := ValidateName(name); err != nil {
		return Portfolio{}, err
	}
	now := time.Now().UTC()
	return Portfolio{Name: name, Created: now, Updated: now}, nil
}

// ValidateName checks a portfolio name: non-empty, and safe to use as a
// document key (letters, digits, spaces, '-', '_' and '.').
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("portfolio name is empty")
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == ' ' || r == '-' || r == '_' || r == '.':
		default:
			return fmt.Errorf("portfolio name %q contains invalid character %q", name, r)
		}
	}
	return nil
}

// clone returns a deep enough copy: transactions are immutable values.
func (p Portfolio) clone() Portfolio {
	p.Transactions = slices.Clone(p.Transactions)
	return p
}

// checkLedger replays the full transaction sequence in chronological order
// and fails on the first integrity violation (a SELL driving a position
// negative). Shape is validated before any replay.
func checkLedger(txs []Transaction, method CostMethod) error {
	for _, tx := range txs {
		if err := tx.Validate(); err != nil {
			return err
		}
	}
	sorted := slices.Clone(txs)
	sortTransactions(sorted)

	positions := make(map[string]*Position)
	for _, tx := range sorted {
		ticker := Normalize(tx.Ticker)
		pos, ok := positions[ticker]
		if !ok {
			pos = NewPosition(ticker, method)
			positions[ticker] = pos
		}
		if err := pos.Apply(tx); err != nil {
			return err
		}
	}
	return nil
}

// WithTransaction returns a copy of the portfolio with the transaction
// appended. The transaction is shape-checked and the whole ledger is
// replayed to reject an oversell; on error the original portfolio is
// returned unchanged.
func (p Portfolio) WithTransaction(tx Transaction) (Portfolio, error) {
	if err := tx.Validate(); err != nil {
		return p, err
	}
	next := p.clone()
	next.Transactions = append(next.Transactions, tx)
	if err := checkLedger(next.Transactions, AverageCost); err != nil {
		return p, err
	}
	next.Updated = time.Now().UTC()
	return next, nil
}

// WithoutTransaction returns a copy of the portfolio with the i-th
// transaction (in stored order) removed. Removing a buy that a later sell
// depends on is an integrity error.
func (p Portfolio) WithoutTransaction(i int) (Portfolio, error) {
	if i < 0 || i >= len(p.Transactions) {
		return p, fmt.Errorf("no transaction at index %d", i)
	}
	next := p.clone()
	next.Transactions = slices.Delete(next.Transactions, i, i+1)
	if err := checkLedger(next.Transactions, AverageCost); err != nil {
		return p, err
	}
	next.Updated = time.Now().UTC()
	return next, nil
}

// Renamed returns a copy of the portfolio under a new name.
func (p Portfolio) Renamed(name string) (Portfolio, error) {
	if err := ValidateName(name); err != nil {
		return p, err
	}
	next := p.clone()
	next.Name = name
	next.Updated = time.Now().UTC()
	return next, nil
}

// Tickers returns the distinct tickers of the portfolio in alphabetical order.
func (p Portfolio) Tickers() []string {
	seen := make(map[string]bool)
	var tickers []string
	for _, tx := range p.Transactions {
		ticker := Normalize(tx.Ticker)
		if !seen[ticker] {
			seen[ticker] = true
			tickers = append(tickers, ticker)
		}
	}
	slices.Sort(tickers)
	return tickers
}

// ErrNotFound is returned by a Store when no portfolio has that name.
var ErrNotFound = errors.New("portfolio not found")

// Store is the persistence capability for named portfolios. The engine
// never owns persisted state; implementations decide on-disk encoding and
// concurrency (last writer wins).
type Store interface {
	Load(name string) (Portfolio, error)
	Save(p Portfolio) error
	List() ([]string, error)
	Delete(name string) error
}

// MemStore is an in-memory Store, for tests and throwaway sessions.
type MemStore struct {
	m map[string]Portfolio
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore { return &MemStore{m: make(map[string]Portfolio)} }

func (s *MemStore) Load(name string) (Portfolio, error) {
	p, ok := s.m[name]
	if !ok {
		return Portfolio{}, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return p.clone(), nil
}

func (s *MemStore) Save(p Portfolio) error {
	if err := ValidateName(p.Name); err != nil {
		return err
	}
	s.m[p.Name] = p.clone()
	return nil
}

func (s *MemStore) List() ([]string, error) {
	names := make([]string, 0, len(s.m))
	for name := range s.m {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

func (s *MemStore) Delete(name string) error {
	if _, ok := s.m[name]; !ok {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	delete(s.m, name)
	return nil
}

// Rename moves a portfolio to a new name in the store: load, save under
// the new name, delete the old one. The target name must be free.
func Rename(s Store, oldName, newName string) error {
	if _, err := s.Load(newName); err == nil {
		return fmt.Errorf("portfolio %q already exists", newName)
	}
	p, err := s.Load(oldName)
	if err != nil {
		return err
	}
	renamed, err := p.Renamed(newName)
	if err != nil {
		return err
	}
	if err := s.Save(renamed); err != nil {
		return err
	}
	return s.Delete(oldName)
}
