package sentinel

import (
	"errors"
	"testing"

	"github.com/sebakremis/TradeSentinel/date"
)

func TestValidateName(t *testing.T) {
	testCases := []struct {
		name    string
		wantErr bool
	}{
		{"growth", false},
		{"My Portfolio 2025", false},
		{"tech-stocks_v2.1", false},
		{"", true},
		{"   ", true},
		{"a/b", true},
		{"dots..ok", false},
		{"no:colons", true},
	}
	for _, tc := range testCases {
		err := ValidateName(tc.name)
		if (err != nil) != tc.wantErr {
			t.Errorf("ValidateName(%q) error = %v, wantErr %v", tc.name, err, tc.wantErr)
		}
	}
}

func TestPortfolioWithTransaction(t *testing.T) {
	p, err := NewPortfolio("growth")
	if err != nil {
		t.Fatalf("NewPortfolio: %v", err)
	}

	p, err = p.WithTransaction(NewBuy(date.MustParse("2025-01-02"), "AAA", Q(10), M(100)))
	if err != nil {
		t.Fatalf("WithTransaction(buy): %v", err)
	}
	p, err = p.WithTransaction(NewSell(date.MustParse("2025-01-06"), "AAA", Q(5), M(110)))
	if err != nil {
		t.Fatalf("WithTransaction(sell): %v", err)
	}
	if len(p.Transactions) != 2 {
		t.Fatalf("ledger has %d transactions, want 2", len(p.Transactions))
	}

	// selling more than held is rejected and the ledger stays as it was
	bad, err := p.WithTransaction(NewSell(date.MustParse("2025-01-07"), "AAA", Q(6), M(110)))
	var oversell *OversellError
	if !errors.As(err, &oversell) {
		t.Fatalf("WithTransaction(oversell) error = %v, want *OversellError", err)
	}
	if len(bad.Transactions) != 2 {
		t.Errorf("rejected transaction changed the ledger: %d transactions", len(bad.Transactions))
	}
}

func TestPortfolioWithTransactionOutOfOrder(t *testing.T) {
	p, _ := NewPortfolio("growth")
	p, err := p.WithTransaction(NewBuy(date.MustParse("2025-01-06"), "AAA", Q(10), M(100)))
	if err != nil {
		t.Fatalf("WithTransaction: %v", err)
	}
	// a sell dated before the only buy must fail integrity replay
	if _, err := p.WithTransaction(NewSell(date.MustParse("2025-01-02"), "AAA", Q(5), M(100))); err == nil {
		t.Error("WithTransaction should reject a sell dated before any purchase")
	}
}

func TestPortfolioWithoutTransaction(t *testing.T) {
	p, _ := NewPortfolio("growth")
	p, _ = p.WithTransaction(NewBuy(date.MustParse("2025-01-02"), "AAA", Q(10), M(100)))
	p, _ = p.WithTransaction(NewSell(date.MustParse("2025-01-06"), "AAA", Q(10), M(110)))

	// dropping the buy would leave the sell unbacked
	if _, err := p.WithoutTransaction(0); err == nil {
		t.Error("WithoutTransaction should reject removing a buy a later sell depends on")
	}
	// dropping the sell is fine
	next, err := p.WithoutTransaction(1)
	if err != nil {
		t.Fatalf("WithoutTransaction(1): %v", err)
	}
	if len(next.Transactions) != 1 {
		t.Errorf("ledger has %d transactions, want 1", len(next.Transactions))
	}
	if _, err := p.WithoutTransaction(5); err == nil {
		t.Error("WithoutTransaction should reject an out-of-range index")
	}
}

func TestPortfolioTickers(t *testing.T) {
	p, _ := NewPortfolio("growth")
	p, _ = p.WithTransaction(NewBuy(date.MustParse("2025-01-02"), "bbb", Q(1), M(1)))
	p, _ = p.WithTransaction(NewBuy(date.MustParse("2025-01-03"), "AAA", Q(1), M(1)))
	p, _ = p.WithTransaction(NewBuy(date.MustParse("2025-01-06"), "BBB", Q(1), M(1)))

	got := p.Tickers()
	if len(got) != 2 || got[0] != "AAA" || got[1] != "BBB" {
		t.Errorf("Tickers = %v, want [AAA BBB]", got)
	}
}

// storeTest exercises the Store contract against any implementation.
func storeTest(t *testing.T, s Store) {
	t.Helper()

	if _, err := s.Load("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(missing) error = %v, want ErrNotFound", err)
	}
	if err := s.Delete("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(missing) error = %v, want ErrNotFound", err)
	}

	p, _ := NewPortfolio("growth")
	p, _ = p.WithTransaction(NewBuy(date.MustParse("2025-01-02"), "AAA", Q(10.5), M(100.25)))
	if err := s.Save(p); err != nil {
		t.Fatalf("Save: %v", err)
	}
	q, _ := NewPortfolio("income")
	if err := s.Save(q); err != nil {
		t.Fatalf("Save: %v", err)
	}

	names, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 2 || names[0] != "growth" || names[1] != "income" {
		t.Errorf("List = %v, want [growth income]", names)
	}

	back, err := s.Load("growth")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if back.Name != "growth" || len(back.Transactions) != 1 {
		t.Fatalf("Load = %q with %d transactions, want growth with 1", back.Name, len(back.Transactions))
	}
	tx := back.Transactions[0]
	if tx.Ticker != "AAA" || tx.Action != Buy || !tx.Quantity.Equal(Q(10.5)) || !tx.Price.Equal(M(100.25)) {
		t.Errorf("round-tripped transaction = %s, want 10.5 AAA @ $100.25", tx)
	}

	if err := Rename(s, "growth", "long-term"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if _, err := s.Load("growth"); !errors.Is(err, ErrNotFound) {
		t.Errorf("old name still loads after rename")
	}
	if _, err := s.Load("long-term"); err != nil {
		t.Errorf("Load(renamed): %v", err)
	}
	// renaming onto an existing portfolio is refused
	if err := Rename(s, "long-term", "income"); err == nil {
		t.Error("Rename onto an existing name should fail")
	}

	if err := s.Delete("income"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	names, _ = s.List()
	if len(names) != 1 {
		t.Errorf("List after delete = %v, want one name", names)
	}
}

func TestMemStore(t *testing.T) {
	storeTest(t, NewMemStore())
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	storeTest(t, s)
}

func TestMemStoreIsolation(t *testing.T) {
	s := NewMemStore()
	p, _ := NewPortfolio("growth")
	p, _ = p.WithTransaction(NewBuy(date.MustParse("2025-01-02"), "AAA", Q(10), M(100)))
	if err := s.Save(p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, _ := s.Load("growth")
	loaded.Transactions[0].Ticker = "HACKED"

	again, _ := s.Load("growth")
	if again.Transactions[0].Ticker != "AAA" {
		t.Error("mutating a loaded portfolio leaked into the store")
	}
}
