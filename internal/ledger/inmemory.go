package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type inMemoryStore struct {
	mu      sync.RWMutex
	ledgers map[string]*Ledger
	refs    map[string]string
}

// NewInMemory creates a concurrency-safe in-memory ledger store useful for unit tests.
func NewInMemory() Store {
	return &inMemoryStore{
		ledgers: make(map[string]*Ledger),
		refs:    make(map[string]string),
	}
}

func (s *inMemoryStore) Get(_ context.Context, userID string) (Ledger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ledger, exists := s.ledgers[userID]
	if !exists {
		return Ledger{}, ErrNotFound
	}
	return snapshot(ledger), nil
}

func (s *inMemoryStore) Ensure(_ context.Context, userID string) (Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ledger, exists := s.ledgers[userID]
	if !exists {
		ledger = &Ledger{UserID: userID, Balance: decimal.Zero}
		s.ledgers[userID] = ledger
	}
	return snapshot(ledger), nil
}

func (s *inMemoryStore) Apply(_ context.Context, userID string, txn Transaction) (Ledger, error) {
	if !txn.Amount.IsPositive() {
		return Ledger{}, fmt.Errorf("amount must be positive")
	}
	if txn.Kind != KindDeposit && txn.Kind != KindWithdrawal {
		return Ledger{}, fmt.Errorf("unknown transaction kind %q", txn.Kind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, exists := s.ledgers[userID]
	if !exists {
		return Ledger{}, ErrNotFound
	}

	if _, seen := s.refs[txn.ExternalRef]; seen {
		return snapshot(ledger), ErrDuplicateReference
	}

	next := ledger.Balance.Add(txn.SignedAmount())
	if next.IsNegative() {
		return Ledger{}, ErrInsufficientFunds
	}

	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}
	if txn.RecordedAt.IsZero() {
		txn.RecordedAt = time.Now().UTC()
	}

	ledger.Balance = next
	ledger.Transactions = append(ledger.Transactions, txn)
	s.refs[txn.ExternalRef] = userID

	return snapshot(ledger), nil
}

// snapshot copies the ledger so callers cannot mutate stored history.
func snapshot(ledger *Ledger) Ledger {
	out := Ledger{UserID: ledger.UserID, Balance: ledger.Balance}
	out.Transactions = make([]Transaction, len(ledger.Transactions))
	copy(out.Transactions, ledger.Transactions)
	return out
}
