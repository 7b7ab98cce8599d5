package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
)

func TestInMemoryStore_BalanceMatchesHistory(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	if _, err := s.Ensure(ctx, "user-a"); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	steps := []Transaction{
		{Kind: KindDeposit, Amount: decimal.NewFromInt(1_000), ExternalRef: "tx-1"},
		{Kind: KindDeposit, Amount: decimal.NewFromInt(250), ExternalRef: "tx-2"},
		{Kind: KindWithdrawal, Amount: decimal.NewFromInt(400), ExternalRef: "tx-3"},
	}
	for _, txn := range steps {
		if _, err := s.Apply(ctx, "user-a", txn); err != nil {
			t.Fatalf("apply %s: %v", txn.ExternalRef, err)
		}
	}

	ledger, err := s.Get(ctx, "user-a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	sum := decimal.Zero
	for _, txn := range ledger.Transactions {
		sum = sum.Add(txn.SignedAmount())
	}
	if !ledger.Balance.Equal(sum) {
		t.Fatalf("balance %s does not match history sum %s", ledger.Balance, sum)
	}
	if !ledger.Balance.Equal(decimal.NewFromInt(850)) {
		t.Fatalf("expected balance 850, got %s", ledger.Balance)
	}
	if len(ledger.Transactions) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(ledger.Transactions))
	}
}

func TestInMemoryStore_GetAbsent(t *testing.T) {
	s := NewInMemory()
	if _, err := s.Get(context.Background(), "never-transacted"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInMemoryStore_WithdrawalCannotOverdraw(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()
	s.Ensure(ctx, "user-a")
	SeedBalance(s, "user-a", 200)

	_, err := s.Apply(ctx, "user-a", Transaction{Kind: KindWithdrawal, Amount: decimal.NewFromInt(500), ExternalRef: "tx-over"})
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}

	ledger, _ := s.Get(ctx, "user-a")
	if !ledger.Balance.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("balance changed after rejected withdrawal: %s", ledger.Balance)
	}
	if len(ledger.Transactions) != 0 {
		t.Fatalf("rejected withdrawal must not be recorded")
	}
}

func TestInMemoryStore_DuplicateReferenceAppliedOnce(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()
	s.Ensure(ctx, "user-a")

	txn := Transaction{Kind: KindDeposit, Amount: decimal.NewFromInt(1_000), ExternalRef: "tx-dup"}
	if _, err := s.Apply(ctx, "user-a", txn); err != nil {
		t.Fatalf("first apply: %v", err)
	}

	ledger, err := s.Apply(ctx, "user-a", txn)
	if !errors.Is(err, ErrDuplicateReference) {
		t.Fatalf("expected duplicate reference, got %v", err)
	}
	if !ledger.Balance.Equal(decimal.NewFromInt(1_000)) {
		t.Fatalf("balance adjusted twice: %s", ledger.Balance)
	}
	if len(ledger.Transactions) != 1 {
		t.Fatalf("expected one history entry, got %d", len(ledger.Transactions))
	}
}

func TestInMemoryStore_ConcurrentDuplicateReference(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()
	s.Ensure(ctx, "user-a")

	// Racing applies with the same gateway reference: exactly one may land.
	const workers = 8
	txn := Transaction{Kind: KindDeposit, Amount: decimal.NewFromInt(500), ExternalRef: "tx-race"}

	var wg sync.WaitGroup
	var mu sync.Mutex
	applied, duplicated := 0, 0
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Apply(ctx, "user-a", txn)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				applied++
			case errors.Is(err, ErrDuplicateReference):
				duplicated++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if applied != 1 || duplicated != workers-1 {
		t.Fatalf("expected 1 apply and %d duplicates, got %d/%d", workers-1, applied, duplicated)
	}

	ledger, _ := s.Get(ctx, "user-a")
	if !ledger.Balance.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("expected balance 500, got %s", ledger.Balance)
	}
	if len(ledger.Transactions) != 1 {
		t.Fatalf("expected one history entry, got %d", len(ledger.Transactions))
	}
}

func TestInMemoryStore_ConcurrentWithdrawals(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()
	s.Ensure(ctx, "user-a")
	SeedBalance(s, "user-a", 1_000)

	// Balance 1000, 10 concurrent withdrawals of 300: exactly 3 may succeed.
	const workers = 10
	amount := decimal.NewFromInt(300)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded, rejected := 0, 0
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Apply(ctx, "user-a", Transaction{
				Kind:        KindWithdrawal,
				Amount:      amount,
				ExternalRef: fmt.Sprintf("tx-%d", i),
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrInsufficientFunds):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if succeeded != 3 || rejected != workers-3 {
		t.Fatalf("expected 3 successes and %d rejections, got %d/%d", workers-3, succeeded, rejected)
	}

	ledger, _ := s.Get(ctx, "user-a")
	if !ledger.Balance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected balance 100, got %s", ledger.Balance)
	}
}

func TestInMemoryStore_ConcurrentEnsure(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Ensure(ctx, "user-a"); err != nil {
				t.Errorf("ensure: %v", err)
			}
		}()
	}
	wg.Wait()

	mem := s.(*inMemoryStore)
	mem.mu.RLock()
	defer mem.mu.RUnlock()
	if len(mem.ledgers) != 1 {
		t.Fatalf("expected one ledger, got %d", len(mem.ledgers))
	}
}
