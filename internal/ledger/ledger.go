package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound indicates the user has never transacted and owns no ledger yet.
	ErrNotFound = errors.New("ledger not found")

	// ErrInsufficientFunds occurs when a withdrawal would drive the balance
	// negative at the moment of application.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrDuplicateReference indicates the gateway reference is already present
	// in the transaction history and therefore the operation should be treated
	// as idempotent.
	ErrDuplicateReference = errors.New("duplicate transaction reference")
)

const (
	// KindDeposit credits the ledger balance.
	KindDeposit = "deposit"
	// KindWithdrawal debits the ledger balance.
	KindWithdrawal = "withdrawal"
)

// Transaction is one completed deposit or withdrawal, immutable once recorded.
type Transaction struct {
	ID          string          `json:"id"`
	Kind        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	ExternalRef string          `json:"paypackTransactionId"`
	RecordedAt  time.Time       `json:"date"`
}

// SignedAmount returns the balance delta this transaction represents.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Kind == KindWithdrawal {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Ledger is the per-user durable balance plus append-only transaction history.
// Insertion order of Transactions is chronological order.
type Ledger struct {
	UserID       string          `json:"user"`
	Balance      decimal.Decimal `json:"balance"`
	Transactions []Transaction   `json:"transactions"`
}

// Store defines the contract implemented by ledger backends (e.g. Postgres).
type Store interface {
	// Get fetches the ledger for a user. Absence is signalled with ErrNotFound,
	// not treated as a failure.
	Get(ctx context.Context, userID string) (Ledger, error)

	// Ensure returns the existing ledger or creates an empty one. Safe to call
	// concurrently for the same user: callers converge on a single ledger.
	Ensure(ctx context.Context, userID string) (Ledger, error)

	// Apply appends the transaction and adjusts the balance in one atomic step.
	// Funds are re-verified here rather than relying on any earlier pre-check,
	// so concurrent withdrawals cannot jointly overdraw. A transaction whose
	// ExternalRef already exists in history is not applied again; the current
	// ledger is returned with ErrDuplicateReference.
	Apply(ctx context.Context, userID string, tx Transaction) (Ledger, error)
}
