package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PostgresStore persists ledgers in PostgreSQL. Balance adjustments are made
// with a conditional update so the funds check and the decrement happen as one
// indivisible operation.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore constructs a Postgres-backed ledger store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Get loads the ledger and its full transaction history for a user.
func (s *PostgresStore) Get(ctx context.Context, userID string) (Ledger, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return Ledger{}, err
	}

	var balanceText string
	row := s.db.QueryRow(ctx, `SELECT balance::text FROM wallets WHERE user_id = $1`, uid)
	if err := row.Scan(&balanceText); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Ledger{}, ErrNotFound
		}
		return Ledger{}, err
	}
	balance, err := decimal.NewFromString(balanceText)
	if err != nil {
		return Ledger{}, fmt.Errorf("decode balance: %w", err)
	}

	rows, err := s.db.Query(ctx, `SELECT id, kind, amount::text, external_ref, recorded_at
        FROM wallet_transactions WHERE user_id = $1 ORDER BY seq`, uid)
	if err != nil {
		return Ledger{}, err
	}
	defer rows.Close()

	ledger := Ledger{UserID: userID, Balance: balance}
	for rows.Next() {
		var (
			id         uuid.UUID
			tx         Transaction
			amountText string
			recordedAt time.Time
		)
		if err := rows.Scan(&id, &tx.Kind, &amountText, &tx.ExternalRef, &recordedAt); err != nil {
			return Ledger{}, err
		}
		if tx.Amount, err = decimal.NewFromString(amountText); err != nil {
			return Ledger{}, fmt.Errorf("decode amount: %w", err)
		}
		tx.ID = id.String()
		tx.RecordedAt = recordedAt.UTC()
		ledger.Transactions = append(ledger.Transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return Ledger{}, err
	}

	return ledger, nil
}

// Ensure creates an empty ledger on first use. ON CONFLICT DO NOTHING makes
// concurrent first-time creation converge on a single row.
func (s *PostgresStore) Ensure(ctx context.Context, userID string) (Ledger, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return Ledger{}, err
	}
	if _, err := s.db.Exec(ctx, `INSERT INTO wallets (user_id, balance) VALUES ($1, 0)
        ON CONFLICT (user_id) DO NOTHING`, uid); err != nil {
		return Ledger{}, err
	}
	return s.Get(ctx, userID)
}

// Apply appends a transaction and adjusts the balance atomically. The history
// is append-only: rows are never updated or deleted here.
func (s *PostgresStore) Apply(ctx context.Context, userID string, txn Transaction) (Ledger, error) {
	if !txn.Amount.IsPositive() {
		return Ledger{}, fmt.Errorf("amount must be positive")
	}
	if txn.Kind != KindDeposit && txn.Kind != KindWithdrawal {
		return Ledger{}, fmt.Errorf("unknown transaction kind %q", txn.Kind)
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		return Ledger{}, err
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Ledger{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	delta := txn.SignedAmount()
	cmd, err := tx.Exec(ctx, `UPDATE wallets SET balance = balance + $2::numeric
        WHERE user_id = $1 AND balance + $2::numeric >= 0`, uid, delta.String())
	if err != nil {
		return Ledger{}, err
	}
	if cmd.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM wallets WHERE user_id = $1)`, uid).Scan(&exists); err != nil {
			return Ledger{}, err
		}
		if !exists {
			return Ledger{}, ErrNotFound
		}
		return Ledger{}, ErrInsufficientFunds
	}

	txID := uuid.New()
	if txn.ID != "" {
		if txID, err = uuid.Parse(txn.ID); err != nil {
			return Ledger{}, err
		}
	}
	recordedAt := txn.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now().UTC()
	}

	// Idempotency guard keyed on the unique gateway reference. Two concurrent
	// applies with the same reference serialize on the index: the loser sees
	// zero rows inserted and the rollback undoes its balance adjustment.
	cmd, err = tx.Exec(ctx, `INSERT INTO wallet_transactions (id, user_id, kind, amount, external_ref, recorded_at)
        VALUES ($1, $2, $3, $4::numeric, $5, $6)
        ON CONFLICT (external_ref) DO NOTHING`, txID, uid, txn.Kind, txn.Amount.String(), txn.ExternalRef, recordedAt.UTC())
	if err != nil {
		return Ledger{}, err
	}
	if cmd.RowsAffected() == 0 {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			return Ledger{}, err
		}
		ledger, getErr := s.Get(ctx, userID)
		if getErr != nil {
			return Ledger{}, getErr
		}
		return ledger, ErrDuplicateReference
	}

	if err := tx.Commit(ctx); err != nil {
		return Ledger{}, err
	}

	return s.Get(ctx, userID)
}
