package paypack

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrDeclined indicates the gateway explicitly refused the transaction, or
	// the request failed before any cash movement could have been initiated.
	// No money moved.
	ErrDeclined = errors.New("gateway declined transaction")

	// ErrIndeterminate indicates a timeout or transport failure while the
	// transaction was in flight: whether money moved is unknown. Callers must
	// not retry blindly.
	ErrIndeterminate = errors.New("gateway outcome indeterminate")
)

// Outcome is the gateway's report for a confirmed transaction. It is consumed
// once by the orchestrator and not persisted.
type Outcome struct {
	Reference string
	Status    string
	Raw       json.RawMessage
}

// Client performs the side-effecting external money movement. Implementations
// never retry: retry policy belongs to the caller, which must treat an
// indeterminate outcome as terminal.
type Client interface {
	Execute(ctx context.Context, kind string, amount decimal.Decimal, payerNumber string) (Outcome, error)
}
