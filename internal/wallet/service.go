package wallet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gilberthappi/keya-health-be/internal/ledger"
	"github.com/gilberthappi/keya-health-be/internal/notification"
	"github.com/gilberthappi/keya-health-be/internal/paypack"
)

var (
	// ErrValidation indicates a malformed transaction request, rejected before
	// any state change.
	ErrValidation = errors.New("invalid transaction request")

	// ErrGatewayDeclined indicates the provider explicitly refused; the ledger
	// is untouched.
	ErrGatewayDeclined = errors.New("transaction declined by gateway")

	// ErrIndeterminate indicates the gateway outcome is unknown. The request
	// is never retried automatically: a blind retry risks moving cash twice.
	ErrIndeterminate = errors.New("transaction outcome indeterminate")

	// ErrUnreconciled indicates the gateway confirmed the movement but the
	// ledger write failed. The external system and the ledger now disagree.
	ErrUnreconciled = errors.New("transaction unreconciled")
)

// Service is the transaction orchestrator: the only component that mutates a
// ledger as the result of a money-movement request, and the only one that
// talks to the payment gateway for that purpose.
type Service struct {
	store          ledger.Store
	gateway        paypack.Client
	notifier       notification.Notifier
	logger         *slog.Logger
	gatewayTimeout time.Duration
}

// NewService constructs the orchestrator.
func NewService(store ledger.Store, gateway paypack.Client, notifier notification.Notifier, logger *slog.Logger, gatewayTimeout time.Duration) *Service {
	return &Service{
		store:          store,
		gateway:        gateway,
		notifier:       notifier,
		logger:         logger,
		gatewayTimeout: gatewayTimeout,
	}
}

// SubmitInput captures a money-movement request.
type SubmitInput struct {
	UserID      string
	Kind        string
	Amount      decimal.Decimal
	PayerNumber string
}

// Get returns the caller's ledger, or ledger.ErrNotFound if they never transacted.
func (s *Service) Get(ctx context.Context, userID string) (ledger.Ledger, error) {
	return s.store.Get(ctx, userID)
}

// Submit runs a transaction through its full lifecycle: funds pre-check,
// gateway call, atomic ledger apply. Every combination of gateway outcome and
// ledger outcome maps to a distinct error rather than a generic failure. The
// transaction record is constructed only after gateway confirmation, so
// nothing speculative ever enters the history.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (ledger.Ledger, error) {
	if err := validate(input); err != nil {
		return ledger.Ledger{}, err
	}

	led, err := s.store.Ensure(ctx, input.UserID)
	if err != nil {
		return ledger.Ledger{}, err
	}

	// Cheap rejection before touching the external system. The authoritative
	// funds check happens again inside Apply.
	if input.Kind == ledger.KindWithdrawal && input.Amount.GreaterThan(led.Balance) {
		return ledger.Ledger{}, ledger.ErrInsufficientFunds
	}

	gwCtx := ctx
	if s.gatewayTimeout > 0 {
		var cancel context.CancelFunc
		gwCtx, cancel = context.WithTimeout(ctx, s.gatewayTimeout)
		defer cancel()
	}

	outcome, err := s.gateway.Execute(gwCtx, input.Kind, input.Amount, input.PayerNumber)
	if err != nil {
		switch {
		case errors.Is(err, paypack.ErrIndeterminate):
			s.notify(ctx, notification.Message{
				Kind:        notification.KindTransactionIndeterminate,
				UserID:      input.UserID,
				TxKind:      input.Kind,
				Amount:      input.Amount.String(),
				PayerNumber: input.PayerNumber,
				Reason:      err.Error(),
			})
			return ledger.Ledger{}, fmt.Errorf("%w: %v", ErrIndeterminate, err)
		case errors.Is(err, paypack.ErrDeclined):
			return ledger.Ledger{}, fmt.Errorf("%w: %v", ErrGatewayDeclined, err)
		default:
			return ledger.Ledger{}, err
		}
	}

	txn := ledger.Transaction{
		Kind:        input.Kind,
		Amount:      input.Amount,
		ExternalRef: outcome.Reference,
		RecordedAt:  time.Now().UTC(),
	}

	updated, err := s.store.Apply(ctx, input.UserID, txn)
	if err != nil {
		if errors.Is(err, ledger.ErrDuplicateReference) {
			// Already recorded under this reference: idempotent success.
			return updated, nil
		}
		// Money moved externally but the ledger could not record it. Escalate
		// with full transaction details; this must never be dropped.
		s.notify(ctx, notification.Message{
			Kind:        notification.KindTransactionUnreconciled,
			UserID:      input.UserID,
			TxKind:      input.Kind,
			Amount:      input.Amount.String(),
			PayerNumber: input.PayerNumber,
			ExternalRef: outcome.Reference,
			Reason:      err.Error(),
		})
		return ledger.Ledger{}, fmt.Errorf("%w: reference %s: %v", ErrUnreconciled, outcome.Reference, err)
	}

	return updated, nil
}

func (s *Service) notify(ctx context.Context, msg notification.Message) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Send(ctx, msg); err != nil && s.logger != nil {
		s.logger.Error("publish wallet event", "kind", msg.Kind, "user_id", msg.UserID, "error", err)
	}
}

func validate(input SubmitInput) error {
	if input.UserID == "" {
		return fmt.Errorf("%w: user is required", ErrValidation)
	}
	if input.Kind != ledger.KindDeposit && input.Kind != ledger.KindWithdrawal {
		return fmt.Errorf("%w: type must be deposit or withdrawal", ErrValidation)
	}
	if !input.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if input.PayerNumber == "" {
		return fmt.Errorf("%w: number is required", ErrValidation)
	}
	return nil
}
