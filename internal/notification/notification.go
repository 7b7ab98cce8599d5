package notification

import (
	"context"
	"log/slog"
)

const (
	// KindTransactionIndeterminate flags a gateway call whose outcome is
	// unknown and needs manual follow-up.
	KindTransactionIndeterminate = "transaction_indeterminate"
	// KindTransactionUnreconciled flags a confirmed external movement the
	// local ledger failed to record. Highest severity.
	KindTransactionUnreconciled = "transaction_unreconciled"
)

// Message describes an operational event payload.
type Message struct {
	Kind        string `json:"kind"`
	UserID      string `json:"user_id"`
	TxKind      string `json:"tx_kind,omitempty"`
	Amount      string `json:"amount,omitempty"`
	PayerNumber string `json:"payer_number,omitempty"`
	ExternalRef string `json:"external_ref,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

// Notifier delivers operational events to downstream systems.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier writes events to the structured logger. It is the fallback
// when no reconciliation stream is configured.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger. Unreconciled events log at
// error level so they surface in alerting.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	attrs := []any{
		"kind", message.Kind,
		"user_id", message.UserID,
		"tx_kind", message.TxKind,
		"amount", message.Amount,
		"external_ref", message.ExternalRef,
		"reason", message.Reason,
	}
	if message.Kind == KindTransactionUnreconciled {
		n.logger.Error("wallet reconciliation required", attrs...)
		return nil
	}
	n.logger.Warn("wallet event", attrs...)
	return nil
}
