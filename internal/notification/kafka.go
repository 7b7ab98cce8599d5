package notification

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
)

// ReconciliationTopic carries indeterminate and unreconciled transaction
// events for the support/reconciliation workflow.
const ReconciliationTopic = "wallet-reconciliation"

// KafkaNotifier publishes operational events to a Kafka topic.
type KafkaNotifier struct {
	writer *kafka.Writer
}

// NewKafkaNotifier builds a notifier targeting the reconciliation topic.
func NewKafkaNotifier(brokers []string) *KafkaNotifier {
	return &KafkaNotifier{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    ReconciliationTopic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// Send publishes the event keyed by user so per-user events stay ordered.
func (n *KafkaNotifier) Send(ctx context.Context, message Message) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	return n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(message.UserID),
		Value: data,
	})
}

// Close flushes and closes the underlying writer.
func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
