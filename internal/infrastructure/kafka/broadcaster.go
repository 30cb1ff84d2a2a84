package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pesalink/pesalink-payment-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

// KafkaBroadcaster publishes transaction state changes twice: keyed by transaction
// id on the transaction topic (targeted subscribers) and keyed by project id on the
// merchant feed topic (all live sessions of the owning merchant).
type KafkaBroadcaster struct {
	writer            *kafka.Writer
	transactionTopic  string
	merchantFeedTopic string
}

func NewKafkaBroadcaster(brokers []string, transactionTopic, merchantFeedTopic string) *KafkaBroadcaster {
	return &KafkaBroadcaster{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
		},
		transactionTopic:  transactionTopic,
		merchantFeedTopic: merchantFeedTopic,
	}
}

func (k *KafkaBroadcaster) PublishTransaction(transaction *domain.Transaction) error {
	event := TransactionEvent{
		TransactionID: transaction.ID,
		ProjectID:     transaction.ProjectID,
		Status:        string(transaction.Status),
		Amount:        transaction.Amount,
		PhoneNumber:   transaction.PhoneNumber,
		MpesaReceipt:  transaction.MpesaReceipt,
		FailureReason: transaction.FailureReason,
		Environment:   string(transaction.Environment),
		OccurredAt:    time.Now(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return k.writer.WriteMessages(ctx,
		kafka.Message{
			Topic: k.transactionTopic,
			Key:   []byte(transaction.ID),
			Value: value,
			Time:  event.OccurredAt,
		},
		kafka.Message{
			Topic: k.merchantFeedTopic,
			Key:   []byte(transaction.ProjectID),
			Value: value,
			Time:  event.OccurredAt,
		},
	)
}
