package kafka

import "time"

// TransactionEvent is the wire shape consumed by checkout pages awaiting a single
// outcome and by merchant dashboard feeds.
type TransactionEvent struct {
	TransactionID string    `json:"transaction_id"`
	ProjectID     string    `json:"project_id"`
	Status        string    `json:"status"`
	Amount        float64   `json:"amount"`
	PhoneNumber   string    `json:"phone_number"`
	MpesaReceipt  string    `json:"mpesa_receipt,omitempty"`
	FailureReason string    `json:"failure_reason,omitempty"`
	Environment   string    `json:"environment"`
	OccurredAt    time.Time `json:"occurred_at"`
}
