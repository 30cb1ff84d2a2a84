package domain

import "time"

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusFailed    TransactionStatus = "FAILED"
	StatusCancelled TransactionStatus = "CANCELLED"
)

// IsTerminal reports whether no further transition is allowed out of s.
func (s TransactionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

type Environment string

const (
	EnvLive    Environment = "LIVE"
	EnvSandbox Environment = "SANDBOX"
)

type Transaction struct {
	ID                string
	ProjectID         string
	Amount            float64
	PhoneNumber       string
	Status            TransactionStatus
	Environment       Environment
	Source            string
	MerchantRequestID string
	CheckoutRequestID string
	MpesaReceipt      string
	FailureReason     string
	MetadataJSON      string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Outcome is a terminal resolution reported by the provider or the sandbox.
type Outcome struct {
	Status        TransactionStatus
	MpesaReceipt  string
	FailureReason string
}
