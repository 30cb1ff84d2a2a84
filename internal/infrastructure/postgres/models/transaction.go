package models

import (
	"time"

	"github.com/pesalink/pesalink-payment-service/internal/domain"
)

type TransactionModel struct {
	ID                string                   `gorm:"primaryKey;type:uuid"`
	ProjectID         string                   `gorm:"index:idx_project;type:uuid"`
	Amount            float64
	PhoneNumber       string
	Status            domain.TransactionStatus `gorm:"index:idx_status"`
	Environment       domain.Environment
	Source            string
	MerchantRequestID string
	// Nullable until the provider (or sandbox) assigns it; NULLs do not collide
	// on the unique index, an assigned value may never repeat.
	CheckoutRequestID *string                  `gorm:"uniqueIndex:idx_checkout_request_id"`
	MpesaReceipt      string
	FailureReason     string
	MetadataJSON      string                   `gorm:"type:jsonb"`
	CreatedAt         time.Time                `gorm:"index:idx_created_at"`
	UpdatedAt         time.Time
}
