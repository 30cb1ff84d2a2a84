package transactiondto

import "github.com/pesalink/pesalink-payment-service/internal/domain"

type InitiatePaymentInput struct {
	Project     *domain.Project
	Environment domain.Environment
	Amount      float64
	PhoneNumber string
	Reference   string
	Description string
	Source      string
	Metadata    map[string]string
}
