package transactiondto

import "github.com/pesalink/pesalink-payment-service/internal/domain"

type InitiatePaymentOutput struct {
	TransactionID     string
	Status            domain.TransactionStatus
	MerchantRequestID string
	CheckoutRequestID string
}
