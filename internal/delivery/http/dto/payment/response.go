package payment

import "time"

type InitiatePaymentResponse struct {
	Status            string `json:"status"`
	TransactionID     string `json:"transaction_id"`
	MerchantRequestID string `json:"merchant_request_id"`
	CheckoutRequestID string `json:"checkout_request_id"`
}

type TransactionStatusResponse struct {
	TransactionID string    `json:"transaction_id"`
	Status        string    `json:"status"`
	Amount        float64   `json:"amount"`
	PhoneNumber   string    `json:"phone_number"`
	Environment   string    `json:"environment"`
	MpesaReceipt  string    `json:"mpesa_receipt,omitempty"`
	FailureReason string    `json:"failure_reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
