package payment

type InitiatePaymentRequest struct {
	Amount      float64           `json:"amount"`
	PhoneNumber string            `json:"phone_number"`
	Reference   string            `json:"reference,omitempty"`
	Description string            `json:"description,omitempty"`
	Source      string            `json:"source,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}
