package domain

// Validator is the external validation layer applied before a transaction is created.
type Validator interface {
	// NormalizePhone canonicalizes a subscriber number to a digit string (2547XXXXXXXX).
	NormalizePhone(phone string) (string, error)
	// ValidateAmount checks provider bounds.
	ValidateAmount(amount float64) error
}
