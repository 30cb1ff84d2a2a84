package validation

import (
	"fmt"
	"strings"

	"github.com/pesalink/pesalink-payment-service/internal/domain"
)

const (
	MinAmount = 1
	MaxAmount = 150000
)

// DefaultValidator canonicalizes subscriber numbers and enforces provider amount
// bounds before any transaction is persisted.
type DefaultValidator struct{}

func NewDefaultValidator() *DefaultValidator {
	return &DefaultValidator{}
}

// NormalizePhone accepts 07XXXXXXXX, 01XXXXXXXX, +2547XXXXXXXX, 2547XXXXXXXX and
// similar spellings and returns the canonical 254-prefixed digit string.
func (v *DefaultValidator) NormalizePhone(phone string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, strings.TrimPrefix(strings.TrimSpace(phone), "+"))

	switch {
	case len(cleaned) == 12 && strings.HasPrefix(cleaned, "254"):
	case len(cleaned) == 10 && (strings.HasPrefix(cleaned, "07") || strings.HasPrefix(cleaned, "01")):
		cleaned = "254" + cleaned[1:]
	case len(cleaned) == 9 && (strings.HasPrefix(cleaned, "7") || strings.HasPrefix(cleaned, "1")):
		cleaned = "254" + cleaned
	default:
		return "", fmt.Errorf("%w: invalid phone number %q", domain.ErrValidation, phone)
	}

	prefix := cleaned[3:4]
	if prefix != "7" && prefix != "1" {
		return "", fmt.Errorf("%w: invalid phone number %q", domain.ErrValidation, phone)
	}

	return cleaned, nil
}

func (v *DefaultValidator) ValidateAmount(amount float64) error {
	if amount < MinAmount || amount > MaxAmount {
		return fmt.Errorf("%w: amount must be between %d and %d", domain.ErrValidation, MinAmount, MaxAmount)
	}
	return nil
}
