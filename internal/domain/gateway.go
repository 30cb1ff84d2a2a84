package domain

import "context"

// DarajaCredentials is the per-project provider credential set, decrypted by the
// project store. Read-only to this service.
type DarajaCredentials struct {
	ConsumerKey    string
	ConsumerSecret string
	ShortCode      string
	Passkey        string
}

type PushRequest struct {
	PhoneNumber string
	Amount      float64
	Reference   string
	Description string
}

type PushResponse struct {
	MerchantRequestID string
	CheckoutRequestID string
}

// PushGateway initiates a provider push payment and returns the correlation ids
// that a later callback will carry.
type PushGateway interface {
	RequestPush(ctx context.Context, req PushRequest, creds DarajaCredentials) (*PushResponse, error)
}
