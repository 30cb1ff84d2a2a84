package sandbox

import (
	"errors"
	"log/slog"
	"time"

	"github.com/jaevor/go-nanoid"
	"github.com/pesalink/pesalink-payment-service/internal/domain"
)

// Resolver is the downstream resolution path, satisfied by the transaction usecase.
type Resolver interface {
	ResolveTransaction(checkoutRequestID string, outcome domain.Outcome) (*domain.Transaction, error)
}

// Simulator is the deterministic, network-free stand-in for the provider. It cannot
// itself fail a payment request; the outcome is decided purely by the amount.
type Simulator struct {
	resolver   Resolver
	delay      time.Duration
	newID      func() string
	newReceipt func() string
}

func NewSimulator(resolver Resolver, delay time.Duration) (*Simulator, error) {
	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}
	receiptGenerator, err := nanoid.CustomASCII("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", 10)
	if err != nil {
		return nil, err
	}
	return &Simulator{
		resolver:   resolver,
		delay:      delay,
		newID:      idGenerator,
		newReceipt: receiptGenerator,
	}, nil
}

// Simulate issues synthetic correlation ids synchronously, as the live gateway
// would, then schedules the one-shot delayed resolution. The delay emulates the
// user entering a PIN on the handset. Errors from the downstream resolve are only
// logged: the initiating HTTP response was already sent by the time it runs.
func (s *Simulator) Simulate(transaction *domain.Transaction) (*domain.PushResponse, error) {
	response := &domain.PushResponse{
		MerchantRequestID: "sbx-" + s.newID(),
		CheckoutRequestID: "ws_CO_SBX_" + s.newID(),
	}
	outcome := s.OutcomeForAmount(transaction.Amount)

	time.AfterFunc(s.delay, func() {
		if _, err := s.resolver.ResolveTransaction(response.CheckoutRequestID, outcome); err != nil && !errors.Is(err, domain.ErrAlreadyResolved) {
			slog.Error("sandbox resolution failed",
				"transaction_id", transaction.ID,
				"checkout_request_id", response.CheckoutRequestID,
				"error", err.Error())
		}
	})

	return response, nil
}

// OutcomeForAmount keys the outcome off the amount's last decimal digit. This is a
// published contract integrators script their test suites against; changing it
// silently would break them. Only sandbox transactions ever branch on it.
func (s *Simulator) OutcomeForAmount(amount float64) domain.Outcome {
	switch int64(amount) % 10 {
	case 1:
		return domain.Outcome{
			Status:        domain.StatusFailed,
			FailureReason: "Simulated Failure: Insufficient Funds",
		}
	case 2:
		return domain.Outcome{
			Status:        domain.StatusCancelled,
			FailureReason: "Simulated Failure: Request Cancelled by User",
		}
	default:
		return domain.Outcome{
			Status:       domain.StatusCompleted,
			MpesaReceipt: "SBX" + s.newReceipt(),
		}
	}
}
