package usecase

import (
	"context"

	"github.com/pesalink/pesalink-payment-service/internal/domain"
	"github.com/pesalink/pesalink-payment-service/internal/infrastructure/metrics"
	transactiondto "github.com/pesalink/pesalink-payment-service/internal/usecase/dto/transaction"
)

type TransactionUsecase interface {
	InitiatePayment(ctx context.Context, input *transactiondto.InitiatePaymentInput) (*transactiondto.InitiatePaymentOutput, error)
	ResolveTransaction(checkoutRequestID string, outcome domain.Outcome) (*domain.Transaction, error)
	GetTransactionByID(transactionID string) (*domain.Transaction, error)
}

// PushSimulator is the sandbox stand-in for the live gateway. It returns synthetic
// correlation ids synchronously and schedules the delayed resolution itself.
type PushSimulator interface {
	Simulate(transaction *domain.Transaction) (*domain.PushResponse, error)
}

type DefaultTransactionUsecase struct {
	TransactionRepo domain.TransactionRepository
	Gateway         domain.PushGateway
	Simulator       PushSimulator
	Validator       domain.Validator
	ProjectStore    domain.ProjectStore
	Notifier        domain.WebhookNotifier
	Broadcaster     domain.Broadcaster
	Metrics         *metrics.TransactionMetrics
}

func NewDefaultTransactionUsecase(
	transactionRepo domain.TransactionRepository,
	gateway domain.PushGateway,
	validator domain.Validator,
	projectStore domain.ProjectStore,
	notifier domain.WebhookNotifier,
	broadcaster domain.Broadcaster,
	transactionMetrics *metrics.TransactionMetrics) *DefaultTransactionUsecase {

	return &DefaultTransactionUsecase{
		TransactionRepo: transactionRepo,
		Gateway:         gateway,
		Validator:       validator,
		ProjectStore:    projectStore,
		Notifier:        notifier,
		Broadcaster:     broadcaster,
		Metrics:         transactionMetrics,
	}
}
