package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pesalink/pesalink-payment-service/internal/domain"
	transactiondto "github.com/pesalink/pesalink-payment-service/internal/usecase/dto/transaction"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// InitiatePayment runs synchronously only up to obtaining correlation ids and
// persisting the PENDING record. The terminal outcome arrives later through
// ResolveTransaction, never through this call.
func (uc *DefaultTransactionUsecase) InitiatePayment(ctx context.Context, input *transactiondto.InitiatePaymentInput) (*transactiondto.InitiatePaymentOutput, error) {
	start := time.Now()

	if input.Project == nil {
		return nil, status.Error(codes.InvalidArgument, "project is required")
	}

	phone, err := uc.Validator.NormalizePhone(input.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if err := uc.Validator.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	metadataJSON := ""
	if len(input.Metadata) > 0 {
		metadataBytes, err := json.Marshal(input.Metadata)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid metadata: %v", domain.ErrValidation, err)
		}
		metadataJSON = string(metadataBytes)
	}

	now := time.Now()
	transaction := &domain.Transaction{
		ID:           uuid.New().String(),
		ProjectID:    input.Project.ID,
		Amount:       input.Amount,
		PhoneNumber:  phone,
		Status:       domain.StatusPending,
		Environment:  input.Environment,
		Source:       input.Source,
		MetadataJSON: metadataJSON,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.TransactionRepo.CreateTransaction(transaction); err != nil {
		return nil, err
	}
	uc.Metrics.RecordTransactionCreated(transaction.ProjectID, string(transaction.Environment))

	var pushResponse *domain.PushResponse
	switch input.Environment {
	case domain.EnvSandbox:
		if uc.Simulator == nil {
			return nil, status.Error(codes.Internal, "sandbox simulator is not initialized")
		}
		pushResponse, err = uc.Simulator.Simulate(transaction)
	default:
		pushResponse, err = uc.Gateway.RequestPush(ctx, domain.PushRequest{
			PhoneNumber: phone,
			Amount:      input.Amount,
			Reference:   input.Reference,
			Description: input.Description,
		}, input.Project.Credentials)
	}
	if err != nil {
		uc.failInitiation(transaction, err)
		return nil, err
	}

	if err := uc.TransactionRepo.AttachCorrelation(transaction.ID, pushResponse.MerchantRequestID, pushResponse.CheckoutRequestID); err != nil {
		uc.failInitiation(transaction, err)
		return nil, err
	}

	uc.Metrics.RecordInitiationDuration(transaction.ProjectID, string(transaction.Environment), time.Since(start).Seconds())
	slog.Info("payment initiated",
		"transaction_id", transaction.ID,
		"environment", transaction.Environment,
		"checkout_request_id", pushResponse.CheckoutRequestID)

	return &transactiondto.InitiatePaymentOutput{
		TransactionID:     transaction.ID,
		Status:            domain.StatusPending,
		MerchantRequestID: pushResponse.MerchantRequestID,
		CheckoutRequestID: pushResponse.CheckoutRequestID,
	}, nil
}

// failInitiation closes a transaction whose push never reached the provider, so no
// PENDING row without correlation ids is ever treated as in flight. Deliberately
// not the resolution path: webhook and broadcast do not fire.
func (uc *DefaultTransactionUsecase) failInitiation(transaction *domain.Transaction, cause error) {
	if err := uc.TransactionRepo.MarkInitiationFailed(transaction.ID, "initiation failed: "+cause.Error()); err != nil {
		slog.Error("failed to close transaction after initiation error",
			"transaction_id", transaction.ID, "error", err.Error())
	}

	errorType := "upstream_request"
	if errors.Is(cause, domain.ErrUpstreamAuth) {
		errorType = "upstream_auth"
	}
	uc.Metrics.RecordInitiationError(transaction.ProjectID, errorType)
}
