package usecase

import (
	"errors"
	"log/slog"
	"time"

	"github.com/pesalink/pesalink-payment-service/internal/domain"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Provider result code for a push the user dismissed on the handset.
const resultCodeUserCancelled = 1032

// ResolveTransaction applies the one permitted PENDING->terminal transition for the
// transaction carrying checkoutRequestID. A duplicate callback returns the current
// state with ErrAlreadyResolved and fires nothing; an unknown correlation id
// returns ErrTransactionNotFound and mutates nothing.
func (uc *DefaultTransactionUsecase) ResolveTransaction(checkoutRequestID string, outcome domain.Outcome) (*domain.Transaction, error) {
	if !outcome.Status.IsTerminal() {
		return nil, status.Errorf(codes.InvalidArgument, "outcome status %s is not terminal", outcome.Status)
	}

	transaction, err := uc.TransactionRepo.ResolvePending(checkoutRequestID, outcome)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyResolved) {
			// Provider callbacks are retried; the second delivery must not
			// double-fire side effects.
			slog.Info("duplicate callback ignored",
				"checkout_request_id", checkoutRequestID,
				"status", transaction.Status)
			return transaction, domain.ErrAlreadyResolved
		}
		return nil, err
	}

	uc.Metrics.RecordTransactionResolved(
		transaction.ProjectID,
		string(transaction.Environment),
		string(transaction.Status),
		time.Since(transaction.CreatedAt).Seconds(),
	)
	slog.Info("transaction resolved",
		"transaction_id", transaction.ID,
		"status", transaction.Status,
		"environment", transaction.Environment)

	uc.dispatchSideEffects(transaction)

	return transaction, nil
}

// OutcomeFromResultCode maps a provider result code to a terminal outcome,
// preserving the human-readable description as the failure reason.
func OutcomeFromResultCode(resultCode int, resultDesc, receipt string) domain.Outcome {
	switch resultCode {
	case 0:
		return domain.Outcome{Status: domain.StatusCompleted, MpesaReceipt: receipt}
	case resultCodeUserCancelled:
		return domain.Outcome{Status: domain.StatusCancelled, FailureReason: resultDesc}
	default:
		return domain.Outcome{Status: domain.StatusFailed, FailureReason: resultDesc}
	}
}
