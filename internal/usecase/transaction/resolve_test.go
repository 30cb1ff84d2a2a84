package usecase_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pesalink/pesalink-payment-service/internal/domain"
	usecase "github.com/pesalink/pesalink-payment-service/internal/usecase/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPendingTransaction(t *testing.T, repo *inMemTransactionRepo, projectID, checkoutRequestID string) *domain.Transaction {
	t.Helper()
	transaction := &domain.Transaction{
		ID:                uuid.New().String(),
		ProjectID:         projectID,
		Amount:            1000,
		PhoneNumber:       "254712345678",
		Status:            domain.StatusPending,
		Environment:       domain.EnvLive,
		MerchantRequestID: "29115-34620561-1",
		CheckoutRequestID: checkoutRequestID,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	require.NoError(t, repo.CreateTransaction(transaction))
	return transaction
}

func TestResolveTransaction_CompletesAndFiresSideEffectsOnce(t *testing.T) {
	project := newTestProject("https://merchant.example.com/hook")
	uc, repo, notifier, broadcaster := newTestUsecase(t, &fakeGateway{}, project)
	seedPendingTransaction(t, repo, project.ID, "ws_CO_TEST_1")

	resolved, err := uc.ResolveTransaction("ws_CO_TEST_1", domain.Outcome{
		Status:       domain.StatusCompleted,
		MpesaReceipt: "QGR7TKDXSV",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, resolved.Status)
	assert.Equal(t, "QGR7TKDXSV", resolved.MpesaReceipt)
	assert.Empty(t, resolved.FailureReason)

	assert.Eventually(t, func() bool {
		return notifier.count() == 1 && broadcaster.count() == 1
	}, time.Second, 10*time.Millisecond)

	// Settle and make sure nothing fires a second time.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, notifier.count())
	assert.Equal(t, 1, broadcaster.count())
}

func TestResolveTransaction_UnknownCorrelationIDMutatesNothing(t *testing.T) {
	project := newTestProject("https://merchant.example.com/hook")
	uc, repo, notifier, broadcaster := newTestUsecase(t, &fakeGateway{}, project)
	seedPendingTransaction(t, repo, project.ID, "ws_CO_TEST_1")

	_, err := uc.ResolveTransaction("ws_CO_FORGED", domain.Outcome{
		Status:       domain.StatusCompleted,
		MpesaReceipt: "FORGED",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)

	stored, err := repo.GetTransactionByCheckoutRequestID("ws_CO_TEST_1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, notifier.count())
	assert.Equal(t, 0, broadcaster.count())
}

func TestResolveTransaction_DuplicateCallbackIsIdempotent(t *testing.T) {
	project := newTestProject("https://merchant.example.com/hook")
	uc, repo, notifier, broadcaster := newTestUsecase(t, &fakeGateway{}, project)
	seedPendingTransaction(t, repo, project.ID, "ws_CO_TEST_1")

	outcome := domain.Outcome{Status: domain.StatusFailed, FailureReason: "The balance is insufficient for the transaction"}

	first, err := uc.ResolveTransaction("ws_CO_TEST_1", outcome)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, first.Status)

	second, err := uc.ResolveTransaction("ws_CO_TEST_1", outcome)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAlreadyResolved)
	require.NotNil(t, second)
	assert.Equal(t, domain.StatusFailed, second.Status)

	assert.Eventually(t, func() bool {
		return notifier.count() == 1 && broadcaster.count() == 1
	}, time.Second, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, notifier.count(), "duplicate callback must not re-fire the webhook")
	assert.Equal(t, 1, broadcaster.count(), "duplicate callback must not re-broadcast")
}

func TestResolveTransaction_NoWebhookURLSkipsDelivery(t *testing.T) {
	project := newTestProject("")
	uc, repo, notifier, broadcaster := newTestUsecase(t, &fakeGateway{}, project)
	seedPendingTransaction(t, repo, project.ID, "ws_CO_TEST_1")

	_, err := uc.ResolveTransaction("ws_CO_TEST_1", domain.Outcome{
		Status:       domain.StatusCompleted,
		MpesaReceipt: "QGR7TKDXSV",
	})
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return broadcaster.count() == 1 }, time.Second, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, notifier.count())
}

func TestResolveTransaction_RejectsNonTerminalOutcome(t *testing.T) {
	project := newTestProject("")
	uc, repo, _, _ := newTestUsecase(t, &fakeGateway{}, project)
	seedPendingTransaction(t, repo, project.ID, "ws_CO_TEST_1")

	_, err := uc.ResolveTransaction("ws_CO_TEST_1", domain.Outcome{Status: domain.StatusPending})
	require.Error(t, err)

	stored, err := repo.GetTransactionByCheckoutRequestID("ws_CO_TEST_1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
}

func TestOutcomeFromResultCode(t *testing.T) {
	tests := []struct {
		name       string
		resultCode int
		resultDesc string
		receipt    string
		want       domain.Outcome
	}{
		{
			name:       "zero means completed with receipt",
			resultCode: 0,
			receipt:    "QGR7TKDXSV",
			want:       domain.Outcome{Status: domain.StatusCompleted, MpesaReceipt: "QGR7TKDXSV"},
		},
		{
			name:       "1032 means cancelled by user",
			resultCode: 1032,
			resultDesc: "Request cancelled by user",
			want:       domain.Outcome{Status: domain.StatusCancelled, FailureReason: "Request cancelled by user"},
		},
		{
			name:       "other non-zero means failed with description preserved",
			resultCode: 1,
			resultDesc: "The balance is insufficient for the transaction",
			want:       domain.Outcome{Status: domain.StatusFailed, FailureReason: "The balance is insufficient for the transaction"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := usecase.OutcomeFromResultCode(tt.resultCode, tt.resultDesc, tt.receipt)
			assert.Equal(t, tt.want, got)
		})
	}
}
