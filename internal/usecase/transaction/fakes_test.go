package usecase_test

import (
	"context"
	"sync"

	"github.com/pesalink/pesalink-payment-service/internal/domain"
	"github.com/pesalink/pesalink-payment-service/internal/infrastructure/metrics"
)

// Registered once per test binary; promauto collectors cannot be registered twice.
var testMetrics = metrics.NewTransactionMetrics()

// inMemTransactionRepo mirrors the conditional-update semantics of the postgres
// repository: resolution only ever succeeds against a PENDING row.
type inMemTransactionRepo struct {
	mu           sync.Mutex
	transactions map[string]*domain.Transaction
}

func newInMemTransactionRepo() *inMemTransactionRepo {
	return &inMemTransactionRepo{transactions: make(map[string]*domain.Transaction)}
}

func (r *inMemTransactionRepo) CreateTransaction(transaction *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *transaction
	r.transactions[transaction.ID] = &copied
	return nil
}

func (r *inMemTransactionRepo) GetTransactionByID(transactionID string) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	transaction, ok := r.transactions[transactionID]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	copied := *transaction
	return &copied, nil
}

func (r *inMemTransactionRepo) GetTransactionByCheckoutRequestID(checkoutRequestID string) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	transaction := r.findByCheckoutLocked(checkoutRequestID)
	if transaction == nil {
		return nil, domain.ErrTransactionNotFound
	}
	copied := *transaction
	return &copied, nil
}

func (r *inMemTransactionRepo) AttachCorrelation(transactionID, merchantRequestID, checkoutRequestID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	transaction, ok := r.transactions[transactionID]
	if !ok || transaction.CheckoutRequestID != "" {
		return domain.ErrTransactionNotFound
	}
	transaction.MerchantRequestID = merchantRequestID
	transaction.CheckoutRequestID = checkoutRequestID
	return nil
}

func (r *inMemTransactionRepo) ResolvePending(checkoutRequestID string, outcome domain.Outcome) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	transaction := r.findByCheckoutLocked(checkoutRequestID)
	if transaction == nil {
		return nil, domain.ErrTransactionNotFound
	}
	if transaction.Status != domain.StatusPending {
		copied := *transaction
		return &copied, domain.ErrAlreadyResolved
	}
	transaction.Status = outcome.Status
	transaction.MpesaReceipt = outcome.MpesaReceipt
	transaction.FailureReason = outcome.FailureReason
	copied := *transaction
	return &copied, nil
}

func (r *inMemTransactionRepo) MarkInitiationFailed(transactionID, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	transaction, ok := r.transactions[transactionID]
	if !ok || transaction.Status != domain.StatusPending {
		return domain.ErrTransactionNotFound
	}
	transaction.Status = domain.StatusFailed
	transaction.FailureReason = reason
	return nil
}

func (r *inMemTransactionRepo) onlyTransaction() *domain.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, transaction := range r.transactions {
		copied := *transaction
		return &copied
	}
	return nil
}

func (r *inMemTransactionRepo) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.transactions)
}

func (r *inMemTransactionRepo) findByCheckoutLocked(checkoutRequestID string) *domain.Transaction {
	for _, transaction := range r.transactions {
		if transaction.CheckoutRequestID == checkoutRequestID && checkoutRequestID != "" {
			return transaction
		}
	}
	return nil
}

type fakeGateway struct {
	mu       sync.Mutex
	response *domain.PushResponse
	err      error
	calls    int
}

func (g *fakeGateway) RequestPush(ctx context.Context, req domain.PushRequest, creds domain.DarajaCredentials) (*domain.PushResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.response, nil
}

type countingNotifier struct {
	mu         sync.Mutex
	deliveries []domain.Transaction
	err        error
}

func (n *countingNotifier) Deliver(transaction *domain.Transaction, project *domain.Project) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.deliveries = append(n.deliveries, *transaction)
	return n.err
}

func (n *countingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.deliveries)
}

type countingBroadcaster struct {
	mu     sync.Mutex
	events []domain.Transaction
	err    error
}

func (b *countingBroadcaster) PublishTransaction(transaction *domain.Transaction) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, *transaction)
	return b.err
}

func (b *countingBroadcaster) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events)
}
