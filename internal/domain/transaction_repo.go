package domain

type TransactionRepository interface {
	CreateTransaction(transaction *Transaction) error
	GetTransactionByID(transactionID string) (*Transaction, error)
	GetTransactionByCheckoutRequestID(checkoutRequestID string) (*Transaction, error)
	AttachCorrelation(transactionID, merchantRequestID, checkoutRequestID string) error

	// ResolvePending applies the single permitted PENDING->terminal transition as one
	// conditional update. Returns ErrTransactionNotFound if no transaction carries the
	// correlation id, ErrAlreadyResolved (with current state) if it is already terminal.
	ResolvePending(checkoutRequestID string, outcome Outcome) (*Transaction, error)

	// MarkInitiationFailed closes a transaction whose push request never reached the
	// provider. Bypasses the resolution path so no side effects fire.
	MarkInitiationFailed(transactionID, reason string) error
}
