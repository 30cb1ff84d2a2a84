package domain

// Broadcaster fans a transaction state change out to live subscribers: one event
// scoped to the transaction itself and one to the owning project's activity feed.
// Delivery is best-effort, at-most-once.
type Broadcaster interface {
	PublishTransaction(transaction *Transaction) error
}
