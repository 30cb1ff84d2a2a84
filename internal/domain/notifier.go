package domain

// WebhookNotifier delivers a terminal transaction to the owning project's webhook
// endpoint. A single attempt; the caller decides what to do with the error (the
// resolution path only ever logs it).
type WebhookNotifier interface {
	Deliver(transaction *Transaction, project *Project) error
}
