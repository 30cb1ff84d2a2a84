package usecase

import (
	"log/slog"

	"github.com/pesalink/pesalink-payment-service/internal/domain"
)

// dispatchSideEffects fans the terminal state out to the merchant webhook and the
// real-time broadcaster on separate goroutines. Both are best-effort: a slow or
// failing merchant endpoint must never delay the callback's own response, and
// neither failure rolls back the transition.
func (uc *DefaultTransactionUsecase) dispatchSideEffects(transaction *domain.Transaction) {
	tx := *transaction

	go func() {
		project, err := uc.ProjectStore.GetProjectByID(tx.ProjectID)
		if err != nil {
			slog.Error("webhook skipped: project lookup failed",
				"transaction_id", tx.ID, "project_id", tx.ProjectID, "error", err.Error())
			return
		}
		if project.WebhookURL == "" {
			return
		}
		if err := uc.Notifier.Deliver(&tx, project); err != nil {
			slog.Error("webhook delivery failed",
				"transaction_id", tx.ID, "url", project.WebhookURL, "error", err.Error())
			uc.Metrics.RecordWebhookDelivery(tx.ProjectID, false)
			return
		}
		uc.Metrics.RecordWebhookDelivery(tx.ProjectID, true)
	}()

	go func() {
		if err := uc.Broadcaster.PublishTransaction(&tx); err != nil {
			slog.Error("broadcast failed",
				"transaction_id", tx.ID, "error", err.Error())
			uc.Metrics.RecordBroadcast(tx.ProjectID, false)
			return
		}
		uc.Metrics.RecordBroadcast(tx.ProjectID, true)
	}()
}
