package webhook

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pesalink/pesalink-payment-service/internal/domain"
)

const SignatureHeader = "X-Webhook-Signature"

// WebhookPayload is the flat notification shape POSTed to the merchant endpoint.
type WebhookPayload struct {
	TransactionID string  `json:"transactionId"`
	Status        string  `json:"status"`
	Amount        float64 `json:"amount"`
	PhoneNumber   string  `json:"phoneNumber"`
	MpesaReceipt  string  `json:"mpesaReceipt,omitempty"`
	FailureReason string  `json:"failureReason,omitempty"`
	Timestamp     string  `json:"timestamp"`
	Environment   string  `json:"environment"`
}

type WebhookNotifier struct {
	client *http.Client
}

func NewWebhookNotifier(client *http.Client) *WebhookNotifier {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &WebhookNotifier{client: client}
}

// Deliver POSTs the terminal state of a transaction to the project webhook. One
// attempt, no retry; a nil URL short-circuits with zero network calls. The
// signature is computed over the exact bytes sent, never a re-serialized copy.
func (n *WebhookNotifier) Deliver(transaction *domain.Transaction, project *domain.Project) error {
	if project.WebhookURL == "" {
		return nil
	}

	payload := WebhookPayload{
		TransactionID: transaction.ID,
		Status:        string(transaction.Status),
		Amount:        transaction.Amount,
		PhoneNumber:   transaction.PhoneNumber,
		MpesaReceipt:  transaction.MpesaReceipt,
		FailureReason: transaction.FailureReason,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Environment:   string(transaction.Environment),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequest("POST", project.WebhookURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if project.WebhookSecret != "" {
		req.Header.Set(SignatureHeader, Sign(body, project.WebhookSecret))
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook POST to %s failed: %w", project.WebhookURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// Sign computes the hex HMAC-SHA256 the receiving endpoint recomputes to verify
// authenticity.
func Sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
