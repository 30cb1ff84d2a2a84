package webhook_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/pesalink/pesalink-payment-service/internal/domain"
	"github.com/pesalink/pesalink-payment-service/internal/infrastructure/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	body        []byte
	signature   string
	contentType string
}

type captureServer struct {
	mu       sync.Mutex
	requests []capturedRequest
	status   int
}

func newCaptureServer(status int) (*captureServer, *httptest.Server) {
	cs := &captureServer{status: status}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		cs.mu.Lock()
		cs.requests = append(cs.requests, capturedRequest{
			body:        body,
			signature:   r.Header.Get(webhook.SignatureHeader),
			contentType: r.Header.Get("Content-Type"),
		})
		cs.mu.Unlock()
		w.WriteHeader(cs.status)
	}))
	return cs, server
}

func (cs *captureServer) all() []capturedRequest {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return append([]capturedRequest(nil), cs.requests...)
}

func testTransaction() *domain.Transaction {
	return &domain.Transaction{
		ID:           "tx-1",
		ProjectID:    "proj-1",
		Amount:       1000,
		PhoneNumber:  "254712345678",
		Status:       domain.StatusCompleted,
		Environment:  domain.EnvSandbox,
		MpesaReceipt: "SBX4F9K2QW10",
	}
}

func TestDeliver_SignatureMatchesDeliveredBytes(t *testing.T) {
	cs, server := newCaptureServer(http.StatusOK)
	defer server.Close()

	notifier := webhook.NewWebhookNotifier(server.Client())
	project := &domain.Project{ID: "proj-1", WebhookURL: server.URL, WebhookSecret: "whsec_test"}

	require.NoError(t, notifier.Deliver(testTransaction(), project))

	requests := cs.all()
	require.Len(t, requests, 1)
	assert.Equal(t, "application/json", requests[0].contentType)

	// Recomputing the HMAC over the exact bytes received must reproduce the
	// delivered signature.
	mac := hmac.New(sha256.New, []byte("whsec_test"))
	mac.Write(requests[0].body)
	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), requests[0].signature)

	// Any byte tamper invalidates it.
	tampered := append([]byte{}, requests[0].body...)
	tampered[0] ^= 0xff
	mac = hmac.New(sha256.New, []byte("whsec_test"))
	mac.Write(tampered)
	assert.NotEqual(t, hex.EncodeToString(mac.Sum(nil)), requests[0].signature)

	var payload webhook.WebhookPayload
	require.NoError(t, json.Unmarshal(requests[0].body, &payload))
	assert.Equal(t, "tx-1", payload.TransactionID)
	assert.Equal(t, "COMPLETED", payload.Status)
	assert.Equal(t, "SBX4F9K2QW10", payload.MpesaReceipt)
	assert.Equal(t, "SANDBOX", payload.Environment)
	_, err := time.Parse(time.RFC3339, payload.Timestamp)
	assert.NoError(t, err)
}

func TestDeliver_NoSecretSendsNoSignature(t *testing.T) {
	cs, server := newCaptureServer(http.StatusOK)
	defer server.Close()

	notifier := webhook.NewWebhookNotifier(server.Client())
	project := &domain.Project{ID: "proj-1", WebhookURL: server.URL}

	require.NoError(t, notifier.Deliver(testTransaction(), project))

	requests := cs.all()
	require.Len(t, requests, 1)
	assert.Empty(t, requests[0].signature)
}

func TestDeliver_NoWebhookURLMakesNoRequest(t *testing.T) {
	cs, server := newCaptureServer(http.StatusOK)
	defer server.Close()

	notifier := webhook.NewWebhookNotifier(server.Client())
	project := &domain.Project{ID: "proj-1"}

	require.NoError(t, notifier.Deliver(testTransaction(), project))
	assert.Empty(t, cs.all())
}

func TestDeliver_Non2xxIsAnError(t *testing.T) {
	cs, server := newCaptureServer(http.StatusInternalServerError)
	defer server.Close()

	notifier := webhook.NewWebhookNotifier(server.Client())
	project := &domain.Project{ID: "proj-1", WebhookURL: server.URL}

	err := notifier.Deliver(testTransaction(), project)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Len(t, cs.all(), 1, "a single attempt, no retry")
}

func TestDeliver_NetworkFailureIsAnError(t *testing.T) {
	_, server := newCaptureServer(http.StatusOK)
	server.Close()

	notifier := webhook.NewWebhookNotifier(nil)
	project := &domain.Project{ID: "proj-1", WebhookURL: server.URL}

	err := notifier.Deliver(testTransaction(), project)
	require.Error(t, err)
}
