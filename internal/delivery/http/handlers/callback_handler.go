package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/pesalink/pesalink-payment-service/internal/delivery/http/dto/callback"
	"github.com/pesalink/pesalink-payment-service/internal/domain"
	usecase "github.com/pesalink/pesalink-payment-service/internal/usecase/transaction"
)

type CallbackHandler struct {
	usecase usecase.TransactionUsecase
}

func NewCallbackHandler(transactionUsecase usecase.TransactionUsecase) *CallbackHandler {
	return &CallbackHandler{usecase: transactionUsecase}
}

type callbackAck struct {
	ResultCode int    `json:"ResultCode"`
	ResultDesc string `json:"ResultDesc"`
}

// HandleSTKCallback receives the provider's asynchronous result. Unknown
// correlation ids get a 404 and mutate nothing; retried deliveries of a terminal
// result get a 200 so the provider stops retrying, and fire nothing.
func (h *CallbackHandler) HandleSTKCallback(w http.ResponseWriter, r *http.Request) {
	var envelope callback.STKCallbackEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		writeError(w, http.StatusBadRequest, "malformed callback body")
		return
	}

	stkCallback := envelope.Body.STKCallback
	if stkCallback.CheckoutRequestID == "" {
		writeError(w, http.StatusBadRequest, "missing CheckoutRequestID")
		return
	}

	outcome := usecase.OutcomeFromResultCode(stkCallback.ResultCode, stkCallback.ResultDesc, stkCallback.Receipt())

	transaction, err := h.usecase.ResolveTransaction(stkCallback.CheckoutRequestID, outcome)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyResolved):
			// Signal, not a fault: answer success with the current state.
			log.Printf("duplicate callback for %s (status %s)", stkCallback.CheckoutRequestID, transaction.Status)
		case errors.Is(err, domain.ErrTransactionNotFound):
			log.Printf("callback for unknown checkout request id %s rejected", stkCallback.CheckoutRequestID)
			writeError(w, http.StatusNotFound, "unknown CheckoutRequestID")
			return
		default:
			log.Printf("callback processing failed: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to process callback")
			return
		}
	}

	writeJSON(w, http.StatusOK, callbackAck{ResultCode: 0, ResultDesc: "Accepted"})
}
