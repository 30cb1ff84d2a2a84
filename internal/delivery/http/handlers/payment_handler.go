package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pesalink/pesalink-payment-service/internal/delivery/http/dto/payment"
	"github.com/pesalink/pesalink-payment-service/internal/delivery/http/middleware"
	"github.com/pesalink/pesalink-payment-service/internal/domain"
	transactiondto "github.com/pesalink/pesalink-payment-service/internal/usecase/dto/transaction"
	usecase "github.com/pesalink/pesalink-payment-service/internal/usecase/transaction"
)

type PaymentHandler struct {
	usecase usecase.TransactionUsecase
}

func NewPaymentHandler(transactionUsecase usecase.TransactionUsecase) *PaymentHandler {
	return &PaymentHandler{usecase: transactionUsecase}
}

// InitiatePayment answers immediately with the PENDING state and correlation ids.
// The terminal outcome reaches the integrator via webhook or status poll only.
func (h *PaymentHandler) InitiatePayment(w http.ResponseWriter, r *http.Request) {
	project, environment, ok := middleware.ProjectFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"unauthenticated"}`, http.StatusUnauthorized)
		return
	}

	var req payment.InitiatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	output, err := h.usecase.InitiatePayment(r.Context(), &transactiondto.InitiatePaymentInput{
		Project:     project,
		Environment: environment,
		Amount:      req.Amount,
		PhoneNumber: req.PhoneNumber,
		Reference:   req.Reference,
		Description: req.Description,
		Source:      req.Source,
		Metadata:    req.Metadata,
	})
	if err != nil {
		log.Printf("payment initiation failed: %v", err)
		switch {
		case errors.Is(err, domain.ErrValidation):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrUpstreamAuth), errors.Is(err, domain.ErrUpstreamRequest):
			writeError(w, http.StatusBadGateway, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to initiate payment")
		}
		return
	}

	writeJSON(w, http.StatusCreated, payment.InitiatePaymentResponse{
		Status:            string(output.Status),
		TransactionID:     output.TransactionID,
		MerchantRequestID: output.MerchantRequestID,
		CheckoutRequestID: output.CheckoutRequestID,
	})
}

func (h *PaymentHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	project, _, ok := middleware.ProjectFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"unauthenticated"}`, http.StatusUnauthorized)
		return
	}

	transactionID := mux.Vars(r)["id"]
	transaction, err := h.usecase.GetTransactionByID(transactionID)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			writeError(w, http.StatusNotFound, "transaction not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch transaction")
		return
	}

	// A key only ever sees its own project's transactions.
	if transaction.ProjectID != project.ID {
		writeError(w, http.StatusNotFound, "transaction not found")
		return
	}

	writeJSON(w, http.StatusOK, payment.TransactionStatusResponse{
		TransactionID: transaction.ID,
		Status:        string(transaction.Status),
		Amount:        transaction.Amount,
		PhoneNumber:   transaction.PhoneNumber,
		Environment:   string(transaction.Environment),
		MpesaReceipt:  transaction.MpesaReceipt,
		FailureReason: transaction.FailureReason,
		CreatedAt:     transaction.CreatedAt,
		UpdatedAt:     transaction.UpdatedAt,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, payment.ErrorResponse{Error: message})
}
