package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pesalink/pesalink-payment-service/internal/delivery/http/handlers"
	"github.com/pesalink/pesalink-payment-service/internal/delivery/http/middleware"
	"github.com/pesalink/pesalink-payment-service/internal/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the public payment API (API-key authenticated), the provider
// callback endpoint (reachable by the provider, not key-authenticated) and the
// operational endpoints.
func NewRouter(
	paymentHandler *handlers.PaymentHandler,
	callbackHandler *handlers.CallbackHandler,
	projectStore domain.ProjectStore,
) *mux.Router {
	router := mux.NewRouter()

	api := router.PathPrefix("/api/v1").Subrouter()

	payments := api.PathPrefix("/payments").Subrouter()
	payments.Use(func(next http.Handler) http.Handler {
		return middleware.APIKeyAuth(projectStore, next)
	})
	payments.HandleFunc("", paymentHandler.InitiatePayment).Methods("POST")
	payments.HandleFunc("/{id}", paymentHandler.GetTransaction).Methods("GET")

	api.HandleFunc("/callbacks/daraja", callbackHandler.HandleSTKCallback).Methods("POST")

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return router
}
