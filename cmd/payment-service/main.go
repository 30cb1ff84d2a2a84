package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pesalink/pesalink-payment-service/internal/config"
	httpdelivery "github.com/pesalink/pesalink-payment-service/internal/delivery/http"
	"github.com/pesalink/pesalink-payment-service/internal/delivery/http/handlers"
	"github.com/pesalink/pesalink-payment-service/internal/domain"
	"github.com/pesalink/pesalink-payment-service/internal/infrastructure/daraja"
	"github.com/pesalink/pesalink-payment-service/internal/infrastructure/kafka"
	"github.com/pesalink/pesalink-payment-service/internal/infrastructure/metrics"
	"github.com/pesalink/pesalink-payment-service/internal/infrastructure/migrate"
	"github.com/pesalink/pesalink-payment-service/internal/infrastructure/postgres"
	"github.com/pesalink/pesalink-payment-service/internal/infrastructure/postgres/repository"
	"github.com/pesalink/pesalink-payment-service/internal/infrastructure/projectstore"
	"github.com/pesalink/pesalink-payment-service/internal/infrastructure/validation"
	"github.com/pesalink/pesalink-payment-service/internal/infrastructure/webhook"
	"github.com/pesalink/pesalink-payment-service/internal/usecase/sandbox"
	usecase "github.com/pesalink/pesalink-payment-service/internal/usecase/transaction"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init database
	db := postgres.MustInitDB(cfg)

	if cfg.PaymentDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.PaymentDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	// Init transaction repo
	transactionRepo := repository.NewDefaultTransactionRepository(db)

	// Real-time broadcaster
	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	broadcaster := kafka.NewKafkaBroadcaster(brokers, cfg.KafkaService.TransactionTopic, cfg.KafkaService.MerchantFeedTopic)

	// Provider gateway
	gateway := daraja.NewDarajaGateway(
		cfg.Daraja.BaseURL,
		cfg.Daraja.CallbackURL,
		time.Duration(cfg.Daraja.TimeoutSeconds)*time.Second,
	)

	// External collaborators: validation layer and project/credentials store
	validator := validation.NewDefaultValidator()
	projectStore := projectstore.NewInMemProjectStore(loadSeedProject())

	notifier := webhook.NewWebhookNotifier(nil)
	transactionMetrics := metrics.NewTransactionMetrics()

	// Init transaction usecase
	uc := usecase.NewDefaultTransactionUsecase(
		transactionRepo,
		gateway,
		validator,
		projectStore,
		notifier,
		broadcaster,
		transactionMetrics,
	)

	// Sandbox simulator resolves through the same lifecycle path as real callbacks
	simulator, err := sandbox.NewSimulator(uc, time.Duration(cfg.Sandbox.ResolveDelaySeconds)*time.Second)
	if err != nil {
		log.Fatalf("failed to init sandbox simulator: %v", err)
	}
	uc.Simulator = simulator

	paymentHandler := handlers.NewPaymentHandler(uc)
	callbackHandler := handlers.NewCallbackHandler(uc)
	router := httpdelivery.NewRouter(paymentHandler, callbackHandler, projectStore)

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	log.Printf("payment service started on %s\n", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}

// loadSeedProject builds the single local project the reference in-mem store
// serves. The production deployment swaps this for the real credentials service.
func loadSeedProject() *domain.Project {
	return &domain.Project{
		ID:            envOr("PROJECT_ID", "00000000-0000-0000-0000-000000000001"),
		Name:          envOr("PROJECT_NAME", "local"),
		WebhookURL:    os.Getenv("PROJECT_WEBHOOK_URL"),
		WebhookSecret: os.Getenv("PROJECT_WEBHOOK_SECRET"),
		LiveAPIKey:    os.Getenv("PROJECT_LIVE_API_KEY"),
		SandboxAPIKey: envOr("PROJECT_SANDBOX_API_KEY", "sk_sandbox_local"),
		Credentials: domain.DarajaCredentials{
			ConsumerKey:    os.Getenv("DARAJA_CONSUMER_KEY"),
			ConsumerSecret: os.Getenv("DARAJA_CONSUMER_SECRET"),
			ShortCode:      os.Getenv("DARAJA_SHORT_CODE"),
			Passkey:        os.Getenv("DARAJA_PASSKEY"),
		},
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
