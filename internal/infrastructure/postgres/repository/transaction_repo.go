package repository

import (
	"errors"
	"time"

	"github.com/pesalink/pesalink-payment-service/internal/domain"
	"github.com/pesalink/pesalink-payment-service/internal/infrastructure/postgres/mappers"
	"github.com/pesalink/pesalink-payment-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultTransactionRepository struct {
	DB *gorm.DB
}

func NewDefaultTransactionRepository(db *gorm.DB) *DefaultTransactionRepository {
	return &DefaultTransactionRepository{DB: db}
}

func (r *DefaultTransactionRepository) CreateTransaction(transaction *domain.Transaction) error {
	transactionModel := mappers.ToGORMTransaction(transaction)
	if err := r.DB.Create(transactionModel).Error; err != nil {
		return err
	}
	return nil
}

func (r *DefaultTransactionRepository) GetTransactionByID(transactionID string) (*domain.Transaction, error) {
	var transaction models.TransactionModel
	if err := r.DB.First(&transaction, "id = ?", transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}

	return mappers.ToDomainTransaction(&transaction), nil
}

func (r *DefaultTransactionRepository) GetTransactionByCheckoutRequestID(checkoutRequestID string) (*domain.Transaction, error) {
	var transaction models.TransactionModel
	if err := r.DB.First(&transaction, "checkout_request_id = ?", checkoutRequestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}

	return mappers.ToDomainTransaction(&transaction), nil
}

// AttachCorrelation records provider-assigned correlation ids. The condition keeps
// the checkout request id write-once.
func (r *DefaultTransactionRepository) AttachCorrelation(transactionID, merchantRequestID, checkoutRequestID string) error {
	result := r.DB.Model(&models.TransactionModel{}).
		Where("id = ? AND checkout_request_id IS NULL", transactionID).
		Updates(map[string]interface{}{
			"merchant_request_id": merchantRequestID,
			"checkout_request_id": checkoutRequestID,
			"updated_at":          time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// ResolvePending is the single atomic PENDING->terminal transition. The status guard
// in the WHERE clause makes a duplicate callback lose the race instead of firing
// side effects twice.
func (r *DefaultTransactionRepository) ResolvePending(checkoutRequestID string, outcome domain.Outcome) (*domain.Transaction, error) {
	result := r.DB.Model(&models.TransactionModel{}).
		Where("checkout_request_id = ? AND status = ?", checkoutRequestID, domain.StatusPending).
		Updates(map[string]interface{}{
			"status":         outcome.Status,
			"mpesa_receipt":  outcome.MpesaReceipt,
			"failure_reason": outcome.FailureReason,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}

	transaction, err := r.GetTransactionByCheckoutRequestID(checkoutRequestID)
	if err != nil {
		return nil, err
	}

	if result.RowsAffected == 0 {
		return transaction, domain.ErrAlreadyResolved
	}
	return transaction, nil
}

func (r *DefaultTransactionRepository) MarkInitiationFailed(transactionID, reason string) error {
	result := r.DB.Model(&models.TransactionModel{}).
		Where("id = ? AND status = ?", transactionID, domain.StatusPending).
		Updates(map[string]interface{}{
			"status":         domain.StatusFailed,
			"failure_reason": reason,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}
