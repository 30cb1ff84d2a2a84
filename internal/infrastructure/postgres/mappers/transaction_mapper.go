package mappers

import (
	"github.com/pesalink/pesalink-payment-service/internal/domain"
	"github.com/pesalink/pesalink-payment-service/internal/infrastructure/postgres/models"
)

func ToGORMTransaction(transaction *domain.Transaction) *models.TransactionModel {
	var checkoutRequestID *string
	if transaction.CheckoutRequestID != "" {
		checkoutRequestID = &transaction.CheckoutRequestID
	}
	return &models.TransactionModel{
		ID:                transaction.ID,
		ProjectID:         transaction.ProjectID,
		Amount:            transaction.Amount,
		PhoneNumber:       transaction.PhoneNumber,
		Status:            transaction.Status,
		Environment:       transaction.Environment,
		Source:            transaction.Source,
		MerchantRequestID: transaction.MerchantRequestID,
		CheckoutRequestID: checkoutRequestID,
		MpesaReceipt:      transaction.MpesaReceipt,
		FailureReason:     transaction.FailureReason,
		MetadataJSON:      transaction.MetadataJSON,
		CreatedAt:         transaction.CreatedAt,
		UpdatedAt:         transaction.UpdatedAt,
	}
}

func ToDomainTransaction(model *models.TransactionModel) *domain.Transaction {
	checkoutRequestID := ""
	if model.CheckoutRequestID != nil {
		checkoutRequestID = *model.CheckoutRequestID
	}
	return &domain.Transaction{
		ID:                model.ID,
		ProjectID:         model.ProjectID,
		Amount:            model.Amount,
		PhoneNumber:       model.PhoneNumber,
		Status:            model.Status,
		Environment:       model.Environment,
		Source:            model.Source,
		MerchantRequestID: model.MerchantRequestID,
		CheckoutRequestID: checkoutRequestID,
		MpesaReceipt:      model.MpesaReceipt,
		FailureReason:     model.FailureReason,
		MetadataJSON:      model.MetadataJSON,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}
}
