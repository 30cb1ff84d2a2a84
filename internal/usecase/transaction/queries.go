package usecase

import "github.com/pesalink/pesalink-payment-service/internal/domain"

func (uc *DefaultTransactionUsecase) GetTransactionByID(transactionID string) (*domain.Transaction, error) {
	return uc.TransactionRepo.GetTransactionByID(transactionID)
}
