package service

import (
	"context"

	"github.com/ndewijer/Show-Ledger-Backend/internal/model"
	"github.com/ndewijer/Show-Ledger-Backend/internal/repository"
)

// TransactionService handles read access to transactions and their correction history.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
func NewTransactionService(transactionRepo *repository.TransactionRepository) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
	}
}

// GetTransaction retrieves a single transaction, including soft-deleted ones.
func (s *TransactionService) GetTransaction(ctx context.Context, ownerID, transactionID string) (model.Transaction, error) {
	return s.transactionRepo.GetTransaction(ctx, ownerID, transactionID)
}

// ListTransactions retrieves the transactions of an owner matching filter.
// Soft-deleted transactions are only included when filter.IncludeDeleted is set.
func (s *TransactionService) ListTransactions(ctx context.Context, ownerID string, filter model.TransactionFilter) ([]model.Transaction, error) {
	return s.transactionRepo.ListTransactions(ctx, ownerID, filter)
}

// ListCorrections returns the correction history of a transaction, oldest first.
func (s *TransactionService) ListCorrections(ctx context.Context, ownerID, transactionID string) ([]model.TransactionCorrection, error) {
	if _, err := s.transactionRepo.GetTransaction(ctx, ownerID, transactionID); err != nil {
		return nil, err
	}
	return s.transactionRepo.ListCorrections(ctx, ownerID, transactionID)
}
