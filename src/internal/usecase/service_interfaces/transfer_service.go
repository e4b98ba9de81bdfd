package service_interfaces

import (
	"context"

	"github.com/api-sage/ledger/src/internal/domain"
)

type TransferService interface {
	Transfer(ctx context.Context, req domain.TransferRequest) (domain.Transaction, error)
	GetTransaction(ctx context.Context, id int64) (domain.Transaction, error)
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
	TransactionsForAccount(ctx context.Context, accountID int64) ([]domain.Transaction, error)
}
