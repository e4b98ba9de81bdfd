package repo_interfaces

import (
	"context"
	"iter"

	"github.com/api-sage/ledger/src/internal/domain"
)

type TransactionRepository interface {
	Create(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error)
	Append(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error)
	GetByID(ctx context.Context, id int64) (domain.Transaction, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]domain.Transaction, error)
	FindByAccount(ctx context.Context, accountID int64) iter.Seq[domain.Transaction]
	UpdateStatus(ctx context.Context, id int64, status domain.TransactionStatus) (domain.Transaction, error)
	Abort(ctx context.Context, id int64) error
}
