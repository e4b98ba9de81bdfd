package repo_interfaces

import (
	"context"

	"github.com/api-sage/ledger/src/internal/domain"
	"github.com/shopspring/decimal"
)

type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	GetByID(ctx context.Context, id int64) (domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	Delete(ctx context.Context, id int64) error
	Deposit(ctx context.Context, id int64, amount decimal.Decimal) (domain.Account, error)
	Withdraw(ctx context.Context, id int64, amount decimal.Decimal) (domain.Account, error)
	Move(ctx context.Context, fromID int64, toID int64, amount decimal.Decimal) error
}
