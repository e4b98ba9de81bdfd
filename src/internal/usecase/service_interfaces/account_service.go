package service_interfaces

import (
	"context"

	"github.com/api-sage/ledger/src/internal/domain"
	"github.com/shopspring/decimal"
)

type AccountService interface {
	CreateAccount(ctx context.Context, account domain.Account) (domain.Account, error)
	GetAccount(ctx context.Context, id int64) (domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	DeleteAccount(ctx context.Context, id int64) error
	Deposit(ctx context.Context, id int64, amount decimal.Decimal) (domain.Account, error)
	Withdraw(ctx context.Context, id int64, amount decimal.Decimal) (domain.Account, error)
}
