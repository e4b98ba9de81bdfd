package services_test

import (
	"context"
	"testing"

	"github.com/api-sage/ledger/src/internal/adapter/repository/memory"
	"github.com/api-sage/ledger/src/internal/domain"
	"github.com/api-sage/ledger/src/internal/usecase/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func newAccountService(t *testing.T, accounts ...domain.Account) (*services.AccountService, *memory.AccountRepository) {
	t.Helper()

	repo := memory.NewAccountRepository()
	for _, account := range accounts {
		_, err := repo.Create(context.Background(), account)
		require.NoError(t, err)
	}

	return services.NewAccountService(repo, services.NewAccountLocks(), nil), repo
}

func eur(id int64, balance int64) domain.Account {
	return domain.Account{ID: id, Name: "account", Balance: decimal.NewFromInt(balance), Currency: "EUR"}
}

func TestAccountServiceDepositThenOverdrawnWithdraw(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccountService(t)

	_, err := svc.CreateAccount(ctx, eur(1111, 100))
	require.NoError(t, err)

	account, err := svc.Deposit(ctx, 1111, decimal.NewFromInt(50))
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(150)))

	_, err = svc.Withdraw(ctx, 1111, decimal.NewFromInt(10000))
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)

	account, err = svc.GetAccount(ctx, 1111)
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(150)))
}

func TestAccountServiceWithdrawExactBalance(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccountService(t, eur(1111, 100))

	account, err := svc.Withdraw(ctx, 1111, decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, account.Balance.IsZero())
}

func TestAccountServiceRejectsNegativeAmounts(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccountService(t, eur(1111, 100))

	_, err := svc.Deposit(ctx, 1111, decimal.NewFromInt(-5))
	require.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = svc.Withdraw(ctx, 1111, decimal.NewFromInt(-5))
	require.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = svc.CreateAccount(ctx, eur(2222, -1))
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestAccountServiceNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccountService(t)

	_, err := svc.GetAccount(ctx, 1)
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
	_, err = svc.Deposit(ctx, 1, decimal.NewFromInt(1))
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
	_, err = svc.Withdraw(ctx, 1, decimal.NewFromInt(1))
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
	require.ErrorIs(t, svc.DeleteAccount(ctx, 1), domain.ErrRecordNotFound)
}

func TestAccountServiceCreateDuplicate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccountService(t, eur(1111, 100))

	_, err := svc.CreateAccount(ctx, eur(1111, 5))
	require.ErrorIs(t, err, domain.ErrDuplicateRecord)

	accounts, err := svc.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.True(t, accounts[0].Balance.Equal(decimal.NewFromInt(100)))
}

func TestAccountServiceConcurrentWithdrawalsNeverOverdraw(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccountService(t, eur(1111, 100))

	var g errgroup.Group
	results := make(chan error, 50)
	for range 50 {
		g.Go(func() error {
			_, err := svc.Withdraw(ctx, 1111, decimal.NewFromInt(3))
			results <- err
			return nil
		})
	}
	require.NoError(t, g.Wait())
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		require.ErrorIs(t, err, domain.ErrInsufficientBalance)
	}

	account, err := svc.GetAccount(ctx, 1111)
	require.NoError(t, err)
	assert.Equal(t, 33, succeeded)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(1)))
}
