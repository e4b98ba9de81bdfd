package memory_test

import (
	"context"
	"testing"

	"github.com/api-sage/ledger/src/internal/adapter/repository/memory"
	"github.com/api-sage/ledger/src/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccount(id int64, balance int64) domain.Account {
	return domain.Account{ID: id, Name: "acc", Balance: decimal.NewFromInt(balance), Currency: "EUR"}
}

func TestAccountRepositoryCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAccountRepository()

	created, err := repo.Create(ctx, newAccount(1111, 100))
	require.NoError(t, err)
	assert.Equal(t, int64(1111), created.ID)

	got, err := repo.GetByID(ctx, 1111)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(100)))

	again, err := repo.GetByID(ctx, 1111)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestAccountRepositoryCreateDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAccountRepository()

	_, err := repo.Create(ctx, newAccount(1111, 100))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newAccount(1111, 5))
	require.ErrorIs(t, err, domain.ErrDuplicateRecord)

	got, err := repo.GetByID(ctx, 1111)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(100)))
}

func TestAccountRepositoryGetMissing(t *testing.T) {
	_, err := memory.NewAccountRepository().GetByID(context.Background(), 42)
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestAccountRepositoryListKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAccountRepository()

	for _, id := range []int64{3333, 1111, 2222} {
		_, err := repo.Create(ctx, newAccount(id, 1))
		require.NoError(t, err)
	}
	require.NoError(t, repo.Delete(ctx, 1111))
	_, err := repo.Create(ctx, newAccount(1111, 1))
	require.NoError(t, err)

	accounts, err := repo.List(ctx)
	require.NoError(t, err)

	ids := make([]int64, 0, len(accounts))
	for _, account := range accounts {
		ids = append(ids, account.ID)
	}
	assert.Equal(t, []int64{3333, 2222, 1111}, ids)
}

func TestAccountRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAccountRepository()

	_, err := repo.Create(ctx, newAccount(1111, 1))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, 1111))
	require.ErrorIs(t, repo.Delete(ctx, 1111), domain.ErrRecordNotFound)

	_, err = repo.GetByID(ctx, 1111)
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestAccountRepositoryDepositWithdrawAreUnconditional(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAccountRepository()

	_, err := repo.Create(ctx, newAccount(1111, 100))
	require.NoError(t, err)

	updated, err := repo.Deposit(ctx, 1111, decimal.NewFromInt(50))
	require.NoError(t, err)
	assert.True(t, updated.Balance.Equal(decimal.NewFromInt(150)))

	updated, err = repo.Withdraw(ctx, 1111, decimal.NewFromInt(200))
	require.NoError(t, err)
	assert.True(t, updated.Balance.Equal(decimal.NewFromInt(-50)))

	_, err = repo.Deposit(ctx, 9, decimal.NewFromInt(1))
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
	_, err = repo.Withdraw(ctx, 9, decimal.NewFromInt(1))
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestAccountRepositoryReturnedCopiesDoNotAliasStore(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAccountRepository()

	created, err := repo.Create(ctx, newAccount(1111, 100))
	require.NoError(t, err)
	created.Deposit(decimal.NewFromInt(1000))

	got, err := repo.GetByID(ctx, 1111)
	require.NoError(t, err)
	got.Name = "changed"

	again, err := repo.GetByID(ctx, 1111)
	require.NoError(t, err)
	assert.True(t, again.Balance.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "acc", again.Name)
}

func TestAccountRepositoryMove(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAccountRepository()

	_, err := repo.Create(ctx, newAccount(1111, 150))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newAccount(2222, 200))
	require.NoError(t, err)

	require.NoError(t, repo.Move(ctx, 2222, 1111, decimal.NewFromInt(12)))

	from, err := repo.GetByID(ctx, 2222)
	require.NoError(t, err)
	to, err := repo.GetByID(ctx, 1111)
	require.NoError(t, err)
	assert.True(t, from.Balance.Equal(decimal.NewFromInt(188)))
	assert.True(t, to.Balance.Equal(decimal.NewFromInt(162)))
}

func TestAccountRepositoryMoveMissingDestinationLeavesSourceUntouched(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAccountRepository()

	_, err := repo.Create(ctx, newAccount(1111, 150))
	require.NoError(t, err)

	err = repo.Move(ctx, 1111, 9999, decimal.NewFromInt(10))
	require.ErrorIs(t, err, domain.ErrRecordNotFound)

	from, err := repo.GetByID(ctx, 1111)
	require.NoError(t, err)
	assert.True(t, from.Balance.Equal(decimal.NewFromInt(150)))
}
