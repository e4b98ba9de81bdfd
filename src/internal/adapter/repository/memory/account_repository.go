package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/api-sage/ledger/src/internal/domain"
	"github.com/api-sage/ledger/src/internal/logger"
	"github.com/shopspring/decimal"
)

// AccountRepository keeps accounts in insertion order. Reads return copies;
// the stored record is only changed through the mutating methods.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[int64]*domain.Account
	order    []int64
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{accounts: make(map[int64]*domain.Account)}
}

func (r *AccountRepository) Create(_ context.Context, account domain.Account) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[account.ID]; exists {
		return domain.Account{}, fmt.Errorf("create account %d: %w", account.ID, domain.ErrDuplicateRecord)
	}

	stored := account
	r.accounts[account.ID] = &stored
	r.order = append(r.order, account.ID)

	logger.Info("account repository create success", logger.Fields{
		"accountId": account.ID,
		"currency":  account.Currency,
	})

	return stored, nil
}

func (r *AccountRepository) GetByID(_ context.Context, id int64) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		return domain.Account{}, fmt.Errorf("get account %d: %w", id, domain.ErrRecordNotFound)
	}

	return *account, nil
}

func (r *AccountRepository) List(_ context.Context) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Account, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.accounts[id])
	}

	return out, nil
}

func (r *AccountRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[id]; !ok {
		return fmt.Errorf("delete account %d: %w", id, domain.ErrRecordNotFound)
	}

	delete(r.accounts, id)
	r.order = slices.DeleteFunc(r.order, func(existing int64) bool { return existing == id })

	logger.Info("account repository delete success", logger.Fields{
		"accountId": id,
	})

	return nil
}

func (r *AccountRepository) Deposit(_ context.Context, id int64, amount decimal.Decimal) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return domain.Account{}, fmt.Errorf("deposit to account %d: %w", id, domain.ErrRecordNotFound)
	}

	account.Deposit(amount)
	return *account, nil
}

func (r *AccountRepository) Withdraw(_ context.Context, id int64, amount decimal.Decimal) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return domain.Account{}, fmt.Errorf("withdraw from account %d: %w", id, domain.ErrRecordNotFound)
	}

	account.Withdraw(amount)
	return *account, nil
}

// Move applies withdraw(fromID) then deposit(toID) under a single write lock,
// so no reader observes one leg without the other. Both accounts are resolved
// before either balance changes.
func (r *AccountRepository) Move(_ context.Context, fromID int64, toID int64, amount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	from, ok := r.accounts[fromID]
	if !ok {
		return fmt.Errorf("move funds from account %d: %w", fromID, domain.ErrRecordNotFound)
	}
	to, ok := r.accounts[toID]
	if !ok {
		return fmt.Errorf("move funds to account %d: %w", toID, domain.ErrRecordNotFound)
	}

	from.Withdraw(amount)
	to.Deposit(amount)

	return nil
}
