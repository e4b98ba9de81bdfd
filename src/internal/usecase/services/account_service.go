package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/api-sage/ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/ledger/src/internal/domain"
	"github.com/api-sage/ledger/src/internal/logger"
	"github.com/api-sage/ledger/src/internal/metrics"
	"github.com/api-sage/ledger/src/internal/usecase/service_interfaces"
	"github.com/shopspring/decimal"
)

var _ service_interfaces.AccountService = (*AccountService)(nil)

type AccountService struct {
	accountRepo repo_interfaces.AccountRepository
	locks       *AccountLocks
	recorder    *metrics.Recorder
}

func NewAccountService(
	accountRepo repo_interfaces.AccountRepository,
	locks *AccountLocks,
	recorder *metrics.Recorder,
) *AccountService {
	if locks == nil {
		locks = NewAccountLocks()
	}

	return &AccountService{
		accountRepo: accountRepo,
		locks:       locks,
		recorder:    recorder,
	}
}

func (s *AccountService) CreateAccount(ctx context.Context, account domain.Account) (domain.Account, error) {
	logger.Info("account service create account request", logger.Fields{
		"accountId": account.ID,
		"currency":  account.Currency,
	})

	if account.Balance.IsNegative() {
		err := fmt.Errorf("create account %d with balance %s: %w", account.ID, account.Balance, domain.ErrInvalidAmount)
		s.recorder.AccountOperation(ctx, "create", metrics.OutcomeFailure)
		return domain.Account{}, err
	}

	unlock := s.locks.Lock(account.ID)
	defer unlock()

	created, err := s.accountRepo.Create(ctx, account)
	if err != nil {
		logger.Error("account service create account failed", err, logger.Fields{
			"accountId": account.ID,
		})
		s.recorder.AccountOperation(ctx, "create", metrics.OutcomeFailure)
		return domain.Account{}, err
	}

	s.recorder.AccountOperation(ctx, "create", metrics.OutcomeSuccess)
	return created, nil
}

func (s *AccountService) GetAccount(ctx context.Context, id int64) (domain.Account, error) {
	return s.accountRepo.GetByID(ctx, id)
}

func (s *AccountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.accountRepo.List(ctx)
}

func (s *AccountService) DeleteAccount(ctx context.Context, id int64) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	if err := s.accountRepo.Delete(ctx, id); err != nil {
		logger.Error("account service delete account failed", err, logger.Fields{
			"accountId": id,
		})
		s.recorder.AccountOperation(ctx, "delete", metrics.OutcomeFailure)
		return err
	}

	logger.Info("account service delete account success", logger.Fields{
		"accountId": id,
	})
	s.recorder.AccountOperation(ctx, "delete", metrics.OutcomeSuccess)

	return nil
}

func (s *AccountService) Deposit(ctx context.Context, id int64, amount decimal.Decimal) (domain.Account, error) {
	logger.Info("account service deposit request", logger.Fields{
		"accountId": id,
		"amount":    amount.String(),
	})

	if amount.IsNegative() {
		s.recorder.AccountOperation(ctx, "deposit", metrics.OutcomeFailure)
		return domain.Account{}, fmt.Errorf("deposit %s: %w", amount, domain.ErrInvalidAmount)
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	account, err := s.accountRepo.Deposit(ctx, id, amount)
	if err != nil {
		logger.Error("account service deposit failed", err, logger.Fields{
			"accountId": id,
		})
		s.recorder.AccountOperation(ctx, "deposit", metrics.OutcomeFailure)
		return domain.Account{}, err
	}

	logger.Info("account service deposit success", logger.Fields{
		"accountId": account.ID,
		"balance":   account.Balance.String(),
	})
	s.recorder.AccountOperation(ctx, "deposit", metrics.OutcomeSuccess)

	return account, nil
}

// Withdraw checks sufficiency and withdraws while holding the account lock, so
// no concurrent transfer or withdrawal can take the balance below zero.
func (s *AccountService) Withdraw(ctx context.Context, id int64, amount decimal.Decimal) (domain.Account, error) {
	logger.Info("account service withdraw request", logger.Fields{
		"accountId": id,
		"amount":    amount.String(),
	})

	if amount.IsNegative() {
		s.recorder.AccountOperation(ctx, "withdraw", metrics.OutcomeFailure)
		return domain.Account{}, fmt.Errorf("withdraw %s: %w", amount, domain.ErrInvalidAmount)
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		s.recorder.AccountOperation(ctx, "withdraw", metrics.OutcomeFailure)
		return domain.Account{}, err
	}

	if !account.CanCover(amount) {
		err := fmt.Errorf("withdraw %s from account %d with balance %s: %w", amount, id, account.Balance, domain.ErrInsufficientBalance)
		logger.Info("account service withdraw rejected", logger.Fields{
			"accountId": id,
			"amount":    amount.String(),
			"balance":   account.Balance.String(),
		})
		s.recorder.AccountOperation(ctx, "withdraw", metrics.OutcomeFailure)
		return domain.Account{}, err
	}

	account, err = s.accountRepo.Withdraw(ctx, id, amount)
	if err != nil {
		logger.Error("account service withdraw failed", err, logger.Fields{
			"accountId": id,
		})
		s.recorder.AccountOperation(ctx, "withdraw", metrics.OutcomeFailure)
		return domain.Account{}, err
	}

	logger.Info("account service withdraw success", logger.Fields{
		"accountId": account.ID,
		"balance":   account.Balance.String(),
	})
	s.recorder.AccountOperation(ctx, "withdraw", metrics.OutcomeSuccess)

	return account, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrRecordNotFound)
}
