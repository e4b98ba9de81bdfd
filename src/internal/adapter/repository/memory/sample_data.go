package memory

import (
	"context"
	"fmt"

	"github.com/api-sage/ledger/src/internal/domain"
	"github.com/api-sage/ledger/src/internal/logger"
	"github.com/shopspring/decimal"
)

func SampleAccounts() []domain.Account {
	return []domain.Account{
		{ID: 1111, Name: "account 1", Balance: decimal.NewFromInt(100), Currency: "EUR"},
		{ID: 2222, Name: "account 2", Balance: decimal.NewFromInt(200), Currency: "USD"},
		{ID: 3333, Name: "account 3", Balance: decimal.NewFromInt(300), Currency: "GBP"},
	}
}

// SampleTransactions are historical records only; seeding them does not move
// any balance.
func SampleTransactions() []domain.Transaction {
	return []domain.Transaction{
		{
			FromAccount: 2222,
			ToAccount:   1111,
			Amount:      decimal.NewFromInt(12),
			Currency:    "EUR",
			Description: "test transaction 1",
			Status:      domain.TransactionStatusSuccessful,
		},
		{
			FromAccount: 3333,
			ToAccount:   1111,
			Amount:      decimal.NewFromInt(34),
			Currency:    "USD",
			Description: "test transaction 2",
			Status:      domain.TransactionStatusSuccessful,
		},
	}
}

func SeedSampleData(ctx context.Context, accounts *AccountRepository, transactions *TransactionRepository) error {
	for _, account := range SampleAccounts() {
		if _, err := accounts.Create(ctx, account); err != nil {
			return fmt.Errorf("seed account %d: %w", account.ID, err)
		}
	}

	for _, transaction := range SampleTransactions() {
		if _, err := transactions.Append(ctx, transaction); err != nil {
			return fmt.Errorf("seed transaction: %w", err)
		}
	}

	logger.Info("sample data seeded", logger.Fields{
		"accounts":     len(SampleAccounts()),
		"transactions": len(SampleTransactions()),
	})

	return nil
}
