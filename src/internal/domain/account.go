package domain

import "github.com/shopspring/decimal"

type Account struct {
	ID       int64
	Name     string
	Balance  decimal.Decimal
	Currency string
}

// Deposit adds amount to the balance unconditionally.
func (a *Account) Deposit(amount decimal.Decimal) {
	a.Balance = a.Balance.Add(amount)
}

// Withdraw subtracts amount from the balance unconditionally. Callers check
// CanCover first; the account itself enforces no floor.
func (a *Account) Withdraw(amount decimal.Decimal) {
	a.Balance = a.Balance.Sub(amount)
}

func (a Account) CanCover(amount decimal.Decimal) bool {
	return a.Balance.GreaterThanOrEqual(amount)
}
