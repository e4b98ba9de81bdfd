package models

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/api-sage/ledger/src/internal/domain"
	"github.com/shopspring/decimal"
)

type AccountRequest struct {
	ID       *int64           `json:"id"`
	Name     string           `json:"name"`
	Balance  *decimal.Decimal `json:"balance"`
	Currency string           `json:"currency"`
}

func (r AccountRequest) Validate() error {
	var errs []string

	if r.ID == nil {
		errs = append(errs, "id is required")
	} else if !validID(*r.ID) {
		errs = append(errs, "id is out of range")
	}

	if strings.TrimSpace(r.Currency) == "" {
		errs = append(errs, "currency is required")
	} else if _, err := normalizeCurrency(r.Currency); err != nil {
		errs = append(errs, err.Error())
	}

	if r.Balance != nil && r.Balance.IsNegative() {
		errs = append(errs, "balance cannot be negative")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

// ToDomain converts a validated request. A missing balance opens the account
// at zero.
func (r AccountRequest) ToDomain() domain.Account {
	account := domain.Account{
		Name:    r.Name,
		Balance: decimal.Zero,
	}
	if r.ID != nil {
		account.ID = *r.ID
	}
	if r.Balance != nil {
		account.Balance = *r.Balance
	}
	if code, err := normalizeCurrency(r.Currency); err == nil {
		account.Currency = code
	}

	return account
}

type AccountResponse struct {
	ID       int64       `json:"id"`
	Name     string      `json:"name"`
	Balance  json.Number `json:"balance"`
	Currency string      `json:"currency"`
}

func NewAccountResponse(account domain.Account) AccountResponse {
	return AccountResponse{
		ID:       account.ID,
		Name:     account.Name,
		Balance:  json.Number(account.Balance.String()),
		Currency: account.Currency,
	}
}

func NewAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, NewAccountResponse(account))
	}

	return out
}
