package models

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/api-sage/ledger/src/internal/domain"
	"github.com/shopspring/decimal"
)

// TransactionRequest is the body of POST /transactions. Id and amount are
// optional; their absence is resolved by the ledger, not here.
type TransactionRequest struct {
	ID          *int64           `json:"id"`
	FromAccount int64            `json:"fromAccount"`
	ToAccount   int64            `json:"toAccount"`
	Amount      *decimal.Decimal `json:"amount"`
	Currency    string           `json:"currency"`
	Description string           `json:"description"`
}

func (r TransactionRequest) Validate() error {
	var errs []string

	if r.ID != nil && !validID(*r.ID) {
		errs = append(errs, "id is out of range")
	}
	if !validID(r.FromAccount) {
		errs = append(errs, "fromAccount is out of range")
	}
	if !validID(r.ToAccount) {
		errs = append(errs, "toAccount is out of range")
	}
	if strings.TrimSpace(r.Currency) != "" {
		if _, err := normalizeCurrency(r.Currency); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (r TransactionRequest) ToDomain() domain.TransferRequest {
	req := domain.TransferRequest{
		ID:          r.ID,
		FromAccount: r.FromAccount,
		ToAccount:   r.ToAccount,
		Amount:      r.Amount,
		Description: r.Description,
	}
	if code, err := normalizeCurrency(r.Currency); err == nil {
		req.Currency = code
	}

	return req
}

type TransactionResponse struct {
	ID          int64       `json:"id"`
	FromAccount int64       `json:"fromAccount"`
	ToAccount   int64       `json:"toAccount"`
	Amount      json.Number `json:"amount"`
	Currency    string      `json:"currency"`
	Description string      `json:"description"`
	Status      string      `json:"status"`
}

func NewTransactionResponse(transaction domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          transaction.ID,
		FromAccount: transaction.FromAccount,
		ToAccount:   transaction.ToAccount,
		Amount:      json.Number(transaction.Amount.String()),
		Currency:    transaction.Currency,
		Description: transaction.Description,
		Status:      string(transaction.Status),
	}
}

func NewTransactionResponses(transactions []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(transactions))
	for _, transaction := range transactions {
		out = append(out, NewTransactionResponse(transaction))
	}

	return out
}
