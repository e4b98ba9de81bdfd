package domain

import "github.com/shopspring/decimal"

type TransactionStatus string

const (
	TransactionStatusProcessing TransactionStatus = "PROCESSING"
	TransactionStatusSuccessful TransactionStatus = "SUCCESSFUL"
	TransactionStatusFailed     TransactionStatus = "FAILED"
)

type Transaction struct {
	ID          int64
	FromAccount int64
	ToAccount   int64
	Amount      decimal.Decimal
	Currency    string
	Description string
	Status      TransactionStatus
}

// Touches reports whether the transaction moves funds out of or into accountID.
func (t Transaction) Touches(accountID int64) bool {
	return t.FromAccount == accountID || t.ToAccount == accountID
}

// TransferRequest is a candidate transaction as proposed by a caller. ID is
// optional: when nil the ledger allocates one at the point of storage. Amount
// is optional so that a missing amount can be reported as an invalid amount.
type TransferRequest struct {
	ID          *int64
	FromAccount int64
	ToAccount   int64
	Amount      *decimal.Decimal
	Currency    string
	Description string
}

// Transaction builds the PROCESSING record for an accepted request. The ID is
// left zero when the request carries none.
func (r TransferRequest) Transaction() Transaction {
	tx := Transaction{
		FromAccount: r.FromAccount,
		ToAccount:   r.ToAccount,
		Currency:    r.Currency,
		Description: r.Description,
		Status:      TransactionStatusProcessing,
	}
	if r.ID != nil {
		tx.ID = *r.ID
	}
	if r.Amount != nil {
		tx.Amount = *r.Amount
	}
	return tx
}
