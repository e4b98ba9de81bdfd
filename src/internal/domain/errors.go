package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound      = errors.New("record not found")
	ErrDuplicateRecord     = errors.New("record already exists")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidIdentifier   = errors.New("invalid identifier")
	ErrMalformedInput      = errors.New("malformed input")
)

// TransferFailure names the validation step that rejected a transfer.
type TransferFailure string

const (
	TransferDuplicateTransaction       TransferFailure = "DUPLICATE_TRANSACTION"
	TransferSourceAccountNotFound      TransferFailure = "SOURCE_ACCOUNT_NOT_FOUND"
	TransferDestinationAccountNotFound TransferFailure = "DESTINATION_ACCOUNT_NOT_FOUND"
	TransferInvalidAmount              TransferFailure = "INVALID_AMOUNT"
	TransferInsufficientFunds          TransferFailure = "INSUFFICIENT_FUNDS"
)

// TransferError reports the first failing check of a transfer. It unwraps to
// the matching kind sentinel so errors.Is works on either level.
type TransferError struct {
	Reason    TransferFailure
	AccountID int64
	Detail    string
}

func (e *TransferError) Error() string {
	switch e.Reason {
	case TransferDuplicateTransaction:
		return fmt.Sprintf("transfer rejected: %s", e.Detail)
	case TransferSourceAccountNotFound:
		return fmt.Sprintf("transfer rejected: source account %d not found", e.AccountID)
	case TransferDestinationAccountNotFound:
		return fmt.Sprintf("transfer rejected: destination account %d not found", e.AccountID)
	case TransferInsufficientFunds:
		return fmt.Sprintf("transfer rejected: account %d cannot cover %s", e.AccountID, e.Detail)
	default:
		return fmt.Sprintf("transfer rejected: %s", e.Detail)
	}
}

func (e *TransferError) Unwrap() error {
	switch e.Reason {
	case TransferDuplicateTransaction:
		return ErrDuplicateRecord
	case TransferSourceAccountNotFound, TransferDestinationAccountNotFound:
		return ErrRecordNotFound
	case TransferInvalidAmount:
		return ErrInvalidAmount
	case TransferInsufficientFunds:
		return ErrInsufficientBalance
	default:
		return nil
	}
}

// TransferFailureOf extracts the failure reason from err, if any.
func TransferFailureOf(err error) (TransferFailure, bool) {
	var transferErr *TransferError
	if errors.As(err, &transferErr) {
		return transferErr.Reason, true
	}
	return "", false
}
