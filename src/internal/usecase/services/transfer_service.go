package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/api-sage/ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/ledger/src/internal/domain"
	"github.com/api-sage/ledger/src/internal/logger"
	"github.com/api-sage/ledger/src/internal/metrics"
	"github.com/api-sage/ledger/src/internal/usecase/service_interfaces"
	"github.com/shopspring/decimal"
)

var _ service_interfaces.TransferService = (*TransferService)(nil)

type TransferService struct {
	accountRepo     repo_interfaces.AccountRepository
	transactionRepo repo_interfaces.TransactionRepository
	locks           *AccountLocks
	recorder        *metrics.Recorder
}

func NewTransferService(
	accountRepo repo_interfaces.AccountRepository,
	transactionRepo repo_interfaces.TransactionRepository,
	locks *AccountLocks,
	recorder *metrics.Recorder,
) *TransferService {
	if locks == nil {
		locks = NewAccountLocks()
	}

	return &TransferService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		locks:           locks,
		recorder:        recorder,
	}
}

// transferState carries what earlier checks resolved to the later ones.
type transferState struct {
	source domain.Account
	amount decimal.Decimal
}

type transferCheck func(ctx context.Context, req domain.TransferRequest, state *transferState) error

// Transfer validates req and, when every check passes, moves the funds and
// commits the transaction as SUCCESSFUL. Checks run in order and the first
// failure is returned as a *domain.TransferError; a rejected request changes
// neither balance and is not stored.
func (s *TransferService) Transfer(ctx context.Context, req domain.TransferRequest) (domain.Transaction, error) {
	fields := transferFields(req)
	fields["currency"] = req.Currency
	logger.Info("transfer service transfer request", fields)

	unlock := s.locks.Lock(req.FromAccount, req.ToAccount)
	defer unlock()

	var state transferState
	checks := []transferCheck{
		s.checkDuplicate,
		s.checkSource,
		s.checkDestination,
		s.checkAmount,
		s.checkFunds,
	}
	for _, check := range checks {
		if err := check(ctx, req, &state); err != nil {
			return domain.Transaction{}, s.reject(ctx, req, err)
		}
	}

	committed, err := s.commit(ctx, req, state.amount)
	if err != nil {
		return domain.Transaction{}, s.reject(ctx, req, err)
	}

	logger.Info("transfer service transfer success", logger.Fields{
		"transactionId": committed.ID,
		"fromAccount":   committed.FromAccount,
		"toAccount":     committed.ToAccount,
		"amount":        committed.Amount.String(),
	})
	s.recorder.Transfer(ctx, metrics.OutcomeSuccess, "")

	return committed, nil
}

func (s *TransferService) checkDuplicate(ctx context.Context, req domain.TransferRequest, _ *transferState) error {
	if req.ID == nil {
		return nil
	}

	exists, err := s.transactionRepo.Exists(ctx, *req.ID)
	if err != nil {
		return fmt.Errorf("check transaction %d: %w", *req.ID, err)
	}
	if exists {
		return duplicateTransaction(*req.ID)
	}

	return nil
}

func (s *TransferService) checkSource(ctx context.Context, req domain.TransferRequest, state *transferState) error {
	source, err := s.accountRepo.GetByID(ctx, req.FromAccount)
	if err != nil {
		if isNotFound(err) {
			return &domain.TransferError{Reason: domain.TransferSourceAccountNotFound, AccountID: req.FromAccount}
		}
		return fmt.Errorf("load source account %d: %w", req.FromAccount, err)
	}

	state.source = source
	return nil
}

func (s *TransferService) checkDestination(ctx context.Context, req domain.TransferRequest, _ *transferState) error {
	if _, err := s.accountRepo.GetByID(ctx, req.ToAccount); err != nil {
		if isNotFound(err) {
			return &domain.TransferError{Reason: domain.TransferDestinationAccountNotFound, AccountID: req.ToAccount}
		}
		return fmt.Errorf("load destination account %d: %w", req.ToAccount, err)
	}

	return nil
}

func (s *TransferService) checkAmount(_ context.Context, req domain.TransferRequest, state *transferState) error {
	if req.Amount == nil {
		return &domain.TransferError{Reason: domain.TransferInvalidAmount, Detail: "amount is required"}
	}
	if !req.Amount.IsPositive() {
		return &domain.TransferError{
			Reason: domain.TransferInvalidAmount,
			Detail: fmt.Sprintf("amount %s must be greater than zero", req.Amount),
		}
	}

	state.amount = *req.Amount
	return nil
}

func (s *TransferService) checkFunds(_ context.Context, _ domain.TransferRequest, state *transferState) error {
	if !state.source.CanCover(state.amount) {
		return &domain.TransferError{
			Reason:    domain.TransferInsufficientFunds,
			AccountID: state.source.ID,
			Detail:    state.amount.String(),
		}
	}

	return nil
}

// commit records the transaction as PROCESSING, applies both legs of the
// movement and marks it SUCCESSFUL. A duplicate id that slipped in after the
// first check is caught by the store before any balance changes.
func (s *TransferService) commit(ctx context.Context, req domain.TransferRequest, amount decimal.Decimal) (domain.Transaction, error) {
	pending := req.Transaction()
	pending.Amount = amount

	var (
		recorded domain.Transaction
		err      error
	)
	if req.ID != nil {
		recorded, err = s.transactionRepo.Create(ctx, pending)
	} else {
		recorded, err = s.transactionRepo.Append(ctx, pending)
	}
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateRecord) {
			return domain.Transaction{}, duplicateTransaction(pending.ID)
		}
		return domain.Transaction{}, fmt.Errorf("record transaction: %w", err)
	}

	if err := s.accountRepo.Move(ctx, req.FromAccount, req.ToAccount, amount); err != nil {
		if abortErr := s.transactionRepo.Abort(ctx, recorded.ID); abortErr != nil {
			logger.Error("transfer service abort transaction failed", abortErr, logger.Fields{
				"transactionId": recorded.ID,
			})
		}
		return domain.Transaction{}, fmt.Errorf("move funds for transaction %d: %w", recorded.ID, err)
	}

	committed, err := s.transactionRepo.UpdateStatus(ctx, recorded.ID, domain.TransactionStatusSuccessful)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("mark transaction %d successful: %w", recorded.ID, err)
	}

	return committed, nil
}

func (s *TransferService) reject(ctx context.Context, req domain.TransferRequest, err error) error {
	reason, ok := domain.TransferFailureOf(err)
	if !ok {
		logger.Error("transfer service transfer failed", err, transferFields(req))
		s.recorder.Transfer(ctx, metrics.OutcomeFailure, "INTERNAL")
		return err
	}

	fields := transferFields(req)
	fields["reason"] = string(reason)
	logger.Info("transfer service transfer rejected", fields)
	s.recorder.Transfer(ctx, metrics.OutcomeFailure, string(reason))

	return err
}

func (s *TransferService) GetTransaction(ctx context.Context, id int64) (domain.Transaction, error) {
	return s.transactionRepo.GetByID(ctx, id)
}

func (s *TransferService) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	return s.transactionRepo.List(ctx)
}

// TransactionsForAccount lists every stored transaction touching accountID.
// It fails with domain.ErrRecordNotFound when the account does not exist.
func (s *TransferService) TransactionsForAccount(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	if _, err := s.accountRepo.GetByID(ctx, accountID); err != nil {
		return nil, err
	}

	transactions := slices.Collect(s.transactionRepo.FindByAccount(ctx, accountID))
	if transactions == nil {
		transactions = []domain.Transaction{}
	}

	return transactions, nil
}

// transferFields carries the transaction id only when the caller supplied one;
// allocated ids are logged once the transaction is stored.
func transferFields(req domain.TransferRequest) logger.Fields {
	fields := logger.Fields{
		"fromAccount": req.FromAccount,
		"toAccount":   req.ToAccount,
	}
	if req.ID != nil {
		fields["transactionId"] = *req.ID
	}

	return fields
}

func duplicateTransaction(id int64) *domain.TransferError {
	return &domain.TransferError{
		Reason: domain.TransferDuplicateTransaction,
		Detail: fmt.Sprintf("transaction %d already exists", id),
	}
}
