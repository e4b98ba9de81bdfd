package memory

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"sync"

	"github.com/api-sage/ledger/src/internal/domain"
	"github.com/api-sage/ledger/src/internal/logger"
)

type TransactionRepository struct {
	mu           sync.RWMutex
	seq          *Sequence
	transactions map[int64]*domain.Transaction
	order        []int64
}

func NewTransactionRepository(seq *Sequence) *TransactionRepository {
	if seq == nil {
		seq = NewSequence()
	}

	return &TransactionRepository{
		seq:          seq,
		transactions: make(map[int64]*domain.Transaction),
	}
}

// Create stores a transaction under its caller-supplied id.
func (r *TransactionRepository) Create(_ context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.transactions[transaction.ID]; exists {
		return domain.Transaction{}, fmt.Errorf("create transaction %d: %w", transaction.ID, domain.ErrDuplicateRecord)
	}

	r.insert(transaction)
	return transaction, nil
}

// Append stores a transaction under the next free id from the sequence. Ids
// already taken by explicitly created transactions are skipped.
func (r *TransactionRepository) Append(_ context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for {
		transaction.ID = r.seq.Next()
		if _, exists := r.transactions[transaction.ID]; !exists {
			break
		}
	}

	r.insert(transaction)
	return transaction, nil
}

func (r *TransactionRepository) insert(transaction domain.Transaction) {
	stored := transaction
	r.transactions[transaction.ID] = &stored
	r.order = append(r.order, transaction.ID)

	logger.Info("transaction repository create success", logger.Fields{
		"transactionId": transaction.ID,
		"fromAccount":   transaction.FromAccount,
		"toAccount":     transaction.ToAccount,
		"status":        string(transaction.Status),
	})
}

func (r *TransactionRepository) GetByID(_ context.Context, id int64) (domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	transaction, ok := r.transactions[id]
	if !ok {
		return domain.Transaction{}, fmt.Errorf("get transaction %d: %w", id, domain.ErrRecordNotFound)
	}

	return *transaction, nil
}

func (r *TransactionRepository) Exists(_ context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.transactions[id]
	return ok, nil
}

func (r *TransactionRepository) List(_ context.Context) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Transaction, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.transactions[id])
	}

	return out, nil
}

// FindByAccount yields, in insertion order, the transactions whose source or
// destination is accountID. Every range over the sequence starts a fresh scan.
func (r *TransactionRepository) FindByAccount(_ context.Context, accountID int64) iter.Seq[domain.Transaction] {
	return func(yield func(domain.Transaction) bool) {
		r.mu.RLock()
		ids := slices.Clone(r.order)
		r.mu.RUnlock()

		for _, id := range ids {
			r.mu.RLock()
			transaction, ok := r.transactions[id]
			var current domain.Transaction
			if ok {
				current = *transaction
			}
			r.mu.RUnlock()

			if !ok || !current.Touches(accountID) {
				continue
			}
			if !yield(current) {
				return
			}
		}
	}
}

func (r *TransactionRepository) UpdateStatus(_ context.Context, id int64, status domain.TransactionStatus) (domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	transaction, ok := r.transactions[id]
	if !ok {
		return domain.Transaction{}, fmt.Errorf("update transaction %d status: %w", id, domain.ErrRecordNotFound)
	}

	transaction.Status = status
	return *transaction, nil
}

// Abort withdraws a transaction that never left PROCESSING. Committed
// transactions are never removed.
func (r *TransactionRepository) Abort(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	transaction, ok := r.transactions[id]
	if !ok {
		return fmt.Errorf("abort transaction %d: %w", id, domain.ErrRecordNotFound)
	}
	if transaction.Status != domain.TransactionStatusProcessing {
		return fmt.Errorf("abort transaction %d in status %s", id, transaction.Status)
	}

	delete(r.transactions, id)
	r.order = slices.DeleteFunc(r.order, func(existing int64) bool { return existing == id })

	logger.Warn("transaction repository aborted processing transaction", logger.Fields{
		"transactionId": id,
	})

	return nil
}
