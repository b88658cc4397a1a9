package transactionrepo

import (
	"context"
	"sync"
	"time"

	"github.com/GlebRadaev/bankledger/internal/domain"
	"github.com/google/uuid"
)

type Repository struct {
	mu   sync.RWMutex
	logs map[int][]domain.Transaction
}

func New() *Repository {
	return &Repository{
		logs: make(map[int][]domain.Transaction),
	}
}

// CreateTransaction appends tx to the end of its account log, assigning ID and Seq.
func (r *Repository) CreateTransaction(_ context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	log := r.logs[tx.AccountNumber]
	tx.ID = uuid.New()
	tx.Seq = len(log) + 1
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now()
	}
	r.logs[tx.AccountNumber] = append(log, *tx)
	return tx, nil
}

// GetTransactionsByAccount returns the log of an account in insertion order.
// An account without records yields an empty, non-nil slice.
func (r *Repository) GetTransactionsByAccount(_ context.Context, accountNumber int) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	log := r.logs[accountNumber]
	transactions := make([]domain.Transaction, len(log))
	copy(transactions, log)
	return transactions, nil
}
