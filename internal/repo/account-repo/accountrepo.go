package accountrepo

import (
	"context"
	"errors"
	"sync"

	"github.com/GlebRadaev/bankledger/internal/domain"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("account not found")

type Repository struct {
	mu         sync.RWMutex
	accounts   []domain.Account
	index      map[int]int
	lastNumber int
}

func New() *Repository {
	return &Repository{
		index:      make(map[int]int),
		lastNumber: domain.FirstAccountNumber - 1,
	}
}

// Create allocates the next account number and stores a zeroed account for owner.
func (r *Repository) Create(_ context.Context, agency string, owner domain.User) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastNumber++
	account := domain.Account{
		Agency:  agency,
		Number:  r.lastNumber,
		Owner:   owner,
		Balance: decimal.Zero,
	}
	r.index[account.Number] = len(r.accounts)
	r.accounts = append(r.accounts, account)
	return &account, nil
}

func (r *Repository) FindByNumber(_ context.Context, number int) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[number]
	if !ok {
		return nil, nil
	}
	account := r.accounts[i]
	return &account, nil
}

// Update overwrites the mutable state (balance and withdrawal count) of an account.
func (r *Repository) Update(_ context.Context, account *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[account.Number]
	if !ok {
		return nil, ErrNotFound
	}
	r.accounts[i].Balance = account.Balance
	r.accounts[i].WithdrawalCount = account.WithdrawalCount
	updated := r.accounts[i]
	return &updated, nil
}

func (r *Repository) List(_ context.Context) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	accounts := make([]domain.Account, len(r.accounts))
	copy(accounts, r.accounts)
	return accounts, nil
}
