package userrepo

import (
	"context"
	"sync"

	"github.com/GlebRadaev/bankledger/internal/domain"
)

type Repository struct {
	mu    sync.RWMutex
	users []domain.User
}

func New() *Repository {
	return &Repository{}
}

// FindByTaxID returns the first user registered with taxID, or nil when none is.
func (repo *Repository) FindByTaxID(_ context.Context, taxID string) (*domain.User, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	for i := range repo.users {
		if repo.users[i].TaxID == taxID {
			user := repo.users[i]
			return &user, nil
		}
	}
	return nil, nil
}

func (repo *Repository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.users = append(repo.users, *user)
	created := *user
	return &created, nil
}

func (repo *Repository) List(_ context.Context) ([]domain.User, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	users := make([]domain.User, len(repo.users))
	copy(users, repo.users)
	return users, nil
}
