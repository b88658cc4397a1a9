package userservice

import (
	"context"
	"errors"

	"github.com/GlebRadaev/bankledger/internal/domain"
	"github.com/GlebRadaev/bankledger/internal/store"
)

//go:generate mockgen -source=userservice.go -destination=mock_userservice.go -package=userservice

type Repo interface {
	FindByTaxID(ctx context.Context, taxID string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type Service struct {
	userRepo  Repo
	txManager store.TXManager
}

func New(repo Repo, txManager store.TXManager) *Service {
	return &Service{
		userRepo:  repo,
		txManager: txManager,
	}
}

var (
	ErrDuplicateUser = errors.New("user with this tax id already exists")
	ErrUserNotFound  = errors.New("user not found")
)

// Register stores a new user. The duplicate check and the insert run in one
// transaction, so two registrations of the same tax id cannot both succeed.
func (s *Service) Register(ctx context.Context, fullName, birthDate, taxID, address string) (*domain.User, error) {
	var user *domain.User
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		existing, err := s.userRepo.FindByTaxID(ctx, taxID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrDuplicateUser
		}
		user, err = s.userRepo.Create(ctx, &domain.User{
			FullName:  fullName,
			BirthDate: birthDate,
			TaxID:     taxID,
			Address:   address,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) Lookup(ctx context.Context, taxID string) (*domain.User, error) {
	user, err := s.userRepo.FindByTaxID(ctx, taxID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.List(ctx)
}
