package ledgerservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/GlebRadaev/bankledger/internal/domain"
	"github.com/GlebRadaev/bankledger/internal/store"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=ledgerservice.go -destination=mock_ledgerservice.go -package=ledgerservice

type AccountRepo interface {
	Create(ctx context.Context, agency string, owner domain.User) (*domain.Account, error)
	FindByNumber(ctx context.Context, number int) (*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) (*domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
}

type TransactionRepo interface {
	CreateTransaction(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
	GetTransactionsByAccount(ctx context.Context, accountNumber int) ([]domain.Transaction, error)
}

type UserDirectory interface {
	Lookup(ctx context.Context, taxID string) (*domain.User, error)
}

// Policy holds the ledger-wide constants. It is fixed for the lifetime of a Service.
type Policy struct {
	Agency          string
	WithdrawalLimit decimal.Decimal
	MaxWithdrawals  int
}

func DefaultPolicy() Policy {
	return Policy{
		Agency:          domain.DefaultAgency,
		WithdrawalLimit: domain.DefaultWithdrawalLimit,
		MaxWithdrawals:  domain.DefaultMaxWithdrawals,
	}
}

type Service struct {
	accountRepo     AccountRepo
	transactionRepo TransactionRepo
	users           UserDirectory
	txManager       store.TXManager
	policy          Policy
}

func New(accountRepo AccountRepo, transactionRepo TransactionRepo, users UserDirectory, txManager store.TXManager, policy Policy) *Service {
	return &Service{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		users:           users,
		txManager:       txManager,
		policy:          policy,
	}
}

var (
	ErrInvalidAmount           = errors.New("invalid amount")
	ErrInsufficientFunds       = errors.New("insufficient funds")
	ErrLimitExceeded           = errors.New("withdrawal exceeds the per-transaction limit")
	ErrWithdrawalCountExceeded = errors.New("maximum number of withdrawals exceeded")
	ErrAccountNotFound         = errors.New("account not found")
)

func (s *Service) Policy() Policy {
	return s.policy
}

// OpenAccount binds a new account to the user registered under taxID.
// A failed lookup does not consume an account number.
func (s *Service) OpenAccount(ctx context.Context, taxID string) (*domain.Account, error) {
	var account *domain.Account
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		owner, err := s.users.Lookup(ctx, taxID)
		if err != nil {
			return err
		}
		account, err = s.accountRepo.Create(ctx, s.policy.Agency, *owner)
		return err
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (s *Service) Account(ctx context.Context, number int) (*domain.Account, error) {
	var account *domain.Account
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		account, err = s.findAccount(ctx, number)
		return err
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (s *Service) Deposit(ctx context.Context, number int, amount decimal.Decimal) (*domain.Account, error) {
	var updated *domain.Account
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		account, err := s.findAccount(ctx, number)
		if err != nil {
			return err
		}
		if !amount.IsPositive() {
			return ErrInvalidAmount
		}

		next := *account
		next.Balance = next.Balance.Add(amount)
		updated, err = s.apply(ctx, *account, &next, domain.DepositKind, amount)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) Withdraw(ctx context.Context, number int, amount decimal.Decimal) (*domain.Account, error) {
	var updated *domain.Account
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		account, err := s.findAccount(ctx, number)
		if err != nil {
			return err
		}
		if err := CheckWithdrawal(account, amount, s.policy); err != nil {
			return err
		}

		next := *account
		next.Balance = next.Balance.Sub(amount)
		next.WithdrawalCount++
		updated, err = s.apply(ctx, *account, &next, domain.WithdrawalKind, amount)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// CheckWithdrawal reports the first rule a withdrawal of amount would break.
// Rules are evaluated in a fixed order: balance, per-transaction limit,
// withdrawal count, and finally amount positivity.
func CheckWithdrawal(account *domain.Account, amount decimal.Decimal, policy Policy) error {
	switch {
	case amount.GreaterThan(account.Balance):
		return ErrInsufficientFunds
	case amount.GreaterThan(policy.WithdrawalLimit):
		return ErrLimitExceeded
	case account.WithdrawalCount >= policy.MaxWithdrawals:
		return ErrWithdrawalCountExceeded
	case !amount.IsPositive():
		return ErrInvalidAmount
	}
	return nil
}

// Statement pairs the account log with the balance read under the same lock,
// so the log always sums to the balance.
func (s *Service) Statement(ctx context.Context, number int) (*domain.Statement, error) {
	var statement *domain.Statement
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		account, err := s.findAccount(ctx, number)
		if err != nil {
			return err
		}
		transactions, err := s.transactionRepo.GetTransactionsByAccount(ctx, number)
		if err != nil {
			return err
		}
		if transactions == nil {
			transactions = []domain.Transaction{}
		}
		statement = &domain.Statement{
			Account:      *account,
			Transactions: transactions,
			Balance:      account.Balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return statement, nil
}

// ListAccounts returns all accounts in creation order. No accounts is an empty
// slice, not an error.
func (s *Service) ListAccounts(ctx context.Context) ([]domain.AccountSummary, error) {
	var accounts []domain.Account
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		accounts, err = s.accountRepo.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	summaries := make([]domain.AccountSummary, 0, len(accounts))
	for _, a := range accounts {
		summaries = append(summaries, domain.AccountSummary{
			Agency:    a.Agency,
			Number:    a.Number,
			OwnerName: a.Owner.FullName,
		})
	}
	return summaries, nil
}

func (s *Service) findAccount(ctx context.Context, number int) (*domain.Account, error) {
	account, err := s.accountRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

// apply stores next and appends the matching log record. If the record cannot
// be written the account is restored to prev.
func (s *Service) apply(ctx context.Context, prev domain.Account, next *domain.Account, kind domain.TransactionKind, amount decimal.Decimal) (*domain.Account, error) {
	updated, err := s.accountRepo.Update(ctx, next)
	if err != nil {
		return nil, err
	}
	_, err = s.transactionRepo.CreateTransaction(ctx, &domain.Transaction{
		AccountNumber: next.Number,
		Kind:          kind,
		Amount:        amount,
	})
	if err != nil {
		if _, restoreErr := s.accountRepo.Update(ctx, &prev); restoreErr != nil {
			return nil, errors.Join(err, fmt.Errorf("can't restore account %d: %w", prev.Number, restoreErr))
		}
		return nil, err
	}
	return updated, nil
}
