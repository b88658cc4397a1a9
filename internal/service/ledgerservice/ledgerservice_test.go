package ledgerservice

import (
	"context"
	"errors"
	"testing"

	"github.com/GlebRadaev/bankledger/internal/domain"
	"github.com/GlebRadaev/bankledger/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

type mocks struct {
	accounts     *MockAccountRepo
	transactions *MockTransactionRepo
	users        *MockUserDirectory
	tx           *store.MockTXManager
}

func NewMock(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		accounts:     NewMockAccountRepo(ctrl),
		transactions: NewMockTransactionRepo(ctrl),
		users:        NewMockUserDirectory(ctrl),
		tx:           store.NewMockTXManager(ctrl),
	}
	service := New(m.accounts, m.transactions, m.users, m.tx, DefaultPolicy())
	return service, m
}

func (m *mocks) passThrough() {
	m.tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn store.TransactionalFn) error {
		return fn(ctx)
	})
}

func amount(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

var ana = domain.User{FullName: "Ana Lima", TaxID: "123"}

func TestOpenAccount(t *testing.T) {
	service, m := NewMock(t)

	tests := []struct {
		name          string
		taxID         string
		prepareMock   func()
		expectedError error
		expected      *domain.Account
	}{
		{
			name:  "Account opened",
			taxID: "123",
			prepareMock: func() {
				m.passThrough()
				m.users.EXPECT().Lookup(gomock.Any(), "123").Return(&ana, nil)
				m.accounts.EXPECT().Create(gomock.Any(), "0001", ana).Return(&domain.Account{Agency: "0001", Number: 1, Owner: ana}, nil)
			},
			expected: &domain.Account{Agency: "0001", Number: 1, Owner: ana},
		},
		{
			name:  "Unknown user does not create an account",
			taxID: "999",
			prepareMock: func() {
				m.passThrough()
				m.users.EXPECT().Lookup(gomock.Any(), "999").Return(nil, errors.New("user not found"))
			},
			expectedError: errors.New("user not found"),
		},
		{
			name:  "Repository error",
			taxID: "123",
			prepareMock: func() {
				m.passThrough()
				m.users.EXPECT().Lookup(gomock.Any(), "123").Return(&ana, nil)
				m.accounts.EXPECT().Create(gomock.Any(), "0001", ana).Return(nil, errors.New("store error"))
			},
			expectedError: errors.New("store error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			result, err := service.OpenAccount(context.Background(), tt.taxID)
			if tt.expectedError != nil {
				require.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestDeposit(t *testing.T) {
	service, m := NewMock(t)

	tests := []struct {
		name            string
		number          int
		amount          decimal.Decimal
		prepareMock     func()
		expectedError   error
		expectedBalance string
	}{
		{
			name:   "Successful deposit",
			number: 1,
			amount: amount(100),
			prepareMock: func() {
				m.passThrough()
				m.accounts.EXPECT().FindByNumber(gomock.Any(), 1).Return(&domain.Account{Number: 1, Balance: amount(50), WithdrawalCount: 2}, nil)
				m.transactions.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
						assert.Equal(t, domain.DepositKind, tx.Kind)
						assert.Equal(t, 1, tx.AccountNumber)
						assert.True(t, tx.Amount.Equal(amount(100)))
						return tx, nil
					})
				m.accounts.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, a *domain.Account) (*domain.Account, error) {
						assert.Equal(t, 2, a.WithdrawalCount, "deposit keeps withdrawal count")
						return a, nil
					})
			},
			expectedBalance: "150",
		},
		{
			name:   "Zero amount",
			number: 1,
			amount: decimal.Zero,
			prepareMock: func() {
				m.passThrough()
				m.accounts.EXPECT().FindByNumber(gomock.Any(), 1).Return(&domain.Account{Number: 1}, nil)
			},
			expectedError: ErrInvalidAmount,
		},
		{
			name:   "Negative amount",
			number: 1,
			amount: amount(-5),
			prepareMock: func() {
				m.passThrough()
				m.accounts.EXPECT().FindByNumber(gomock.Any(), 1).Return(&domain.Account{Number: 1}, nil)
			},
			expectedError: ErrInvalidAmount,
		},
		{
			name:   "Unknown account",
			number: 9,
			amount: amount(10),
			prepareMock: func() {
				m.passThrough()
				m.accounts.EXPECT().FindByNumber(gomock.Any(), 9).Return(nil, nil)
			},
			expectedError: ErrAccountNotFound,
		},
		{
			name:   "Error updating account writes no record",
			number: 1,
			amount: amount(10),
			prepareMock: func() {
				m.passThrough()
				m.accounts.EXPECT().FindByNumber(gomock.Any(), 1).Return(&domain.Account{Number: 1, Balance: amount(40)}, nil)
				m.accounts.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil, errors.New("store error"))
			},
			expectedError: errors.New("store error"),
		},
		{
			name:   "Error writing transaction restores account",
			number: 1,
			amount: amount(10),
			prepareMock: func() {
				m.passThrough()
				m.accounts.EXPECT().FindByNumber(gomock.Any(), 1).Return(&domain.Account{Number: 1, Balance: amount(40), WithdrawalCount: 1}, nil)
				gomock.InOrder(
					m.accounts.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
						func(_ context.Context, a *domain.Account) (*domain.Account, error) {
							assert.Equal(t, "50", a.Balance.String())
							return a, nil
						}),
					m.transactions.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil, errors.New("store error")),
					m.accounts.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
						func(_ context.Context, a *domain.Account) (*domain.Account, error) {
							assert.Equal(t, "40", a.Balance.String())
							assert.Equal(t, 1, a.WithdrawalCount)
							return a, nil
						}),
				)
			},
			expectedError: errors.New("store error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			result, err := service.Deposit(context.Background(), tt.number, tt.amount)
			if tt.expectedError != nil {
				require.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedBalance, result.Balance.String())
			}
		})
	}
}

func TestWithdraw(t *testing.T) {
	service, m := NewMock(t)

	tests := []struct {
		name            string
		account         *domain.Account
		amount          decimal.Decimal
		expectApply     bool
		expectedError   error
		expectedBalance string
		expectedCount   int
	}{
		{
			name:            "Successful withdrawal",
			account:         &domain.Account{Number: 1, Balance: amount(1000)},
			amount:          amount(100),
			expectApply:     true,
			expectedBalance: "900",
			expectedCount:   1,
		},
		{
			name:            "Withdrawal equal to the limit",
			account:         &domain.Account{Number: 1, Balance: amount(1000), WithdrawalCount: 2},
			amount:          amount(500),
			expectApply:     true,
			expectedBalance: "500",
			expectedCount:   3,
		},
		{
			name:            "Withdrawal of the whole balance",
			account:         &domain.Account{Number: 1, Balance: amount(80)},
			amount:          amount(80),
			expectApply:     true,
			expectedBalance: "0",
			expectedCount:   1,
		},
		{
			name:          "Insufficient funds",
			account:       &domain.Account{Number: 1, Balance: amount(1000)},
			amount:        amount(1500),
			expectedError: ErrInsufficientFunds,
		},
		{
			name:          "Limit exceeded",
			account:       &domain.Account{Number: 1, Balance: amount(1000)},
			amount:        amount(600),
			expectedError: ErrLimitExceeded,
		},
		{
			name:          "Count exceeded",
			account:       &domain.Account{Number: 1, Balance: amount(1000), WithdrawalCount: 3},
			amount:        amount(100),
			expectedError: ErrWithdrawalCountExceeded,
		},
		{
			name:          "Negative amount",
			account:       &domain.Account{Number: 1, Balance: amount(1000)},
			amount:        amount(-10),
			expectedError: ErrInvalidAmount,
		},
		{
			name:          "Zero amount on empty account",
			account:       &domain.Account{Number: 1, Balance: decimal.Zero},
			amount:        decimal.Zero,
			expectedError: ErrInvalidAmount,
		},
		{
			name:          "Negative amount with exhausted count reports count",
			account:       &domain.Account{Number: 1, Balance: amount(1000), WithdrawalCount: 3},
			amount:        amount(-10),
			expectedError: ErrWithdrawalCountExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.passThrough()
			m.accounts.EXPECT().FindByNumber(gomock.Any(), tt.account.Number).Return(tt.account, nil)
			if tt.expectApply {
				m.transactions.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
						assert.Equal(t, domain.WithdrawalKind, tx.Kind)
						return tx, nil
					})
				m.accounts.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, a *domain.Account) (*domain.Account, error) {
						return a, nil
					})
			}

			result, err := service.Withdraw(context.Background(), tt.account.Number, tt.amount)
			if tt.expectedError != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedBalance, result.Balance.String())
				assert.Equal(t, tt.expectedCount, result.WithdrawalCount)
			}
		})
	}
}

func TestCheckWithdrawal_Order(t *testing.T) {
	policy := Policy{Agency: "0001", WithdrawalLimit: amount(500), MaxWithdrawals: 3}

	tests := []struct {
		name    string
		balance int64
		count   int
		amount  int64
		want    error
	}{
		{"Balance is checked before limit", 1000, 0, 1500, ErrInsufficientFunds},
		{"Balance is checked before count", 10, 3, 20, ErrInsufficientFunds},
		{"Limit is checked before count", 1000, 3, 600, ErrLimitExceeded},
		{"Count is checked before amount", 1000, 3, 0, ErrWithdrawalCountExceeded},
		{"Amount is checked last", 1000, 0, -1, ErrInvalidAmount},
		{"Valid withdrawal", 1000, 2, 1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := &domain.Account{Balance: amount(tt.balance), WithdrawalCount: tt.count}
			err := CheckWithdrawal(account, amount(tt.amount), policy)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestStatement(t *testing.T) {
	service, m := NewMock(t)

	tests := []struct {
		name          string
		prepareMock   func()
		expectedError error
		expectedLen   int
	}{
		{
			name: "Empty log",
			prepareMock: func() {
				m.passThrough()
				m.accounts.EXPECT().FindByNumber(gomock.Any(), 1).Return(&domain.Account{Number: 1, Balance: decimal.Zero}, nil)
				m.transactions.EXPECT().GetTransactionsByAccount(gomock.Any(), 1).Return(nil, nil)
			},
			expectedLen: 0,
		},
		{
			name: "Log with records",
			prepareMock: func() {
				m.passThrough()
				m.accounts.EXPECT().FindByNumber(gomock.Any(), 1).Return(&domain.Account{Number: 1, Balance: amount(150)}, nil)
				m.transactions.EXPECT().GetTransactionsByAccount(gomock.Any(), 1).Return([]domain.Transaction{
					{Seq: 1, Kind: domain.DepositKind, Amount: amount(100)},
					{Seq: 2, Kind: domain.DepositKind, Amount: amount(50)},
				}, nil)
			},
			expectedLen: 2,
		},
		{
			name: "Unknown account",
			prepareMock: func() {
				m.passThrough()
				m.accounts.EXPECT().FindByNumber(gomock.Any(), 1).Return(nil, nil)
			},
			expectedError: ErrAccountNotFound,
		},
		{
			name: "Transaction not started",
			prepareMock: func() {
				m.tx.EXPECT().Begin(gomock.Any(), gomock.Any()).Return(context.Canceled)
			},
			expectedError: context.Canceled,
		},
		{
			name: "Repository error",
			prepareMock: func() {
				m.passThrough()
				m.accounts.EXPECT().FindByNumber(gomock.Any(), 1).Return(&domain.Account{Number: 1}, nil)
				m.transactions.EXPECT().GetTransactionsByAccount(gomock.Any(), 1).Return(nil, errors.New("store error"))
			},
			expectedError: errors.New("store error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			result, err := service.Statement(context.Background(), 1)
			if tt.expectedError != nil {
				require.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				return
			}
			require.NoError(t, err)
			require.NotNil(t, result.Transactions)
			assert.Len(t, result.Transactions, tt.expectedLen)
			assert.True(t, result.Balance.Equal(result.Account.Balance))
		})
	}
}

func TestListAccounts(t *testing.T) {
	service, m := NewMock(t)

	tests := []struct {
		name          string
		prepareMock   func()
		expected      []domain.AccountSummary
		expectedError error
	}{
		{
			name: "No accounts",
			prepareMock: func() {
				m.passThrough()
				m.accounts.EXPECT().List(gomock.Any()).Return([]domain.Account{}, nil)
			},
			expected: []domain.AccountSummary{},
		},
		{
			name: "Accounts in creation order",
			prepareMock: func() {
				m.passThrough()
				m.accounts.EXPECT().List(gomock.Any()).Return([]domain.Account{
					{Agency: "0001", Number: 1, Owner: ana},
					{Agency: "0001", Number: 2, Owner: domain.User{FullName: "Bruno Costa"}},
				}, nil)
			},
			expected: []domain.AccountSummary{
				{Agency: "0001", Number: 1, OwnerName: "Ana Lima"},
				{Agency: "0001", Number: 2, OwnerName: "Bruno Costa"},
			},
		},
		{
			name: "Repository error",
			prepareMock: func() {
				m.passThrough()
				m.accounts.EXPECT().List(gomock.Any()).Return(nil, errors.New("store error"))
			},
			expectedError: errors.New("store error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			result, err := service.ListAccounts(context.Background())
			if tt.expectedError != nil {
				require.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestAccount(t *testing.T) {
	service, m := NewMock(t)

	m.passThrough()
	m.accounts.EXPECT().FindByNumber(gomock.Any(), 1).Return(&domain.Account{Number: 1, Balance: amount(70)}, nil)
	result, err := service.Account(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "70", result.Balance.String())

	m.passThrough()
	m.accounts.EXPECT().FindByNumber(gomock.Any(), 2).Return(nil, nil)
	result, err = service.Account(context.Background(), 2)
	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.Nil(t, result)
}
