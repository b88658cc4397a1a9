package userservice

import (
	"context"
	"errors"
	"testing"

	"github.com/GlebRadaev/bankledger/internal/domain"
	userrepo "github.com/GlebRadaev/bankledger/internal/repo/user-repo"
	"github.com/GlebRadaev/bankledger/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Service, *MockRepo, *store.MockTXManager) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	tx := store.NewMockTXManager(ctrl)
	service := New(repo, tx)
	return service, repo, tx
}

func passThrough(tx *store.MockTXManager) {
	tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn store.TransactionalFn) error {
		return fn(ctx)
	})
}

func TestRegister(t *testing.T) {
	service, repo, tx := NewMock(t)
	user := &domain.User{
		FullName:  "Ana Lima",
		BirthDate: "01-02-1990",
		TaxID:     "12345678900",
		Address:   "Rua A, 1 - Centro - Recife/PE",
	}

	tests := []struct {
		name          string
		prepareMock   func()
		expectedUser  *domain.User
		expectedError error
	}{
		{
			name: "Successful registration",
			prepareMock: func() {
				passThrough(tx)
				repo.EXPECT().FindByTaxID(gomock.Any(), user.TaxID).Return(nil, nil)
				repo.EXPECT().Create(gomock.Any(), user).Return(user, nil)
			},
			expectedUser: user,
		},
		{
			name: "Duplicate tax id",
			prepareMock: func() {
				passThrough(tx)
				repo.EXPECT().FindByTaxID(gomock.Any(), user.TaxID).Return(user, nil)
			},
			expectedError: ErrDuplicateUser,
		},
		{
			name: "Lookup failure",
			prepareMock: func() {
				passThrough(tx)
				repo.EXPECT().FindByTaxID(gomock.Any(), user.TaxID).Return(nil, errors.New("store error"))
			},
			expectedError: errors.New("store error"),
		},
		{
			name: "Create failure",
			prepareMock: func() {
				passThrough(tx)
				repo.EXPECT().FindByTaxID(gomock.Any(), user.TaxID).Return(nil, nil)
				repo.EXPECT().Create(gomock.Any(), user).Return(nil, errors.New("store error"))
			},
			expectedError: errors.New("store error"),
		},
		{
			name: "Transaction not started",
			prepareMock: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).Return(context.Canceled)
			},
			expectedError: context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			result, err := service.Register(context.Background(), user.FullName, user.BirthDate, user.TaxID, user.Address)
			if tt.expectedError != nil {
				require.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedUser, result)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	service, repo, _ := NewMock(t)
	user := &domain.User{FullName: "Ana Lima", TaxID: "123"}

	tests := []struct {
		name          string
		taxID         string
		prepareMock   func()
		expectedUser  *domain.User
		expectedError error
	}{
		{
			name:  "User found",
			taxID: "123",
			prepareMock: func() {
				repo.EXPECT().FindByTaxID(gomock.Any(), "123").Return(user, nil)
			},
			expectedUser: user,
		},
		{
			name:  "User not found",
			taxID: "999",
			prepareMock: func() {
				repo.EXPECT().FindByTaxID(gomock.Any(), "999").Return(nil, nil)
			},
			expectedError: ErrUserNotFound,
		},
		{
			name:  "Repository error",
			taxID: "123",
			prepareMock: func() {
				repo.EXPECT().FindByTaxID(gomock.Any(), "123").Return(nil, errors.New("store error"))
			},
			expectedError: errors.New("store error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			result, err := service.Lookup(context.Background(), tt.taxID)
			if tt.expectedError != nil {
				require.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedUser, result)
			}
		})
	}
}

func TestRegister_DuplicateLeavesDirectoryUnchanged(t *testing.T) {
	service := New(userrepo.New(), store.NewTXManager())
	ctx := context.Background()

	_, err := service.Register(ctx, "Ana Lima", "01-02-1990", "123", "Rua A")
	require.NoError(t, err)

	_, err = service.Register(ctx, "Someone Else", "03-04-1985", "123", "Rua B")
	assert.ErrorIs(t, err, ErrDuplicateUser)

	users, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Ana Lima", users[0].FullName)

	found, err := service.Lookup(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, "Ana Lima", found.FullName)
}
