package userrepo

import (
	"context"
	"testing"

	"github.com/GlebRadaev/bankledger/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, users ...domain.User) *Repository {
	t.Helper()
	repo := New()
	for i := range users {
		_, err := repo.Create(context.Background(), &users[i])
		require.NoError(t, err)
	}
	return repo
}

func TestRepository_FindByTaxID(t *testing.T) {
	ana := domain.User{FullName: "Ana Lima", TaxID: "12345678900"}
	bruno := domain.User{FullName: "Bruno Costa", TaxID: "98765432100"}

	tests := []struct {
		name   string
		users  []domain.User
		taxID  string
		result *domain.User
	}{
		{
			name:   "User found",
			users:  []domain.User{ana, bruno},
			taxID:  "98765432100",
			result: &bruno,
		},
		{
			name:   "User not found",
			users:  []domain.User{ana},
			taxID:  "00000000000",
			result: nil,
		},
		{
			name:   "Match is case sensitive",
			users:  []domain.User{{FullName: "Carla", TaxID: "abc"}},
			taxID:  "ABC",
			result: nil,
		},
		{
			name:   "Empty repository",
			taxID:  "12345678900",
			result: nil,
		},
		{
			name: "First occurrence wins",
			users: []domain.User{
				{FullName: "First", TaxID: "111"},
				{FullName: "Second", TaxID: "111"},
			},
			taxID:  "111",
			result: &domain.User{FullName: "First", TaxID: "111"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := seed(t, tt.users...)
			result, err := repo.FindByTaxID(context.Background(), tt.taxID)
			require.NoError(t, err)
			assert.Equal(t, tt.result, result)
		})
	}
}

func TestRepository_CreateAndList(t *testing.T) {
	repo := New()

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)

	input := &domain.User{FullName: "Ana Lima", BirthDate: "01-02-1990", TaxID: "123", Address: "Rua A, 1"}
	created, err := repo.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, input, created)

	// the stored copy is detached from the caller's pointer
	input.FullName = "changed"
	users, err = repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Ana Lima", users[0].FullName)
}
