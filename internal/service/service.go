package service

import (
	"github.com/GlebRadaev/bankledger/internal/handlers/accounts"
	"github.com/GlebRadaev/bankledger/internal/handlers/users"
	"github.com/GlebRadaev/bankledger/internal/repo"
	ledgerservice "github.com/GlebRadaev/bankledger/internal/service/ledgerservice"
	userservice "github.com/GlebRadaev/bankledger/internal/service/userservice"
)

type Services struct {
	UserService   users.Service
	LedgerService accounts.Service
}

func New(repo *repo.Repositories, policy ledgerservice.Policy) *Services {
	userService := userservice.New(repo.UserRepo, repo.UserTX)
	ledgerService := ledgerservice.New(repo.AccountRepo, repo.TransactionRepo, userService, repo.LedgerTX, policy)

	return &Services{
		UserService:   userService,
		LedgerService: ledgerService,
	}
}
