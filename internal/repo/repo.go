package repo

import (
	accountrepo "github.com/GlebRadaev/bankledger/internal/repo/account-repo"
	transactionrepo "github.com/GlebRadaev/bankledger/internal/repo/transaction-repo"
	userrepo "github.com/GlebRadaev/bankledger/internal/repo/user-repo"
	"github.com/GlebRadaev/bankledger/internal/service/ledgerservice"
	"github.com/GlebRadaev/bankledger/internal/service/userservice"
	"github.com/GlebRadaev/bankledger/internal/store"
)

// Repositories owns all ledger state. Users and accounts are guarded by
// separate transaction managers.
type Repositories struct {
	UserRepo        userservice.Repo
	AccountRepo     ledgerservice.AccountRepo
	TransactionRepo ledgerservice.TransactionRepo

	UserTX   store.TXManager
	LedgerTX store.TXManager
}

func New() *Repositories {
	return &Repositories{
		UserRepo:        userrepo.New(),
		AccountRepo:     accountrepo.New(),
		TransactionRepo: transactionrepo.New(),
		UserTX:          store.NewTXManager(),
		LedgerTX:        store.NewTXManager(),
	}
}
