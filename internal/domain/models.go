package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultAgency         = "0001"
	DefaultMaxWithdrawals = 3
	FirstAccountNumber    = 1
)

// DefaultWithdrawalLimit is the per-transaction withdrawal ceiling.
var DefaultWithdrawalLimit = decimal.NewFromInt(500)

type TransactionKind string

const (
	DepositKind    TransactionKind = "DEPOSIT"
	WithdrawalKind TransactionKind = "WITHDRAWAL"
)

type User struct {
	FullName  string `json:"full_name"`
	BirthDate string `json:"birth_date"`
	TaxID     string `json:"tax_id"`
	Address   string `json:"address"`
}

type Account struct {
	Agency          string          `json:"agency"`
	Number          int             `json:"number"`
	Owner           User            `json:"owner"`
	Balance         decimal.Decimal `json:"balance"`
	WithdrawalCount int             `json:"withdrawal_count"`
}

type Transaction struct {
	ID            uuid.UUID       `json:"id"`
	AccountNumber int             `json:"account_number"`
	Seq           int             `json:"seq"`
	Kind          TransactionKind `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Statement is the chronological history of one account paired with its balance.
type Statement struct {
	Account      Account         `json:"account"`
	Transactions []Transaction   `json:"transactions"`
	Balance      decimal.Decimal `json:"balance"`
}

type AccountSummary struct {
	Agency    string `json:"agency"`
	Number    int    `json:"number"`
	OwnerName string `json:"owner_name"`
}
