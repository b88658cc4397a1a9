package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/bankledger/internal/domain"
)

type OpenAccountRequestDTO struct {
	TaxID string `json:"tax_id" validate:"required" example:"12345678900"`
}

// AmountRequestDTO accepts the amount either as a JSON number or a string.
type AmountRequestDTO struct {
	Amount decimal.Decimal `json:"amount" swaggertype:"string" example:"100.50"`
}

type AccountResponseDTO struct {
	Agency          string          `json:"agency" example:"0001"`
	Number          int             `json:"number" example:"1"`
	OwnerName       string          `json:"owner_name" example:"Ana Lima"`
	OwnerTaxID      string          `json:"owner_tax_id" example:"12345678900"`
	Balance         decimal.Decimal `json:"balance" swaggertype:"string" example:"150"`
	WithdrawalCount int             `json:"withdrawal_count" example:"0"`
}

type AccountSummaryDTO struct {
	Agency    string `json:"agency" example:"0001"`
	Number    int    `json:"number" example:"1"`
	OwnerName string `json:"owner_name" example:"Ana Lima"`
}

type TransactionResponseDTO struct {
	ID        uuid.UUID       `json:"id" swaggertype:"string" example:"3f1c2a4e-8d7b-4a53-9b1e-2f0d5e6c7a81"`
	Seq       int             `json:"seq" example:"1"`
	Kind      string          `json:"kind" example:"DEPOSIT"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"string" example:"100"`
	CreatedAt time.Time       `json:"created_at" example:"2024-05-01T10:00:00Z"`
}

type StatementResponseDTO struct {
	Account      AccountResponseDTO       `json:"account"`
	Transactions []TransactionResponseDTO `json:"transactions"`
	Balance      decimal.Decimal          `json:"balance" swaggertype:"string" example:"150"`
}

type PolicyResponseDTO struct {
	Agency          string          `json:"agency" example:"0001"`
	WithdrawalLimit decimal.Decimal `json:"withdrawal_limit" swaggertype:"string" example:"500"`
	MaxWithdrawals  int             `json:"max_withdrawals" example:"3"`
}

func NewAccountResponse(a *domain.Account) AccountResponseDTO {
	return AccountResponseDTO{
		Agency:          a.Agency,
		Number:          a.Number,
		OwnerName:       a.Owner.FullName,
		OwnerTaxID:      a.Owner.TaxID,
		Balance:         a.Balance,
		WithdrawalCount: a.WithdrawalCount,
	}
}

func NewStatementResponse(s *domain.Statement) StatementResponseDTO {
	transactions := make([]TransactionResponseDTO, len(s.Transactions))
	for i, tx := range s.Transactions {
		transactions[i] = TransactionResponseDTO{
			ID:        tx.ID,
			Seq:       tx.Seq,
			Kind:      string(tx.Kind),
			Amount:    tx.Amount,
			CreatedAt: tx.CreatedAt,
		}
	}
	return StatementResponseDTO{
		Account:      NewAccountResponse(&s.Account),
		Transactions: transactions,
		Balance:      s.Balance,
	}
}
