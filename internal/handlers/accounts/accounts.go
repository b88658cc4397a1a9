package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/bankledger/internal/domain"
	"github.com/GlebRadaev/bankledger/internal/dto"
	"github.com/GlebRadaev/bankledger/internal/metrics"
	"github.com/GlebRadaev/bankledger/internal/service/ledgerservice"
	"github.com/GlebRadaev/bankledger/internal/service/userservice"
	"github.com/GlebRadaev/bankledger/pkg/utils"
	"github.com/GlebRadaev/bankledger/pkg/validate"
)

//go:generate mockgen -source=accounts.go -destination=mock_accounts.go -package=accounts

type Service interface {
	Policy() ledgerservice.Policy
	OpenAccount(ctx context.Context, taxID string) (*domain.Account, error)
	Account(ctx context.Context, number int) (*domain.Account, error)
	Deposit(ctx context.Context, number int, amount decimal.Decimal) (*domain.Account, error)
	Withdraw(ctx context.Context, number int, amount decimal.Decimal) (*domain.Account, error)
	Statement(ctx context.Context, number int) (*domain.Statement, error)
	ListAccounts(ctx context.Context) ([]domain.AccountSummary, error)
}

type AccountHandler struct {
	ledgerService Service
}

func New(ledgerService Service) *AccountHandler {
	return &AccountHandler{
		ledgerService: ledgerService,
	}
}

// OpenAccount godoc
//
//	@Summary		Open an account
//	@Description	Open a new account in the configured agency for a registered user.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.OpenAccountRequestDTO	true	"Owner tax id"
//	@Success		201		{object}	dto.AccountResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		404		{object}	utils.Response	"User not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/accounts [post]
func (h *AccountHandler) OpenAccount(w http.ResponseWriter, r *http.Request) {
	var req dto.OpenAccountRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	account, err := h.ledgerService.OpenAccount(r.Context(), req.TaxID)
	metrics.ObserveOperation("open_account", err)
	if err != nil {
		h.respondWithLedgerError(w, err)
		return
	}

	zap.L().Info("account opened", zap.Int("number", account.Number), zap.String("owner", account.Owner.TaxID))
	utils.RespondWithJSON(w, http.StatusCreated, dto.NewAccountResponse(account))
}

// GetAccounts godoc
//
//	@Summary		List accounts
//	@Description	List every account in creation order.
//	@Tags			Accounts
//	@Produce		json
//	@Success		200	{array}		dto.AccountSummaryDTO
//	@Success		204	{object}	utils.Response	"No accounts registered"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/accounts [get]
func (h *AccountHandler) GetAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.ledgerService.ListAccounts(r.Context())
	metrics.ObserveOperation("list_accounts", err)
	if err != nil {
		h.respondWithLedgerError(w, err)
		return
	}
	if len(accounts) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Accounts not found")
		return
	}

	response := make([]dto.AccountSummaryDTO, len(accounts))
	for i, a := range accounts {
		response[i] = dto.AccountSummaryDTO{
			Agency:    a.Agency,
			Number:    a.Number,
			OwnerName: a.OwnerName,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetAccount godoc
//
//	@Summary	Get an account
//	@Tags		Accounts
//	@Produce	json
//	@Param		number	path		int	true	"Account number"
//	@Success	200		{object}	dto.AccountResponseDTO
//	@Failure	400		{object}	utils.Response	"Invalid account number"
//	@Failure	404		{object}	utils.Response	"Account not found"
//	@Failure	500		{object}	utils.Response	"Internal server error"
//	@Router		/api/accounts/{number} [get]
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	number, ok := accountNumber(w, r)
	if !ok {
		return
	}
	account, err := h.ledgerService.Account(r.Context(), number)
	metrics.ObserveOperation("get_account", err)
	if err != nil {
		h.respondWithLedgerError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewAccountResponse(account))
}

// Deposit godoc
//
//	@Summary		Deposit into an account
//	@Description	Credit a positive amount to the account and record it in the statement.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			number	path		int						true	"Account number"
//	@Param			request	body		dto.AmountRequestDTO	true	"Amount to deposit"
//	@Success		200		{object}	dto.AccountResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		404		{object}	utils.Response	"Account not found"
//	@Failure		422		{object}	utils.Response	"Invalid amount"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/accounts/{number}/deposit [post]
func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, domain.DepositKind, h.ledgerService.Deposit)
}

// Withdraw godoc
//
//	@Summary		Withdraw from an account
//	@Description	Debit an amount subject to the balance, the per-transaction limit and the withdrawal count.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			number	path		int						true	"Account number"
//	@Param			request	body		dto.AmountRequestDTO	true	"Amount to withdraw"
//	@Success		200		{object}	dto.AccountResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		402		{object}	utils.Response	"Insufficient funds"
//	@Failure		404		{object}	utils.Response	"Account not found"
//	@Failure		422		{object}	utils.Response	"Limit or withdrawal count exceeded, or invalid amount"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/accounts/{number}/withdraw [post]
func (h *AccountHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, domain.WithdrawalKind, h.ledgerService.Withdraw)
}

// GetStatement godoc
//
//	@Summary		Get an account statement
//	@Description	Chronological list of deposits and withdrawals with the current balance.
//	@Tags			Accounts
//	@Produce		json
//	@Param			number	path		int	true	"Account number"
//	@Success		200		{object}	dto.StatementResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid account number"
//	@Failure		404		{object}	utils.Response	"Account not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/accounts/{number}/statement [get]
func (h *AccountHandler) GetStatement(w http.ResponseWriter, r *http.Request) {
	number, ok := accountNumber(w, r)
	if !ok {
		return
	}
	statement, err := h.ledgerService.Statement(r.Context(), number)
	metrics.ObserveOperation("statement", err)
	if err != nil {
		h.respondWithLedgerError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewStatementResponse(statement))
}

// GetPolicy godoc
//
//	@Summary	Get the ledger policy
//	@Tags		Accounts
//	@Produce	json
//	@Success	200	{object}	dto.PolicyResponseDTO
//	@Router		/api/policy [get]
func (h *AccountHandler) GetPolicy(w http.ResponseWriter, r *http.Request) {
	policy := h.ledgerService.Policy()
	utils.RespondWithJSON(w, http.StatusOK, dto.PolicyResponseDTO{
		Agency:          policy.Agency,
		WithdrawalLimit: policy.WithdrawalLimit,
		MaxWithdrawals:  policy.MaxWithdrawals,
	})
}

type moveFn func(ctx context.Context, number int, amount decimal.Decimal) (*domain.Account, error)

func (h *AccountHandler) move(w http.ResponseWriter, r *http.Request, kind domain.TransactionKind, fn moveFn) {
	number, ok := accountNumber(w, r)
	if !ok {
		return
	}
	var req dto.AmountRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	operation := "deposit"
	if kind == domain.WithdrawalKind {
		operation = "withdraw"
	}
	account, err := fn(r.Context(), number, req.Amount)
	metrics.ObserveOperation(operation, err)
	if err != nil {
		h.respondWithLedgerError(w, err)
		return
	}
	metrics.ObserveAmount(kind, req.Amount)

	zap.L().Info("transaction applied",
		zap.String("kind", string(kind)),
		zap.Int("number", number),
		zap.String("amount", req.Amount.String()),
	)
	utils.RespondWithJSON(w, http.StatusOK, dto.NewAccountResponse(account))
}

func accountNumber(w http.ResponseWriter, r *http.Request) (int, bool) {
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil || number < domain.FirstAccountNumber {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid account number")
		return 0, false
	}
	return number, true
}

func (h *AccountHandler) respondWithLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledgerservice.ErrAccountNotFound), errors.Is(err, userservice.ErrUserNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ledgerservice.ErrInsufficientFunds):
		utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, ledgerservice.ErrInvalidAmount),
		errors.Is(err, ledgerservice.ErrLimitExceeded),
		errors.Is(err, ledgerservice.ErrWithdrawalCountExceeded):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		zap.L().Error("ledger operation failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
