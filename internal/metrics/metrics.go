// Package metrics defines the Prometheus metrics exported by the HTTP API.
// All metrics are registered with the default registry on package init.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/bankledger/internal/domain"
	"github.com/GlebRadaev/bankledger/internal/service/ledgerservice"
	"github.com/GlebRadaev/bankledger/internal/service/userservice"
)

const namespace = "bankledger"

// OperationsTotal counts ledger and directory calls.
// Labels:
//   - operation: register_user, get_user, list_users, open_account, get_account,
//     deposit, withdraw, statement, list_accounts
//   - outcome: "ok" or the failure kind (e.g. "insufficient_funds")
var OperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operations_total",
		Help:      "Total number of ledger operations, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// AmountTotal sums the money moved by successful deposits and withdrawals.
var AmountTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "amount_total",
		Help:      "Total amount moved by successful transactions, by kind.",
	},
	[]string{"kind"},
)

func ObserveOperation(operation string, err error) {
	OperationsTotal.WithLabelValues(operation, Outcome(err)).Inc()
}

func ObserveAmount(kind domain.TransactionKind, amount decimal.Decimal) {
	AmountTotal.WithLabelValues(string(kind)).Add(amount.InexactFloat64())
}

func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ledgerservice.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, ledgerservice.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ledgerservice.ErrLimitExceeded):
		return "limit_exceeded"
	case errors.Is(err, ledgerservice.ErrWithdrawalCountExceeded):
		return "withdrawal_count_exceeded"
	case errors.Is(err, ledgerservice.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, userservice.ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, userservice.ErrDuplicateUser):
		return "duplicate_user"
	default:
		return "error"
	}
}
