// Package shell implements the interactive menu used at the bank counter.
// It reads one answer per line and renders results with lipgloss.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/bankledger/internal/domain"
	"github.com/GlebRadaev/bankledger/internal/service/ledgerservice"
)

//go:generate mockgen -source=shell.go -destination=mock_shell.go -package=shell

type Directory interface {
	Register(ctx context.Context, fullName, birthDate, taxID, address string) (*domain.User, error)
	Lookup(ctx context.Context, taxID string) (*domain.User, error)
}

type Ledger interface {
	Policy() ledgerservice.Policy
	OpenAccount(ctx context.Context, taxID string) (*domain.Account, error)
	Deposit(ctx context.Context, number int, amount decimal.Decimal) (*domain.Account, error)
	Withdraw(ctx context.Context, number int, amount decimal.Decimal) (*domain.Account, error)
	Statement(ctx context.Context, number int) (*domain.Statement, error)
	ListAccounts(ctx context.Context) ([]domain.AccountSummary, error)
}

type Options struct {
	// ExitOnInvalidDeposit ends the session when a deposit amount is rejected.
	ExitOnInvalidDeposit bool
}

// errQuit stops the menu loop without reporting a failure.
var errQuit = errors.New("quit")

const menu = `
[d]   Deposit
[w]   Withdraw
[s]   Statement
[nu]  New user
[na]  New account
[la]  List accounts
[q]   Quit
=> `

type Shell struct {
	users  Directory
	ledger Ledger
	opts   Options

	in    *bufio.Scanner
	out   io.Writer
	style styles
}

func New(users Directory, ledger Ledger, in io.Reader, out io.Writer, opts Options) *Shell {
	return &Shell{
		users:  users,
		ledger: ledger,
		opts:   opts,
		in:     bufio.NewScanner(in),
		out:    out,
		style:  newStyles(lipgloss.NewRenderer(out)),
	}
}

// Run serves menu options until the user quits, the input ends or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	for ctx.Err() == nil {
		s.print(s.style.title.Render("=============== MENU ==============="))
		option, err := s.readLine(menu)
		if err != nil {
			return s.stop(err)
		}

		switch strings.ToLower(option) {
		case "d":
			err = s.deposit(ctx)
		case "w":
			err = s.withdraw(ctx)
		case "s":
			err = s.statement(ctx)
		case "nu":
			err = s.newUser(ctx)
		case "na":
			err = s.newAccount(ctx)
		case "la":
			err = s.listAccounts(ctx)
		case "q":
			return nil
		default:
			s.fail("Invalid operation, please select the desired operation again.")
		}
		if err != nil {
			return s.stop(err)
		}
	}
	return nil
}

func (s *Shell) stop(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, errQuit) {
		return nil
	}
	return err
}

func (s *Shell) deposit(ctx context.Context) error {
	number, ok, err := s.readAccountNumber()
	if err != nil || !ok {
		return err
	}
	amount, ok, err := s.readAmount("Enter the deposit amount: ")
	if err != nil {
		return err
	}
	if !ok {
		return s.invalidDeposit()
	}

	account, err := s.ledger.Deposit(ctx, number, amount)
	switch {
	case err == nil:
		zap.L().Debug("deposit applied", zap.Int("number", number), zap.String("amount", amount.String()))
		s.success("Deposit completed successfully!")
		s.print(fmt.Sprintf("Balance: %s", money(account.Balance)))
	case errors.Is(err, ledgerservice.ErrInvalidAmount):
		return s.invalidDeposit()
	default:
		return s.report(err)
	}
	return nil
}

func (s *Shell) invalidDeposit() error {
	s.fail("Operation failed! The amount entered is invalid.")
	if s.opts.ExitOnInvalidDeposit {
		return errQuit
	}
	return nil
}

func (s *Shell) withdraw(ctx context.Context) error {
	number, ok, err := s.readAccountNumber()
	if err != nil || !ok {
		return err
	}
	amount, ok, err := s.readAmount("Enter the withdrawal amount: ")
	if err != nil {
		return err
	}
	if !ok {
		s.fail("Operation failed! The amount entered is invalid.")
		return nil
	}

	account, err := s.ledger.Withdraw(ctx, number, amount)
	if err != nil {
		return s.report(err)
	}
	zap.L().Debug("withdrawal applied", zap.Int("number", number), zap.String("amount", amount.String()))
	s.success("Withdrawal completed successfully!")
	s.print(fmt.Sprintf("Balance: %s", money(account.Balance)))
	return nil
}

func (s *Shell) statement(ctx context.Context) error {
	number, ok, err := s.readAccountNumber()
	if err != nil || !ok {
		return err
	}
	statement, err := s.ledger.Statement(ctx, number)
	if err != nil {
		return s.report(err)
	}
	s.print(s.style.title.Render("=============== STATEMENT ==============="))
	s.print(renderStatement(s.style, statement))
	return nil
}

func (s *Shell) newAccount(ctx context.Context) error {
	taxID, err := s.readLine("Enter the user's tax id: ")
	if err != nil {
		return err
	}
	account, err := s.ledger.OpenAccount(ctx, taxID)
	if err != nil {
		return s.report(err)
	}
	zap.L().Debug("account opened", zap.Int("number", account.Number))
	s.success("Account created successfully!")
	s.print(fmt.Sprintf("Agency: %s  Account: %d  Holder: %s", account.Agency, account.Number, account.Owner.FullName))
	return nil
}

func (s *Shell) listAccounts(ctx context.Context) error {
	accounts, err := s.ledger.ListAccounts(ctx)
	if err != nil {
		return s.report(err)
	}
	s.print(renderAccounts(s.style, accounts))
	return nil
}

// report prints the message for a recoverable ledger or directory error.
// Anything else is returned to the caller.
func (s *Shell) report(err error) error {
	policy := s.ledger.Policy()
	var msg string
	switch {
	case errors.Is(err, ledgerservice.ErrInsufficientFunds):
		msg = "Operation failed! You do not have enough balance."
	case errors.Is(err, ledgerservice.ErrLimitExceeded):
		msg = fmt.Sprintf("Operation failed! The withdrawal exceeds the limit of %s.", money(policy.WithdrawalLimit))
	case errors.Is(err, ledgerservice.ErrWithdrawalCountExceeded):
		msg = fmt.Sprintf("Operation failed! Maximum of %d withdrawals exceeded.", policy.MaxWithdrawals)
	case errors.Is(err, ledgerservice.ErrInvalidAmount):
		msg = "Operation failed! The amount entered is invalid."
	case errors.Is(err, ledgerservice.ErrAccountNotFound):
		msg = "Operation failed! Account not found."
	case isUserError(err):
		msg = userMessage(err)
	default:
		zap.L().Error("shell operation failed", zap.Error(err))
		return err
	}
	s.fail(msg)
	return nil
}

func (s *Shell) readAccountNumber() (int, bool, error) {
	line, err := s.readLine("Enter the account number: ")
	if err != nil {
		return 0, false, err
	}
	number, err := strconv.Atoi(line)
	if err != nil || number < domain.FirstAccountNumber {
		s.fail("Operation failed! Invalid account number.")
		return 0, false, nil
	}
	return number, true, nil
}

// readAmount accepts both "10.50" and "10,50".
func (s *Shell) readAmount(prompt string) (decimal.Decimal, bool, error) {
	line, err := s.readLine(prompt)
	if err != nil {
		return decimal.Zero, false, err
	}
	amount, err := decimal.NewFromString(strings.ReplaceAll(line, ",", "."))
	if err != nil {
		return decimal.Zero, false, nil
	}
	return amount, true, nil
}

func (s *Shell) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("can't read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Shell) print(line string) {
	fmt.Fprintln(s.out, line)
}

func (s *Shell) success(msg string) {
	s.print("\n" + s.style.success.Render("=== "+msg+" ==="))
}

func (s *Shell) fail(msg string) {
	s.print("\n" + s.style.failure.Render("@@@ "+msg+" @@@"))
}

func money(d decimal.Decimal) string {
	return "R$ " + d.StringFixed(2)
}
