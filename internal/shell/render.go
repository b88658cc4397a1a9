package shell

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/GlebRadaev/bankledger/internal/domain"
)

type styles struct {
	title   lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	header  lipgloss.Style
	cell    lipgloss.Style
	border  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		success: r.NewStyle().Foreground(lipgloss.Color("10")),
		failure: r.NewStyle().Foreground(lipgloss.Color("9")),
		header:  r.NewStyle().Bold(true).Padding(0, 1),
		cell:    r.NewStyle().Padding(0, 1),
		border:  r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func (st styles) table(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.border).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.header
			}
			return st.cell
		}).
		Headers(headers...)
}

var kindNames = map[domain.TransactionKind]string{
	domain.DepositKind:    "Deposit",
	domain.WithdrawalKind: "Withdrawal",
}

func renderStatement(st styles, s *domain.Statement) string {
	var body string
	if len(s.Transactions) == 0 {
		body = "No transactions yet."
	} else {
		t := st.table("#", "Kind", "Amount")
		for _, tx := range s.Transactions {
			t.Row(strconv.Itoa(tx.Seq), kindNames[tx.Kind], money(tx.Amount))
		}
		body = t.String()
	}
	return fmt.Sprintf("Agency: %s  Account: %d  Holder: %s\n%s\n\nBalance: %s",
		s.Account.Agency, s.Account.Number, s.Account.Owner.FullName, body, money(s.Balance))
}

func renderAccounts(st styles, accounts []domain.AccountSummary) string {
	if len(accounts) == 0 {
		return "No accounts registered."
	}
	t := st.table("Agency", "Account", "Holder")
	for _, a := range accounts {
		t.Row(a.Agency, strconv.Itoa(a.Number), a.OwnerName)
	}
	return t.String()
}
