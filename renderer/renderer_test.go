package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/jsheel/bankbook"
)

func sample() bankbook.Account {
	return bankbook.Account{
		ID:               "0001",
		Number:           "12345678901",
		Name:             "Jay",
		Currency:         "INR",
		Type:             bankbook.Savings,
		Balance:          bankbook.M(8500, "INR"),
		USDBalance:       bankbook.M(100, "USD"),
		LoansOutstanding: bankbook.M(0, "INR"),
		Active:           true,
		CreatedAt:        time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
	}
}

func TestAccounts(t *testing.T) {
	got := Accounts([]bankbook.Account{sample()})
	for _, want := range []string{"# Accounts", "0001", "12345678901", "Jay", "savings", "active"} {
		if !strings.Contains(got, want) {
			t.Errorf("Accounts() is missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "error") {
		t.Errorf("Accounts() reported a template error:\n%s", got)
	}
}

func TestAccount(t *testing.T) {
	a := sample()
	a.Active = false
	got := Account(a)
	for _, want := range []string{"Account 0001: Jay", "inactive", "2024-03-01 10:30"} {
		if !strings.Contains(got, want) {
			t.Errorf("Account() is missing %q:\n%s", want, got)
		}
	}
}

func TestTransactions(t *testing.T) {
	a := sample()
	txs := []bankbook.Transaction{
		{Type: bankbook.TxDeposit, Amount: bankbook.M(8500, "INR"), Time: a.CreatedAt},
		{Type: bankbook.TxTransferOut, Amount: bankbook.M(100, "INR"), Time: a.CreatedAt, Counterparty: "98765432109"},
	}
	got := Transactions(a, txs)
	for _, want := range []string{"account 0001", "Deposit", "TransferOut", "98765432109"} {
		if !strings.Contains(got, want) {
			t.Errorf("Transactions() is missing %q:\n%s", want, got)
		}
	}
}

func TestAdvice(t *testing.T) {
	healthy := Advice(bankbook.Advice{Account: sample()})
	if !strings.Contains(healthy, "looks healthy") {
		t.Errorf("Advice() without tips:\n%s", healthy)
	}

	warned := Advice(bankbook.Advice{
		Account: sample(),
		Tips:    []string{"balance is below 500 INR, consider a deposit to keep a cushion"},
	})
	if !strings.Contains(warned, "* balance is below") {
		t.Errorf("Advice() with tips:\n%s", warned)
	}
	if strings.Contains(warned, "looks healthy") {
		t.Errorf("Advice() with tips still claims health:\n%s", warned)
	}
}
