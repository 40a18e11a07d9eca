package bankbook

import (
	"errors"
	"strings"
	"testing"
)

func TestPredictBalance(t *testing.T) {
	l, _ := newTestLedger(t)
	a := create(t, l, "USD", Savings, "300")
	if _, err := l.Deposit(a.ID, dec("100")); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Withdraw(a.ID, dec("50")); err != nil {
		t.Fatal(err)
	}

	// balance 350, avg deposit 200, avg withdrawal 50, projected 6 periods:
	// 350 + (200-50)*6 = 1250
	got, err := l.PredictBalance(a.ID)
	if err != nil {
		t.Fatalf("PredictBalance: %v", err)
	}
	if !got.Amount().Equal(dec("1250")) || got.Currency() != "USD" {
		t.Errorf("predicted = %s %s, want 1250 USD", got.Amount(), got.Currency())
	}
}

func TestPredictBalanceNoWithdrawals(t *testing.T) {
	l, _ := newTestLedger(t)
	a := create(t, l, "USD", Savings, "100")

	// the withdrawal average divides by one even with no withdrawals
	got, err := l.PredictBalance(a.ID)
	if err != nil {
		t.Fatalf("PredictBalance: %v", err)
	}
	if !got.Amount().Equal(dec("700")) {
		t.Errorf("predicted = %s, want 700", got.Amount())
	}
}

func TestPredictBalanceZeroBalance(t *testing.T) {
	l, _ := newTestLedger(t)
	a := create(t, l, "USD", Savings, "100")
	if _, err := l.Withdraw(a.ID, dec("100")); err != nil {
		t.Fatal(err)
	}

	// a drained account projects to zero regardless of its history
	got, err := l.PredictBalance(a.ID)
	if err != nil {
		t.Fatalf("PredictBalance: %v", err)
	}
	if !got.IsZero() {
		t.Errorf("predicted = %s, want 0", got.Amount())
	}
}

func TestPredictBalanceNoHistory(t *testing.T) {
	l, _ := newTestLedger(t)
	l.accounts["0001"] = &Account{
		ID: "0001", Number: "10000000001", Name: "Empty", Currency: "USD",
		Type: Savings, Balance: M(0, "USD"), Active: true,
	}
	if _, err := l.PredictBalance("0001"); !errors.Is(err, ErrNotEnoughData) {
		t.Errorf("err = %v, want ErrNotEnoughData", err)
	}
}

func TestSuggestActionsOrder(t *testing.T) {
	l, _ := newTestLedger(t)
	a := create(t, l, "USD", Savings, "1000")
	for _, amount := range []string{"100", "100", "100", "700"} {
		if _, err := l.Withdraw(a.ID, dec(amount)); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := l.ApplyLoan(a.ID, dec("500"), 1); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Withdraw(a.ID, dec("500")); err != nil {
		t.Fatal(err)
	}

	// 5 withdrawals in the window, balance drained to zero, loan outstanding:
	// three signals, in the checked sequence
	advice, err := l.SuggestActions(a.ID)
	if err != nil {
		t.Fatalf("SuggestActions: %v", err)
	}
	if len(advice.Tips) != 3 {
		t.Fatalf("tips = %v, want 3 signals", advice.Tips)
	}
	if !strings.Contains(advice.Tips[0], "withdrawals in the last") {
		t.Errorf("first signal = %q, want frequent withdrawals", advice.Tips[0])
	}
	if !strings.Contains(advice.Tips[1], "zero") {
		t.Errorf("second signal = %q, want zero balance", advice.Tips[1])
	}
	if !strings.Contains(advice.Tips[2], "loan") {
		t.Errorf("third signal = %q, want outstanding loans", advice.Tips[2])
	}
}

func TestSuggestActionsThinHistory(t *testing.T) {
	l, _ := newTestLedger(t)
	a := create(t, l, "USD", Savings, "1000")

	advice, err := l.SuggestActions(a.ID)
	if err != nil {
		t.Fatalf("SuggestActions: %v", err)
	}
	if len(advice.Tips) != 1 || !strings.Contains(advice.Tips[0], "transactions so far") {
		t.Errorf("tips = %v, want the thin-history signal only", advice.Tips)
	}
}

func TestSuggestActionsHealthy(t *testing.T) {
	l, _ := newTestLedger(t)
	a := create(t, l, "USD", Savings, "1000")
	for _, amount := range []string{"100", "100"} {
		if _, err := l.Deposit(a.ID, dec(amount)); err != nil {
			t.Fatal(err)
		}
	}

	advice, err := l.SuggestActions(a.ID)
	if err != nil {
		t.Fatalf("SuggestActions: %v", err)
	}
	if len(advice.Tips) != 0 {
		t.Errorf("healthy account got tips: %v", advice.Tips)
	}
}
