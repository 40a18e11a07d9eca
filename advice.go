package bankbook

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// The advisor looks at the last few entries of the history, not the whole
// book, so old habits do not drown out recent ones.
const (
	recentWindow        = 10
	fewTransactions     = 3
	frequentWithdrawals = 3
)

// predictPeriods is how far ahead PredictBalance projects.
var predictPeriods = decimal.NewFromInt(6)

// Advice is the advisor's reading of an account: the account itself plus
// advisory signals in a deterministic order. No tips means the account is
// doing fine.
type Advice struct {
	Account Account
	Tips    []string
}

// PredictBalance projects the balance six periods ahead, assuming the average
// deposit and the average withdrawal seen so far both repeat once per period.
// An empty account projects to zero; an account with no history cannot be
// projected at all.
func (l *Ledger) PredictBalance(id string) (Money, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, err := l.get(id)
	if err != nil {
		return Money{}, err
	}
	if len(a.Transactions) == 0 {
		return Money{}, fmt.Errorf("account %s has no history yet: %w", id, ErrNotEnoughData)
	}
	if a.Balance.IsZero() {
		return M(0, a.Currency), nil
	}
	var depSum, witSum decimal.Decimal
	var deps, wits int
	for _, tx := range a.Transactions {
		switch tx.Type {
		case TxDeposit:
			depSum = depSum.Add(tx.Amount.Amount())
			deps++
		case TxWithdrawal:
			witSum = witSum.Add(tx.Amount.Amount())
			wits++
		}
	}
	// divisors floored at 1, a missing category averages to zero
	avgDep := depSum.Div(decimal.NewFromInt(int64(max(deps, 1))))
	avgWit := witSum.Div(decimal.NewFromInt(int64(max(wits, 1))))
	predicted := a.Balance.Amount().Add(avgDep.Sub(avgWit).Mul(predictPeriods))
	return M(predicted.Round(2), a.Currency), nil
}

// SuggestActions derives advisory signals from the account, checked in a
// fixed sequence: a thin history, frequent recent withdrawals, a drained
// balance, and outstanding loans. Several may fire at once.
func (l *Ledger) SuggestActions(id string) (Advice, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, err := l.get(id)
	if err != nil {
		return Advice{}, err
	}
	advice := Advice{Account: a.clone()}

	if len(a.Transactions) < fewTransactions {
		advice.Tips = append(advice.Tips,
			fmt.Sprintf("only %d transactions so far, use the account regularly to build a picture", len(a.Transactions)))
	}
	recent := a.Transactions
	if len(recent) > recentWindow {
		recent = recent[len(recent)-recentWindow:]
	}
	var wits int
	for _, tx := range recent {
		if tx.Type == TxWithdrawal {
			wits++
		}
	}
	if wits > frequentWithdrawals {
		advice.Tips = append(advice.Tips,
			fmt.Sprintf("%d withdrawals in the last %d transactions, consider spacing them out", wits, len(recent)))
	}
	if a.Balance.IsZero() {
		advice.Tips = append(advice.Tips,
			"the balance is at zero, a deposit would keep the account useful")
	}
	if a.LoansOutstanding.IsPositive() {
		advice.Tips = append(advice.Tips,
			fmt.Sprintf("loans outstanding amount to %s, consider a payment to reduce the interest burden", a.LoansOutstanding))
	}
	return advice, nil
}
