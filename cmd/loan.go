package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type loanCmd struct {
	id     string
	amount string
	years  int
	pin    string
}

func (*loanCmd) Name() string     { return "loan" }
func (*loanCmd) Synopsis() string { return "take a loan on an account" }
func (*loanCmd) Usage() string {
	return `bk loan -id <account> -amount <amount> -years <n> -pin <pin>

  Credits the principal to the balance. The total to pay back compounds at
  5% per year of duration and is tracked as outstanding loans.
`
}

func (c *loanCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Account id.")
	f.StringVar(&c.amount, "amount", "", "Loan principal, in the account currency.")
	f.IntVar(&c.years, "years", 1, "Loan duration in years.")
	f.StringVar(&c.pin, "pin", "", "Account PIN.")
}

func (c *loanCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	amount, err := parseAmount(c.amount)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	ledger, err := openLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := authenticate(ledger, c.id, c.pin); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	res, err := ledger.ApplyLoan(c.id, amount, c.years)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Loan granted. Total to pay back over %d years: %s\n", c.years, res.TotalPayable)
	fmt.Printf("New balance: %s, loans outstanding: %s\n", res.Account.Balance, res.Account.LoansOutstanding)
	return subcommands.ExitSuccess
}
