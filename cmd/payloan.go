package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type payLoanCmd struct {
	id     string
	amount string
	pin    string
}

func (*payLoanCmd) Name() string     { return "payloan" }
func (*payLoanCmd) Synopsis() string { return "pay back part or all of the outstanding loans" }
func (*payLoanCmd) Usage() string {
	return `bk payloan -id <account> -amount <amount> -pin <pin>

  Reduces the outstanding loans and the balance by the payment. Paying more
  than is outstanding is refused.
`
}

func (c *payLoanCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Account id.")
	f.StringVar(&c.amount, "amount", "", "Payment, in the account currency.")
	f.StringVar(&c.pin, "pin", "", "Account PIN.")
}

func (c *payLoanCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	a, err := ledger.PayLoan(c.id, amount)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Paid. Loans outstanding: %s, balance: %s\n", a.LoansOutstanding, a.Balance)
	return subcommands.ExitSuccess
}
