package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type withdrawCmd struct {
	id     string
	amount string
	pin    string
}

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "debit an amount from an account" }
func (*withdrawCmd) Usage() string {
	return `bk withdraw -id <account> -amount <amount> -pin <pin>

  Debits the amount, in the account currency. The balance can be drained to
  exactly zero, never below. Warns when the remaining balance drops under 500.
`
}

func (c *withdrawCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Account id.")
	f.StringVar(&c.amount, "amount", "", "Amount to withdraw, in the account currency.")
	f.StringVar(&c.pin, "pin", "", "Account PIN.")
}

func (c *withdrawCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	res, err := ledger.Withdraw(c.id, amount)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if res.LowBalance {
			fmt.Fprintln(os.Stderr, "Warning: the balance is under 500.")
		}
		return subcommands.ExitFailure
	}
	fmt.Printf("Withdrew. New balance: %s (%s in USD)\n", res.Account.Balance, res.Account.USDBalance)
	if res.LowBalance {
		fmt.Println("Warning: the balance is under 500.")
	}
	return subcommands.ExitSuccess
}
