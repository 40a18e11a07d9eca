package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/jsheel/bankbook"
	"github.com/jsheel/bankbook/renderer"
	"github.com/shopspring/decimal"
)

type createCmd struct {
	name     string
	currency string
	accType  string
	initial  string
	pin      string
	question string
	answer   string
}

func (*createCmd) Name() string     { return "create" }
func (*createCmd) Synopsis() string { return "open a new account" }
func (*createCmd) Usage() string {
	return `bk create -name <holder> -currency <code> -type <savings|checking> -pin <pin> -question <q> -answer <a> [-initial <amount>]

  Opens a new account and seeds it with the initial deposit. The initial
  deposit may not exceed the equivalent of 10,000 USD.

Usage Examples:
$ bk create -name "Jay" -currency INR -type savings -initial 8500 -pin 1234 -question "first pet?" -answer rex
`
}

func (c *createCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Holder name.")
	f.StringVar(&c.currency, "currency", "USD", "Account currency (USD, INR, EUR, JPY).")
	f.StringVar(&c.accType, "type", "savings", "Account type: savings or checking.")
	f.StringVar(&c.initial, "initial", "0", "Initial deposit, in the account currency.")
	f.StringVar(&c.pin, "pin", "", "4-digit PIN protecting the account.")
	f.StringVar(&c.question, "question", "", "Security question for PIN recovery.")
	f.StringVar(&c.answer, "answer", "", "Answer to the security question.")
}

func (c *createCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initial, err := decimal.NewFromString(c.initial)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid initial deposit %q: %v\n", c.initial, err)
		return subcommands.ExitUsageError
	}
	ledger, err := openLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	a, err := ledger.CreateAccount(bankbook.CreateRequest{
		Name:             c.name,
		Currency:         c.currency,
		Type:             bankbook.AccountType(c.accType),
		InitialDeposit:   initial,
		PIN:              c.pin,
		SecurityQuestion: c.question,
		SecurityAnswer:   c.answer,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Opened account %s (number %s)\n", a.ID, a.Number)
	printMarkdown(renderer.Account(a))
	return subcommands.ExitSuccess
}
