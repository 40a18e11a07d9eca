// Package cmd implements the bk command line over a personal bank book.
package cmd

import (
	"flag"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/jsheel/bankbook"
	"github.com/shopspring/decimal"
)

// Register the subcommands. A main package calls Register, then Execute on
// the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&createCmd{}, "accounts")
	c.Register(&accountsCmd{}, "accounts")
	c.Register(&balanceCmd{}, "accounts")
	c.Register(&deactivateCmd{}, "accounts")

	c.Register(&depositCmd{}, "transactions")
	c.Register(&withdrawCmd{}, "transactions")
	c.Register(&transferCmd{}, "transactions")
	c.Register(&txCmd{}, "transactions")
	c.Register(&exportCmd{}, "transactions")

	c.Register(&interestCmd{}, "loans")
	c.Register(&loanCmd{}, "loans")
	c.Register(&payLoanCmd{}, "loans")

	c.Register(&otpCmd{}, "security")
	c.Register(&recoverCmd{}, "security")

	c.Register(&predictCmd{}, "insight")
	c.Register(&adviseCmd{}, "insight")
	c.Register(&assistCmd{}, "insight")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, the lifecycle is very short lived, so it is ok to use
// global variables.

var accountsFile = flag.String("accounts-file", "accounts.json", "Path to the accounts file (single JSON document)")

// openLedger opens the book backed by the app accounts file.
func openLedger() (*bankbook.Ledger, error) {
	return bankbook.Open(bankbook.NewFileStore(*accountsFile))
}

// authenticate checks the pin against the account before a guarded operation.
func authenticate(l *bankbook.Ledger, id, pin string) error {
	return bankbook.NewGuard(l).AuthenticatePIN(id, pin)
}

// parseAmount parses a decimal amount flag.
func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("missing -amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: %v", s, err)
	}
	return d, nil
}

// printMarkdown renders markdown to the terminal, falling back to the raw
// text when the renderer fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
