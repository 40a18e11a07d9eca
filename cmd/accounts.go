package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/jsheel/bankbook/renderer"
)

type accountsCmd struct{}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list all accounts in the book" }
func (*accountsCmd) Usage() string {
	return `bk accounts

  Lists every account with its balances and status.
`
}

func (*accountsCmd) SetFlags(f *flag.FlagSet) {}

func (c *accountsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	accounts := ledger.Accounts()
	if len(accounts) == 0 {
		fmt.Println("The book is empty, open an account with 'bk create'.")
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.Accounts(accounts))
	return subcommands.ExitSuccess
}
