package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/jsheel/bankbook/renderer"
)

type adviseCmd struct {
	id string
}

func (*adviseCmd) Name() string     { return "advise" }
func (*adviseCmd) Synopsis() string { return "suggest actions for an account" }
func (*adviseCmd) Usage() string {
	return `bk advise -id <account>

  Reads the account and suggests concrete actions: restraint when withdrawals
  pile up, a deposit when the balance is drained, payments while loans are
  outstanding.
`
}

func (c *adviseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Account id.")
}

func (c *adviseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	advice, err := ledger.SuggestActions(c.id)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Advice(advice))
	return subcommands.ExitSuccess
}
