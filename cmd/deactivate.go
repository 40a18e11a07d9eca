package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type deactivateCmd struct {
	id  string
	pin string
	yes bool
}

func (*deactivateCmd) Name() string     { return "deactivate" }
func (*deactivateCmd) Synopsis() string { return "retire an account, keeping its history" }
func (*deactivateCmd) Usage() string {
	return `bk deactivate -id <account> -pin <pin> -yes

  Retires the account. The balance and history are kept and stay readable,
  but no further movement is accepted. This cannot be undone, hence -yes.
`
}

func (c *deactivateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Account id.")
	f.StringVar(&c.pin, "pin", "", "Account PIN.")
	f.BoolVar(&c.yes, "yes", false, "Confirm the deactivation.")
}

func (c *deactivateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := authenticate(ledger, c.id, c.pin); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := ledger.Deactivate(c.id, c.yes); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Account %s is deactivated. Its history remains readable.\n", c.id)
	return subcommands.ExitSuccess
}
