package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/jsheel/bankbook"
)

type recoverCmd struct {
	id     string
	answer string
	newPIN string
}

func (*recoverCmd) Name() string     { return "recover" }
func (*recoverCmd) Synopsis() string { return "reset a forgotten PIN through the security question" }
func (*recoverCmd) Usage() string {
	return `bk recover -id <account> -answer <answer> -new-pin <pin>

  Resets the PIN after the security question is answered correctly. The
  answer is case-sensitive.
`
}

func (c *recoverCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Account id.")
	f.StringVar(&c.answer, "answer", "", "Answer to the account's security question.")
	f.StringVar(&c.newPIN, "new-pin", "", "New 4-digit PIN.")
}

func (c *recoverCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	a, err := ledger.Account(c.id)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Security question: %s\n", a.SecurityQuestion)
	if err := bankbook.NewGuard(ledger).RecoverPIN(c.id, c.answer, c.newPIN); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Println("PIN replaced.")
	return subcommands.ExitSuccess
}
