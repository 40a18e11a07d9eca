package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type transferCmd struct {
	from   string
	to     string
	amount string
	pin    string
}

func (*transferCmd) Name() string     { return "transfer" }
func (*transferCmd) Synopsis() string { return "move an amount between two accounts" }
func (*transferCmd) Usage() string {
	return `bk transfer -from <account> -to <account> -amount <amount> -pin <pin>

  Debits the sender and credits the recipient atomically. The amount is in
  the sender's currency and is converted into the recipient's currency.
`
}

func (c *transferCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Sender account id.")
	f.StringVar(&c.to, "to", "", "Recipient account id.")
	f.StringVar(&c.amount, "amount", "", "Amount to transfer, in the sender's currency.")
	f.StringVar(&c.pin, "pin", "", "Sender's PIN.")
}

func (c *transferCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	if err := authenticate(ledger, c.from, c.pin); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	res, err := ledger.Transfer(c.from, c.to, amount)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Transferred %s to account %s, credited as %s.\n", res.Sent, res.Recipient.ID, res.Received)
	fmt.Printf("Sender balance: %s\n", res.Sender.Balance)
	return subcommands.ExitSuccess
}
