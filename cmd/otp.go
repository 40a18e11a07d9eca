package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/jsheel/bankbook"
)

type otpCmd struct {
	id   string
	code string
}

func (*otpCmd) Name() string     { return "otp" }
func (*otpCmd) Synopsis() string { return "issue or verify a one-time code" }
func (*otpCmd) Usage() string {
	return `bk otp -id <account> send
bk otp -id <account> -code <code> verify

  'send' issues a fresh 6-digit code, replacing any pending one. 'verify'
  checks a code; a match consumes it, a mismatch issues a replacement.
`
}

func (c *otpCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Account id.")
	f.StringVar(&c.code, "code", "", "Code to verify.")
}

func (c *otpCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	guard := bankbook.NewGuard(ledger)

	switch f.Arg(0) {
	case "send":
		code, err := guard.IssueOTP(c.id)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		// a real bank would text it, this one prints it
		fmt.Printf("One-time code for account %s: %s\n", c.id, code)
	case "verify":
		reissued, err := guard.VerifyOTP(c.id, c.code)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			if reissued != "" {
				fmt.Printf("New one-time code for account %s: %s\n", c.id, reissued)
			}
			return subcommands.ExitFailure
		}
		fmt.Println("Code verified.")
	default:
		fmt.Fprintln(os.Stderr, "Error: expected 'send' or 'verify'.")
		return subcommands.ExitUsageError
	}
	return subcommands.ExitSuccess
}
