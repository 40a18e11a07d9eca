package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/jsheel/bankbook"
	"github.com/jsheel/bankbook/renderer"
)

type assistCmd struct {
	id string
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session about your accounts" }
func (*assistCmd) Usage() string {
	return `bk assist [-id <account>]

  Starts an interactive session. Ask about your balance, your history, a
  loan, or ask for advice. 'bye' ends the session.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Account to talk about. Defaults to the whole book.")
}

func (c *assistCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	fmt.Println("Hi, ask me about your balance, history, loans or advice. Say 'bye' to leave.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		question := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if question == "" {
			continue
		}
		if strings.Contains(question, "bye") || question == "quit" || question == "exit" {
			fmt.Println("Goodbye.")
			break
		}
		c.answer(ledger, question)
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// answer routes a plain question to the matching report. Without an account
// id it can only answer book-wide questions.
func (c *assistCmd) answer(ledger *bankbook.Ledger, question string) {
	switch {
	case strings.Contains(question, "balance") && c.id != "":
		a, err := ledger.Account(c.id)
		if err != nil {
			fmt.Println("I could not find that account:", err)
			return
		}
		fmt.Printf("Your balance is %s, which is %s in USD.\n", a.Balance, a.USDBalance)
	case strings.Contains(question, "history") || strings.Contains(question, "transaction"):
		if c.id == "" {
			fmt.Println("Tell me which account with -id, then ask again.")
			return
		}
		a, _ := ledger.Account(c.id)
		txs, err := ledger.Transactions(c.id)
		if err != nil {
			fmt.Println("I could not read the history:", err)
			return
		}
		printMarkdown(renderer.Transactions(a, txs))
	case strings.Contains(question, "loan"):
		if c.id == "" {
			fmt.Println("Tell me which account with -id, then ask again.")
			return
		}
		a, err := ledger.Account(c.id)
		if err != nil {
			fmt.Println("I could not find that account:", err)
			return
		}
		if a.LoansOutstanding.IsPositive() {
			fmt.Printf("You owe %s. 'bk payloan' pays it back.\n", a.LoansOutstanding)
		} else {
			fmt.Println("You have no outstanding loans. 'bk loan' takes one.")
		}
	case strings.Contains(question, "advice") || strings.Contains(question, "advise"):
		if c.id == "" {
			fmt.Println("Tell me which account with -id, then ask again.")
			return
		}
		advice, err := ledger.SuggestActions(c.id)
		if err != nil {
			fmt.Println("I could not build advice:", err)
			return
		}
		printMarkdown(renderer.Advice(advice))
	case strings.Contains(question, "account"):
		printMarkdown(renderer.Accounts(ledger.Accounts()))
	default:
		fmt.Println("I can talk about balance, history, loans, advice or accounts.")
	}
}
