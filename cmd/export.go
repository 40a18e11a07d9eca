package cmd

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/subcommands"
)

type exportCmd struct {
	dir string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the book to CSV files" }
func (*exportCmd) Usage() string {
	return `bk export [-dir <directory>]

  Writes accounts.csv and transactions.csv for use in a spreadsheet. Hashes
  and pending codes are not exported.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dir, "dir", ".", "Directory to write the CSV files into.")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	accounts := ledger.Accounts()

	accountsPath := filepath.Join(c.dir, "accounts.csv")
	if err := writeCSV(accountsPath, func(w *csv.Writer) error {
		if err := w.Write([]string{"id", "number", "name", "type", "currency", "balance", "usd_balance", "loans_outstanding", "active", "created_at"}); err != nil {
			return err
		}
		for _, a := range accounts {
			record := []string{
				a.ID, a.Number, a.Name, string(a.Type), a.Currency,
				a.Balance.Amount().String(), a.USDBalance.Amount().String(),
				a.LoansOutstanding.Amount().String(),
				fmt.Sprint(a.Active), a.CreatedAt.Format(time.RFC3339),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	txPath := filepath.Join(c.dir, "transactions.csv")
	if err := writeCSV(txPath, func(w *csv.Writer) error {
		if err := w.Write([]string{"account_id", "time", "type", "amount", "currency", "counterparty"}); err != nil {
			return err
		}
		for _, a := range accounts {
			for _, tx := range a.Transactions {
				record := []string{
					a.ID, tx.Time.Format(time.RFC3339), string(tx.Type),
					tx.Amount.Amount().String(), a.Currency, tx.Counterparty,
				}
				if err := w.Write(record); err != nil {
					return err
				}
			}
		}
		return nil
	}); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Exported %d accounts to %s and %s\n", len(accounts), accountsPath, txPath)
	return subcommands.ExitSuccess
}

func writeCSV(path string, fill func(*csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := fill(w); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
