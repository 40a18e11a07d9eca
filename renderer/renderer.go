// Package renderer turns ledger structures into markdown reports.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
	"time"

	"github.com/jsheel/bankbook"
)

//go:embed templates/*.md
var templates embed.FS

var funcs = template.FuncMap{
	"date": func(t time.Time) string { return t.Format("2006-01-02 15:04") },
}

// Accounts renders the account overview table.
func Accounts(accounts []bankbook.Account) string {
	return renderTemplate("accounts", "templates/accounts.md", accounts)
}

// Account renders a single account detail sheet.
func Account(a bankbook.Account) string {
	return renderTemplate("account", "templates/account.md", a)
}

// Transactions renders an account's history.
func Transactions(a bankbook.Account, txs []bankbook.Transaction) string {
	data := struct {
		Account      bankbook.Account
		Transactions []bankbook.Transaction
	}{a, txs}
	return renderTemplate("transactions", "templates/transactions.md", data)
}

// Advice renders the advisor's reading of an account.
func Advice(ad bankbook.Advice) string {
	return renderTemplate("advice", "templates/advice.md", ad)
}

// renderTemplate executes one embedded template over data. Rendering problems
// come back as the report body, a broken report beats a dead command.
func renderTemplate(name, file string, data any) string {
	content, err := fs.ReadFile(templates, file)
	if err != nil {
		return fmt.Sprintf("error reading template %q: %v", file, err)
	}
	tmpl, err := template.New(name).Funcs(funcs).Parse(string(content))
	if err != nil {
		return fmt.Sprintf("error parsing template %q: %v", file, err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", name, err)
	}
	return b.String()
}
