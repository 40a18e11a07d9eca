package bankbook

import (
	"encoding/json"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// amounts are JSON numbers in the document, not strings
	decimal.MarshalJSONWithoutQuotes = true
}

// The on-disk document is a single JSON object keyed by account id. Amounts
// are stored as plain numbers; the currency is stored once per account and
// reattached on load.

type txRecord struct {
	Type         TxType          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Time         time.Time       `json:"time"`
	Counterparty string          `json:"counterparty,omitempty"`
}

type accountRecord struct {
	ID                 string          `json:"id"`
	Number             string          `json:"number"`
	Name               string          `json:"name"`
	Currency           string          `json:"currency"`
	Type               AccountType     `json:"type"`
	Balance            decimal.Decimal `json:"balance"`
	USDBalance         decimal.Decimal `json:"usd_balance"`
	PINHash            string          `json:"pin_hash"`
	SecurityQuestion   string          `json:"security_question"`
	SecurityAnswerHash string          `json:"security_answer_hash"`
	OTP                *string         `json:"otp,omitempty"`
	LoansOutstanding   decimal.Decimal `json:"loans_outstanding"`
	Active             bool            `json:"active"`
	CreatedAt          time.Time       `json:"created_at"`
	Transactions       []txRecord      `json:"transactions"`
}

// EncodeAccounts writes the whole collection as one indented JSON document.
// Go marshals maps with sorted keys, so the output is stable across runs.
func EncodeAccounts(w io.Writer, accounts map[string]*Account) error {
	doc := make(map[string]accountRecord, len(accounts))
	for id, a := range accounts {
		doc[id] = record(a)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// DecodeAccounts reads a document written by EncodeAccounts.
func DecodeAccounts(r io.Reader) (map[string]*Account, error) {
	var doc map[string]accountRecord
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	accounts := make(map[string]*Account, len(doc))
	for id, rec := range doc {
		accounts[id] = restore(rec)
	}
	return accounts, nil
}

func record(a *Account) accountRecord {
	rec := accountRecord{
		ID:                 a.ID,
		Number:             a.Number,
		Name:               a.Name,
		Currency:           a.Currency,
		Type:               a.Type,
		Balance:            a.Balance.Amount(),
		USDBalance:         a.USDBalance.Amount(),
		PINHash:            a.PINHash,
		SecurityQuestion:   a.SecurityQuestion,
		SecurityAnswerHash: a.SecurityAnswerHash,
		OTP:                a.OTP,
		LoansOutstanding:   a.LoansOutstanding.Amount(),
		Active:             a.Active,
		CreatedAt:          a.CreatedAt,
		Transactions:       make([]txRecord, 0, len(a.Transactions)),
	}
	for _, tx := range a.Transactions {
		rec.Transactions = append(rec.Transactions, txRecord{
			Type:         tx.Type,
			Amount:       tx.Amount.Amount(),
			Time:         tx.Time,
			Counterparty: tx.Counterparty,
		})
	}
	return rec
}

func restore(rec accountRecord) *Account {
	a := &Account{
		ID:                 rec.ID,
		Number:             rec.Number,
		Name:               rec.Name,
		Currency:           rec.Currency,
		Type:               rec.Type,
		Balance:            M(rec.Balance, rec.Currency),
		USDBalance:         M(rec.USDBalance, "USD"),
		PINHash:            rec.PINHash,
		SecurityQuestion:   rec.SecurityQuestion,
		SecurityAnswerHash: rec.SecurityAnswerHash,
		OTP:                rec.OTP,
		LoansOutstanding:   M(rec.LoansOutstanding, rec.Currency),
		Active:             rec.Active,
		CreatedAt:          rec.CreatedAt,
		Transactions:       make([]Transaction, 0, len(rec.Transactions)),
	}
	for _, tx := range rec.Transactions {
		a.Transactions = append(a.Transactions, Transaction{
			Type:         tx.Type,
			Amount:       M(tx.Amount, rec.Currency),
			Time:         tx.Time,
			Counterparty: tx.Counterparty,
		})
	}
	return a
}
