package bankbook

import "time"

// TxType identifies the kind of a ledger transaction.
type TxType string

// Transaction types. Every balance change in the book is recorded as exactly
// one of these.
const (
	TxDeposit     TxType = "Deposit"
	TxWithdrawal  TxType = "Withdrawal"
	TxTransferOut TxType = "TransferOut"
	TxTransferIn  TxType = "TransferIn"
	TxInterest    TxType = "Interest"
	TxLoan        TxType = "Loan"
	TxLoanPayment TxType = "LoanPayment"
)

// Transaction is one immutable entry of an account's history. Once appended
// the entry is never modified, reordered or deleted.
type Transaction struct {
	Type   TxType
	Amount Money // non-negative magnitude, in the account's currency
	Time   time.Time
	// Counterparty is the other side's account number, set on transfers only:
	// the recipient on TransferOut, the sender on TransferIn.
	Counterparty string
}

func newTx(kind TxType, amount Money, at time.Time) Transaction {
	return Transaction{Type: kind, Amount: amount, Time: at}
}

func newTransferTx(kind TxType, amount Money, at time.Time, counterparty string) Transaction {
	return Transaction{Type: kind, Amount: amount, Time: at, Counterparty: counterparty}
}
