package bankbook

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Policy limits. USD-denominated caps are converted into the account currency
// at check time.
var (
	maxInitialDepositUSD = M(10_000, "USD")
	loanLimitUSD         = M(100_000_000, "USD")
	maxDeposit           = decimal.NewFromInt(1_000_000) // in account currency
	lowBalance           = decimal.NewFromInt(500)       // in account currency
	loanGrowth           = decimal.RequireFromString("1.05")
)

// Ledger owns the account collection and every operation that mutates it.
//
// A single mutex serializes all read-modify-write-persist cycles, so no caller
// ever observes an intermediate state, and a transfer's two account mutations
// plus the save behave as one atomic unit. Every successful mutating operation
// performs exactly one save through the injected store; when the save fails
// (after one retry) the in-memory mutation is rolled back and ErrPersistence
// is returned.
type Ledger struct {
	mu       sync.Mutex
	store    Store
	accounts map[string]*Account
}

// Open loads the account collection from the store and returns a ready ledger.
func Open(store Store) (*Ledger, error) {
	accounts, err := store.Load()
	if err != nil {
		return nil, err
	}
	if accounts == nil {
		accounts = make(map[string]*Account)
	}
	return &Ledger{store: store, accounts: accounts}, nil
}

// CreateRequest carries everything needed to open an account.
type CreateRequest struct {
	Name             string
	Currency         string
	Type             AccountType
	InitialDeposit   decimal.Decimal
	PIN              string
	SecurityQuestion string
	SecurityAnswer   string
}

// CreateAccount opens a new account seeded with one deposit transaction.
// The id is sequential and zero-padded; the display number is drawn at random
// and guaranteed unique within the book. PIN and security answer are stored
// hashed only.
func (l *Ledger) CreateAccount(req CreateRequest) (Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if strings.TrimSpace(req.Name) == "" {
		return Account{}, fmt.Errorf("account name is missing: %w", ErrValidation)
	}
	if err := ValidateCurrency(req.Currency); err != nil {
		return Account{}, err
	}
	if _, err := ParseAccountType(string(req.Type)); err != nil {
		return Account{}, err
	}
	if req.InitialDeposit.IsNegative() {
		return Account{}, fmt.Errorf("initial deposit cannot be negative, got %s: %w", req.InitialDeposit, ErrValidation)
	}
	limit, err := Convert(maxInitialDepositUSD, req.Currency)
	if err != nil {
		return Account{}, err
	}
	deposit := M(req.InitialDeposit, req.Currency)
	if deposit.GreaterThan(limit) {
		return Account{}, fmt.Errorf("initial deposit above %s: %w", limit, ErrThreshold)
	}
	if err := validatePIN(req.PIN); err != nil {
		return Account{}, err
	}
	if strings.TrimSpace(req.SecurityQuestion) == "" || req.SecurityAnswer == "" {
		return Account{}, fmt.Errorf("security question and answer are required: %w", ErrValidation)
	}

	pinHash, err := hashSecret(req.PIN)
	if err != nil {
		return Account{}, err
	}
	answerHash, err := hashSecret(req.SecurityAnswer)
	if err != nil {
		return Account{}, err
	}
	number, err := newAccountNumber(func(n string) bool {
		for _, a := range l.accounts {
			if a.Number == n {
				return true
			}
		}
		return false
	})
	if err != nil {
		return Account{}, err
	}
	usd, err := Convert(deposit, "USD")
	if err != nil {
		return Account{}, err
	}

	id := fmt.Sprintf("%04d", len(l.accounts)+1)
	a := &Account{
		ID:                 id,
		Number:             number,
		Name:               req.Name,
		Currency:           req.Currency,
		Type:               req.Type,
		Balance:            deposit,
		USDBalance:         usd,
		PINHash:            pinHash,
		SecurityQuestion:   req.SecurityQuestion,
		SecurityAnswerHash: answerHash,
		LoansOutstanding:   M(0, req.Currency),
		Active:             true,
		CreatedAt:          time.Now(),
		Transactions:       []Transaction{newTx(TxDeposit, deposit, time.Now())},
	}
	l.accounts[id] = a
	if err := l.persist(); err != nil {
		delete(l.accounts, id)
		return Account{}, err
	}
	return a.clone(), nil
}

// Deposit credits an amount to the account.
func (l *Ledger) Deposit(id string, amount decimal.Decimal) (Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, err := l.activeAccount(id)
	if err != nil {
		return Account{}, err
	}
	if !amount.IsPositive() {
		return Account{}, fmt.Errorf("deposit amount must be positive, got %s: %w", amount, ErrValidation)
	}
	if amount.GreaterThan(maxDeposit) {
		return Account{}, fmt.Errorf("deposit above %s %s: %w", maxDeposit, a.Currency, ErrThreshold)
	}

	credit := M(amount, a.Currency)
	prev := *a
	a.Balance = a.Balance.Add(credit)
	a.Transactions = append(a.Transactions, newTx(TxDeposit, credit, time.Now()))
	if err := l.syncUSD(a); err != nil {
		*a = prev
		return Account{}, err
	}
	if err := l.persist(); err != nil {
		*a = prev
		return Account{}, err
	}
	return a.clone(), nil
}

// WithdrawResult reports the outcome of a withdrawal attempt. LowBalance is
// raised when the remaining balance is under 500 in the account currency; it
// is reported on failed attempts too.
type WithdrawResult struct {
	Account    Account
	LowBalance bool
}

// Withdraw debits an amount from the account. Withdrawing the exact balance is
// allowed; anything above it fails with ErrInsufficientFunds and leaves the
// balance unchanged. The low-balance check runs after every attempt,
// successful or not.
func (l *Ledger) Withdraw(id string, amount decimal.Decimal) (WithdrawResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, err := l.activeAccount(id)
	if err != nil {
		return WithdrawResult{}, err
	}
	if !amount.IsPositive() {
		return l.withdrawOutcome(a), fmt.Errorf("withdrawal amount must be positive, got %s: %w", amount, ErrValidation)
	}
	debit := M(amount, a.Currency)
	if debit.GreaterThan(a.Balance) {
		return l.withdrawOutcome(a), fmt.Errorf("cannot withdraw %s, balance is %s: %w", debit, a.Balance, ErrInsufficientFunds)
	}

	prev := *a
	a.Balance = a.Balance.Sub(debit)
	a.Transactions = append(a.Transactions, newTx(TxWithdrawal, debit, time.Now()))
	if err := l.syncUSD(a); err != nil {
		*a = prev
		return WithdrawResult{}, err
	}
	if err := l.persist(); err != nil {
		*a = prev
		return WithdrawResult{}, err
	}
	return l.withdrawOutcome(a), nil
}

// withdrawOutcome runs the check that follows every withdrawal attempt: a
// zero balance forces the USD mirror to zero, and a balance under the
// low-balance threshold raises the signal to the caller.
func (l *Ledger) withdrawOutcome(a *Account) WithdrawResult {
	if a.Balance.IsZero() {
		a.USDBalance = M(0, "USD")
	}
	return WithdrawResult{
		Account:    a.clone(),
		LowBalance: a.Balance.Amount().LessThan(lowBalance),
	}
}

// TransferResult reports both sides of a completed transfer.
type TransferResult struct {
	Sender    Account
	Recipient Account
	Sent      Money // in the sender's currency
	Received  Money // converted into the recipient's currency
}

// Transfer moves an amount from one account to another, converting it into
// the recipient's currency. The two account mutations and the save are one
// atomic unit: a failed conversion aborts before any mutation, and a failed
// save rolls both accounts back. Both sides record the same timestamp and
// reference each other's account number.
func (l *Ledger) Transfer(senderID, recipientID string, amount decimal.Decimal) (TransferResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if senderID == recipientID {
		return TransferResult{}, fmt.Errorf("cannot transfer to the same account: %w", ErrValidation)
	}
	from, err := l.activeAccount(senderID)
	if err != nil {
		return TransferResult{}, err
	}
	to, err := l.activeAccount(recipientID)
	if err != nil {
		return TransferResult{}, err
	}
	if !amount.IsPositive() {
		return TransferResult{}, fmt.Errorf("transfer amount must be positive, got %s: %w", amount, ErrValidation)
	}
	sent := M(amount, from.Currency)
	if sent.GreaterThan(from.Balance) {
		return TransferResult{}, fmt.Errorf("cannot transfer %s, balance is %s: %w", sent, from.Balance, ErrInsufficientFunds)
	}
	// Convert before touching anything: a failed conversion must leave both
	// accounts untouched.
	received, err := Convert(sent, to.Currency)
	if err != nil {
		return TransferResult{}, err
	}

	now := time.Now()
	prevFrom, prevTo := *from, *to
	rollback := func() { *from = prevFrom; *to = prevTo }

	from.Balance = from.Balance.Sub(sent)
	to.Balance = to.Balance.Add(received)
	from.Transactions = append(from.Transactions, newTransferTx(TxTransferOut, sent, now, to.Number))
	to.Transactions = append(to.Transactions, newTransferTx(TxTransferIn, received, now, from.Number))
	if err := l.syncUSD(from); err != nil {
		rollback()
		return TransferResult{}, err
	}
	if err := l.syncUSD(to); err != nil {
		rollback()
		return TransferResult{}, err
	}
	if err := l.persist(); err != nil {
		rollback()
		return TransferResult{}, err
	}
	return TransferResult{Sender: from.clone(), Recipient: to.clone(), Sent: sent, Received: received}, nil
}

// ApplyInterest credits one year of interest on the current balance, 4% for
// savings and 2% for checking, rounded to 2 decimals. It returns the credited
// amount.
func (l *Ledger) ApplyInterest(id string) (Money, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, err := l.activeAccount(id)
	if err != nil {
		return Money{}, err
	}
	interest := M(a.Balance.Amount().Mul(a.Type.interestRate()), a.Currency).Round2()

	prev := *a
	a.Balance = a.Balance.Add(interest)
	a.Transactions = append(a.Transactions, newTx(TxInterest, interest, time.Now()))
	if err := l.syncUSD(a); err != nil {
		*a = prev
		return Money{}, err
	}
	if err := l.persist(); err != nil {
		*a = prev
		return Money{}, err
	}
	return interest, nil
}

// LoanResult reports a granted loan.
type LoanResult struct {
	Account      Account
	TotalPayable Money // principal with compound interest over the duration
}

// ApplyLoan credits a loan to the account. The principal is capped by the
// account type (100,000 USD-equivalent for savings, 10,000,000 for checking)
// and refused entirely once outstanding loans reach the credit limit. The
// total payable compounds at 5% per year and is added to the outstanding
// loans, while only the principal is credited to the balance.
func (l *Ledger) ApplyLoan(id string, amount decimal.Decimal, durationYears int) (LoanResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, err := l.activeAccount(id)
	if err != nil {
		return LoanResult{}, err
	}
	if !amount.IsPositive() {
		return LoanResult{}, fmt.Errorf("loan amount must be positive, got %s: %w", amount, ErrValidation)
	}
	if durationYears <= 0 {
		return LoanResult{}, fmt.Errorf("loan duration must be at least one year, got %d: %w", durationYears, ErrValidation)
	}
	limit, err := Convert(loanLimitUSD, a.Currency)
	if err != nil {
		return LoanResult{}, err
	}
	if a.LoansOutstanding.GreaterThanOrEqual(limit) {
		return LoanResult{}, fmt.Errorf("outstanding loans are %s: %w", a.LoansOutstanding, ErrLoanLimit)
	}
	maxLoan, err := Convert(M(a.Type.loanCapUSD(), "USD"), a.Currency)
	if err != nil {
		return LoanResult{}, err
	}
	principal := M(amount, a.Currency)
	if principal.GreaterThan(maxLoan) {
		return LoanResult{}, fmt.Errorf("loan above the %s credit limit of %s: %w", a.Type, maxLoan, ErrThreshold)
	}
	growth, err := loanGrowth.PowInt32(int32(durationYears))
	if err != nil {
		return LoanResult{}, fmt.Errorf("could not compute the loan schedule: %w", err)
	}
	total := M(amount.Mul(growth).Round(2), a.Currency)

	prev := *a
	a.LoansOutstanding = a.LoansOutstanding.Add(total)
	a.Balance = a.Balance.Add(principal)
	a.Transactions = append(a.Transactions, newTx(TxLoan, principal, time.Now()))
	if err := l.syncUSD(a); err != nil {
		*a = prev
		return LoanResult{}, err
	}
	if err := l.persist(); err != nil {
		*a = prev
		return LoanResult{}, err
	}
	return LoanResult{Account: a.clone(), TotalPayable: total}, nil
}

// PayLoan pays an amount back on the outstanding loans. Both the outstanding
// total and the balance decrease by the payment.
func (l *Ledger) PayLoan(id string, payment decimal.Decimal) (Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, err := l.activeAccount(id)
	if err != nil {
		return Account{}, err
	}
	if !payment.IsPositive() {
		return Account{}, fmt.Errorf("loan payment must be positive, got %s: %w", payment, ErrValidation)
	}
	amount := M(payment, a.Currency)
	if amount.GreaterThan(a.LoansOutstanding) {
		return Account{}, fmt.Errorf("payment of %s exceeds outstanding loans of %s: %w", amount, a.LoansOutstanding, ErrLoanOverpayment)
	}

	prev := *a
	a.LoansOutstanding = a.LoansOutstanding.Sub(amount)
	a.Balance = a.Balance.Sub(amount)
	a.Transactions = append(a.Transactions, newTx(TxLoanPayment, amount, time.Now()))
	if err := l.syncUSD(a); err != nil {
		*a = prev
		return Account{}, err
	}
	if err := l.persist(); err != nil {
		*a = prev
		return Account{}, err
	}
	return a.clone(), nil
}

// Deactivate retires an account. The balance is retained and read operations
// keep working, but no mutating operation is accepted afterwards. The caller
// must confirm explicitly; deactivation is terminal.
func (l *Ledger) Deactivate(id string, confirm bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, err := l.activeAccount(id)
	if err != nil {
		return err
	}
	if !confirm {
		return fmt.Errorf("deactivation requires explicit confirmation: %w", ErrValidation)
	}
	prev := *a
	a.Active = false
	if err := l.persist(); err != nil {
		*a = prev
		return err
	}
	return nil
}

// Account returns a copy of the account. Reads work on inactive accounts too.
func (l *Ledger) Account(id string) (Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, err := l.get(id)
	if err != nil {
		return Account{}, err
	}
	return a.clone(), nil
}

// Accounts returns copies of all accounts, sorted by id.
func (l *Ledger) Accounts() []Account {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Account, 0, len(l.accounts))
	for _, a := range l.accounts {
		out = append(out, a.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Transactions returns a copy of the account's history, in append order.
func (l *Ledger) Transactions(id string) ([]Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, err := l.get(id)
	if err != nil {
		return nil, err
	}
	out := make([]Transaction, len(a.Transactions))
	copy(out, a.Transactions)
	return out, nil
}

// setOTP stores the account's pending one-time code and persists it.
func (l *Ledger) setOTP(id string, code *string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, err := l.activeAccount(id)
	if err != nil {
		return err
	}
	prev := a.OTP
	a.OTP = code
	if err := l.persist(); err != nil {
		a.OTP = prev
		return err
	}
	return nil
}

// setPINHash replaces the account's PIN hash and persists it.
func (l *Ledger) setPINHash(id, hash string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, err := l.activeAccount(id)
	if err != nil {
		return err
	}
	prev := a.PINHash
	a.PINHash = hash
	if err := l.persist(); err != nil {
		a.PINHash = prev
		return err
	}
	return nil
}

func (l *Ledger) get(id string) (*Account, error) {
	a, ok := l.accounts[id]
	if !ok {
		return nil, fmt.Errorf("no account with id %q: %w", id, ErrAccountNotFound)
	}
	return a, nil
}

func (l *Ledger) activeAccount(id string) (*Account, error) {
	a, err := l.get(id)
	if err != nil {
		return nil, err
	}
	if !a.Active {
		return nil, fmt.Errorf("account %s: %w", id, ErrAccountInactive)
	}
	return a, nil
}

// syncUSD recomputes the USD mirror from the balance. The mirror is never
// adjusted on its own.
func (l *Ledger) syncUSD(a *Account) error {
	usd, err := Convert(a.Balance, "USD")
	if err != nil {
		return err
	}
	a.USDBalance = usd
	return nil
}

// persist saves the whole collection, retrying once before giving up. The
// caller rolls its mutation back when persist fails.
func (l *Ledger) persist() error {
	err := l.store.Save(l.accounts)
	if err == nil {
		return nil
	}
	log.Printf("saving accounts failed, retrying once: %v", err)
	if err = l.store.Save(l.accounts); err == nil {
		return nil
	}
	log.Printf("saving accounts failed again, durability degraded: %v", err)
	if errors.Is(err, ErrPersistence) {
		return err
	}
	return fmt.Errorf("%v: %w", err, ErrPersistence)
}
