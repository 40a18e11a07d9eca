package bankbook

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
)

// AccountType selects the interest rate and the loan cap of an account.
type AccountType string

const (
	Savings  AccountType = "savings"
	Checking AccountType = "checking"
)

// ParseAccountType parses a string into an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	switch AccountType(s) {
	case Savings:
		return Savings, nil
	case Checking:
		return Checking, nil
	default:
		return "", fmt.Errorf("unknown account type %q: %w", s, ErrValidation)
	}
}

// interestRate is the annual rate credited by ApplyInterest.
func (t AccountType) interestRate() decimal.Decimal {
	if t == Savings {
		return decimal.RequireFromString("0.04")
	}
	return decimal.RequireFromString("0.02")
}

// loanCapUSD is the maximum single loan, expressed in USD and converted into
// the account currency at check time.
func (t AccountType) loanCapUSD() int {
	if t == Savings {
		return 100_000
	}
	return 10_000_000
}

// Account is one bank-style account of the book.
//
// Balance and USDBalance observe a strict invariant: USDBalance is always the
// rate table's image of Balance, recomputed after every balance change, never
// adjusted on its own. PIN and security answer are stored as bcrypt hashes
// only. The transaction history is append-only.
type Account struct {
	ID                 string // zero-padded sequential id, assigned at creation, never reused
	Number             string // 11-digit display number, unique within the book
	Name               string
	Currency           string
	Type               AccountType
	Balance            Money
	USDBalance         Money
	PINHash            string
	SecurityQuestion   string
	SecurityAnswerHash string
	// OTP is nil when no code was ever issued, the live 6-digit code while one
	// is pending, and the consumed sentinel after a successful verification.
	OTP              *string
	LoansOutstanding Money
	Active           bool
	CreatedAt        time.Time
	Transactions     []Transaction
}

// clone returns a deep copy, so callers can never reach the book's own state.
func (a *Account) clone() Account {
	cp := *a
	cp.Transactions = make([]Transaction, len(a.Transactions))
	copy(cp.Transactions, a.Transactions)
	if a.OTP != nil {
		otp := *a.OTP
		cp.OTP = &otp
	}
	return cp
}

// Account numbers are 11 decimal digits, like the bank slips they mimic.
var (
	numberFloor = big.NewInt(10_000_000_000)
	numberSpan  = big.NewInt(90_000_000_000)
)

const maxNumberDraws = 100

// newAccountNumber draws a fresh account number, redrawing on collision with
// an already taken one.
func newAccountNumber(taken func(string) bool) (string, error) {
	for i := 0; i < maxNumberDraws; i++ {
		n, err := rand.Int(rand.Reader, numberSpan)
		if err != nil {
			return "", fmt.Errorf("could not draw an account number: %w", err)
		}
		number := n.Add(n, numberFloor).String()
		if !taken(number) {
			return number, nil
		}
	}
	// practically unreachable in an 11-digit space, but the loop must be bounded.
	return "", fmt.Errorf("could not find a free account number: %w", ErrValidation)
}
