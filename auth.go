package bankbook

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

const maxPINAttempts = 3

// otpConsumed marks a code that verified successfully. It can never collide
// with a live code, those are always 6 digits.
const otpConsumed = "used"

var otpSpan = big.NewInt(1_000_000)

// Guard enforces the authentication rules of the book: PIN checks with a
// per-session attempt budget, one-time codes for sensitive operations, and
// PIN recovery through the security question.
type Guard struct {
	ledger   *Ledger
	failures map[string]int // PIN failures per account id, this session only
}

func NewGuard(l *Ledger) *Guard {
	return &Guard{ledger: l, failures: make(map[string]int)}
}

// AuthenticatePIN checks the account's PIN. After three failed attempts the
// account stays locked for the rest of the session, even if the right PIN is
// presented afterwards. A successful check resets the budget.
func (g *Guard) AuthenticatePIN(id, pin string) error {
	a, err := g.ledger.Account(id)
	if err != nil {
		return err
	}
	if !a.Active {
		return fmt.Errorf("account %s: %w", id, ErrAccountInactive)
	}
	if g.failures[id] >= maxPINAttempts {
		return fmt.Errorf("too many failed attempts for account %s: %w", id, ErrAuthFailure)
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PINHash), []byte(pin)) != nil {
		g.failures[id]++
		left := maxPINAttempts - g.failures[id]
		if left == 0 {
			return fmt.Errorf("wrong pin, account %s is locked for this session: %w", id, ErrAuthFailure)
		}
		return fmt.Errorf("wrong pin, %d attempts left: %w", left, ErrAuthFailure)
	}
	g.failures[id] = 0
	return nil
}

// IssueOTP draws a fresh 6-digit one-time code, stores it on the account and
// returns it for delivery. Issuing a new code invalidates any pending one.
func (g *Guard) IssueOTP(id string) (string, error) {
	code, err := newOTP()
	if err != nil {
		return "", err
	}
	if err := g.ledger.setOTP(id, &code); err != nil {
		return "", err
	}
	return code, nil
}

// VerifyOTP checks a presented code against the pending one. A match consumes
// the code. A mismatch invalidates it and issues a replacement, returned
// alongside the error so the caller can deliver it.
func (g *Guard) VerifyOTP(id, code string) (string, error) {
	a, err := g.ledger.Account(id)
	if err != nil {
		return "", err
	}
	if a.OTP == nil || *a.OTP == otpConsumed {
		return "", fmt.Errorf("no code is pending for account %s: %w", id, ErrAuthFailure)
	}
	if code != *a.OTP {
		reissued, err := g.IssueOTP(id)
		if err != nil {
			return "", err
		}
		return reissued, fmt.Errorf("wrong code, a new one was issued: %w", ErrAuthFailure)
	}
	consumed := otpConsumed
	if err := g.ledger.setOTP(id, &consumed); err != nil {
		return "", err
	}
	return "", nil
}

// RecoverPIN resets the account's PIN after the security question is answered
// correctly. The answer check is case-sensitive. A successful reset also
// clears the session's failed-attempt budget.
func (g *Guard) RecoverPIN(id, answer, newPIN string) error {
	a, err := g.ledger.Account(id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(a.SecurityAnswerHash), []byte(answer)) != nil {
		return fmt.Errorf("wrong security answer: %w", ErrAuthFailure)
	}
	if err := validatePIN(newPIN); err != nil {
		return err
	}
	hash, err := hashSecret(newPIN)
	if err != nil {
		return err
	}
	if err := g.ledger.setPINHash(id, hash); err != nil {
		return err
	}
	delete(g.failures, id)
	return nil
}

func newOTP() (string, error) {
	n, err := rand.Int(rand.Reader, otpSpan)
	if err != nil {
		return "", fmt.Errorf("could not draw a one-time code: %w", err)
	}
	return fmt.Sprintf("%06d", n), nil
}

// validatePIN accepts exactly 4 decimal digits.
func validatePIN(pin string) error {
	if len(pin) != 4 {
		return fmt.Errorf("pin must be exactly 4 digits: %w", ErrValidation)
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return fmt.Errorf("pin must be exactly 4 digits: %w", ErrValidation)
		}
	}
	return nil
}

func hashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("could not hash the secret: %w", err)
	}
	return string(hash), nil
}
