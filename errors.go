package bankbook

import "errors"

// Domain errors returned by ledger and guard operations. They are all
// recoverable at the call site: no operation terminates the process on a
// domain error, and state is left unchanged unless documented otherwise.
// Callers match them with errors.Is; operations wrap them with context.
var (
	// ErrValidation covers malformed or out-of-range input.
	ErrValidation = errors.New("invalid input")

	// ErrUnsupportedCurrency is returned for currency codes outside the rate table.
	ErrUnsupportedCurrency = errors.New("unsupported currency")

	// ErrInsufficientFunds is returned when an amount exceeds the available balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrThreshold is returned when an amount exceeds the policy cap for the operation.
	ErrThreshold = errors.New("amount exceeds threshold")

	// ErrLoanLimit is returned when outstanding loans already reach the credit limit.
	ErrLoanLimit = errors.New("outstanding loans at credit limit")

	// ErrLoanOverpayment is returned when a payment exceeds the outstanding loans.
	ErrLoanOverpayment = errors.New("payment exceeds outstanding loans")

	// ErrAccountNotFound is returned for an unknown account id.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountInactive is returned when a deactivated account is asked to mutate.
	ErrAccountInactive = errors.New("account is inactive")

	// ErrAuthFailure covers failed PIN, OTP and security-answer checks.
	ErrAuthFailure = errors.New("authentication failed")

	// ErrPersistence is returned when the account collection could not be saved
	// or loaded. The triggering mutation is rolled back before it is returned.
	ErrPersistence = errors.New("could not persist accounts")

	// ErrNotEnoughData is returned when an account has no history to derive from.
	ErrNotEnoughData = errors.New("not enough data")
)
