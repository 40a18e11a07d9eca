package bankbook

import (
	"errors"
	"testing"
)

func TestAuthenticatePIN(t *testing.T) {
	l, _ := newTestLedger(t)
	a := create(t, l, "USD", Savings, "100")
	g := NewGuard(l)

	if err := g.AuthenticatePIN(a.ID, "0000"); !errors.Is(err, ErrAuthFailure) {
		t.Errorf("wrong pin: err = %v, want ErrAuthFailure", err)
	}
	if err := g.AuthenticatePIN(a.ID, "1234"); err != nil {
		t.Errorf("right pin after one failure: %v", err)
	}
	if err := g.AuthenticatePIN(a.ID, "9999"); !errors.Is(err, ErrAuthFailure) {
		t.Errorf("err = %v, want ErrAuthFailure", err)
	}
}

func TestAuthenticatePINLocksAfterThree(t *testing.T) {
	l, _ := newTestLedger(t)
	a := create(t, l, "USD", Savings, "100")
	g := NewGuard(l)

	for i := 0; i < 3; i++ {
		if err := g.AuthenticatePIN(a.ID, "0000"); !errors.Is(err, ErrAuthFailure) {
			t.Fatalf("attempt %d: err = %v, want ErrAuthFailure", i+1, err)
		}
	}
	// the right pin no longer helps this session
	if err := g.AuthenticatePIN(a.ID, "1234"); !errors.Is(err, ErrAuthFailure) {
		t.Errorf("locked account accepted the right pin: %v", err)
	}

	// a new session starts with a fresh budget
	if err := NewGuard(l).AuthenticatePIN(a.ID, "1234"); err != nil {
		t.Errorf("fresh session refused the right pin: %v", err)
	}
}

func TestOTPLifecycle(t *testing.T) {
	l, _ := newTestLedger(t)
	a := create(t, l, "USD", Savings, "100")
	g := NewGuard(l)

	// nothing pending yet
	if _, err := g.VerifyOTP(a.ID, "123456"); !errors.Is(err, ErrAuthFailure) {
		t.Errorf("verify with nothing pending: err = %v, want ErrAuthFailure", err)
	}

	code, err := g.IssueOTP(a.ID)
	if err != nil {
		t.Fatalf("IssueOTP: %v", err)
	}
	if len(code) != 6 {
		t.Errorf("code %q is not 6 digits", code)
	}
	if _, err := g.VerifyOTP(a.ID, code); err != nil {
		t.Fatalf("VerifyOTP with the right code: %v", err)
	}
	// the code is consumed, it cannot verify twice
	if _, err := g.VerifyOTP(a.ID, code); !errors.Is(err, ErrAuthFailure) {
		t.Errorf("consumed code verified again: %v", err)
	}
}

func TestOTPMismatchReissues(t *testing.T) {
	l, _ := newTestLedger(t)
	a := create(t, l, "USD", Savings, "100")
	g := NewGuard(l)

	code, err := g.IssueOTP(a.ID)
	if err != nil {
		t.Fatalf("IssueOTP: %v", err)
	}
	reissued, err := g.VerifyOTP(a.ID, "000000x")
	if !errors.Is(err, ErrAuthFailure) {
		t.Fatalf("wrong code: err = %v, want ErrAuthFailure", err)
	}
	if reissued == "" || reissued == code {
		t.Errorf("reissued code = %q, want a fresh one", reissued)
	}
	// the old code died with the mismatch
	if _, err := g.VerifyOTP(a.ID, code); err == nil {
		t.Error("stale code still verifies")
	}
	// the replacement works; mismatching again reissued once more, so chase it
	current, _ := l.Account(a.ID)
	if _, err := g.VerifyOTP(a.ID, *current.OTP); err != nil {
		t.Errorf("reissued code refused: %v", err)
	}
}

func TestIssueOTPReplacesPending(t *testing.T) {
	l, _ := newTestLedger(t)
	a := create(t, l, "USD", Savings, "100")
	g := NewGuard(l)

	first, err := g.IssueOTP(a.ID)
	if err != nil {
		t.Fatal(err)
	}
	second, err := g.IssueOTP(a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatalf("two draws produced the same code %q", first)
	}
	if _, err := g.VerifyOTP(a.ID, first); !errors.Is(err, ErrAuthFailure) {
		t.Errorf("replaced code still verifies: %v", err)
	}
}

func TestRecoverPIN(t *testing.T) {
	l, _ := newTestLedger(t)
	a := create(t, l, "USD", Savings, "100")
	g := NewGuard(l)

	if err := g.RecoverPIN(a.ID, "fluffy", "5678"); !errors.Is(err, ErrAuthFailure) {
		t.Errorf("wrong answer: err = %v, want ErrAuthFailure", err)
	}
	if err := g.RecoverPIN(a.ID, "rex", "56"); !errors.Is(err, ErrValidation) {
		t.Errorf("bad new pin: err = %v, want ErrValidation", err)
	}
	if err := g.RecoverPIN(a.ID, "rex", "5678"); err != nil {
		t.Fatalf("RecoverPIN: %v", err)
	}
	if err := g.AuthenticatePIN(a.ID, "1234"); !errors.Is(err, ErrAuthFailure) {
		t.Errorf("old pin still accepted: %v", err)
	}
	if err := g.AuthenticatePIN(a.ID, "5678"); err != nil {
		t.Errorf("new pin refused: %v", err)
	}
}

func TestRecoverPINUnlocksSession(t *testing.T) {
	l, _ := newTestLedger(t)
	a := create(t, l, "USD", Savings, "100")
	g := NewGuard(l)

	for i := 0; i < 3; i++ {
		g.AuthenticatePIN(a.ID, "0000")
	}
	if err := g.RecoverPIN(a.ID, "rex", "5678"); err != nil {
		t.Fatalf("RecoverPIN on a locked account: %v", err)
	}
	if err := g.AuthenticatePIN(a.ID, "5678"); err != nil {
		t.Errorf("recovered pin refused after lockout: %v", err)
	}
}
