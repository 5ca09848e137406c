package arb

import (
	"testing"

	arberrors "github.com/sentra-lang/arbprec/internal/errors"
)

func mustSet(t *testing.T, s string) *Arb {
	t.Helper()
	a := New()
	if err := a.Set(s); err != nil {
		t.Fatalf("Set(%q) failed: %v", s, err)
	}
	return a
}

func TestSetSimpleDecimal(t *testing.T) {
	a := mustSet(t, "1.5")
	if got := a.String(); got != "1.5" {
		t.Fatalf("got %s, want 1.5", got)
	}
}

func TestAddDecimals(t *testing.T) {
	a := mustSet(t, "1.5")
	b := mustSet(t, "2.25")
	if err := a.Add(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := a.String(); got != "3.75" {
		t.Fatalf("got %s, want 3.75", got)
	}
}

func TestDivNonFixedStoresReducedFraction(t *testing.T) {
	one := mustSet(t, "1")
	three := mustSet(t, "3")
	if err := one.Div(three); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := one.Numerator().String(); got != "1" {
		t.Fatalf("numerator = %s, want 1", got)
	}
	if got := one.Denominator().String(); got != "3" {
		t.Fatalf("denominator = %s, want 3", got)
	}
}

func TestDivFixedModeTruncates(t *testing.T) {
	a, err := NewFixed(6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := a.Set("1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	three, err := NewFixed(6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := three.Set("3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := a.Div(three); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := a.Numerator().String(); got != "333333" {
		t.Fatalf("numerator = %s, want 333333", got)
	}
	if got := a.Denominator().String(); got != "1000000" {
		t.Fatalf("denominator = %s, want 1000000", got)
	}
}

func TestDivByZero(t *testing.T) {
	a := mustSet(t, "5")
	z := mustSet(t, "0")
	if err := a.Div(z); !arberrors.Is(err, arberrors.DivByZero) {
		t.Fatalf("expected DivByZero, got %v", err)
	}
}

func TestMulSigned(t *testing.T) {
	a := mustSet(t, "-2.5")
	b := mustSet(t, "4")
	if err := a.Mul(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := a.String(); got != "-10" {
		t.Fatalf("got %s, want -10", got)
	}
}

func TestExponentForm(t *testing.T) {
	a := mustSet(t, "1.5e2")
	if got := a.String(); got != "150" {
		t.Fatalf("got %s, want 150", got)
	}
}

func TestNegativeExponentForm(t *testing.T) {
	a := mustSet(t, "15e-2")
	if got := a.String(); got != "0.15" {
		t.Fatalf("got %s, want 0.15", got)
	}
}

func TestBadFormatDoubleDot(t *testing.T) {
	a := New()
	if err := a.Set("1.2.3"); !arberrors.Is(err, arberrors.BadFormat) {
		t.Fatalf("expected BadFormat, got %v", err)
	}
}

func TestBadFormatMisplacedSign(t *testing.T) {
	a := New()
	if err := a.Set("1+2"); !arberrors.Is(err, arberrors.BadFormat) {
		t.Fatalf("expected BadFormat, got %v", err)
	}
}

func TestCompare(t *testing.T) {
	a := mustSet(t, "1.1")
	b := mustSet(t, "1.10")
	if !a.Eq(b) {
		t.Fatalf("1.1 should equal 1.10")
	}
	c := mustSet(t, "1.2")
	if !a.Lt(c) {
		t.Fatalf("1.1 should be less than 1.2")
	}
}

func TestZeroCanonicalizesPositive(t *testing.T) {
	a := mustSet(t, "-0")
	if a.IsNeg() {
		t.Fatalf("-0 should canonicalize to non-negative")
	}
}

func TestFormatIntegerAndFraction(t *testing.T) {
	a := mustSet(t, "3.25")
	out, err := a.Format("%i.%f")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "3.25" {
		t.Fatalf("got %s, want 3.25", out)
	}
}

func TestFormatLiteralPercent(t *testing.T) {
	a := mustSet(t, "50")
	out, err := a.Format("%i%%")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "50%" {
		t.Fatalf("got %s, want 50%%", out)
	}
}
