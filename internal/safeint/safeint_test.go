package safeint

import "testing"

import arberrors "github.com/sentra-lang/arbprec/internal/errors"

func TestAddOverflow(t *testing.T) {
	a := Of[uint8](250)
	b := Of[uint8](10)
	if _, err := a.Add(b); !arberrors.Is(err, arberrors.Overflow) {
		t.Fatalf("expected Overflow, got %v", err)
	}
}

func TestAddOK(t *testing.T) {
	a := Of[int32](100)
	b := Of[int32](27)
	r, err := a.Add(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Value() != 127 {
		t.Fatalf("expected 127, got %d", r.Value())
	}
}

func TestSubNegativeUnsigned(t *testing.T) {
	a := Of[uint32](5)
	b := Of[uint32](10)
	if _, err := a.Sub(b); !arberrors.Is(err, arberrors.Overflow) {
		t.Fatalf("expected Overflow (unsigned underflow), got %v", err)
	}
}

func TestDivByZero(t *testing.T) {
	a := Of[int64](10)
	z := Of[int64](0)
	if _, err := a.Div(z); !arberrors.Is(err, arberrors.DivByZero) {
		t.Fatalf("expected DivByZero, got %v", err)
	}
	if _, err := a.Mod(z); !arberrors.Is(err, arberrors.DivByZero) {
		t.Fatalf("expected DivByZero, got %v", err)
	}
}

func TestNegMinOverflow(t *testing.T) {
	a := Of[int8](Min[int8]())
	if _, err := a.Neg(); !arberrors.Is(err, arberrors.Overflow) {
		t.Fatalf("expected Overflow negating minimum value, got %v", err)
	}
}

func TestConvertSignedToUnsignedNegative(t *testing.T) {
	a := Of[int32](-1)
	if _, err := Convert[int32, uint32](a); !arberrors.Is(err, arberrors.Overflow) {
		t.Fatalf("expected Overflow converting negative to unsigned, got %v", err)
	}
}

func TestConvertNarrowing(t *testing.T) {
	a := Of[int64](300)
	if _, err := Convert[int64, uint8](a); !arberrors.Is(err, arberrors.Overflow) {
		t.Fatalf("expected Overflow narrowing 300 into uint8, got %v", err)
	}
	b := Of[int64](200)
	r, err := Convert[int64, uint8](b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Value() != 200 {
		t.Fatalf("expected 200, got %d", r.Value())
	}
}

func TestMulOverflow(t *testing.T) {
	a := Of[uint16](1000)
	b := Of[uint16](1000)
	if _, err := a.Mul(b); !arberrors.Is(err, arberrors.Overflow) {
		t.Fatalf("expected Overflow, got %v", err)
	}
}

func TestBoundsRoundTrip(t *testing.T) {
	if Max[uint8]() != 255 {
		t.Fatalf("Max[uint8]() = %d, want 255", Max[uint8]())
	}
	if Min[int8]() != -128 || Max[int8]() != 127 {
		t.Fatalf("int8 bounds wrong: [%d,%d]", Min[int8](), Max[int8]())
	}
	if Min[uint64]() != 0 {
		t.Fatalf("Min[uint64]() != 0")
	}
}
