package basecodec

import (
	"reflect"
	"testing"

	arberrors "github.com/sentra-lang/arbprec/internal/errors"
)

func TestTrimZerosFront(t *testing.T) {
	s := []uint64{1, 2, 0, 0}
	TrimZerosFront(&s)
	if !reflect.DeepEqual(s, []uint64{1, 2}) {
		t.Fatalf("got %v", s)
	}
}

func TestTrimZerosBack(t *testing.T) {
	s := []uint64{0, 0, 3, 4}
	TrimZerosBack(&s)
	if !reflect.DeepEqual(s, []uint64{3, 4}) {
		t.Fatalf("got %v", s)
	}
}

func TestLongDivInPlace(t *testing.T) {
	// 1234 (base 10, little-endian digits [4,3,2,1]) / 7 = 176 remainder 2
	d := []uint64{4, 3, 2, 1}
	rem, err := LongDivInPlace(&d, 7, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rem != 2 {
		t.Fatalf("remainder = %d, want 2", rem)
	}
	if !reflect.DeepEqual(d, []uint64{6, 7, 1}) { // 176 little-endian
		t.Fatalf("quotient = %v, want [6 7 1]", d)
	}
}

func TestLongDivInPlaceByOne(t *testing.T) {
	d := []uint64{5, 5, 5}
	rem, err := LongDivInPlace(&d, 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rem != 0 {
		t.Fatalf("remainder = %d, want 0", rem)
	}
	if !reflect.DeepEqual(d, []uint64{5, 5, 5}) {
		t.Fatalf("quotient = %v, want [5 5 5]", d)
	}
}

func TestLongDivInPlaceDivByZero(t *testing.T) {
	d := []uint64{1}
	if _, err := LongDivInPlace(&d, 0, 10); !arberrors.Is(err, arberrors.DivByZero) {
		t.Fatalf("expected DivByZero, got %v", err)
	}
}

func TestLongDivInPlaceBadBase(t *testing.T) {
	d := []uint64{1}
	if _, err := LongDivInPlace(&d, 1, 1); !arberrors.Is(err, arberrors.MinBase) {
		t.Fatalf("expected MinBase, got %v", err)
	}
}

func TestBaseConvertRoundTrip(t *testing.T) {
	// 255 in base 10 -> base 16 -> base 10
	d10 := []uint64{5, 5, 2} // 255 little-endian base 10
	d16, err := BaseConvert(d10, 10, 16)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(d16, []uint64{15, 15}) { // 0xFF little-endian
		t.Fatalf("base16 digits = %v, want [15 15]", d16)
	}
	back, err := BaseConvert(d16, 16, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(back, []uint64{5, 5, 2}) {
		t.Fatalf("round-trip = %v, want [5 5 2]", back)
	}
}

func TestBaseConvertEmpty(t *testing.T) {
	out, err := BaseConvert(nil, 10, 16)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty result, got %v", out)
	}
}

func TestBaseConvertOutOfRange(t *testing.T) {
	if _, err := BaseConvert([]uint64{1}, 1, 16); !arberrors.Is(err, arberrors.MinBase) {
		t.Fatalf("expected MinBase, got %v", err)
	}
}
