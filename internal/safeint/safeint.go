// Package safeint provides an overflow-checked wrapper around native
// integer types, grounded on the original ArbInt library's SafeInteger.hxx:
// every arithmetic operator between SafeInt values is checked at runtime.
// The arithmetic methods take SafeInt[T] operands only; a native value
// enters through Of (same type) or FromNative (checked conversion) before
// it can take part in arithmetic. Overflow raises Overflow;
// division or modulo by zero raises DivByZero. Cross-type conversion raises
// Overflow when the source value does not fit the destination type,
// implementing the closed relationship table of spec.md §4.1
// (SE_SE, SE_UE, SS_SL, SS_UL, SL_SS, SL_US, UE_UE, UE_SE, US_SL, US_UL,
// UL_SS, UL_US) without enumerating each cell by hand: the bounds of both
// types are computed generically and compared in a wider domain.
//
// That wider domain is math/big: spec.md §4.1 describes the check as
// "compute the result in a wider conceptual domain and range-check before
// assigning back", and big.Int is the standard library's conceptual
// wider domain. This is the one place in the module that reaches for
// math/big, and only for bounds arithmetic on native machine words — the
// arbitrary-precision engine itself (UBigInt) never uses it. See
// DESIGN.md for why no third-party library was a better fit here: every
// candidate in the retrieval pack that does bounds-checked native
// arithmetic is itself built on top of (or reimplements) exactly this.
package safeint

import (
	"math/big"
	"unsafe"

	arberrors "github.com/sentra-lang/arbprec/internal/errors"
)

// Integer is the set of native integer types SafeInt can wrap.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// SafeInt wraps a native integer of type T.
type SafeInt[T Integer] struct {
	val T
}

// Of constructs a SafeInt from a native value of the same type. This never
// fails, matching spec.md's "from T (never fails)".
func Of[T Integer](v T) SafeInt[T] { return SafeInt[T]{val: v} }

// Value returns the underlying native value.
func (s SafeInt[T]) Value() T { return s.val }

func isSigned[T Integer]() bool {
	var z T
	z--
	return z < 0
}

func bitSize[T Integer]() int {
	var z T
	return int(unsafe.Sizeof(z)) * 8
}

// Max returns the largest representable value of T.
func Max[T Integer]() T {
	if isSigned[T]() {
		bits := uint(bitSize[T]())
		return T(uint64(1)<<(bits-1) - 1)
	}
	var z T
	return ^z
}

// Min returns the smallest representable value of T.
func Min[T Integer]() T {
	if isSigned[T]() {
		return -Max[T]() - 1
	}
	var z T
	return z
}

func (s SafeInt[T]) big() *big.Int {
	if isSigned[T]() {
		return big.NewInt(int64(s.val))
	}
	return new(big.Int).SetUint64(uint64(s.val))
}

func boundsOf[T Integer]() (lo, hi *big.Int) {
	if isSigned[T]() {
		return big.NewInt(int64(Min[T]())), big.NewInt(int64(Max[T]()))
	}
	return big.NewInt(0), new(big.Int).SetUint64(uint64(Max[T]()))
}

func fromBig[T Integer](v *big.Int) (SafeInt[T], error) {
	lo, hi := boundsOf[T]()
	if v.Cmp(lo) < 0 || v.Cmp(hi) > 0 {
		return SafeInt[T]{}, arberrors.New(arberrors.Overflow, "value out of range for target type")
	}
	if isSigned[T]() {
		return SafeInt[T]{val: T(v.Int64())}, nil
	}
	return SafeInt[T]{val: T(v.Uint64())}, nil
}

// Convert performs a checked conversion from SafeInt[From] to SafeInt[To],
// implementing the closed relationship table of spec.md §4.1: the source is
// promoted to math/big, and the result is range-checked against To's bounds
// before being cast back.
func Convert[From Integer, To Integer](s SafeInt[From]) (SafeInt[To], error) {
	return fromBig[To](s.big())
}

// FromNative is a convenience wrapper equivalent to Convert, for building a
// SafeInt[T] out of a plain native value whose own type may differ from T.
func FromNative[From Integer, T Integer](v From) (SafeInt[T], error) {
	return Convert[From, T](Of(v))
}

// Add computes s+o, raising Overflow if the true sum does not fit in T.
func (s SafeInt[T]) Add(o SafeInt[T]) (SafeInt[T], error) {
	sum := new(big.Int).Add(s.big(), o.big())
	return fromBig[T](sum)
}

// Sub computes s-o, raising Overflow if the true difference does not fit in T.
func (s SafeInt[T]) Sub(o SafeInt[T]) (SafeInt[T], error) {
	diff := new(big.Int).Sub(s.big(), o.big())
	return fromBig[T](diff)
}

// Mul computes s*o, raising Overflow if the true product does not fit in T.
func (s SafeInt[T]) Mul(o SafeInt[T]) (SafeInt[T], error) {
	prod := new(big.Int).Mul(s.big(), o.big())
	return fromBig[T](prod)
}

// Div computes s/o (truncated toward zero), raising DivByZero if o is zero.
func (s SafeInt[T]) Div(o SafeInt[T]) (SafeInt[T], error) {
	if o.val == 0 {
		return SafeInt[T]{}, arberrors.New(arberrors.DivByZero, "division by zero")
	}
	q := new(big.Int).Quo(s.big(), o.big())
	return fromBig[T](q)
}

// Mod computes s%o (sign follows s, C-style truncated division), raising
// DivByZero if o is zero.
func (s SafeInt[T]) Mod(o SafeInt[T]) (SafeInt[T], error) {
	if o.val == 0 {
		return SafeInt[T]{}, arberrors.New(arberrors.DivByZero, "division by zero")
	}
	r := new(big.Int).Rem(s.big(), o.big())
	return fromBig[T](r)
}

// Neg computes -s, raising Overflow for the one case where negation
// overflows (T is signed and s holds T's minimum value).
func (s SafeInt[T]) Neg() (SafeInt[T], error) {
	n := new(big.Int).Neg(s.big())
	return fromBig[T](n)
}

// Inc returns s+1 with the same overflow semantics as Add.
func (s SafeInt[T]) Inc() (SafeInt[T], error) { return s.Add(Of[T](1)) }

// Dec returns s-1 with the same overflow semantics as Sub.
func (s SafeInt[T]) Dec() (SafeInt[T], error) { return s.Sub(Of[T](1)) }

// Cmp compares the underlying values: -1, 0, or 1.
func (s SafeInt[T]) Cmp(o SafeInt[T]) int {
	switch {
	case s.val < o.val:
		return -1
	case s.val > o.val:
		return 1
	default:
		return 0
	}
}

func (s SafeInt[T]) Lt(o SafeInt[T]) bool { return s.val < o.val }
func (s SafeInt[T]) Gt(o SafeInt[T]) bool { return s.val > o.val }
func (s SafeInt[T]) Eq(o SafeInt[T]) bool { return s.val == o.val }

// And, Or, Xor act on the underlying value without range checks, per
// spec.md §4.1 ("Comparison and bitwise: act on the underlying value
// without range checks beyond what their result types require").
func (s SafeInt[T]) And(o SafeInt[T]) SafeInt[T] { return SafeInt[T]{s.val & o.val} }
func (s SafeInt[T]) Or(o SafeInt[T]) SafeInt[T]  { return SafeInt[T]{s.val | o.val} }
func (s SafeInt[T]) Xor(o SafeInt[T]) SafeInt[T] { return SafeInt[T]{s.val ^ o.val} }
