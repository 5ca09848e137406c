// Package basecodec implements the stateless little-endian digit-sequence
// routines spec.md §4.2 describes: trimming insignificant zeros, schoolbook
// long division of a digit string by a single divisor, and base conversion
// built on top of repeated long division. UBigInt builds its string <->
// limb-array conversions entirely out of these routines.
//
// Every digit here is a uint64 value less than the active base; the
// "running two-digit register" spec.md describes for long_div_in_place is
// implemented literally with math/bits' 128-bit-aware Mul64/Add64/Div64,
// which is exactly the double-width register the algorithm needs and the
// reason this package reaches for math/bits instead of hand-rolled carry
// arithmetic.
package basecodec

import (
	"math/bits"

	arberrors "github.com/sentra-lang/arbprec/internal/errors"
)

// MaxSafeBase is the largest base this package's routines will accept. The
// original C++ implementation bounded this by the native digit width
// because its long division accumulated a rough divisor with plain
// multiplication; this port instead maintains the "running two-digit
// register" with math/bits' 128-bit-aware Mul64/Add64/Div64, which never
// overflows for any pair of uint64 operands. The ceiling is kept anyway,
// at UBigInt's own internal limb base (2^32), both to give the spec's
// MinBase/MaxBase failure modes something to mean and because no caller of
// this module ever needs a base beyond that.
const MaxSafeBase = 1 << 32

// TrimZerosFront removes the insignificant (most-significant, i.e.
// highest-index in this little-endian slice) zero digits from *seq in
// place.
func TrimZerosFront(seq *[]uint64) {
	s := *seq
	n := len(s)
	for n > 0 && s[n-1] == 0 {
		n--
	}
	*seq = s[:n]
}

// TrimZerosBack removes the insignificant (least-significant, i.e.
// lowest-index) zero digits from *seq in place. Used, for example, to drop
// trailing zeros from a fractional digit run before it is concatenated into
// a number's digit string.
func TrimZerosBack(seq *[]uint64) {
	s := *seq
	i := 0
	for i < len(s) && s[i] == 0 {
		i++
	}
	*seq = s[i:]
}

func checkBase(base uint64) error {
	if base < 2 {
		return arberrors.New(arberrors.MinBase, "base must be at least 2")
	}
	if base > MaxSafeBase {
		return arberrors.New(arberrors.MaxBase, "base exceeds the maximum safe base for this limb width")
	}
	return nil
}

// LongDivInPlace treats *dividend as a little-endian sequence of digits in
// base, divides it by divisor, replaces *dividend with the quotient, and
// returns the remainder. Any nonzero uint64 divisor is accepted, including
// one at or above base^2: the two-digit register is 128 bits wide, so the
// remainder:digit pair always divides without overflow.
func LongDivInPlace(dividend *[]uint64, divisor, base uint64) (uint64, error) {
	if err := checkBase(base); err != nil {
		return 0, err
	}
	if divisor == 0 {
		return 0, arberrors.New(arberrors.DivByZero, "long division by zero")
	}

	d := *dividend
	quotient := make([]uint64, len(d))
	var remainder uint64

	// Walk from the most-significant digit down, maintaining a running
	// two-digit register (remainder:digit) that is divided by divisor at
	// each step; math/bits.Div64 performs that 128-by-64 division exactly.
	for i := len(d) - 1; i >= 0; i-- {
		digit := d[i]
		if digit >= base {
			return 0, arberrors.New(arberrors.DigitOverflow, "digit exceeds the given base")
		}
		hi, lo := bits.Mul64(remainder, base)
		lo2, carry := bits.Add64(lo, digit, 0)
		hi2 := hi + carry
		if hi2 >= divisor {
			// divisor did not fit in the two-digit register as required.
			return 0, arberrors.New(arberrors.DigitOverflow, "divisor too large for a two-digit register in this base")
		}
		q, r := bits.Div64(hi2, lo2, divisor)
		quotient[i] = q
		remainder = r
	}

	TrimZerosFront(&quotient)
	*dividend = quotient
	return remainder, nil
}

// BaseConvert converts src (little-endian, base srcBase) into a new
// little-endian sequence in dstBase, by repeatedly dividing a working copy
// of src by dstBase (expressed in srcBase) and appending the remainder,
// until the working copy is empty.
func BaseConvert(src []uint64, srcBase, dstBase uint64) ([]uint64, error) {
	if err := checkBase(srcBase); err != nil {
		return nil, err
	}
	if err := checkBase(dstBase); err != nil {
		return nil, err
	}

	work := append([]uint64(nil), src...)
	TrimZerosFront(&work)

	var dst []uint64
	for len(work) > 0 {
		rem, err := LongDivInPlace(&work, dstBase, srcBase)
		if err != nil {
			return nil, err
		}
		dst = append(dst, rem)
	}
	return dst, nil
}
