// Package sbigint implements SBigInt, the arbitrary-precision signed
// integer of spec.md §4.4: a sign flag plus a ubigint.UBigInt magnitude.
// Every operation is grounded on DAC::ArbInt (original_source/ArbInt.cxx),
// which wraps DAC::UArbInt the same way: dispatch the magnitude op to the
// unsigned engine, then work out the sign of the result from the signs and
// relative magnitudes of the operands, exactly as schoolbook signed
// arithmetic is taught.
package sbigint

import (
	arberrors "github.com/sentra-lang/arbprec/internal/errors"
	"github.com/sentra-lang/arbprec/internal/ubigint"
)

// SBigInt is an arbitrary-precision signed integer. New returns a
// ready-to-use zero. The zero value holds no magnitude, so most methods
// dereference a nil pointer on it; Div accepts a zero-value SBigInt as its
// remainder destination.
type SBigInt struct {
	neg bool
	mag *ubigint.UBigInt
}

// New returns a new zero-valued SBigInt.
func New() *SBigInt { return &SBigInt{mag: ubigint.New()} }

// FromInt64 returns a new SBigInt holding v.
func FromInt64(v int64) *SBigInt {
	s := New()
	if v < 0 {
		s.neg = true
		s.mag.SetUint64(uint64(-v))
	} else {
		s.mag.SetUint64(uint64(v))
	}
	return s
}

// FromMagnitude builds a signed value directly from an unsigned magnitude
// and a sign flag; neg is ignored when mag is zero. mag is cloned, so the
// caller's value is never aliased.
func FromMagnitude(mag *ubigint.UBigInt, neg bool) *SBigInt {
	s := &SBigInt{neg: neg, mag: mag.Clone()}
	s.normalizeSign()
	return s
}

// Clone returns an independent copy of s.
func (s *SBigInt) Clone() *SBigInt {
	return &SBigInt{neg: s.neg, mag: s.mag.Clone()}
}

func (s *SBigInt) normalizeSign() {
	if s.mag.IsZero() {
		s.neg = false
	}
}

// IsZero reports whether s holds zero.
func (s *SBigInt) IsZero() bool { return s.mag.IsZero() }

// IsNeg reports whether s is strictly negative.
func (s *SBigInt) IsNeg() bool { return s.neg && !s.mag.IsZero() }

// IsOdd reports whether s is odd.
func (s *SBigInt) IsOdd() bool { return s.mag.IsOdd() }

// Magnitude returns the absolute value's unsigned magnitude. The returned
// value aliases s's internal state and must not be mutated by the caller.
func (s *SBigInt) Magnitude() *ubigint.UBigInt { return s.mag }

// Set parses number into s, honoring a single optional leading '+' or '-'
// before the magnitude (which follows ubigint.Set's own autobase rules).
func (s *SBigInt) Set(number string, autobase bool) error {
	neg := false
	rest := number
	if len(rest) > 0 && (rest[0] == '+' || rest[0] == '-') {
		neg = rest[0] == '-'
		rest = rest[1:]
	}
	mag := ubigint.New()
	if err := mag.Set(rest, autobase); err != nil {
		return err
	}
	s.mag = mag
	s.neg = neg
	s.normalizeSign()
	return nil
}

// String formats s in its magnitude's default base, with a leading '-' for
// negative values.
func (s *SBigInt) String() string {
	if s.IsNeg() {
		return "-" + s.mag.String()
	}
	return s.mag.String()
}

// ToString formats s in the given base (0 means the magnitude's default),
// with a leading '-' for negative values.
func (s *SBigInt) ToString(base uint64) (string, error) {
	str, err := s.mag.ToString(base)
	if err != nil {
		return "", err
	}
	if s.IsNeg() {
		return "-" + str, nil
	}
	return str, nil
}

// Neg sets s = -s.
func (s *SBigInt) Neg() *SBigInt {
	if !s.mag.IsZero() {
		s.neg = !s.neg
	}
	return s
}

// Abs sets s = |s|.
func (s *SBigInt) Abs() *SBigInt {
	s.neg = false
	return s
}

// Compare returns -1, 0, or 1 as s is less than, equal to, or greater than o.
func (s *SBigInt) Compare(o *SBigInt) int {
	switch {
	case s.IsNeg() && !o.IsNeg():
		return -1
	case !s.IsNeg() && o.IsNeg():
		return 1
	case !s.IsNeg():
		return s.mag.Compare(o.mag)
	default: // both negative: larger magnitude means smaller value
		return -s.mag.Compare(o.mag)
	}
}

func (s *SBigInt) Lt(o *SBigInt) bool { return s.Compare(o) < 0 }
func (s *SBigInt) Gt(o *SBigInt) bool { return s.Compare(o) > 0 }
func (s *SBigInt) Le(o *SBigInt) bool { return s.Compare(o) <= 0 }
func (s *SBigInt) Ge(o *SBigInt) bool { return s.Compare(o) >= 0 }
func (s *SBigInt) Eq(o *SBigInt) bool { return s.Compare(o) == 0 }

// Add sets s = s + o.
func (s *SBigInt) Add(o *SBigInt) error {
	result, err := addSigned(s.neg, s.mag, o.neg, o.mag)
	if err != nil {
		return err
	}
	s.neg, s.mag = result.neg, result.mag
	s.normalizeSign()
	return nil
}

// Sub sets s = s - o.
func (s *SBigInt) Sub(o *SBigInt) error {
	result, err := addSigned(s.neg, s.mag, !o.neg, o.mag)
	if err != nil {
		return err
	}
	s.neg, s.mag = result.neg, result.mag
	s.normalizeSign()
	return nil
}

// addSigned implements signed addition by dispatching to unsigned add or
// subtract depending on whether the operand signs agree, per
// original_source ArbInt.cxx's op_add/op_sub sign-dispatch table.
func addSigned(aNeg bool, aMag *ubigint.UBigInt, bNeg bool, bMag *ubigint.UBigInt) (*SBigInt, error) {
	if aNeg == bNeg {
		sum := aMag.Clone()
		if err := sum.Add(bMag); err != nil {
			return nil, err
		}
		return &SBigInt{neg: aNeg, mag: sum}, nil
	}
	// Opposite signs: subtract the smaller magnitude from the larger, and
	// the result takes the sign of whichever operand had the larger
	// magnitude.
	if aMag.Ge(bMag) {
		diff := aMag.Clone()
		if err := diff.Sub(bMag); err != nil {
			return nil, err
		}
		return &SBigInt{neg: aNeg, mag: diff}, nil
	}
	diff := bMag.Clone()
	if err := diff.Sub(aMag); err != nil {
		return nil, err
	}
	return &SBigInt{neg: bNeg, mag: diff}, nil
}

// Mul sets s = s * o.
func (s *SBigInt) Mul(o *SBigInt) error {
	mag := s.mag.Clone()
	if err := mag.Mul(o.mag); err != nil {
		return err
	}
	s.mag = mag
	s.neg = s.neg != o.neg
	s.normalizeSign()
	return nil
}

// Div sets s = s / o (truncated toward zero), and, if remainder is
// non-nil, sets it to s mod o. Raises DivByZero if o is zero.
func (s *SBigInt) Div(o *SBigInt, remainder *SBigInt) error {
	var rem ubigint.UBigInt
	q := s.mag.Clone()
	if err := q.Div(o.mag, &rem); err != nil {
		return err
	}
	dividendNeg := s.neg
	quotientNeg := s.neg != o.neg
	s.mag = q
	s.neg = quotientNeg
	s.normalizeSign()
	if remainder != nil {
		remainder.mag = &rem
		// Truncated (C-style) division: the remainder's sign follows the
		// dividend, never the divisor or the quotient.
		remainder.neg = dividendNeg
		remainder.normalizeSign()
	}
	return nil
}

// Mod sets s = s mod o, with the remainder's sign following the dividend
// (C-style truncated division), per spec.md §4.4. Raises DivByZero if o
// is zero.
func (s *SBigInt) Mod(o *SBigInt) error {
	dividendNeg := s.neg
	var rem ubigint.UBigInt
	q := s.mag.Clone()
	if err := q.Div(o.mag, &rem); err != nil {
		return err
	}
	s.mag = &rem
	if rem.IsZero() {
		s.neg = false
	} else {
		s.neg = dividendNeg
	}
	return nil
}

// Pow returns a new SBigInt equal to s raised to the non-negative power
// exp. A negative base raised to an odd exponent yields a negative result.
func (s *SBigInt) Pow(exp *SBigInt) (*SBigInt, error) {
	if exp.IsNeg() {
		return nil, arberrors.New(arberrors.Negative, "negative exponents are not supported")
	}
	mag, err := s.mag.Pow(exp.mag)
	if err != nil {
		return nil, err
	}
	neg := s.neg && exp.mag.IsOdd()
	r := &SBigInt{neg: neg, mag: mag}
	r.normalizeSign()
	return r, nil
}

// Root computes the integer n-th root of s. An even root of a negative
// value raises Negative (no imaginary results); an odd root of a negative
// value is itself negative, per the real-valued convention spec.md §4.4
// describes.
func (s *SBigInt) Root(n uint64) (root, divisor, remainder *SBigInt, err error) {
	if s.IsNeg() && n%2 == 0 {
		return nil, nil, nil, arberrors.New(arberrors.Negative, "even root of a negative number is not real")
	}
	rMag, dMag, remMag, rerr := s.mag.Root(n)
	if rerr != nil {
		return nil, nil, nil, rerr
	}
	neg := s.IsNeg()
	root = &SBigInt{neg: neg, mag: rMag}
	root.normalizeSign()
	divisor = &SBigInt{mag: dMag}
	remainder = &SBigInt{neg: neg, mag: remMag}
	remainder.normalizeSign()
	return root, divisor, remainder, nil
}

// Shl sets s = s << bits. The sign is unaffected.
func (s *SBigInt) Shl(bits uint64) error { return s.mag.Shl(bits) }

// Shr sets s = s >> bits. The sign is unaffected.
func (s *SBigInt) Shr(bits uint64) error { return s.mag.Shr(bits) }
