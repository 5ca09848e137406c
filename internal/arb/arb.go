// Package arb implements Arb, the arbitrary-precision rational/fixed-point
// number of spec.md §4.5: a signed numerator (sbigint.SBigInt) over an
// unsigned denominator (ubigint.UBigInt), always kept either in lowest
// terms or pinned to a fixed denominator. Parsing, reduction, and the
// arithmetic operators all follow DAC::Arb (original_source/Arb.cxx) —
// Arb.cxx builds p/q over DAC::ArbInt/DAC::UArbInt the same way this
// package builds them over sbigint/ubigint.
package arb

import (
	"strings"
	"time"

	"github.com/ncruces/go-strftime"

	arberrors "github.com/sentra-lang/arbprec/internal/errors"
	"github.com/sentra-lang/arbprec/internal/sbigint"
	"github.com/sentra-lang/arbprec/internal/ubigint"
)

// DefaultMaxRadix bounds how many fractional digits the default string
// format emits for a non-terminating expansion (e.g. 1/3 in base 10).
const DefaultMaxRadix = 50

// Arb is an arbitrary-precision rational number p/q, q > 0, reduced to
// lowest terms unless the value is in fixed-point mode (q pinned to
// base^pointPos).
type Arb struct {
	p *sbigint.SBigInt
	q *ubigint.UBigInt

	base     uint64 // default I/O base for formatting; 10 until changed
	fixed    bool
	fixedQ   *ubigint.UBigInt
	maxRadix int
}

// New returns a new zero-valued, non-fixed Arb with default base 10.
func New() *Arb {
	return &Arb{p: sbigint.New(), q: ubigint.FromUint64(1), base: 10, maxRadix: DefaultMaxRadix}
}

// NewFixed returns a new zero-valued Arb pinned to denominator
// base^pointPos (base 10), per spec.md §4.5.2's fixed-point mode.
func NewFixed(pointPos uint64) (*Arb, error) {
	a := New()
	fixedQ, err := ubigint.FromUint64(10).Pow(ubigint.FromUint64(pointPos))
	if err != nil {
		return nil, err
	}
	a.fixed = true
	a.fixedQ = fixedQ
	a.q = fixedQ.Clone()
	return a, nil
}

// Clone returns an independent copy of a.
func (a *Arb) Clone() *Arb {
	c := &Arb{
		p:        a.p.Clone(),
		q:        a.q.Clone(),
		base:     a.base,
		fixed:    a.fixed,
		maxRadix: a.maxRadix,
	}
	if a.fixedQ != nil {
		c.fixedQ = a.fixedQ.Clone()
	}
	return c
}

// Base returns the default I/O base.
func (a *Arb) Base() uint64 {
	if a.base == 0 {
		return 10
	}
	return a.base
}

// SetBase changes the default I/O base used by String/ToString.
func (a *Arb) SetBase(b uint64) error {
	if b < 2 {
		return arberrors.New(arberrors.MinBase, "base must be at least 2")
	}
	if b > ubigint.DigitBase {
		return arberrors.New(arberrors.MaxBase, "base exceeds the internal limb base")
	}
	a.base = b
	return nil
}

// IsZero reports whether a holds zero.
func (a *Arb) IsZero() bool { return a.p.IsZero() }

// IsNeg reports whether a is strictly negative.
func (a *Arb) IsNeg() bool { return a.p.IsNeg() }

// Numerator and Denominator expose the reduced (or fixed) p and q. The
// returned values alias a's internal state and must not be mutated.
func (a *Arb) Numerator() *sbigint.SBigInt { return a.p }
func (a *Arb) Denominator() *ubigint.UBigInt { return a.q }

func signedU(u *ubigint.UBigInt, neg bool) *sbigint.SBigInt { return sbigint.FromMagnitude(u, neg) }

// reduce enforces the invariant that a is either in lowest terms (non-fixed
// mode) or pinned to fixedQ (fixed mode), per spec.md §4.5.2.
func (a *Arb) reduce() error {
	if !a.fixed {
		g, err := ubigint.GCD(a.p.Magnitude(), a.q)
		if err != nil {
			return err
		}
		one := ubigint.FromUint64(1)
		if !g.IsZero() && g.Compare(one) != 0 {
			if err := a.p.Magnitude().Div(g, nil); err != nil {
				return err
			}
			if err := a.q.Div(g, nil); err != nil {
				return err
			}
		}
		return nil
	}

	if a.q.Eq(a.fixedQ) {
		return nil
	}
	// p <- p * fixedQ / q, truncated toward zero; q <- fixedQ. This is the
	// one place an Arb operation discards precision outside of parsing.
	newP := a.p.Clone()
	if err := newP.Mul(signedU(a.fixedQ, false)); err != nil {
		return err
	}
	if err := newP.Div(signedU(a.q, false), nil); err != nil {
		return err
	}
	a.p = newP
	a.q = a.fixedQ.Clone()
	return nil
}

// parse state machine modes, per spec.md §4.5.1.
type parseMode int

const (
	modeNum parseMode = iota
	modeRad
	modeExp
)

// Set parses number into a, following spec.md §4.5.1's three-mode state
// machine (NUM/RAD/EXP) over base-10 digits, combines the written exponent
// with the implicit radix-point exponent, and reduces according to a's
// current fixed/non-fixed mode. a is left unchanged if parsing fails.
func (a *Arb) Set(number string) error {
	rest := number
	neg := false
	if len(rest) > 0 && (rest[0] == '+' || rest[0] == '-') {
		neg = rest[0] == '-'
		rest = rest[1:]
	}
	// off converts an index into rest back to a byte offset into number.
	off := len(number) - len(rest)

	var numDigits, radDigits, expDigits []byte
	mode := modeNum
	expNeg := false
	sawExpSign := false

	for i := 0; i < len(rest); i++ {
		c := rest[i]
		switch {
		case c == '.':
			if mode != modeNum {
				return arberrors.BadFormatAt("unexpected radix point", number, i+off)
			}
			mode = modeRad
		case c == 'e' || c == 'E':
			if mode == modeExp {
				return arberrors.BadFormatAt("repeated exponent marker", number, i+off)
			}
			mode = modeExp
		case c == '+' || c == '-':
			if mode != modeExp || len(expDigits) != 0 || sawExpSign {
				return arberrors.BadFormatAt("sign not permitted here", number, i+off)
			}
			expNeg = c == '-'
			sawExpSign = true
		case c >= '0' && c <= '9':
			switch mode {
			case modeNum:
				numDigits = append(numDigits, c)
			case modeRad:
				radDigits = append(radDigits, c)
			case modeExp:
				expDigits = append(expDigits, c)
			}
		default:
			return arberrors.BadFormatAt("unrecognized character", number, i+off)
		}
	}
	if mode == modeExp && len(expDigits) == 0 {
		return arberrors.BadFormatAt("missing exponent digits", number, len(number))
	}

	numDigits = trimLeadingZeros(numDigits)
	radDigits = trimTrailingZeros(radDigits)
	nRadix := uint64(len(radDigits))

	digitStr := string(numDigits) + string(radDigits)
	if digitStr == "" {
		digitStr = "0"
	}

	pMag := ubigint.New()
	if err := pMag.Set(digitStr, false); err != nil {
		return err
	}

	var writtenExp uint64
	if len(expDigits) > 0 {
		e := ubigint.New()
		if err := e.Set(string(expDigits), false); err != nil {
			return err
		}
		v, err := e.Value()
		if err != nil {
			return err
		}
		writtenExp = v
	}

	// Combine the written exponent (signed) with the implicit -n_radix
	// exponent the radix digits contribute: net = writtenExp*sign - n_radix,
	// tracked as a (positive bool, magnitude) pair so the subtraction never
	// underflows an unsigned value.
	posExp := !expNeg
	mag := writtenExp
	if posExp {
		if mag >= nRadix {
			mag -= nRadix
		} else {
			posExp = false
			mag = nRadix - mag
		}
	} else {
		mag += nRadix
	}

	qMag := ubigint.FromUint64(1)
	if mag > 0 {
		scale, err := ubigint.FromUint64(10).Pow(ubigint.FromUint64(mag))
		if err != nil {
			return err
		}
		if posExp {
			if err := pMag.Mul(scale); err != nil {
				return err
			}
		} else {
			qMag = scale
		}
	}

	a.p = sbigint.FromMagnitude(pMag, neg)
	a.q = qMag
	return a.reduce()
}

func trimLeadingZeros(b []byte) []byte {
	i := 0
	for i < len(b)-1 && b[i] == '0' {
		i++
	}
	if len(b) > 0 && i == len(b)-1 && b[i] == '0' {
		return nil
	}
	return b[i:]
}

func trimTrailingZeros(b []byte) []byte {
	n := len(b)
	for n > 0 && b[n-1] == '0' {
		n--
	}
	return b[:n]
}

// Neg sets a = -a.
func (a *Arb) Neg() *Arb {
	a.p.Neg()
	return a
}

// Abs sets a = |a|.
func (a *Arb) Abs() *Arb {
	a.p.Abs()
	return a
}

// Add sets a = a + o, per spec.md §4.5.3: (p1*q2 + p2*q1) / (q1*q2).
func (a *Arb) Add(o *Arb) error {
	left := a.p.Clone()
	if err := left.Mul(signedU(o.q, false)); err != nil {
		return err
	}
	right := o.p.Clone()
	if err := right.Mul(signedU(a.q, false)); err != nil {
		return err
	}
	if err := left.Add(right); err != nil {
		return err
	}
	newQ := a.q.Clone()
	if err := newQ.Mul(o.q); err != nil {
		return err
	}
	a.p, a.q = left, newQ
	return a.reduce()
}

// Sub sets a = a - o.
func (a *Arb) Sub(o *Arb) error {
	neg := o.Clone()
	neg.Neg()
	return a.Add(neg)
}

// Mul sets a = a * o, per spec.md §4.5.3: (p1*p2)/(q1*q2).
func (a *Arb) Mul(o *Arb) error {
	newP := a.p.Clone()
	if err := newP.Mul(o.p); err != nil {
		return err
	}
	newQ := a.q.Clone()
	if err := newQ.Mul(o.q); err != nil {
		return err
	}
	a.p, a.q = newP, newQ
	return a.reduce()
}

// Div sets a = a / o, per spec.md §4.5.3: multiply by the reciprocal.
// Raises DivByZero if o is zero.
func (a *Arb) Div(o *Arb) error {
	if o.IsZero() {
		return arberrors.New(arberrors.DivByZero, "division by zero")
	}
	newP := a.p.Clone()
	if err := newP.Mul(signedU(o.q, false)); err != nil {
		return err
	}
	newQSigned := signedU(a.q, false)
	if err := newQSigned.Mul(o.p); err != nil {
		return err
	}
	if newQSigned.IsNeg() {
		newP.Neg()
		newQSigned.Neg()
	}
	a.p = newP
	a.q = newQSigned.Magnitude().Clone()
	return a.reduce()
}

// Compare returns -1, 0, or 1 as a is less than, equal to, or greater than
// o, by cross-multiplying against the (always-positive) denominators.
func (a *Arb) Compare(o *Arb) int {
	lhs := a.p.Clone()
	lhs.Mul(signedU(o.q, false))
	rhs := o.p.Clone()
	rhs.Mul(signedU(a.q, false))
	return lhs.Compare(rhs)
}

func (a *Arb) Lt(o *Arb) bool { return a.Compare(o) < 0 }
func (a *Arb) Gt(o *Arb) bool { return a.Compare(o) > 0 }
func (a *Arb) Le(o *Arb) bool { return a.Compare(o) <= 0 }
func (a *Arb) Ge(o *Arb) bool { return a.Compare(o) >= 0 }
func (a *Arb) Eq(o *Arb) bool { return a.Compare(o) == 0 }

// integerPart returns floor(|p|/q) with the value's own sign, and the
// remainder |p| mod q. A zero integer part is always non-negative, so for
// values strictly between -1 and 0 the sign is carried only by a.
func (a *Arb) integerPart() (intPart *sbigint.SBigInt, rem *ubigint.UBigInt) {
	mag := a.p.Magnitude().Clone()
	var r ubigint.UBigInt
	mag.Div(a.q, &r)
	return sbigint.FromMagnitude(mag, a.IsNeg()), &r
}

// fractionalDigits expands the remainder r/q as up to maxDigits digits in
// base, stopping early once the expansion terminates exactly.
func (a *Arb) fractionalDigits(r *ubigint.UBigInt, base uint64, maxDigits int) string {
	var sb strings.Builder
	rem := r.Clone()
	for i := 0; i < maxDigits && !rem.IsZero(); i++ {
		rem.Mul(ubigint.FromUint64(base))
		var next ubigint.UBigInt
		rem.Div(a.q, &next)
		digit, _ := rem.Value()
		sb.WriteString(digitChar(digit))
		rem = &next
	}
	return sb.String()
}

func digitChar(d uint64) string {
	const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	if d < uint64(len(alphabet)) {
		return string(alphabet[d])
	}
	return "?"
}

// String formats a in its default base: integer part, a radix point, and
// up to maxRadix fractional digits, omitting the point entirely when the
// value is an exact integer.
func (a *Arb) String() string {
	s, _ := a.ToString(0)
	return s
}

// ToString formats a in base (0 means the default base).
func (a *Arb) ToString(base uint64) (string, error) {
	if base == 0 {
		base = a.Base()
	}
	intPart, rem := a.integerPart()
	intStr, err := intPart.ToString(base)
	if err != nil {
		return "", err
	}
	if rem.IsZero() {
		return intStr, nil
	}
	if a.IsNeg() && intPart.IsZero() {
		intStr = "-" + intStr
	}
	maxRadix := a.maxRadix
	if maxRadix == 0 {
		maxRadix = DefaultMaxRadix
	}
	frac := a.fractionalDigits(rem, base, maxRadix)
	return intStr + "." + frac, nil
}

// Format renders a according to a template of literal characters
// interleaved with %-escapes, per spec.md §4.5.4: %i the integer part, %f
// the fractional digits (up to maxRadix, in the default base), %x the
// magnitude's hex numerator, %% a literal percent, and any other letter a
// strftime-style calendar code evaluated against the integer part
// interpreted as seconds since the Unix epoch — for callers that use Arb
// as a timestamp component. An optional '-' or '_' modifier before the
// code is accepted
// and ignored by %i/%f (no padding behavior is defined for arbitrary
// precision integers) but is otherwise passed through to strftime.
func (a *Arb) Format(template string) (string, error) {
	var sb strings.Builder
	i := 0
	for i < len(template) {
		c := template[i]
		if c != '%' {
			sb.WriteByte(c)
			i++
			continue
		}
		i++
		if i >= len(template) {
			return "", arberrors.BadFormatAt("dangling % at end of template", template, i-1)
		}
		modifier := byte(0)
		if template[i] == '-' || template[i] == '_' {
			modifier = template[i]
			i++
			if i >= len(template) {
				return "", arberrors.BadFormatAt("dangling modifier at end of template", template, i-1)
			}
		}
		code := template[i]
		i++

		switch code {
		case 'i':
			intPart, _ := a.integerPart()
			s, err := intPart.ToString(a.Base())
			if err != nil {
				return "", err
			}
			sb.WriteString(s)
		case 'f':
			_, rem := a.integerPart()
			sb.WriteString(a.fractionalDigits(rem, a.Base(), a.effectiveMaxRadix()))
		case 'x':
			s, err := a.p.Magnitude().ToString(16)
			if err != nil {
				return "", err
			}
			sb.WriteString(s)
		case '%':
			sb.WriteByte('%')
		default:
			piece, err := a.formatCalendarCode(modifier, code)
			if err != nil {
				return "", err
			}
			sb.WriteString(piece)
		}
	}
	return sb.String(), nil
}

func (a *Arb) effectiveMaxRadix() int {
	if a.maxRadix == 0 {
		return DefaultMaxRadix
	}
	return a.maxRadix
}

// formatCalendarCode delegates a single %-code to strftime, treating a's
// truncated integer value as a Unix timestamp.
func (a *Arb) formatCalendarCode(modifier, code byte) (string, error) {
	intPart, _ := a.integerPart()
	secs, err := intPart.Magnitude().Value()
	if err != nil {
		return "", arberrors.New(arberrors.ScalarOverflow, "value too large to interpret as a timestamp")
	}
	if intPart.IsNeg() {
		secs = 0 // no representable calendar time before the epoch in this mapping
	}
	t := time.Unix(int64(secs), 0).UTC()

	layout := "%"
	if modifier != 0 {
		layout += string(modifier)
	}
	layout += string(code)
	return strftime.Format(layout, t), nil
}

// SetMaxRadix overrides the number of fractional digits the default string
// format and %f escape emit before giving up on a non-terminating
// expansion.
func (a *Arb) SetMaxRadix(n int) { a.maxRadix = n }
