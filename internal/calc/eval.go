package calc

import (
	"fmt"

	"github.com/sentra-lang/arbprec/internal/arb"
	"github.com/sentra-lang/arbprec/internal/sbigint"
	"github.com/sentra-lang/arbprec/internal/ubigint"
)

// Evaluator walks a parsed expression tree and produces an arb.Arb, using
// the session's current I/O base and fixed-point configuration for every
// literal it builds.
type Evaluator struct {
	Base        uint64
	FixedPoint  bool
	FixedDigits uint64
}

func (e *Evaluator) newArb() (*arb.Arb, error) {
	if e.FixedPoint {
		return arb.NewFixed(e.FixedDigits)
	}
	return arb.New(), nil
}

// Eval evaluates an expression string end to end: scan, parse, walk.
func (e *Evaluator) Eval(expr string) (*arb.Arb, error) {
	tokens, err := NewScanner(expr).ScanTokens()
	if err != nil {
		return nil, err
	}
	node, err := NewParser(tokens).Parse()
	if err != nil {
		return nil, err
	}
	return e.eval(node)
}

func (e *Evaluator) eval(n Node) (*arb.Arb, error) {
	switch t := n.(type) {
	case *NumberNode:
		v, err := e.newArb()
		if err != nil {
			return nil, err
		}
		if e.Base != 0 {
			if err := v.SetBase(e.Base); err != nil {
				return nil, err
			}
		}
		if err := v.Set(t.Literal); err != nil {
			return nil, err
		}
		return v, nil

	case *UnaryNode:
		v, err := e.eval(t.Expr)
		if err != nil {
			return nil, err
		}
		return v.Neg(), nil

	case *BinaryNode:
		left, err := e.eval(t.Left)
		if err != nil {
			return nil, err
		}
		right, err := e.eval(t.Right)
		if err != nil {
			return nil, err
		}
		return e.applyBinary(t.Op, left, right)

	case *CallNode:
		return e.applyCall(t.Name, t.Args)
	}
	return nil, fmt.Errorf("unsupported expression node %T", n)
}

func (e *Evaluator) applyBinary(op TokenType, left, right *arb.Arb) (*arb.Arb, error) {
	switch op {
	case TokenPlus:
		if err := left.Add(right); err != nil {
			return nil, err
		}
		return left, nil
	case TokenMinus:
		if err := left.Sub(right); err != nil {
			return nil, err
		}
		return left, nil
	case TokenStar:
		if err := left.Mul(right); err != nil {
			return nil, err
		}
		return left, nil
	case TokenSlash:
		if err := left.Div(right); err != nil {
			return nil, err
		}
		return left, nil
	case TokenPct:
		return e.modulo(left, right)
	case TokenCaret:
		return e.power(left, right)
	}
	return nil, fmt.Errorf("unsupported operator %s", op)
}

// modulo requires both operands to be integral (denominator 1 in lowest
// terms) and defers to sbigint.Mod, since a rational modulus has no single
// conventional meaning the way integer modulus does.
func (e *Evaluator) modulo(left, right *arb.Arb) (*arb.Arb, error) {
	lInt, err := requireInteger(left)
	if err != nil {
		return nil, fmt.Errorf("%%: left operand: %w", err)
	}
	rInt, err := requireInteger(right)
	if err != nil {
		return nil, fmt.Errorf("%%: right operand: %w", err)
	}
	if err := lInt.Mod(rInt); err != nil {
		return nil, err
	}
	return e.arbFromSigned(lInt)
}

// power requires a non-negative integral exponent; the base may be any
// rational value. It computes p^e and q^e separately with the fast
// binary-exponentiation Pow already defined on sbigint/ubigint, then
// rebuilds the ratio through Arb.Div (which reduces it) — Arb itself has
// no direct numerator/denominator constructor, by design, construction
// only ever happens through Set or the arithmetic operators.
func (e *Evaluator) power(base, exp *arb.Arb) (*arb.Arb, error) {
	expInt, err := requireInteger(exp)
	if err != nil {
		return nil, fmt.Errorf("^: exponent: %w", err)
	}
	if expInt.IsNeg() {
		return nil, fmt.Errorf("^: negative exponents are not supported")
	}
	degree, err := expInt.Magnitude().Value()
	if err != nil {
		return nil, fmt.Errorf("^: exponent out of range: %w", err)
	}
	degreeMag := ubigint.FromUint64(degree)

	numPow, err := base.Numerator().Pow(sbigint.FromMagnitude(degreeMag, false))
	if err != nil {
		return nil, err
	}
	denPow, err := base.Denominator().Pow(degreeMag)
	if err != nil {
		return nil, err
	}

	numArb, err := e.arbFromSigned(numPow)
	if err != nil {
		return nil, err
	}
	denArb, err := e.arbFromSigned(sbigint.FromMagnitude(denPow, false))
	if err != nil {
		return nil, err
	}
	if err := numArb.Div(denArb); err != nil {
		return nil, err
	}
	return numArb, nil
}

func (e *Evaluator) applyCall(name string, argNodes []Node) (*arb.Arb, error) {
	args := make([]*arb.Arb, len(argNodes))
	for i, an := range argNodes {
		v, err := e.eval(an)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	switch name {
	case "abs":
		if len(args) != 1 {
			return nil, fmt.Errorf("abs() takes exactly one argument")
		}
		return args[0].Abs(), nil
	case "sqrt":
		if len(args) != 1 {
			return nil, fmt.Errorf("sqrt() takes exactly one argument")
		}
		return e.root(args[0], 2)
	case "root":
		if len(args) != 2 {
			return nil, fmt.Errorf("root() takes exactly two arguments (value, degree)")
		}
		degreeInt, err := requireInteger(args[1])
		if err != nil {
			return nil, fmt.Errorf("root(): degree: %w", err)
		}
		deg, err := degreeInt.Magnitude().Value()
		if err != nil {
			return nil, fmt.Errorf("root(): degree out of range: %w", err)
		}
		return e.root(args[0], deg)
	}
	return nil, fmt.Errorf("unknown function %q", name)
}

// root supports integral operands only (denominator 1): it delegates to
// sbigint.Root, which in turn delegates to ubigint.Root's binary search.
// A rational n-th root would need simultaneous roots of numerator and
// denominator that stay exact, which general rationals don't have, so
// arbCalc scopes root()/sqrt() to integers.
func (e *Evaluator) root(v *arb.Arb, n uint64) (*arb.Arb, error) {
	intV, err := requireInteger(v)
	if err != nil {
		return nil, fmt.Errorf("root: %w", err)
	}
	root, _, _, err := intV.Root(n)
	if err != nil {
		return nil, err
	}
	return e.arbFromSigned(root)
}

// requireInteger returns v's numerator as an SBigInt if v's denominator is
// exactly 1, or an error otherwise.
func requireInteger(v *arb.Arb) (*sbigint.SBigInt, error) {
	one := ubigint.FromUint64(1)
	if !v.Denominator().Eq(one) {
		return nil, fmt.Errorf("value %s is not an integer", v.String())
	}
	return v.Numerator().Clone(), nil
}

// arbFromSigned wraps a signed integer back up as an Arb with denominator
// 1, via its decimal string form — Arb has no constructor that takes
// numerator/denominator values directly, by design (construction only ever
// happens through Set or the arithmetic operators, matching the core
// spec's parsing-only construction path).
func (e *Evaluator) arbFromSigned(v *sbigint.SBigInt) (*arb.Arb, error) {
	a, err := e.newArb()
	if err != nil {
		return nil, err
	}
	if err := a.Set(v.String()); err != nil {
		return nil, err
	}
	return a, nil
}
