package ubigint

import (
	"testing"

	"modernc.org/mathutil"
)

// TestRootCrossCheck spot-checks UBigInt.Root(2) against mathutil.ISqrt, an
// independently implemented integer square root, for values that fit in a
// uint64 (mathutil's own domain). Per SPEC_FULL.md's test-tooling section,
// this is the one place in the module modernc.org/mathutil appears: a
// second implementation to compare golden values against, never imported by
// non-test code.
func TestRootCrossCheck(t *testing.T) {
	cases := []uint64{0, 1, 2, 3, 4, 99, 100, 123456789, 999999999999}
	for _, n := range cases {
		want := mathutil.ISqrt(n)
		u := FromUint64(n)
		root, _, _, err := u.Root(2)
		if err != nil {
			t.Fatalf("Root(2) on %d: %v", n, err)
		}
		got, err := root.Value()
		if err != nil {
			t.Fatalf("Value() on root of %d: %v", n, err)
		}
		if got != want {
			t.Fatalf("Root(2)(%d) = %d, mathutil.ISqrt want %d", n, got, want)
		}
	}
}

// TestGCDCrossCheck spot-checks GCD against mathutil.GCDUint64.
func TestGCDCrossCheck(t *testing.T) {
	pairs := [][2]uint64{
		{48, 18}, {17, 5}, {0, 7}, {7, 0}, {1000000007, 998244353}, {100, 100},
	}
	for _, p := range pairs {
		want := mathutil.GCDUint64(p[0], p[1])
		g, err := GCD(FromUint64(p[0]), FromUint64(p[1]))
		if err != nil {
			t.Fatalf("GCD(%d,%d): %v", p[0], p[1], err)
		}
		got, err := g.Value()
		if err != nil {
			t.Fatalf("Value() on GCD(%d,%d): %v", p[0], p[1], err)
		}
		if got != want {
			t.Fatalf("GCD(%d,%d) = %d, mathutil.GCDUint64 want %d", p[0], p[1], got, want)
		}
	}
}
