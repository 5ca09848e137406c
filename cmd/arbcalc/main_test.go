package main

import (
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

// runMain adapts main (which terminates the process itself via os.Exit or
// log.Fatal on every error path) to the func() int shape testscript.RunMain
// expects: a clean return from main falls through to "return 0" here, and
// any early os.Exit/log.Fatal along the way short-circuits the process
// before this line is ever reached.
func runMain() int {
	main()
	return 0
}

// TestMain lets "go test" re-exec this test binary as the arbcalc command
// itself whenever a testdata/script/*.txtar fixture invokes "arbcalc ...",
// the same black-box transcript style the teacher's own tests/ directory of
// script fixtures exercises its interpreter with.
func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"arbcalc": runMain,
	}))
}

// TestScripts drives every testdata/script/*.txtar fixture.
func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
	})
}
