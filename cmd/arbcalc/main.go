// Command arbcalc is an arbitrary-precision calculator REPL, the same
// "scan the line, compile/evaluate it, print the result, loop" shape as the
// teacher's internal/repl.Start, generalized from Sentra-language statements
// to arithmetic expressions over arb.Arb.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/sentra-lang/arbprec/internal/calc"
	"github.com/sentra-lang/arbprec/internal/history"
	"github.com/sentra-lang/arbprec/internal/keystrength"
)

const version = "0.1.0"

func main() {
	baseFlag := flag.Uint64("base", 10, "default output base (numeric literals are always read in base 10)")
	fixedFlag := flag.Uint64("fixed", 0, "fixed-point digit count (0 disables fixed-point mode)")
	historyFlag := flag.String("history", "", "history store DSN (e.g. sqlite:arbcalc.db); empty disables history")
	verboseFlag := flag.Bool("verbose", false, "log evaluation diagnostics to stderr")
	versionFlag := flag.Bool("version", false, "print the version and exit")
	evalFlag := flag.String("e", "", "evaluate a single expression and exit, instead of starting the REPL")
	scriptFlag := flag.String("script", "", "evaluate each line of PATH in order and exit, instead of starting the REPL")
	flag.Parse()

	if *versionFlag {
		fmt.Println("arbcalc", version)
		return
	}

	if !*verboseFlag {
		log.SetOutput(os.Stderr)
		log.SetFlags(0)
	}

	ev := &calc.Evaluator{Base: *baseFlag}
	if *fixedFlag > 0 {
		ev.FixedPoint = true
		ev.FixedDigits = *fixedFlag
	}

	var store *history.Store
	if *historyFlag != "" {
		s, err := history.Open(*historyFlag)
		if err != nil {
			// Lower-level I/O failures get outer context the way the
			// teacher's stdlib modules annotate sql.Open/os errors before
			// surfacing them, rather than core packages reaching for
			// github.com/pkg/errors themselves.
			log.Fatalf("%v", errors.Wrap(err, "opening history store"))
		}
		defer s.Close()
		store = s
	}

	if *scriptFlag != "" {
		if err := runScript(ev, store, *verboseFlag, *scriptFlag); err != nil {
			log.Fatalf("%v", err)
		}
		return
	}

	if *evalFlag != "" {
		runOne(ev, store, *verboseFlag, *evalFlag)
		return
	}

	repl(ev, store, *historyFlag, *verboseFlag)
}

// runScript evaluates each non-blank line of the file at path in order,
// skipping lines that start with '#', printing "expr = result" for each,
// and stops at the first error.
func runScript(ev *calc.Evaluator, store *history.Store, verbose bool, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading script %s", path)
	}
	for lineNo, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		result, err := ev.Eval(line)
		if err != nil {
			return errors.Wrapf(err, "line %d (%q)", lineNo+1, line)
		}
		out := result.String()
		fmt.Printf("%s = %s\n", line, out)
		recordHistory(store, line, out)
	}
	return nil
}

func runOne(ev *calc.Evaluator, store *history.Store, verbose bool, expr string) {
	start := time.Now()
	result, err := ev.Eval(expr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	out := result.String()
	fmt.Println(out)
	if verbose {
		log.Printf("completed in %s", time.Since(start))
	}
	recordHistory(store, expr, out)
}

func repl(ev *calc.Evaluator, store *history.Store, historyDSN string, verbose bool) {
	interactive := isatty.IsTerminal(os.Stdin.Fd())
	prompt := "> "
	if interactive {
		if w, _, err := term.GetSize(int(os.Stdin.Fd())); err == nil && w > 0 {
			prompt = "arbcalc> "
		}
	}

	fmt.Println("arbCalc | type 'exit' to quit, 'help' for commands")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			fmt.Print(prompt)
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if handled := handleCommand(ev, store, historyDSN, line); handled {
			continue
		}

		start := time.Now()
		result, err := ev.Eval(line)
		if err != nil {
			fmt.Println("error:", err)
			continue
		}
		out := result.String()
		fmt.Println(out)
		if verbose {
			log.Printf("completed in %s", time.Since(start))
		}
		recordHistory(store, line, out)
	}
}

// handleCommand intercepts the small set of REPL-only directives (exit,
// help, base/fixed reconfiguration, and history inspection) before an
// input line is handed to the expression evaluator.
func handleCommand(ev *calc.Evaluator, store *history.Store, historyDSN, line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case "exit", "quit":
		os.Exit(0)
	case "help":
		printHelp()
		return true
	case "base":
		if len(fields) != 2 {
			fmt.Println("usage: base N")
			return true
		}
		var n uint64
		if _, err := fmt.Sscanf(fields[1], "%d", &n); err != nil {
			fmt.Println("error: base must be a number")
			return true
		}
		ev.Base = n
		return true
	case "fixed":
		if len(fields) != 2 {
			fmt.Println("usage: fixed N (0 disables fixed-point mode)")
			return true
		}
		var n uint64
		if _, err := fmt.Sscanf(fields[1], "%d", &n); err != nil {
			fmt.Println("error: fixed digit count must be a number")
			return true
		}
		ev.FixedPoint = n > 0
		ev.FixedDigits = n
		return true
	case "history":
		runHistoryCommand(store, historyDSN, fields[1:])
		return true
	case "keystrength":
		runKeystrengthCommand(fields[1:])
		return true
	}
	return false
}

func runHistoryCommand(store *history.Store, historyDSN string, args []string) {
	if store == nil {
		fmt.Println("history is disabled; restart with -history PATH")
		return
	}
	ctx := context.Background()
	if len(args) == 0 || args[0] == "recent" {
		limit := 10
		if len(args) > 1 {
			fmt.Sscanf(args[1], "%d", &limit)
		}
		entries, err := store.Recent(ctx, limit)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		for _, e := range entries {
			fmt.Printf("%s  %s = %s\n", e.When.String(), e.Expression, e.Result)
		}
		return
	}
	if args[0] == "stat" {
		count, err := store.Stat(ctx)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		fmt.Printf("%s entries recorded\n", humanize.Comma(count))
		if path, ok := sqliteFilePath(historyDSN); ok {
			if info, err := os.Stat(path); err == nil {
				fmt.Printf("store file size: %s\n", humanize.Bytes(uint64(info.Size())))
			}
		}
		return
	}
	fmt.Println("usage: history [recent [N] | stat]")
}

// sqliteFilePath reports the on-disk path of a history DSN, if it resolves
// to the sqlite driver the way history.resolveDSN picks it (an explicit
// "sqlite:" scheme, or a bare path with no "://" scheme at all).
func sqliteFilePath(dsn string) (string, bool) {
	if strings.HasPrefix(dsn, "sqlite:") {
		return strings.TrimPrefix(dsn, "sqlite:"), true
	}
	if !strings.Contains(dsn, "://") {
		return dsn, true
	}
	return "", false
}

func runKeystrengthCommand(args []string) {
	if len(args) < 2 || args[0] != "rsa" {
		fmt.Println("usage: keystrength rsa MODULUS_DECIMAL")
		return
	}
	a, err := keystrength.AnalyzeRSAModulus(args[1])
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("%d-bit RSA modulus: %s (%s)\n", a.KeySize, a.Strength, a.TimeToBreak)
	for _, w := range a.Weaknesses {
		fmt.Println("  weakness:", w)
	}
}

func recordHistory(store *history.Store, expr, result string) {
	if store == nil {
		return
	}
	if _, err := store.Record(context.Background(), expr, result); err != nil {
		log.Printf("recording history: %v", err)
	}
}

func printHelp() {
	fmt.Println(`Commands:
  <expression>        evaluate an arithmetic expression (+ - * / % ^, sqrt(), root(x,n), abs())
  base N               set the default output base
  fixed N               set fixed-point digit count (0 to disable)
  history [recent N|stat]   inspect the persisted history store
  keystrength rsa N     rate an RSA modulus (decimal) by bit length
  exit                  quit`)
}
