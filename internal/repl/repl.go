// Package repl implements tnac's interactive read-eval-print loop: one
// input line at a time through a
// *driver.Driver, which keeps the symbol table, IR and evaluator state
// alive across lines the way a REPL needs.
//
// Grounded in the teacher's internal/repl/repl.go (bufio.Scanner loop,
// "exit" sentinel, per-line lex/parse/compile/run cycle against one
// long-lived VM); the scanner/prompt loop is kept, generalized to
// drive a *driver.Driver instead of a raw VM and to recognise tnac's
// `#`-prefixed host commands (spec.md §6) ahead of ordinary
// expressions. Color/prompt styling is grounded in the rest of the
// retrieved example pack's use of github.com/mattn/go-isatty to avoid
// emitting ANSI escapes when stdout isn't a terminal (e.g. piped into
// a golden-test harness).
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"tnac/internal/driver"
	"tnac/internal/feedback"
)

const prompt = ">>> "
const contPrompt = "... "

// Start runs the REPL against stdin/stdout until EOF or `#exit`.
func Start() {
	run(os.Stdin, os.Stdout)
}

func run(in io.Reader, out io.Writer) {
	color := false
	if f, ok := out.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	fmt.Fprintln(out, banner(color))

	fb := feedback.Default()
	fb.OnParseError = func(d *feedback.Diagnostic) { fmt.Fprintln(out, diagLine(color, d)) }
	fb.OnCompileError = func(d *feedback.Diagnostic) { fmt.Fprintln(out, diagLine(color, d)) }
	d := driver.New(fb)

	scanner := bufio.NewScanner(in)
	lineNo := 0
	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			break
		}
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}

		name := fmt.Sprintf("<repl:%d>", lineNo)
		if handled, err := d.HandleCommand(name, line); handled {
			if _, exited := err.(driver.ExitRequested); exited {
				break
			}
			if err != nil {
				fmt.Fprintln(out, errLine(color, err))
			}
			continue
		}

		v, err := d.Eval(name, line)
		if err != nil {
			continue // diagnostics already reported via the feedback bundle
		}
		fmt.Fprintln(out, v.String())
	}
}

func banner(color bool) string {
	if !color {
		return "tnac REPL | #exit to quit"
	}
	return "\x1b[1mtnac REPL\x1b[0m | #exit to quit"
}

func diagLine(color bool, d *feedback.Diagnostic) string {
	if !color {
		return d.Error()
	}
	return "\x1b[31m" + d.Error() + "\x1b[0m"
}

func errLine(color bool, err error) string {
	if !color {
		return err.Error()
	}
	return "\x1b[33m" + err.Error() + "\x1b[0m"
}
