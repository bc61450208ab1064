// cmd/tnac/main.go
package main

import (
	"flag"
	"fmt"
	"os"

	"tnac/internal/driver"
	"tnac/internal/feedback"
	"tnac/internal/repl"
)

const version = "1.0.0"

var commandAliases = map[string]string{
	"r": "run",
	"i": "repl",
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run implements the whole CLI and returns a process exit code; split
// out of main so cmd/tnac's testscript harness can invoke it in
// process instead of shelling out to a built binary.
func run(args []string) int {
	if len(args) == 0 {
		showUsage()
		return 0
	}

	cmd := args[0]
	if alias, ok := commandAliases[cmd]; ok {
		cmd = alias
	}

	switch cmd {
	case "--help", "-h", "help":
		showUsage()
		return 0
	case "--version", "-v", "version":
		fmt.Println("tnac " + version)
		return 0
	case "repl":
		repl.Start()
		return 0
	case "run":
		return runFiles(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "tnac: unknown command %q\n", args[0])
		showUsage()
		return 1
	}
}

func runFiles(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	dumpAST := fs.Bool("ast", false, "print the parsed AST for each file instead of evaluating")
	dumpIR := fs.Bool("ir", false, "print the compiled IR for each file instead of evaluating")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "tnac run: expected at least one source file")
		return 1
	}

	fb := feedback.Default()
	fb.OnParseError = func(d *feedback.Diagnostic) { fmt.Fprintln(os.Stderr, d.Error()) }
	fb.OnCompileError = func(d *feedback.Diagnostic) { fmt.Fprintln(os.Stderr, d.Error()) }
	d := driver.New(fb)

	exitCode := 0
	for _, path := range fs.Args() {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tnac run: %v\n", err)
			exitCode = 1
			continue
		}

		v, err := d.Eval(path, string(src))
		switch {
		case *dumpAST:
			fmt.Print(d.DumpAST())
		case *dumpIR:
			fmt.Print(d.DumpIR())
		case err != nil:
			exitCode = 1
		default:
			fmt.Println(v.String())
		}
	}
	return exitCode
}

func showUsage() {
	fmt.Println(`tnac - the tnac expression language

Usage:
  tnac repl                 start an interactive session
  tnac run [flags] file...  evaluate one or more source files
  tnac version              print the version
  tnac help                 show this message

Run flags:
  -ast   print the parsed AST instead of evaluating
  -ir    print the compiled IR instead of evaluating`)
}
