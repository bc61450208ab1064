package main

import (
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

// TestMain lets testscript scripts invoke `tnac` as an in-process
// subcommand instead of requiring a prebuilt binary on PATH, the
// customary rogpeppe/go-internal/testscript harness shape.
func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"tnac": run1,
	}))
}

func run1() int {
	return run(os.Args[1:])
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
	})
}
