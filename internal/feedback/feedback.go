// Package feedback implements the host-callback bundle the core calls
// into for diagnostics, commands, and file-load requests, decoupling
// the pipeline from any particular shell/REPL/CLI host.
package feedback

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"tnac/internal/token"
)

// Kind classifies a diagnostic.
type Kind string

const (
	LexError          Kind = "LexError"
	ParseError        Kind = "ParseError"
	UndefinedId       Kind = "UndefinedId"
	Redefinition      Kind = "Redefinition"
	ImportFailed      Kind = "ImportFailed"
	TypeError         Kind = "TypeError"
	ArithmeticWarning Kind = "ArithmeticWarning"
	StackOverflow     Kind = "StackOverflow"
	DivByZero         Kind = "DivByZero"
	Note              Kind = "Note"
)

// Diagnostic is a single reported issue, formatted for a terminal with
// a caret under the offending column when source text is available.
type Diagnostic struct {
	Kind    Kind
	Loc     token.Location
	Message string
	Source  string // the offending source line, if known
	Stack   []StackFrame
	Fatal   bool
}

// StackFrame mirrors the tnac call stack at the point a runtime
// diagnostic was raised, independent of the Go call stack captured by
// github.com/pkg/errors on fatal diagnostics.
type StackFrame struct {
	Function string
	Loc      token.Location
}

func (d Diagnostic) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s\n", d.Kind, d.Message)
	if d.Loc.File != "" {
		fmt.Fprintf(&sb, "  at %s\n", d.Loc)
		if d.Source != "" {
			prefix := fmt.Sprintf("  %d | ", d.Loc.Line)
			fmt.Fprintf(&sb, "\n%s%s\n", prefix, d.Source)
			sb.WriteString(strings.Repeat(" ", len(prefix)))
			if d.Loc.Column > 0 {
				sb.WriteString(strings.Repeat(" ", d.Loc.Column-1))
			}
			sb.WriteString("^\n")
		}
	}
	if len(d.Stack) > 0 {
		sb.WriteString("\nCall Stack:\n")
		for _, f := range d.Stack {
			if f.Function != "" {
				fmt.Fprintf(&sb, "  at %s (%s)\n", f.Function, f.Loc)
			} else {
				fmt.Fprintf(&sb, "  at %s\n", f.Loc)
			}
		}
	}
	return sb.String()
}

func New(kind Kind, loc token.Location, message string) *Diagnostic {
	return &Diagnostic{Kind: kind, Loc: loc, Message: message}
}

// Fatalf builds a fatal diagnostic and wraps it with a captured Go
// stack trace via pkg/errors, so a bug report distinguishes "where in
// the Go runtime did this fire" from "where in the tnac call stack".
func Fatalf(kind Kind, loc token.Location, format string, args ...interface{}) error {
	d := New(kind, loc, fmt.Sprintf(format, args...))
	d.Fatal = true
	return errors.WithStack(d)
}

func (d *Diagnostic) WithSource(src string) *Diagnostic {
	d.Source = src
	return d
}

func (d *Diagnostic) WithStack(stack []StackFrame) *Diagnostic {
	d.Stack = stack
	return d
}

// Bundle is the set of callback slots the core invokes. Every slot
// defaults to a no-op; a host installs the ones it cares about.
type Bundle struct {
	OnError          func(msg string)
	OnParseError     func(d *Diagnostic)
	OnCompileError   func(d *Diagnostic)
	OnCompileWarning func(d *Diagnostic)
	OnCompileNote    func(d *Diagnostic)
	OnCommand        func(name string, args []token.Token)
	LoadFile         func(path string) bool
}

// Default returns a Bundle whose hooks are safe, null-effect
// implementations; a host installs only the ones it wants to observe.
func Default() Bundle {
	return Bundle{
		OnError:          func(string) {},
		OnParseError:     func(*Diagnostic) {},
		OnCompileError:   func(*Diagnostic) {},
		OnCompileWarning: func(*Diagnostic) {},
		OnCompileNote:    func(*Diagnostic) {},
		OnCommand:        func(string, []token.Token) {},
		LoadFile:         func(string) bool { return false },
	}
}

func (b Bundle) Error(msg string) {
	if b.OnError != nil {
		b.OnError(msg)
	}
}

func (b Bundle) ParseError(d *Diagnostic) {
	if b.OnParseError != nil {
		b.OnParseError(d)
	}
}

func (b Bundle) CompileError(d *Diagnostic) {
	if b.OnCompileError != nil {
		b.OnCompileError(d)
	}
}

func (b Bundle) CompileWarning(d *Diagnostic) {
	if b.OnCompileWarning != nil {
		b.OnCompileWarning(d)
	}
}

func (b Bundle) CompileNote(d *Diagnostic) {
	if b.OnCompileNote != nil {
		b.OnCompileNote(d)
	}
}

func (b Bundle) Command(name string, args []token.Token) {
	if b.OnCommand != nil {
		b.OnCommand(name, args)
	}
}

func (b Bundle) Load(path string) bool {
	if b.LoadFile != nil {
		return b.LoadFile(path)
	}
	return false
}
