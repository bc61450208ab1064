// Package driver wires the core pipeline stages (internal/parser,
// internal/sema, internal/ir, internal/compiler, internal/eval) into a
// single incremental session: each call to Eval lexes/parses one chunk
// of source against symbol/IR/value state that persists across calls,
// the way a REPL or a `_import`-ed module load needs. It is the one
// "external collaborator" binding point spec.md §1 describes — the
// REPL, the CLI, and the command dispatcher all drive a *Driver rather
// than talking to the pipeline packages directly.
//
// The incremental-session-over-a-persistent-VM shape is grounded in
// the teacher's internal/vm.VM + internal/repl.Start pairing (a REPL
// that keeps one VM alive across lines, recompiling and re-running
// each new chunk against it); tnac's equivalent persistent state is
// the sema.Table, ir.Builder, value.Store and eval.Evaluator.
package driver

import (
	"fmt"

	"tnac/internal/ast"
	"tnac/internal/commands"
	"tnac/internal/compiler"
	"tnac/internal/eval"
	"tnac/internal/feedback"
	"tnac/internal/ir"
	"tnac/internal/irprint"
	"tnac/internal/lexer"
	"tnac/internal/parser"
	"tnac/internal/sema"
	"tnac/internal/source"
	"tnac/internal/token"
	"tnac/internal/value"
)

// Driver owns every piece of state that survives across chunks of
// source fed to it: the interned-file manager, the symbol table, the
// IR builder (and therefore every function compiled so far), the
// array value store, and the evaluator's constant pool.
type Driver struct {
	Sources  *source.Manager
	Sema     *sema.Table
	Builder  *ir.Builder
	Store    *value.Store
	Eval     *eval.Evaluator
	Feedback feedback.Bundle
	Commands *commands.Store

	Base       commands.Base
	LastResult value.Value
	lastRoot   *ast.Root
	lastFn     *ir.Function
}

func New(fb feedback.Bundle) *Driver {
	d := &Driver{
		Sources:  source.NewManager(),
		Sema:     sema.NewTable(),
		Builder:  ir.NewBuilder(),
		Store:    value.NewStore(),
		Feedback: fb,
		Commands: commands.NewStore(),
	}
	d.Eval = eval.New(d.Store, nil)
	d.registerCommands()
	return d
}

// HandleCommand checks whether src (one line/chunk) opens with a
// `#`-prefixed command per spec.md §6; if so it collects the command's
// argument tokens and dispatches it through d.Commands, reporting true
// so the caller (the REPL) skips the normal parse/compile/run path for
// this chunk. Commands are host-dispatched rather than evaluated as
// part of the AST (see internal/parser.command), so recognising one
// has to happen here, ahead of the real parser.
func (d *Driver) HandleCommand(file, src string) (bool, error) {
	lex := lexer.New(file, src)
	first := lex.Peek()
	if first.Kind != token.Command {
		return false, nil
	}
	lex.Next()
	var args []token.Token
	for {
		t := lex.Peek()
		if t.IsAny(token.ExprSep, token.Semi, token.Eol) {
			break
		}
		args = append(args, lex.Next())
	}
	return true, d.Dispatch(first.Value, args)
}

// Eval lexes, parses, compiles and runs one chunk of source named
// file, reporting parse/compile errors through the installed Feedback
// bundle and returning the chunk's resulting value. A stack-overflow
// or malformed-IR fault from the evaluator is reported through
// Feedback.Error and also returned as an error.
func (d *Driver) Eval(file, src string) (value.Value, error) {
	d.Sources.Intern(file, src)

	p := parser.New(file, src, d.Sema)
	root := p.Parse()
	d.lastRoot = root
	for _, perr := range p.Errors {
		d.Feedback.ParseError(feedback.New(feedback.ParseError, token.Location{File: file}, perr.Error()))
	}

	c := compiler.New(d.Builder, d.Sema, d.Store)
	fn := c.CompileModule(root)
	d.lastFn = fn
	for _, cerr := range c.Errors() {
		d.Feedback.CompileError(feedback.New(feedback.UndefinedId, token.Location{File: file}, cerr.Error()))
	}
	// The evaluator's constant pool only grows; pick up any constants
	// interned while compiling this chunk without losing the `_result`
	// state the evaluator has accumulated across prior chunks.
	d.Eval.AddConstants(d.Builder.Constants())

	v, err := d.Eval.Call(fn, nil)
	if err != nil {
		d.Feedback.Error(fmt.Sprintf("runtime error: %v", err))
		return value.UndefV(), err
	}
	d.LastResult = v
	return v, nil
}

// DumpAST renders the most recently parsed root via internal/irprint.
func (d *Driver) DumpAST() string {
	if d.lastRoot == nil {
		return ""
	}
	return irprint.AST(d.lastRoot)
}

// DumpIR renders the most recently compiled module function's CFG.
func (d *Driver) DumpIR() string {
	if d.lastFn == nil {
		return ""
	}
	return irprint.Function(d.lastFn)
}
