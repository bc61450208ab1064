package driver

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"tnac/internal/commands"
	"tnac/internal/sema"
	"tnac/internal/token"
	"tnac/internal/value"
)

// ExitRequested is returned by Dispatch when the `#exit` command ran,
// so the host (REPL) knows to stop its read loop.
type ExitRequested struct{}

func (ExitRequested) Error() string { return "exit requested" }

// Dispatch runs a parsed command (name without the leading '#', plus
// its argument tokens) against this driver's state.
func (d *Driver) Dispatch(name string, args []token.Token) error {
	return d.Commands.Dispatch(name, args)
}

func (d *Driver) registerCommands() {
	d.Commands.Register(&commands.Descr{
		Name: "exit",
		Handler: func(args []token.Token) error {
			return ExitRequested{}
		},
	})

	d.Commands.Register(&commands.Descr{
		Name: "result",
		Args: []commands.ArgShape{{Kind: token.Identifier, Required: false}},
		Handler: func(args []token.Token) error {
			if len(args) == 1 {
				b, ok := commands.ParseBase(args[0].Value)
				if !ok {
					return fmt.Errorf("#result: unknown base %q", args[0].Value)
				}
				d.Base = b
			}
			fmt.Println(d.formatResult())
			return nil
		},
	})

	for _, base := range []string{"bin", "oct", "dec", "hex"} {
		base := base
		d.Commands.Register(&commands.Descr{
			Name: base,
			Handler: func(args []token.Token) error {
				b, _ := commands.ParseBase(base)
				d.Base = b
				return nil
			},
		})
	}

	d.Commands.Register(&commands.Descr{
		Name: "list",
		Args: []commands.ArgShape{{Kind: token.String, Required: false}},
		Handler: func(args []token.Token) error {
			for _, name := range d.Sources.Names() {
				if len(args) == 1 && name != args[0].Value {
					continue
				}
				f, _ := d.Sources.Lookup(name)
				fmt.Println(f.Text)
			}
			return nil
		},
	})

	d.Commands.Register(&commands.Descr{
		Name: "ast",
		Args: []commands.ArgShape{{Kind: token.String, Required: false}, {Kind: token.Identifier, Required: false}},
		Handler: func(args []token.Token) error {
			fmt.Print(d.DumpAST())
			return nil
		},
	})

	d.Commands.Register(&commands.Descr{
		Name: "ir",
		Args: []commands.ArgShape{{Kind: token.String, Required: false}},
		Handler: func(args []token.Token) error {
			fmt.Print(d.DumpIR())
			return nil
		},
	})

	d.Commands.Register(&commands.Descr{
		Name: "vars",
		Args: []commands.ArgShape{{Kind: token.String, Required: false}},
		Handler: func(args []token.Token) error {
			d.listSymbols(sema.SymVariable, sema.SymParameter)
			return nil
		},
	})

	d.Commands.Register(&commands.Descr{
		Name: "funcs",
		Args: []commands.ArgShape{{Kind: token.String, Required: false}},
		Handler: func(args []token.Token) error {
			d.listSymbols(sema.SymFunction)
			return nil
		},
	})

	d.Commands.Register(&commands.Descr{
		Name: "modules",
		Args: []commands.ArgShape{{Kind: token.String, Required: false}},
		Handler: func(args []token.Token) error {
			d.listSymbols(sema.SymModule)
			return nil
		},
	})

	d.Commands.Register(&commands.Descr{
		Name: "env",
		Args: []commands.ArgShape{{Kind: token.String, Required: false}},
		Handler: func(args []token.Token) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			var total int64
			for _, name := range d.Sources.Names() {
				f, _ := d.Sources.Lookup(name)
				total += int64(len(f.Text))
			}
			fmt.Printf("cwd: %s\nloaded files: %d, total size: %s\n",
				dir, len(d.Sources.Names()), humanize.Bytes(uint64(total)))
			return nil
		},
	})
}

func (d *Driver) listSymbols(kinds ...sema.SymbolKind) {
	syms := d.Sema.Symbols(kinds...)
	names := make([]string, 0, len(syms))
	byName := make(map[string]*sema.Symbol, len(syms))
	for _, s := range syms {
		names = append(names, s.Name)
		byName[s.Name] = s
	}
	sort.Strings(names)
	var sb strings.Builder
	for _, n := range names {
		fmt.Fprintf(&sb, "%s (%s)\n", n, byName[n].Kind)
	}
	fmt.Print(sb.String())
}

// formatResult renders the last evaluated top-level value using the
// driver's current numeric base, per spec.md §6's `#result` command.
func (d *Driver) formatResult() string {
	if d.LastResult.Type() == value.TInt && d.Base != commands.Dec {
		return commands.FormatInt(d.LastResult.AsInt(), d.Base)
	}
	return d.LastResult.String()
}
