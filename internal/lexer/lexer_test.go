package lexer

import (
	"testing"

	"tnac/internal/token"
)

func scanAll(src string) []token.Token {
	l := New("test", src)
	var out []token.Token
	for {
		t := l.Next()
		out = append(out, t)
		if t.Kind == token.Eol {
			return out
		}
	}
}

func TestNumericLiterals(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind token.Kind
	}{
		{"zero", "0", token.IntDec},
		{"decimal", "42", token.IntDec},
		{"binary", "0b101", token.IntBin},
		{"octal", "017", token.IntOct},
		{"hex", "0xFF", token.IntHex},
		{"float", "3.14", token.Float},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := scanAll(tt.src)
			if len(toks) < 1 || toks[0].Kind != tt.kind {
				t.Fatalf("scanAll(%q) = %v, want first kind %s", tt.src, toks, tt.kind)
			}
			if toks[0].Value != tt.src {
				t.Fatalf("scanAll(%q) value = %q, want %q", tt.src, toks[0].Value, tt.src)
			}
		})
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	toks := scanAll("_fn x _ret")
	want := []token.Kind{token.KwFunction, token.Identifier, token.KwRet, token.Eol}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d = %s, want %s", i, toks[i].Kind, k)
		}
	}
}

func TestOperatorsAndCommands(t *testing.T) {
	toks := scanAll("a = b ** 2 // #result hex")
	kindsSeen := map[token.Kind]bool{}
	for _, tk := range toks {
		kindsSeen[tk.Kind] = true
	}
	for _, k := range []token.Kind{token.Assign, token.Pow, token.Root, token.Command} {
		if !kindsSeen[k] {
			t.Errorf("expected to see %s among %v", k, toks)
		}
	}
}

func TestCommentsSkipped(t *testing.T) {
	toks := scanAll("1 // a comment\n+ 2")
	want := []token.Kind{token.IntDec, token.Plus, token.IntDec, token.Eol}
	if len(toks) != len(want) {
		t.Fatalf("got %v, want kinds %v", toks, want)
	}
}

func TestInvalidCharacterYieldsErrorAndResyncs(t *testing.T) {
	toks := scanAll("1 @@@ 2")
	var sawError bool
	for _, tk := range toks {
		if tk.Kind == token.Error {
			sawError = true
		}
	}
	if !sawError {
		t.Fatalf("expected an Error token, got %v", toks)
	}
	// lexing must continue past the bad run and still find the trailing int
	if toks[len(toks)-2].Kind != token.IntDec {
		t.Fatalf("expected lexer to resync onto trailing int, got %v", toks)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	l := New("test", "1 + 2")
	p1 := l.Peek()
	p2 := l.Peek()
	if p1 != p2 {
		t.Fatalf("Peek() not idempotent: %v != %v", p1, p2)
	}
	n := l.Next()
	if n != p1 {
		t.Fatalf("Next() after Peek() = %v, want %v", n, p1)
	}
}

func TestEolIsSticky(t *testing.T) {
	l := New("test", "1")
	l.Next()
	a := l.Next()
	b := l.Next()
	if a.Kind != token.Eol || b.Kind != token.Eol {
		t.Fatalf("expected Eol sentinel forever, got %v then %v", a, b)
	}
}
