package commands

import (
	"testing"

	"tnac/internal/token"
)

func tok(k token.Kind, v string) token.Token { return token.Token{Kind: k, Value: v} }

func TestDispatchUnknownCommand(t *testing.T) {
	s := NewStore()
	err := s.Dispatch("nope", nil)
	verr, ok := err.(*VerifyError)
	if !ok || verr.Result != WrongName {
		t.Fatalf("expected WrongName VerifyError, got %v", err)
	}
}

func TestDispatchTooManyArgs(t *testing.T) {
	s := NewStore()
	s.Register(&Descr{Name: "result", Args: []ArgShape{{Kind: token.Identifier}}, Handler: func([]token.Token) error { return nil }})
	err := s.Dispatch("result", []token.Token{tok(token.Identifier, "bin"), tok(token.Identifier, "oct")})
	verr, ok := err.(*VerifyError)
	if !ok || verr.Result != TooMany {
		t.Fatalf("expected TooMany VerifyError, got %v", err)
	}
}

func TestDispatchTooFewArgs(t *testing.T) {
	s := NewStore()
	s.Register(&Descr{Name: "add", Args: []ArgShape{{Kind: token.Identifier, Required: true}}, Handler: func([]token.Token) error { return nil }})
	err := s.Dispatch("add", nil)
	verr, ok := err.(*VerifyError)
	if !ok || verr.Result != TooFew {
		t.Fatalf("expected TooFew VerifyError, got %v", err)
	}
}

func TestDispatchWrongKind(t *testing.T) {
	s := NewStore()
	s.Register(&Descr{Name: "list", Args: []ArgShape{{Kind: token.String}}, Handler: func([]token.Token) error { return nil }})
	err := s.Dispatch("list", []token.Token{tok(token.Identifier, "path")})
	verr, ok := err.(*VerifyError)
	if !ok || verr.Result != WrongKind {
		t.Fatalf("expected WrongKind VerifyError, got %v", err)
	}
}

func TestDispatchInvokesHandlerOnSuccess(t *testing.T) {
	s := NewStore()
	called := false
	s.Register(&Descr{Name: "exit", Handler: func([]token.Token) error { called = true; return nil }})
	if err := s.Dispatch("exit", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatalf("expected handler to be invoked")
	}
}

func TestFormatIntBases(t *testing.T) {
	cases := []struct {
		i    int64
		b    Base
		want string
	}{
		{42, Dec, "42"},
		{5, Bin, "0b101"},
		{8, Oct, "010"},
		{255, Hex, "0xff"},
		{-5, Bin, "-0b101"},
	}
	for _, c := range cases {
		if got := FormatInt(c.i, c.b); got != c.want {
			t.Errorf("FormatInt(%d, %v) = %q, want %q", c.i, c.b, got, c.want)
		}
	}
}

func TestParseBase(t *testing.T) {
	if b, ok := ParseBase("hex"); !ok || b != Hex {
		t.Fatalf("expected Hex, got %v, %v", b, ok)
	}
	if _, ok := ParseBase("nonsense"); ok {
		t.Fatalf("expected ParseBase to reject an unknown base name")
	}
}
