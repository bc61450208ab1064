package driver

import (
	"testing"

	"tnac/internal/feedback"
	"tnac/internal/value"
)

func TestDriverEvalAcrossChunksSharesResult(t *testing.T) {
	d := New(feedback.Default())

	v, err := d.Eval("chunk1", "x = 1 : x = x + 41 : x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Type() != value.TInt || v.AsInt() != 42 {
		t.Fatalf("expected Int(42), got %s", v.String())
	}

	v2, err := d.Eval("chunk2", "_result + 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v2.Type() != value.TInt || v2.AsInt() != 43 {
		t.Fatalf("expected _result from the previous chunk to carry over, got %s", v2.String())
	}
}

func TestHandleCommandExit(t *testing.T) {
	d := New(feedback.Default())
	handled, err := d.HandleCommand("repl", "#exit")
	if !handled {
		t.Fatalf("expected #exit to be recognised as a command")
	}
	if _, ok := err.(ExitRequested); !ok {
		t.Fatalf("expected ExitRequested, got %v", err)
	}
}

func TestHandleCommandIgnoresOrdinaryExpressions(t *testing.T) {
	d := New(feedback.Default())
	handled, err := d.HandleCommand("repl", "1 + 2")
	if handled {
		t.Fatalf("expected an ordinary expression not to be treated as a command")
	}
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHandleCommandUnknownReportsVerifyError(t *testing.T) {
	d := New(feedback.Default())
	handled, err := d.HandleCommand("repl", "#bogus")
	if !handled {
		t.Fatalf("expected a '#'-prefixed token to be recognised as a command attempt")
	}
	if err == nil {
		t.Fatalf("expected an unknown-command error")
	}
}
