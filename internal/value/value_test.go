package value

import (
	"math"
	"testing"
)

func TestIntArithmeticFolds(t *testing.T) {
	got := Binary(BAdd, Int(1), Binary(BMul, Int(2), Int(3)))
	if got.Type() != TInt || got.AsInt() != 7 {
		t.Fatalf("1 + 2*3 = %v, want Int(7)", got)
	}
}

func TestFractionAddition(t *testing.T) {
	got := Binary(BAdd, Frac(1, 2), Frac(1, 3))
	if got.Type() != TFraction {
		t.Fatalf("expected fraction, got %v", got)
	}
	fr := got.AsFraction()
	if fr.Num != 5 || fr.Den != 6 || fr.Neg {
		t.Fatalf("1/2 + 1/3 = %v, want 5/6", got)
	}
}

func TestComplexMultiplication(t *testing.T) {
	got := Binary(BMul, Cplx(7, 10), Cplx(10, 11))
	c := got.AsComplex()
	if c.Re != -40 || c.Im != 177 {
		t.Fatalf("(7+10i)*(10+11i) = %v, want -40+177i", got)
	}
}

func TestIntDivByZeroPromotesToFloatInf(t *testing.T) {
	got := Binary(BDiv, Int(1), Int(0))
	if got.Type() != TFloat {
		t.Fatalf("1/0 type = %v, want Float", got.Type())
	}
	if !isPosInf(got.AsFloat()) {
		t.Fatalf("1/0 = %v, want +inf", got.AsFloat())
	}
	neg := Binary(BDiv, Int(-1), Int(0))
	if !isNegInf(neg.AsFloat()) {
		t.Fatalf("-1/0 = %v, want -inf", neg.AsFloat())
	}
	zero := Binary(BDiv, Int(0), Int(0))
	if !isNaN(zero.AsFloat()) {
		t.Fatalf("0/0 = %v, want NaN", zero.AsFloat())
	}
}

func TestUndefPropagates(t *testing.T) {
	got := Binary(BAdd, UndefV(), Int(1))
	if !got.IsUndef() {
		t.Fatalf("Undef + 1 = %v, want Undef", got)
	}
}

func TestDoubleNegationIdentity(t *testing.T) {
	v := Int(42)
	got := Unary(UNeg, Unary(UNeg, v))
	if got.Type() != TInt || got.AsInt() != 42 {
		t.Fatalf("--42 = %v, want 42", got)
	}
}

func TestArrayBroadcastAndCartesian(t *testing.T) {
	s := NewStore()
	a := s.Alloc(0)
	a.Append(Int(1))
	a.Append(Int(2))

	b := s.Alloc(0)
	b.Append(Int(10))
	b.Append(Int(20))

	scalarResult := Binary(BAdd, Arr(a), Int(5))
	if scalarResult.Type() != TArray || scalarResult.AsArray().Len() != 2 {
		t.Fatalf("array+scalar shape wrong: %v", scalarResult)
	}
	if scalarResult.AsArray().At(0).AsInt() != 6 || scalarResult.AsArray().At(1).AsInt() != 7 {
		t.Fatalf("array+scalar values wrong: %v", scalarResult)
	}

	cart := Binary(BMul, Arr(a), Arr(b))
	if cart.AsArray().Len() != 4 {
		t.Fatalf("array*array cartesian size = %d, want 4", cart.AsArray().Len())
	}
}

func TestArrayTotalOrder(t *testing.T) {
	s := NewStore()
	a := s.Alloc(0)
	a.Append(Int(1))
	a.Append(Int(2))
	b := s.Alloc(0)
	b.Append(Int(1))
	b.Append(Int(3))

	lt := Binary(BCmpL, Arr(a), Arr(b))
	eq := Binary(BCmpE, Arr(a), Arr(b))
	gt := Binary(BCmpG, Arr(a), Arr(b))
	trueCount := 0
	for _, r := range []Value{lt, eq, gt} {
		if r.AsBool() {
			trueCount++
		}
	}
	if trueCount != 1 {
		t.Fatalf("exactly one of <,==,> must hold, got lt=%v eq=%v gt=%v", lt, eq, gt)
	}
}

func TestPowNegativeBaseEvenRootIsComplex(t *testing.T) {
	got := Binary(BPow, Int(-4), Float(1.0/2))
	if got.Type() != TComplex {
		t.Fatalf("Pow(-4, 1/2) type = %v, want Complex", got.Type())
	}
	c := got.AsComplex()
	if c.Re != 0 || math.Abs(c.Im-2) > 1e-9 {
		t.Fatalf("Pow(-4, 1/2) = %v, want 0+2i", got)
	}
}

func TestPowNegativeBaseOddRootIsRealNegative(t *testing.T) {
	got := Binary(BPow, Int(-8), Float(1.0/3))
	if got.Type() != TFloat {
		t.Fatalf("Pow(-8, 1/3) type = %v, want Float", got.Type())
	}
	if math.Abs(got.AsFloat()-(-2)) > 1e-9 {
		t.Fatalf("Pow(-8, 1/3) = %v, want -2", got)
	}
}

func TestRootNegativeBaseEvenDegreeIsComplex(t *testing.T) {
	got := Binary(BRoot, Int(-4), Int(2))
	if got.Type() != TComplex {
		t.Fatalf("Root(-4, 2) type = %v, want Complex", got.Type())
	}
	c := got.AsComplex()
	if c.Re != 0 || math.Abs(c.Im-2) > 1e-9 {
		t.Fatalf("Root(-4, 2) = %v, want 0+2i", got)
	}
}

func TestRootNegativeBaseOddDegreeIsRealNegative(t *testing.T) {
	got := Binary(BRoot, Int(-8), Int(3))
	if got.Type() != TFloat {
		t.Fatalf("Root(-8, 3) type = %v, want Float", got.Type())
	}
	if math.Abs(got.AsFloat()-(-2)) > 1e-9 {
		t.Fatalf("Root(-8, 3) = %v, want -2", got)
	}
}

func isPosInf(f float64) bool { return f > 0 && f*2 == f }
func isNegInf(f float64) bool { return f < 0 && f*2 == f }
func isNaN(f float64) bool    { return f != f }
