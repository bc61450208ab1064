// Package value implements tnac's runtime value model: a tagged union
// over Undef, Bool, Int, Float, Complex, Fraction, Function and Array,
// with unary/binary operator dispatch over the promotion lattice
//
//	Bool < Int < Fraction < Float < Complex
//
// Function and Array are "sticky" (an op involving one stays that
// kind); any op touching Undef yields Undef.
//
// Grounded in spec.md §3/§4.7 and
// original_source/tnac_lib/src/eval/value/value.cpp (the `eval::value`
// tagged union and its visitor-based arithmetic); the Go
// representation is a plain tagged struct rather than the teacher's
// internal/vmregister NaN-boxed 64-bit encoding — NaN-boxing a 2-float
// Complex and a 4-field Fraction (num, den, sign, inf-marker) without
// unsafe pointer tricks that this exercise cannot verify by compiling
// would be significantly riskier than a tagged struct, so the boxing
// technique itself was not reused (see DESIGN.md).
package value

import (
	"fmt"
	"math"
)

// TypeID identifies a value's runtime tag; used by the Test opcode.
type TypeID uint8

const (
	Undef TypeID = iota
	TBool
	TInt
	TFloat
	TComplex
	TFraction
	TFunction
	TArray
)

func (t TypeID) String() string {
	switch t {
	case Undef:
		return "undef"
	case TBool:
		return "bool"
	case TInt:
		return "int"
	case TFloat:
		return "float"
	case TComplex:
		return "complex"
	case TFraction:
		return "fraction"
	case TFunction:
		return "function"
	case TArray:
		return "array"
	}
	return "?"
}

// Complex is a pair of float64 components. Complex.Imag == 0 does not
// implicitly narrow to Float (spec.md §3 invariant).
type Complex struct{ Re, Im float64 }

// Fraction is a signed rational with an explicit sign and infinity
// marker, so 1/0 can be represented distinctly from an error.
// Denominator is always >= 1 unless Inf is set.
type Fraction struct {
	Num, Den int64
	Neg      bool
	Inf      bool // true => NaN-tagged (0/0) or +/-inf depending on Neg/Num
	NaN      bool
}

// FuncRef is an opaque reference to an IR function; the eval package
// supplies the concrete type satisfying this interface.
type FuncRef interface {
	FuncName() string
}

// Value is the tagged union. The zero Value is Undef.
type Value struct {
	tag  TypeID
	b    bool
	i    int64
	f    float64
	c    Complex
	frac Fraction
	fn   FuncRef
	arr  *Array
}

func UndefV() Value           { return Value{tag: Undef} }
func Bool(b bool) Value       { return Value{tag: TBool, b: b} }
func Int(i int64) Value       { return Value{tag: TInt, i: i} }
func Float(f float64) Value   { return Value{tag: TFloat, f: f} }
func Cplx(re, im float64) Value { return Value{tag: TComplex, c: Complex{re, im}} }
func Func(fn FuncRef) Value   { return Value{tag: TFunction, fn: fn} }
func Arr(a *Array) Value      { return Value{tag: TArray, arr: a} }

func Frac(num, den int64) Value {
	fr := Fraction{Num: num, Den: den}
	normalizeFraction(&fr)
	return Value{tag: TFraction, frac: fr}
}

func normalizeFraction(fr *Fraction) {
	if fr.Den == 0 {
		fr.Inf = true
		if fr.Num == 0 {
			fr.NaN = true
		} else {
			fr.Neg = fr.Num < 0
		}
		fr.Num, fr.Den = 0, 1
		return
	}
	if fr.Den < 0 {
		fr.Den = -fr.Den
		fr.Num = -fr.Num
	}
	if fr.Num < 0 {
		fr.Neg = !fr.Neg
		fr.Num = -fr.Num
	}
	g := gcd(fr.Num, fr.Den)
	if g > 1 {
		fr.Num /= g
		fr.Den /= g
	}
}

func gcd(a, b int64) int64 {
	if a == 0 {
		return b
	}
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		a = -a
	}
	return a
}

func (v Value) Type() TypeID { return v.tag }
func (v Value) IsUndef() bool { return v.tag == Undef }

func (v Value) AsBool() bool         { return v.b }
func (v Value) AsInt() int64         { return v.i }
func (v Value) AsFloat() float64     { return v.f }
func (v Value) AsComplex() Complex   { return v.c }
func (v Value) AsFraction() Fraction { return v.frac }
func (v Value) AsFunc() FuncRef      { return v.fn }
func (v Value) AsArray() *Array      { return v.arr }

// SizeOf reports the byte size used for IR-constant encoding.
func (v Value) SizeOf() int {
	switch v.tag {
	case Undef:
		return 0
	case TBool:
		return 1
	case TInt:
		return 8
	case TFloat:
		return 8
	case TComplex:
		return 16
	case TFraction:
		return 17 // num(8) + den(8) + flags(1)
	case TFunction:
		return 8 // pointer-sized reference
	case TArray:
		return 24 // data ptr + offset + count
	}
	return 0
}

func (v Value) String() string {
	switch v.tag {
	case Undef:
		return "undef"
	case TBool:
		return fmt.Sprintf("%t", v.b)
	case TInt:
		return fmt.Sprintf("%d", v.i)
	case TFloat:
		return formatFloat(v.f)
	case TComplex:
		return formatComplex(v.c)
	case TFraction:
		return formatFraction(v.frac)
	case TFunction:
		if v.fn != nil {
			return fmt.Sprintf("<fn %s>", v.fn.FuncName())
		}
		return "<fn>"
	case TArray:
		return v.arr.String()
	}
	return "?"
}

func formatFloat(f float64) string {
	if math.IsInf(f, 1) {
		return "+inf"
	}
	if math.IsInf(f, -1) {
		return "-inf"
	}
	if math.IsNaN(f) {
		return "nan"
	}
	return fmt.Sprintf("%g", f)
}

func formatComplex(c Complex) string {
	sign := "+"
	im := c.Im
	if im < 0 {
		sign = "-"
		im = -im
	}
	return fmt.Sprintf("%g%s%gi", c.Re, sign, im)
}

func formatFraction(fr Fraction) string {
	if fr.NaN {
		return "nan"
	}
	sign := ""
	if fr.Neg {
		sign = "-"
	}
	if fr.Inf {
		return sign + "inf"
	}
	return fmt.Sprintf("%s%d/%d", sign, fr.Num, fr.Den)
}
