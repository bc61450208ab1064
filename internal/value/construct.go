package value

// Construct implements the IR's type-constructor opcodes
// (Bool, Int, Float, Frac, Cplx): each coerces its arguments into the
// named type, yielding Undef on validation failure (spec.md §4.6).
func ConstructBool(args []Value) Value {
	if len(args) != 1 {
		return UndefV()
	}
	return Bool(truthy(args[0]))
}

func ConstructInt(args []Value) Value {
	if len(args) != 1 {
		return UndefV()
	}
	v := args[0]
	switch v.tag {
	case TBool, TInt:
		return Int(toInt(v))
	case TFloat:
		return Int(int64(v.f))
	case TFraction:
		return Int(int64(toFloat(v)))
	}
	return UndefV()
}

func ConstructFloat(args []Value) Value {
	if len(args) != 1 {
		return UndefV()
	}
	v := args[0]
	switch v.tag {
	case TBool, TInt, TFraction:
		return Float(toFloat(v))
	case TFloat:
		return v
	}
	return UndefV()
}

func ConstructFraction(args []Value) Value {
	switch len(args) {
	case 1:
		v := args[0]
		switch v.tag {
		case TBool, TInt:
			return Frac(toInt(v), 1)
		case TFraction:
			return v
		}
		return UndefV()
	case 2:
		n, ok1 := asInt(args[0])
		d, ok2 := asInt(args[1])
		if !ok1 || !ok2 {
			return UndefV()
		}
		return Frac(n, d)
	}
	return UndefV()
}

func ConstructComplex(args []Value) Value {
	switch len(args) {
	case 1:
		v := args[0]
		if v.tag == TComplex {
			return v
		}
		if rank(v.tag) >= 0 {
			return Cplx(toFloat(v), 0)
		}
		return UndefV()
	case 2:
		if rank(args[0].tag) < 0 || rank(args[1].tag) < 0 {
			return UndefV()
		}
		return Cplx(toFloat(args[0]), toFloat(args[1]))
	}
	return UndefV()
}

// Test reports whether v's runtime tag equals want (the IR's Test /
// is-type opcode).
func Test(v Value, want TypeID) bool { return v.tag == want }
