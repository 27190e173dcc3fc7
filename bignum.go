package expr

import (
	"math/big"
	"reflect"
)

var (
	bigFloatType    = reflect.TypeOf(big.Float{})
	bigIntType      = reflect.TypeOf(big.Int{})
	bigFloatPtrType = reflect.TypeOf((*big.Float)(nil))
	bigIntPtrType   = reflect.TypeOf((*big.Int)(nil))
)

// isBig reports whether v is a big.Float or big.Int or a non-nil pointer to
// one.
func isBig(v reflect.Value) bool {
	switch v.Type() {
	case bigFloatType, bigIntType:
		return true
	case bigFloatPtrType, bigIntPtrType:
		return !v.IsNil()
	}
	return false
}

func isBigFloat(v reflect.Value) bool {
	t := v.Type()
	return t == bigFloatType || t == bigFloatPtrType
}

// bigPtr returns the pointer to the arbitrary-precision value in v, copying
// it if v is not addressable.
func bigPtr(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Pointer:
		return v.Interface()
	}
	if v.CanAddr() {
		return v.Addr().Interface()
	}
	switch x := v.Interface().(type) {
	case big.Float:
		return new(big.Float).Copy(&x)
	case big.Int:
		return new(big.Int).Set(&x)
	}
	panic("expr: bigPtr of " + v.Type().String())
}

// toBigFloat converts a numeric or arbitrary-precision value to a
// *big.Float. The result may alias v.
func toBigFloat(op string, v reflect.Value) *big.Float {
	if isBig(v) {
		switch x := bigPtr(v).(type) {
		case *big.Float:
			return x
		case *big.Int:
			return new(big.Float).SetInt(x)
		}
	}
	switch numClass(v.Kind()) {
	case classInt:
		return new(big.Float).SetInt64(v.Int())
	case classUint:
		return new(big.Float).SetUint64(v.Uint())
	case classFloat:
		f := v.Float()
		if f != f {
			panic(&DomainError{X: f, Func: op})
		}
		return new(big.Float).SetFloat64(f)
	}
	panic(opError(op, "not convertible to *big.Float", v))
}

// toBigInt converts an integer or arbitrary-precision value to a *big.Int.
// The result may alias v. Floats are truncated toward zero.
func toBigInt(op string, v reflect.Value) *big.Int {
	if isBig(v) {
		switch x := bigPtr(v).(type) {
		case *big.Int:
			return x
		case *big.Float:
			if x.IsInf() {
				panic(&DomainError{X: x, Func: op})
			}
			z, _ := x.Int(nil)
			return z
		}
	}
	switch numClass(v.Kind()) {
	case classInt:
		return big.NewInt(v.Int())
	case classUint:
		return new(big.Int).SetUint64(v.Uint())
	case classFloat:
		return toBigInt(op, reflect.ValueOf(toBigFloat(op, v)))
	}
	panic(opError(op, "not convertible to *big.Int", v))
}

// bigBinary applies a binary operator where at least one operand is an
// arbitrary-precision number. The result is a new *big.Int if both operands
// are integers and a new *big.Float otherwise.
func bigBinary(op binop, l, r reflect.Value) reflect.Value {
	if isNilInterface(l) || isNilInterface(r) {
		panic(opError(op.String(), "", l, r))
	}
	if isBigFloat(l) || isBigFloat(r) || numClass(l.Kind()) == classFloat || numClass(r.Kind()) == classFloat {
		return bigFloatBinary(op, l, r)
	}
	if (!isBig(l) && numClass(l.Kind()) == classNone) || (!isBig(r) && numClass(r.Kind()) == classNone) {
		panic(opError(op.String(), "", l, r))
	}
	a, b := toBigInt(op.String(), l), toBigInt(op.String(), r)
	switch op {
	case opEq, opNe, opLt, opLe, opGt, opGe:
		return reflect.ValueOf(cmpResult(op, a.Cmp(b)))
	}
	z := new(big.Int)
	switch op {
	case opAdd:
		z.Add(a, b)
	case opSub:
		z.Sub(a, b)
	case opMul:
		z.Mul(a, b)
	case opDiv, opRem:
		if b.Sign() == 0 {
			panic(&DomainError{X: b, Func: op.String()})
		}
		// Quo and Rem truncate like Go's integer operators.
		if op == opDiv {
			z.Quo(a, b)
		} else {
			z.Rem(a, b)
		}
	case opAnd:
		z.And(a, b)
	case opOr:
		z.Or(a, b)
	case opXor:
		z.Xor(a, b)
	case opAndNot:
		z.AndNot(a, b)
	case opShl, opShr:
		if !b.IsUint64() {
			panic(&DomainError{X: b, Func: op.String()})
		}
		if op == opShl {
			z.Lsh(a, uint(b.Uint64()))
		} else {
			z.Rsh(a, uint(b.Uint64()))
		}
	default:
		panic(opError(op.String(), "", l, r))
	}
	return reflect.ValueOf(z)
}

func bigFloatBinary(op binop, l, r reflect.Value) reflect.Value {
	a, b := toBigFloat(op.String(), l), toBigFloat(op.String(), r)
	switch op {
	case opEq, opNe, opLt, opLe, opGt, opGe:
		return reflect.ValueOf(cmpResult(op, a.Cmp(b)))
	}
	z := new(big.Float)
	switch op {
	case opAdd:
		if a.IsInf() && b.IsInf() && a.Signbit() != b.Signbit() {
			panic(&DomainError{X: b, Func: op.String()})
		}
		z.Add(a, b)
	case opSub:
		if a.IsInf() && b.IsInf() && a.Signbit() == b.Signbit() {
			panic(&DomainError{X: b, Func: op.String()})
		}
		z.Sub(a, b)
	case opMul:
		if a.IsInf() && b.Sign() == 0 || a.Sign() == 0 && b.IsInf() {
			panic(&DomainError{X: b, Func: op.String()})
		}
		z.Mul(a, b)
	case opDiv:
		// Guard against invalid divisions, 0/0 or inf/inf.
		if a.Sign() == 0 && b.Sign() == 0 || a.IsInf() && b.IsInf() {
			panic(&DomainError{X: b, Func: op.String()})
		}
		z.Quo(a, b)
	default:
		panic(opError(op.String(), "", l, r))
	}
	return reflect.ValueOf(z)
}

// cmpResult converts the result of a Cmp method to the result of a
// relational operator.
func cmpResult(op binop, c int) bool {
	switch op {
	case opEq:
		return c == 0
	case opNe:
		return c != 0
	case opLt:
		return c < 0
	case opLe:
		return c <= 0
	case opGt:
		return c > 0
	case opGe:
		return c >= 0
	}
	panic("expr: cmpResult called with " + op.String())
}

func bigUnary(op unop, v reflect.Value) reflect.Value {
	switch x := bigPtr(v).(type) {
	case *big.Float:
		switch op {
		case opPlus:
			return reflect.ValueOf(new(big.Float).Copy(x))
		case opNeg:
			return reflect.ValueOf(new(big.Float).Neg(x))
		}
	case *big.Int:
		switch op {
		case opPlus:
			return reflect.ValueOf(new(big.Int).Set(x))
		case opNeg:
			return reflect.ValueOf(new(big.Int).Neg(x))
		case opCompl:
			return reflect.ValueOf(new(big.Int).Not(x))
		}
	}
	panic(opError(op.String(), "", v))
}

func bigSign(v reflect.Value) int {
	switch x := bigPtr(v).(type) {
	case *big.Float:
		return x.Sign()
	case *big.Int:
		return x.Sign()
	}
	panic("expr: bigSign of " + v.Type().String())
}

// bigCopy returns a new pointer to a copy of an arbitrary-precision value.
func bigCopy(v reflect.Value) reflect.Value {
	switch x := bigPtr(v).(type) {
	case *big.Float:
		return reflect.ValueOf(new(big.Float).Copy(x))
	case *big.Int:
		return reflect.ValueOf(new(big.Int).Set(x))
	}
	panic("expr: bigCopy of " + v.Type().String())
}
