package expr

import (
	"errors"
	"math"
	"math/big"
	"reflect"

	"github.com/zephyrtronium/bigfloat"
)

// Pow creates an expression raising x to the power y. If either operand is
// an arbitrary-precision number, the result is a new *big.Float computed to
// the greater of the operands' precisions; otherwise it is a float of the
// floating-point operand's type, or float64 for integers. A negative base
// with an exponent that is not an integer panics with a *DomainError.
func Pow(x, y any) Op {
	es := lift("pow", x, y)
	a, b := es[0], es[1]
	return newOp("pow", formFunc, func(args []reflect.Value) reflect.Value {
		l := indirect(a.Eval(args))
		r := indirect(b.Eval(args))
		if isBig(l) || isBig(r) {
			u, v := toBigFloat("pow", l), toBigFloat("pow", r)
			neg := u.Sign() < 0
			if neg && !v.IsInt() {
				panic(&DomainError{X: u, Func: "pow"})
			}
			z := new(big.Float).SetPrec(prec(u, v))
			bigfloat.Pow(z, new(big.Float).Abs(u), v)
			if neg {
				// Odd integer exponents keep the sign of the base.
				if n, _ := v.Int(nil); n.Bit(0) == 1 {
					z.Neg(z)
				}
			}
			return reflect.ValueOf(z)
		}
		u, v := float(l), float(r)
		if u < 0 && v != math.Trunc(v) {
			panic(&DomainError{X: u, Func: "pow"})
		}
		return floatResult(math.Pow(u, v), l, r)
	}, a, b)
}

// Exp creates an expression computing e**x.
func Exp(x Expr) Op {
	return monadic("exp", x, bigfloat.Exp, math.Exp)
}

// Log creates an expression computing the natural logarithm of x. A
// negative operand panics with a *DomainError.
func Log(x Expr) Op {
	return monadic("log", x, bigfloat.Log, math.Log)
}

// Sqrt creates an expression computing the square root of x. A negative
// operand panics with a *DomainError.
func Sqrt(x Expr) Op {
	return monadic("sqrt", x, (*big.Float).Sqrt, math.Sqrt)
}

// monadic builds a function of one real variable over machine and
// arbitrary-precision numbers. bf must set out to its result; if it is
// called outside its domain, it should panic with big.ErrNaN.
func monadic(name string, x Expr, bf func(out, in *big.Float) *big.Float, f func(float64) float64) Op {
	return newOp(name, formFunc, func(args []reflect.Value) reflect.Value {
		v := indirect(x.Eval(args))
		if isBig(v) {
			in := toBigFloat(name, v)
			r := new(big.Float).SetPrec(prec(in))
			callBig(name, in, func() { bf(r, in) })
			return reflect.ValueOf(r)
		}
		u := float(v)
		r := f(u)
		if math.IsNaN(r) && !math.IsNaN(u) {
			panic(&DomainError{X: u, Func: name})
		}
		return floatResult(r, v)
	}, x)
}

// callBig converts big.ErrNaN panics from f into domain errors.
func callBig(name string, in *big.Float, f func()) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		err, ok := r.(error) // panic if not error
		if ok && errors.As(err, &big.ErrNaN{}) {
			panic(&DomainError{X: in, Func: name})
		}
		panic(r)
	}()
	f()
}

// prec returns the greatest precision among xs, or 64 if they all have
// precision 0.
func prec(xs ...*big.Float) uint {
	var p uint
	for _, x := range xs {
		p = max(p, x.Prec())
	}
	if p == 0 {
		return 64
	}
	return p
}

// float converts a real operand to float64.
func float(v reflect.Value) float64 {
	switch numClass(v.Kind()) {
	case classInt:
		return float64(v.Int())
	case classUint:
		return float64(v.Uint())
	case classFloat:
		return v.Float()
	}
	panic(opError("float", "not a real number", v))
}

// floatResult converts r to the type of the first floating-point operand,
// or leaves it as float64 if there is none.
func floatResult(r float64, operands ...reflect.Value) reflect.Value {
	for _, v := range operands {
		if numClass(v.Kind()) == classFloat {
			return reflect.ValueOf(r).Convert(v.Type())
		}
	}
	return reflect.ValueOf(r)
}
