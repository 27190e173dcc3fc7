package expr

import (
	"reflect"
)

// binaryOp builds the combinator for a binary operator. If both operands
// have known types, the operator is checked against them immediately.
func binaryOp(op binop, l, r any) Op {
	es := lift(op.String(), l, r)
	a, b := es[0], es[1]
	checkStatic(func(vs []reflect.Value) { binary(op, vs[0], vs[1]) }, a, b)
	return newOp(op.String(), formInfix, func(args []reflect.Value) reflect.Value {
		x := a.Eval(args)
		y := b.Eval(args)
		return binary(op, x, y)
	}, a, b)
}

// checkStatic applies a pure operator to the current values of its
// operands when all of them are variables or constants, so that type
// errors surface when the expression is built. Only *OperatorError counts as
// a failure; the values may well be outside the operator's domain.
func checkStatic(f func(vs []reflect.Value), es ...Expr) {
	vs := make([]reflect.Value, len(es))
	for i, e := range es {
		if !leaf(e) {
			return
		}
		vs[i] = e.Eval(nil)
	}
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		if _, ok := p.(*OperatorError); ok {
			panic(p)
		}
	}()
	f(vs)
}

// Add creates an expression adding l and r. Adding an integer to a slice,
// array, or pointer to array yields the suffix starting at that offset.
func Add(l, r any) Op { return binaryOp(opAdd, l, r) }

// Sub creates an expression subtracting r from l.
func Sub(l, r any) Op { return binaryOp(opSub, l, r) }

// Mul creates an expression multiplying l and r.
func Mul(l, r any) Op { return binaryOp(opMul, l, r) }

// Div creates an expression dividing l by r. Integer division by zero
// panics with a *DomainError.
func Div(l, r any) Op { return binaryOp(opDiv, l, r) }

// Rem creates an expression computing the remainder of integers l and r.
func Rem(l, r any) Op { return binaryOp(opRem, l, r) }

// BitAnd creates an expression computing the bitwise AND of l and r.
func BitAnd(l, r any) Op { return binaryOp(opAnd, l, r) }

// BitOr creates an expression computing the bitwise OR of l and r.
func BitOr(l, r any) Op { return binaryOp(opOr, l, r) }

// BitXor creates an expression computing the bitwise XOR of l and r.
func BitXor(l, r any) Op { return binaryOp(opXor, l, r) }

// AndNot creates an expression computing l &^ r.
func AndNot(l, r any) Op { return binaryOp(opAndNot, l, r) }

// Shl creates an expression shifting l left by r bits.
func Shl(l, r any) Op { return binaryOp(opShl, l, r) }

// Shr creates an expression shifting l right by r bits.
func Shr(l, r any) Op { return binaryOp(opShr, l, r) }

// Eq creates an expression comparing l and r for equality.
func Eq(l, r any) Op { return binaryOp(opEq, l, r) }

// Ne creates an expression comparing l and r for inequality.
func Ne(l, r any) Op { return binaryOp(opNe, l, r) }

// Lt creates an expression reporting whether l < r.
func Lt(l, r any) Op { return binaryOp(opLt, l, r) }

// Le creates an expression reporting whether l <= r.
func Le(l, r any) Op { return binaryOp(opLe, l, r) }

// Gt creates an expression reporting whether l > r.
func Gt(l, r any) Op { return binaryOp(opGt, l, r) }

// Ge creates an expression reporting whether l >= r.
func Ge(l, r any) Op { return binaryOp(opGe, l, r) }

// And creates an expression computing the logical AND of l and r. r is
// evaluated only if l is true. Operands may be booleans, numbers (true if
// nonzero), or nilable values (true if non-nil).
func And(l, r any) Op {
	es := lift("&&", l, r)
	a, b := es[0], es[1]
	return newOp("&&", formInfix, func(args []reflect.Value) reflect.Value {
		if !truth("&&", a.Eval(args)) {
			return reflect.ValueOf(false)
		}
		return reflect.ValueOf(truth("&&", b.Eval(args)))
	}, a, b)
}

// Or creates an expression computing the logical OR of l and r. r is
// evaluated only if l is false.
func Or(l, r any) Op {
	es := lift("||", l, r)
	a, b := es[0], es[1]
	return newOp("||", formInfix, func(args []reflect.Value) reflect.Value {
		if truth("||", a.Eval(args)) {
			return reflect.ValueOf(true)
		}
		return reflect.ValueOf(truth("||", b.Eval(args)))
	}, a, b)
}

// Comma creates an expression evaluating l, discarding its result, then
// evaluating and returning r.
func Comma(l, r any) Op {
	es := lift(",", l, r)
	a, b := es[0], es[1]
	return newOp(",", formInfix, func(args []reflect.Value) reflect.Value {
		a.Eval(args)
		return b.Eval(args)
	}, a, b)
}

func unaryOp(op unop, x Expr) Op {
	checkStatic(func(vs []reflect.Value) { unary(op, vs[0]) }, x)
	return newOp(op.String(), formPrefix, func(args []reflect.Value) reflect.Value {
		return unary(op, x.Eval(args))
	}, x)
}

// Plus creates an expression evaluating to a copy of the numeric value x.
func Plus(x Expr) Op { return unaryOp(opPlus, x) }

// Neg creates an expression negating x.
func Neg(x Expr) Op { return unaryOp(opNeg, x) }

// Not creates an expression computing the logical NOT of x.
func Not(x Expr) Op { return unaryOp(opNot, x) }

// Compl creates an expression computing the bitwise complement of the
// integer x.
func Compl(x Expr) Op { return unaryOp(opCompl, x) }

// PreInc creates an expression incrementing x and evaluating to x. x must
// be assignable, or a pointer to the value to increment. Incrementing a
// slice drops its first element.
func PreInc(x Expr) Op {
	return newOp("++", formPrefix, func(args []reflect.Value) reflect.Value {
		p := locate("++", x, args)
		step("++", p, 1)
		return p.get()
	}, x)
}

// PreDec creates an expression decrementing x and evaluating to x.
func PreDec(x Expr) Op {
	return newOp("--", formPrefix, func(args []reflect.Value) reflect.Value {
		p := locate("--", x, args)
		step("--", p, -1)
		return p.get()
	}, x)
}

// PostInc creates an expression incrementing x and evaluating to a copy of
// its value from before the increment.
func PostInc(x Expr) Op {
	return newOp("++", formPostfix, func(args []reflect.Value) reflect.Value {
		p := locate("++", x, args)
		old := copyOf(p.get())
		step("++", p, 1)
		return old
	}, x)
}

// PostDec creates an expression decrementing x and evaluating to a copy of
// its value from before the decrement.
func PostDec(x Expr) Op {
	return newOp("--", formPostfix, func(args []reflect.Value) reflect.Value {
		p := locate("--", x, args)
		old := copyOf(p.get())
		step("--", p, -1)
		return old
	}, x)
}

// Assign creates an expression assigning r to the place l denotes and
// evaluating to that place. l is located before r is evaluated. l must be
// assignable, a pointer to the storage to assign, or an Index into a map.
func Assign(l, r any) Op {
	es := lift("=", l, r)
	a, b := es[0], es[1]
	return newOp("=", formInfix, func(args []reflect.Value) reflect.Value {
		p := locate("=", a, args)
		p.set("=", b.Eval(args))
		return p.get()
	}, a, b)
}

func assignOp(op binop, l, r any) Op {
	name := op.String() + "="
	es := lift(name, l, r)
	a, b := es[0], es[1]
	return newOp(name, formInfix, func(args []reflect.Value) reflect.Value {
		p := locate(name, a, args)
		y := b.Eval(args)
		p.set(name, binary(op, p.get(), y))
		return p.get()
	}, a, b)
}

// AddAssign creates an expression performing l += r.
func AddAssign(l, r any) Op { return assignOp(opAdd, l, r) }

// SubAssign creates an expression performing l -= r.
func SubAssign(l, r any) Op { return assignOp(opSub, l, r) }

// MulAssign creates an expression performing l *= r.
func MulAssign(l, r any) Op { return assignOp(opMul, l, r) }

// DivAssign creates an expression performing l /= r.
func DivAssign(l, r any) Op { return assignOp(opDiv, l, r) }

// RemAssign creates an expression performing l %= r.
func RemAssign(l, r any) Op { return assignOp(opRem, l, r) }

// AndAssign creates an expression performing l &= r.
func AndAssign(l, r any) Op { return assignOp(opAnd, l, r) }

// OrAssign creates an expression performing l |= r.
func OrAssign(l, r any) Op { return assignOp(opOr, l, r) }

// XorAssign creates an expression performing l ^= r.
func XorAssign(l, r any) Op { return assignOp(opXor, l, r) }

// AndNotAssign creates an expression performing l &^= r.
func AndNotAssign(l, r any) Op { return assignOp(opAndNot, l, r) }

// ShlAssign creates an expression performing l <<= r.
func ShlAssign(l, r any) Op { return assignOp(opShl, l, r) }

// ShrAssign creates an expression performing l >>= r.
func ShrAssign(l, r any) Op { return assignOp(opShr, l, r) }
