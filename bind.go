package expr

import (
	"reflect"
	"strconv"
)

// Bind creates an expression calling a function with parameters. When
// invoked, it evaluates fn, then each parameter in order, all with the same
// arguments, and then calls the function with the parameter values. fn may
// be a function value, which becomes a Constant, or any expression that
// evaluates to a function, such as a placeholder or a Method expression.
//
// Parameters convert to the function's parameter types as in assignment,
// with conversions between numeric types allowed. A function with no
// results evaluates to nil; a function with more than one result cannot
// be bound. When fn is a function value, the parameter count and result
// count are checked immediately.
func Bind(fn any, params ...any) Op {
	f := Lift(fn)
	subs := make([]Expr, 0, 1+len(params))
	subs = append(subs, f)
	for _, p := range params {
		subs = append(subs, Lift(p))
	}
	ps := subs[1:]
	if leaf(f) {
		v := indirect(f.Eval(nil))
		if v.Kind() != reflect.Func {
			panic(opError("()", "not a function", v))
		}
		checkCall(v.Type(), len(ps))
	}
	return newOp("()", formCall, func(args []reflect.Value) reflect.Value {
		v := indirect(f.Eval(args))
		in := make([]reflect.Value, len(ps))
		for i, p := range ps {
			in[i] = p.Eval(args)
		}
		return call(v, in)
	}, subs...)
}

// checkCall panics if a function of type t cannot be called with n
// parameters for a single result.
func checkCall(t reflect.Type, n int) {
	switch {
	case t.IsVariadic() && n < t.NumIn()-1,
		!t.IsVariadic() && n != t.NumIn():
		panic(&OperatorError{Op: "()", Types: []reflect.Type{t}, Reason: "cannot call with " + strconv.Itoa(n) + " arguments"})
	case t.NumOut() > 1:
		panic(&OperatorError{Op: "()", Types: []reflect.Type{t}, Reason: "multiple-value function in single-value context"})
	}
}

// call calls a function value with evaluated parameters.
func call(f reflect.Value, in []reflect.Value) reflect.Value {
	if f.Kind() != reflect.Func {
		panic(opError("()", "not a function", f))
	}
	if f.IsNil() {
		panic(&DomainError{X: "nil function", Func: "()"})
	}
	t := f.Type()
	checkCall(t, len(in))
	for i, x := range in {
		var pt reflect.Type
		if t.IsVariadic() && i >= t.NumIn()-1 {
			pt = t.In(t.NumIn() - 1).Elem()
		} else {
			pt = t.In(i)
		}
		in[i] = convert("()", indirect(x), pt)
	}
	r := f.Call(in)
	if len(r) == 0 {
		return reflect.Value{}
	}
	return r[0]
}
