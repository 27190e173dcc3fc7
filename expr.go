package expr

import (
	"errors"
	"reflect"
)

// Expr is an expression node: a computation deferred until it is invoked
// with a list of arguments. Placeholder, Variable, Constant, and Op all
// implement Expr, and so may any other type, e.g. to add a leaf kind.
type Expr interface {
	// Eval evaluates the expression against the invocation arguments. The
	// result may be addressable, in which case it refers to storage that
	// assignment combinators modify. Eval must not modify args.
	Eval(args []reflect.Value) reflect.Value

	// Arity returns the minimum number of arguments the expression can be
	// evaluated with, i.e. one more than the greatest placeholder index it
	// contains.
	Arity() int
}

// Call invokes e with the given arguments and returns its result. An
// argument passed as a pointer is received by reference: assignments,
// increments, and compound assignments through a placeholder selecting it
// modify the pointee. Call panics with an *ArityError before evaluating
// anything if e needs more arguments than were supplied.
func Call(e Expr, args ...any) any {
	if err := wrongArity(e, len(args)); err != nil {
		panic(err)
	}
	return result(e.Eval(values(args)))
}

// TryCall is like Call, but returns the *ArityError, *OperatorError, or
// *DomainError that invoking e would panic with as an error instead.
// Other panics propagate.
func TryCall(e Expr, args ...any) (r any, err error) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		perr, ok := p.(error)
		if !ok {
			panic(p)
		}
		var (
			ae *ArityError
			oe *OperatorError
			de *DomainError
		)
		if errors.As(perr, &ae) || errors.As(perr, &oe) || errors.As(perr, &de) {
			r, err = nil, perr
			return
		}
		panic(p)
	}()
	return Call(e, args...), nil
}

// anyType is the type of an untyped nil operand.
var anyType = reflect.TypeOf((*any)(nil)).Elem()

// valueOf converts x to a reflect.Value. An untyped nil becomes the zero
// value of any rather than an invalid Value.
func valueOf(x any) reflect.Value {
	if x == nil {
		return reflect.Zero(anyType)
	}
	return reflect.ValueOf(x)
}

func values(args []any) []reflect.Value {
	vs := make([]reflect.Value, len(args))
	for i, a := range args {
		vs[i] = valueOf(a)
	}
	return vs
}

// result converts an evaluation result back to an interface value.
func result(v reflect.Value) any {
	if !v.IsValid() || isNilInterface(v) {
		return nil
	}
	if !v.CanInterface() {
		panic(opError("result", "value obtained through unexported field", v))
	}
	return v.Interface()
}

func isNilInterface(v reflect.Value) bool {
	return v.Kind() == reflect.Interface && v.IsNil()
}

// indirect unwraps non-nil interface values. An invalid Value, which is
// the result of calling a function without results, becomes an untyped nil.
func indirect(v reflect.Value) reflect.Value {
	if !v.IsValid() {
		return reflect.Zero(anyType)
	}
	for v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	return v
}

// arity returns the greatest arity among es.
func arity(es ...Expr) int {
	n := 0
	for _, e := range es {
		n = max(n, e.Arity())
	}
	return n
}
