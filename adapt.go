package expr

import (
	"reflect"
)

// The adapters in this file turn expressions into ordinary typed functions
// for use with generic algorithms, e.g.
//
//	slices.SortFunc(s, expr.Compare[int](expr.Gt(expr.P1, expr.P2)))
//
// Each adapter checks the expression's arity when it is created, so an
// expression that selects more arguments than the function receives panics
// with an *ArityError before it is ever evaluated.

// Func1 adapts e to a function of one argument. The result converts to R
// as in assignment, with numeric conversions allowed.
func Func1[A, R any](e Expr) func(A) R {
	mustArity(e, 1)
	return func(a A) R {
		return as[R](e.Eval([]reflect.Value{arg(a)}))
	}
}

// Func2 adapts e to a function of two arguments.
func Func2[A, B, R any](e Expr) func(A, B) R {
	mustArity(e, 2)
	return func(a A, b B) R {
		return as[R](e.Eval([]reflect.Value{arg(a), arg(b)}))
	}
}

// Func3 adapts e to a function of three arguments.
func Func3[A, B, C, R any](e Expr) func(A, B, C) R {
	mustArity(e, 3)
	return func(a A, b B, c C) R {
		return as[R](e.Eval([]reflect.Value{arg(a), arg(b), arg(c)}))
	}
}

// Pred adapts e to a predicate. The result of e is interpreted as a
// condition, as for And and Or.
func Pred[T any](e Expr) func(T) bool {
	mustArity(e, 1)
	return func(x T) bool {
		return truth("pred", e.Eval([]reflect.Value{arg(x)}))
	}
}

// Less adapts e to a strict weak ordering function.
func Less[T any](e Expr) func(a, b T) bool {
	mustArity(e, 2)
	return func(a, b T) bool {
		return truth("less", e.Eval([]reflect.Value{arg(a), arg(b)}))
	}
}

// Compare adapts an ordering expression e, such as Lt(P1, P2), to a
// three-way comparison function for slices.SortFunc and similar.
func Compare[T any](e Expr) func(a, b T) int {
	less := Less[T](e)
	return func(a, b T) int {
		switch {
		case less(a, b):
			return -1
		case less(b, a):
			return 1
		}
		return 0
	}
}

// Each adapts e to a function of one argument discarding its result.
func Each[T any](e Expr) func(T) {
	mustArity(e, 1)
	return func(x T) {
		e.Eval([]reflect.Value{arg(x)})
	}
}

// Each2 adapts e to a function of two arguments discarding its result.
func Each2[A, B any](e Expr) func(A, B) {
	mustArity(e, 2)
	return func(a A, b B) {
		e.Eval([]reflect.Value{arg(a), arg(b)})
	}
}

func mustArity(e Expr, n int) {
	if err := wrongArity(e, n); err != nil {
		panic(err)
	}
}

// arg converts a typed argument.
func arg[T any](x T) reflect.Value {
	v := reflect.ValueOf(any(x))
	if !v.IsValid() {
		return reflect.Zero(reflect.TypeOf((*T)(nil)).Elem())
	}
	return v
}

// as converts an evaluation result to R.
func as[R any](v reflect.Value) R {
	var r R
	t := reflect.TypeOf(&r).Elem()
	v = indirect(v)
	if isNilInterface(v) {
		convert("result", v, t)
		return r
	}
	reflect.ValueOf(&r).Elem().Set(convert("result", v, t))
	return r
}
