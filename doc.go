// Package expr implements deferred-evaluation expressions: point-free
// functions built from placeholders, variables, and constants combined
// through operators, for use as the arguments of higher-order functions.
//
// A placeholder such as P1 stands for an argument of the eventual call.
// Combinators like Add, Gt, and AddAssign combine operands into a new
// expression without evaluating anything. Calling the expression evaluates
// the whole tree with the same arguments, left operands before right ones:
//
//	gt := expr.Gt(expr.P1, expr.P2)
//	gt.Call(3, 2) // true
//	slices.SortFunc(s, expr.Compare[int](gt)) // sorts s in descending order
//
// Operands which are not already expressions become Constants, which hold
// their own copy of the value. To refer to storage instead, wrap a pointer
// with Var:
//
//	sum := 0
//	add := expr.Each[int](expr.AddAssign(expr.Var(&sum), expr.P1))
//	for _, x := range []int{1, 2, 3} {
//		add(x)
//	}
//	// sum == 6
//
// Arguments passed as pointers are received by reference: assignment,
// increment, and compound assignment combinators write through them, and
// Field, Method, and Index follow them as Go selectors do.
//
// Expressions are immutable once built, so they may be copied freely and
// evaluated concurrently as long as the storage they refer to is
// synchronized. Misuse, such as applying an operator to operands that don't
// support it or calling an expression with too few arguments, panics with an
// *OperatorError or *ArityError; TryCall converts those panics to errors.
package expr
