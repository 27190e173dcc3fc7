package expr

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"
)

// ArityError is the panic value when an expression selects an argument
// position beyond the arguments supplied to an invocation.
type ArityError struct {
	// Want is the number of arguments the expression needs.
	Want int
	// Got is the number of arguments that were supplied.
	Got int
}

func (err *ArityError) Error() string {
	return "expression needs " + strconv.Itoa(err.Want) + " arguments but was called with " + strconv.Itoa(err.Got)
}

// OperatorError is the panic value when an operator is applied to operands
// of types which do not support it.
type OperatorError struct {
	// Op is the operator or combinator name.
	Op string
	// Types is the types of the operands. A nil element is an untyped nil.
	Types []reflect.Type
	// Reason optionally describes the failure more specifically.
	Reason string
}

func (err *OperatorError) Error() string {
	var b strings.Builder
	b.WriteString("invalid operation ")
	b.WriteString(strconv.Quote(err.Op))
	b.WriteString(" on (")
	for i, t := range err.Types {
		if i > 0 {
			b.WriteString(", ")
		}
		if t == nil {
			b.WriteString("nil")
			continue
		}
		b.WriteString(t.String())
	}
	b.WriteByte(')')
	if err.Reason != "" {
		b.WriteString(": ")
		b.WriteString(err.Reason)
	}
	return b.String()
}

// opError builds an OperatorError from operand values.
func opError(op string, reason string, vs ...reflect.Value) *OperatorError {
	ts := make([]reflect.Type, len(vs))
	for i, v := range vs {
		if v.IsValid() && !isNilInterface(v) {
			ts[i] = v.Type()
		}
	}
	return &OperatorError{Op: op, Types: ts, Reason: reason}
}

// DomainError is the panic value when an operator is applied to a value
// outside its domain, e.g. an integer division by zero or a dereference of
// a nil pointer. DomainError unwraps to big.ErrNaN.
type DomainError struct {
	// X is the out-of-domain operand.
	X any
	// Func is a name identifying the operator.
	Func string
}

func (err *DomainError) Error() string {
	r := fmt.Sprint(err.X) + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	return r
}

func (err *DomainError) Unwrap() error {
	return big.ErrNaN{}
}

// wrongArity reports whether n arguments are too few for e.
func wrongArity(e Expr, n int) *ArityError {
	if w := e.Arity(); w > n {
		return &ArityError{Want: w, Got: n}
	}
	return nil
}
