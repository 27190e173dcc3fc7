package expr

import (
	"fmt"
	"reflect"
	"strconv"
)

// Placeholder is a leaf selecting one positional invocation argument. The
// argument is selected as passed, so a pointer argument is received by
// reference.
type Placeholder int

// Placeholders for the first seven invocation arguments.
const (
	P1 Placeholder = iota
	P2
	P3
	P4
	P5
	P6
	P7
)

// Eval returns the selected argument. It panics with an *ArityError if
// there are too few arguments.
func (p Placeholder) Eval(args []reflect.Value) reflect.Value {
	if int(p) >= len(args) {
		panic(&ArityError{Want: int(p) + 1, Got: len(args)})
	}
	return args[p]
}

// Arity returns the number of arguments needed to select p.
func (p Placeholder) Arity() int {
	if p < 0 {
		panic("expr: negative placeholder " + strconv.Itoa(int(p)))
	}
	return int(p) + 1
}

// Call returns the selected argument.
func (p Placeholder) Call(args ...any) any {
	return Call(p, args...)
}

// Index creates an expression indexing the selected argument.
func (p Placeholder) Index(i any) Op {
	return Index(p, i)
}

// Assign creates an expression assigning rhs to the selected argument,
// which must be a pointer or otherwise addressable.
func (p Placeholder) Assign(rhs any) Op {
	return Assign(p, rhs)
}

// Field creates an expression selecting a struct field of the selected
// argument.
func (p Placeholder) Field(name string) Op {
	return Field(p, name)
}

// Method creates an expression selecting a method value of the selected
// argument. Bind the result to call the method.
func (p Placeholder) Method(name string) Op {
	return Method(p, name)
}

// Bind creates an expression calling the selected argument, which must be
// a function, with params.
func (p Placeholder) Bind(params ...any) Op {
	return Bind(p, params...)
}

func (p Placeholder) String() string {
	return "_" + strconv.Itoa(int(p)+1)
}

// Variable is a leaf referring to storage owned by the caller. It ignores
// invocation arguments. The storage must outlive every evaluation of the
// variable and of every expression built from it.
type Variable struct {
	v reflect.Value
}

// Var creates a variable referring to *p. p must not be nil.
func Var[T any](p *T) Variable {
	if p == nil {
		panic("expr: Var of nil pointer")
	}
	return Variable{v: reflect.ValueOf(p).Elem()}
}

// Eval returns the referenced storage. The result is addressable.
func (v Variable) Eval(args []reflect.Value) reflect.Value {
	return v.v
}

// Arity returns 0.
func (v Variable) Arity() int {
	return 0
}

// Call returns the current value of the referenced storage.
func (v Variable) Call(args ...any) any {
	return Call(v, args...)
}

// Assign creates an expression assigning rhs to the referenced storage.
func (v Variable) Assign(rhs any) Op {
	return Assign(v, rhs)
}

// Index creates an expression indexing the referenced storage.
func (v Variable) Index(i any) Op {
	return Index(v, i)
}

func (v Variable) String() string {
	return "var(" + v.v.Type().String() + ")"
}

// Constant is a leaf holding its own copy of a value. It ignores invocation
// arguments, and its value cannot be assigned through expressions. Slices,
// maps, and pointers held by a constant still refer to their original
// elements, as Go values do.
type Constant struct {
	v reflect.Value
}

// Const creates a constant holding x.
func Const(x any) Constant {
	return Constant{v: valueOf(x)}
}

// Eval returns the held value. The result is not addressable.
func (c Constant) Eval(args []reflect.Value) reflect.Value {
	return c.v
}

// Arity returns 0.
func (c Constant) Arity() int {
	return 0
}

// Call returns the held value.
func (c Constant) Call(args ...any) any {
	return Call(c, args...)
}

// Index creates an expression indexing the held value.
func (c Constant) Index(i any) Op {
	return Index(c, i)
}

func (c Constant) String() string {
	if isNilInterface(c.v) {
		return "nil"
	}
	if c.v.Kind() == reflect.String {
		return strconv.Quote(c.v.String())
	}
	return fmt.Sprint(c.v)
}

// Lift converts x to an expression. An Expr is returned unchanged; any
// other value becomes a Constant. Use Var to capture storage by reference.
func Lift(x any) Expr {
	if e, ok := x.(Expr); ok {
		return e
	}
	return Const(x)
}

// leaf reports whether e is a variable or constant, whose types are known
// without any arguments. A variable of interface type is not a leaf, since
// the type of the value it holds may change before evaluation.
func leaf(e Expr) bool {
	switch e := e.(type) {
	case Variable:
		return e.v.Kind() != reflect.Interface
	case Constant:
		return true
	}
	return false
}
