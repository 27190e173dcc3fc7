package expr

import (
	"fmt"
	"reflect"
	"strings"
)

// Op is a composite expression node created by a combinator. It captures
// its already-coerced operands and evaluates them with the same arguments
// it is invoked with. Op values are immutable and safe to copy and to
// evaluate concurrently, provided the storage referenced by variables and
// pointer arguments is synchronized by the caller.
type Op struct {
	// name is the operator symbol or function name.
	name string
	form form
	// subs is the operands, in evaluation order.
	subs  []Expr
	arity int
	eval  func(args []reflect.Value) reflect.Value
	// loc locates the assignable place the op denotes. It is nil unless
	// evaluating the op with eval cannot produce the place, e.g. for map
	// elements.
	loc func(args []reflect.Value) place
}

// form is the shape of an op for formatting.
type form int8

const (
	formNone    form = iota
	formPrefix       // name sub
	formPostfix      // sub name
	formInfix        // sub name sub
	formIndex        // sub[sub]
	formSelect       // sub.name
	formCall         // sub(sub, ...)
	formFunc         // name(sub, ...)
)

func newOp(name string, f form, eval func(args []reflect.Value) reflect.Value, subs ...Expr) Op {
	return Op{name: name, form: f, subs: subs, arity: arity(subs...), eval: eval}
}

// Eval evaluates the op.
func (o Op) Eval(args []reflect.Value) reflect.Value {
	if o.eval == nil {
		panic("expr: Eval of zero Op")
	}
	return o.eval(args)
}

// Arity returns the number of arguments the op needs.
func (o Op) Arity() int {
	return o.arity
}

// Call invokes the op with args.
func (o Op) Call(args ...any) any {
	return Call(o, args...)
}

// Assign creates an expression assigning rhs to the place o evaluates to.
func (o Op) Assign(rhs any) Op {
	return Assign(o, rhs)
}

// Index creates an expression indexing the result of o.
func (o Op) Index(i any) Op {
	return Index(o, i)
}

// Field creates an expression selecting a struct field of the result of o.
func (o Op) Field(name string) Op {
	return Field(o, name)
}

// Method creates an expression selecting a method value of the result of o.
func (o Op) Method(name string) Op {
	return Method(o, name)
}

// Bind creates an expression calling the function o evaluates to with
// params, each evaluated with the same arguments as o.
func (o Op) Bind(params ...any) Op {
	return Bind(o, params...)
}

func (o Op) String() string {
	var b strings.Builder
	o.fmt(&b)
	return b.String()
}

func (o Op) fmt(b *strings.Builder) {
	switch o.form {
	case formPrefix:
		b.WriteByte('(')
		b.WriteString(o.name)
		fmtExpr(b, o.subs[0])
		b.WriteByte(')')
	case formPostfix:
		b.WriteByte('(')
		fmtExpr(b, o.subs[0])
		b.WriteString(o.name)
		b.WriteByte(')')
	case formInfix:
		b.WriteByte('(')
		fmtExpr(b, o.subs[0])
		if o.name != "," {
			b.WriteByte(' ')
		}
		b.WriteString(o.name)
		b.WriteByte(' ')
		fmtExpr(b, o.subs[1])
		b.WriteByte(')')
	case formIndex:
		fmtExpr(b, o.subs[0])
		b.WriteByte('[')
		fmtExpr(b, o.subs[1])
		b.WriteByte(']')
	case formSelect:
		fmtExpr(b, o.subs[0])
		b.WriteByte('.')
		b.WriteString(o.name)
	case formCall:
		fmtExpr(b, o.subs[0])
		fmtArgs(b, o.subs[1:])
	case formFunc:
		b.WriteString(o.name)
		fmtArgs(b, o.subs)
	default:
		panic(fmt.Sprintf("expr: invalid op form %d for %q", o.form, o.name))
	}
}

func fmtArgs(b *strings.Builder, subs []Expr) {
	b.WriteByte('(')
	for i, e := range subs {
		if i > 0 {
			b.WriteString(", ")
		}
		fmtExpr(b, e)
	}
	b.WriteByte(')')
}

func fmtExpr(b *strings.Builder, e Expr) {
	switch e := e.(type) {
	case Op:
		e.fmt(b)
	case fmt.Stringer:
		b.WriteString(e.String())
	default:
		fmt.Fprintf(b, "<%T>", e)
	}
}

// lift coerces the operands of a combinator. At least one of them must
// already be an expression, so that combinators are only ever applied to
// expressions.
func lift(op string, xs ...any) []Expr {
	es := make([]Expr, len(xs))
	ok := false
	for i, x := range xs {
		if e, is := x.(Expr); is {
			ok = true
			es[i] = e
			continue
		}
		es[i] = Const(x)
	}
	if !ok {
		panic("expr: " + op + " needs at least one expression operand")
	}
	return es
}
