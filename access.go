package expr

import (
	"reflect"
)

// Index creates an expression indexing x with i. x may be an array, slice,
// string, map, or pointer to any of them. Indexing an addressable array or
// any slice yields an assignable element; indexing a map yields the element
// for the key or the zero value, and assigning to it stores into the map.
func Index(x, i any) Op {
	es := lift("[]", x, i)
	a, b := es[0], es[1]
	o := newOp("[]", formIndex, func(args []reflect.Value) reflect.Value {
		c := a.Eval(args)
		k := b.Eval(args)
		return index(c, k).get()
	}, a, b)
	o.loc = func(args []reflect.Value) place {
		c := a.Eval(args)
		k := b.Eval(args)
		p := index(c, k)
		if p.m.IsValid() {
			return p
		}
		return lvalue("[]", p.v)
	}
	return o
}

// index locates an element of a container.
func index(c, k reflect.Value) place {
	c, k = indirect(c), indirect(k)
	if c.Kind() == reflect.Pointer {
		if c.IsNil() {
			panic(&DomainError{X: "nil pointer", Func: "[]"})
		}
		c = c.Elem()
	}
	switch c.Kind() {
	case reflect.Array, reflect.Slice, reflect.String:
		var n int
		switch numClass(k.Kind()) {
		case classInt:
			n = int(k.Int())
		case classUint:
			n = int(k.Uint())
		default:
			panic(opError("[]", "index must be an integer", c, k))
		}
		if n < 0 || n >= c.Len() {
			panic(&DomainError{X: n, Func: "[]"})
		}
		return place{v: c.Index(n)}
	case reflect.Map:
		return place{m: c, k: convert("[]", k, c.Type().Key())}
	}
	panic(opError("[]", "", c, k))
}

// Field creates an expression selecting the field name of the struct x
// evaluates to, following pointers as Go selectors do. Selecting from an
// addressable struct or through a pointer yields an assignable field.
func Field(x any, name string) Op {
	a := lift("."+name, x)[0]
	return newOp(name, formSelect, func(args []reflect.Value) reflect.Value {
		v := indirect(a.Eval(args))
		for v.Kind() == reflect.Pointer {
			if v.IsNil() {
				panic(&DomainError{X: "nil pointer", Func: "." + name})
			}
			v = v.Elem()
		}
		if v.Kind() != reflect.Struct {
			panic(opError("."+name, "not a struct", v))
		}
		f, ok := v.Type().FieldByName(name)
		if !ok {
			panic(opError("."+name, "no such field", v))
		}
		r, err := v.FieldByIndexErr(f.Index)
		if err != nil {
			panic(&DomainError{X: "nil embedded pointer", Func: "." + name})
		}
		return r
	}, a)
}

// Method creates an expression selecting the method name of the value x
// evaluates to, bound to that value. The result is a function; use Bind to
// call it:
//
//	P1.Method("Get").Bind(P2, 3.14)
//
// evaluates its receiver first and then each parameter, all with the same
// arguments. Methods with pointer receivers are found on addressable
// values and through pointers.
func Method(x any, name string) Op {
	a := lift("."+name, x)[0]
	return newOp(name, formSelect, func(args []reflect.Value) reflect.Value {
		v := indirect(a.Eval(args))
		if isNilInterface(v) {
			panic(opError("."+name, "", v))
		}
		m := v.MethodByName(name)
		if !m.IsValid() && v.CanAddr() {
			m = v.Addr().MethodByName(name)
		}
		if !m.IsValid() {
			panic(opError("."+name, "no such method", v))
		}
		return m
	}, a)
}

// Deref creates an expression dereferencing x. A pointer yields its
// assignable pointee; a slice yields its first element.
func Deref(x Expr) Op {
	return newOp("*", formPrefix, func(args []reflect.Value) reflect.Value {
		v := indirect(x.Eval(args))
		switch v.Kind() {
		case reflect.Pointer:
			if v.IsNil() {
				panic(&DomainError{X: "nil pointer", Func: "*"})
			}
			return v.Elem()
		case reflect.Slice:
			if v.Len() == 0 {
				panic(&DomainError{X: "empty slice", Func: "*"})
			}
			return v.Index(0)
		}
		panic(opError("*", "", v))
	}, x)
}

// Addr creates an expression taking the address of x, which must evaluate
// to addressable storage such as a variable, a dereferenced pointer, or an
// element of a slice.
func Addr(x Expr) Op {
	return newOp("&", formPrefix, func(args []reflect.Value) reflect.Value {
		v := x.Eval(args)
		if !v.CanAddr() {
			panic(opError("&", "operand is not addressable", v))
		}
		return v.Addr()
	}, x)
}
