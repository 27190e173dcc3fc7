package expr

import (
	"math/big"
	"reflect"
)

// place is an assignable location: either settable storage or a map entry.
type place struct {
	v    reflect.Value
	m, k reflect.Value
}

func (p place) get() reflect.Value {
	if !p.m.IsValid() {
		return p.v
	}
	if r := p.m.MapIndex(p.k); r.IsValid() {
		return r
	}
	return reflect.Zero(p.m.Type().Elem())
}

func (p place) set(op string, x reflect.Value) {
	if !p.m.IsValid() {
		store(op, p.v, x)
		return
	}
	if p.m.IsNil() {
		panic(&DomainError{X: "nil map", Func: op})
	}
	// Map elements are not addressable, so build the new element separately.
	e := reflect.New(p.m.Type().Elem()).Elem()
	store(op, e, x)
	p.m.SetMapIndex(p.k, e)
}

// locate evaluates e as the target of an assignment.
func locate(op string, e Expr, args []reflect.Value) place {
	if o, ok := e.(Op); ok && o.loc != nil {
		return o.loc(args)
	}
	return lvalue(op, e.Eval(args))
}

// lvalue resolves a value to the storage it denotes: the value itself if it
// is settable, otherwise the pointee of a pointer.
func lvalue(op string, v reflect.Value) place {
	if v.CanSet() {
		return place{v: v}
	}
	v = indirect(v)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			panic(&DomainError{X: "nil pointer", Func: op})
		}
		if e := v.Elem(); e.CanSet() {
			return place{v: e}
		}
	}
	panic(opError(op, "operand is not assignable", v))
}

// store assigns x to settable dst, converting as Go assignment would, plus
// numeric conversions and arbitrary-precision values.
func store(op string, dst, x reflect.Value) {
	x = indirect(x)
	t := dst.Type()
	switch t {
	case bigFloatType:
		dst.Addr().Interface().(*big.Float).Set(toBigFloat(op, x))
		return
	case bigIntType:
		dst.Addr().Interface().(*big.Int).Set(toBigInt(op, x))
		return
	}
	dst.Set(convert(op, x, t))
}

// convert converts x to type t following assignability, numeric
// conversion, and nil rules.
func convert(op string, x reflect.Value, t reflect.Type) reflect.Value {
	switch {
	case isNilInterface(x) || !x.IsValid():
		switch t.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(t)
		}
	case x.Type().AssignableTo(t):
		return x
	case numClass(x.Kind()) != classNone && numClass(t.Kind()) != classNone:
		if numClass(x.Kind()) == classComplex && numClass(t.Kind()) != classComplex {
			break
		}
		return convertNum(x, t)
	case t.Kind() != reflect.Interface && x.Type().ConvertibleTo(t) && x.Kind() == t.Kind():
		// Named and unnamed types with the same underlying type.
		return x.Convert(t)
	}
	if x.IsValid() && (isBig(x) || numClass(x.Kind()) != classNone) {
		switch t {
		case bigFloatPtrType:
			return reflect.ValueOf(new(big.Float).Set(toBigFloat(op, x)))
		case bigIntPtrType:
			return reflect.ValueOf(new(big.Int).Set(toBigInt(op, x)))
		}
	}
	var xt reflect.Type
	if x.IsValid() && !isNilInterface(x) {
		xt = x.Type()
	}
	panic(&OperatorError{Op: op, Types: []reflect.Type{t, xt}, Reason: "cannot use value of second type as first"})
}
