package expr

import (
	"reflect"
)

// binop is a binary operator.
type binop int8

const (
	opAdd binop = iota
	opSub
	opMul
	opDiv
	opRem
	opAnd
	opOr
	opXor
	opAndNot
	opShl
	opShr
	opEq
	opNe
	opLt
	opLe
	opGt
	opGe
)

var binopNames = [...]string{
	opAdd:    "+",
	opSub:    "-",
	opMul:    "*",
	opDiv:    "/",
	opRem:    "%",
	opAnd:    "&",
	opOr:     "|",
	opXor:    "^",
	opAndNot: "&^",
	opShl:    "<<",
	opShr:    ">>",
	opEq:     "==",
	opNe:     "!=",
	opLt:     "<",
	opLe:     "<=",
	opGt:     ">",
	opGe:     ">=",
}

func (op binop) String() string {
	return binopNames[op]
}

func (op binop) compare() bool {
	return op >= opEq
}

// class is the class of a numeric kind. Classes are ordered by the
// direction of promotion between mixed operands.
type class int8

const (
	classNone class = iota
	classInt
	classUint
	classFloat
	classComplex
)

func numClass(k reflect.Kind) class {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return classInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return classUint
	case reflect.Float32, reflect.Float64:
		return classFloat
	case reflect.Complex64, reflect.Complex128:
		return classComplex
	}
	return classNone
}

// rank merges the integer classes, which convert to each other's types
// rather than promoting.
func (c class) rank() int {
	switch c {
	case classInt, classUint:
		return 1
	case classFloat:
		return 2
	case classComplex:
		return 3
	}
	return 0
}

// unify converts numeric operands of different types to a common type. The
// right operand converts to the left's type unless it has a higher rank.
func unify(l, r reflect.Value) (reflect.Value, reflect.Value) {
	if l.Type() == r.Type() {
		return l, r
	}
	lc, rc := numClass(l.Kind()), numClass(r.Kind())
	if lc == classNone || rc == classNone {
		if l.Kind() == r.Kind() && r.Type().ConvertibleTo(l.Type()) && l.Kind() == reflect.String {
			return l, r.Convert(l.Type())
		}
		return l, r
	}
	if rc.rank() > lc.rank() {
		return convertNum(l, r.Type()), r
	}
	return l, convertNum(r, l.Type())
}

// convertNum converts a number to a numeric type, including the conversions
// from real to complex numbers that reflect does not allow.
func convertNum(v reflect.Value, t reflect.Type) reflect.Value {
	if numClass(t.Kind()) == classComplex && numClass(v.Kind()) != classComplex {
		return reflect.ValueOf(complex(float(v), 0)).Convert(t)
	}
	return v.Convert(t)
}

// binary applies a binary operator to evaluated operands.
func binary(op binop, l, r reflect.Value) reflect.Value {
	l, r = indirect(l), indirect(r)
	if op == opEq || op == opNe {
		eq := equal(op, l, r)
		return reflect.ValueOf(eq == (op == opEq))
	}
	if isBig(l) || isBig(r) {
		return bigBinary(op, l, r)
	}
	if op == opShl || op == opShr {
		return shift(op, l, r)
	}
	if op == opAdd || op == opSub {
		if v, ok := offset(op, l, r); ok {
			return v
		}
	}
	if isNilInterface(l) || isNilInterface(r) {
		panic(opError(op.String(), "", l, r))
	}
	l, r = unify(l, r)
	if l.Type() != r.Type() {
		panic(opError(op.String(), "mismatched types", l, r))
	}
	t := l.Type()
	switch numClass(l.Kind()) {
	case classInt:
		a, b := l.Int(), r.Int()
		if op.compare() {
			return reflect.ValueOf(ordered(op, a, b))
		}
		var x int64
		switch op {
		case opAdd:
			x = a + b
		case opSub:
			x = a - b
		case opMul:
			x = a * b
		case opDiv, opRem:
			if b == 0 {
				panic(&DomainError{X: r.Interface(), Func: op.String()})
			}
			if op == opDiv {
				x = a / b
			} else {
				x = a % b
			}
		case opAnd:
			x = a & b
		case opOr:
			x = a | b
		case opXor:
			x = a ^ b
		case opAndNot:
			x = a &^ b
		default:
			panic(opError(op.String(), "", l, r))
		}
		return reflect.ValueOf(x).Convert(t)
	case classUint:
		a, b := l.Uint(), r.Uint()
		if op.compare() {
			return reflect.ValueOf(ordered(op, a, b))
		}
		var x uint64
		switch op {
		case opAdd:
			x = a + b
		case opSub:
			x = a - b
		case opMul:
			x = a * b
		case opDiv, opRem:
			if b == 0 {
				panic(&DomainError{X: r.Interface(), Func: op.String()})
			}
			if op == opDiv {
				x = a / b
			} else {
				x = a % b
			}
		case opAnd:
			x = a & b
		case opOr:
			x = a | b
		case opXor:
			x = a ^ b
		case opAndNot:
			x = a &^ b
		default:
			panic(opError(op.String(), "", l, r))
		}
		return reflect.ValueOf(x).Convert(t)
	case classFloat:
		a, b := l.Float(), r.Float()
		if op.compare() {
			return reflect.ValueOf(ordered(op, a, b))
		}
		var x float64
		switch op {
		case opAdd:
			x = a + b
		case opSub:
			x = a - b
		case opMul:
			x = a * b
		case opDiv:
			x = a / b
		default:
			panic(opError(op.String(), "", l, r))
		}
		return reflect.ValueOf(x).Convert(t)
	case classComplex:
		a, b := l.Complex(), r.Complex()
		var x complex128
		switch op {
		case opAdd:
			x = a + b
		case opSub:
			x = a - b
		case opMul:
			x = a * b
		case opDiv:
			x = a / b
		default:
			panic(opError(op.String(), "", l, r))
		}
		return reflect.ValueOf(x).Convert(t)
	}
	if l.Kind() == reflect.String {
		a, b := l.String(), r.String()
		if op.compare() {
			return reflect.ValueOf(ordered(op, a, b))
		}
		if op == opAdd {
			return reflect.ValueOf(a + b).Convert(t)
		}
	}
	panic(opError(op.String(), "", l, r))
}

// ordered applies a relational operator.
func ordered[T int64 | uint64 | float64 | string](op binop, a, b T) bool {
	switch op {
	case opLt:
		return a < b
	case opLe:
		return a <= b
	case opGt:
		return a > b
	case opGe:
		return a >= b
	}
	panic("expr: ordered called with " + op.String())
}

// equal compares operands for equality.
func equal(op binop, l, r reflect.Value) bool {
	switch {
	case isNilInterface(l) && isNilInterface(r):
		return true
	case isNilInterface(l):
		return isNil(r)
	case isNilInterface(r):
		return isNil(l)
	}
	if isBig(l) || isBig(r) {
		return bigBinary(opEq, l, r).Bool()
	}
	l, r = unify(l, r)
	if l.Type() != r.Type() || !l.Comparable() {
		panic(opError(op.String(), "", l, r))
	}
	return l.Equal(r)
}

// isNil reports whether v is a nil value of a nilable kind.
func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return v.IsNil()
	}
	return false
}

// shift applies a shift operator. The count may be any integer type.
func shift(op binop, l, r reflect.Value) reflect.Value {
	var n uint64
	switch numClass(r.Kind()) {
	case classInt:
		c := r.Int()
		if c < 0 {
			panic(&DomainError{X: c, Func: op.String()})
		}
		n = uint64(c)
	case classUint:
		n = r.Uint()
	default:
		panic(opError(op.String(), "shift count must be an integer", l, r))
	}
	t := l.Type()
	switch numClass(l.Kind()) {
	case classInt:
		a := l.Int()
		if op == opShl {
			return reflect.ValueOf(a << n).Convert(t)
		}
		return reflect.ValueOf(a >> n).Convert(t)
	case classUint:
		a := l.Uint()
		if op == opShl {
			return reflect.ValueOf(a << n).Convert(t)
		}
		return reflect.ValueOf(a >> n).Convert(t)
	}
	panic(opError(op.String(), "", l, r))
}

// offset applies pointer arithmetic to sequences: adding n to a slice,
// array, or pointer to array yields the suffix starting at n. It reports
// false if neither operand is a sequence.
func offset(op binop, l, r reflect.Value) (reflect.Value, bool) {
	s, n := l, r
	if op == opAdd && !isSeq(s) {
		s, n = r, l
	}
	if !isSeq(s) {
		return reflect.Value{}, false
	}
	var k int
	switch numClass(n.Kind()) {
	case classInt:
		k = int(n.Int())
	case classUint:
		k = int(n.Uint())
	default:
		panic(opError(op.String(), "offset must be an integer", l, r))
	}
	if op == opSub {
		// Only zero is a valid backward offset from a slice's start.
		k = -k
	}
	s = seq(op.String(), s)
	if k < 0 || k > s.Len() {
		panic(&DomainError{X: k, Func: op.String()})
	}
	return s.Slice(k, s.Len()), true
}

func isSeq(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Slice:
		return true
	case reflect.Array:
		return v.CanAddr()
	case reflect.Pointer:
		return v.Type().Elem().Kind() == reflect.Array
	}
	return false
}

// seq converts a sliceable sequence to a slice.
func seq(op string, v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			panic(&DomainError{X: "nil pointer", Func: op})
		}
		return v.Elem().Slice(0, v.Elem().Len())
	case reflect.Array:
		return v.Slice(0, v.Len())
	}
	return v
}

// truth converts a value to a boolean as a condition: booleans are
// themselves, numbers are true when nonzero, and nilable values are true
// when non-nil.
func truth(op string, v reflect.Value) bool {
	v = indirect(v)
	if isNilInterface(v) {
		return false
	}
	if isBig(v) {
		return bigSign(v) != 0
	}
	switch numClass(v.Kind()) {
	case classInt:
		return v.Int() != 0
	case classUint:
		return v.Uint() != 0
	case classFloat:
		return v.Float() != 0
	case classComplex:
		return v.Complex() != 0
	}
	switch v.Kind() {
	case reflect.Bool:
		return v.Bool()
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return !v.IsNil()
	}
	panic(opError(op, "not usable as a condition", v))
}

// unop is a unary operator that produces a new value.
type unop int8

const (
	opPlus unop = iota
	opNeg
	opNot
	opCompl
)

var unopNames = [...]string{
	opPlus:  "+",
	opNeg:   "-",
	opNot:   "!",
	opCompl: "^",
}

func (op unop) String() string {
	return unopNames[op]
}

// unary applies a unary operator to an evaluated operand.
func unary(op unop, v reflect.Value) reflect.Value {
	v = indirect(v)
	if op == opNot {
		return reflect.ValueOf(!truth(op.String(), v))
	}
	if isBig(v) {
		return bigUnary(op, v)
	}
	if isNilInterface(v) {
		panic(opError(op.String(), "", v))
	}
	t := v.Type()
	switch numClass(v.Kind()) {
	case classInt:
		switch op {
		case opPlus:
			return v.Convert(t)
		case opNeg:
			return reflect.ValueOf(-v.Int()).Convert(t)
		case opCompl:
			return reflect.ValueOf(^v.Int()).Convert(t)
		}
	case classUint:
		switch op {
		case opPlus:
			return v.Convert(t)
		case opNeg:
			return reflect.ValueOf(-v.Uint()).Convert(t)
		case opCompl:
			return reflect.ValueOf(^v.Uint()).Convert(t)
		}
	case classFloat:
		switch op {
		case opPlus:
			return v.Convert(t)
		case opNeg:
			return reflect.ValueOf(-v.Float()).Convert(t)
		}
	case classComplex:
		switch op {
		case opPlus:
			return v.Convert(t)
		case opNeg:
			return reflect.ValueOf(-v.Complex()).Convert(t)
		}
	}
	panic(opError(op.String(), "", v))
}

// step adds delta to the value at p, as for increments and decrements.
// Slices step forward by dropping their first element.
func step(op string, p place, delta int64) {
	v := indirect(p.get())
	if v.Kind() == reflect.Slice {
		if delta < 0 {
			panic(opError(op, "cannot step a slice backward", v))
		}
		if v.Len() == 0 {
			panic(&DomainError{X: "empty slice", Func: op})
		}
		p.set(op, v.Slice(1, v.Len()))
		return
	}
	if !isBig(v) && numClass(v.Kind()) == classNone {
		panic(opError(op, "", v))
	}
	p.set(op, binary(opAdd, v, reflect.ValueOf(delta)))
}

// copyOf returns a non-addressable copy of v.
func copyOf(v reflect.Value) reflect.Value {
	v = indirect(v)
	if isBig(v) {
		return bigCopy(v)
	}
	if isNilInterface(v) {
		return v
	}
	return v.Convert(v.Type())
}
