package expr_test

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/expr"
)

func TestOperators(t *testing.T) {
	type myString string
	var nilp *int
	cases := []struct {
		name string
		e    expr.Expr
		args []any
		r    any
	}{
		{"add-int", expr.Add(expr.P1, expr.P2), []any{4, 5}, 9},
		{"add-float", expr.Add(expr.P1, expr.P2), []any{0.5, 0.25}, 0.75},
		{"add-string", expr.Add(expr.P1, expr.P2), []any{"foo", "bar"}, "foobar"},
		{"add-named-string", expr.Add(expr.P1, "!"), []any{myString("hi")}, myString("hi!")},
		{"add-mixed", expr.Add(expr.P1, 1), []any{1.5}, 2.5},
		{"add-mixed-rev", expr.Add(1, expr.P1), []any{1.5}, 2.5},
		{"add-int8-wrap", expr.Add(expr.P1, 1), []any{int8(127)}, int8(-128)},
		{"mul-duration", expr.Mul(expr.P1, 3), []any{time.Second}, 3 * time.Second},
		{"add-complex", expr.Add(expr.P1, 1), []any{1 + 2i}, 2 + 2i},
		{"sub", expr.Sub(expr.P1, expr.P2), []any{4, 5}, -1},
		{"sub-uint-wrap", expr.Sub(expr.P1, expr.P2), []any{uint8(0), uint8(1)}, uint8(255)},
		{"mul", expr.Mul(expr.P1, expr.P2), []any{4, 5}, 20},
		{"div-int", expr.Div(expr.P1, expr.P2), []any{7, 2}, 3},
		{"div-int-neg", expr.Div(expr.P1, expr.P2), []any{-7, 2}, -3},
		{"div-float", expr.Div(expr.P1, expr.P2), []any{7.0, 2}, 3.5},
		{"div-float32", expr.Div(expr.P1, expr.P2), []any{float32(1), float32(4)}, float32(0.25)},
		{"rem", expr.Rem(expr.P1, expr.P2), []any{-7, 2}, -1},
		{"and", expr.BitAnd(expr.P1, expr.P2), []any{12, 10}, 8},
		{"or", expr.BitOr(expr.P1, expr.P2), []any{12, 10}, 14},
		{"xor", expr.BitXor(expr.P1, expr.P2), []any{12, 10}, 6},
		{"andnot", expr.AndNot(expr.P1, expr.P2), []any{12, 10}, 4},
		{"shl", expr.Shl(expr.P1, expr.P2), []any{3, uint(4)}, 48},
		{"shl-truncate", expr.Shl(expr.P1, 1), []any{uint8(0x81)}, uint8(2)},
		{"shr", expr.Shr(expr.P1, expr.P2), []any{-16, 2}, -4},
		{"eq", expr.Eq(expr.P1, expr.P2), []any{3, 3}, true},
		{"eq-mixed", expr.Eq(expr.P1, expr.P2), []any{3, 3.0}, true},
		{"eq-string", expr.Eq(expr.P1, "x"), []any{"y"}, false},
		{"eq-struct", expr.Eq(expr.P1, expr.P2), []any{memObj{1}, memObj{1}}, true},
		{"eq-nil-ptr", expr.Eq(expr.P1, nil), []any{nilp}, true},
		{"eq-nil-nil", expr.Eq(expr.P1, nil), []any{nil}, true},
		{"ne-nil-ptr", expr.Ne(expr.P1, nil), []any{new(int)}, true},
		{"ne", expr.Ne(expr.P1, expr.P2), []any{3, 4}, true},
		{"lt", expr.Lt(expr.P1, expr.P2), []any{3, 4}, true},
		{"le", expr.Le(expr.P1, expr.P2), []any{4, 4}, true},
		{"gt", expr.Gt(expr.P1, expr.P2), []any{3, 4}, false},
		{"ge", expr.Ge(expr.P1, expr.P2), []any{"b", "a"}, true},
		{"lt-uint", expr.Lt(expr.P1, expr.P2), []any{uint(3), uint(4)}, true},
		{"land", expr.And(expr.P1, expr.P2), []any{true, 0}, false},
		{"land-ptr", expr.And(expr.P1, expr.P2), []any{new(int), 1.5}, true},
		{"lor", expr.Or(expr.P1, expr.P2), []any{false, nilp}, false},
		{"not", expr.Not(expr.P1), []any{0}, true},
		{"neg", expr.Neg(expr.P1), []any{4}, -4},
		{"neg-float", expr.Neg(expr.P1), []any{0.5}, -0.5},
		{"plus", expr.Plus(expr.P1), []any{4}, 4},
		{"compl", expr.Compl(expr.P1), []any{uint8(0x0f)}, uint8(0xf0)},
		{"compl-int", expr.Compl(expr.P1), []any{0}, -1},
		{"comma", expr.Comma(expr.P1, expr.P2), []any{1, "two"}, "two"},
		{"index-string", expr.Index(expr.P1, 1), []any{"abc"}, byte('b')},
		{"index-map", expr.Index(expr.P1, "b"), []any{map[string]int{"a": 1, "b": 2}}, 2},
		{"index-map-missing", expr.Index(expr.P1, "c"), []any{map[string]int{"a": 1}}, 0},
		{"index-array-ptr", expr.Index(expr.P1, 2), []any{&[3]int{4, 5, 6}}, 6},
		{"nested", expr.Mul(expr.Add(expr.P1, expr.P2), expr.Sub(expr.P3, 1)), []any{1, 2, 5}, 12},
		{"deref", expr.Deref(expr.P1), []any{new(int)}, 0},
		{"pow", expr.Pow(expr.P1, expr.P2), []any{2, 10}, 1024.0},
		{"pow-neg-odd", expr.Pow(expr.P1, 3), []any{-2.0}, -8.0},
		{"pow-neg-even", expr.Pow(expr.P1, 2), []any{-3}, 9.0},
		{"pow-float32", expr.Pow(expr.P1, 2), []any{float32(3)}, float32(9)},
		{"sqrt", expr.Sqrt(expr.P1), []any{16}, 4.0},
		{"exp-log", expr.Exp(expr.Log(expr.P1)), []any{1.0}, 1.0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := expr.Call(c.e, c.args...)
			assert.Equal(t, c.r, r)
		})
	}
}

func TestOperatorErrors(t *testing.T) {
	cases := []struct {
		name string
		e    expr.Expr
		args []any
	}{
		{"add-bool", expr.Add(expr.P1, expr.P2), []any{true, false}},
		{"sub-string", expr.Sub(expr.P1, expr.P2), []any{"a", "b"}},
		{"rem-float", expr.Rem(expr.P1, expr.P2), []any{1.5, 1.0}},
		{"and-float", expr.BitAnd(expr.P1, expr.P2), []any{1.5, 1.0}},
		{"shl-float", expr.Shl(expr.P1, 1), []any{1.5}},
		{"shl-count-float", expr.Shl(expr.P1, 1.5), []any{1}},
		{"lt-complex", expr.Lt(expr.P1, expr.P2), []any{1i, 2i}},
		{"lt-bool", expr.Lt(expr.P1, expr.P2), []any{true, false}},
		{"eq-slice", expr.Eq(expr.P1, expr.P2), []any{[]int{1}, []int{1}}},
		{"eq-mismatch", expr.Eq(expr.P1, expr.P2), []any{1, "1"}},
		{"add-nil", expr.Add(expr.P1, 1), []any{nil}},
		{"neg-string", expr.Neg(expr.P1), []any{"a"}},
		{"compl-float", expr.Compl(expr.P1), []any{1.5}},
		{"not-string", expr.Not(expr.P1), []any{"a"}},
		{"land-string", expr.And(expr.P1, true), []any{"a"}},
		{"deref-int", expr.Deref(expr.P1), []any{1}},
		{"addr-value", expr.Addr(expr.P1), []any{1}},
		{"index-float", expr.Index(expr.P1, 0.5), []any{[]int{1}}},
		{"index-int", expr.Index(expr.P1, 0), []any{1}},
		{"field-missing", expr.P1.Field("J"), []any{memObj{}}},
		{"field-nonstruct", expr.P1.Field("I"), []any{1}},
		{"method-missing", expr.P1.Method("Set"), []any{memFun{}}},
		{"assign-value", expr.P1.Assign(1), []any{1}},
		{"assign-const", expr.Assign(expr.Const([2]int{}).Index(0), 1), nil},
		{"index-const-int", expr.Const(1).Index(0), nil},
		{"assign-mismatch", expr.P1.Assign("x"), []any{new(int)}},
		{"inc-string", expr.PreInc(expr.P1), []any{new(string)}},
		{"dec-slice", expr.PreDec(expr.P1), []any{&[]int{1}}},
		{"bind-nonfunc", expr.P1.Bind(1), []any{1}},
		{"bind-arity", expr.P1.Bind(1), []any{func() {}}},
		{"bind-param", expr.P1.Bind("x"), []any{func(int) {}}},
		{"pow-string", expr.Pow(expr.P1, 2), []any{"x"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := expr.TryCall(c.e, c.args...)
			var oe *expr.OperatorError
			require.ErrorAs(t, err, &oe)
			assert.Contains(t, err.Error(), "invalid operation")
		})
	}
}

func TestDomainErrors(t *testing.T) {
	var nilp *memObj
	cases := []struct {
		name string
		e    expr.Expr
		args []any
	}{
		{"div-zero", expr.Div(expr.P1, expr.P2), []any{1, 0}},
		{"div-zero-uint", expr.Div(expr.P1, expr.P2), []any{uint(1), uint(0)}},
		{"rem-zero", expr.Rem(expr.P1, expr.P2), []any{1, 0}},
		{"shl-neg", expr.Shl(expr.P1, expr.P2), []any{1, -1}},
		{"deref-nil", expr.Deref(expr.P1), []any{nilp}},
		{"deref-empty", expr.Deref(expr.P1), []any{[]int{}}},
		{"field-nil", expr.P1.Field("I"), []any{nilp}},
		{"assign-nil", expr.P1.Assign(1), []any{(*int)(nil)}},
		{"index-range", expr.Index(expr.P1, 3), []any{[]int{1, 2, 3}}},
		{"index-neg", expr.Index(expr.P1, -1), []any{"abc"}},
		{"offset-range", expr.Add(expr.P1, 4), []any{[]int{1, 2, 3}}},
		{"inc-empty-slice", expr.PreInc(expr.P1), []any{&[]int{}}},
		{"bind-nil", expr.P1.Bind(), []any{(func())(nil)}},
		{"map-nil", expr.Index(expr.P1, "k").Assign(1), []any{map[string]int(nil)}},
		{"pow-neg", expr.Pow(expr.P1, 0.5), []any{-1.0}},
		{"sqrt-neg", expr.Sqrt(expr.P1), []any{-1.0}},
		{"log-neg", expr.Log(expr.P1), []any{-1}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := expr.TryCall(c.e, c.args...)
			var de *expr.DomainError
			require.ErrorAs(t, err, &de)
			assert.True(t, errors.As(err, new(big.ErrNaN)), "%v doesn't unwrap to big.ErrNaN", err)
		})
	}
}

func TestStaticCheck(t *testing.T) {
	x, s := 1, "s"
	assert.PanicsWithError(t, `invalid operation "+" on (int, string): mismatched types`, func() {
		expr.Add(expr.Var(&x), expr.Var(&s))
	})
	assert.Panics(t, func() { expr.Neg(expr.Const("x")) })
	assert.Panics(t, func() { expr.Bind(expr.Const(1)) })
	assert.Panics(t, func() { expr.Bind(func(int) {}) })
	assert.Panics(t, func() { expr.Bind(func() (int, int) { return 1, 2 }) })
	// Values out of domain are only rejected when evaluated.
	zero := 0
	assert.NotPanics(t, func() { expr.Div(expr.P1, expr.Var(&zero)) })
	assert.NotPanics(t, func() { expr.Div(expr.Const(1), expr.Var(&zero)) })
}

func TestStaticCheckInterfaceVar(t *testing.T) {
	// Variables of interface type may hold values of any type by the time
	// they are evaluated.
	var x any
	add := expr.Add(expr.Var(&x), 1)
	x = 2
	assert.Equal(t, 3, add.Call())

	var y any = "s"
	mul := expr.Mul(expr.Var(&y), 2)
	y = 4
	assert.Equal(t, 8, mul.Call())

	var f any
	call := expr.Bind(expr.Var(&f), expr.P1)
	f = func(n int) int { return n + 1 }
	assert.Equal(t, 5, call.Call(4))

	// Mismatches still surface when evaluated.
	y = "s"
	_, err := expr.TryCall(mul)
	var oe *expr.OperatorError
	require.ErrorAs(t, err, &oe)
}
