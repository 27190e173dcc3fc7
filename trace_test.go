package expr_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zephyrtronium/expr"
)

func testLogger(level slog.Level) (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})
	return slog.New(h), &buf
}

func TestTrace(t *testing.T) {
	logger, buf := testLogger(slog.LevelDebug)
	e := expr.Trace(expr.Add(expr.P1, expr.P2), "", logger)
	assert.Equal(t, 2, e.Arity())
	assert.Equal(t, "trace((_1 + _2))", e.String())
	assert.Equal(t, 3, e.Call(1, 2))
	s := buf.String()
	assert.Contains(t, s, "msg=evaluated")
	assert.Contains(t, s, `expr="(_1 + _2)"`)
	assert.Contains(t, s, "args=2")
	assert.Contains(t, s, "result=3")
}

func TestTraceDisabled(t *testing.T) {
	logger, buf := testLogger(slog.LevelInfo)
	e := expr.Trace(expr.Mul(expr.P1, 2), "double", logger)
	assert.Equal(t, 8, e.Call(4))
	assert.Empty(t, buf.String())
}

func TestTraceAssign(t *testing.T) {
	logger, buf := testLogger(slog.LevelDebug)
	n := 4
	expr.AddAssign(expr.Trace(expr.P1, "n", logger), 1).Call(&n)
	assert.Equal(t, 5, n)
	assert.Contains(t, buf.String(), "expr=n")
	assert.Contains(t, buf.String(), "result=4")
}

func TestTraceNil(t *testing.T) {
	logger, buf := testLogger(slog.LevelDebug)
	expr.Trace(expr.P1, "p", logger).Call(nil)
	assert.Contains(t, buf.String(), "result=nil")
	assert.Panics(t, func() { expr.Trace(expr.P1, "", nil) })
}
