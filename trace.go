package expr

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
)

// Trace creates an expression evaluating x and logging each evaluation to
// logger at debug level. The log record holds name, the number of
// arguments, and the result. Trace evaluates to the same value x does, so
// it can wrap any subexpression, including assignment targets.
func Trace(x Expr, name string, logger *slog.Logger) Op {
	if logger == nil {
		panic("expr: Trace with nil logger")
	}
	if name == "" {
		name = fmtString(x)
	}
	o := newOp("trace", formFunc, func(args []reflect.Value) reflect.Value {
		r := x.Eval(args)
		logEval(logger, name, args, r)
		return r
	}, x)
	o.loc = func(args []reflect.Value) place {
		p := locate("trace", x, args)
		logEval(logger, name, args, p.get())
		return p
	}
	return o
}

func logEval(logger *slog.Logger, name string, args []reflect.Value, r reflect.Value) {
	ctx := context.Background()
	if !logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	logger.LogAttrs(ctx, slog.LevelDebug, "evaluated",
		slog.String("expr", name),
		slog.Int("args", len(args)),
		slog.String("result", display(r)),
	)
}

// display formats an evaluation result for logging.
func display(v reflect.Value) string {
	v = indirect(v)
	if isNilInterface(v) {
		return "nil"
	}
	return fmt.Sprintf("%v", v)
}

func fmtString(e Expr) string {
	if s, ok := e.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("<%T>", e)
}
