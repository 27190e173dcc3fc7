package main

import (
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"slices"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/expr"
)

// config holds the persistent flags shared by every subcommand.
type config struct {
	prec  uint
	verb  string
	trace bool
}

func newRootCmd() *cobra.Command {
	cfg := new(config)
	root := &cobra.Command{
		Use:           "expr",
		Short:         "Apply deferred expressions to numbers",
		Long:          `expr sorts, sums, and exponentiates arbitrary-precision numbers using expressions built from placeholders.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().UintVarP(&cfg.prec, "prec", "p", 64, "precision of calculations in bits")
	root.PersistentFlags().StringVar(&cfg.verb, "fmt", "%g", "result formatting string")
	root.PersistentFlags().BoolVar(&cfg.trace, "trace", false, "log every evaluation of the expression to stderr")
	root.AddCommand(newSortCmd(cfg), newSumCmd(cfg), newPowCmd(cfg))
	return root
}

func newSortCmd(cfg *config) *cobra.Command {
	var desc bool
	cmd := &cobra.Command{
		Use:   "sort number...",
		Short: "Sort numbers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			xs, err := cfg.parse(args)
			if err != nil {
				return err
			}
			var less expr.Expr = expr.Lt(expr.P1, expr.P2)
			if desc {
				less = expr.Gt(expr.P1, expr.P2)
			}
			slices.SortStableFunc(xs, expr.Compare[*big.Float](cfg.wrap(less)))
			return cfg.print(cmd.OutOrStdout(), xs...)
		},
	}
	cmd.Flags().BoolVarP(&desc, "desc", "d", false, "sort in descending order")
	return cmd
}

func newSumCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "sum number...",
		Short: "Sum numbers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			xs, err := cfg.parse(args)
			if err != nil {
				return err
			}
			sum := new(big.Float).SetPrec(cfg.prec)
			add := expr.Each[*big.Float](cfg.wrap(expr.AddAssign(sum, expr.P1)))
			for _, x := range xs {
				add(x)
			}
			return cfg.print(cmd.OutOrStdout(), sum)
		},
	}
}

func newPowCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "pow base exponent...",
		Short: "Raise a base to each of several exponents",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			xs, err := cfg.parse(args)
			if err != nil {
				return err
			}
			pow := expr.Func2[*big.Float, *big.Float, *big.Float](cfg.wrap(expr.Pow(expr.P1, expr.P2)))
			rs := make([]*big.Float, 0, len(xs)-1)
			for _, y := range xs[1:] {
				r, err := tryPow(pow, xs[0], y)
				if err != nil {
					return err
				}
				rs = append(rs, r)
			}
			return cfg.print(cmd.OutOrStdout(), rs...)
		},
	}
}

// tryPow converts a domain error from pow into an error return.
func tryPow(pow func(x, y *big.Float) *big.Float, x, y *big.Float) (r *big.Float, err error) {
	defer func() {
		if p := recover(); p != nil {
			de, ok := p.(*expr.DomainError)
			if !ok {
				panic(p)
			}
			err = fmt.Errorf("pow(%g, %g): %w", x, y, de)
		}
	}()
	return pow(x, y), nil
}

// parse parses numbers at the configured precision.
func (cfg *config) parse(args []string) ([]*big.Float, error) {
	xs := make([]*big.Float, len(args))
	for i, s := range args {
		if s == "∞" {
			s = "inf"
		}
		x, _, err := new(big.Float).SetPrec(cfg.prec).Parse(s, 0)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", s, err)
		}
		xs[i] = x
	}
	return xs, nil
}

// wrap adds tracing to e if it is enabled.
func (cfg *config) wrap(e expr.Expr) expr.Expr {
	if !cfg.trace {
		return e
	}
	return expr.Trace(e, "", newLogger(slog.LevelDebug))
}

func (cfg *config) print(w io.Writer, xs ...*big.Float) error {
	for _, x := range xs {
		if _, err := fmt.Fprintf(w, cfg.verb+"\n", x); err != nil {
			return err
		}
	}
	return nil
}
