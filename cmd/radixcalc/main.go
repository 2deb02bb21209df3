// Command radixcalc is a command-line desk calculator over the radix
// arithmetic engine. It evaluates a single operation per invocation and
// prints the result together with the conditions the operation raised.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/govalues/radix"
)

var (
	precision  int32
	rounding   string
	emin, emax int32
	simplified bool
)

var rootCmd = &cobra.Command{
	Use:   "radixcalc",
	Short: "arbitrary-precision decimal calculator",
	Long: `radixcalc evaluates decimal arithmetic under an explicit context:
a working precision, a rounding mode and an exponent range. Conditions
raised by the operation (inexact, rounded, overflow and so on) are
reported after the result.

A precision of 0 requests exact, unlimited-precision arithmetic.`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Int32Var(&precision, "precision", 34, "significant digits, 0 for unlimited")
	pf.StringVar(&rounding, "rounding", "half-even",
		"rounding mode: half-even, half-up, half-down, down, up, floor, ceiling")
	pf.Int32Var(&emin, "emin", -6143, "minimum adjusted exponent, 0 with --emax 0 for unbounded")
	pf.Int32Var(&emax, "emax", 6144, "maximum adjusted exponent")
	pf.BoolVar(&simplified, "simplified", false, "route through the simplified engine")

	rootCmd.AddCommand(evalCmd, sqrtCmd, expCmd, lnCmd, log10Cmd, piCmd)
}

// calcContext builds the operation context from the persistent flags.
// The returned context carries a fresh flag accumulator.
func calcContext() (*radix.Context, error) {
	mode, ok := radix.ParseRoundingMode(rounding)
	if !ok {
		return nil, fmt.Errorf("unknown rounding mode %q", rounding)
	}
	return &radix.Context{
		Precision:  precision,
		Rounding:   mode,
		EMin:       emin,
		EMax:       emax,
		Flags:      new(radix.Condition),
		Simplified: simplified,
	}, nil
}

func report(cmd *cobra.Command, res radix.Dec, ctx *radix.Context) {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, res.String())
	if *ctx.Flags != 0 {
		fmt.Fprintf(w, "flags: %s\n", *ctx.Flags)
	}
}

var evalCmd = &cobra.Command{
	Use:   "eval X OP Y",
	Short: "evaluate a binary operation",
	Long: `eval applies a binary operator to two decimal operands.

Operators: + - x * / rem pow cmp quantize
(x is an alias for * so the operator survives shell globbing)`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := calcContext()
		if err != nil {
			return err
		}
		x, err := radix.ParseDec(args[0])
		if err != nil {
			return err
		}
		y, err := radix.ParseDec(args[2])
		if err != nil {
			return err
		}
		m := radix.DecMath()
		var res radix.Dec
		switch args[1] {
		case "+":
			res, err = m.Add(x, y, ctx)
		case "-":
			res, err = m.Sub(x, y, ctx)
		case "*", "x":
			res, err = m.Mul(x, y, ctx)
		case "/":
			res, err = m.Quo(x, y, ctx)
		case "rem":
			res, err = m.Rem(x, y, ctx)
		case "pow":
			res, err = m.Power(x, y, ctx)
		case "cmp":
			res, err = m.CmpWithContext(x, y, false, ctx)
		case "quantize":
			res, err = m.Quantize(x, y, ctx)
		default:
			return fmt.Errorf("unknown operator %q", args[1])
		}
		if err != nil {
			return err
		}
		report(cmd, res, ctx)
		return nil
	},
}

// unaryCmd builds a subcommand for a one-operand function.
func unaryCmd(name, short string, f func(m *radix.Math[radix.Dec], x radix.Dec, ctx *radix.Context) (radix.Dec, error)) *cobra.Command {
	return &cobra.Command{
		Use:   name + " X",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := calcContext()
			if err != nil {
				return err
			}
			x, err := radix.ParseDec(args[0])
			if err != nil {
				return err
			}
			res, err := f(radix.DecMath(), x, ctx)
			if err != nil {
				return err
			}
			report(cmd, res, ctx)
			return nil
		},
	}
}

var sqrtCmd = unaryCmd("sqrt", "square root", (*radix.Math[radix.Dec]).Sqrt)
var expCmd = unaryCmd("exp", "e raised to X", (*radix.Math[radix.Dec]).Exp)
var lnCmd = unaryCmd("ln", "natural logarithm", (*radix.Math[radix.Dec]).Ln)
var log10Cmd = unaryCmd("log10", "base-10 logarithm", (*radix.Math[radix.Dec]).Log10)

var piCmd = &cobra.Command{
	Use:   "pi",
	Short: "pi to the context precision",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, err := calcContext()
		if err != nil {
			return err
		}
		res, err := radix.DecMath().Pi(ctx)
		if err != nil {
			return err
		}
		report(cmd, res, ctx)
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
