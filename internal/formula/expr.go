package formula

import (
	"fmt"

	"github.com/expr-lang/expr"
)

// compileExpr compiles src with expr-lang, coercing the result to float64.
func compileExpr(src string) (Func, error) {
	env := map[string]any{Variable: 0.0}

	program, err := expr.Compile(src, expr.Env(env), expr.AsFloat64())
	if err != nil {
		return nil, fmt.Errorf("failed to compile expression: %w", err)
	}

	return func(x float64) (float64, error) {
		out, err := expr.Run(program, map[string]any{Variable: x})
		if err != nil {
			return 0, fmt.Errorf("expression evaluation error: %w", err)
		}
		v, ok := out.(float64)
		if !ok {
			return 0, fmt.Errorf("expression yielded %T, not a number", out)
		}
		return v, nil
	}, nil
}
