package formula

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// Variable is the name a formula uses for its input value.
const Variable = "x"

// NewEnvironment creates a CEL environment for conversion formulas: a single
// double variable x plus the math function library.
func NewEnvironment() (*cel.Env, error) {
	opts := []cel.EnvOption{
		cel.Variable(Variable, cel.DoubleType),
		MathFunctions(),
	}

	env, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	return env, nil
}

// compileCEL type-checks src and returns a Func evaluating it.
func compileCEL(env *cel.Env, src string) (Func, error) {
	ast, issues := env.Compile(src)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("failed to compile expression: %w", issues.Err())
	}

	out := ast.OutputType()
	if !out.IsExactType(cel.DoubleType) && !out.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("expression must yield a double, got %s", out)
	}

	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to create program: %w", err)
	}

	return func(x float64) (float64, error) {
		val, _, err := program.Eval(map[string]any{Variable: x})
		if err != nil {
			return 0, fmt.Errorf("expression evaluation error: %w", err)
		}
		return celToFloat(val)
	}, nil
}

// celToFloat converts a CEL result to float64
func celToFloat(val ref.Val) (float64, error) {
	switch v := val.(type) {
	case types.Double:
		return float64(v), nil
	case types.Int:
		return float64(v), nil
	case types.Uint:
		return float64(v), nil
	}
	if types.IsError(val) {
		return 0, fmt.Errorf("CEL error: %v", val)
	}
	return 0, fmt.Errorf("expression yielded %s, not a number", val.Type())
}
