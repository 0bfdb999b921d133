// Package formula compiles textual conversion formulas such as
// "(x - 32) * 5.0 / 9.0" into functions of a single float64 variable x.
package formula

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/cel-go/cel"
)

// Func evaluates a compiled formula for the input x.
type Func = func(x float64) (float64, error)

// Engine names an expression language.
type Engine string

const (
	// EngineCEL compiles formulas with cel-go. Literals are typed, so a
	// formula over x must use double literals ("x * 8.0").
	EngineCEL Engine = "cel"

	// EngineExpr compiles formulas with expr-lang, which mixes ints and
	// floats freely.
	EngineExpr Engine = "expr"
)

// ParseEngine maps a configuration string to an Engine. The empty string
// selects EngineCEL.
func ParseEngine(s string) (Engine, error) {
	switch e := Engine(strings.ToLower(strings.TrimSpace(s))); e {
	case "", EngineCEL:
		return EngineCEL, nil
	case EngineExpr:
		return EngineExpr, nil
	default:
		return "", fmt.Errorf("unknown formula engine %q", s)
	}
}

// ExpressionPool caches compiled formulas
type ExpressionPool struct {
	mu          sync.RWMutex
	expressions map[string]Func
	env         *cel.Env
}

// NewExpressionPool creates a new expression pool with a configured CEL environment
func NewExpressionPool() (*ExpressionPool, error) {
	env, err := NewEnvironment()
	if err != nil {
		return nil, fmt.Errorf("failed to create environment: %w", err)
	}

	return &ExpressionPool{
		env:         env,
		expressions: make(map[string]Func),
	}, nil
}

// Compile retrieves or compiles a formula
func (e *ExpressionPool) Compile(engine Engine, src string) (Func, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, fmt.Errorf("empty formula")
	}

	key := string(engine) + "\x00" + src

	e.mu.RLock()
	if f, ok := e.expressions[key]; ok {
		e.mu.RUnlock()
		return f, nil
	}
	e.mu.RUnlock()

	var (
		f   Func
		err error
	)
	switch engine {
	case EngineCEL, "":
		f, err = compileCEL(e.env, src)
	case EngineExpr:
		f, err = compileExpr(src)
	default:
		err = fmt.Errorf("unknown formula engine %q", engine)
	}
	if err != nil {
		return nil, fmt.Errorf("formula '%s': %w", src, err)
	}

	e.mu.Lock()
	e.expressions[key] = f
	e.mu.Unlock()

	return f, nil
}

// Len reports the number of cached formulas.
func (e *ExpressionPool) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.expressions)
}
