// Package testutil holds helpers shared by the package tests.
package testutil

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

// FloatTolerance is the relative tolerance used when comparing converted values.
const FloatTolerance = 1e-9

// ApproxFloats is a cmp option treating float64 values as equal when they
// are within FloatTolerance of each other, relatively, or absolutely near zero.
var ApproxFloats = cmpopts.EquateApprox(FloatTolerance, FloatTolerance)

// NumericComparer compares values that may arrive as ints or floats
// (e.g. decoded from YAML or JSON) by numeric value. It only applies when
// both sides are numbers.
var NumericComparer = cmp.FilterValues(func(x, y any) bool {
	_, xOk := ToFloat64(x)
	_, yOk := ToFloat64(y)
	return xOk && yOk
}, cmp.Comparer(func(x, y any) bool {
	xf, _ := ToFloat64(x)
	yf, _ := ToFloat64(y)
	return math.Abs(xf-yf) <= FloatTolerance*math.Max(1, math.Max(math.Abs(xf), math.Abs(yf)))
}))

// ToFloat64 converts the common numeric types to float64 for comparison.
func ToFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// WriteTempCatalog writes content to a catalog file in a fresh temp dir
// and returns its path.
func WriteTempCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)
	return path
}

// ExtraUnitsCatalog declares two families beyond the compiled-in ones, one
// per formula engine.
const ExtraUnitsCatalog = `
families:
  - name: mass
    base: gram
    aliases:
      gram: [gram, grams]
    units:
      - name: pound
        to_base: "x * 453.59237"
        from_base: "x / 453.59237"
        aliases: [pound, pounds, lb]
      - name: ounce
        factor: 28.349523125
        aliases: [ounce, ounces, oz]
  - name: time
    base: second
    engine: expr
    aliases:
      second: [second, seconds, sec]
    units:
      - name: minute
        to_base: "x * 60"
        from_base: "x / 60"
        aliases: [minute, minutes, min]
      - name: hour
        to_base: "x * 3600"
        from_base: "x / 3600"
        aliases: [hour, hours, hr]
`
