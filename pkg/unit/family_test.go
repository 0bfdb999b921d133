package unit

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildLength(t *testing.T) *Family {
	t.Helper()
	f, err := lengthTable.Provider()()
	require.NoError(t, err)
	return f
}

func TestFamilyBuilder(t *testing.T) {
	f, err := Define("Length", "Meter").
		WithConversion("Feet", Linear(0.3048).ToBase, Linear(0.3048).FromBase).
		WithParserRule("feet", "feet", "foot").
		WithParserRule("meter", "meter").
		Build()
	require.NoError(t, err)

	assert.Equal(t, "length", f.Name())
	assert.Equal(t, "meter", f.Base())
	assert.Equal(t, []string{"meter", "feet"}, f.Units())
	assert.Equal(t, []string{"feet", "foot"}, f.Aliases("FEET"))
}

func TestFamilyBuilderErrors(t *testing.T) {
	t.Run("duplicate conversion", func(t *testing.T) {
		_, err := Define("length", "meter").
			WithUnit("feet", Linear(0.3048)).
			WithUnit("feet", Linear(0.3)).
			WithParserRule("feet", "feet").
			Build()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDuplicateUnit)
	})

	t.Run("conversion on base unit", func(t *testing.T) {
		_, err := Define("length", "meter").
			WithUnit("meter", Linear(1)).
			WithParserRule("meter", "meter").
			Build()
		assert.ErrorIs(t, err, ErrDuplicateUnit)
	})

	t.Run("duplicate alias across units", func(t *testing.T) {
		_, err := Define("length", "meter").
			WithUnit("feet", Linear(0.3048)).
			WithParserRule("feet", "ft").
			WithParserRule("meter", " FT ").
			Build()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDuplicateAlias)

		var e *Error
		require.True(t, errors.As(err, &e))
		assert.Equal(t, "ft", e.Token)
		assert.Equal(t, "length", e.Family)
	})

	t.Run("converted unit without alias", func(t *testing.T) {
		_, err := Define("length", "meter").
			WithUnit("feet", Linear(0.3048)).
			WithParserRule("meter", "meter").
			Build()
		assert.ErrorIs(t, err, ErrMissingAlias)
	})

	t.Run("half conversion", func(t *testing.T) {
		_, err := Define("length", "meter").
			WithConversion("feet", Linear(0.3048).ToBase, nil).
			WithParserRule("feet", "feet").
			Build()
		assert.ErrorIs(t, err, ErrInvalidFormula)
	})

	t.Run("empty definitions", func(t *testing.T) {
		testCases := []struct {
			name    string
			builder *Builder
		}{
			{"empty family name", Define(" ", "meter").WithParserRule("meter", "meter")},
			{"empty base unit", Define("length", "").WithParserRule("meter", "meter")},
			{"empty token", Define("length", "meter").WithParserRule("meter", "meter", "  ")},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := tc.builder.Build()
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidDefinition)
				assert.NotErrorIs(t, err, ErrDuplicateAlias)
				assert.NotErrorIs(t, err, ErrUnknownFamily)
				assert.NotErrorIs(t, err, ErrUnsupportedUnit)
			})
		}
	})

	t.Run("all errors reported", func(t *testing.T) {
		_, err := Define("length", "meter").
			WithUnit("feet", Linear(0.3048)).
			WithUnit("feet", Linear(0.3048)).
			WithParserRule("meter", "m", "m").
			Build()
		assert.ErrorIs(t, err, ErrDuplicateUnit)
		assert.ErrorIs(t, err, ErrDuplicateAlias)
		assert.ErrorIs(t, err, ErrMissingAlias)
	})
}

func TestBuiltFamilyIsDetachedFromBuilder(t *testing.T) {
	b := Define("length", "meter").
		WithUnit("feet", Linear(0.3048)).
		WithParserRule("feet", "feet").
		WithParserRule("meter", "meter")

	f, err := b.Build()
	require.NoError(t, err)
	units := f.Units()

	b.WithUnit("yard", Linear(0.9144)).
		WithParserRule("yard", "yard").
		WithParserRule("feet", "ft")

	assert.Equal(t, units, f.Units())
	assert.Equal(t, []string{"feet"}, f.Aliases("feet"))
	_, ok := f.TryResolveToken("yard")
	assert.False(t, ok)
	_, err = f.Convert("yard", "meter", 1)
	assert.ErrorIs(t, err, ErrUnsupportedUnit)

	// a second Build sees the additions
	g, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"meter", "feet", "yard"}, g.Units())
	assert.Equal(t, []string{"meter", "feet"}, f.Units())
}

func TestTryResolveToken(t *testing.T) {
	f := buildLength(t)

	for _, token := range []string{"Meter", "meter ", " METER", "meters"} {
		u, ok := f.TryResolveToken(token)
		assert.True(t, ok, token)
		assert.Equal(t, Meter, u, token)
	}

	_, ok := f.TryResolveToken("met")
	assert.False(t, ok, "no fuzzy matching")
	_, ok = f.TryResolveToken("byte")
	assert.False(t, ok)
}

func TestFamilyConvert(t *testing.T) {
	testCases := []struct {
		name   string
		table  Table
		from   string
		value  float64
		to     string
		expect float64
	}{
		{"feet to inch", lengthTable, Feet, 1, Inch, 12},
		{"meter to inch", lengthTable, Meter, 3, Inch, 118.11},
		{"feet to feet", lengthTable, Feet, 10, Feet, 10},
		{"inch to feet", lengthTable, Inch, 4, Feet, 0.333333},
		{"bit to byte", dataTable, Bit, 45, Byte, 5.625},
		{"byte to bit", dataTable, Byte, 2, Bit, 16},
		{"celsius to fahrenheit", temperatureTable, Celsius, 45, Fahrenheit, 113},
		{"negative celsius to fahrenheit", temperatureTable, Celsius, -11, Fahrenheit, 12.2},
		{"fahrenheit to celsius", temperatureTable, Fahrenheit, 32, Celsius, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := tc.table.Provider()()
			require.NoError(t, err)

			got, err := f.Convert(tc.from, tc.to, tc.value)
			require.NoError(t, err)
			assert.InDelta(t, tc.expect, got, 0.001)
		})
	}
}

func TestFamilyConvertIdentityIsExact(t *testing.T) {
	f := buildLength(t)
	for _, x := range []float64{0.1, -3.3, 1e-300, math.MaxFloat64, math.Inf(1)} {
		for _, u := range f.Units() {
			got, err := f.Convert(u, " "+u, x)
			require.NoError(t, err)
			assert.Equal(t, x, got)
		}
	}
}

func TestFamilyConvertRoundTrip(t *testing.T) {
	approx := cmpopts.EquateApprox(1e-12, 1e-9)
	values := []float64{-40, -1, 0, 0.5, 1, 12.75, 1e6}

	for _, table := range []Table{lengthTable, temperatureTable, dataTable} {
		f, err := table.Provider()()
		require.NoError(t, err)

		for _, a := range f.Units() {
			for _, b := range f.Units() {
				for _, x := range values {
					there, err := f.Convert(b, a, x)
					require.NoError(t, err)
					back, err := f.Convert(a, b, there)
					require.NoError(t, err)
					if diff := cmp.Diff(x, back, approx); diff != "" {
						t.Errorf("%s: %s -> %s -> %s round trip mismatch (-want +got):\n%s", f.Name(), b, a, b, diff)
					}
				}
			}
		}
	}
}

func TestFamilyConvertUnsupported(t *testing.T) {
	f, err := Define("length", "meter").
		WithUnit("feet", Linear(0.3048)).
		WithParserRule("feet", "feet").
		WithParserRule("yard", "yard").
		Build()
	require.NoError(t, err)

	_, err = f.Convert("yard", "meter", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedUnit)
	assert.Contains(t, err.Error(), "length")
	assert.Contains(t, err.Error(), "yard")

	_, err = f.Convert("feet", "furlong", 1)
	assert.ErrorIs(t, err, ErrUnsupportedUnit)
	assert.Equal(t, KindUnsupportedUnit, KindOf(err))
}

func TestFamilyConvertPropagatesFuncErrors(t *testing.T) {
	boom := errors.New("boom")
	f, err := Define("odd", "a").
		WithConversion("b", func(float64) (float64, error) { return 0, boom }, Pure(func(x float64) float64 { return x })).
		WithParserRule("b", "b").
		Build()
	require.NoError(t, err)

	_, err = f.Convert("b", "a", 1)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, ErrInvalidFormula)
}
