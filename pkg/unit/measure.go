package unit

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/twinfer/unitconv/pkg/prefix"
)

// Measure is a value paired with a unit of one family, e.g. 4 feet.
// The zero Measure belongs to no family and cannot be converted.
type Measure struct {
	value  float64
	unit   string
	family *Family
}

// New pairs value with a known unit of the named family in the default registry.
func New(value float64, family, unit string) (Measure, error) {
	r, err := Default()
	if err != nil {
		return Measure{}, err
	}
	return r.Measure(value, family, unit)
}

// Parse resolves token against the default registry and pairs it with value.
func Parse(value float64, token string) (Measure, error) {
	r, err := Default()
	if err != nil {
		return Measure{}, err
	}
	return r.Parse(value, token)
}

// Value returns the unprefixed magnitude.
func (m Measure) Value() float64 { return m.value }

// Unit returns the unit identity.
func (m Measure) Unit() string { return m.unit }

// Family returns the name of the owning family.
func (m Measure) Family() string {
	if m.family == nil {
		return ""
	}
	return m.family.Name()
}

// ConvertTo returns the measure expressed in the unit token names. The token
// must belong to the same family.
func (m Measure) ConvertTo(token string) (Measure, error) {
	if m.family == nil {
		return Measure{}, newError(KindUnknownFamily, "", "measure has no unit family")
	}

	to, ok := m.family.TryResolveToken(token)
	if !ok {
		return Measure{}, &Error{
			Kind:    KindUnsupportedUnit,
			Family:  m.family.Name(),
			Token:   token,
			Message: fmt.Sprintf("target unit %q is not supported", token),
		}
	}

	v, err := m.family.Convert(m.unit, to, m.value)
	if err != nil {
		return Measure{}, err
	}
	return Measure{value: v, unit: to, family: m.family}, nil
}

// ValueWithPrefix returns the value expressed in the named magnitude prefix.
func (m Measure) ValueWithPrefix(name string) (float64, error) {
	v, err := prefix.Express(m.value, name)
	if err != nil {
		if errors.Is(err, prefix.ErrUnknownPrefix) {
			return 0, &Error{Kind: KindUnknownPrefix, Family: m.Family(), Token: name, Err: err}
		}
		return 0, err
	}
	return v, nil
}

// Format renders the value in the named prefix, rounded to two decimals
// with trailing zeros dropped, e.g. "76.2 meter".
func (m Measure) Format(name string) (string, error) {
	v, err := m.ValueWithPrefix(name)
	if err != nil {
		return "", err
	}
	return FormatValue(v) + " " + Normalize(name) + m.unit, nil
}

// String renders the unrounded value and unit.
func (m Measure) String() string {
	return strconv.FormatFloat(m.value, 'f', -1, 64) + " " + m.unit
}

// FormatValue rounds v to two decimals and drops trailing zeros.
func FormatValue(v float64) string {
	r := math.Round(v*100) / 100
	if math.IsInf(r, 0) || math.IsNaN(r) {
		r = v
	}
	if r == 0 {
		// avoid "-0"
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
