package unit

import (
	"errors"
	"maps"
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Func maps a value from one unit to another.
type Func func(x float64) (float64, error)

// Conversion is the pair of functions that route a unit through its family's
// base unit. The two should be inverses for round trips to hold.
type Conversion struct {
	ToBase   Func
	FromBase Func
}

// Pure lifts an infallible arithmetic function into a Func.
func Pure(f func(x float64) float64) Func {
	return func(x float64) (float64, error) {
		return f(x), nil
	}
}

// Linear returns the conversion for a unit worth factor base units.
func Linear(factor float64) Conversion {
	return Conversion{
		ToBase:   Pure(func(x float64) float64 { return x * factor }),
		FromBase: Pure(func(x float64) float64 { return x / factor }),
	}
}

// Affine returns the conversion base = (x - offset) * factor.
func Affine(factor, offset float64) Conversion {
	return Conversion{
		ToBase:   Pure(func(x float64) float64 { return (x - offset) * factor }),
		FromBase: Pure(func(x float64) float64 { return x/factor + offset }),
	}
}

// Normalize folds a unit token or identity into the form used as map key.
func Normalize(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// Family is a set of mutually convertible units sharing one base unit.
// A Family is immutable once built.
type Family struct {
	name        string
	base        string
	conversions map[string]Conversion
	// folded token -> unit identity
	aliases map[string]string
	// unit identity -> tokens, in registration order
	tokens map[string][]string
}

// Builder declares a Family. Errors are collected and reported by Build.
type Builder struct {
	family *Family
	errs   []error
}

// Define starts the definition of a family with the given base unit.
func Define(name, base string) *Builder {
	return &Builder{
		family: &Family{
			name:        Normalize(name),
			base:        Normalize(base),
			conversions: make(map[string]Conversion),
			aliases:     make(map[string]string),
			tokens:      make(map[string][]string),
		},
	}
}

// WithConversion registers the to-base and from-base functions of unit.
func (b *Builder) WithConversion(unit string, toBase, fromBase Func) *Builder {
	f := b.family
	u := Normalize(unit)

	switch {
	case u == f.base:
		b.errs = append(b.errs, &Error{
			Kind:    KindDuplicateUnit,
			Family:  f.name,
			Unit:    u,
			Message: "[" + u + "] is the base unit and cannot carry a conversion",
		})
	case toBase == nil || fromBase == nil:
		b.errs = append(b.errs, &Error{
			Kind:    KindInvalidFormula,
			Family:  f.name,
			Unit:    u,
			Message: "conversion for [" + u + "] needs both directions",
		})
	default:
		if _, exists := f.conversions[u]; exists {
			b.errs = append(b.errs, &Error{
				Kind:    KindDuplicateUnit,
				Family:  f.name,
				Unit:    u,
				Message: "conversion for [" + u + "] already registered",
			})
			return b
		}
		f.conversions[u] = Conversion{ToBase: toBase, FromBase: fromBase}
	}
	return b
}

// WithUnit is WithConversion taking a prepared Conversion.
func (b *Builder) WithUnit(unit string, c Conversion) *Builder {
	return b.WithConversion(unit, c.ToBase, c.FromBase)
}

// WithParserRule registers tokens that resolve to unit.
func (b *Builder) WithParserRule(unit string, tokens ...string) *Builder {
	f := b.family
	u := Normalize(unit)

	for _, token := range tokens {
		key := Normalize(token)
		if key == "" {
			b.errs = append(b.errs, &Error{
				Kind:    KindInvalidDefinition,
				Family:  f.name,
				Unit:    u,
				Message: "empty token for [" + u + "]",
			})
			continue
		}
		if owner, exists := f.aliases[key]; exists {
			b.errs = append(b.errs, &Error{
				Kind:    KindDuplicateAlias,
				Family:  f.name,
				Unit:    u,
				Token:   key,
				Message: "token " + key + " already resolves to [" + owner + "]",
			})
			continue
		}
		f.aliases[key] = u
		f.tokens[u] = append(f.tokens[u], key)
	}
	return b
}

// Build validates the definition and returns the finished Family. The
// Family is a copy: later calls on the builder do not change it.
func (b *Builder) Build() (*Family, error) {
	f := b.family
	errs := append([]error(nil), b.errs...)

	if f.name == "" {
		errs = append(errs, newError(KindInvalidDefinition, "", "family name is empty"))
	}
	if f.base == "" {
		errs = append(errs, newError(KindInvalidDefinition, f.name, "base unit is empty"))
	}

	for _, u := range sortedKeys(f.conversions) {
		if len(f.tokens[u]) == 0 {
			errs = append(errs, &Error{
				Kind:    KindMissingAlias,
				Family:  f.name,
				Unit:    u,
				Message: "no token resolves to [" + u + "]",
			})
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return f.clone(), nil
}

// clone copies f so later builder calls cannot reach a built Family.
func (f *Family) clone() *Family {
	tokens := make(map[string][]string, len(f.tokens))
	for u, ts := range f.tokens {
		tokens[u] = slices.Clone(ts)
	}
	return &Family{
		name:        f.name,
		base:        f.base,
		conversions: maps.Clone(f.conversions),
		aliases:     maps.Clone(f.aliases),
		tokens:      tokens,
	}
}

// Name returns the family name.
func (f *Family) Name() string { return f.name }

// Base returns the base unit identity.
func (f *Family) Base() string { return f.base }

// Units returns the base unit followed by the converted units in lexical order.
func (f *Family) Units() []string {
	return append([]string{f.base}, sortedKeys(f.conversions)...)
}

// Aliases returns the tokens registered for unit.
func (f *Family) Aliases(unit string) []string {
	return append([]string(nil), f.tokens[Normalize(unit)]...)
}

// TryResolveToken returns the unit identity token names within this family.
func (f *Family) TryResolveToken(token string) (string, bool) {
	u, ok := f.aliases[Normalize(token)]
	return u, ok
}

// Convert converts value from one unit of the family to another by way of
// the base unit. Equal units return value untouched.
func (f *Family) Convert(from, to string, value float64) (float64, error) {
	from, to = Normalize(from), Normalize(to)
	if from == to {
		return value, nil
	}

	v := value
	if from != f.base {
		c, ok := f.conversions[from]
		if !ok {
			return 0, &Error{
				Kind:    KindUnsupportedUnit,
				Family:  f.name,
				Unit:    from,
				Message: "unable to convert from [" + from + "] to base unit [" + f.base + "]",
			}
		}
		var err error
		if v, err = c.ToBase(v); err != nil {
			return 0, &Error{Kind: KindInvalidFormula, Family: f.name, Unit: from, Message: "to-base conversion failed", Err: err}
		}
	}

	if to != f.base {
		c, ok := f.conversions[to]
		if !ok {
			return 0, &Error{
				Kind:    KindUnsupportedUnit,
				Family:  f.name,
				Unit:    to,
				Message: "unable to convert from base unit [" + f.base + "] to [" + to + "]",
			}
		}
		var err error
		if v, err = c.FromBase(v); err != nil {
			return 0, &Error{Kind: KindInvalidFormula, Family: f.name, Unit: to, Message: "from-base conversion failed", Err: err}
		}
	}

	return v, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
