// Package prefix holds the table of SI and binary magnitude prefixes that may
// be attached to a unit token, e.g. "kilo" in "kilometer" or "mebi" in
// "mebibyte".
package prefix

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// ErrUnknownPrefix is returned by Lookup for names missing from the table.
var ErrUnknownPrefix = errors.New("unknown magnitude prefix")

// Prefix is a named multiplicative scale factor.
type Prefix struct {
	Name       string
	Multiplier float64
}

// None is the result of Extract when a token carries no prefix.
var None = Prefix{Name: "", Multiplier: 1}

// quetta (10^30) and quecto (10^-30) are not recognized.
var table = []Prefix{
	{"ronna", 1e27},
	{"yotta", 1e24},
	{"zetta", 1e21},
	{"exa", 1e18},
	{"peta", 1e15},
	{"tera", 1e12},
	{"giga", 1e9},
	{"mega", 1e6},
	{"kilo", 1e3},
	{"hecto", 1e2},
	{"deca", 1e1},
	{"deci", 1e-1},
	{"centi", 1e-2},
	{"milli", 1e-3},
	{"micro", 1e-6},
	{"nano", 1e-9},
	{"pico", 1e-12},
	{"femto", 1e-15},
	{"atto", 1e-18},
	{"zepto", 1e-21},
	{"yocto", 1e-24},
	{"ronto", 1e-27},
	{"kibi", 1 << 10},
	{"mebi", 1 << 20},
	{"gibi", 1 << 30},
	{"tebi", 1 << 40},
	{"pebi", 1 << 50},
	{"exbi", 1 << 60},
	{"zebi", 1 << 70},
	{"yobi", 1 << 80},
}

var (
	byName map[string]float64
	// candidates is the match order used by Extract: longest name first,
	// declaration order among equal lengths.
	candidates []Prefix
)

func init() {
	byName = make(map[string]float64, len(table))
	for _, p := range table {
		byName[p.Name] = p.Multiplier
	}

	candidates = make([]Prefix, len(table))
	copy(candidates, table)
	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i].Name) > len(candidates[j].Name)
	})
}

// All returns a copy of the prefix table in declaration order.
func All() []Prefix {
	out := make([]Prefix, len(table))
	copy(out, table)
	return out
}

// Extract splits token into its magnitude prefix and the remaining unit
// token. Matching is case-insensitive and the remainder is returned folded.
// A token with no known prefix, or one that consists of nothing but a prefix
// name, yields None and the token unchanged.
func Extract(token string) (Prefix, string) {
	folded := fold(token)
	for _, p := range candidates {
		if len(folded) > len(p.Name) && strings.HasPrefix(folded, p.Name) {
			return p, folded[len(p.Name):]
		}
	}
	return None, token
}

// Lookup returns the multiplier for a prefix name. The empty name maps to 1.
func Lookup(name string) (float64, error) {
	name = fold(name)
	if name == "" {
		return 1, nil
	}
	if m, ok := byName[name]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPrefix, name)
}

// Apply scales a prefixed literal down to its unprefixed magnitude,
// e.g. 3 with "kilo" becomes 3000.
func Apply(value float64, name string) (float64, error) {
	m, err := Lookup(name)
	if err != nil {
		return 0, err
	}
	return value * m, nil
}

// Express rewrites an unprefixed magnitude in terms of the named prefix,
// e.g. 3000 with "kilo" becomes 3.
func Express(value float64, name string) (float64, error) {
	if fold(name) == "" {
		return value, nil
	}
	m, err := Lookup(name)
	if err != nil {
		return 0, err
	}
	return value / m, nil
}

// cases.Caser values carry state, so one is built per call.
func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
