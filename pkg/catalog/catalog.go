// Package catalog loads unit families declared in YAML and turns them into
// providers for a unit.Registry. Conversion formulas are compiled once, at
// load time.
package catalog

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/twinfer/unitconv/internal/formula"
	"github.com/twinfer/unitconv/pkg/unit"
)

var (
	sharedPool     *formula.ExpressionPool
	sharedPoolErr  error
	sharedPoolOnce sync.Once
)

func getSharedPool() (*formula.ExpressionPool, error) {
	sharedPoolOnce.Do(func() {
		sharedPool, sharedPoolErr = formula.NewExpressionPool()
	})
	return sharedPool, sharedPoolErr
}

// LoadFile reads and parses a catalog file
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	return NewCatalogFromYAML(data)
}

// Providers compiles every family of the catalog, in file order.
func (c *Catalog) Providers() ([]unit.Provider, error) {
	pool, err := getSharedPool()
	if err != nil {
		return nil, err
	}

	providers := make([]unit.Provider, 0, len(c.Families))
	for _, def := range c.Families {
		table, err := def.compile(pool)
		if err != nil {
			return nil, err
		}
		providers = append(providers, table.Provider())
	}
	return providers, nil
}

// ProvidersFromFile loads a catalog file and compiles its families.
func ProvidersFromFile(path string) ([]unit.Provider, error) {
	c, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return c.Providers()
}

func (d FamilyDef) compile(pool *formula.ExpressionPool) (unit.Table, error) {
	engine, err := formula.ParseEngine(d.Engine)
	if err != nil {
		return unit.Table{}, &unit.Error{Kind: unit.KindInvalidFormula, Family: d.Name, Err: err}
	}

	table := unit.Table{Name: d.Name, Base: d.Base}

	for _, u := range d.Units {
		conv, err := u.conversion(pool, engine)
		if err != nil {
			return unit.Table{}, &unit.Error{
				Kind:    unit.KindInvalidFormula,
				Family:  unit.Normalize(d.Name),
				Unit:    unit.Normalize(u.Name),
				Message: "unit [" + unit.Normalize(u.Name) + "]",
				Err:     err,
			}
		}
		table.Rules = append(table.Rules, unit.Rule{Unit: u.Name, Conversion: conv, Tokens: u.Aliases})
	}

	// Map order is random; keep registration (and error reporting) stable.
	names := make([]string, 0, len(d.Aliases))
	for name := range d.Aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		table.Rules = append(table.Rules, unit.Rule{Unit: name, Tokens: d.Aliases[name]})
	}

	return table, nil
}

func (u UnitDef) conversion(pool *formula.ExpressionPool, engine formula.Engine) (unit.Conversion, error) {
	hasFormula := u.ToBase != "" || u.FromBase != ""

	switch {
	case u.Factor != 0 && hasFormula:
		return unit.Conversion{}, fmt.Errorf("factor and formulas are mutually exclusive")
	case u.Factor != 0:
		return unit.Linear(u.Factor), nil
	case u.ToBase == "" || u.FromBase == "":
		return unit.Conversion{}, fmt.Errorf("both to_base and from_base formulas are required")
	}

	toBase, err := pool.Compile(engine, u.ToBase)
	if err != nil {
		return unit.Conversion{}, fmt.Errorf("to_base: %w", err)
	}
	fromBase, err := pool.Compile(engine, u.FromBase)
	if err != nil {
		return unit.Conversion{}, fmt.Errorf("from_base: %w", err)
	}
	return unit.Conversion{ToBase: toBase, FromBase: fromBase}, nil
}
