package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Catalog represents a parsed unit catalog file
type Catalog struct {
	Families []FamilyDef `yaml:"families"`
	Doc      string      `yaml:"doc,omitempty"`
}

// FamilyDef declares one unit family
type FamilyDef struct {
	Name    string              `yaml:"name"`
	Base    string              `yaml:"base"`
	Engine  string              `yaml:"engine,omitempty"`  // cel (default) or expr
	Aliases map[string][]string `yaml:"aliases,omitempty"` // extra tokens, keyed by unit; usually names the base unit
	Units   []UnitDef           `yaml:"units"`
	Doc     string              `yaml:"doc,omitempty"`
}

// UnitDef declares a non-base unit with its conversion formulas
type UnitDef struct {
	Name     string   `yaml:"name"`
	ToBase   string   `yaml:"to_base"`
	FromBase string   `yaml:"from_base"`
	Factor   float64  `yaml:"factor,omitempty"` // shorthand for to_base "x * factor", from_base "x / factor"
	Aliases  []string `yaml:"aliases"`
	Doc      string   `yaml:"doc,omitempty"`
}

// NewCatalogFromYAML parses a catalog document
func NewCatalogFromYAML(data []byte) (*Catalog, error) {
	c := &Catalog{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}
	return c, nil
}
