package unit

// Compiled-in family names.
const (
	Length      = "length"
	Temperature = "temperature"
	Data        = "data"
)

// Compiled-in unit identities.
const (
	Meter = "meter"
	Feet  = "feet"
	Inch  = "inch"

	Celsius    = "celsius"
	Fahrenheit = "fahrenheit"

	Bit  = "bit"
	Byte = "byte"
)

// Rule declares one unit of a family: its conversion (zero for the base
// unit) and the tokens that name it.
type Rule struct {
	Unit       string
	Conversion Conversion
	Tokens     []string
}

// Table is the data-driven form of a family declaration.
type Table struct {
	Name  string
	Base  string
	Rules []Rule
}

// Provider returns a Provider that builds the family described by t.
func (t Table) Provider() Provider {
	return func() (*Family, error) {
		b := Define(t.Name, t.Base)
		for _, r := range t.Rules {
			if r.Conversion.ToBase != nil || r.Conversion.FromBase != nil {
				b.WithUnit(r.Unit, r.Conversion)
			}
			b.WithParserRule(r.Unit, r.Tokens...)
		}
		return b.Build()
	}
}

var lengthTable = Table{
	Name: Length,
	Base: Meter,
	Rules: []Rule{
		{Unit: Feet, Conversion: Linear(0.3048), Tokens: []string{"feet", "foot"}},
		{Unit: Meter, Tokens: []string{"meter", "meters"}},
		{Unit: Inch, Conversion: Linear(0.0254), Tokens: []string{"inch", "inches"}},
	},
}

var temperatureTable = Table{
	Name: Temperature,
	Base: Celsius,
	Rules: []Rule{
		{Unit: Celsius, Tokens: []string{"celsius"}},
		{
			Unit: Fahrenheit,
			Conversion: Conversion{
				ToBase:   Pure(func(x float64) float64 { return (x - 32) * 5 / 9 }),
				FromBase: Pure(func(x float64) float64 { return 9.0/5.0*x + 32 }),
			},
			Tokens: []string{"fahrenheit"},
		},
	},
}

var dataTable = Table{
	Name: Data,
	Base: Bit,
	Rules: []Rule{
		{Unit: Bit, Tokens: []string{"bit", "bits"}},
		{Unit: Byte, Conversion: Linear(8), Tokens: []string{"byte", "bytes"}},
	},
}

// BuiltinProviders returns the compiled-in families in resolution order.
func BuiltinProviders() []Provider {
	return []Provider{
		lengthTable.Provider(),
		temperatureTable.Provider(),
		dataTable.Provider(),
	}
}
