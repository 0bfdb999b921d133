// Package convert evaluates textual unit conversion requests.
//
// # Overview
//
// A request names a value with its unit and a target unit, each optionally
// carrying an SI or binary magnitude prefix:
//
//	("3 kilometer", "inches")
//	("6 mebibyte", "kibibit")
//	("-10 celsius", "fahrenheit")
//
// The source prefix scales the literal before conversion, so the converted
// measure always holds an unprefixed magnitude. The target prefix is kept
// alongside the result and applied when the value is read or rendered.
//
// # Quick Start
//
// The package functions use a converter over the compiled-in families
// (length, temperature, data):
//
//	s, err := convert.ConvertToString(`("3 kiloinches", "meter")`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(s) // 76.2 meter
//
//	v, err := convert.ConvertToValue(`("4 millifeet", "nanoinch")`)
//	// v ≈ 48000000
//
//	m, err := convert.ConvertToUnit(`("3 kiloinches", "meter")`)
//	// m.Value() ≈ 76.2, m.Unit() == "meter"
//
// # Custom Converter Instance
//
// Additional families can be declared in a YAML catalog (see package
// catalog) and loaded next to the compiled-in ones:
//
//	c, err := convert.NewConverter(
//	    convert.WithCatalogFile("units.yaml"),
//	    convert.WithLogger(logger),
//	)
//
// # Error Handling
//
// Every failure is a *unit.Error. Use errors.Is with the unit sentinels to
// branch on the kind:
//
//   - unit.ErrMalformedInput: the request does not match the pattern
//   - unit.ErrUnrecognizedToken: no family knows the source unit
//   - unit.ErrUnsupportedUnit: the target unit is not in the source's family
//   - unit.ErrUnknownPrefix: a prefix name is not in the table
//
// # Thread Safety
//
// Converters and the registries behind them are immutable once built and
// may be shared between goroutines.
package convert
