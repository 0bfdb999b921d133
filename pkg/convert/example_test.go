package convert_test

import (
	"errors"
	"fmt"
	"log"

	"github.com/twinfer/unitconv/pkg/convert"
	"github.com/twinfer/unitconv/pkg/unit"
)

// Example demonstrates basic usage of the convert package
func Example() {
	s, err := convert.ConvertToString(`("3 kiloinches", "meter")`)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(s)

	s, err = convert.ConvertToString(`("4 millifeet", "nanoinch")`)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(s)
	// Output:
	// 76.2 meter
	// 48000000 nanoinch
}

// ExampleConvertToValue shows the value expressed in the target prefix
func ExampleConvertToValue() {
	v, err := convert.ConvertToValue(`("6 mebibyte", "kibibit")`)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%.0f\n", v)
	// Output: 49152
}

// ExampleConvertToUnit shows the unprefixed converted measure
func ExampleConvertToUnit() {
	m, err := convert.ConvertToUnit(`("-10 celsius", "fahrenheit")`)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%.2f %s (%s)\n", m.Value(), m.Unit(), m.Family())
	// Output: 14.00 fahrenheit (temperature)
}

// Example_errors demonstrates branching on the error kind
func Example_errors() {
	_, err := convert.ConvertToValue(`("1 meter", "byte")`)
	fmt.Println(errors.Is(err, unit.ErrUnsupportedUnit))

	_, err = convert.ConvertToValue(`("1 parsec", "meter")`)
	fmt.Println(unit.KindOf(err))
	// Output:
	// true
	// unrecognized_token
}
