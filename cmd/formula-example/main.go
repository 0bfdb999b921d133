package main

import (
	"fmt"
	"log"

	"github.com/twinfer/unitconv/internal/formula"
)

func main() {
	// Example usage of the formula pool behind YAML catalogs
	pool, err := formula.NewExpressionPool()
	if err != nil {
		log.Fatalf("Failed to create formula pool: %v", err)
	}

	// A CEL formula: literals must be doubles
	toCelsius := "(x - 32.0) * 5.0 / 9.0"
	f, err := pool.Compile(formula.EngineCEL, toCelsius)
	if err != nil {
		log.Fatalf("Failed to compile formula: %v", err)
	}

	result, err := f(212)
	if err != nil {
		log.Fatalf("Failed to evaluate formula: %v", err)
	}

	fmt.Printf("Result of '%s' with x=212: %v\n", toCelsius, result)

	// The same conversion through expr-lang, which accepts int literals
	exprFormula := "(x - 32) * 5 / 9"
	g, err := pool.Compile(formula.EngineExpr, exprFormula)
	if err != nil {
		log.Fatalf("Failed to compile expr formula: %v", err)
	}

	exprResult, err := g(-40)
	if err != nil {
		log.Fatalf("Failed to evaluate expr formula: %v", err)
	}

	fmt.Printf("Result of '%s' with x=-40: %v\n", exprFormula, exprResult)

	// Math helpers are available to CEL formulas
	decibels := "10.0 * log10(x)"
	h, err := pool.Compile(formula.EngineCEL, decibels)
	if err != nil {
		log.Fatalf("Failed to compile math formula: %v", err)
	}

	dbResult, err := h(1000)
	if err != nil {
		log.Fatalf("Failed to evaluate math formula: %v", err)
	}

	fmt.Printf("Result of '%s' with x=1000: %v (%d formulas cached)\n", decibels, dbResult, pool.Len())
}
