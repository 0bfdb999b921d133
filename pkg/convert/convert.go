package convert

import (
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"sync"

	"github.com/twinfer/unitconv/pkg/catalog"
	"github.com/twinfer/unitconv/pkg/prefix"
	"github.com/twinfer/unitconv/pkg/unit"
)

// requestPattern matches ("<value> <prefix+unit>", "<prefix+unit>") anywhere in the input.
var requestPattern = regexp.MustCompile(`\("(\S*) (\S*)", "(\S*)"\)`)

// decimalLiteral is the accepted number form. Hex floats, digit separators
// and Inf/NaN spellings are rejected.
var decimalLiteral = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// Format is the request layout reported in malformed-input errors.
const Format = `("<value> <prefix+unit>", "<prefix+target_unit>")`

// Request is a parsed conversion request
type Request struct {
	Value float64
	From  string
	To    string
}

// Result is a converted measure together with the prefix the caller asked
// the target to be expressed in.
type Result struct {
	Measure unit.Measure
	Prefix  string
}

// Value returns the converted value expressed in the target prefix
func (r Result) Value() (float64, error) {
	return r.Measure.ValueWithPrefix(r.Prefix)
}

// String renders the converted value as "<value> <prefix><unit>". When the
// prefix is unknown the unprefixed value is rendered followed by the error.
func (r Result) String() string {
	s, err := r.Measure.Format(r.Prefix)
	if err != nil {
		return fmt.Sprintf("%s %s (%v)", unit.FormatValue(r.Measure.Value()), r.Measure.Unit(), err)
	}
	return s
}

// Converter evaluates conversion requests against a unit registry
type Converter struct {
	registry *unit.Registry
	logger   *slog.Logger
}

// options holds configuration for the converter
type options struct {
	registry     *unit.Registry
	logger       *slog.Logger
	catalogPaths []string
	debugMode    bool
}

// Option is a function that configures converter options
type Option func(*options)

// WithRegistry sets the registry requests are resolved against
func WithRegistry(r *unit.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithLogger sets a custom logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithCatalogFile adds the families of a YAML catalog after the compiled-in
// ones. Ignored when WithRegistry is also given.
func WithCatalogFile(path string) Option {
	return func(o *options) {
		o.catalogPaths = append(o.catalogPaths, path)
	}
}

// WithDebugMode enables debug logging
func WithDebugMode(enabled bool) Option {
	return func(o *options) {
		o.debugMode = enabled
	}
}

// defaultOptions returns the default configuration
func defaultOptions() options {
	return options{
		logger: slog.Default(),
	}
}

// Global converter instance for convenience functions
var (
	globalConverter     *Converter
	globalConverterErr  error
	globalConverterOnce sync.Once
)

// getGlobalConverter returns a singleton converter over the default registry
func getGlobalConverter() (*Converter, error) {
	globalConverterOnce.Do(func() {
		globalConverter, globalConverterErr = NewConverter()
	})
	return globalConverter, globalConverterErr
}

// NewConverter creates a new converter with the given options
func NewConverter(opts ...Option) (*Converter, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	if options.logger == nil {
		options.logger = slog.Default()
	}
	if options.debugMode {
		options.logger = options.logger.With("debug", true)
	}

	registry := options.registry
	switch {
	case registry != nil:
	case len(options.catalogPaths) > 0:
		providers := unit.BuiltinProviders()
		for _, path := range options.catalogPaths {
			extra, err := catalog.ProvidersFromFile(path)
			if err != nil {
				return nil, fmt.Errorf("loading catalog %s: %w", path, err)
			}
			providers = append(providers, extra...)
		}
		var err error
		registry, err = unit.NewRegistry(providers, unit.WithLogger(options.logger))
		if err != nil {
			return nil, fmt.Errorf("building registry: %w", err)
		}
	default:
		var err error
		registry, err = unit.Default()
		if err != nil {
			return nil, fmt.Errorf("building default registry: %w", err)
		}
	}

	return &Converter{
		registry: registry,
		logger:   options.logger,
	}, nil
}

// Registry returns the registry the converter resolves units against
func (c *Converter) Registry() *unit.Registry {
	return c.registry
}

// ParseRequest extracts the value and the two unit tokens from a request string
func ParseRequest(input string) (Request, error) {
	m := requestPattern.FindStringSubmatch(input)
	if m == nil {
		return Request{}, malformed(input, nil)
	}

	if !decimalLiteral.MatchString(m[1]) {
		return Request{}, malformed(input, fmt.Errorf("value %q is not a decimal number", m[1]))
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Request{}, malformed(input, err)
	}
	if !isFinite(value) {
		return Request{}, malformed(input, fmt.Errorf("value %q is not finite", m[1]))
	}

	return Request{Value: value, From: m[2], To: m[3]}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func malformed(input string, err error) error {
	return &unit.Error{
		Kind:    unit.KindMalformedInput,
		Token:   input,
		Message: fmt.Sprintf("unable to parse input %s, expected format is %s", input, Format),
		Err:     err,
	}
}

// splitToken separates the magnitude prefix from a unit token. When the
// stripped remainder names no unit but the whole token does, the token is
// taken as an unprefixed unit.
func (c *Converter) splitToken(token string) (prefix.Prefix, string) {
	p, rest := prefix.Extract(token)
	if p.Name == "" {
		return p, rest
	}
	if _, _, err := c.registry.Resolve(rest); err != nil {
		if _, _, err := c.registry.Resolve(token); err == nil {
			return prefix.None, token
		}
	}
	return p, rest
}

// Convert parses a request and converts its value into the target unit. The
// result carries the target prefix so the caller can express the value in it.
func (c *Converter) Convert(input string) (Result, error) {
	req, err := ParseRequest(input)
	if err != nil {
		return Result{}, err
	}

	fromPrefix, fromToken := c.splitToken(req.From)
	toPrefix, toToken := c.splitToken(req.To)

	scaled := req.Value * fromPrefix.Multiplier
	if !isFinite(scaled) {
		return Result{}, malformed(input, fmt.Errorf("%g %s overflows", req.Value, req.From))
	}

	source, err := c.registry.Parse(scaled, fromToken)
	if err != nil {
		return Result{}, err
	}

	converted, err := source.ConvertTo(toToken)
	if err != nil {
		return Result{}, err
	}

	result := Result{Measure: converted, Prefix: toPrefix.Name}
	expressed, err := result.Value()
	if err != nil {
		return Result{}, err
	}
	if !isFinite(converted.Value()) || !isFinite(expressed) {
		return Result{}, malformed(input, fmt.Errorf("converting %g %s to %s is out of range", req.Value, req.From, req.To))
	}

	c.logger.Debug("converted measure",
		"family", source.Family(),
		"from", source.Unit(),
		"from_prefix", fromPrefix.Name,
		"to", converted.Unit(),
		"to_prefix", toPrefix.Name,
		"value", converted.Value())

	return result, nil
}

// ConvertToUnit converts a request and returns the unprefixed target measure
func (c *Converter) ConvertToUnit(input string) (unit.Measure, error) {
	r, err := c.Convert(input)
	if err != nil {
		return unit.Measure{}, err
	}
	return r.Measure, nil
}

// ConvertToValue converts a request and returns the value in the target prefix
func (c *Converter) ConvertToValue(input string) (float64, error) {
	r, err := c.Convert(input)
	if err != nil {
		return 0, err
	}
	return r.Value()
}

// ConvertToString converts a request and renders it as "<value> <prefix><unit>"
func (c *Converter) ConvertToString(input string) (string, error) {
	r, err := c.Convert(input)
	if err != nil {
		return "", err
	}
	return r.Measure.Format(r.Prefix)
}

// Convert parses and converts a request using the default converter
func Convert(input string) (Result, error) {
	c, err := getGlobalConverter()
	if err != nil {
		return Result{}, err
	}
	return c.Convert(input)
}

// ConvertToUnit converts a request using the default converter
func ConvertToUnit(input string) (unit.Measure, error) {
	c, err := getGlobalConverter()
	if err != nil {
		return unit.Measure{}, err
	}
	return c.ConvertToUnit(input)
}

// ConvertToValue converts a request using the default converter
func ConvertToValue(input string) (float64, error) {
	c, err := getGlobalConverter()
	if err != nil {
		return 0, err
	}
	return c.ConvertToValue(input)
}

// ConvertToString converts a request using the default converter
func ConvertToString(input string) (string, error) {
	c, err := getGlobalConverter()
	if err != nil {
		return "", err
	}
	return c.ConvertToString(input)
}
