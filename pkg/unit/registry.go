package unit

import (
	"fmt"
	"log/slog"
	"sync"
)

// Provider builds one Family. Providers run once, when a Registry is created.
type Provider func() (*Family, error)

// Registry holds every known Family. It is read-only after NewRegistry
// returns and may be shared between goroutines.
type Registry struct {
	families map[string]*Family
	order    []*Family
	logger   *slog.Logger
}

// options holds configuration for a registry
type options struct {
	logger *slog.Logger
}

// Option is a function that configures registry options
type Option func(*options)

// WithLogger sets a custom logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func defaultOptions() options {
	return options{
		logger: slog.Default(),
	}
}

// NewRegistry runs every provider in order and registers the families they
// return. Resolution later probes families in this same order.
func NewRegistry(providers []Provider, opts ...Option) (*Registry, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	r := &Registry{
		families: make(map[string]*Family, len(providers)),
		order:    make([]*Family, 0, len(providers)),
		logger:   o.logger,
	}

	for i, provide := range providers {
		f, err := provide()
		if err != nil {
			return nil, fmt.Errorf("building unit family #%d: %w", i, err)
		}
		if f == nil {
			return nil, fmt.Errorf("building unit family #%d: provider returned no family", i)
		}
		if _, exists := r.families[f.Name()]; exists {
			return nil, newError(KindDuplicateFamily, f.Name(), "family registered twice")
		}
		r.families[f.Name()] = f
		r.order = append(r.order, f)
		r.logger.Debug("registered unit family",
			"family", f.Name(),
			"base", f.Base(),
			"units", len(f.conversions)+1,
			"tokens", len(f.aliases))
	}

	return r, nil
}

// Global registry instance for the package-level helpers
var (
	globalRegistry     *Registry
	globalRegistryErr  error
	globalRegistryOnce sync.Once
)

// Default returns the process-wide registry of compiled-in families,
// building it on first use.
func Default() (*Registry, error) {
	globalRegistryOnce.Do(func() {
		globalRegistry, globalRegistryErr = NewRegistry(BuiltinProviders())
	})
	return globalRegistry, globalRegistryErr
}

// Families returns the registered family names in resolution order.
func (r *Registry) Families() []string {
	names := make([]string, len(r.order))
	for i, f := range r.order {
		names[i] = f.Name()
	}
	return names
}

// Family returns the named family.
func (r *Registry) Family(name string) (*Family, error) {
	if f, ok := r.families[Normalize(name)]; ok {
		return f, nil
	}
	return nil, &Error{
		Kind:    KindUnknownFamily,
		Family:  Normalize(name),
		Message: "unspecified unit family",
	}
}

// Resolve finds the first family whose tokens include token and returns the
// family name together with the unit identity.
func (r *Registry) Resolve(token string) (family, unit string, err error) {
	for _, f := range r.order {
		if u, ok := f.TryResolveToken(token); ok {
			return f.Name(), u, nil
		}
	}
	return "", "", &Error{
		Kind:    KindUnrecognizedToken,
		Token:   token,
		Message: fmt.Sprintf("unable to parse token %q, no defined units match this input", token),
	}
}

// Measure pairs value with a known unit of the named family.
func (r *Registry) Measure(value float64, family, unit string) (Measure, error) {
	f, err := r.Family(family)
	if err != nil {
		return Measure{}, err
	}
	return Measure{value: value, unit: Normalize(unit), family: f}, nil
}

// Parse pairs value with the unit token names.
func (r *Registry) Parse(value float64, token string) (Measure, error) {
	family, u, err := r.Resolve(token)
	if err != nil {
		return Measure{}, err
	}
	return Measure{value: value, unit: u, family: r.families[family]}, nil
}
