package resolver

import (
	"context"

	"tase-symbol-finder/internal/fuzzy"
	"tase-symbol-finder/internal/interfaces"
	"tase-symbol-finder/internal/known"
	"tase-symbol-finder/internal/logger"
	"tase-symbol-finder/internal/lookup/alphavantage"
	"tase-symbol-finder/internal/lookup/lookupobs"
	"tase-symbol-finder/internal/lookup/yahoo"
	"tase-symbol-finder/internal/metrics"
	"tase-symbol-finder/internal/types"
)

// Step is one strategy in the resolution chain
type Step struct {
	Method string
	Source interfaces.SymbolLookup
}

// Policy tries its steps in order and keeps the first symbol found
type Policy struct {
	steps    []Step
	notFound string
	metrics  *metrics.Metrics
}

var _ interfaces.Resolver = (*Policy)(nil)

// Option configures a Policy
type Option func(*Policy)

// WithNotFound sets the sentinel written to both fields when every step misses
func WithNotFound(label string) Option {
	return func(p *Policy) {
		if label != "" {
			p.notFound = label
		}
	}
}

// WithMetrics counts resolutions on m
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Policy) {
		p.metrics = m
	}
}

// New creates a policy over steps. Steps without a source are dropped.
func New(steps []Step, opts ...Option) *Policy {
	p := &Policy{notFound: types.NotFound}
	for _, s := range steps {
		if s.Source != nil {
			p.steps = append(p.steps, s)
		}
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Build assembles the standard chain: known table, then Provider A, then
// Provider B. B is only added when credential is non-empty.
func Build(table *known.Table, threshold int, providerA interfaces.SymbolLookup, providerB *alphavantage.Client, credential string, opts ...Option) *Policy {
	p := New(nil, opts...)
	p.steps = append(p.steps, Step{Method: types.MethodKnownStock, Source: fuzzy.NewMatcher(table, threshold)})
	if providerA != nil {
		p.steps = append(p.steps, Step{
			Method: types.MethodProviderA,
			Source: lookupobs.Wrap(yahoo.ProviderName, providerA, p.metrics),
		})
	}
	if providerB != nil && credential != "" {
		p.steps = append(p.steps, Step{
			Method: types.MethodProviderB,
			Source: lookupobs.Wrap(alphavantage.ProviderName, alphavantage.WithKey(providerB, credential), p.metrics),
		})
	}
	return p
}

// Methods lists the search methods in chain order
func (p *Policy) Methods() []string {
	out := make([]string, len(p.steps))
	for i, s := range p.steps {
		out[i] = s.Method
	}
	return out
}

// NotFound returns the sentinel label
func (p *Policy) NotFound() string {
	return p.notFound
}

// Resolve runs the chain for one company name. Later steps are never
// called once a symbol is found. Faults are logged and treated as misses.
func (p *Policy) Resolve(ctx context.Context, companyName string) types.Resolution {
	res := types.Unresolved(p.notFound)

	for _, step := range p.steps {
		out := step.Source.Lookup(ctx, companyName)
		if out.IsFound() {
			res = types.Resolution{Symbol: out.Symbol, Method: step.Method}
			break
		}
		if out.Status == types.StatusFault {
			logger.ProviderFault(ctx, step.Method, companyName, out.Err)
		}
		if ctx.Err() != nil {
			break
		}
	}

	logger.Resolution(ctx, companyName, res.Symbol, res.Method)
	p.metrics.ObserveResolution(res.Method)
	return res
}
