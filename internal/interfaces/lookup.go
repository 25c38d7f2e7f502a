package interfaces

import (
	"context"

	"tase-symbol-finder/internal/types"
)

// SymbolLookup resolves a company name to a ticker symbol.
// Implementations never return errors directly: faults are carried
// inside the outcome so the resolution chain keeps going.
type SymbolLookup interface {
	Lookup(ctx context.Context, companyName string) types.Outcome
}

// SymbolLookupFunc adapts a plain function to SymbolLookup
type SymbolLookupFunc func(ctx context.Context, companyName string) types.Outcome

// Lookup calls f(ctx, companyName)
func (f SymbolLookupFunc) Lookup(ctx context.Context, companyName string) types.Outcome {
	return f(ctx, companyName)
}

// Resolver maps a company name to a resolution (symbol + search method)
type Resolver interface {
	Resolve(ctx context.Context, companyName string) types.Resolution
}
