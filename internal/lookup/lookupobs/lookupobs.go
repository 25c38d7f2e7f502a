package lookupobs

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"tase-symbol-finder/internal/interfaces"
	"tase-symbol-finder/internal/logger"
	"tase-symbol-finder/internal/metrics"
	"tase-symbol-finder/internal/trace"
	"tase-symbol-finder/internal/types"
)

type observableLookup struct {
	provider string
	lookup   interfaces.SymbolLookup
	metrics  *metrics.Metrics
}

var _ interfaces.SymbolLookup = (*observableLookup)(nil)

// Wrap adds a span, debug logging and lookup metrics around a provider.
// m may be nil.
func Wrap(provider string, lookup interfaces.SymbolLookup, m *metrics.Metrics) interfaces.SymbolLookup {
	return &observableLookup{
		provider: provider,
		lookup:   lookup,
		metrics:  m,
	}
}

func (o *observableLookup) Lookup(ctx context.Context, companyName string) types.Outcome {
	ctx, span := trace.StartSpan(ctx, "lookup."+o.provider)
	defer span.End()

	start := time.Now()
	out := o.lookup.Lookup(ctx, companyName)
	elapsed := time.Since(start)

	o.metrics.ObserveLookup(o.provider, out.Status.String(), elapsed)
	if trace.Enabled() {
		span.SetAttributes(
			attribute.String("provider", o.provider),
			attribute.String("outcome", out.Status.String()),
		)
	}

	if out.Status == types.StatusFault && trace.Enabled() {
		span.RecordError(out.Err)
		span.SetStatus(codes.Error, "lookup fault")
	}

	// Faults reach the warning log once, from the resolution chain
	logger.DebugSkip(ctx, 1, "Provider lookup completed",
		"provider", o.provider,
		"company", companyName,
		"outcome", out.Status.String(),
		"symbol", out.Symbol,
		"error", out.Err,
		"duration_ms", elapsed.Milliseconds(),
	)

	return out
}
