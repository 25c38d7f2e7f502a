package enrich

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tase-symbol-finder/internal/interfaces"
	"tase-symbol-finder/internal/logger"
	"tase-symbol-finder/internal/table"
	"tase-symbol-finder/internal/types"
)

// Output columns added to every row
const (
	SymbolColumn = "Symbol"
	MethodColumn = "Search_Method"
)

// DefaultDelay is the pause between rows, keeping external providers happy
const DefaultDelay = 500 * time.Millisecond

// ErrColumnNotFound is returned when the company-name column is missing
var ErrColumnNotFound = errors.New("name column not found")

// Enricher resolves the company name of every row and records the result
type Enricher struct {
	Policy interfaces.Resolver
	Delay  time.Duration
	// Sleep pauses between rows; nil uses a context-aware timer
	Sleep func(ctx context.Context, d time.Duration) error
	// Progress, when set, is called after each row
	Progress func(done, total int, name string, res types.Resolution)
}

// New creates an enricher with the default delay
func New(policy interfaces.Resolver) *Enricher {
	return &Enricher{Policy: policy, Delay: DefaultDelay}
}

// Enrich returns a copy of tbl with Symbol and Search_Method set on every
// row. Rows keep their order. Existing output columns are overwritten.
// The input table is not modified.
func (e *Enricher) Enrich(ctx context.Context, tbl *table.Table, column string) (*table.Table, error) {
	nameCol := tbl.ColumnIndex(column)
	if nameCol < 0 {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrColumnNotFound, column, tbl.Header)
	}

	timer := logger.StartOperation(ctx, "enrich.Enrich", "rows", tbl.Len(), "column", column)
	ctx = timer.GetContext()

	out := tbl.Clone()
	symCol := out.SetColumn(SymbolColumn)
	methodCol := out.SetColumn(MethodColumn)

	total := out.Len()
	for i := range out.Records {
		if err := ctx.Err(); err != nil {
			timer.EndWithError(err, "processed", i)
			return nil, err
		}

		name := out.Records[i].Get(nameCol)
		logger.Info(ctx, "Searching symbol", "row", i+1, "total", total, "company", name)

		res := e.Policy.Resolve(ctx, name)
		out.Set(i, symCol, res.Symbol)
		out.Set(i, methodCol, res.Method)

		if e.Progress != nil {
			e.Progress(i+1, total, name, res)
		}

		if i < total-1 && e.Delay > 0 {
			if err := e.sleep(ctx, e.Delay); err != nil {
				timer.EndWithError(err, "processed", i+1)
				return nil, err
			}
		}
	}

	timer.End("processed", total)
	return out, nil
}

func (e *Enricher) sleep(ctx context.Context, d time.Duration) error {
	if e.Sleep != nil {
		return e.Sleep(ctx, d)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
