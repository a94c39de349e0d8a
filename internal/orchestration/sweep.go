package orchestration

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/hwpayoff/runtime/contracts"
)

// DefaultSweepParallelism bounds concurrent comparisons when the caller
// passes a non-positive limit.
const DefaultSweepParallelism = 4

// Sweep compares one workload across several hardware selections.
// base.Hardware is replaced by each selection in turn; everything else is
// shared read-only between the comparisons.
//
// Comparisons run concurrently, at most parallelism at a time, and results
// are merged back in selection order. A cancelled context aborts the sweep
// and no partial results are returned.
func Sweep(ctx context.Context, comparator contracts.Comparator, base contracts.ComparisonInput, selections []contracts.HardwareSelection, parallelism int) ([]contracts.ComparisonBundle, error) {
	if comparator == nil {
		return nil, contracts.ErrInvalidInput
	}
	if parallelism <= 0 {
		parallelism = DefaultSweepParallelism
	}

	results := make([]contracts.ComparisonBundle, len(selections))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for i, sel := range selections {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			input := base
			input.Hardware = sel
			results[i] = comparator.ComputeWorkloadComparison(input)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("sweep aborted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("sweep aborted: %w", err)
	}
	return results, nil
}
