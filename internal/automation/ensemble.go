package automation

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SeedResult is one member of an ensemble.
type SeedResult struct {
	Seed   int64
	Result *Result
}

// RunEnsemble runs the scenario once per seed in [seedStart, seedStart+n)
// concurrently. Results are ordered by seed. Frame costs measured here
// compete for the CPU, so use RunSweep for timing.
func RunEnsemble(ctx context.Context, sc *Scenario, n int, seedStart int64, logger *zap.Logger) ([]SeedResult, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: ensemble size %d", ErrInvalidScenario, n)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	results := make([]SeedResult, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < n; i++ {
		g.Go(func() error {
			member := *sc
			member.Seed = seedStart + int64(i)
			member.Name = fmt.Sprintf("%s_seed%d", sc.Name, member.Seed)
			res, err := Run(gctx, &member, logger.With(zap.Int64("seed", member.Seed)))
			if err != nil {
				return fmt.Errorf("seed %d: %w", member.Seed, err)
			}
			results[i] = SeedResult{Seed: member.Seed, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
