package sim

import (
	"context"
	"sync"

	"github.com/san-kum/orrery/internal/control"
)

// Ensemble runs independent simulations that differ only in seed, and so in
// their initial phases.
type Ensemble struct {
	base      control.Config
	numRuns   int
	seedStart int64
}

func NewEnsemble(base control.Config, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{base: base, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			simCfg := e.base
			simCfg.Seed = e.seedStart + int64(idx)

			s, err := control.New(simCfg, nil, nil)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = NewRunner(s, nil).Run(ctx, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
