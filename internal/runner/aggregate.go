package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sort"

	"github.com/optilab/stsbench/internal/config"
	"github.com/optilab/stsbench/internal/result"
	"github.com/optilab/stsbench/internal/solver"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Aggregator runs repeated independent trials of one backend against one
// configuration on a bounded worker pool and folds them into a single
// record.
type Aggregator struct {
	Backend solver.Backend
	Runs    int
	Workers int
}

// DefaultWorkers bounds trial parallelism the way a mostly-waiting pool
// should be bounded.
func DefaultWorkers(runs int) int {
	return lo.Min([]int{32, runs, runtime.NumCPU() + 4})
}

// Aggregate never fails: trial breakage is folded into the record.
func (a Aggregator) Aggregate(ctx context.Context, cfg config.Configuration) result.Aggregated {
	runs := max(1, a.Runs)
	workers := a.Workers
	if workers <= 0 {
		workers = DefaultWorkers(runs)
	}

	// Seeds are drawn before submission so every trial is independent of
	// pool scheduling.
	seeds := lo.Times(runs, func(_ int) int64 { return rand.Int63() })

	nctx := Context{
		Backend: a.Backend.Name(),
		Timeout: cfg.Timeout,
		Dialect: a.Backend.Dialect(cfg),
	}
	outcomes := make([]result.Outcome, runs)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i := 0; i < runs; i++ {
		i := i
		group.Go(func() error {
			outcomes[i] = Normalize(a.invoke(groupCtx, cfg, seeds[i]), nctx)
			return nil
		})
	}
	group.Wait()

	return combine(cfg, a.Backend.Name(), outcomes)
}

// invoke shields the pool from a panicking backend.
func (a Aggregator) invoke(ctx context.Context, cfg config.Configuration, seed int64) (raw solver.RawOutcome) {
	defer func() {
		if recovered := recover(); recovered != nil {
			raw = solver.RawOutcome{Err: fmt.Sprintf("backend panic: %v", recovered)}
		}
	}()
	return a.Backend.Invoke(ctx, cfg, seed)
}

// combine is pure: it depends only on the multiset of outcomes, never on
// trial completion order.
func combine(cfg config.Configuration, backend string, outcomes []result.Outcome) result.Aggregated {
	counts := lo.CountValuesBy(outcomes, func(o result.Outcome) result.Status { return o.Status })

	solved := lo.Filter(outcomes, func(o result.Outcome, _ int) bool { return o.Solved() })
	times := lo.Map(solved, func(o result.Outcome, _ int) float64 { return o.Elapsed })
	objs := lo.FilterMap(solved, func(o result.Outcome, _ int) (float64, bool) {
		if o.Obj == nil {
			return 0, false
		}
		return float64(*o.Obj), true
	})
	errors := lo.FilterMap(outcomes, func(o result.Outcome, _ int) (string, bool) {
		if o.Status != result.StatusError {
			return "", false
		}
		if o.Err == "" {
			return "unspecified backend error", true
		}
		return o.Err, true
	})
	sort.Strings(errors)

	aggregated := result.Aggregated{
		Backend:     backend,
		Constraints: cfg.Active,
		Counts:      counts,
		Optimal:     2*lo.CountBy(outcomes, func(o result.Outcome) bool { return o.Optimal }) > len(outcomes),
		Runs: result.RunsInfo{
			TotalRuns:      len(outcomes),
			SuccessfulRuns: len(solved),
			OptimalRuns:    lo.CountBy(outcomes, func(o result.Outcome) bool { return o.Optimal }),
			TimeStats:      summarize(times),
			ObjStats:       summarize(objs),
			Errors:         errors,
		},
	}
	if len(errors) == 0 {
		aggregated.Runs.Errors = nil
	}

	// Every trial broke: degrade to the last trial, keeping the errors.
	if counts[result.StatusError] == len(outcomes) {
		last := outcomes[len(outcomes)-1]
		aggregated.Time = last.Elapsed
		aggregated.TimeKnown = true
		return aggregated
	}

	switch {
	case len(times) > 0:
		aggregated.Time = mean(times)
		aggregated.TimeKnown = true
	case counts[result.StatusUnsat] == len(outcomes):
		// Proven infeasible: there is no meaningful solve time.
		aggregated.TimeKnown = false
	default:
		aggregated.Time = cfg.Timeout.Seconds()
		aggregated.TimeKnown = true
	}

	if stats := aggregated.Runs.ObjStats; stats != nil {
		obj := int(math.Round(stats.Mean))
		aggregated.Obj = &obj
	}
	if best, found := bestSolved(solved); found {
		aggregated.Solution = best.Solution
	}
	return aggregated
}

// bestSolved picks the representative solution by content, not by trial
// order: lowest objective first, then fastest, then a stable rendering
// tiebreak.
func bestSolved(solved []result.Outcome) (result.Outcome, bool) {
	if len(solved) == 0 {
		return result.Outcome{}, false
	}
	ranked := append([]result.Outcome(nil), solved...)
	sort.SliceStable(ranked, func(i, j int) bool {
		left, right := ranked[i], ranked[j]
		if (left.Obj == nil) != (right.Obj == nil) {
			return left.Obj != nil
		}
		if left.Obj != nil && *left.Obj != *right.Obj {
			return *left.Obj < *right.Obj
		}
		if left.Elapsed != right.Elapsed {
			return left.Elapsed < right.Elapsed
		}
		return rendering(left) < rendering(right)
	})
	return ranked[0], true
}

func rendering(o result.Outcome) string {
	raw, err := json.Marshal(o.Solution)
	if err != nil {
		return ""
	}
	return string(raw)
}
