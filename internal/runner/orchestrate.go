package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/optilab/stsbench/internal/config"
	"github.com/optilab/stsbench/internal/result"
	"github.com/optilab/stsbench/internal/solver"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Orchestrator sweeps instance sizes, constraint combinations and solver
// backends, and persists one JSON document per instance size. Each record
// key is the combination name joined with the backend name.
type Orchestrator struct {
	Backends     []solver.Backend
	Sizes        []int
	Combos       []config.Combo
	Timeout      time.Duration
	Runs         int
	TrialWorkers int
	TaskWorkers  int
	OutDir       string
	Logf         func(format string, args ...any)
}

// Run executes the whole sweep. Solver breakage never aborts the sweep;
// only invalid requests and persistence failures do.
func (o *Orchestrator) Run(ctx context.Context) error {
	if len(o.Backends) == 0 {
		return fmt.Errorf("no solver backends selected")
	}
	if len(o.Combos) == 0 {
		return fmt.Errorf("no constraint combinations selected")
	}
	for _, size := range o.Sizes {
		if err := o.runSize(ctx, size); err != nil {
			return err
		}
	}
	return nil
}

func (o *Orchestrator) runSize(ctx context.Context, size int) error {
	// Validate every request up front so the pool only sees sound ones.
	for _, combo := range o.Combos {
		if err := o.configuration(size, combo).Validate(); err != nil {
			return err
		}
	}

	records := map[string]result.Aggregated{}
	var mu sync.Mutex

	workers := o.TaskWorkers
	if workers <= 0 {
		workers = lo.Min([]int{4, len(o.Backends) * len(o.Combos)})
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for _, backend := range o.Backends {
		for _, combo := range o.Combos {
			backend, combo := backend, combo
			group.Go(func() error {
				cfg := o.configuration(size, combo)
				aggregator := Aggregator{Backend: backend, Runs: o.Runs, Workers: o.TrialWorkers}
				record := aggregator.Aggregate(groupCtx, cfg)

				mu.Lock()
				records[combo.Name+"_"+backend.Name()] = record
				mu.Unlock()

				o.logf("n=%d %s %s: %d/%d solved", size, backend.Name(), combo.Name,
					record.Runs.SuccessfulRuns, record.Runs.TotalRuns)
				return nil
			})
		}
	}
	if err := group.Wait(); err != nil {
		return err
	}
	return o.persist(size, records)
}

func (o *Orchestrator) configuration(size int, combo config.Combo) config.Configuration {
	return config.Configuration{Teams: size, Active: combo.Active, Timeout: o.Timeout}
}

func (o *Orchestrator) persist(size int, records map[string]result.Aggregated) error {
	if err := os.MkdirAll(o.OutDir, 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(o.OutDir, fmt.Sprintf("%d.json", size))
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return err
	}
	o.logf("wrote %s (%d records)", path, len(records))
	return nil
}

func (o *Orchestrator) logf(format string, args ...any) {
	if o.Logf != nil {
		o.Logf(format, args...)
	}
}
