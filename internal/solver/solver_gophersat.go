package solver

import (
	"context"
	"time"

	gophersat "github.com/crillab/gophersat/solver"
	"github.com/optilab/stsbench/internal/config"
	"github.com/optilab/stsbench/internal/encoding"
)

// gophersatBackend solves the CNF encoding in process with gophersat,
// streaming intermediate models and keeping the last one, the same way
// the normalizer treats streaming output from external solvers.
type gophersatBackend struct{}

func NewGophersatBackend() Backend {
	return gophersatBackend{}
}

func (gophersatBackend) Name() string     { return "gophersat" }
func (gophersatBackend) Paradigm() string { return "sat" }

func (gophersatBackend) Dialect(config.Configuration) Dialect {
	return JSONDialect{}
}

func (gophersatBackend) Invoke(ctx context.Context, cfg config.Configuration, _ int64) RawOutcome {
	cnf := encoding.BuildCNF(cfg)
	s := gophersat.New(gophersat.ParseSlice(cnf.Clauses))

	budget := cfg.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		budget = min(budget, time.Until(deadline))
	}
	timer := time.NewTimer(budget)
	defer timer.Stop()

	// Optimal ignores its stop channel, so the deadline is enforced on
	// this side: an overrunning solve is abandoned, keeping whatever
	// model it streamed before the cutoff.
	results := make(chan gophersat.Result)
	done := make(chan gophersat.Result, 1)
	go func() { done <- s.Optimal(results, make(chan struct{})) }()

	start := time.Now()
	var last *gophersat.Result
	var final gophersat.Result
	expired := false
collect:
	for {
		select {
		case r, open := <-results:
			if !open {
				// Closed right before Optimal returns.
				results = nil
				continue
			}
			last = &r
		case final = <-done:
			break collect
		case <-timer.C:
			expired = true
			abandon(results, done)
			break collect
		case <-ctx.Done():
			expired = true
			abandon(results, done)
			break collect
		}
	}
	elapsed := time.Since(start)

	if final.Status != gophersat.Sat && last != nil && last.Status == gophersat.Sat {
		final = *last
	}

	var payload string
	switch {
	case final.Status == gophersat.Sat:
		// Model is zero-indexed: Model[i] holds DIMACS variable i+1.
		timetable := encoding.DecodeModel(cfg.Teams, func(variable int) bool {
			return final.Model[variable-1]
		})
		payload = renderSolutionBlock(timetable, nil)
	case final.Status == gophersat.Unsat && !expired:
		payload = MarkerUnsat
	default:
		payload = MarkerUnknown
	}
	return RawOutcome{
		Payload:  StampElapsed(payload, elapsed),
		Duration: elapsed,
	}
}

// abandon drains an abandoned solve so its goroutine can finish
// delivering and exit.
func abandon(results chan gophersat.Result, done chan gophersat.Result) {
	go func() {
		if results != nil {
			for range results {
			}
		}
		<-done
	}()
}
