package solver

import (
	"context"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/optilab/stsbench/internal/config"
	"github.com/optilab/stsbench/internal/encoding"
)

// giniBackend solves the CNF encoding in process with the gini solver.
// gini is deterministic, so the trial seed is ignored.
type giniBackend struct{}

func NewGiniBackend() Backend {
	return giniBackend{}
}

func (giniBackend) Name() string     { return "gini" }
func (giniBackend) Paradigm() string { return "sat" }

func (giniBackend) Dialect(config.Configuration) Dialect {
	return JSONDialect{}
}

func (giniBackend) Invoke(ctx context.Context, cfg config.Configuration, _ int64) RawOutcome {
	cnf := encoding.BuildCNF(cfg)
	g := gini.New()
	for _, clause := range cnf.Clauses {
		for _, literal := range clause {
			g.Add(giniLit(literal))
		}
		g.Add(0)
	}

	budget := cfg.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		budget = min(budget, time.Until(deadline))
	}

	start := time.Now()
	verdict := g.GoSolve().Try(budget)
	elapsed := time.Since(start)

	var payload string
	switch verdict {
	case 1:
		timetable := encoding.DecodeModel(cfg.Teams, func(variable int) bool {
			return g.Value(z.Var(variable).Pos())
		})
		payload = renderSolutionBlock(timetable, nil)
	case -1:
		payload = MarkerUnsat
	default:
		payload = MarkerUnknown
	}
	return RawOutcome{
		Payload:  StampElapsed(payload, elapsed),
		Duration: elapsed,
	}
}

func giniLit(literal int) z.Lit {
	if literal < 0 {
		return z.Var(-literal).Neg()
	}
	return z.Var(literal).Pos()
}
