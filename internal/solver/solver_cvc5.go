package solver

import (
	"context"
	"fmt"

	"github.com/optilab/stsbench/internal/config"
	"github.com/optilab/stsbench/internal/encoding"
)

// cvc5Backend drives the cvc5 SMT solver over a scratch SMT-LIB script.
type cvc5Backend struct{}

func NewCVC5Backend() Backend {
	return cvc5Backend{}
}

func (cvc5Backend) Name() string     { return "cvc5" }
func (cvc5Backend) Paradigm() string { return "smt" }

func (cvc5Backend) Dialect(cfg config.Configuration) Dialect {
	return SMTDialect{Teams: cfg.Teams}
}

func (cvc5Backend) Invoke(ctx context.Context, cfg config.Configuration, seed int64) RawOutcome {
	path, cleanup, err := scratchFile("stsbench-*.smt2", encoding.BuildSMT2(cfg))
	if err != nil {
		return failure(err)
	}
	defer cleanup()

	outcome := runCommand(ctx, cfg, executablePath("cvc5"),
		"--produce-models",
		fmt.Sprintf("--tlimit=%d", timeoutMillis(cfg)),
		fmt.Sprintf("--seed=%d", seed),
		path,
	)
	outcome.Payload = StampElapsed(outcome.Payload, outcome.Duration)
	return outcome
}
