package solver

import (
	"context"
	"fmt"

	"github.com/optilab/stsbench/internal/config"
	"github.com/optilab/stsbench/internal/encoding"
)

// minizincBackend drives the minizinc driver with one of its constraint
// solvers over a scratch data file. The model itself lives outside the
// binary and resolves through the tool configuration.
type minizincBackend struct {
	solver string
}

// NewChuffedBackend runs MiniZinc with the chuffed solver.
func NewChuffedBackend() Backend {
	return minizincBackend{solver: "chuffed"}
}

// NewGecodeBackend runs MiniZinc with the gecode solver.
func NewGecodeBackend() Backend {
	return minizincBackend{solver: "gecode"}
}

func (b minizincBackend) Name() string   { return b.solver }
func (minizincBackend) Paradigm() string { return "cp" }

func (minizincBackend) Dialect(config.Configuration) Dialect {
	return JSONDialect{}
}

func (b minizincBackend) Invoke(ctx context.Context, cfg config.Configuration, seed int64) RawOutcome {
	path, cleanup, err := scratchFile("stsbench-*.dzn", encoding.BuildDZN(cfg))
	if err != nil {
		return failure(err)
	}
	defer cleanup()

	// minizinc prints its own timing marker with --output-time.
	return runCommand(ctx, cfg, executablePath("minizinc"),
		"--solver", b.solver,
		"--time-limit", fmt.Sprint(timeoutMillis(cfg)),
		"--output-time",
		"-r", fmt.Sprint(seed),
		modelPath("sts", "models/sts.mzn"),
		path,
	)
}
