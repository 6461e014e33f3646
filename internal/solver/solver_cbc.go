package solver

import (
	"context"
	"fmt"
	"os"

	"github.com/optilab/stsbench/internal/config"
	"github.com/optilab/stsbench/internal/encoding"
)

// cbcBackend drives the CBC MIP solver over a scratch LP file. CBC writes
// its answer to a solution file, which becomes the payload.
type cbcBackend struct{}

func NewCBCBackend() Backend {
	return cbcBackend{}
}

func (cbcBackend) Name() string     { return "cbc" }
func (cbcBackend) Paradigm() string { return "mip" }

func (cbcBackend) Dialect(cfg config.Configuration) Dialect {
	return CBCDialect{Teams: cfg.Teams}
}

func (cbcBackend) Invoke(ctx context.Context, cfg config.Configuration, seed int64) RawOutcome {
	lpPath, cleanupLP, err := scratchFile("stsbench-*.lp", encoding.BuildLP(cfg))
	if err != nil {
		return failure(err)
	}
	defer cleanupLP()

	solPath, cleanupSol, err := scratchFile("stsbench-*.sol", "")
	if err != nil {
		return failure(err)
	}
	defer cleanupSol()

	outcome := runCommand(ctx, cfg, executablePath("cbc"),
		lpPath,
		"-seconds", fmt.Sprint(timeoutSeconds(cfg)),
		"-randomSeed", fmt.Sprint(seed),
		"solve",
		"-solution", solPath,
	)

	answer, err := os.ReadFile(solPath)
	if err != nil && outcome.Err == "" {
		outcome.Err = err.Error()
	}
	outcome.Payload = StampElapsed(string(answer), outcome.Duration)
	return outcome
}
