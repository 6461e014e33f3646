package solver

import (
	"context"
	"fmt"

	"github.com/optilab/stsbench/internal/config"
	"github.com/optilab/stsbench/internal/encoding"
	"github.com/samber/lo"
)

// Standalone SAT solvers answer through exit codes.
const (
	exitCodeSat   = 10
	exitCodeUnsat = 20
)

// dimacsBackend drives a standalone SAT solver over a scratch DIMACS file.
type dimacsBackend struct {
	name string
	args func(cfg config.Configuration, seed int64, path string) []string
}

// NewKissatBackend runs the kissat executable.
func NewKissatBackend() Backend {
	return dimacsBackend{
		name: "kissat",
		args: func(cfg config.Configuration, seed int64, path string) []string {
			return []string{
				"-q",
				fmt.Sprintf("--seed=%d", seed),
				fmt.Sprintf("--time=%d", timeoutSeconds(cfg)),
				path,
			}
		},
	}
}

// NewCadicalBackend runs the cadical executable.
func NewCadicalBackend() Backend {
	return dimacsBackend{
		name: "cadical",
		args: func(cfg config.Configuration, seed int64, path string) []string {
			return []string{
				"-q",
				fmt.Sprintf("--seed=%d", seed),
				"-t", fmt.Sprint(timeoutSeconds(cfg)),
				path,
			}
		},
	}
}

func (b dimacsBackend) Name() string   { return b.name }
func (dimacsBackend) Paradigm() string { return "sat" }

func (b dimacsBackend) Dialect(cfg config.Configuration) Dialect {
	return DIMACSDialect{Teams: cfg.Teams}
}

func (b dimacsBackend) Invoke(ctx context.Context, cfg config.Configuration, seed int64) RawOutcome {
	cnf := encoding.BuildCNF(cfg)
	path, cleanup, err := scratchFile("stsbench-*.cnf", cnf.ToDIMACS())
	if err != nil {
		return failure(err)
	}
	defer cleanup()

	outcome := runCommand(ctx, cfg, executablePath(b.name), b.args(cfg, seed, path)...)
	if lo.Contains([]int{exitCodeSat, exitCodeUnsat}, outcome.ExitCode) {
		outcome.Err = ""
	}
	outcome.Payload = StampElapsed(outcome.Payload, outcome.Duration)
	return outcome
}
