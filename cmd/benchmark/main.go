package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/optilab/stsbench/internal/config"
	"github.com/optilab/stsbench/internal/runner"
	"github.com/optilab/stsbench/internal/solver"
	"github.com/samber/lo"
)

func main() {
	setConfigPath()

	// Define arguments
	sizesPtr := flag.String("n", "6,8,10,12", "Comma-separated instance sizes (number of teams, each even)")
	solversPtr := flag.String("solvers", strings.Join(solver.InProcessNames(), ","), "Comma-separated solver backends; \"all\" selects every registered backend")
	modePtr := flag.String("mode", "generate", `Sweep mode. Allowed values are:
- "generate" (one run per size and backend with the selected constraints active),
- "test" (every subset of the selected constraints) and
- "select:<group>" (subsets of one constraint group, the rest forced on; groups are "symmetry" and "implied")`)
	constraintsPtr := flag.String("constraints", "", "Comma-separated constraint toggles to sweep over; empty means all of them")
	timeoutPtr := flag.Int("timeout", 300, "Per-trial timeout in seconds")
	runsPtr := flag.Int("runs", 5, "Independent trials per configuration")
	workersPtr := flag.Int("workers", 0, "Concurrent trials per configuration; 0 picks a bound from the machine")
	taskWorkersPtr := flag.Int("task-workers", 0, "Concurrent configurations; 0 picks a small default")
	outPtr := flag.String("out", "res", "Directory receiving one JSON document per instance size")
	flag.Parse()

	// Validate arguments
	sizes, err := parseSizes(*sizesPtr)
	if err != nil {
		log.Fatalf("invalid instance sizes: %v", err)
	}
	combos, err := parseMode(*modePtr, parseList(*constraintsPtr))
	if err != nil {
		log.Fatalf("invalid sweep request: %v", err)
	}
	backends, err := solver.DefaultRegistry().Resolve(parseBackends(*solversPtr))
	if err != nil {
		log.Fatalf("invalid solver selection: %v", err)
	}
	if *timeoutPtr <= 0 {
		log.Fatalf("timeout must be positive: %v", *timeoutPtr)
	}
	if *runsPtr <= 0 {
		log.Fatalf("runs must be positive: %v", *runsPtr)
	}

	orchestrator := &runner.Orchestrator{
		Backends:     backends,
		Sizes:        sizes,
		Combos:       combos,
		Timeout:      time.Duration(*timeoutPtr) * time.Second,
		Runs:         *runsPtr,
		TrialWorkers: *workersPtr,
		TaskWorkers:  *taskWorkersPtr,
		OutDir:       *outPtr,
		Logf:         log.Printf,
	}
	if err := orchestrator.Run(context.Background()); err != nil {
		log.Fatalf("benchmark sweep failed: %v", err)
	}
}

func parseList(raw string) []string {
	return lo.FilterMap(strings.Split(raw, ","), func(entry string, _ int) (string, bool) {
		entry = strings.TrimSpace(entry)
		return entry, entry != ""
	})
}

func parseBackends(raw string) []string {
	if strings.TrimSpace(strings.ToLower(raw)) == "all" {
		return nil
	}
	return parseList(raw)
}

func parseSizes(raw string) ([]int, error) {
	entries := parseList(raw)
	if len(entries) == 0 {
		return nil, fmt.Errorf("no sizes given")
	}
	sizes := make([]int, 0, len(entries))
	for _, entry := range entries {
		size, err := strconv.Atoi(entry)
		if err != nil {
			return nil, err
		}
		if size < 2 || size%2 != 0 {
			return nil, fmt.Errorf("%v is not a positive even number", size)
		}
		sizes = append(sizes, size)
	}
	return sizes, nil
}

func parseMode(mode string, selected []string) ([]config.Combo, error) {
	switch {
	case mode == "generate":
		combo, err := config.AllActive(selected)
		if err != nil {
			return nil, err
		}
		return []config.Combo{combo}, nil
	case mode == "test":
		return config.Combinations(selected)
	case strings.HasPrefix(mode, "select:"):
		return config.SelectGroup(config.Group(strings.TrimPrefix(mode, "select:")))
	}
	return nil, fmt.Errorf("%v is not a valid mode", mode)
}

// setConfigPath points the solver adapters at the config.json living next
// to the executable, when there is one. A missing file just means every
// external tool resolves through PATH.
func setConfigPath() {
	execPath, err := os.Executable()
	if err != nil {
		return
	}
	candidate := path.Join(path.Dir(execPath), "config.json")
	if _, err := os.Stat(candidate); err == nil {
		solver.ConfigPath = candidate
	}
}
