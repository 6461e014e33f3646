package result

import (
	"encoding/json"
	"math"

	"github.com/optilab/stsbench/pkg/schedule"
)

// Stats summarizes a sample of numeric measurements.
type Stats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Stdev  float64 `json:"stdev"`
}

// RunsInfo is the per-configuration trial breakdown persisted alongside
// the representative answer.
type RunsInfo struct {
	TotalRuns      int      `json:"total_runs"`
	SuccessfulRuns int      `json:"successful_runs"`
	OptimalRuns    int      `json:"optimal_runs"`
	TimeStats      *Stats   `json:"time_stats"`
	ObjStats       *Stats   `json:"obj_stats"`
	Errors         []string `json:"errors"`
}

// Aggregated is one persisted benchmark record: the representative answer
// for a (size, combo, backend) cell plus its trial statistics.
//
// Time and Obj are unions on the wire. An unknown time serializes as the
// string "unknown", a missing objective as the string "None", and a
// missing solution as an empty list.
type Aggregated struct {
	Time        float64
	TimeKnown   bool
	Optimal     bool
	Obj         *int
	Solution    schedule.Schedule
	Backend     string
	Constraints []string
	Counts      map[Status]int
	Runs        RunsInfo
}

type recordWire struct {
	Time        any          `json:"time"`
	Optimal     bool         `json:"optimal"`
	Obj         any          `json:"obj"`
	Sol         any          `json:"sol"`
	Solver      string       `json:"solver"`
	Constraints []string     `json:"constraints"`
	RunsInfo    runsInfoWire `json:"runs_info"`
}

type runsInfoWire struct {
	TotalRuns      int      `json:"total_runs"`
	SuccessfulRuns int      `json:"successful_runs"`
	OptimalRuns    int      `json:"optimal_runs"`
	TimeStats      *Stats   `json:"time_stats"`
	ObjStats       *Stats   `json:"obj_stats"`
	Errors         []string `json:"errors"`
}

func (a Aggregated) MarshalJSON() ([]byte, error) {
	wire := recordWire{
		Time:        "unknown",
		Optimal:     a.Optimal,
		Obj:         "None",
		Sol:         []any{},
		Solver:      a.Backend,
		Constraints: a.Constraints,
		RunsInfo: runsInfoWire{
			TotalRuns:      a.Runs.TotalRuns,
			SuccessfulRuns: a.Runs.SuccessfulRuns,
			OptimalRuns:    a.Runs.OptimalRuns,
			TimeStats:      roundStats(a.Runs.TimeStats),
			ObjStats:       roundStats(a.Runs.ObjStats),
			Errors:         a.Runs.Errors,
		},
	}
	if wire.Constraints == nil {
		wire.Constraints = []string{}
	}
	if a.TimeKnown {
		wire.Time = round2(a.Time)
	}
	if a.Obj != nil {
		wire.Obj = *a.Obj
	}
	if len(a.Solution) > 0 {
		wire.Sol = a.Solution
	}
	return json.Marshal(wire)
}

func roundStats(s *Stats) *Stats {
	if s == nil {
		return nil
	}
	return &Stats{
		Mean:   round2(s.Mean),
		Median: round2(s.Median),
		Min:    round2(s.Min),
		Max:    round2(s.Max),
		Stdev:  round2(s.Stdev),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
