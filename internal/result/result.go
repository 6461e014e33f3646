package result

import (
	"github.com/optilab/stsbench/pkg/schedule"
)

// Status classifies a single normalized trial.
type Status string

const (
	StatusSat     Status = "sat"
	StatusUnsat   Status = "unsat"
	StatusTimeout Status = "timeout"
	StatusError   Status = "error"
)

// Outcome is the canonical record of one solver trial after output
// normalization. Elapsed is in seconds, already clamped to the timeout.
type Outcome struct {
	Status   Status
	Elapsed  float64
	Optimal  bool
	Obj      *int
	Solution schedule.Schedule
	Backend  string
	Err      string
}

// Solved reports whether the trial produced a usable timetable.
func (o Outcome) Solved() bool {
	return o.Status == StatusSat && len(o.Solution) > 0
}
