package runner

import (
	"strconv"
	"strings"
	"time"

	"github.com/optilab/stsbench/internal/result"
	"github.com/optilab/stsbench/internal/solver"
	"github.com/samber/lo"
)

// Context carries what Normalize needs to judge a raw payload: which
// backend produced it, the trial timeout and the output dialect.
type Context struct {
	Backend string
	Timeout time.Duration
	Dialect solver.Dialect
}

// Normalize turns a raw solver outcome into a canonical one. The rules
// apply in strict order: watchdog kills and silent exits are timeouts,
// then unsat markers, then unknown markers and truncated streams, then
// solution blocks where the last parseable block wins. Only payloads that
// defeat every rule become errors, with the payload retained for
// diagnosis.
func Normalize(raw solver.RawOutcome, nctx Context) result.Outcome {
	limit := nctx.Timeout.Seconds()
	outcome := result.Outcome{Backend: nctx.Backend, Elapsed: limit}
	payload := strings.TrimSpace(raw.Payload)

	if raw.TimedOut {
		outcome.Status = result.StatusTimeout
		return outcome
	}
	if payload == "" {
		if raw.Err != "" {
			outcome.Status = result.StatusError
			outcome.Err = diagnostic(raw, "no output")
			return outcome
		}
		outcome.Status = result.StatusTimeout
		return outcome
	}
	if nctx.Dialect.Unsat(payload) {
		outcome.Status = result.StatusUnsat
		outcome.Elapsed = min(parseElapsed(payload), limit)
		return outcome
	}
	if nctx.Dialect.Unknown(payload) || unbalanced(payload) {
		outcome.Status = result.StatusTimeout
		return outcome
	}

	var decodeErr error
	for _, block := range nctx.Dialect.Blocks(payload) {
		timetable, obj, err := nctx.Dialect.Decode(block)
		if err != nil {
			decodeErr = err
			continue
		}
		outcome.Status = result.StatusSat
		outcome.Solution = timetable
		outcome.Obj = obj
	}
	if outcome.Status == result.StatusSat {
		outcome.Elapsed = min(parseElapsed(payload), limit)
		outcome.Optimal = outcome.Elapsed < limit
		return outcome
	}

	outcome.Status = result.StatusError
	reason := "no solution block"
	if decodeErr != nil {
		reason = decodeErr.Error()
	}
	outcome.Err = diagnostic(raw, reason)
	return outcome
}

// diagnostic folds the failure reason, the process noise and the payload
// into one error string, so nothing needed to debug a backend is lost.
func diagnostic(raw solver.RawOutcome, reason string) string {
	parts := []string{reason}
	if raw.Err != "" {
		parts = append(parts, raw.Err)
	}
	if stderr := strings.TrimSpace(raw.Stderr); stderr != "" {
		parts = append(parts, "stderr: "+stderr)
	}
	if payload := strings.TrimSpace(raw.Payload); payload != "" {
		parts = append(parts, "payload: "+payload)
	}
	return strings.Join(parts, "; ")
}

// parseElapsed reads the last timing marker from a payload. A missing
// marker on an otherwise valid payload means the solver finished too fast
// to measure.
func parseElapsed(payload string) float64 {
	elapsed := 0.0
	for _, line := range strings.Split(payload, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, solver.TimeMarker) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		if value, err := strconv.ParseFloat(fields[3], 64); err == nil {
			elapsed = value
		}
	}
	return elapsed
}

// unbalanced detects streams cut off mid-block.
func unbalanced(payload string) bool {
	pairs := [][2]string{{"{", "}"}, {"[", "]"}}
	return lo.SomeBy(pairs, func(pair [2]string) bool {
		return strings.Count(payload, pair[0]) != strings.Count(payload, pair[1])
	})
}
