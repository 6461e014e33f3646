package solver

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/optilab/stsbench/internal/encoding"
	"github.com/optilab/stsbench/pkg/schedule"
	"github.com/samber/lo"
)

// Dialect knows how one family of solvers writes its answers: how unsat
// and unknown are announced and how a solution block is decoded.
type Dialect interface {
	Unsat(payload string) bool
	Unknown(payload string) bool
	// Blocks splits the payload into candidate solution blocks, in the
	// order they were emitted.
	Blocks(payload string) []string
	Decode(block string) (schedule.Schedule, *int, error)
}

const blockSeparator = "----------"

// JSONDialect covers backends that print JSON solution documents separated
// by MiniZinc-style dashes: the MiniZinc solvers and the in-process SAT
// backends, which render the same shape.
type JSONDialect struct{}

func (JSONDialect) Unsat(payload string) bool {
	return strings.Contains(payload, MarkerUnsat)
}

func (JSONDialect) Unknown(payload string) bool {
	return strings.Contains(payload, MarkerUnknown)
}

func (JSONDialect) Blocks(payload string) []string {
	blocks := strings.Split(payload, blockSeparator)
	return lo.FilterMap(blocks, func(block string, _ int) (string, bool) {
		block = dropMarkerLines(block)
		return block, strings.HasPrefix(block, "{")
	})
}

func (JSONDialect) Decode(block string) (schedule.Schedule, *int, error) {
	var doc struct {
		Sol any  `json:"sol"`
		Obj *int `json:"obj"`
	}
	if err := json.Unmarshal([]byte(block), &doc); err != nil {
		return nil, nil, err
	}
	timetable, err := schedule.Decode(doc.Sol)
	if err != nil {
		return nil, nil, err
	}
	return timetable, doc.Obj, nil
}

// dropMarkerLines strips timing and completeness markers so a block is
// judged on its structured content alone.
func dropMarkerLines(block string) string {
	lines := lo.Filter(strings.Split(block, "\n"), func(line string, _ int) bool {
		trimmed := strings.TrimSpace(line)
		return trimmed != "" && trimmed != "==========" && !strings.HasPrefix(trimmed, TimeMarker)
	})
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// DIMACSDialect reads the competition output format of standalone SAT
// solvers: an s-line verdict plus v-lines carrying the model.
type DIMACSDialect struct {
	Teams int
}

func (DIMACSDialect) Unsat(payload string) bool {
	return strings.Contains(payload, "s UNSATISFIABLE")
}

func (DIMACSDialect) Unknown(payload string) bool {
	return strings.Contains(payload, "s UNKNOWN")
}

func (DIMACSDialect) Blocks(payload string) []string {
	if strings.Contains(payload, "s SATISFIABLE") {
		return []string{payload}
	}
	return nil
}

func (d DIMACSDialect) Decode(block string) (schedule.Schedule, *int, error) {
	truth := map[int]bool{}
	for _, line := range strings.Split(block, "\n") {
		if !strings.HasPrefix(line, "v ") {
			continue
		}
		for _, field := range strings.Fields(line[2:]) {
			literal, err := strconv.Atoi(field)
			if err != nil {
				return nil, nil, fmt.Errorf("unreadable literal %q: %w", field, err)
			}
			if literal > 0 {
				truth[literal] = true
			}
		}
	}
	timetable := encoding.DecodeModel(d.Teams, func(variable int) bool { return truth[variable] })
	if err := completeTimetable(timetable); err != nil {
		return nil, nil, err
	}
	return timetable, nil, nil
}

// SMTDialect reads cvc5 output: a verdict line followed by a get-model
// dump of define-fun bindings.
type SMTDialect struct {
	Teams int
}

func (SMTDialect) Unsat(payload string) bool {
	return hasVerdictLine(payload, "unsat")
}

func (SMTDialect) Unknown(payload string) bool {
	return hasVerdictLine(payload, "unknown")
}

func (SMTDialect) Blocks(payload string) []string {
	if hasVerdictLine(payload, "sat") {
		return []string{payload}
	}
	return nil
}

func (d SMTDialect) Decode(block string) (schedule.Schedule, *int, error) {
	timetable, err := encoding.ParseSMTModel(d.Teams, block)
	return timetable, nil, err
}

func hasVerdictLine(payload, verdict string) bool {
	return lo.SomeBy(strings.Split(payload, "\n"), func(line string) bool {
		return strings.TrimSpace(line) == verdict
	})
}

// CBCDialect reads CBC solution files: a status header followed by the
// nonzero variables.
type CBCDialect struct {
	Teams int
}

func (CBCDialect) Unsat(payload string) bool {
	return strings.HasPrefix(firstLine(payload), "Infeasible")
}

func (CBCDialect) Unknown(payload string) bool {
	header := firstLine(payload)
	return strings.HasPrefix(header, "Stopped") || strings.HasPrefix(header, "Unbounded")
}

func (CBCDialect) Blocks(payload string) []string {
	if strings.HasPrefix(firstLine(payload), "Optimal") {
		return []string{payload}
	}
	return nil
}

func (d CBCDialect) Decode(block string) (schedule.Schedule, *int, error) {
	return encoding.ParseCBCSolution(d.Teams, block)
}

func firstLine(payload string) string {
	for _, line := range strings.Split(payload, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" && !strings.HasPrefix(trimmed, TimeMarker) {
			return trimmed
		}
	}
	return ""
}

// renderSolutionBlock prints a timetable the way the JSON dialect reads
// it, so in-process backends share the external normalization path.
func renderSolutionBlock(timetable schedule.Schedule, obj *int) string {
	doc := map[string]any{"sol": timetable}
	if obj != nil {
		doc["obj"] = *obj
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return ""
	}
	return string(raw) + "\n" + blockSeparator + "\n=========="
}

func completeTimetable(s schedule.Schedule) error {
	for p, period := range s {
		for w, match := range period {
			if match.Home == 0 || match.Away == 0 {
				return fmt.Errorf("model leaves week %d period %d empty", w+1, p+1)
			}
		}
	}
	return nil
}
