package result

import (
	"encoding/json"
	"testing"

	"github.com/optilab/stsbench/pkg/schedule"
	"github.com/stretchr/testify/assert"
)

func TestMarshalSolvedRecord(t *testing.T) {
	obj := 3
	record := Aggregated{
		Time:        1.2345,
		TimeKnown:   true,
		Optimal:     true,
		Obj:         &obj,
		Solution:    schedule.Schedule{{{Home: 1, Away: 2}, {Home: 3, Away: 4}}},
		Backend:     "gini",
		Constraints: []string{"use_symm_break_teams"},
		Runs: RunsInfo{
			TotalRuns:      5,
			SuccessfulRuns: 5,
			OptimalRuns:    5,
			TimeStats:      &Stats{Mean: 1.2345, Median: 1.2, Min: 1.0, Max: 1.5, Stdev: 0.199},
		},
	}

	raw, err := json.Marshal(record)
	assert.NoError(t, err)

	var wire map[string]any
	assert.NoError(t, json.Unmarshal(raw, &wire))
	assert.Equal(t, 1.23, wire["time"])
	assert.Equal(t, true, wire["optimal"])
	assert.Equal(t, 3.0, wire["obj"])
	assert.Equal(t, "gini", wire["solver"])
	assert.Equal(t, []any{"use_symm_break_teams"}, wire["constraints"])
	assert.Equal(t, []any{[]any{[]any{1.0, 2.0}, []any{3.0, 4.0}}}, wire["sol"])

	info := wire["runs_info"].(map[string]any)
	assert.Equal(t, 5.0, info["total_runs"])
	assert.Nil(t, info["errors"])
	stats := info["time_stats"].(map[string]any)
	assert.Equal(t, 1.23, stats["mean"])
	assert.Equal(t, 0.2, stats["stdev"])
}

func TestMarshalUnknownsAsUnions(t *testing.T) {
	record := Aggregated{
		Backend: "cvc5",
		Runs: RunsInfo{
			TotalRuns: 3,
			Errors:    []string{"exit status 1"},
		},
	}

	raw, err := json.Marshal(record)
	assert.NoError(t, err)

	var wire map[string]any
	assert.NoError(t, json.Unmarshal(raw, &wire))
	assert.Equal(t, "unknown", wire["time"])
	assert.Equal(t, "None", wire["obj"])
	assert.Equal(t, []any{}, wire["sol"])
	assert.Equal(t, []any{}, wire["constraints"])

	info := wire["runs_info"].(map[string]any)
	assert.Nil(t, info["time_stats"])
	assert.Nil(t, info["obj_stats"])
	assert.Equal(t, []any{"exit status 1"}, info["errors"])
}

func TestOutcomeSolved(t *testing.T) {
	sat := Outcome{Status: StatusSat, Solution: schedule.Schedule{{{Home: 1, Away: 2}}}}
	assert.True(t, sat.Solved())
	assert.False(t, Outcome{Status: StatusSat}.Solved())
	assert.False(t, Outcome{Status: StatusUnsat}.Solved())
	assert.False(t, Outcome{Status: StatusTimeout}.Solved())
}
