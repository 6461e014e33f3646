package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/optilab/stsbench/pkg/schedule"
	"github.com/stretchr/testify/assert"
)

const resultsDoc = `{
  "combo_none_gini": {
    "time": 0.42,
    "optimal": true,
    "obj": "None",
    "sol": [
      [[4, 5], [1, 6], [2, 3], [6, 2], [1, 3]],
      [[3, 6], [2, 5], [1, 5], [1, 4], [4, 2]],
      [[1, 2], [3, 4], [6, 4], [5, 3], [5, 6]]
    ],
    "solver": "gini",
    "constraints": [],
    "runs_info": null
  },
  "combo_none_cvc5": {
    "time": 300,
    "optimal": false,
    "obj": "None",
    "sol": [],
    "solver": "cvc5",
    "constraints": [],
    "runs_info": null
  },
  "broken_gecode": {
    "time": 1.0,
    "optimal": true,
    "obj": "None",
    "sol": [
      [[1, 2], [1, 2], [2, 3], [6, 2], [1, 3]],
      [[3, 6], [2, 5], [1, 5], [1, 4], [4, 2]],
      [[1, 2], [3, 4], [6, 4], [5, 3], [5, 6]]
    ],
    "solver": "gecode",
    "constraints": [],
    "runs_info": null
  }
}`

func TestCheckFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "6.json")
	assert.NoError(t, os.WriteFile(path, []byte(resultsDoc), 0o644))

	summary, err := checkFile(path)
	assert.NoError(t, err)
	assert.Len(t, summary.Entries, 3)
	assert.Equal(t, 1, summary.count(schedule.Valid))
	assert.Equal(t, 1, summary.count(schedule.Skipped))
	assert.Equal(t, 1, summary.count(schedule.Invalid))

	// Entries come back sorted by name.
	assert.Equal(t, "broken_gecode", summary.Entries[0].Name)
	assert.Equal(t, "gecode", summary.Entries[0].Solver)
	assert.Equal(t, schedule.Invalid, summary.Entries[0].Report.Verdict)
	assert.NotEmpty(t, summary.Entries[0].Report.Reason)
}

func TestCheckFileRejectsBrokenJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "6.json")
	assert.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err := checkFile(path)
	assert.Error(t, err)
}
