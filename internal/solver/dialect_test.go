package solver

import (
	"fmt"
	"strings"
	"testing"

	"github.com/optilab/stsbench/internal/encoding"
	"github.com/optilab/stsbench/pkg/schedule"
	"github.com/stretchr/testify/assert"
)

var timetable6 = schedule.Schedule{
	{{Home: 4, Away: 5}, {Home: 1, Away: 6}, {Home: 2, Away: 3}, {Home: 6, Away: 2}, {Home: 1, Away: 3}},
	{{Home: 3, Away: 6}, {Home: 2, Away: 5}, {Home: 1, Away: 5}, {Home: 1, Away: 4}, {Home: 4, Away: 2}},
	{{Home: 1, Away: 2}, {Home: 3, Away: 4}, {Home: 6, Away: 4}, {Home: 5, Away: 3}, {Home: 5, Away: 6}},
}

func TestJSONDialectMarkers(t *testing.T) {
	d := JSONDialect{}
	assert.True(t, d.Unsat("=====UNSATISFIABLE=====\n% time elapsed: 0.50 s\n"))
	assert.True(t, d.Unknown("=====UNKNOWN=====\n"))
	assert.False(t, d.Unsat(renderSolutionBlock(timetable6, nil)))
}

func TestJSONDialectDecodesRenderedBlock(t *testing.T) {
	d := JSONDialect{}
	payload := StampElapsed(renderSolutionBlock(timetable6, nil), 0)
	blocks := d.Blocks(payload)
	if assert.Len(t, blocks, 1) {
		decoded, obj, err := d.Decode(blocks[0])
		assert.NoError(t, err)
		assert.Nil(t, obj)
		assert.Equal(t, timetable6, decoded)
	}
}

func TestJSONDialectStreamingKeepsBlockOrder(t *testing.T) {
	first := `{"sol": [[[1, 2]]], "obj": 3}`
	second := `{"sol": [[[3, 4]]], "obj": 1}`
	payload := first + "\n----------\n" + second + "\n----------\n==========\n"

	blocks := JSONDialect{}.Blocks(payload)
	if assert.Len(t, blocks, 2) {
		_, obj, err := JSONDialect{}.Decode(blocks[1])
		assert.NoError(t, err)
		if assert.NotNil(t, obj) {
			assert.Equal(t, 1, *obj)
		}
	}
}

func TestDIMACSDialect(t *testing.T) {
	d := DIMACSDialect{Teams: 6}
	assert.True(t, d.Unsat("s UNSATISFIABLE\n"))
	assert.True(t, d.Unknown("s UNKNOWN\n"))
	assert.Empty(t, d.Blocks("s UNSATISFIABLE\n"))

	vars := encoding.NewVars(6)
	var literals []string
	for p, period := range timetable6 {
		for w, match := range period {
			literals = append(literals, fmt.Sprint(vars.Match(w+1, p+1, match.Home, match.Away)))
		}
	}
	payload := "s SATISFIABLE\nv " + strings.Join(literals, " ") + " 0\n"

	blocks := d.Blocks(payload)
	if assert.Len(t, blocks, 1) {
		decoded, obj, err := d.Decode(blocks[0])
		assert.NoError(t, err)
		assert.Nil(t, obj)
		assert.Equal(t, timetable6, decoded)
	}
}

func TestDIMACSDialectRejectsPartialModel(t *testing.T) {
	d := DIMACSDialect{Teams: 6}
	_, _, err := d.Decode("s SATISFIABLE\nv 1 0\n")
	assert.Error(t, err)
}

func TestSMTDialectVerdicts(t *testing.T) {
	d := SMTDialect{Teams: 6}
	assert.True(t, d.Unsat("unsat\n"))
	assert.True(t, d.Unknown("unknown\n"))
	// The sat verdict must not be confused with unsat by substring.
	assert.False(t, d.Unsat("sat\n(define-fun home_1_1 () Int 1)\n"))
	assert.Len(t, d.Blocks("sat\n"), 1)
	assert.Empty(t, d.Blocks("unsat\n"))
}

func TestCBCDialectVerdicts(t *testing.T) {
	d := CBCDialect{Teams: 6}
	assert.True(t, d.Unsat("Infeasible - objective value 0.00000000\n"))
	assert.True(t, d.Unknown("Stopped on time limit - objective value 2.00000000\n"))
	assert.Len(t, d.Blocks("Optimal - objective value 1.00000000\n"), 1)
	// The timing marker stamped after the file content is not the header.
	assert.True(t, d.Unsat(StampElapsed("Infeasible - objective value 0", 0)))
}

func TestStampElapsedFormat(t *testing.T) {
	stamped := StampElapsed("sat", 1500*1000*1000)
	assert.Contains(t, stamped, "% time elapsed: 1.500 s")
}
