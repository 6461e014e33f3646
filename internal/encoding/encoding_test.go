package encoding

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/optilab/stsbench/internal/config"
	"github.com/optilab/stsbench/pkg/schedule"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

// A hand-verified 6-team timetable, period-major.
var timetable6 = schedule.Schedule{
	{{Home: 4, Away: 5}, {Home: 1, Away: 6}, {Home: 2, Away: 3}, {Home: 6, Away: 2}, {Home: 1, Away: 3}},
	{{Home: 3, Away: 6}, {Home: 2, Away: 5}, {Home: 1, Away: 5}, {Home: 1, Away: 4}, {Home: 4, Away: 2}},
	{{Home: 1, Away: 2}, {Home: 3, Away: 4}, {Home: 6, Away: 4}, {Home: 5, Away: 3}, {Home: 5, Away: 6}},
}

// assignment returns the variable assignment induced by a timetable.
func assignment(n int, s schedule.Schedule) map[int]bool {
	vars := NewVars(n)
	truth := map[int]bool{}
	for p, period := range s {
		for w, match := range period {
			truth[vars.Match(w+1, p+1, match.Home, match.Away)] = true
			truth[vars.Plays(w+1, p+1, match.Home)] = true
			truth[vars.Plays(w+1, p+1, match.Away)] = true
		}
	}
	return truth
}

func TestVarsLayout(t *testing.T) {
	vars := NewVars(6)
	assert.Equal(t, 540, vars.Count())

	seen := map[int]bool{}
	for w := 1; w <= vars.Weeks; w++ {
		for p := 1; p <= vars.Periods; p++ {
			for home := 1; home <= 6; home++ {
				for away := 1; away <= 6; away++ {
					if home == away {
						continue
					}
					v := vars.Match(w, p, home, away)
					assert.False(t, seen[v], "variable %d reused", v)
					assert.GreaterOrEqual(t, v, 1)
					seen[v] = true
				}
			}
			for team := 1; team <= 6; team++ {
				v := vars.Plays(w, p, team)
				assert.False(t, seen[v], "variable %d reused", v)
				assert.LessOrEqual(t, v, vars.Count())
				seen[v] = true
			}
		}
	}
	assert.Len(t, seen, vars.Count())
}

func TestBuildCNFSatisfiedByKnownTimetable(t *testing.T) {
	cfg := config.Configuration{
		Teams:   6,
		Active:  []string{config.ImpliedMatches, config.ImpliedPeriodCount},
		Timeout: time.Minute,
	}
	cnf := BuildCNF(cfg)
	assert.Equal(t, 540, cnf.Variables)
	assert.Len(t, cnf.Clauses, 14418)

	truth := assignment(6, timetable6)
	for _, clause := range cnf.Clauses {
		satisfied := lo.SomeBy(clause, func(literal int) bool {
			if literal > 0 {
				return truth[literal]
			}
			return !truth[-literal]
		})
		assert.True(t, satisfied, "violated clause %v", clause)
	}
}

func TestBuildCNFSymmetryToggles(t *testing.T) {
	base := config.Configuration{Teams: 6, Timeout: time.Minute}
	plain := len(BuildCNF(base).Clauses)

	teams := base
	teams.Active = []string{config.SymmBreakTeams}
	assert.Equal(t, plain+3, len(BuildCNF(teams).Clauses))

	weeks := base
	weeks.Active = []string{config.SymmBreakWeeks}
	assert.Equal(t, plain+1, len(BuildCNF(weeks).Clauses))

	periods := base
	periods.Active = []string{config.SymmBreakPeriods}
	symCNF := BuildCNF(periods)
	assert.Equal(t, plain+1, len(symCNF.Clauses))
	assert.Equal(t, []int{NewVars(6).Plays(1, 1, 1)}, symCNF.Clauses[len(symCNF.Clauses)-1])
}

func TestDecodeModelRoundTrip(t *testing.T) {
	truth := assignment(6, timetable6)
	decoded := DecodeModel(6, func(variable int) bool { return truth[variable] })
	assert.Equal(t, timetable6, decoded)
}

func TestToDIMACS(t *testing.T) {
	cnf := &CNF{Variables: 3}
	cnf.AddClause(1, -2)
	cnf.AddUnit(3)
	assert.Equal(t, "p cnf 3 2\n1 -2 0\n3 0\n", cnf.ToDIMACS())
}

func TestBuildSMT2Shape(t *testing.T) {
	cfg := config.Configuration{Teams: 6, Active: config.ToggleNames(), Timeout: time.Minute}
	script := BuildSMT2(cfg)
	assert.True(t, strings.HasPrefix(script, "(set-logic QF_LIA)\n"))
	assert.Contains(t, script, "(declare-const home_1_1 Int)")
	assert.Contains(t, script, "(declare-const away_5_3 Int)")
	assert.Contains(t, script, "(assert (and (= home_1_1 1) (= away_1_1 2)))")
	assert.True(t, strings.HasSuffix(script, "(check-sat)\n(get-model)\n"))
}

func TestParseSMTModelRoundTrip(t *testing.T) {
	var b strings.Builder
	b.WriteString("sat\n(\n")
	for p, period := range timetable6 {
		for w, match := range period {
			fmt.Fprintf(&b, "(define-fun home_%d_%d () Int %d)\n", w+1, p+1, match.Home)
			fmt.Fprintf(&b, "(define-fun away_%d_%d () Int %d)\n", w+1, p+1, match.Away)
		}
	}
	b.WriteString(")\n")

	decoded, err := ParseSMTModel(6, b.String())
	assert.NoError(t, err)
	assert.Equal(t, timetable6, decoded)
}

func TestParseSMTModelMissingSlot(t *testing.T) {
	_, err := ParseSMTModel(6, "sat\n(\n(define-fun home_1_1 () Int 1)\n)\n")
	assert.Error(t, err)
}

func TestBuildDZN(t *testing.T) {
	cfg := config.Configuration{Teams: 8, Active: []string{config.SymmBreakWeeks}, Timeout: time.Minute}
	data := BuildDZN(cfg)
	assert.Contains(t, data, "n = 8;\n")
	assert.Contains(t, data, "use_symm_break_weeks = true;\n")
	assert.Contains(t, data, "use_symm_break_teams = false;\n")
	assert.Contains(t, data, "use_implied_period_count = false;\n")
}

func TestBuildLPShape(t *testing.T) {
	cfg := config.Configuration{Teams: 6, Active: config.ToggleNames(), Timeout: time.Minute}
	model := BuildLP(cfg)
	assert.True(t, strings.HasPrefix(model, "Minimize\n obj: maxdiff\n"))
	assert.Contains(t, model, "Subject To\n")
	assert.Contains(t, model, " symteams_1: x_1_1_1_2 = 1\n")
	assert.Contains(t, model, " impliedm_1: hc_1 + ac_1 = 5\n")
	assert.Contains(t, model, "Binaries\n")
	assert.True(t, strings.HasSuffix(model, "End\n"))
}

func TestParseCBCSolutionRoundTrip(t *testing.T) {
	var b strings.Builder
	b.WriteString("Optimal - objective value 1.00000000\n")
	index := 0
	for p, period := range timetable6 {
		for w, match := range period {
			fmt.Fprintf(&b, "%7d x_%d_%d_%d_%d %22d %22d\n", index, w+1, p+1, match.Home, match.Away, 1, 0)
			index++
		}
	}

	decoded, obj, err := ParseCBCSolution(6, b.String())
	assert.NoError(t, err)
	assert.Equal(t, timetable6, decoded)
	if assert.NotNil(t, obj) {
		assert.Equal(t, 1, *obj)
	}
}

func TestParseCBCSolutionIncomplete(t *testing.T) {
	payload := "Optimal - objective value 1.00000000\n      0 x_1_1_1_2             1            0\n"
	_, _, err := ParseCBCSolution(6, payload)
	assert.Error(t, err)
}
