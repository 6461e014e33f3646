package encoding

import (
	"github.com/optilab/stsbench/internal/config"
	"github.com/optilab/stsbench/pkg/schedule"
)

// Vars maps the tournament decision variables onto DIMACS variable numbers.
// Match variables state that a week/period slot hosts an ordered pair of
// teams; Plays variables state that a team occupies a slot, and are defined
// from the match variables.
type Vars struct {
	Teams   int
	Weeks   int
	Periods int
}

func NewVars(n int) Vars {
	return Vars{Teams: n, Weeks: n - 1, Periods: n / 2}
}

func (v Vars) slot(w, p int) int {
	return (w-1)*v.Periods + (p - 1)
}

func (v Vars) pairIndex(home, away int) int {
	offset := away - 2
	if away < home {
		offset = away - 1
	}
	return (home-1)*(v.Teams-1) + offset
}

// Match returns the variable for "home plays away in week w, period p".
func (v Vars) Match(w, p, home, away int) int {
	return v.slot(w, p)*v.Teams*(v.Teams-1) + v.pairIndex(home, away) + 1
}

// Plays returns the variable for "team t occupies the slot (w, p)".
func (v Vars) Plays(w, p, t int) int {
	return v.matchCount() + v.slot(w, p)*v.Teams + (t - 1) + 1
}

func (v Vars) matchCount() int {
	return v.Weeks * v.Periods * v.Teams * (v.Teams - 1)
}

// Count returns the total number of variables.
func (v Vars) Count() int {
	return v.matchCount() + v.Weeks*v.Periods*v.Teams
}

// BuildCNF encodes the single round-robin tournament instance described by
// cfg as a CNF formula. Optional symmetry-breaking and implied constraints
// follow the configuration's active toggles.
func BuildCNF(cfg config.Configuration) *CNF {
	n := cfg.Teams
	vars := NewVars(n)
	cnf := &CNF{Variables: vars.Count()}

	// Every slot hosts exactly one ordered pair.
	for w := 1; w <= vars.Weeks; w++ {
		for p := 1; p <= vars.Periods; p++ {
			var slot []int
			for home := 1; home <= n; home++ {
				for away := 1; away <= n; away++ {
					if home != away {
						slot = append(slot, vars.Match(w, p, home, away))
					}
				}
			}
			exactlyOne(cnf, slot)
		}
	}

	// Every unordered pair meets exactly once across all slots.
	for i := 1; i <= n; i++ {
		for j := i + 1; j <= n; j++ {
			var meetings []int
			for w := 1; w <= vars.Weeks; w++ {
				for p := 1; p <= vars.Periods; p++ {
					meetings = append(meetings, vars.Match(w, p, i, j), vars.Match(w, p, j, i))
				}
			}
			exactlyOne(cnf, meetings)
		}
	}

	// Define the occupancy variables from the match variables.
	for w := 1; w <= vars.Weeks; w++ {
		for p := 1; p <= vars.Periods; p++ {
			for t := 1; t <= n; t++ {
				plays := vars.Plays(w, p, t)
				var supports []int
				for other := 1; other <= n; other++ {
					if other == t {
						continue
					}
					supports = append(supports, vars.Match(w, p, t, other), vars.Match(w, p, other, t))
				}
				for _, support := range supports {
					cnf.AddClause(-support, plays)
				}
				cnf.AddClause(append([]int{-plays}, supports...)...)
			}
		}
	}

	// Every team plays exactly one slot per week.
	for t := 1; t <= n; t++ {
		for w := 1; w <= vars.Weeks; w++ {
			var slots []int
			for p := 1; p <= vars.Periods; p++ {
				slots = append(slots, vars.Plays(w, p, t))
			}
			exactlyOne(cnf, slots)
		}
	}

	// No team occupies the same period more than twice.
	for t := 1; t <= n; t++ {
		for p := 1; p <= vars.Periods; p++ {
			for w1 := 1; w1 <= vars.Weeks; w1++ {
				for w2 := w1 + 1; w2 <= vars.Weeks; w2++ {
					for w3 := w2 + 1; w3 <= vars.Weeks; w3++ {
						cnf.AddClause(-vars.Plays(w1, p, t), -vars.Plays(w2, p, t), -vars.Plays(w3, p, t))
					}
				}
			}
		}
	}

	if cfg.Enabled(config.SymmBreakTeams) {
		// Fix week 1 to the canonical matching (1,2), (3,4), ...
		for p := 1; p <= vars.Periods; p++ {
			cnf.AddUnit(vars.Match(1, p, 2*p-1, 2*p))
		}
	}
	if cfg.Enabled(config.SymmBreakWeeks) {
		// Teams 1 and 2 meet in the first week.
		var firstWeek []int
		for p := 1; p <= vars.Periods; p++ {
			firstWeek = append(firstWeek, vars.Match(1, p, 1, 2), vars.Match(1, p, 2, 1))
		}
		cnf.AddClause(firstWeek...)
	}
	if cfg.Enabled(config.SymmBreakPeriods) {
		// Team 1 opens in the first period.
		cnf.AddUnit(vars.Plays(1, 1, 1))
	}
	if cfg.Enabled(config.ImpliedMatches) {
		for t := 1; t <= n; t++ {
			for w := 1; w <= vars.Weeks; w++ {
				var slots []int
				for p := 1; p <= vars.Periods; p++ {
					slots = append(slots, vars.Plays(w, p, t))
				}
				cnf.AddClause(slots...)
			}
		}
	}
	if cfg.Enabled(config.ImpliedPeriodCount) {
		for t := 1; t <= n; t++ {
			for p := 1; p <= vars.Periods; p++ {
				var weeks []int
				for w := 1; w <= vars.Weeks; w++ {
					weeks = append(weeks, vars.Plays(w, p, t))
				}
				cnf.AddClause(weeks...)
			}
		}
	}

	return cnf
}

// DecodeModel reads a satisfying assignment back into a period-major
// timetable. truth must report the value of a DIMACS variable.
func DecodeModel(n int, truth func(variable int) bool) schedule.Schedule {
	vars := NewVars(n)
	timetable := make(schedule.Schedule, vars.Periods)
	for p := 1; p <= vars.Periods; p++ {
		timetable[p-1] = make([]schedule.Match, vars.Weeks)
		for w := 1; w <= vars.Weeks; w++ {
			for home := 1; home <= n; home++ {
				for away := 1; away <= n; away++ {
					if home != away && truth(vars.Match(w, p, home, away)) {
						timetable[p-1][w-1] = schedule.Match{Home: home, Away: away}
					}
				}
			}
		}
	}
	return timetable
}
