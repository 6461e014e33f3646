package encoding

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/optilab/stsbench/internal/config"
	"github.com/optilab/stsbench/pkg/schedule"
)

func lpMatch(w, p, home, away int) string {
	return fmt.Sprintf("x_%d_%d_%d_%d", w, p, home, away)
}

// BuildLP renders the instance in CPLEX LP format for the CBC backend. The
// objective minimizes the worst home/away imbalance over all teams, so a
// perfectly balanced timetable scores 1 for even n.
func BuildLP(cfg config.Configuration) string {
	n := cfg.Teams
	weeks, periods := cfg.Weeks(), cfg.Periods()

	var b strings.Builder
	b.WriteString("Minimize\n obj: maxdiff\nSubject To\n")

	// Every slot hosts exactly one ordered pair.
	for w := 1; w <= weeks; w++ {
		for p := 1; p <= periods; p++ {
			var terms []string
			for home := 1; home <= n; home++ {
				for away := 1; away <= n; away++ {
					if home != away {
						terms = append(terms, lpMatch(w, p, home, away))
					}
				}
			}
			fmt.Fprintf(&b, " slot_%d_%d: %s = 1\n", w, p, strings.Join(terms, " + "))
		}
	}

	// Every unordered pair meets exactly once.
	for i := 1; i <= n; i++ {
		for j := i + 1; j <= n; j++ {
			var terms []string
			for w := 1; w <= weeks; w++ {
				for p := 1; p <= periods; p++ {
					terms = append(terms, lpMatch(w, p, i, j), lpMatch(w, p, j, i))
				}
			}
			fmt.Fprintf(&b, " pair_%d_%d: %s = 1\n", i, j, strings.Join(terms, " + "))
		}
	}

	// Every team plays exactly once per week.
	for t := 1; t <= n; t++ {
		for w := 1; w <= weeks; w++ {
			fmt.Fprintf(&b, " week_%d_%d: %s = 1\n", t, w, strings.Join(lpWeekOccupancy(t, w, periods, n), " + "))
		}
	}

	// No team occupies a period more than twice.
	for t := 1; t <= n; t++ {
		for p := 1; p <= periods; p++ {
			fmt.Fprintf(&b, " period_%d_%d: %s <= 2\n", t, p, strings.Join(lpPeriodOccupancy(t, p, weeks, n), " + "))
		}
	}

	// Home and away counters feeding the imbalance objective.
	for t := 1; t <= n; t++ {
		var homes, aways []string
		for w := 1; w <= weeks; w++ {
			for p := 1; p <= periods; p++ {
				for other := 1; other <= n; other++ {
					if other == t {
						continue
					}
					homes = append(homes, lpMatch(w, p, t, other))
					aways = append(aways, lpMatch(w, p, other, t))
				}
			}
		}
		fmt.Fprintf(&b, " hcdef_%d: %s - hc_%d = 0\n", t, strings.Join(homes, " + "), t)
		fmt.Fprintf(&b, " acdef_%d: %s - ac_%d = 0\n", t, strings.Join(aways, " + "), t)
		fmt.Fprintf(&b, " imbpos_%d: hc_%d - ac_%d - maxdiff <= 0\n", t, t, t)
		fmt.Fprintf(&b, " imbneg_%d: ac_%d - hc_%d - maxdiff <= 0\n", t, t, t)
	}

	if cfg.Enabled(config.SymmBreakTeams) {
		for p := 1; p <= periods; p++ {
			fmt.Fprintf(&b, " symteams_%d: %s = 1\n", p, lpMatch(1, p, 2*p-1, 2*p))
		}
	}
	if cfg.Enabled(config.SymmBreakWeeks) {
		var terms []string
		for p := 1; p <= periods; p++ {
			terms = append(terms, lpMatch(1, p, 1, 2), lpMatch(1, p, 2, 1))
		}
		fmt.Fprintf(&b, " symweeks: %s = 1\n", strings.Join(terms, " + "))
	}
	if cfg.Enabled(config.SymmBreakPeriods) {
		var terms []string
		for other := 2; other <= n; other++ {
			terms = append(terms, lpMatch(1, 1, 1, other), lpMatch(1, 1, other, 1))
		}
		fmt.Fprintf(&b, " symperiods: %s = 1\n", strings.Join(terms, " + "))
	}
	if cfg.Enabled(config.ImpliedMatches) {
		for t := 1; t <= n; t++ {
			fmt.Fprintf(&b, " impliedm_%d: hc_%d + ac_%d = %d\n", t, t, t, n-1)
		}
	}
	if cfg.Enabled(config.ImpliedPeriodCount) {
		for t := 1; t <= n; t++ {
			for p := 1; p <= periods; p++ {
				fmt.Fprintf(&b, " impliedp_%d_%d: %s >= 1\n", t, p, strings.Join(lpPeriodOccupancy(t, p, weeks, n), " + "))
			}
		}
	}

	fmt.Fprintf(&b, "Bounds\n 0 <= maxdiff <= %d\n", n)
	b.WriteString("Generals\n maxdiff")
	for t := 1; t <= n; t++ {
		fmt.Fprintf(&b, " hc_%d ac_%d", t, t)
	}
	b.WriteString("\nBinaries\n")
	for w := 1; w <= weeks; w++ {
		for p := 1; p <= periods; p++ {
			for home := 1; home <= n; home++ {
				for away := 1; away <= n; away++ {
					if home != away {
						fmt.Fprintf(&b, " %s", lpMatch(w, p, home, away))
					}
				}
			}
		}
	}
	b.WriteString("\nEnd\n")
	return b.String()
}

func lpWeekOccupancy(t, w, periods, n int) []string {
	var terms []string
	for p := 1; p <= periods; p++ {
		for other := 1; other <= n; other++ {
			if other != t {
				terms = append(terms, lpMatch(w, p, t, other), lpMatch(w, p, other, t))
			}
		}
	}
	return terms
}

func lpPeriodOccupancy(t, p, weeks, n int) []string {
	var terms []string
	for w := 1; w <= weeks; w++ {
		for other := 1; other <= n; other++ {
			if other != t {
				terms = append(terms, lpMatch(w, p, t, other), lpMatch(w, p, other, t))
			}
		}
	}
	return terms
}

// ParseCBCSolution reads a CBC solution file: a status header line followed
// by one line per nonzero variable. It returns the decoded timetable and
// the rounded objective value.
func ParseCBCSolution(n int, payload string) (schedule.Schedule, *int, error) {
	lines := strings.Split(payload, "\n")
	if len(lines) == 0 {
		return nil, nil, fmt.Errorf("empty solution file")
	}

	var obj *int
	header := strings.TrimSpace(lines[0])
	if fields := strings.Fields(header); len(fields) > 0 {
		if value, err := strconv.ParseFloat(fields[len(fields)-1], 64); err == nil {
			rounded := int(math.Round(value))
			obj = &rounded
		}
	}

	vars := NewVars(n)
	timetable := make(schedule.Schedule, vars.Periods)
	for p := range timetable {
		timetable[p] = make([]schedule.Match, vars.Weeks)
	}
	assigned := 0
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) < 3 || !strings.HasPrefix(fields[1], "x_") {
			continue
		}
		value, err := strconv.ParseFloat(fields[2], 64)
		if err != nil || value < 0.5 {
			continue
		}
		var w, p, home, away int
		if _, err := fmt.Sscanf(fields[1], "x_%d_%d_%d_%d", &w, &p, &home, &away); err != nil {
			return nil, nil, fmt.Errorf("unreadable variable %q", fields[1])
		}
		timetable[p-1][w-1] = schedule.Match{Home: home, Away: away}
		assigned++
	}
	if assigned != vars.Weeks*vars.Periods {
		return nil, nil, fmt.Errorf("solution assigns %d slots, expected %d", assigned, vars.Weeks*vars.Periods)
	}
	return timetable, obj, nil
}
