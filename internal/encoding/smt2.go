package encoding

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/optilab/stsbench/internal/config"
	"github.com/optilab/stsbench/pkg/schedule"
	"github.com/samber/lo"
)

func smtHome(w, p int) string { return fmt.Sprintf("home_%d_%d", w, p) }
func smtAway(w, p int) string { return fmt.Sprintf("away_%d_%d", w, p) }

// BuildSMT2 renders the tournament instance as an SMT-LIB 2 script over
// linear integer arithmetic. Each week/period slot carries two integer
// constants naming the teams that meet there.
func BuildSMT2(cfg config.Configuration) string {
	n := cfg.Teams
	weeks, periods := cfg.Weeks(), cfg.Periods()

	var b strings.Builder
	b.WriteString("(set-logic QF_LIA)\n")

	for w := 1; w <= weeks; w++ {
		for p := 1; p <= periods; p++ {
			fmt.Fprintf(&b, "(declare-const %s Int)\n", smtHome(w, p))
			fmt.Fprintf(&b, "(declare-const %s Int)\n", smtAway(w, p))
		}
	}

	// Team numbers stay in range.
	for w := 1; w <= weeks; w++ {
		for p := 1; p <= periods; p++ {
			for _, name := range []string{smtHome(w, p), smtAway(w, p)} {
				fmt.Fprintf(&b, "(assert (and (>= %s 1) (<= %s %d)))\n", name, name, n)
			}
		}
	}

	// One appearance per team per week: all slots of a week are distinct.
	for w := 1; w <= weeks; w++ {
		var names []string
		for p := 1; p <= periods; p++ {
			names = append(names, smtHome(w, p), smtAway(w, p))
		}
		fmt.Fprintf(&b, "(assert (distinct %s))\n", strings.Join(names, " "))
	}

	// Every unordered pair meets exactly once.
	for i := 1; i <= n; i++ {
		for j := i + 1; j <= n; j++ {
			var terms []string
			for w := 1; w <= weeks; w++ {
				for p := 1; p <= periods; p++ {
					terms = append(terms, meetingTerm(w, p, i, j))
				}
			}
			fmt.Fprintf(&b, "(assert (= (+ %s) 1))\n", strings.Join(terms, " "))
		}
	}

	// No team occupies a period more than twice.
	for t := 1; t <= n; t++ {
		for p := 1; p <= periods; p++ {
			fmt.Fprintf(&b, "(assert (<= (+ %s) 2))\n", strings.Join(occupancyTerms(t, p, weeks), " "))
		}
	}

	if cfg.Enabled(config.SymmBreakTeams) {
		for p := 1; p <= periods; p++ {
			fmt.Fprintf(&b, "(assert (and (= %s %d) (= %s %d)))\n", smtHome(1, p), 2*p-1, smtAway(1, p), 2*p)
		}
	}
	if cfg.Enabled(config.SymmBreakWeeks) {
		clauses := lo.Map(lo.RangeFrom(1, periods), func(p int, _ int) string {
			return meetingClause(1, p, 1, 2)
		})
		fmt.Fprintf(&b, "(assert (or %s))\n", strings.Join(clauses, " "))
	}
	if cfg.Enabled(config.SymmBreakPeriods) {
		fmt.Fprintf(&b, "(assert (or (= %s 1) (= %s 1)))\n", smtHome(1, 1), smtAway(1, 1))
	}
	if cfg.Enabled(config.ImpliedMatches) {
		for t := 1; t <= n; t++ {
			var terms []string
			for p := 1; p <= periods; p++ {
				terms = append(terms, occupancyTerms(t, p, weeks)...)
			}
			fmt.Fprintf(&b, "(assert (= (+ %s) %d))\n", strings.Join(terms, " "), n-1)
		}
	}
	if cfg.Enabled(config.ImpliedPeriodCount) {
		for t := 1; t <= n; t++ {
			for p := 1; p <= periods; p++ {
				fmt.Fprintf(&b, "(assert (>= (+ %s) 1))\n", strings.Join(occupancyTerms(t, p, weeks), " "))
			}
		}
	}

	b.WriteString("(check-sat)\n(get-model)\n")
	return b.String()
}

// meetingClause is true when teams i and j meet in slot (w, p), either way
// around.
func meetingClause(w, p, i, j int) string {
	return fmt.Sprintf("(or (and (= %s %d) (= %s %d)) (and (= %s %d) (= %s %d)))",
		smtHome(w, p), i, smtAway(w, p), j, smtHome(w, p), j, smtAway(w, p), i)
}

func meetingTerm(w, p, i, j int) string {
	return fmt.Sprintf("(ite %s 1 0)", meetingClause(w, p, i, j))
}

func occupancyTerms(t, p, weeks int) []string {
	return lo.Map(lo.RangeFrom(1, weeks), func(w int, _ int) string {
		return fmt.Sprintf("(ite (or (= %s %d) (= %s %d)) 1 0)", smtHome(w, p), t, smtAway(w, p), t)
	})
}

// ParseSMTModel reads a timetable out of a solver model printed as
// define-fun bindings, one per line.
func ParseSMTModel(n int, output string) (schedule.Schedule, error) {
	vars := NewVars(n)
	bindings := map[string]int{}
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), ")"))
		if !strings.HasPrefix(line, "(define-fun ") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 5 {
			continue
		}
		value, err := strconv.Atoi(fields[len(fields)-1])
		if err != nil {
			return nil, fmt.Errorf("unreadable model binding %q: %w", line, err)
		}
		bindings[fields[1]] = value
	}

	timetable := make(schedule.Schedule, vars.Periods)
	for p := 1; p <= vars.Periods; p++ {
		timetable[p-1] = make([]schedule.Match, vars.Weeks)
		for w := 1; w <= vars.Weeks; w++ {
			home, okHome := bindings[smtHome(w, p)]
			away, okAway := bindings[smtAway(w, p)]
			if !okHome || !okAway {
				return nil, fmt.Errorf("model misses slot week %d period %d", w, p)
			}
			timetable[p-1][w-1] = schedule.Match{Home: home, Away: away}
		}
	}
	return timetable, nil
}
