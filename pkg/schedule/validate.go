package schedule

import (
	"fmt"

	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

type Verdict int

const (
	Valid Verdict = iota
	Skipped
	Invalid
)

func (v Verdict) String() string {
	switch v {
	case Valid:
		return "VALID"
	case Skipped:
		return "SKIPPED"
	case Invalid:
		return "INVALID"
	}
	return "UNKNOWN"
}

// Report carries the verdict for one persisted solution value, with a
// human-readable reason for anything other than Valid.
type Report struct {
	Verdict Verdict
	Reason  string
}

func skipped(reason string) Report { return Report{Verdict: Skipped, Reason: reason} }
func invalid(reason string) Report { return Report{Verdict: Invalid, Reason: reason} }

// Validate checks whether a persisted solution value is a well-formed
// single round-robin timetable. Non-list values are presumed infeasibility
// notes (the n=4 instance has no valid timetable) and yield Skipped, as do
// empty lists left behind by unsat and timed-out runs. Checks run in a
// fixed order and stop at the first violation.
func Validate(value any) Report {
	if value == nil {
		return skipped("no solution recorded")
	}
	if _, ok := asList(value); !ok {
		return skipped(fmt.Sprintf("non-schedule value of type %T, presumed infeasible instance", value))
	}

	s, err := Decode(value)
	if err != nil {
		return invalid(err.Error())
	}
	if len(s.Matches()) == 0 {
		return skipped("empty solution")
	}

	n := s.Teams()
	if n == 4 {
		return skipped("no schedule exists for 4 teams")
	}

	// (a) teams form exactly {1..n}
	seen := map[int]bool{}
	for _, m := range s.Matches() {
		if m.Home < 1 || m.Away < 1 {
			return invalid(fmt.Sprintf("team numbers must be positive, got match [%d, %d]", m.Home, m.Away))
		}
		seen[m.Home] = true
		seen[m.Away] = true
	}
	for t := 1; t <= n; t++ {
		if !seen[t] {
			return invalid(fmt.Sprintf("team %d never plays", t))
		}
	}

	// (b) even number of teams
	if n%2 != 0 {
		return invalid(fmt.Sprintf("odd number of teams: %d", n))
	}

	// (c) n/2 periods of n-1 weeks each
	if len(s) != n/2 {
		return invalid(fmt.Sprintf("expected %d periods, got %d", n/2, len(s)))
	}
	for p, period := range s {
		if len(period) != n-1 {
			return invalid(fmt.Sprintf("period %d has %d weeks, expected %d", p+1, len(period), n-1))
		}
	}

	// (d) every unordered pair plays exactly once, in either orientation
	pairs := map[[2]int]int{}
	for _, m := range s.Matches() {
		if m.Home != m.Away {
			pairs[[2]int{min(m.Home, m.Away), max(m.Home, m.Away)}]++
		}
	}
	for i := 1; i <= n; i++ {
		for j := i + 1; j <= n; j++ {
			if c := pairs[[2]int{i, j}]; c != 1 {
				return invalid(fmt.Sprintf("teams %d and %d play %d times, expected once", i, j, c))
			}
		}
	}

	// (e) no team plays itself
	for _, m := range s.Matches() {
		if m.Home == m.Away {
			return invalid(fmt.Sprintf("team %d plays itself", m.Home))
		}
	}

	// (f) every team plays exactly once per week. A week is sound exactly
	// when its team slots admit a perfect matching against the team set.
	for w := 0; w < n-1; w++ {
		teams := lo.FlatMap(s, func(period []Match, _ int) []int {
			return []int{period[w].Home, period[w].Away}
		})
		if !coversAllTeams(teams, n) {
			counts := lo.CountValues(teams)
			culprit, _ := lo.Find(lo.RangeFrom(1, n), func(t int) bool { return counts[t] != 1 })
			return invalid(fmt.Sprintf("team %d plays %d matches in week %d, expected 1", culprit, counts[culprit], w+1))
		}
	}

	// (g) no team appears more than twice in any period
	for p, period := range s {
		teams := lo.FlatMap(period, func(m Match, _ int) []int { return []int{m.Home, m.Away} })
		for t, c := range lo.CountValues(teams) {
			if c > 2 {
				return invalid(fmt.Sprintf("team %d appears %d times in period %d, at most 2 allowed", t, c, p+1))
			}
		}
	}

	return Report{Verdict: Valid}
}

// coversAllTeams reports whether the slot occupants admit a perfect
// matching against {1..n}. Each slot holds exactly one team, so a largest
// matching of size n means every team appears, and with n slots that
// pins every team to exactly one appearance.
func coversAllTeams(slots []int, n int) bool {
	if len(slots) != n {
		return false
	}
	teams := lo.Map(lo.RangeFrom(1, n), func(t int, _ int) any { return t })
	positions := lo.Map(lo.Range(len(slots)), func(i int, _ int) any { return i })
	graph, err := bipartitegraph.NewBipartiteGraph(teams, positions, func(team, position any) (bool, error) {
		return slots[position.(int)] == team.(int), nil
	})
	if err != nil {
		return false
	}
	return len(graph.LargestMatching()) == n
}
