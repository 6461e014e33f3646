package schedule

import (
	"fmt"
	"math"

	"github.com/samber/lo"
)

// Match is a single game between two distinct teams, numbered from 1.
type Match struct {
	Home int
	Away int
}

func (m Match) MarshalJSON() ([]byte, error) {
	return fmt.Appendf(nil, "[%d, %d]", m.Home, m.Away), nil
}

// Schedule is a period-major tournament timetable: Schedule[p][w] is the
// match played in period p during week w.
type Schedule [][]Match

// Decode converts a loosely-typed value (as produced by encoding/json or
// mapstructure) into a Schedule. It runs in two passes: the first rejects
// anything that is not a three-level nesting of 2-integer lists, the second
// builds the typed value. Decode performs no tournament checks; that is
// Validate's job.
func Decode(value any) (Schedule, error) {
	periods, ok := asList(value)
	if !ok {
		return nil, fmt.Errorf("schedule must be a list, got %T", value)
	}

	// First pass: shape only
	for i, period := range periods {
		weeks, ok := asList(period)
		if !ok {
			return nil, fmt.Errorf("period %d must be a list of weeks, got %T", i+1, period)
		}
		for j, match := range weeks {
			entries, ok := asList(match)
			if !ok {
				return nil, fmt.Errorf("period %d week %d must be a 2-integer match, got %T", i+1, j+1, match)
			}
			if len(entries) != 2 {
				return nil, fmt.Errorf("period %d week %d must hold exactly 2 teams, got %d", i+1, j+1, len(entries))
			}
			for _, entry := range entries {
				if _, ok := asTeam(entry); !ok {
					return nil, fmt.Errorf("period %d week %d holds a non-integer team: %v", i+1, j+1, entry)
				}
			}
		}
	}

	// Second pass: build
	schedule := make(Schedule, len(periods))
	for i, period := range periods {
		weeks, _ := asList(period)
		schedule[i] = make([]Match, len(weeks))
		for j, match := range weeks {
			entries, _ := asList(match)
			home, _ := asTeam(entries[0])
			away, _ := asTeam(entries[1])
			schedule[i][j] = Match{Home: home, Away: away}
		}
	}
	return schedule, nil
}

// Teams returns the highest team number appearing in the schedule, which for
// a complete round-robin schedule equals the instance size n.
func (s Schedule) Teams() int {
	n := 0
	for _, match := range s.Matches() {
		n = max(n, match.Home, match.Away)
	}
	return n
}

// Matches flattens the schedule into its match list.
func (s Schedule) Matches() []Match {
	return lo.FlatMap(s, func(period []Match, _ int) []Match { return period })
}

func asList(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []int:
		return lo.Map(v, func(e int, _ int) any { return e }), true
	case [][]any:
		return lo.Map(v, func(e []any, _ int) any { return e }), true
	}
	return nil, false
}

func asTeam(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	}
	return 0, false
}
