package config

import (
	"fmt"

	"github.com/samber/lo"
)

// Group classifies toggles for the select-group sweep mode.
type Group string

const (
	GroupSymmetry Group = "symmetry"
	GroupImplied  Group = "implied"
)

// Toggle is an optional model constraint that can be switched per run.
type Toggle struct {
	Name  string
	Group Group
}

const (
	SymmBreakWeeks     = "use_symm_break_weeks"
	SymmBreakPeriods   = "use_symm_break_periods"
	SymmBreakTeams     = "use_symm_break_teams"
	ImpliedMatches     = "use_implied_matches_per_team"
	ImpliedPeriodCount = "use_implied_period_count"
)

var catalog = []Toggle{
	{Name: SymmBreakWeeks, Group: GroupSymmetry},
	{Name: SymmBreakPeriods, Group: GroupSymmetry},
	{Name: SymmBreakTeams, Group: GroupSymmetry},
	{Name: ImpliedMatches, Group: GroupImplied},
	{Name: ImpliedPeriodCount, Group: GroupImplied},
}

// Catalog returns the known toggles in their canonical order.
func Catalog() []Toggle {
	return append([]Toggle(nil), catalog...)
}

// ToggleNames returns the names of all known toggles in canonical order.
func ToggleNames() []string {
	return lo.Map(catalog, func(t Toggle, _ int) string { return t.Name })
}

// InvalidToggleNameError reports a toggle name absent from the catalog.
type InvalidToggleNameError struct {
	Name string
}

func (e InvalidToggleNameError) Error() string {
	return fmt.Sprintf("unknown constraint toggle %q", e.Name)
}

func lookupToggle(name string) (Toggle, error) {
	toggle, found := lo.Find(catalog, func(t Toggle) bool { return t.Name == name })
	if !found {
		return Toggle{}, InvalidToggleNameError{Name: name}
	}
	return toggle, nil
}
