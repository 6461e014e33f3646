package config

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func TestConfigurationDimensions(t *testing.T) {
	cfg := Configuration{Teams: 8, Timeout: time.Minute}
	assert.Equal(t, 7, cfg.Weeks())
	assert.Equal(t, 4, cfg.Periods())
	assert.NoError(t, cfg.Validate())
}

func TestConfigurationEnabled(t *testing.T) {
	cfg := Configuration{Teams: 6, Active: []string{SymmBreakTeams}, Timeout: time.Minute}
	assert.True(t, cfg.Enabled(SymmBreakTeams))
	assert.False(t, cfg.Enabled(ImpliedMatches))
}

func TestConfigurationValidateRejections(t *testing.T) {
	cases := map[string]Configuration{
		"odd size":       {Teams: 7, Timeout: time.Minute},
		"zero size":      {Teams: 0, Timeout: time.Minute},
		"no timeout":     {Teams: 6},
		"unknown toggle": {Teams: 6, Active: []string{"use_flux_capacitor"}, Timeout: time.Minute},
	}
	for name, cfg := range cases {
		assert.Error(t, cfg.Validate(), name)
	}
}

func TestCombinationsFullCatalog(t *testing.T) {
	combos, err := Combinations(nil)
	assert.NoError(t, err)
	assert.Len(t, combos, 1<<len(Catalog()))

	names := lo.Map(combos, func(c Combo, _ int) string { return c.Name })
	assert.Len(t, lo.Uniq(names), len(combos))
	assert.Equal(t, "combo_none", combos[0].Name)
	assert.Empty(t, combos[0].Active)

	// Largest subset comes last and holds the whole catalog.
	last := combos[len(combos)-1]
	assert.ElementsMatch(t, ToggleNames(), last.Active)
}

func TestCombinationsSelection(t *testing.T) {
	combos, err := Combinations([]string{SymmBreakTeams, ImpliedMatches})
	assert.NoError(t, err)
	assert.Len(t, combos, 4)
	for _, combo := range combos {
		for _, name := range combo.Active {
			assert.Contains(t, []string{SymmBreakTeams, ImpliedMatches}, name)
		}
	}
}

func TestCombinationsUnknownToggle(t *testing.T) {
	_, err := Combinations([]string{"use_warp_drive"})
	assert.ErrorAs(t, err, &InvalidToggleNameError{})
	assert.Contains(t, err.Error(), "use_warp_drive")
}

func TestSelectGroupForcesOutsiders(t *testing.T) {
	combos, err := SelectGroup(GroupSymmetry)
	assert.NoError(t, err)
	assert.Len(t, combos, 8)

	for _, combo := range combos {
		assert.Contains(t, combo.Active, ImpliedMatches, combo.Name)
		assert.Contains(t, combo.Active, ImpliedPeriodCount, combo.Name)
	}
	assert.Equal(t, "select_symmetry_combo_none", combos[0].Name)
	assert.ElementsMatch(t, []string{ImpliedMatches, ImpliedPeriodCount}, combos[0].Active)
	assert.ElementsMatch(t, ToggleNames(), combos[len(combos)-1].Active)
}

func TestSelectGroupUnknown(t *testing.T) {
	_, err := SelectGroup("astrology")
	assert.Error(t, err)
}

func TestAllActiveDefaultsToCatalog(t *testing.T) {
	combo, err := AllActive(nil)
	assert.NoError(t, err)
	assert.Equal(t, "all_constraints", combo.Name)
	assert.Equal(t, ToggleNames(), combo.Active)
}
