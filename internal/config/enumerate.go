package config

import (
	"fmt"
	"math/bits"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Combo is one named assignment of the constraint toggles.
type Combo struct {
	Name   string
	Active []string
}

// AllActive returns the single combination with every selected toggle on.
// An empty selection means the whole catalog.
func AllActive(selected []string) (Combo, error) {
	active, err := normalize(selected)
	if err != nil {
		return Combo{}, err
	}
	return Combo{Name: "all_constraints", Active: active}, nil
}

// Combinations enumerates the power set of the selected toggles, smallest
// subsets first. An empty selection means the whole catalog. Combo names
// are deterministic: combo_none for the empty subset, otherwise combo_
// followed by the sorted active names.
func Combinations(selected []string) ([]Combo, error) {
	names, err := normalize(selected)
	if err != nil {
		return nil, err
	}
	combos := lo.Map(masks(len(names)), func(mask int, _ int) Combo {
		active := pick(names, mask)
		return Combo{Name: comboName(active), Active: active}
	})
	return combos, nil
}

// SelectGroup enumerates subsets of one toggle group while every toggle
// outside the group stays on, isolating the group's marginal effect.
func SelectGroup(group Group) ([]Combo, error) {
	members := lo.FilterMap(catalog, func(t Toggle, _ int) (string, bool) {
		return t.Name, t.Group == group
	})
	if len(members) == 0 {
		return nil, fmt.Errorf("unknown constraint group %q", group)
	}
	rest := lo.Filter(ToggleNames(), func(name string, _ int) bool {
		return !lo.Contains(members, name)
	})
	combos := lo.Map(masks(len(members)), func(mask int, _ int) Combo {
		subset := pick(members, mask)
		return Combo{
			Name:   fmt.Sprintf("select_%s_%s", group, comboName(subset)),
			Active: append(subset, rest...),
		}
	})
	return combos, nil
}

func comboName(active []string) string {
	if len(active) == 0 {
		return "combo_none"
	}
	sorted := append([]string(nil), active...)
	sort.Strings(sorted)
	return "combo_" + strings.Join(sorted, "_")
}

// normalize validates the selection against the catalog and returns it in
// canonical catalog order, defaulting to the full catalog.
func normalize(selected []string) ([]string, error) {
	if len(selected) == 0 {
		return ToggleNames(), nil
	}
	for _, name := range selected {
		if _, err := lookupToggle(name); err != nil {
			return nil, err
		}
	}
	return lo.Filter(ToggleNames(), func(name string, _ int) bool {
		return lo.Contains(selected, name)
	}), nil
}

// masks lists the subset bitmasks of a k-element set, smallest subsets
// first, catalog order within equal sizes.
func masks(k int) []int {
	all := lo.RangeFrom(0, 1<<k)
	sort.SliceStable(all, func(i, j int) bool {
		return bits.OnesCount(uint(all[i])) < bits.OnesCount(uint(all[j]))
	})
	return all
}

func pick(names []string, mask int) []string {
	return lo.Filter(names, func(_ string, i int) bool { return mask&(1<<i) != 0 })
}
