package encoding

import (
	"fmt"
	"strings"

	"github.com/optilab/stsbench/internal/config"
)

// BuildDZN renders a MiniZinc data file binding the instance size and one
// boolean parameter per constraint toggle.
func BuildDZN(cfg config.Configuration) string {
	var b strings.Builder
	fmt.Fprintf(&b, "n = %d;\n", cfg.Teams)
	for _, toggle := range config.Catalog() {
		fmt.Fprintf(&b, "%s = %t;\n", toggle.Name, cfg.Enabled(toggle.Name))
	}
	return b.String()
}
