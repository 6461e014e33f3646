package config

import (
	"fmt"
	"time"

	"github.com/samber/lo"
)

// Configuration fixes everything variable about a single solver request:
// the instance size, which optional constraints are active, and the
// per-trial timeout.
type Configuration struct {
	Teams   int
	Active  []string
	Timeout time.Duration
}

// Enabled reports whether the named toggle is active.
func (c Configuration) Enabled(name string) bool {
	return lo.Contains(c.Active, name)
}

// Weeks returns the number of rounds for the configured instance.
func (c Configuration) Weeks() int { return c.Teams - 1 }

// Periods returns the number of simultaneous slots per round.
func (c Configuration) Periods() int { return c.Teams / 2 }

// Validate rejects configurations no solver request should be built from.
func (c Configuration) Validate() error {
	if c.Teams < 2 || c.Teams%2 != 0 {
		return fmt.Errorf("instance size must be a positive even number, got %d", c.Teams)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	for _, name := range c.Active {
		if _, err := lookupToggle(name); err != nil {
			return err
		}
	}
	return nil
}
