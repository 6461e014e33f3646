package encoding

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// CNF is a propositional formula in conjunctive normal form. Literals use
// DIMACS conventions: variable v is the positive literal v, its negation -v.
type CNF struct {
	Variables int
	Clauses   [][]int
}

// AddClause appends a disjunction of literals.
func (c *CNF) AddClause(literals ...int) {
	c.Clauses = append(c.Clauses, literals)
}

// AddUnit appends a single-literal clause.
func (c *CNF) AddUnit(literal int) {
	c.AddClause(literal)
}

// ToDIMACS renders the formula in the DIMACS CNF format accepted by every
// SAT solver backend.
func (c *CNF) ToDIMACS() string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("p cnf %v %v\n", c.Variables, len(c.Clauses)))
	for _, clause := range c.Clauses {
		literals := lo.Map(clause, func(literal int, _ int) string {
			return fmt.Sprintf("%v", literal)
		})
		builder.WriteString(strings.Join(literals, " ") + " 0\n")
	}
	return builder.String()
}

// atMostOne adds the pairwise encoding over the given literals.
func atMostOne(c *CNF, literals []int) {
	for i := 0; i < len(literals); i++ {
		for j := i + 1; j < len(literals); j++ {
			c.AddClause(-literals[i], -literals[j])
		}
	}
}

// exactlyOne adds an at-least-one clause plus the pairwise at-most-one.
func exactlyOne(c *CNF, literals []int) {
	c.AddClause(literals...)
	atMostOne(c, literals)
}
