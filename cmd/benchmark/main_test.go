package main

import (
	"testing"

	"github.com/optilab/stsbench/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestParseSizes(t *testing.T) {
	sizes, err := parseSizes("6, 8,10")
	assert.NoError(t, err)
	assert.Equal(t, []int{6, 8, 10}, sizes)

	_, err = parseSizes("6,7")
	assert.Error(t, err)
	_, err = parseSizes("six")
	assert.Error(t, err)
	_, err = parseSizes("")
	assert.Error(t, err)
}

func TestParseBackends(t *testing.T) {
	assert.Equal(t, []string{"gini", "cvc5"}, parseBackends("gini, cvc5"))
	assert.Nil(t, parseBackends("all"))
	assert.Nil(t, parseBackends(" ALL "))
}

func TestParseMode(t *testing.T) {
	generate, err := parseMode("generate", nil)
	assert.NoError(t, err)
	assert.Len(t, generate, 1)
	assert.Equal(t, "all_constraints", generate[0].Name)

	test, err := parseMode("test", []string{config.SymmBreakTeams})
	assert.NoError(t, err)
	assert.Len(t, test, 2)

	selected, err := parseMode("select:implied", nil)
	assert.NoError(t, err)
	assert.Len(t, selected, 4)

	_, err = parseMode("select:astrology", nil)
	assert.Error(t, err)
	_, err = parseMode("exhaustive", nil)
	assert.Error(t, err)
}
