package runner

import (
	"math"
	"sort"

	"github.com/optilab/stsbench/internal/result"
	"github.com/samber/lo"
)

// summarize computes sample statistics, or nil for an empty sample.
func summarize(values []float64) *result.Stats {
	if len(values) == 0 {
		return nil
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	return &result.Stats{
		Mean:   mean(sorted),
		Median: median(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Stdev:  stdev(sorted),
	}
}

func mean(values []float64) float64 {
	return lo.Sum(values) / float64(len(values))
}

func median(sorted []float64) float64 {
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// stdev is the sample standard deviation, zero for a single measurement.
func stdev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	sum := lo.SumBy(values, func(v float64) float64 { return (v - m) * (v - m) })
	return math.Sqrt(sum / float64(len(values)-1))
}
