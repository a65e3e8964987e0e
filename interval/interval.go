// Package interval implements the randomized interval sampling and per
// interval summary statistics used to featurize a panel of series.
package interval

import "math/rand/v2"

// Interval is a half open [Start, End) sub-range of timepoints within a
// series.
type Interval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of timepoints covered by the interval.
func (iv Interval) Len() int {
	return iv.End - iv.Start
}

// Sample generates numIntervals random intervals over a series of
// seriesLength timepoints. Each start is drawn uniformly from
// [0, seriesLength-minLength) and a candidate length from
// [0, seriesLength-start-1), clamped up to minLength. The range bounds match
// the reference algorithm of Deng et al. exactly so that a fixed seed
// reproduces the same interval sets.
func Sample(rng *rand.Rand, seriesLength, numIntervals, minLength int) []Interval {
	intervals := make([]Interval, numIntervals)
	for j := 0; j < numIntervals; j++ {
		start := intN(rng, seriesLength-minLength)
		length := intN(rng, seriesLength-start-1)
		if length < minLength {
			length = minLength
		}
		intervals[j] = Interval{
			Start: start,
			End:   start + length,
		}
	}
	return intervals
}

// intN draws from [0, n) treating an empty range as 0. The empty range is
// only reachable when the minimum interval length has been clamped to the
// full series length.
func intN(rng *rand.Rand, n int) int {
	if n < 1 {
		return 0
	}
	return rng.IntN(n)
}
