package paneldata

import (
	"math"
	"math/rand/v2"
)

// GenerateWaveSeries returns a sinusoidal series with the given amplitude,
// period in timepoints, and phase offset.
func GenerateWaveSeries(length int, amp, period, phase float64) []float64 {
	y := make([]float64, 0, length)
	for i := 0; i < length; i++ {
		val := amp * math.Sin(2.0*math.Pi/period*float64(i)+phase)
		y = append(y, val)
	}
	return y
}

// GenerateTrendSeries returns a linearly trending series with the given
// intercept and per timepoint slope.
func GenerateTrendSeries(length int, intercept, slope float64) []float64 {
	y := make([]float64, 0, length)
	for i := 0; i < length; i++ {
		y = append(y, intercept+slope*float64(i))
	}
	return y
}

// AddNoise adds gaussian noise drawn from rng and scaled by noiseScale to the
// series in place, returning the series for chaining.
func AddNoise(rng *rand.Rand, y []float64, noiseScale float64) []float64 {
	for i := 0; i < len(y); i++ {
		y[i] += rng.NormFloat64() * noiseScale
	}
	return y
}

// GenerateTwoClassPanel builds a labeled panel alternating noisy sine series
// of class 0 with noisy trending series of class 1. Intended for tests,
// examples, and benchmarks.
func GenerateTwoClassPanel(rng *rand.Rand, numSeries, seriesLength int) ([][]float64, []int) {
	x := make([][]float64, numSeries)
	y := make([]int, numSeries)
	period := float64(seriesLength) / 2.0
	for i := 0; i < numSeries; i++ {
		if i%2 == 0 {
			x[i] = AddNoise(rng, GenerateWaveSeries(seriesLength, 1.0, period, 0.0), 0.1)
			continue
		}
		x[i] = AddNoise(rng, GenerateTrendSeries(seriesLength, -1.0, 2.0/float64(seriesLength)), 0.1)
		y[i] = 1
	}
	return x, y
}
