package interval

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// NumFeatures is the number of summary statistics computed per interval.
const NumFeatures = 3

// Features computes the mean, population standard deviation, and least
// squares slope of every series over every interval. The result has one row
// per series and NumFeatures*len(intervals) columns with the fixed column
// triplet [mean, std, slope] per interval in interval order. Pure function
// with no shared state, safe to invoke concurrently.
func Features(x [][]float64, intervals []Interval) *mat.Dense {
	features := mat.NewDense(len(x), NumFeatures*len(intervals), nil)
	for j, iv := range intervals {
		col := NumFeatures * j
		for i := 0; i < len(x); i++ {
			seg := x[i][iv.Start:iv.End]
			features.Set(i, col, stat.Mean(seg, nil))
			features.Set(i, col+1, stat.PopStdDev(seg, nil))
			features.Set(i, col+2, slope(seg))
		}
	}
	return features
}

// slope fits a least squares line of the segment against its index and
// returns the trend coefficient. Segments too short to define a trend get 0.
func slope(seg []float64) float64 {
	if len(seg) < 2 {
		return 0.0
	}
	idx := make([]float64, len(seg))
	for i := 0; i < len(idx); i++ {
		idx[i] = float64(i)
	}
	_, beta := stat.LinearRegression(idx, seg, nil, false)
	if math.IsNaN(beta) {
		return 0.0
	}
	return beta
}
