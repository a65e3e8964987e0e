package tsforest

import (
	"fmt"

	"github.com/aouyang1/go-tsforest/interval"
)

// TemporalCurves holds the temporal importance curves of a fitted forest:
// three feature importance curves and one curve counting how many member
// intervals cover each timepoint. All four slices have the trained series
// length.
type TemporalCurves struct {
	Mean     []float64 `json:"mean"`
	Stdev    []float64 `json:"stdev"`
	Slope    []float64 `json:"slope"`
	Coverage []float64 `json:"coverage"`
}

// TemporalCurves folds every member's per interval feature importances back
// onto the original time axis following section 4.4 of Deng et al. Curves are
// raw sums over overlapping interval memberships with no normalization
// applied; divide by Coverage for a per timepoint average. The computation is
// idempotent and only needs the fitted members, not the training panel.
func (f *Forest) TemporalCurves() (TemporalCurves, error) {
	if f == nil {
		return TemporalCurves{}, ErrUninitializedForest
	}
	if !f.fitted {
		return TemporalCurves{}, ErrNotFitted
	}

	curves := TemporalCurves{
		Mean:     make([]float64, f.seriesLength),
		Stdev:    make([]float64, f.seriesLength),
		Slope:    make([]float64, f.seriesLength),
		Coverage: make([]float64, f.seriesLength),
	}

	for m, estimator := range f.estimators {
		importances := estimator.FeatureImportances()
		if len(importances) < interval.NumFeatures*len(f.intervals[m]) {
			return TemporalCurves{}, fmt.Errorf("ensemble member %d, %w", m, ErrNoFeatureImportances)
		}
		for j, iv := range f.intervals[m] {
			col := interval.NumFeatures * j
			for t := iv.Start; t < iv.End; t++ {
				curves.Coverage[t] += 1.0
				curves.Mean[t] += importances[col]
				curves.Stdev[t] += importances[col+1]
				curves.Slope[t] += importances[col+2]
			}
		}
	}
	return curves, nil
}
