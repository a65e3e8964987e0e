// Package tsforest implements a time series forest classifier: a bagged
// ensemble of decision trees where each tree is trained on the mean, standard
// deviation, and slope of randomly sampled intervals of the input series,
// following Deng et al., "A time series forest for classification and feature
// extraction", Information Sciences, 2013.
package tsforest

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/aouyang1/go-tsforest/interval"
	"github.com/aouyang1/go-tsforest/learners"
	"github.com/aouyang1/go-tsforest/paneldata"
)

var (
	ErrUninitializedForest  = errors.New("uninitialized forest")
	ErrNoTemplate           = errors.New("no base learner template")
	ErrNotFitted            = errors.New("forest has not been fitted yet")
	ErrShortSeries          = errors.New("series length must be at least 2")
	ErrSeriesLenMismatch    = errors.New("series length does not match training series length")
	ErrNoFeatureImportances = errors.New("ensemble member has no feature importances")
)

// Forest fits an ensemble of base learners on randomized interval features
// and can be used to classify series panels
type Forest struct {
	opt      *Options
	template learners.Template

	classes           []int
	seriesLength      int
	numIntervals      int
	minIntervalLength int
	intervals         [][]interval.Interval
	estimators        []learners.Learner
	fitted            bool
}

// New creates a new instance of a Forest using the provided base learner
// template and options. If no options are provided a default is used.
func New(template learners.Template, opt *Options) (*Forest, error) {
	if template == nil {
		return nil, ErrNoTemplate
	}
	opt, err := opt.Validate()
	if err != nil {
		return nil, fmt.Errorf("unable to validate forest options, %w", err)
	}

	f := &Forest{
		opt:      opt,
		template: template,
	}
	return f, nil
}

// Fit builds the forest from a panel of equal length series with one class
// label per series. Interval sets and member seeds are all drawn from a
// single seeded generator before any member is dispatched, so a fixed seed
// reproduces the same forest regardless of parallelization. A failed fit
// leaves the forest in its previous not-fitted state.
func (f *Forest) Fit(x [][]float64, y []int) error {
	if f == nil {
		return ErrUninitializedForest
	}
	if f.template == nil {
		return ErrNoTemplate
	}

	ds, err := paneldata.NewDataset(x, y)
	if err != nil {
		return fmt.Errorf("unable to create training dataset, %w", err)
	}

	seriesLength := ds.SeriesLength()
	if seriesLength < 2 {
		return ErrShortSeries
	}

	numIntervals := int(math.Sqrt(float64(seriesLength)))
	if numIntervals == 0 {
		numIntervals = 1
	}
	minIntervalLength := f.opt.MinIntervalLength
	if seriesLength < minIntervalLength {
		minIntervalLength = seriesLength
	}

	rng := f.newRNG()

	// all randomness is consumed sequentially here so worker scheduling
	// cannot affect the result
	planned := f.opt.NumEstimators
	intervals := make([][]interval.Interval, planned)
	for i := range intervals {
		intervals[i] = interval.Sample(rng, seriesLength, numIntervals, minIntervalLength)
	}
	seeds := make([]uint64, planned)
	for i := range seeds {
		seeds[i] = rng.Uint64()
	}

	maxMembers := planned
	if f.opt.TimeLimit > 0 && f.opt.ContractMaxEstimators > 0 && f.opt.ContractMaxEstimators < maxMembers {
		maxMembers = f.opt.ContractMaxEstimators
	}

	parallelization := f.opt.Parallelization
	if parallelization < 1 {
		parallelization = 1
	}

	estimators := make([]learners.Learner, planned)
	fitErrs := make([]error, planned)

	start := time.Now()
	sem := make(chan struct{}, parallelization)
	var wg sync.WaitGroup

	var dispatched int
	for i := 0; i < maxMembers; i++ {
		if f.opt.TimeLimit > 0 && i > 0 && time.Since(start) > f.opt.TimeLimit {
			slog.Warn("time limit reached before target ensemble size",
				"dispatched", i,
				"target", planned,
				"elapsed", time.Since(start).String(),
			)
			break
		}
		sem <- struct{}{}
		wg.Add(1)
		go func(member int) {
			defer func() {
				wg.Done()
				<-sem
			}()
			estimators[member], fitErrs[member] = f.fitMember(ds, intervals[member], seeds[member])
		}(i)
		dispatched++
	}
	wg.Wait()

	for i := 0; i < dispatched; i++ {
		if fitErrs[i] != nil {
			return fmt.Errorf("unable to fit ensemble member %d, %w", i, fitErrs[i])
		}
	}

	f.classes = paneldata.Classes(ds.Y)
	f.seriesLength = seriesLength
	f.numIntervals = numIntervals
	f.minIntervalLength = minIntervalLength
	f.intervals = intervals[:dispatched]
	f.estimators = estimators[:dispatched]
	f.fitted = true
	return nil
}

func (f *Forest) newRNG() *rand.Rand {
	if f.opt.Seed != nil {
		return rand.New(rand.NewPCG(*f.opt.Seed, *f.opt.Seed))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// fitMember binds one interval set and one cloned base learner to the
// training data producing a single fitted ensemble member. Each call is
// independent and owns its private clone and feature matrix, making it safe
// to run concurrently across members.
func (f *Forest) fitMember(ds *paneldata.Dataset, ivs []interval.Interval, seed uint64) (learners.Learner, error) {
	clone := f.template.Clone(seed)
	features := interval.Features(ds.X, ivs)
	if err := clone.Fit(features, ds.Y); err != nil {
		return nil, err
	}
	return clone, nil
}

// Predict classifies each series of the input panel by majority vote across
// all ensemble members, re-extracting features with each member's own
// interval set. Ties break towards the lowest class.
func (f *Forest) Predict(x [][]float64) ([]int, error) {
	votes, err := f.memberVotes(x)
	if err != nil {
		return nil, err
	}

	predictions := make([]int, len(x))
	for i, rowVotes := range votes {
		best := f.classes[0]
		bestCnt := rowVotes[best]
		for _, class := range f.classes[1:] {
			if rowVotes[class] > bestCnt {
				best = class
				bestCnt = rowVotes[class]
			}
		}
		predictions[i] = best
	}
	return predictions, nil
}

// PredictProba returns the fraction of ensemble members voting for each
// class, one row per input series with columns ordered by Classes.
func (f *Forest) PredictProba(x [][]float64) ([][]float64, error) {
	votes, err := f.memberVotes(x)
	if err != nil {
		return nil, err
	}

	proba := make([][]float64, len(x))
	for i, rowVotes := range votes {
		proba[i] = make([]float64, len(f.classes))
		for j, class := range f.classes {
			proba[i][j] = float64(rowVotes[class]) / float64(len(f.estimators))
		}
	}
	return proba, nil
}

func (f *Forest) memberVotes(x [][]float64) ([]map[int]int, error) {
	if f == nil {
		return nil, ErrUninitializedForest
	}
	if !f.fitted {
		return nil, ErrNotFitted
	}
	if len(x) == 0 {
		return nil, paneldata.ErrNoPanelData
	}
	for i := 0; i < len(x); i++ {
		if len(x[i]) != f.seriesLength {
			return nil, fmt.Errorf(
				"series %d has a length of %d instead of %d, %w",
				i, len(x[i]), f.seriesLength, ErrSeriesLenMismatch,
			)
		}
	}

	votes := make([]map[int]int, len(x))
	for i := range votes {
		votes[i] = make(map[int]int, len(f.classes))
	}
	for m, estimator := range f.estimators {
		features := interval.Features(x, f.intervals[m])
		predictions, err := estimator.Predict(features)
		if err != nil {
			return nil, fmt.Errorf("unable to predict with ensemble member %d, %w", m, err)
		}
		for i, p := range predictions {
			votes[i][p]++
		}
	}
	return votes, nil
}

// FittedParams is a read-only snapshot of the fitted forest state.
type FittedParams struct {
	Classes    []int
	Intervals  [][]interval.Interval
	Estimators []learners.Learner
}

// FittedParams returns a snapshot of the derived classes, per member interval
// sets, and fitted estimators. Fails with ErrNotFitted before a successful
// fit.
func (f *Forest) FittedParams() (FittedParams, error) {
	if f == nil {
		return FittedParams{}, ErrUninitializedForest
	}
	if !f.fitted {
		return FittedParams{}, ErrNotFitted
	}
	p := FittedParams{
		Classes:    f.Classes(),
		Intervals:  f.Intervals(),
		Estimators: f.Estimators(),
	}
	return p, nil
}

// Classes returns the sorted distinct class labels derived at fit time
func (f *Forest) Classes() []int {
	if f == nil {
		return nil
	}
	classes := make([]int, len(f.classes))
	copy(classes, f.classes)
	return classes
}

// Estimators returns the fitted ensemble members in member order. The
// resulting length may be less than the configured number of estimators when
// fitting under a time limit.
func (f *Forest) Estimators() []learners.Learner {
	if f == nil {
		return nil
	}
	estimators := make([]learners.Learner, len(f.estimators))
	copy(estimators, f.estimators)
	return estimators
}

// Intervals returns each member's interval set in member order
func (f *Forest) Intervals() [][]interval.Interval {
	if f == nil {
		return nil
	}
	intervals := make([][]interval.Interval, len(f.intervals))
	for i, ivs := range f.intervals {
		ivsCopy := make([]interval.Interval, len(ivs))
		copy(ivsCopy, ivs)
		intervals[i] = ivsCopy
	}
	return intervals
}

// SeriesLength returns the series length the forest was trained on
func (f *Forest) SeriesLength() int {
	if f == nil {
		return 0
	}
	return f.seriesLength
}

// NumIntervals returns the number of intervals sampled per ensemble member,
// defaulting to the floor of the square root of the series length
func (f *Forest) NumIntervals() int {
	if f == nil {
		return 0
	}
	return f.numIntervals
}
