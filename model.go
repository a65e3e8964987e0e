package tsforest

import (
	"errors"
	"fmt"

	"github.com/aouyang1/go-tsforest/interval"
	"github.com/aouyang1/go-tsforest/learners"
)

var (
	ErrNoOptionsInModel = errors.New("no options set in model")
	ErrNotExportable    = errors.New("ensemble member does not support model export")
	ErrModelLenMismatch = errors.New("model intervals and trees have different lengths")
)

// Model is a serializable representation of a fitted forest. This can be used
// to initialize a new Forest for immediate predictions skipping the training
// step.
type Model struct {
	Options      *Options              `json:"options"`
	Classes      []int                 `json:"classes"`
	SeriesLength int                   `json:"series_length"`
	NumIntervals int                   `json:"num_intervals"`
	Intervals    [][]interval.Interval `json:"intervals"`
	Trees        []learners.TreeModel  `json:"trees"`
}

// Model generates a serializable representation of the fit options, derived
// classes, per member interval sets, and fitted trees. Every ensemble member
// must support model export.
func (f *Forest) Model() (Model, error) {
	if f == nil {
		return Model{}, ErrUninitializedForest
	}
	if !f.fitted {
		return Model{}, ErrNotFitted
	}

	trees := make([]learners.TreeModel, 0, len(f.estimators))
	for i, estimator := range f.estimators {
		exportable, ok := estimator.(learners.Exportable)
		if !ok {
			return Model{}, fmt.Errorf("ensemble member %d, %w", i, ErrNotExportable)
		}
		tree, err := exportable.Model()
		if err != nil {
			return Model{}, fmt.Errorf("unable to export ensemble member %d, %w", i, err)
		}
		trees = append(trees, tree)
	}

	optCopy := *f.opt
	m := Model{
		Options:      &optCopy,
		Classes:      f.Classes(),
		SeriesLength: f.seriesLength,
		NumIntervals: f.numIntervals,
		Intervals:    f.Intervals(),
		Trees:        trees,
	}
	return m, nil
}

// NewFromModel creates a new instance of Forest from a pre-existing model.
// This should be generated from a previous forest call to Model(). The forest
// can be used for inference immediately and does not need to be trained
// again. The model does not record the base learner template, so a restored
// forest cannot be refit; use New for training.
func NewFromModel(model Model) (*Forest, error) {
	if model.Options == nil {
		return nil, ErrNoOptionsInModel
	}
	if len(model.Intervals) != len(model.Trees) {
		return nil, fmt.Errorf(
			"model has %d interval sets and %d trees, %w",
			len(model.Intervals), len(model.Trees), ErrModelLenMismatch,
		)
	}
	opt, err := model.Options.Validate()
	if err != nil {
		return nil, fmt.Errorf("unable to validate model options, %w", err)
	}

	estimators := make([]learners.Learner, len(model.Trees))
	for i, tree := range model.Trees {
		estimator, err := learners.NewTreeFromModel(tree)
		if err != nil {
			return nil, fmt.Errorf("unable to restore ensemble member %d, %w", i, err)
		}
		estimators[i] = estimator
	}

	intervals := make([][]interval.Interval, len(model.Intervals))
	for i, ivs := range model.Intervals {
		ivsCopy := make([]interval.Interval, len(ivs))
		copy(ivsCopy, ivs)
		intervals[i] = ivsCopy
	}
	classes := make([]int, len(model.Classes))
	copy(classes, model.Classes)

	f := &Forest{
		opt:          opt,
		classes:      classes,
		seriesLength: model.SeriesLength,
		numIntervals: model.NumIntervals,
		intervals:    intervals,
		estimators:   estimators,
		fitted:       true,
	}
	return f, nil
}
