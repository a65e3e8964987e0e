package tsforest

import (
	"testing"

	"github.com/aouyang1/go-tsforest/interval"
	"github.com/aouyang1/go-tsforest/learners"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelRoundTrip(t *testing.T) {
	x, y := smallPanel()

	seed := uint64(42)
	opt := NewDefaultOptions()
	opt.NumEstimators = 5
	opt.Seed = &seed

	f, err := New(learners.TreeTemplate{}, opt)
	require.NoError(t, err)
	require.NoError(t, f.Fit(x, y))

	model, err := f.Model()
	require.NoError(t, err)
	assert.Equal(t, f.Classes(), model.Classes)
	assert.Equal(t, f.Intervals(), model.Intervals)
	require.Len(t, model.Trees, 5)

	data, err := json.Marshal(model)
	require.NoError(t, err)

	var decoded Model
	require.NoError(t, json.Unmarshal(data, &decoded))

	restored, err := NewFromModel(decoded)
	require.NoError(t, err)
	assert.Equal(t, f.Classes(), restored.Classes())
	assert.Equal(t, f.Intervals(), restored.Intervals())
	assert.Equal(t, f.SeriesLength(), restored.SeriesLength())
	assert.Equal(t, f.NumIntervals(), restored.NumIntervals())

	want, err := f.Predict(x)
	require.NoError(t, err)
	got, err := restored.Predict(x)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	wantCurves, err := f.TemporalCurves()
	require.NoError(t, err)
	gotCurves, err := restored.TemporalCurves()
	require.NoError(t, err)
	assert.Equal(t, wantCurves, gotCurves)
}

func TestNewFromModelCannotRefit(t *testing.T) {
	x, y := smallPanel()

	seed := uint64(42)
	opt := NewDefaultOptions()
	opt.NumEstimators = 3
	opt.Seed = &seed

	f, err := New(learners.TreeTemplate{}, opt)
	require.NoError(t, err)
	require.NoError(t, f.Fit(x, y))

	model, err := f.Model()
	require.NoError(t, err)

	// a restored forest has no base learner template and only supports
	// inference
	restored, err := NewFromModel(model)
	require.NoError(t, err)
	assert.ErrorIs(t, restored.Fit(x, y), ErrNoTemplate)

	predictions, err := restored.Predict(x)
	require.NoError(t, err)
	assert.Len(t, predictions, 4)
}

func TestNewFromModelErrors(t *testing.T) {
	testData := map[string]struct {
		model Model
		err   error
	}{
		"missing options": {
			Model{},
			ErrNoOptionsInModel,
		},
		"length mismatch": {
			Model{
				Options:   NewDefaultOptions(),
				Intervals: make([][]interval.Interval, 2),
				Trees:     make([]learners.TreeModel, 1),
			},
			ErrModelLenMismatch,
		},
		"invalid options": {
			Model{
				Options: &Options{NumEstimators: -1},
			},
			ErrNonPositiveEstimators,
		},
		"invalid tree": {
			Model{
				Options:   NewDefaultOptions(),
				Intervals: make([][]interval.Interval, 1),
				Trees:     []learners.TreeModel{{}},
			},
			learners.ErrNoModelNodes,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			_, err := NewFromModel(td.model)
			assert.ErrorIs(t, err, td.err)
		})
	}
}

func TestModelNotExportable(t *testing.T) {
	x, y := smallPanel()

	opt := NewDefaultOptions()
	opt.NumEstimators = 2

	f, err := New(stubTemplate{}, opt)
	require.NoError(t, err)
	require.NoError(t, f.Fit(x, y))

	_, err = f.Model()
	assert.ErrorIs(t, err, ErrNotExportable)
}
