package tsforest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aouyang1/go-tsforest/learners"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlotCurves(t *testing.T) {
	x, y := smallPanel()

	seed := uint64(42)
	opt := NewDefaultOptions()
	opt.NumEstimators = 3
	opt.Seed = &seed

	f, err := New(learners.TreeTemplate{}, opt)
	require.NoError(t, err)
	require.NoError(t, f.Fit(x, y))

	path := filepath.Join(t.TempDir(), "curves.html")
	require.NoError(t, f.PlotCurves(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestPlotCurvesNotFitted(t *testing.T) {
	f, err := New(stubTemplate{}, nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "curves.html")
	assert.ErrorIs(t, f.PlotCurves(path), ErrNotFitted)
}
