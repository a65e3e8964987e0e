package paneldata

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDataset(t *testing.T) {
	testData := map[string]struct {
		x   [][]float64
		y   []int
		err error
	}{
		"valid": {
			[][]float64{{1, 2}, {3, 4}},
			[]int{0, 1},
			nil,
		},
		"empty panel": {
			nil,
			nil,
			ErrNoPanelData,
		},
		"empty series": {
			[][]float64{{}, {}},
			[]int{0, 1},
			ErrNoPanelData,
		},
		"ragged panel": {
			[][]float64{{1, 2}, {3}},
			[]int{0, 1},
			ErrRaggedPanel,
		},
		"label mismatch": {
			[][]float64{{1, 2}},
			[]int{0, 1},
			ErrLabelLenMismatch,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			ds, err := NewDataset(td.x, td.y)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(td.x), ds.NumSeries())
			assert.Equal(t, len(td.x[0]), ds.SeriesLength())
		})
	}
}

func TestNewDatasetCopiesInput(t *testing.T) {
	x := [][]float64{{1, 2}, {3, 4}}
	y := []int{0, 1}

	ds, err := NewDataset(x, y)
	require.NoError(t, err)

	x[0][0] = 99
	y[0] = 99
	assert.Equal(t, 1.0, ds.X[0][0])
	assert.Equal(t, 0, ds.Y[0])
}

func TestDatasetCopy(t *testing.T) {
	ds, err := NewDataset([][]float64{{1, 2}, {3, 4}}, []int{0, 1})
	require.NoError(t, err)

	dsCopy := ds.Copy()
	dsCopy.X[0][0] = 99
	dsCopy.Y[0] = 99
	assert.Equal(t, 1.0, ds.X[0][0])
	assert.Equal(t, 0, ds.Y[0])
}

func TestClasses(t *testing.T) {
	testData := map[string]struct {
		y        []int
		expected []int
	}{
		"unsorted with duplicates": {[]int{2, 0, 1, 2, 0}, []int{0, 1, 2}},
		"single class":             {[]int{4, 4, 4}, []int{4}},
		"negative labels":          {[]int{-1, 1, -1}, []int{-1, 1}},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, td.expected, Classes(td.y))
		})
	}
}

func TestGenerateTwoClassPanel(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 11))
	x, y := GenerateTwoClassPanel(rng, 6, 32)

	require.Len(t, x, 6)
	require.Len(t, y, 6)
	for i := range x {
		assert.Len(t, x[i], 32)
		assert.Equal(t, i%2, y[i])
	}

	// reproducible for a fixed seed
	x2, y2 := GenerateTwoClassPanel(rand.New(rand.NewPCG(11, 11)), 6, 32)
	assert.Equal(t, x, x2)
	assert.Equal(t, y, y2)
}
