// Package paneldata provides the labeled panel dataset consumed by the time
// series forest along with helpers to generate synthetic panels.
package paneldata

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrNoPanelData      = errors.New("no panel data")
	ErrRaggedPanel      = errors.New("panel series have different lengths")
	ErrLabelLenMismatch = errors.New("labels have a different length than panel")
)

// Dataset represents a panel of fixed length series with one class label per
// series. X holds one series per row and Y is parallel-indexed to X.
type Dataset struct {
	X [][]float64
	Y []int
}

// NewDataset returns an instance of a Dataset after validating that the panel
// is non-empty, rectangular, and parallel-indexed with its labels. The input
// slices are copied so the caller retains ownership.
func NewDataset(x [][]float64, y []int) (*Dataset, error) {
	if len(x) == 0 {
		return nil, ErrNoPanelData
	}
	if len(y) != len(x) {
		return nil, fmt.Errorf(
			"panel has %d series, but labels has a length of %d, %w",
			len(x), len(y), ErrLabelLenMismatch,
		)
	}

	seriesLength := len(x[0])
	if seriesLength == 0 {
		return nil, ErrNoPanelData
	}
	for i := 0; i < len(x); i++ {
		if len(x[i]) != seriesLength {
			return nil, fmt.Errorf(
				"series %d has a length of %d instead of %d, %w",
				i, len(x[i]), seriesLength, ErrRaggedPanel,
			)
		}
	}

	xPanel := make([][]float64, len(x))
	for i := 0; i < len(x); i++ {
		series := make([]float64, seriesLength)
		copy(series, x[i])
		xPanel[i] = series
	}
	yLabels := make([]int, len(y))
	copy(yLabels, y)

	ds := &Dataset{
		X: xPanel,
		Y: yLabels,
	}
	return ds, nil
}

func (d *Dataset) Copy() *Dataset {
	xPanel := make([][]float64, len(d.X))
	for i := 0; i < len(d.X); i++ {
		series := make([]float64, len(d.X[i]))
		copy(series, d.X[i])
		xPanel[i] = series
	}
	yLabels := make([]int, len(d.Y))
	copy(yLabels, d.Y)
	return &Dataset{
		X: xPanel,
		Y: yLabels,
	}
}

// NumSeries returns the number of series in the panel.
func (d *Dataset) NumSeries() int {
	return len(d.X)
}

// SeriesLength returns the shared length of every series in the panel.
func (d *Dataset) SeriesLength() int {
	if len(d.X) == 0 {
		return 0
	}
	return len(d.X[0])
}

// Classes returns the sorted distinct class labels found in y.
func Classes(y []int) []int {
	distinct := make(map[int]struct{}, len(y))
	for _, label := range y {
		distinct[label] = struct{}{}
	}
	classes := make([]int, 0, len(distinct))
	for label := range distinct {
		classes = append(classes, label)
	}
	slices.Sort(classes)
	return classes
}
