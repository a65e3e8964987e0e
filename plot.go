package tsforest

import (
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// LineCurves generates an echart multi-line chart of the four temporal
// importance curves indexed by timepoint.
func LineCurves(title string, curves TemporalCurves) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	timepoints := make([]int, len(curves.Coverage))
	for i := range timepoints {
		timepoints[i] = i
	}

	line.SetXAxis(timepoints).
		AddSeries("Mean", toLineData(curves.Mean)).
		AddSeries("Stdev", toLineData(curves.Stdev)).
		AddSeries("Slope", toLineData(curves.Slope)).
		AddSeries("Coverage", toLineData(curves.Coverage))
	return line
}

func toLineData(y []float64) []opts.LineData {
	lineData := make([]opts.LineData, 0, len(y))
	for i := 0; i < len(y); i++ {
		lineData = append(lineData, opts.LineData{Value: y[i]})
	}
	return lineData
}

// PlotCurves uses the Apache Echarts library to generate an html file showing
// the temporal importance curves of a fitted forest.
func (f *Forest) PlotCurves(path string) error {
	curves, err := f.TemporalCurves()
	if err != nil {
		return err
	}

	page := components.NewPage()
	page.AddCharts(
		LineCurves("Temporal Importance Curves", curves),
	)
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	return page.Render(io.MultiWriter(file))
}
