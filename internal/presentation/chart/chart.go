// Package chart renders solver convergence as an HTML line chart.
package chart

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Series is one named sequence of per-sweep deltas.
type Series struct {
	Name   string
	Deltas []float64
}

// Convergence writes an HTML page plotting the delta of every sweep, one line per series.
func Convergence(w io.Writer, title string, series ...Series) error {
	var sweeps int
	for _, s := range series {
		sweeps = max(sweeps, len(s.Deltas))
	}
	if sweeps == 0 {
		return fmt.Errorf("no sweeps to plot")
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: "max value change per sweep",
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "delta",
			Type: "log",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "sweep",
		}),
	)

	xs := make([]string, sweeps)
	for i := range xs {
		xs[i] = strconv.Itoa(i + 1)
	}
	line.SetXAxis(xs)

	for _, s := range series {
		items := make([]opts.LineData, 0, len(s.Deltas))
		for _, d := range s.Deltas {
			items = append(items, opts.LineData{Value: d})
		}
		line.AddSeries(s.Name, items)
	}

	page := components.NewPage()
	page.AddCharts(line)
	return page.Render(w)
}
