// Package report renders a quick HTML summary of an assembled dataset using
// go-echarts: a HR/HRV scatter split by label and per-feature group means.
// It is a debugging aid for eyeballing class separation, not part of the
// training output.
package report

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/stat"

	"github.com/wearlab-data/stress.report/internal/dataset"
	"github.com/wearlab-data/stress.report/internal/features"
)

// WriteHTML renders the dataset report to path.
func WriteHTML(path string, ds *dataset.Dataset) error {
	page := components.NewPage()
	page.AddCharts(hrScatter(ds), featureMeans(ds))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// hrScatter plots HR mean against SDNN, one series per class.
func hrScatter(ds *dataset.Dataset) *charts.Scatter {
	var baseline, stress []opts.ScatterData
	for _, r := range ds.Rows {
		d := opts.ScatterData{Value: []interface{}{r.Features.HRMeanBPM, r.Features.HRVSDNNms}}
		if r.Label == 1 {
			stress = append(stress, d)
		} else {
			baseline = append(baseline, d)
		}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Stress dataset", Width: "900px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "HR mean vs SDNN",
			Subtitle: fmt.Sprintf("rows=%d baseline=%d stress=%d", len(ds.Rows), len(baseline), len(stress)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "HR mean (bpm)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "SDNN (ms)"}),
	)
	scatter.AddSeries("baseline", baseline, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))
	scatter.AddSeries("stress", stress, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))
	return scatter
}

// featureMeans renders per-feature class means side by side.
func featureMeans(ds *dataset.Dataset) *charts.Bar {
	baselineMeans := make([]opts.BarData, len(features.Names))
	stressMeans := make([]opts.BarData, len(features.Names))
	for j := range features.Names {
		var base, stress []float64
		for _, r := range ds.Rows {
			v := r.Features.Row()[j]
			if r.Label == 1 {
				stress = append(stress, v)
			} else {
				base = append(base, v)
			}
		}
		baselineMeans[j] = opts.BarData{Value: meanOrZero(base)}
		stressMeans[j] = opts.BarData{Value: meanOrZero(stress)}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Feature means by class"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(features.Names)
	bar.AddSeries("baseline", baselineMeans)
	bar.AddSeries("stress", stressMeans)
	return bar
}

func meanOrZero(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}
