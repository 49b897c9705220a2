// Package report renders an HTML comparison report for a trial's
// labelings: pairwise agreement plus per-class event counts and durations.
package report

import (
	"fmt"
	"github.com/gazelab/gazeline/compare"
	"github.com/gazelab/gazeline/gaze"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"io"
	"math"
)

// Labeling is one named per-sample labeling of a trial.
type Labeling struct {
	Name   string
	Labels []gaze.EventLabel
}

// Report holds the computed comparison tables behind the charts.
type Report struct {
	Trial         string
	Names         []string
	Kappa         [][]float64
	Classes       []gaze.EventLabel
	EventCounts   [][]int
	MeanDurations [][]float64
}

// Build computes the pairwise kappa matrix and per-class run statistics
// for a set of labelings over one trial's timestamps.
func Build(trial string, times []float64, labelings []Labeling) (*Report, error) {
	if len(labelings) == 0 {
		return nil, fmt.Errorf("trial %s: nothing to compare", trial)
	}
	if len(times) == 0 {
		return nil, fmt.Errorf("trial %s has no samples", trial)
	}
	rep := &Report{Trial: trial}
	for _, labeling := range labelings {
		rep.Names = append(rep.Names, labeling.Name)
	}

	rep.Kappa = make([][]float64, len(labelings))
	for i := range labelings {
		rep.Kappa[i] = make([]float64, len(labelings))
		for j := range labelings {
			kappa, err := compare.CohenKappa(labelings[i].Labels, labelings[j].Labels)
			if err != nil {
				return nil, fmt.Errorf("comparing %s with %s: %v",
					labelings[i].Name, labelings[j].Name, err)
			}
			rep.Kappa[i][j] = kappa
		}
	}

	runsPer := make([][]gaze.Run, len(labelings))
	present := make(map[gaze.EventLabel]bool)
	for i, labeling := range labelings {
		runs, err := gaze.Runs(times, labeling.Labels)
		if err != nil {
			return nil, fmt.Errorf("labeling %s: %v", labeling.Name, err)
		}
		runsPer[i] = runs
		for _, run := range runs {
			if run.Label != gaze.Undefined {
				present[run.Label] = true
			}
		}
	}
	for _, label := range gaze.Labels() {
		if present[label] {
			rep.Classes = append(rep.Classes, label)
		}
	}

	rep.EventCounts = make([][]int, len(labelings))
	rep.MeanDurations = make([][]float64, len(labelings))
	for i, runs := range runsPer {
		counts := make([]int, len(rep.Classes))
		sums := make([]float64, len(rep.Classes))
		for _, run := range runs {
			for k, class := range rep.Classes {
				if run.Label == class {
					counts[k] += 1
					sums[k] += run.Duration()
				}
			}
		}
		means := make([]float64, len(rep.Classes))
		for k := range sums {
			if counts[k] > 0 {
				means[k] = sums[k] / float64(counts[k])
			}
		}
		rep.EventCounts[i] = counts
		rep.MeanDurations[i] = means
	}
	return rep, nil
}

// Write renders the report as a standalone HTML page.
func Write(w io.Writer, rep *Report) error {
	page := components.NewPage()
	page.AddCharts(kappaHeatmap(rep), countBars(rep), durationBars(rep))
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render report: %v", err)
	}
	return nil
}

func kappaHeatmap(rep *Report) *charts.HeatMap {
	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Cohen's kappa, trial %s", rep.Trial),
			Subtitle: "sample-level agreement between labelings",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type:      "category",
			Data:      rep.Names,
			SplitArea: &opts.SplitArea{Show: true},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:      "category",
			Data:      rep.Names,
			SplitArea: &opts.SplitArea{Show: true},
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: true,
			Min:        -1,
			Max:        1,
			InRange: &opts.VisualMapInRange{
				Color: []string{"#d94e5d", "#eac736", "#50a3ba"},
			},
		}),
	)
	var cells []opts.HeatMapData
	for i := range rep.Kappa {
		for j, kappa := range rep.Kappa[i] {
			cells = append(cells, opts.HeatMapData{
				Value: [3]interface{}{i, j, round3(kappa)},
			})
		}
	}
	hm.AddSeries("kappa", cells)
	return hm
}

func countBars(rep *Report) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Events per class"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)
	bar.SetXAxis(classNames(rep.Classes))
	for i, name := range rep.Names {
		data := make([]opts.BarData, len(rep.Classes))
		for k, count := range rep.EventCounts[i] {
			data[k] = opts.BarData{Value: count}
		}
		bar.AddSeries(name, data)
	}
	return bar
}

func durationBars(rep *Report) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Mean event duration [ms]"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)
	bar.SetXAxis(classNames(rep.Classes))
	for i, name := range rep.Names {
		data := make([]opts.BarData, len(rep.Classes))
		for k, mean := range rep.MeanDurations[i] {
			data[k] = opts.BarData{Value: round3(mean)}
		}
		bar.AddSeries(name, data)
	}
	return bar
}

func classNames(classes []gaze.EventLabel) []string {
	names := make([]string, len(classes))
	for i, class := range classes {
		names[i] = class.String()
	}
	return names
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
