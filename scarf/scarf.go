package scarf

import (
	"fmt"
	"github.com/gazelab/gazeline/gaze"
	"gonum.org/v1/plot"
)

// NewRow extracts runs from one labeling, resolves every run's color, and
// builds the row plotter. The first shape, bounds, or palette failure
// aborts with no partial state; a valid row carries exactly one band per
// run.
func NewRow(times []float64, labels []gaze.EventLabel, pal Palette, yMin, yMax float64) (*Row, error) {
	if yMin >= yMax {
		return nil, &BoundsError{YMin: yMin, YMax: yMax}
	}
	runs, err := gaze.Runs(times, labels)
	if err != nil {
		return nil, err
	}
	bands := make([]Band, 0, len(runs))
	for _, run := range runs {
		c, err := pal.Resolve(run.Label)
		if err != nil {
			return nil, err
		}
		bands = append(bands, Band{Start: run.Start, End: run.End, Color: c})
	}
	return &Row{Bands: bands, YMin: yMin, YMax: yMax}, nil
}

// Figure returns an empty scarfplot figure with the shared time axis.
func Figure(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time [ms]"
	return p
}

// AppendRow composites one labeling onto p as a scarf row between yMin and
// yMax. A nil p starts a fresh figure. On failure the figure comes back
// untouched; otherwise the same figure comes back with one row appended,
// ready for further chaining. Rows appended with disjoint vertical bounds
// stack independently on the shared time axis.
func AppendRow(p *plot.Plot, times []float64, labels []gaze.EventLabel, pal Palette, yMin, yMax float64) (*plot.Plot, error) {
	row, err := NewRow(times, labels, pal, yMin, yMax)
	if err != nil {
		return p, err
	}
	if p == nil {
		p = Figure("")
	}
	p.Add(row)
	return p, nil
}

// RowSpec names one labeling to stack.
type RowSpec struct {
	Name   string
	Times  []float64
	Labels []gaze.EventLabel
}

const rowHalfHeight = 0.4

// StackRows builds a complete scarfplot: one unit-spaced row per labeling,
// bottom to top, with row names on the vertical axis. Every row is
// validated before the figure is assembled.
func StackRows(title string, specs []RowSpec, pal Palette) (*plot.Plot, error) {
	rows := make([]*Row, len(specs))
	for i, spec := range specs {
		row, err := NewRow(spec.Times, spec.Labels, pal, float64(i)-rowHalfHeight, float64(i)+rowHalfHeight)
		if err != nil {
			return nil, fmt.Errorf("row %q: %w", spec.Name, err)
		}
		rows[i] = row
	}
	p := Figure(title)
	if len(specs) == 0 {
		return p, nil
	}
	names := make([]string, len(specs))
	for i, row := range rows {
		p.Add(row)
		names[i] = specs[i].Name
	}
	p.NominalY(names...)
	return p, nil
}
