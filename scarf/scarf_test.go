package scarf

import (
	"bytes"
	"errors"
	"github.com/gazelab/gazeline/gaze"
	"gonum.org/v1/plot/vg"
	"math"
	"testing"
)

func workedExample() ([]float64, []gaze.EventLabel) {
	return []float64{0, 10, 20, 30, 40},
		[]gaze.EventLabel{gaze.Fixation, gaze.Fixation, gaze.Saccade, gaze.Saccade, gaze.Fixation}
}

func TestNewRowBandsMatchRuns(t *testing.T) {
	times, labels := workedExample()
	pal := DefaultPalette()
	row, err := NewRow(times, labels, pal, 0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	runs, err := gaze.Runs(times, labels)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(row.Bands) != len(runs) {
		t.Fatalf("wrong band count: %d instead of %d", len(row.Bands), len(runs))
	}
	for i, band := range row.Bands {
		if band.Start != runs[i].Start || band.End != runs[i].End {
			t.Errorf("band %d spans [%v, %v] instead of [%v, %v]",
				i, band.Start, band.End, runs[i].Start, runs[i].End)
		}
		if band.Color != pal[runs[i].Label] {
			t.Errorf("band %d carries color %v instead of the palette entry %v for %v",
				i, band.Color, pal[runs[i].Label], runs[i].Label)
		}
	}
}

func TestNewRowEmptySeries(t *testing.T) {
	row, err := NewRow(nil, nil, DefaultPalette(), 0, 1)
	if err != nil {
		t.Fatalf("empty input should not fail: %v", err)
	}
	if len(row.Bands) != 0 {
		t.Errorf("empty input should produce no bands, got %d", len(row.Bands))
	}
}

func TestNewRowInvalidBounds(t *testing.T) {
	times, labels := workedExample()
	for _, bounds := range [][2]float64{{1, 1}, {2, 1}} {
		_, err := NewRow(times, labels, DefaultPalette(), bounds[0], bounds[1])
		if err == nil {
			t.Fatalf("bounds (%v, %v) should be rejected", bounds[0], bounds[1])
		}
		var be *BoundsError
		if !errors.As(err, &be) {
			t.Fatalf("expected a bounds error, got %v", err)
		}
		if be.YMin != bounds[0] || be.YMax != bounds[1] {
			t.Errorf("bounds error carries wrong values: %v", be)
		}
	}
}

func TestNewRowUnmappedLabel(t *testing.T) {
	times, labels := workedExample()
	pal := Palette{gaze.Fixation: {0x1F, 0x78, 0xB4, 255}}
	_, err := NewRow(times, labels, pal, 0, 1)
	var unmapped *UnmappedLabelError
	if !errors.As(err, &unmapped) {
		t.Fatalf("expected an unmapped label error, got %v", err)
	}
	if unmapped.Label != gaze.Saccade {
		t.Errorf("error names the wrong label: %v", unmapped.Label)
	}
}

func TestNewRowShapeMismatch(t *testing.T) {
	_, err := NewRow([]float64{0, 10}, []gaze.EventLabel{gaze.Fixation}, DefaultPalette(), 0, 1)
	var shape *gaze.ShapeError
	if !errors.As(err, &shape) {
		t.Fatalf("expected a shape error, got %v", err)
	}
}

func TestAppendRowChainsAndStacks(t *testing.T) {
	times, labels := workedExample()
	pal := DefaultPalette()
	p, err := AppendRow(nil, times, labels, pal, 0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p == nil {
		t.Fatal("a nil figure should be replaced with a fresh one")
	}
	if p.X.Min != 0 || p.X.Max != 40 {
		t.Errorf("figure time axis spans [%v, %v] instead of [0, 40]", p.X.Min, p.X.Max)
	}
	again, err := AppendRow(p, times, labels, pal, 2, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again != p {
		t.Error("appending should return the same figure for chaining")
	}
	if p.Y.Min != 0 || p.Y.Max != 3 {
		t.Errorf("figure row axis spans [%v, %v] instead of [0, 3]", p.Y.Min, p.Y.Max)
	}
}

func TestAppendRowFailureLeavesFigureUntouched(t *testing.T) {
	times, labels := workedExample()
	p := Figure("before")
	returned, err := AppendRow(p, times, labels, Palette{}, 0, 1)
	if err == nil {
		t.Fatal("an empty palette should fail every resolution")
	}
	if returned != p {
		t.Error("the original figure should come back on failure")
	}
	if !math.IsInf(p.X.Min, 1) || !math.IsInf(p.X.Max, -1) {
		t.Errorf("failed append mutated the time axis: [%v, %v]", p.X.Min, p.X.Max)
	}
}

func TestRowDataRange(t *testing.T) {
	row := &Row{
		Bands: []Band{
			{Start: 5, End: 20},
			{Start: 20, End: 42},
		},
		YMin: 1.5,
		YMax: 2.5,
	}
	xmin, xmax, ymin, ymax := row.DataRange()
	if xmin != 5 || xmax != 42 || ymin != 1.5 || ymax != 2.5 {
		t.Errorf("wrong data range: [%v, %v] x [%v, %v]", xmin, xmax, ymin, ymax)
	}
}

func TestStackRows(t *testing.T) {
	times, labels := workedExample()
	flipped := []gaze.EventLabel{gaze.Saccade, gaze.Saccade, gaze.Fixation, gaze.Blink, gaze.Blink}
	p, err := StackRows("comparison", []RowSpec{
		{Name: "rater", Times: times, Labels: labels},
		{Name: "ivt", Times: times, Labels: flipped},
	}, DefaultPalette())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Y.Min != -0.4 || p.Y.Max != 1.4 {
		t.Errorf("stacked rows span [%v, %v] instead of [-0.4, 1.4]", p.Y.Min, p.Y.Max)
	}
}

func TestStackRowsPropagatesRowErrors(t *testing.T) {
	times, labels := workedExample()
	_, err := StackRows("comparison", []RowSpec{
		{Name: "rater", Times: times, Labels: labels},
	}, Palette{})
	var unmapped *UnmappedLabelError
	if !errors.As(err, &unmapped) {
		t.Fatalf("expected an unmapped label error, got %v", err)
	}
}

func TestRenderSmoke(t *testing.T) {
	times, labels := workedExample()
	p, err := StackRows("smoke", []RowSpec{
		{Name: "rater", Times: times, Labels: labels},
	}, DefaultPalette())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var buf bytes.Buffer
	if err := WritePlot(p, vg.Points(400), vg.Points(200), &buf, "png"); err != nil {
		t.Fatalf("failed to render: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("rendering produced no output")
	}
}
