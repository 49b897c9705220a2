package report

import (
	"bytes"
	"github.com/gazelab/gazeline/compare"
	"github.com/gazelab/gazeline/gaze"
	"math"
	"reflect"
	"strings"
	"testing"
)

func testLabelings() ([]float64, []Labeling) {
	times := []float64{0, 10, 20, 30, 40}
	return times, []Labeling{
		{Name: "ref", Labels: []gaze.EventLabel{
			gaze.Fixation, gaze.Fixation, gaze.Saccade, gaze.Saccade, gaze.Fixation,
		}},
		{Name: "ivt", Labels: []gaze.EventLabel{
			gaze.Fixation, gaze.Fixation, gaze.Saccade, gaze.Saccade, gaze.Saccade,
		}},
	}
}

func TestBuildKappaMatrix(t *testing.T) {
	times, labelings := testLabelings()
	rep, err := Build("trial01", times, labelings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(rep.Names, []string{"ref", "ivt"}) {
		t.Errorf("wrong labeling names: %v", rep.Names)
	}
	if rep.Kappa[0][0] != 1 || rep.Kappa[1][1] != 1 {
		t.Errorf("self-agreement should be 1, got diagonal %v / %v", rep.Kappa[0][0], rep.Kappa[1][1])
	}
	if rep.Kappa[0][1] != rep.Kappa[1][0] {
		t.Errorf("kappa should be symmetric, got %v and %v", rep.Kappa[0][1], rep.Kappa[1][0])
	}
	want, err := compare.CohenKappa(labelings[0].Labels, labelings[1].Labels)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(rep.Kappa[0][1]-want) > 1e-12 {
		t.Errorf("off-diagonal kappa is %v instead of %v", rep.Kappa[0][1], want)
	}
}

func TestBuildRunStatistics(t *testing.T) {
	times, labelings := testLabelings()
	rep, err := Build("trial01", times, labelings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(rep.Classes, []gaze.EventLabel{gaze.Fixation, gaze.Saccade}) {
		t.Fatalf("wrong class set: %v", rep.Classes)
	}
	// ref splits into fixation (0,20), saccade (20,40), fixation (40,40)
	if !reflect.DeepEqual(rep.EventCounts[0], []int{2, 1}) {
		t.Errorf("wrong ref counts: %v", rep.EventCounts[0])
	}
	if !reflect.DeepEqual(rep.EventCounts[1], []int{1, 1}) {
		t.Errorf("wrong ivt counts: %v", rep.EventCounts[1])
	}
	if !reflect.DeepEqual(rep.MeanDurations[0], []float64{10, 20}) {
		t.Errorf("wrong ref mean durations: %v", rep.MeanDurations[0])
	}
	if !reflect.DeepEqual(rep.MeanDurations[1], []float64{20, 20}) {
		t.Errorf("wrong ivt mean durations: %v", rep.MeanDurations[1])
	}
}

func TestBuildRejectsBadInput(t *testing.T) {
	times, labelings := testLabelings()
	if _, err := Build("trial01", nil, labelings); err == nil {
		t.Errorf("an empty trial should be rejected")
	}
	if _, err := Build("trial01", times, nil); err == nil {
		t.Errorf("an empty labeling set should be rejected")
	}
	short := []Labeling{{Name: "bad", Labels: labelings[0].Labels[:3]}}
	if _, err := Build("trial01", times, short); err == nil {
		t.Errorf("a labeling shorter than the trial should be rejected")
	}
}

func TestWriteRendersHTML(t *testing.T) {
	times, labelings := testLabelings()
	rep, err := Build("trial01", times, labelings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var buf bytes.Buffer
	if err := Write(&buf, rep); err != nil {
		t.Fatalf("rendering: %v", err)
	}
	html := buf.String()
	if !strings.Contains(html, "<html>") || !strings.Contains(html, "echarts") {
		t.Errorf("output does not look like an echarts page (%d bytes)", buf.Len())
	}
	for _, name := range []string{"ref", "ivt", "fixation", "saccade"} {
		if !strings.Contains(html, name) {
			t.Errorf("rendered page is missing %q", name)
		}
	}
}
