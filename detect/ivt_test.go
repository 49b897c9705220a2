package detect

import (
	"github.com/gazelab/gazeline/gaze"
	"testing"
)

func TestIVTLabelsSyntheticStream(t *testing.T) {
	times, x, y := syntheticStream()
	d := &IVT{Screen: testScreen(), SaccadeVelocityDeg: DefaultSaccadeVelocityDeg, MinSamples: DefaultMinSamples}
	labels, err := d.Detect(times, x, y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(labels) != len(times) {
		t.Fatalf("wrong label count: %d instead of %d", len(labels), len(times))
	}
	checkRange(t, labels, 0, 124, gaze.Fixation, d.Name())
	checkRange(t, labels, 125, 134, gaze.Saccade, d.Name())
	checkRange(t, labels, 135, 260, gaze.Fixation, d.Name())
}

func TestIVTThreshold(t *testing.T) {
	// 10 px in 2 ms is about 129 deg/s at the test geometry
	times := []float64{0, 2, 4, 6, 8, 10, 12, 14}
	x := []float64{100, 100, 100, 100, 110, 120, 120, 120}
	y := []float64{100, 100, 100, 100, 100, 100, 100, 100}
	fast := &IVT{Screen: testScreen(), SaccadeVelocityDeg: 200, MinSamples: 1}
	labels, err := fast.Detect(times, x, y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, label := range labels {
		if label != gaze.Fixation {
			t.Errorf("sample %d: a 129 deg/s step should stay below a 200 deg/s threshold, got %v", i, label)
		}
	}
	slow := &IVT{Screen: testScreen(), SaccadeVelocityDeg: 100, MinSamples: 1}
	labels, err = slow.Detect(times, x, y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if labels[4] != gaze.Saccade || labels[5] != gaze.Saccade {
		t.Errorf("the moving samples should exceed a 100 deg/s threshold: %v", labels)
	}
	if labels[3] != gaze.Fixation || labels[6] != gaze.Fixation {
		t.Errorf("the still samples should stay fixations: %v", labels)
	}
}
