// Package detect classifies raw gaze samples into per-sample event labels.
package detect

import (
	"github.com/gazelab/gazeline/gaze"
	"math"
	"sort"
)

// Detector turns a gaze recording into one label per sample. Detectors are
// constructed with their parameters and are pure per call; the same input
// always yields the same labeling.
type Detector interface {
	Name() string
	Detect(times, x, y []float64) ([]gaze.EventLabel, error)
}

const DefaultMinSamples = 2

func checkSamples(times, x, y []float64) error {
	if err := gaze.CheckShape(len(times), "x", len(x)); err != nil {
		return err
	}
	return gaze.CheckShape(len(times), "y", len(y))
}

// missing reports a sample lost to a blink or tracking dropout.
func missing(x, y float64) bool {
	return math.IsNaN(x) || math.IsNaN(y)
}

// finish overwrites missing samples as blinks and smooths away chunks too
// short to be genuine events.
func finish(labels []gaze.EventLabel, x, y []float64, minSamples int) []gaze.EventLabel {
	for i := range labels {
		if missing(x[i], y[i]) {
			labels[i] = gaze.Blink
		}
	}
	if minSamples > 1 {
		labels = gaze.MergeShortRuns(labels, minSamples, gaze.Undefined)
	}
	return labels
}

// velocities returns per-sample angular speed in degrees per second. Entry i
// covers the step from sample i-1 to sample i; entry 0 copies entry 1. A
// step involving a missing sample has speed NaN.
func velocities(times, x, y []float64, screen gaze.Screen) []float64 {
	vels := make([]float64, len(times))
	for i := 1; i < len(times); i++ {
		dt := (times[i] - times[i-1]) / 1000
		px := math.Hypot(x[i]-x[i-1], y[i]-y[i-1])
		vels[i] = screen.PixelsToDegrees(px) / dt
	}
	if len(vels) > 1 {
		vels[0] = vels[1]
	}
	return vels
}

// degSigned converts a signed pixel displacement to signed degrees.
func degSigned(screen gaze.Screen, px float64) float64 {
	if px == 0 {
		return 0
	}
	return math.Copysign(screen.PixelsToDegrees(px), px)
}

// median returns the median of the non-NaN entries, or NaN if there are none.
func median(values []float64) float64 {
	kept := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		return math.NaN()
	}
	sort.Float64s(kept)
	mid := len(kept) / 2
	if len(kept)%2 == 1 {
		return kept[mid]
	}
	return (kept[mid-1] + kept[mid]) / 2
}

// sampleInterval estimates the recording's sampling interval in seconds.
func sampleInterval(times []float64) float64 {
	diffs := make([]float64, 0, len(times))
	for i := 1; i < len(times); i++ {
		diffs = append(diffs, times[i]-times[i-1])
	}
	return median(diffs) / 1000
}
