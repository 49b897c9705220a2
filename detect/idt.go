package detect

import (
	"github.com/gazelab/gazeline/gaze"
	"math"
)

const (
	DefaultDispersionDeg = 0.5
	DefaultIDTDurationMS = 100.0
)

// IDT is the dispersion-threshold detector: a sliding window of at least
// DurationMS whose samples stay within DispersionDeg of visual angle is a
// fixation, grown greedily; anything that breaks the window is a saccade.
type IDT struct {
	Screen        gaze.Screen
	DispersionDeg float64
	DurationMS    float64
	MinSamples    int
}

func (d *IDT) Name() string {
	return "idt"
}

// spreadDeg converts a window's coordinate extents to its dispersion.
func (d *IDT) spreadDeg(dx, dy float64) float64 {
	return d.Screen.PixelsToDegrees(dx + dy)
}

func (d *IDT) Detect(times, x, y []float64) ([]gaze.EventLabel, error) {
	if err := checkSamples(times, x, y); err != nil {
		return nil, err
	}
	n := len(times)
	if n == 0 {
		return nil, nil
	}
	labels := make([]gaze.EventLabel, n)
	start := 0
	for start < n {
		end := start
		for end+1 < n && times[end]-times[start] < d.DurationMS {
			end += 1
		}
		if times[end]-times[start] < d.DurationMS {
			// tail too short to establish a fixation window
			for i := start; i < n; i++ {
				labels[i] = gaze.Saccade
			}
			break
		}
		minX, maxX := rangeOf(x[start : end+1])
		minY, maxY := rangeOf(y[start : end+1])
		if d.spreadDeg(maxX-minX, maxY-minY) <= d.DispersionDeg {
			for end+1 < n {
				nextMinX := math.Min(minX, x[end+1])
				nextMaxX := math.Max(maxX, x[end+1])
				nextMinY := math.Min(minY, y[end+1])
				nextMaxY := math.Max(maxY, y[end+1])
				// NaN spread must also end the window
				if !(d.spreadDeg(nextMaxX-nextMinX, nextMaxY-nextMinY) <= d.DispersionDeg) {
					break
				}
				minX, maxX, minY, maxY = nextMinX, nextMaxX, nextMinY, nextMaxY
				end += 1
			}
			for i := start; i <= end; i++ {
				labels[i] = gaze.Fixation
			}
			start = end + 1
		} else {
			labels[start] = gaze.Saccade
			start += 1
		}
	}
	return finish(labels, x, y, d.MinSamples), nil
}

func rangeOf(values []float64) (min, max float64) {
	min, max = values[0], values[0]
	for _, v := range values[1:] {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	return min, max
}
