package detect

import (
	"github.com/gazelab/gazeline/gaze"
	"math"
)

const DefaultSaccadeVelocityDeg = 45.0

// IVT is the velocity-threshold detector: any sample moving at or above
// SaccadeVelocityDeg degrees per second is a saccade, everything else a
// fixation.
type IVT struct {
	Screen             gaze.Screen
	SaccadeVelocityDeg float64
	MinSamples         int
}

func (d *IVT) Name() string {
	return "ivt"
}

func (d *IVT) Detect(times, x, y []float64) ([]gaze.EventLabel, error) {
	if err := checkSamples(times, x, y); err != nil {
		return nil, err
	}
	if len(times) == 0 {
		return nil, nil
	}
	vels := velocities(times, x, y, d.Screen)
	labels := make([]gaze.EventLabel, len(times))
	for i := range labels {
		switch {
		case math.IsNaN(vels[i]):
			labels[i] = gaze.Undefined
		case vels[i] >= d.SaccadeVelocityDeg:
			labels[i] = gaze.Saccade
		default:
			labels[i] = gaze.Fixation
		}
	}
	return finish(labels, x, y, d.MinSamples), nil
}
