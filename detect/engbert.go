package detect

import (
	"github.com/gazelab/gazeline/gaze"
	"math"
)

const DefaultEngbertLambda = 5.0

// Engbert is the median-based adaptive velocity detector of Engbert and
// Kliegl: component velocities are smoothed over five samples, a per-axis
// noise level is estimated with median statistics, and samples whose
// velocity leaves an ellipse of Lambda noise units are saccades.
type Engbert struct {
	Screen     gaze.Screen
	Lambda     float64
	MinSamples int
}

func (d *Engbert) Name() string {
	return "engbert"
}

func (d *Engbert) Detect(times, x, y []float64) ([]gaze.EventLabel, error) {
	if err := checkSamples(times, x, y); err != nil {
		return nil, err
	}
	n := len(times)
	if n == 0 {
		return nil, nil
	}
	labels := make([]gaze.EventLabel, n)
	if n < 5 {
		// too short for the five-sample stencil
		for i := range labels {
			labels[i] = gaze.Fixation
		}
		return finish(labels, x, y, d.MinSamples), nil
	}
	dt := sampleInterval(times)
	vx := stencilVelocities(x, d.Screen, dt)
	vy := stencilVelocities(y, d.Screen, dt)
	tx := d.Lambda * medianStd(vx)
	ty := d.Lambda * medianStd(vy)
	for i := range labels {
		vr := (vx[i] / tx) * (vx[i] / tx)
		vr += (vy[i] / ty) * (vy[i] / ty)
		switch {
		case math.IsNaN(vx[i]) || math.IsNaN(vy[i]):
			labels[i] = gaze.Undefined
		case vr > 1:
			labels[i] = gaze.Saccade
		default:
			labels[i] = gaze.Fixation
		}
	}
	return finish(labels, x, y, d.MinSamples), nil
}

// stencilVelocities computes five-sample smoothed component velocities in
// degrees per second. The two samples at each end copy the nearest interior
// value.
func stencilVelocities(pos []float64, screen gaze.Screen, dt float64) []float64 {
	n := len(pos)
	vels := make([]float64, n)
	for i := 2; i < n-2; i++ {
		px := pos[i+1] + pos[i+2] - pos[i-1] - pos[i-2]
		vels[i] = degSigned(screen, px) / (6 * dt)
	}
	vels[0], vels[1] = vels[2], vels[2]
	vels[n-1], vels[n-2] = vels[n-3], vels[n-3]
	return vels
}

// medianStd is the median-based standard deviation estimate behind the
// Engbert threshold: sqrt(median(v^2) - median(v)^2), floored so the
// ellipse test stays meaningful on noise-free input.
func medianStd(vels []float64) float64 {
	med := median(vels)
	squares := make([]float64, len(vels))
	for i, v := range vels {
		squares[i] = v * v
	}
	msd := median(squares) - med*med
	if !(msd > 1e-10) {
		msd = 1e-10
	}
	return math.Sqrt(msd)
}
