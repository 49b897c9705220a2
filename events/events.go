// Package events turns per-sample labelings into discrete gaze events and
// computes per-event features for latency and amplitude analysis.
package events

import (
	"github.com/gazelab/gazeline/gaze"
	"math"
)

// Event is one contiguous run of identically-labeled samples, holding views
// into the recording it was segmented from. An Event always spans at least
// one sample.
type Event struct {
	Label gaze.EventLabel
	Times []float64
	X     []float64
	Y     []float64
}

func (e *Event) Start() float64 {
	return e.Times[0]
}

func (e *Event) End() float64 {
	return e.Times[len(e.Times)-1]
}

// Duration is the event extent in milliseconds. A single-sample event has
// duration zero.
func (e *Event) Duration() float64 {
	return e.End() - e.Start()
}

// AmplitudeDeg is the angular distance between the first and last sample.
func (e *Event) AmplitudeDeg(screen gaze.Screen) float64 {
	n := len(e.Times)
	px := math.Hypot(e.X[n-1]-e.X[0], e.Y[n-1]-e.Y[0])
	return screen.PixelsToDegrees(px)
}

// AzimuthDeg is the direction of motion from first to last sample, in
// degrees counterclockwise from the positive x axis. Screen y grows
// downward, so an upward saccade reports 90.
func (e *Event) AzimuthDeg() float64 {
	n := len(e.Times)
	dx := e.X[n-1] - e.X[0]
	dy := e.Y[n-1] - e.Y[0]
	theta := math.Atan2(-dy, dx) * 180 / math.Pi
	if theta < 0 {
		theta += 360
	}
	return theta
}

// PeakVelocityDeg is the largest inter-sample velocity within the event in
// degrees per second. Sample pairs with missing coordinates or a
// nonpositive time step are skipped.
func (e *Event) PeakVelocityDeg(screen gaze.Screen) float64 {
	peak := 0.0
	for i := 1; i < len(e.Times); i++ {
		dt := (e.Times[i] - e.Times[i-1]) / 1000
		if !(dt > 0) {
			continue
		}
		px := math.Hypot(e.X[i]-e.X[i-1], e.Y[i]-e.Y[i-1])
		vel := screen.PixelsToDegrees(px) / dt
		if vel > peak {
			peak = vel
		}
	}
	return peak
}

// CenterOfMass is the mean sample position in pixels.
func (e *Event) CenterOfMass() (x, y float64) {
	for i := range e.Times {
		x += e.X[i]
		y += e.Y[i]
	}
	n := float64(len(e.Times))
	return x / n, y / n
}

// DispersionDeg is the largest pairwise angular distance between any two
// samples of the event.
func (e *Event) DispersionDeg(screen gaze.Screen) float64 {
	peak := 0.0
	for i := 0; i < len(e.Times); i++ {
		for j := i + 1; j < len(e.Times); j++ {
			px := math.Hypot(e.X[j]-e.X[i], e.Y[j]-e.Y[i])
			if px > peak {
				peak = px
			}
		}
	}
	return screen.PixelsToDegrees(peak)
}
