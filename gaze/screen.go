package gaze

import (
	"fmt"
	"math"
)

// Screen describes the viewing geometry of a recording: the distance from
// the participant's eyes to the display and the physical size of one pixel.
type Screen struct {
	DistanceCM  float64
	PixelSizeCM float64
}

func (s Screen) Validate() error {
	if !(s.DistanceCM > 0) {
		return fmt.Errorf("invalid viewing distance: %v cm", s.DistanceCM)
	}
	if !(s.PixelSizeCM > 0) {
		return fmt.Errorf("invalid pixel size: %v cm", s.PixelSizeCM)
	}
	return nil
}

// PixelsToDegrees converts a pixel displacement on the display into the
// visual angle it subtends, in degrees.
func (s Screen) PixelsToDegrees(px float64) float64 {
	return 2 * math.Atan2(math.Abs(px)*s.PixelSizeCM/2, s.DistanceCM) * 180 / math.Pi
}

// DegreesToPixels is the inverse of PixelsToDegrees.
func (s Screen) DegreesToPixels(deg float64) float64 {
	return 2 * s.DistanceCM * math.Tan(deg*math.Pi/180/2) / s.PixelSizeCM
}
