// Package scarf renders per-sample gaze labelings as scarfplots: stacked
// rows of colored horizontal bands on a shared time axis, one row per
// detector or annotator, so labelings of the same recording can be compared
// at a glance.
package scarf

import (
	"fmt"
	"github.com/gazelab/gazeline/gaze"
	"image/color"
)

// UnmappedLabelError indicates a label with no palette entry. A missing
// entry always fails the whole call: drawing a substitute color would
// silently misrepresent the labeling under comparison.
type UnmappedLabelError struct {
	Label gaze.EventLabel
}

func (e *UnmappedLabelError) Error() string {
	return fmt.Sprintf("no palette entry for event label %q", e.Label)
}

// BoundsError indicates a row with an empty or inverted vertical extent.
type BoundsError struct {
	YMin float64
	YMax float64
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("invalid row bounds: ymin=%v is not below ymax=%v", e.YMin, e.YMax)
}

// Palette assigns each event label its display color. It is built once and
// treated as read-only afterwards; every row in a figure shares one palette.
type Palette map[gaze.EventLabel]color.RGBA

func DefaultPalette() Palette {
	return Palette{
		gaze.Undefined:     {0xDD, 0xDD, 0xDD, 255},
		gaze.Fixation:      {0x1F, 0x78, 0xB4, 255},
		gaze.Saccade:       {0xE3, 0x1A, 0x1C, 255},
		gaze.PSO:           {0xFB, 0x9A, 0x99, 255},
		gaze.SmoothPursuit: {0x33, 0xA0, 0x2C, 255},
		gaze.Blink:         {0x00, 0x00, 0x00, 255},
	}
}

func (pal Palette) Resolve(label gaze.EventLabel) (color.RGBA, error) {
	c, found := pal[label]
	if !found {
		return color.RGBA{}, &UnmappedLabelError{Label: label}
	}
	return c, nil
}
