package gaze

import (
	"fmt"
	"strings"
)

// EventLabel classifies a single gaze sample.
type EventLabel int

const (
	Undefined     EventLabel = 0
	Fixation      EventLabel = 1
	Saccade       EventLabel = 2
	PSO           EventLabel = 3
	SmoothPursuit EventLabel = 4
	Blink         EventLabel = 5
)

func Labels() []EventLabel {
	return []EventLabel{Undefined, Fixation, Saccade, PSO, SmoothPursuit, Blink}
}

func ParseEventLabel(raw string) (EventLabel, error) {
	for _, label := range Labels() {
		if strings.EqualFold(label.String(), raw) {
			return label, nil
		}
	}
	return Undefined, fmt.Errorf("invalid event label: %q", raw)
}

func (el EventLabel) Valid() bool {
	return el >= Undefined && el <= Blink
}

func (el EventLabel) String() string {
	switch el {
	case Undefined:
		return "undefined"
	case Fixation:
		return "fixation"
	case Saccade:
		return "saccade"
	case PSO:
		return "pso"
	case SmoothPursuit:
		return "smooth_pursuit"
	case Blink:
		return "blink"
	default:
		panic("invalid event label")
	}
}
