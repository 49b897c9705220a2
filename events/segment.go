package events

import (
	"github.com/gazelab/gazeline/gaze"
)

// Segment chunks a labeled recording into events. Each maximal run of one
// label becomes an Event holding subslices of the input vectors. Runs
// labeled Undefined and runs shorter than minSamples are dropped.
func Segment(times, x, y []float64, labels []gaze.EventLabel, minSamples int) ([]Event, error) {
	if err := gaze.CheckShape(len(times), "x", len(x)); err != nil {
		return nil, err
	}
	if err := gaze.CheckShape(len(times), "y", len(y)); err != nil {
		return nil, err
	}
	if err := gaze.CheckShape(len(times), "label", len(labels)); err != nil {
		return nil, err
	}
	var out []Event
	startPoint := 0
	for startPoint < len(labels) {
		endPoint := startPoint + 1
		for endPoint < len(labels) && labels[endPoint] == labels[startPoint] {
			endPoint += 1
		}
		if labels[startPoint] != gaze.Undefined && endPoint-startPoint >= minSamples {
			out = append(out, Event{
				Label: labels[startPoint],
				Times: times[startPoint:endPoint],
				X:     x[startPoint:endPoint],
				Y:     y[startPoint:endPoint],
			})
		}
		startPoint = endPoint
	}
	return out, nil
}
