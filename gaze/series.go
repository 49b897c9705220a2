package gaze

import (
	"fmt"
)

// ShapeError indicates parallel per-sample vectors whose lengths disagree.
type ShapeError struct {
	What    string
	TimeLen int
	DataLen int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("mismatched %s vector: %d entries against %d timestamps", e.What, e.DataLen, e.TimeLen)
}

func CheckShape(timeLen int, what string, dataLen int) error {
	if dataLen != timeLen {
		return &ShapeError{What: what, TimeLen: timeLen, DataLen: dataLen}
	}
	return nil
}

// Run is a maximal contiguous block of samples sharing one label.
// Start is the time of the run's first sample; End is the time of the first
// sample after the run, except that the final run ends at the final sample's
// time. A run that contains only the final sample is therefore zero-width.
type Run struct {
	Start float64
	End   float64
	Label EventLabel
}

func (r Run) Duration() float64 {
	return r.End - r.Start
}

// Runs collapses a per-sample label vector into ordered runs.
// Timestamps must be non-decreasing; a zero-length input produces no runs.
func Runs(times []float64, labels []EventLabel) ([]Run, error) {
	if err := CheckShape(len(times), "label", len(labels)); err != nil {
		return nil, err
	}
	var runs []Run
	startPoint := 0
	for startPoint < len(labels) {
		endPoint := startPoint + 1
		for endPoint < len(labels) && labels[startPoint] == labels[endPoint] {
			endPoint += 1
		}
		end := times[len(times)-1]
		if endPoint < len(times) {
			end = times[endPoint]
		}
		runs = append(runs, Run{
			Start: times[startPoint],
			End:   end,
			Label: labels[startPoint],
		})
		startPoint = endPoint
	}
	return runs, nil
}

// MergeShortRuns smooths a label vector: any maximal chunk of fewer than
// minSamples equal labels is absorbed into its neighbors when both exist and
// agree, and overwritten with fill otherwise. Chunks are measured against the
// input; replacements do not cascade. The input slice is not modified.
func MergeShortRuns(labels []EventLabel, minSamples int, fill EventLabel) []EventLabel {
	out := make([]EventLabel, len(labels))
	copy(out, labels)
	startPoint := 0
	for startPoint < len(labels) {
		endPoint := startPoint + 1
		for endPoint < len(labels) && labels[startPoint] == labels[endPoint] {
			endPoint += 1
		}
		if endPoint-startPoint < minSamples {
			replacement := fill
			if startPoint > 0 && endPoint < len(labels) && labels[startPoint-1] == labels[endPoint] {
				replacement = labels[startPoint-1]
			}
			for i := startPoint; i < endPoint; i++ {
				out[i] = replacement
			}
		}
		startPoint = endPoint
	}
	return out
}

func CountLabels(labels []EventLabel) map[EventLabel]int {
	counts := make(map[EventLabel]int)
	for _, label := range labels {
		counts[label] += 1
	}
	return counts
}
