package events

import (
	"math"
)

// MatchOptions tunes event matching. MinIoU is the least span
// intersection-over-union a candidate pair may have; zero admits any pair
// with positive overlap.
type MatchOptions struct {
	MinIoU float64
}

// Pair joins one reference event with the detector event matched to it.
// Ref is nil for a detector event no reference claimed; Pred is nil for a
// reference event that went unmatched. OnsetDiff and OffsetDiff are
// detector minus reference in milliseconds, NaN when either side is
// missing.
type Pair struct {
	Ref        *Event
	Pred       *Event
	IoU        float64
	OnsetDiff  float64
	OffsetDiff float64
}

// Match pairs reference events with detector events of the same label.
// Each reference event takes the unclaimed candidate with the highest
// span IoU; leftovers on both sides are reported as one-sided pairs.
func Match(ref, pred []Event, opts MatchOptions) []Pair {
	var out []Pair
	claimed := make([]bool, len(pred))
	for i := range ref {
		best := -1
		bestIoU := 0.0
		for j := range pred {
			if claimed[j] || pred[j].Label != ref[i].Label {
				continue
			}
			iou := spanIoU(&ref[i], &pred[j])
			if iou <= 0 || iou < opts.MinIoU {
				continue
			}
			if iou > bestIoU {
				best, bestIoU = j, iou
			}
		}
		if best < 0 {
			out = append(out, Pair{
				Ref:        &ref[i],
				IoU:        0,
				OnsetDiff:  math.NaN(),
				OffsetDiff: math.NaN(),
			})
			continue
		}
		claimed[best] = true
		out = append(out, Pair{
			Ref:        &ref[i],
			Pred:       &pred[best],
			IoU:        bestIoU,
			OnsetDiff:  pred[best].Start() - ref[i].Start(),
			OffsetDiff: pred[best].End() - ref[i].End(),
		})
	}
	for j := range pred {
		if !claimed[j] {
			out = append(out, Pair{
				Pred:       &pred[j],
				IoU:        0,
				OnsetDiff:  math.NaN(),
				OffsetDiff: math.NaN(),
			})
		}
	}
	return out
}

// spanIoU is the intersection over union of two event time spans. Two
// zero-width events at the same instant count as identical.
func spanIoU(a, b *Event) float64 {
	inter := math.Min(a.End(), b.End()) - math.Max(a.Start(), b.Start())
	if inter < 0 {
		inter = 0
	}
	union := math.Max(a.End(), b.End()) - math.Min(a.Start(), b.Start())
	if union <= 0 {
		if a.Start() == b.Start() {
			return 1
		}
		return 0
	}
	return inter / union
}
